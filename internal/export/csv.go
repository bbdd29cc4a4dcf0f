package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// CSVExporter exports check results to CSV format.
type CSVExporter struct{}

// NewCSVExporter creates a new CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Export writes the entries as CSV to the writer.
func (e *CSVExporter) Export(w io.Writer, entries []Entry) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	// Write header
	header := []string{
		"name", "platform", "app_id", "app_name",
		"installed_version", "store_version", "update_available", "store_url", "error",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// Write data rows
	for _, entry := range entries {
		if err := writer.Write(e.entryToRow(entry)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	return nil
}

// entryToRow converts an entry to a CSV row.
func (e *CSVExporter) entryToRow(entry Entry) []string {
	return []string{
		entry.Name,
		entry.Platform,
		entry.AppID,
		entry.AppName,
		entry.InstalledVersion,
		entry.StoreVersion,
		strconv.FormatBool(entry.UpdateAvailable),
		entry.StoreURL,
		entry.Error,
	}
}
