package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hmallinger/storecheck/internal/checker"
	"github.com/hmallinger/storecheck/internal/store"
)

// Exporter is the interface for check result exporters.
type Exporter interface {
	Export(w io.Writer, entries []Entry) error
}

// Entry is the flat representation of one app check.
type Entry struct {
	Name             string `json:"name,omitempty"`
	Platform         string `json:"platform"`
	AppID            string `json:"appId"`
	AppName          string `json:"appName,omitempty"`
	InstalledVersion string `json:"installedVersion,omitempty"`
	StoreVersion     string `json:"storeVersion,omitempty"`
	StoreURL         string `json:"storeUrl,omitempty"`
	ReleaseNotes     string `json:"releaseNotes,omitempty"`
	UpdateAvailable  bool   `json:"updateAvailable"`
	Error            string `json:"error,omitempty"`
}

// FromStatus flattens one check outcome into an Entry. A nil status with a
// nil error marks an app the store had nothing usable for; such entries
// carry only the identifying fields.
func FromStatus(name string, platform store.Platform, appID string, st *checker.Status, err error) Entry {
	entry := Entry{
		Name:     name,
		Platform: string(platform),
		AppID:    appID,
	}

	if err != nil {
		entry.Error = err.Error()
		return entry
	}
	if st == nil {
		return entry
	}

	entry.AppName = st.AppName()
	entry.InstalledVersion = st.LocalVersion()
	entry.StoreVersion = st.StoreVersion()
	entry.StoreURL = st.StoreURL()
	entry.ReleaseNotes = st.ReleaseNotes()
	entry.UpdateAvailable = st.CanUpdate()
	return entry
}

// Format represents an export format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatText Format = "text"
)

// DetectFormat determines the export format from a filename.
func DetectFormat(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return FormatJSON
	case ".csv":
		return FormatCSV
	case ".txt", ".text":
		return FormatText
	default:
		return FormatJSON // Default to JSON
	}
}

// NewExporter creates an exporter for the given format.
func NewExporter(format Format) (Exporter, error) {
	switch format {
	case FormatJSON:
		return NewJSONExporter(), nil
	case FormatCSV:
		return NewCSVExporter(), nil
	case FormatText, "txt":
		return NewTextExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// ExportToFile exports check results to a file.
func ExportToFile(filename string, format Format, entries []Entry) error {
	if format == "" {
		format = DetectFormat(filename)
	}

	exporter, err := NewExporter(format)
	if err != nil {
		return err
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if err := exporter.Export(f, entries); err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}

	return nil
}
