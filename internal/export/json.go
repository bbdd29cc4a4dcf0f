// Package export provides functionality to export check results to various formats.
package export

import (
	"encoding/json"
	"io"
)

// JSONExporter exports check results to JSON format.
type JSONExporter struct {
	Pretty bool // Whether to pretty-print the JSON
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{
		Pretty: false,
	}
}

// Export writes the entries as a JSON array to the writer. A nil slice
// encodes as an empty array so consumers always get a list.
func (e *JSONExporter) Export(w io.Writer, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}

	encoder := json.NewEncoder(w)
	if e.Pretty {
		encoder.SetIndent("", "  ")
	}

	return encoder.Encode(entries)
}
