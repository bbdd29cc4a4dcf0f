package export

import (
	"fmt"
	"io"
	"strings"
)

// TextExporter exports check results to human-readable text format.
type TextExporter struct{}

// NewTextExporter creates a new text exporter.
func NewTextExporter() *TextExporter {
	return &TextExporter{}
}

// Export writes the entries as text to the writer.
func (e *TextExporter) Export(w io.Writer, entries []Entry) error {
	// Header
	fmt.Fprintf(w, "App store check results (%d apps)\n", len(entries))
	fmt.Fprintln(w, strings.Repeat("=", 70))
	fmt.Fprintln(w)

	// Entries
	updates := 0
	for _, entry := range entries {
		e.writeEntry(w, entry)
		if entry.UpdateAvailable {
			updates++
		}
	}

	// Summary
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 70))
	fmt.Fprintf(w, "%d of %d apps have updates available\n", updates, len(entries))

	return nil
}

func (e *TextExporter) writeEntry(w io.Writer, entry Entry) {
	label := entry.Name
	if label == "" {
		label = entry.AppID
	}

	line := fmt.Sprintf("%s [%s]", label, entry.Platform)
	if entry.AppName != "" && entry.AppName != label {
		line += fmt.Sprintf(" (%s)", entry.AppName)
	}
	fmt.Fprintln(w, line)

	if entry.Error != "" {
		fmt.Fprintf(w, "    Error: %s\n", entry.Error)
		return
	}
	if entry.StoreVersion == "" {
		fmt.Fprintln(w, "    No store version available")
		return
	}

	state := "up to date"
	if entry.UpdateAvailable {
		state = "update available"
	}
	fmt.Fprintf(w, "    Installed: %s  Store: %s (%s)\n",
		entry.InstalledVersion, entry.StoreVersion, state)

	if entry.StoreURL != "" {
		fmt.Fprintf(w, "    URL: %s\n", entry.StoreURL)
	}
	if entry.ReleaseNotes != "" {
		fmt.Fprintf(w, "    Notes: %s\n", firstLine(entry.ReleaseNotes))
	}
}

// firstLine truncates multi-line release notes to their first line.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
