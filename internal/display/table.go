package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/hmallinger/storecheck/internal/checker"
	"github.com/hmallinger/storecheck/internal/store"
)

const (
	nameColumnWidth     = 22
	platformColumnWidth = 8
	versionColumnWidth  = 12
)

// Row pairs one app with its check outcome for table rendering.
type Row struct {
	Name     string
	Platform store.Platform
	AppID    string
	Status   *checker.Status
	Err      error
}

// RenderTable renders one line per app plus a closing summary. Styling is
// restricted to whole lines and the final column so column alignment
// survives the escape sequences.
func (r *Renderer) RenderTable(w io.Writer, rows []Row) {
	header := fmt.Sprintf("%-*s  %-*s  %-*s  %-*s  %s",
		nameColumnWidth, "NAME",
		platformColumnWidth, "PLATFORM",
		versionColumnWidth, "INSTALLED",
		versionColumnWidth, "STORE",
		"STATUS")
	fmt.Fprintln(w, r.paint(headerStyle, header))

	separator := strings.Repeat("─", nameColumnWidth+platformColumnWidth+2*versionColumnWidth+14)
	fmt.Fprintln(w, separator)

	updates, failures := 0, 0
	for _, row := range rows {
		r.renderRow(w, row)
		if row.Err != nil {
			failures++
		} else if row.Status != nil && row.Status.CanUpdate() {
			updates++
		}
	}

	// Summary
	fmt.Fprintln(w)
	summary := fmt.Sprintf("%d of %d apps have updates available", updates, len(rows))
	if failures > 0 {
		summary += fmt.Sprintf(", %d failed", failures)
	}
	fmt.Fprintln(w, summary)
}

func (r *Renderer) renderRow(w io.Writer, row Row) {
	name := row.Name
	if name == "" {
		name = row.AppID
	}
	name = truncateName(name)

	installed, storeVersion := "-", "-"
	if row.Status != nil {
		installed = row.Status.LocalVersion()
		storeVersion = row.Status.StoreVersion()
	}

	fmt.Fprintf(w, "%-*s  %-*s  %-*s  %-*s  %s\n",
		nameColumnWidth, name,
		platformColumnWidth, row.Platform,
		versionColumnWidth, installed,
		versionColumnWidth, storeVersion,
		r.statusCell(row))
}

// statusCell formats the last column of a row.
func (r *Renderer) statusCell(row Row) string {
	switch {
	case row.Err != nil:
		return r.paint(errorStyle, errorIcon+" "+row.Err.Error())
	case row.Status == nil:
		return r.paint(missingStyle, missingIcon+" no status")
	case row.Status.CanUpdate():
		return r.paint(updateStyle, updateIcon+" update available")
	default:
		return r.paint(currentStyle, currentIcon+" up to date")
	}
}

// truncateName truncates an app name to fit in the column.
func truncateName(name string) string {
	if len(name) <= nameColumnWidth {
		return name
	}
	return name[:nameColumnWidth-3] + "..."
}
