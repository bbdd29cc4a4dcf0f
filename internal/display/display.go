// Package display provides terminal rendering for app check results.
package display

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/hmallinger/storecheck/internal/checker"
)

// Styles for terminal output
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("240"))

	updateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")).
			Bold(true)

	currentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	missingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	versionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// Status icons
const (
	updateIcon  = "↑"
	currentIcon = "✓"
	missingIcon = "−"
	errorIcon   = "✗"
)

// Renderer writes check results for human eyes.
type Renderer struct {
	NoColor bool
}

// NewRenderer creates a Renderer. Color is disabled when NO_COLOR is set
// or stdout is not a terminal.
func NewRenderer() *Renderer {
	return &Renderer{
		NoColor: os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// paint applies a style unless color is disabled.
func (r *Renderer) paint(style lipgloss.Style, s string) string {
	if r.NoColor {
		return s
	}
	return style.Render(s)
}

// RenderStatus renders a single check as aligned label/value lines
// followed by a verdict.
func (r *Renderer) RenderStatus(w io.Writer, appID string, st *checker.Status) {
	if st == nil {
		fmt.Fprintf(w, "%s %s: no status available\n", r.paint(missingStyle, missingIcon), appID)
		return
	}

	type field struct {
		label string
		value string
	}

	var fields []field

	name := st.AppName()
	if name == "" {
		name = appID
	}
	fields = append(fields, field{"App", name})
	fields = append(fields, field{"Installed", r.paint(versionStyle, st.LocalVersion())})
	fields = append(fields, field{"Store", r.paint(versionStyle, st.StoreVersion())})
	if st.StoreURL() != "" {
		fields = append(fields, field{"URL", r.paint(urlStyle, st.StoreURL())})
	}
	if st.ReleaseNotes() != "" {
		fields = append(fields, field{"Notes", st.ReleaseNotes()})
	}

	// Find max label width for alignment
	maxWidth := 0
	for _, f := range fields {
		if len(f.label) > maxWidth {
			maxWidth = len(f.label)
		}
	}

	fmt.Fprintln(w)
	for _, f := range fields {
		fmt.Fprintf(w, "  %-*s : %s\n", maxWidth, f.label, f.value)
	}
	fmt.Fprintln(w)

	if st.CanUpdate() {
		fmt.Fprintf(w, "  %s\n", r.paint(updateStyle, updateIcon+" Update available"))
	} else {
		fmt.Fprintf(w, "  %s\n", r.paint(currentStyle, currentIcon+" Up to date"))
	}
}
