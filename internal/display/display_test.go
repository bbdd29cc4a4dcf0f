package display

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hmallinger/storecheck/internal/checker"
	"github.com/hmallinger/storecheck/internal/store"
)

// newTestStatus runs a real check against a stub App Store server so the
// rendered status carries normalized values.
func newTestStatus(t *testing.T, installed, storeVersion, notes, appName string) *checker.Status {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"results":[{"version":%q,"trackViewUrl":"https://apps.example.com/id123","releaseNotes":%q,"trackName":%q}]}`,
			storeVersion, notes, appName)
	}))
	t.Cleanup(srv.Close)

	c := checker.New(checker.Config{
		AppStoreURL: srv.URL,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	st, err := c.Status(context.Background(), store.PlatformIOS, "com.example.app", installed)
	if err != nil {
		t.Fatalf("failed to build status: %v", err)
	}
	if st == nil {
		t.Fatal("expected a status")
	}
	return st
}

func TestNewRenderer_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	r := NewRenderer()

	if !r.NoColor {
		t.Error("expected color to be disabled when NO_COLOR is set")
	}
}

func TestRenderer_RenderStatus_UpdateAvailable(t *testing.T) {
	r := &Renderer{NoColor: true}
	st := newTestStatus(t, "1.9.0", "2.0.0", "Bug fixes.", "Example App")

	var buf bytes.Buffer
	r.RenderStatus(&buf, "com.example.app", st)
	result := buf.String()

	if !strings.Contains(result, "Example App") {
		t.Error("expected app name in output")
	}
	if !strings.Contains(result, "1.9.0") || !strings.Contains(result, "2.0.0") {
		t.Errorf("expected both versions in output, got %q", result)
	}
	if !strings.Contains(result, "https://apps.example.com/id123") {
		t.Error("expected store URL in output")
	}
	if !strings.Contains(result, "Bug fixes.") {
		t.Error("expected release notes in output")
	}
	if !strings.Contains(result, "Update available") {
		t.Errorf("expected update verdict, got %q", result)
	}
}

func TestRenderer_RenderStatus_UpToDate(t *testing.T) {
	r := &Renderer{NoColor: true}
	st := newTestStatus(t, "2.0.0", "2.0.0", "", "")

	var buf bytes.Buffer
	r.RenderStatus(&buf, "com.example.app", st)
	result := buf.String()

	if !strings.Contains(result, "Up to date") {
		t.Errorf("expected up-to-date verdict, got %q", result)
	}
	if strings.Contains(result, "Notes") {
		t.Error("expected no notes line without release notes")
	}
}

func TestRenderer_RenderStatus_NilStatus(t *testing.T) {
	r := &Renderer{NoColor: true}

	var buf bytes.Buffer
	r.RenderStatus(&buf, "com.example.app", nil)
	result := buf.String()

	if !strings.Contains(result, "no status available") {
		t.Errorf("expected a no-status line, got %q", result)
	}
	if !strings.Contains(result, "com.example.app") {
		t.Error("expected app id in output")
	}
}

func TestRenderer_RenderTable_RowsAndSummary(t *testing.T) {
	r := &Renderer{NoColor: true}
	rows := []Row{
		{Name: "Mail", Platform: store.PlatformIOS, AppID: "com.example.mail",
			Status: newTestStatus(t, "1.9.0", "2.0.0", "", "")},
		{Name: "Notes", Platform: store.PlatformIOS, AppID: "com.example.notes"},
		{Name: "Chat", Platform: store.PlatformAndroid, AppID: "com.example.chat",
			Err: errors.New("android store lookup failed")},
	}

	var buf bytes.Buffer
	r.RenderTable(&buf, rows)
	result := buf.String()

	if !strings.Contains(result, "NAME") || !strings.Contains(result, "STATUS") {
		t.Error("expected column headers in output")
	}
	if !strings.Contains(result, "update available") {
		t.Error("expected an update row")
	}
	if !strings.Contains(result, "no status") {
		t.Error("expected a no-status row")
	}
	if !strings.Contains(result, "android store lookup failed") {
		t.Error("expected the error in the failed row")
	}
	if !strings.Contains(result, "1 of 3 apps have updates available, 1 failed") {
		t.Errorf("expected summary line, got %q", result)
	}
}

func TestRenderer_RenderTable_FallsBackToAppID(t *testing.T) {
	r := &Renderer{NoColor: true}
	rows := []Row{
		{Platform: store.PlatformAndroid, AppID: "com.example.app"},
	}

	var buf bytes.Buffer
	r.RenderTable(&buf, rows)

	if !strings.Contains(buf.String(), "com.example.app") {
		t.Error("expected app id as the row name")
	}
}

func TestTruncateName_LongNames(t *testing.T) {
	long := strings.Repeat("a", 40)

	got := truncateName(long)

	if len(got) != nameColumnWidth {
		t.Errorf("len = %d, want %d", len(got), nameColumnWidth)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis suffix, got %q", got)
	}
}

func TestTruncateName_ShortNamesUnchanged(t *testing.T) {
	if got := truncateName("Mail"); got != "Mail" {
		t.Errorf("truncateName(\"Mail\") = %q, want unchanged", got)
	}
}
