package store

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// lookupResponse mirrors the lookup API payload shape used by the tests.
type lookupResponse struct {
	Results []appStoreResult `json:"results"`
}

func newAppStoreServer(t *testing.T, resp lookupResponse) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Fatal(err)
		}
	}))
}

func TestAppStoreLookup_Fetch(t *testing.T) {
	srv := newAppStoreServer(t, lookupResponse{
		Results: []appStoreResult{{
			Version:      "2.4.1",
			TrackViewURL: "https://apps.example.com/app/id123",
			ReleaseNotes: "Bug fixes.",
			TrackName:    "Example App",
		}},
	})
	defer srv.Close()

	l := NewAppStoreLookup(srv.URL, srv.Client())
	meta, err := l.Fetch(context.Background(), Request{AppID: "com.example.app"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Version != "2.4.1" {
		t.Errorf("Version = %q, want %q", meta.Version, "2.4.1")
	}
	if meta.StoreURL != "https://apps.example.com/app/id123" {
		t.Errorf("StoreURL = %q, want %q", meta.StoreURL, "https://apps.example.com/app/id123")
	}
	if meta.ReleaseNotes != "Bug fixes." {
		t.Errorf("ReleaseNotes = %q, want %q", meta.ReleaseNotes, "Bug fixes.")
	}
	if meta.AppName != "Example App" {
		t.Errorf("AppName = %q, want %q", meta.AppName, "Example App")
	}
}

func TestAppStoreLookup_QueryParams(t *testing.T) {
	var gotBundleID, gotCountry string
	var hasCountry bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBundleID = r.URL.Query().Get("bundleId")
		gotCountry = r.URL.Query().Get("country")
		hasCountry = r.URL.Query().Has("country")
		json.NewEncoder(w).Encode(lookupResponse{
			Results: []appStoreResult{{Version: "1.0.0", TrackViewURL: "https://example.com"}},
		})
	}))
	defer srv.Close()

	l := NewAppStoreLookup(srv.URL, srv.Client())

	if _, err := l.Fetch(context.Background(), Request{AppID: "com.example.app"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotBundleID != "com.example.app" {
		t.Errorf("bundleId = %q, want %q", gotBundleID, "com.example.app")
	}
	if hasCountry {
		t.Errorf("country param sent without a region, got %q", gotCountry)
	}

	if _, err := l.Fetch(context.Background(), Request{AppID: "com.example.app", Region: "de"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotCountry != "de" {
		t.Errorf("country = %q, want %q", gotCountry, "de")
	}
}

func TestAppStoreLookup_EmptyResults_NotFound(t *testing.T) {
	srv := newAppStoreServer(t, lookupResponse{})
	defer srv.Close()

	l := NewAppStoreLookup(srv.URL, srv.Client())
	_, err := l.Fetch(context.Background(), Request{AppID: "com.example.missing"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAppStoreLookup_ServerError_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	l := NewAppStoreLookup(srv.URL, srv.Client())
	_, err := l.Fetch(context.Background(), Request{AppID: "com.example.app"})

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want %d", statusErr.StatusCode, http.StatusInternalServerError)
	}
}

func TestAppStoreLookup_MissingVersion_FieldError(t *testing.T) {
	srv := newAppStoreServer(t, lookupResponse{
		Results: []appStoreResult{{TrackViewURL: "https://example.com"}},
	})
	defer srv.Close()

	l := NewAppStoreLookup(srv.URL, srv.Client())
	_, err := l.Fetch(context.Background(), Request{AppID: "com.example.app"})

	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected *FieldError, got %v", err)
	}
	if fieldErr.Field != "version" {
		t.Errorf("Field = %q, want %q", fieldErr.Field, "version")
	}
}

func TestAppStoreLookup_MissingTrackViewURL_FieldError(t *testing.T) {
	srv := newAppStoreServer(t, lookupResponse{
		Results: []appStoreResult{{Version: "1.0.0"}},
	})
	defer srv.Close()

	l := NewAppStoreLookup(srv.URL, srv.Client())
	_, err := l.Fetch(context.Background(), Request{AppID: "com.example.app"})

	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected *FieldError, got %v", err)
	}
	if fieldErr.Field != "trackViewUrl" {
		t.Errorf("Field = %q, want %q", fieldErr.Field, "trackViewUrl")
	}
}

func TestAppStoreLookup_ReleaseNotesOptional(t *testing.T) {
	srv := newAppStoreServer(t, lookupResponse{
		Results: []appStoreResult{{Version: "1.0.0", TrackViewURL: "https://example.com"}},
	})
	defer srv.Close()

	l := NewAppStoreLookup(srv.URL, srv.Client())
	meta, err := l.Fetch(context.Background(), Request{AppID: "com.example.app"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.ReleaseNotes != "" {
		t.Errorf("ReleaseNotes = %q, want empty", meta.ReleaseNotes)
	}
}

func TestAppStoreLookup_OverrideWins_RequestStillIssued(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		json.NewEncoder(w).Encode(lookupResponse{
			Results: []appStoreResult{{Version: "9.9.9", TrackViewURL: "https://example.com"}},
		})
	}))
	defer srv.Close()

	l := NewAppStoreLookup(srv.URL, srv.Client())
	meta, err := l.Fetch(context.Background(), Request{AppID: "com.example.app", OverrideVersion: "2.0.0"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Version != "2.0.0" {
		t.Errorf("Version = %q, want override %q", meta.Version, "2.0.0")
	}
	if hits != 1 {
		t.Errorf("expected exactly one request with an override set, got %d", hits)
	}
}

func TestAppStoreLookup_NetworkError(t *testing.T) {
	l := NewAppStoreLookup("http://127.0.0.1:1", nil)
	_, err := l.Fetch(context.Background(), Request{AppID: "com.example.app"})
	if err == nil {
		t.Fatal("expected error for unreachable host")
	}
}

func TestAppStoreLookup_NotStrict(t *testing.T) {
	if NewAppStoreLookup("", nil).Strict() {
		t.Error("App Store lookup must not be strict: its failures degrade to absence")
	}
}

func TestAppStoreLookup_DefaultBaseURL(t *testing.T) {
	l := NewAppStoreLookup("", nil)
	if l.baseURL != DefaultAppStoreURL {
		t.Errorf("baseURL = %q, want %q", l.baseURL, DefaultAppStoreURL)
	}
	if l.httpClient != http.DefaultClient {
		t.Error("expected http.DefaultClient when no client is given")
	}
}
