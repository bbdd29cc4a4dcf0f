package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// DefaultAppStoreURL is the public App Store lookup endpoint.
const DefaultAppStoreURL = "https://itunes.apple.com/lookup"

// AppStoreLookup queries the App Store lookup API. The response is a
// documented JSON document, so this strategy is not strict: failures
// degrade to "no status available" at the caller.
type AppStoreLookup struct {
	baseURL    string
	httpClient *http.Client
}

// NewAppStoreLookup returns a lookup against the given endpoint. An empty
// baseURL selects the public App Store API; a nil client selects
// http.DefaultClient.
func NewAppStoreLookup(baseURL string, client *http.Client) *AppStoreLookup {
	if baseURL == "" {
		baseURL = DefaultAppStoreURL
	}
	return &AppStoreLookup{
		baseURL:    baseURL,
		httpClient: clientOrDefault(client),
	}
}

// Strict reports false: App Store lookup failures degrade to absence.
func (l *AppStoreLookup) Strict() bool { return false }

// appStoreResult mirrors the subset of the lookup response we parse.
type appStoreResult struct {
	Version      string `json:"version"`
	TrackViewURL string `json:"trackViewUrl"`
	ReleaseNotes string `json:"releaseNotes"`
	TrackName    string `json:"trackName"`
}

// Fetch issues one GET to the lookup endpoint and extracts the published
// version, store page URL, release notes, and display title from the
// first result. An empty results array means the app does not exist in
// that store or region and yields ErrNotFound.
func (l *AppStoreLookup) Fetch(ctx context.Context, req Request) (*Metadata, error) {
	q := url.Values{}
	q.Set("bundleId", req.AppID)
	if req.Region != "" {
		q.Set("country", req.Region)
	}
	lookupURL := l.baseURL + "?" + q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := l.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: lookupURL}
	}

	var body struct {
		Results []appStoreResult `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(body.Results) == 0 {
		return nil, ErrNotFound
	}

	first := body.Results[0]
	if first.Version == "" {
		return nil, &FieldError{Field: "version"}
	}
	if first.TrackViewURL == "" {
		return nil, &FieldError{Field: "trackViewUrl"}
	}

	meta := &Metadata{
		Version:      first.Version,
		StoreURL:     first.TrackViewURL,
		ReleaseNotes: first.ReleaseNotes,
		AppName:      first.TrackName,
	}
	if req.OverrideVersion != "" {
		meta.Version = req.OverrideVersion
	}
	return meta, nil
}
