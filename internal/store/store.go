// Package store retrieves published application metadata from platform
// application stores. Two strategies exist: the App Store lookup, which
// queries a documented JSON API, and the Play Store lookup, which scrapes
// the application's web page.
package store

import (
	"context"
	"net/http"
)

// Platform identifies which application store to query.
type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
)

// Request carries the parameters for a single lookup. Requests hold no
// state; every lookup is independent of every other.
type Request struct {
	// AppID is the store identifier of the application: the bundle id on
	// the App Store, the package name on the Play Store.
	AppID string

	// Region is the store region or locale code. Empty selects the store
	// default.
	Region string

	// OverrideVersion, when set, replaces the version extracted from the
	// store response. The request is still issued.
	OverrideVersion string
}

// Metadata is the raw store result. The version is un-normalized; callers
// normalize before comparing.
type Metadata struct {
	Version      string
	StoreURL     string
	ReleaseNotes string // structured lookups only
	AppName      string // display title, when the source supplies one
}

// Lookup retrieves the published metadata for one application.
type Lookup interface {
	// Fetch issues a single request to the store. It sets no timeout of
	// its own; cancellation comes from ctx.
	Fetch(ctx context.Context, req Request) (*Metadata, error)

	// Strict reports whether fetch failures must propagate to the caller
	// instead of degrading to "no status available".
	Strict() bool
}

func clientOrDefault(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return http.DefaultClient
}
