// Package checker builds update-availability status values by pairing a
// store lookup with version normalization.
package checker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hmallinger/storecheck/internal/store"
	"github.com/hmallinger/storecheck/pkg/appversion"
)

// Config tunes a Checker. The zero value queries the public stores with
// http.DefaultClient and logs through slog.Default().
type Config struct {
	// AppStoreID and PlayStoreID override the package identifier per
	// store. Empty means use the identifier passed to Status.
	AppStoreID  string
	PlayStoreID string

	// AppStoreRegion is the App Store country code; PlayStoreLocale is
	// the Play Store hl parameter. Empty selects the store defaults.
	AppStoreRegion  string
	PlayStoreLocale string

	// ForceVersion replaces the network-retrieved version in both
	// strategies. Used for deterministic checks without network variance.
	ForceVersion string

	// AppStoreURL and PlayStoreURL override the store endpoints for tests
	// and mirrors. Empty selects the public endpoints.
	AppStoreURL  string
	PlayStoreURL string

	HTTPClient *http.Client // nil: http.DefaultClient
	Logger     *slog.Logger // nil: slog.Default()
}

// Checker resolves the published store version for an application and
// pairs it with the installed one. A Checker holds no mutable state and is
// safe for concurrent use; every call is one independent network round
// trip, cancelled only by the caller's context.
type Checker struct {
	cfg     Config
	lookups map[store.Platform]store.Lookup
	logger  *slog.Logger
}

// New returns a Checker with one lookup strategy wired per platform.
func New(cfg Config) *Checker {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{
		cfg: cfg,
		lookups: map[store.Platform]store.Lookup{
			store.PlatformIOS:     store.NewAppStoreLookup(cfg.AppStoreURL, cfg.HTTPClient),
			store.PlatformAndroid: store.NewPlayStoreLookup(cfg.PlayStoreURL, cfg.HTTPClient),
		},
		logger: logger,
	}
}

// Status fetches the version published for packageID on the given platform
// and pairs it with installedVersion. Both version fields of the returned
// Status are normalized.
//
// A (nil, nil) return means no status is available: the platform is
// unsupported, or a non-strict lookup failed (logged, not returned).
// Errors from a strict lookup (the Play Store scrape) propagate.
func (c *Checker) Status(ctx context.Context, platform store.Platform, packageID, installedVersion string) (*Status, error) {
	lookup, ok := c.lookups[platform]
	if !ok {
		c.logger.Warn("unsupported platform, skipping version check",
			"platform", string(platform), "app", packageID)
		return nil, nil
	}

	meta, err := lookup.Fetch(ctx, c.request(platform, packageID))
	if err != nil {
		if lookup.Strict() {
			return nil, fmt.Errorf("%s store lookup failed: %w", platform, err)
		}
		c.logSoftFailure(platform, packageID, err)
		return nil, nil
	}

	return &Status{
		localVersion: appversion.Normalize(installedVersion),
		storeVersion: appversion.Normalize(meta.Version),
		storeURL:     meta.StoreURL,
		releaseNotes: meta.ReleaseNotes,
		appName:      meta.AppName,
	}, nil
}

// request resolves the per-store identifier, region, and version override
// for one call.
func (c *Checker) request(platform store.Platform, packageID string) store.Request {
	req := store.Request{AppID: packageID, OverrideVersion: c.cfg.ForceVersion}
	switch platform {
	case store.PlatformIOS:
		if c.cfg.AppStoreID != "" {
			req.AppID = c.cfg.AppStoreID
		}
		req.Region = c.cfg.AppStoreRegion
	case store.PlatformAndroid:
		if c.cfg.PlayStoreID != "" {
			req.AppID = c.cfg.PlayStoreID
		}
		req.Region = c.cfg.PlayStoreLocale
	}
	return req
}

// logSoftFailure records a degraded lookup. A missing response field is a
// configuration problem and logs at Error; everything else logs at Warn.
func (c *Checker) logSoftFailure(platform store.Platform, packageID string, err error) {
	var fieldErr *store.FieldError
	if errors.As(err, &fieldErr) {
		c.logger.Error("store response missing expected field",
			"platform", string(platform), "app", packageID, "error", err)
		return
	}
	c.logger.Warn("store lookup failed, no status available",
		"platform", string(platform), "app", packageID, "error", err)
}
