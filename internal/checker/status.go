package checker

import "github.com/hmallinger/storecheck/pkg/appversion"

// Status is the immutable outcome of one version check. Only
// Checker.Status constructs it, and both version fields are always in
// normalized MAJOR.MINOR[.PATCH] form; they are the only fields ever fed
// to the comparator.
type Status struct {
	localVersion string
	storeVersion string
	storeURL     string
	releaseNotes string
	appName      string
}

// LocalVersion returns the normalized installed version.
func (s *Status) LocalVersion() string { return s.localVersion }

// StoreVersion returns the normalized published version.
func (s *Status) StoreVersion() string { return s.storeVersion }

// StoreURL returns the application's store page link, canonical for both
// display and the update action.
func (s *Status) StoreURL() string { return s.storeURL }

// ReleaseNotes returns the published release notes, or "" when the source
// strategy supplies none. The scraped path never does.
func (s *Status) ReleaseNotes() string { return s.releaseNotes }

// AppName returns the store's display title for the application, or ""
// when the source does not supply one.
func (s *Status) AppName() string { return s.appName }

// CanUpdate reports whether the store version is newer than the local one.
func (s *Status) CanUpdate() bool {
	return appversion.CanUpdate(s.localVersion, s.storeVersion)
}
