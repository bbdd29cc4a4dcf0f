// Package appversion normalizes application version strings and decides
// update availability between an installed and a published version.
package appversion

import (
	"regexp"

	"github.com/Masterminds/semver/v3"
)

// Fallback is the normalized form of a missing or unparseable version.
// It never compares as newer than anything.
const Fallback = "0.0.0"

// versionRe matches the leading MAJOR.MINOR[.PATCH] numeric sequence
// inside an arbitrary version string.
var versionRe = regexp.MustCompile(`\d+\.\d+(\.\d+)?`)

// Normalize extracts the first MAJOR.MINOR[.PATCH] numeric sequence from
// raw, discarding build metadata, channel suffixes, and non-numeric
// trailing fields. If raw contains no such sequence, Normalize returns
// Fallback. It never fails, and it is idempotent.
func Normalize(raw string) string {
	if m := versionRe.FindString(raw); m != "" {
		return m
	}
	return Fallback
}

// CanUpdate reports whether the store version is strictly newer than the
// local version. Fields are compared numerically, most significant first,
// so "1.10.0" is newer than "1.9.0". When the two versions differ in
// length, the shorter one is padded with zero fields before comparing:
// "1.2" against "1.2.5" compares as "1.2.0" and reports an update.
//
// Both inputs are re-normalized first (a no-op for already-normalized
// values), so malformed text degrades to Fallback and never causes a
// failure.
func CanUpdate(local, store string) bool {
	lv, err := semver.NewVersion(Normalize(local))
	if err != nil {
		return false
	}
	sv, err := semver.NewVersion(Normalize(store))
	if err != nil {
		return false
	}
	return sv.GreaterThan(lv)
}
