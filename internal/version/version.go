// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package version validates and derives the semantic versions written to the
// manifest and mirrored into release tags.
package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Kind names a version increment.
type Kind string

const (
	Patch Kind = "patch"
	Minor Kind = "minor"
	Major Kind = "major"
)

// Kinds lists the increments in the order they are offered to the user.
var Kinds = []Kind{Patch, Minor, Major}

// ParseKind recognises "patch", "minor" and "major" (case-insensitive).
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case Patch, Minor, Major:
		return k, true
	}
	return "", false
}

// Parse validates s as a full semantic version (an optional leading "v" is
// accepted) and returns its normalized form without the prefix.
func Parse(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", fmt.Errorf("empty version")
	}
	v, err := semver.StrictNewVersion(strings.TrimPrefix(trimmed, "v"))
	if err != nil {
		return "", fmt.Errorf("invalid version '%s': %w", s, err)
	}
	return v.String(), nil
}

// Next returns current incremented by kind. Pre-release and build metadata
// follow semver's increment rules (a pre-release patch bump releases it).
func Next(current string, kind Kind) (string, error) {
	v, err := semver.NewVersion(current)
	if err != nil {
		return "", fmt.Errorf("invalid current version '%s': %w", current, err)
	}

	var next semver.Version
	switch kind {
	case Patch:
		next = v.IncPatch()
	case Minor:
		next = v.IncMinor()
	case Major:
		next = v.IncMajor()
	default:
		return "", fmt.Errorf("unknown increment '%s'", kind)
	}
	return next.String(), nil
}

// Resolve interprets input as either an increment kind applied to current or
// an explicit version.
func Resolve(current, input string) (string, error) {
	if kind, ok := ParseKind(input); ok {
		return Next(current, kind)
	}
	return Parse(input)
}

// TagName mirrors a version into a tag name.
func TagName(prefix, version string) string {
	return prefix + version
}

// IsNewer reports whether candidate sorts after current. Unparseable input is never newer.
func IsNewer(current, candidate string) bool {
	c, err := semver.NewVersion(current)
	if err != nil {
		return false
	}
	n, err := semver.NewVersion(candidate)
	if err != nil {
		return false
	}
	return n.GreaterThan(c)
}
