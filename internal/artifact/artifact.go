// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package artifact lists staged installer files and associates them with a
// version. The only binding between an installer and a version is that the
// version string appears in the file name.
package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// ErrNoStagingDir is returned when the staging directory does not exist.
var ErrNoStagingDir = errors.New("staging directory does not exist")

// Artifact is one installer file on disk.
type Artifact struct {
	Name string
	Path string
	Size int64
}

// List returns the regular files directly inside dir, sorted by name.
func List(dir string) ([]Artifact, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoStagingDir, dir)
		}
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var artifacts []Artifact
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", entry.Name(), err)
		}
		artifacts = append(artifacts, Artifact{
			Name: entry.Name(),
			Path: filepath.Join(dir, entry.Name()),
			Size: info.Size(),
		})
	}
	sort.Slice(artifacts, func(i, j int) bool { return artifacts[i].Name < artifacts[j].Name })
	return artifacts, nil
}

// ForVersion keeps the artifacts whose file name contains version.
func ForVersion(artifacts []Artifact, version string) []Artifact {
	if version == "" {
		return nil
	}
	return lo.Filter(artifacts, func(a Artifact, _ int) bool {
		return strings.Contains(a.Name, version)
	})
}

// Paths returns the file paths of artifacts.
func Paths(artifacts []Artifact) []string {
	return lo.Map(artifacts, func(a Artifact, _ int) string { return a.Path })
}
