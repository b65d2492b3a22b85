// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package manifest reads the version field of the package manifest and keeps
// a byte-exact copy around so a failed version change can be undone.
package manifest

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// DefaultVersion is reported when the manifest has no version field.
const DefaultVersion = "0.0.0"

// ReadVersion returns the manifest's "version" field.
func ReadVersion(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	return versionOf(path, data)
}

func versionOf(path string, data []byte) (string, error) {
	if !gjson.ValidBytes(data) {
		return "", fmt.Errorf("manifest %s is not valid JSON", path)
	}
	v := gjson.GetBytes(data, "version")
	if !v.Exists() || v.String() == "" {
		return DefaultVersion, nil
	}
	if v.Type != gjson.String {
		return "", fmt.Errorf("manifest %s: version field is not a string", path)
	}
	return v.String(), nil
}

// ReadName returns the manifest's "productName" or, failing that, "name" field.
func ReadName(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	res := gjson.GetManyBytes(data, "productName", "name")
	for _, r := range res {
		if r.String() != "" {
			return r.String(), nil
		}
	}
	return "", nil
}

// Snapshot is the content of a set of files at one point in time.
type Snapshot struct {
	files map[string][]byte // nil value: file did not exist
}

// Take records the current content of paths. Missing files are remembered as missing.
func Take(paths ...string) (*Snapshot, error) {
	s := &Snapshot{files: make(map[string][]byte, len(paths))}
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			if os.IsNotExist(err) {
				s.files[p] = nil
				continue
			}
			return nil, fmt.Errorf("failed to snapshot %s: %w", p, err)
		}
		s.files[p] = data
	}
	return s, nil
}

// Restore writes every recorded file back, removing those that did not exist.
func (s *Snapshot) Restore() error {
	for p, data := range s.files {
		if data == nil {
			if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to remove %s: %w", p, err)
			}
			continue
		}
		if err := os.WriteFile(p, data, 0644); err != nil {
			return fmt.Errorf("failed to restore %s: %w", p, err)
		}
	}
	return nil
}
