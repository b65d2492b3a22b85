// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stage(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte(n), 0644))
	}
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	stage(t, dir, "Player-1.2.0.dmg", "Player Setup 1.1.0.exe")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "mac-arm64"), 0755))

	artifacts, err := List(dir)
	require.NoError(t, err)
	require.Len(t, artifacts, 2)
	assert.Equal(t, "Player Setup 1.1.0.exe", artifacts[0].Name)
	assert.Equal(t, "Player-1.2.0.dmg", artifacts[1].Name)
	assert.Equal(t, filepath.Join(dir, "Player-1.2.0.dmg"), artifacts[1].Path)
	assert.Equal(t, int64(len("Player-1.2.0.dmg")), artifacts[1].Size)
}

func TestList_MissingDir(t *testing.T) {
	_, err := List(filepath.Join(t.TempDir(), "release"))
	assert.ErrorIs(t, err, ErrNoStagingDir)
}

func TestForVersion(t *testing.T) {
	all := []Artifact{
		{Name: "Player-1.2.0.dmg"},
		{Name: "Player Setup 1.2.0.exe"},
		{Name: "Player-1.1.0.dmg"},
		{Name: "Player-1.2.0-arm64.dmg"},
	}

	got := ForVersion(all, "1.2.0")
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Player-1.2.0.dmg", "Player Setup 1.2.0.exe", "Player-1.2.0-arm64.dmg"},
		[]string{got[0].Name, got[1].Name, got[2].Name})

	assert.Empty(t, ForVersion(all, "2.0.0"))
	assert.Empty(t, ForVersion(all, ""))
}

func TestPaths(t *testing.T) {
	assert.Equal(t, []string{"/r/a.dmg", "/r/b.exe"},
		Paths([]Artifact{{Path: "/r/a.dmg"}, {Path: "/r/b.exe"}}))
}
