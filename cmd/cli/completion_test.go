// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"release-manager/internal/artifact"
)

func TestStagedVersions(t *testing.T) {
	staged := []artifact.Artifact{
		{Name: "Player Setup 1.4.2.exe"},
		{Name: "Player-1.4.2.dmg"},
		{Name: "Player-1.10.0.AppImage"},
		{Name: "Player-2.0.0-beta.1.dmg"},
		{Name: "notes.txt"},
	}
	assert.Equal(t, []string{"2.0.0-beta.1", "1.10.0", "1.4.2"}, stagedVersions(staged))
}

func TestStagedVersions_Empty(t *testing.T) {
	assert.Empty(t, stagedVersions(nil))
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "512 B", humanSize(512))
	assert.Equal(t, "1.5 KiB", humanSize(1536))
	assert.Equal(t, "84.0 MiB", humanSize(84*1024*1024))
}
