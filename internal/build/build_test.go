// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package build

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"release-manager/internal/config"
	"release-manager/internal/logger"
)

type recordingScripts struct {
	ran   []string
	err   error
	after func()
}

func (r *recordingScripts) RunScript(ctx context.Context, script string) error {
	r.ran = append(r.ran, script)
	if r.after != nil {
		r.after()
	}
	return r.err
}

func newBuilder(t *testing.T, goos string, scripts ScriptRunner) (*Builder, string) {
	t.Helper()
	logger.SetLogger(zap.NewNop())
	dir := t.TempDir()
	b, err := NewFor(config.Default(), dir, goos, scripts)
	require.NoError(t, err)
	return b, dir
}

func writeDist(t *testing.T, b *Builder, names ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(b.DistDir, 0755))
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(b.DistDir, n), []byte(n), 0644))
	}
}

func TestPlatformFor(t *testing.T) {
	cfg := config.Default()

	p, err := PlatformFor(cfg, "darwin")
	require.NoError(t, err)
	assert.Equal(t, "build:mac", p.Script)

	p, err = PlatformFor(cfg, "windows")
	require.NoError(t, err)
	assert.Equal(t, "build:win", p.Script)

	_, err = PlatformFor(cfg, "plan9")
	assert.Error(t, err)
}

func TestBuild_RunsScriptAndStages(t *testing.T) {
	scripts := &recordingScripts{}
	b, dir := newBuilder(t, "darwin", scripts)
	scripts.after = func() {
		writeDist(t, b, "Player-1.2.0.dmg", "Player-1.2.0.DMG.blockmap", "latest-mac.yml", "Player-1.2.0-arm64.DMG")
		require.NoError(t, os.MkdirAll(filepath.Join(b.DistDir, "mac", "Player.dmg"), 0755))
	}

	copied, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"build:mac"}, scripts.ran)

	release := filepath.Join(dir, "release")
	assert.ElementsMatch(t, []string{
		filepath.Join(release, "Player-1.2.0.dmg"),
		filepath.Join(release, "Player-1.2.0-arm64.DMG"),
	}, copied)
	assert.FileExists(t, filepath.Join(release, "Player-1.2.0.dmg"))
	assert.NoFileExists(t, filepath.Join(release, "latest-mac.yml"))
}

func TestBuild_ScriptFailureSkipsStaging(t *testing.T) {
	scripts := &recordingScripts{err: errors.New("exit status 1")}
	b, dir := newBuilder(t, "windows", scripts)
	writeDist(t, b, "Player Setup 1.0.0.exe")

	_, err := b.Build(context.Background())
	require.Error(t, err)
	assert.NoDirExists(t, filepath.Join(dir, "release"))
}

func TestStage_MissingDist(t *testing.T) {
	b, _ := newBuilder(t, "linux", &recordingScripts{})
	_, err := b.Stage()
	assert.Error(t, err)
}

func TestStage_Overwrites(t *testing.T) {
	b, _ := newBuilder(t, "linux", &recordingScripts{})
	writeDist(t, b, "player_1.0.0_amd64.deb")
	require.NoError(t, os.MkdirAll(b.ReleaseDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(b.ReleaseDir, "player_1.0.0_amd64.deb"), []byte("stale"), 0644))

	_, err := b.Stage()
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(b.ReleaseDir, "player_1.0.0_amd64.deb"))
	require.NoError(t, err)
	assert.Equal(t, "player_1.0.0_amd64.deb", string(data))
}

func TestClean(t *testing.T) {
	b, _ := newBuilder(t, "linux", &recordingScripts{})
	writeDist(t, b, "old.AppImage")

	require.NoError(t, b.Clean())
	entries, err := os.ReadDir(b.DistDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.DirExists(t, b.ReleaseDir)

	// Cleaning a missing dist directory is fine too.
	require.NoError(t, os.RemoveAll(b.DistDir))
	require.NoError(t, b.Clean())
	assert.DirExists(t, b.DistDir)
}

func TestNewFor_UnconfiguredHostCanStillClean(t *testing.T) {
	scripts := &recordingScripts{}
	b, _ := newBuilder(t, "freebsd", scripts)

	require.Error(t, b.Supported())
	assert.Equal(t, "freebsd", b.Host())

	_, err := b.Build(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "freebsd")
	assert.Empty(t, scripts.ran)

	require.NoError(t, b.Clean())
	assert.DirExists(t, b.DistDir)
}

func TestSupported_ConfiguredHost(t *testing.T) {
	b, _ := newBuilder(t, "darwin", &recordingScripts{})
	assert.NoError(t, b.Supported())
}
