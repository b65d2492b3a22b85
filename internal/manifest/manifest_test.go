// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestReadVersion(t *testing.T) {
	dir := t.TempDir()

	p := writeFile(t, dir, "package.json", `{"name":"player","version":"1.4.2","scripts":{"build:mac":"electron-builder --mac"}}`)
	v, err := ReadVersion(p)
	require.NoError(t, err)
	assert.Equal(t, "1.4.2", v)

	p = writeFile(t, dir, "noversion.json", `{"name":"player"}`)
	v, err = ReadVersion(p)
	require.NoError(t, err)
	assert.Equal(t, DefaultVersion, v)

	p = writeFile(t, dir, "numeric.json", `{"version":3}`)
	_, err = ReadVersion(p)
	assert.Error(t, err)

	p = writeFile(t, dir, "broken.json", `{"version":`)
	_, err = ReadVersion(p)
	assert.Error(t, err)

	_, err = ReadVersion(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestReadName(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "package.json", `{"name":"player","productName":"Media Player"}`)
	name, err := ReadName(p)
	require.NoError(t, err)
	assert.Equal(t, "Media Player", name)

	p = writeFile(t, dir, "plain.json", `{"name":"player"}`)
	name, err = ReadName(p)
	require.NoError(t, err)
	assert.Equal(t, "player", name)
}

func TestSnapshotRestore(t *testing.T) {
	dir := t.TempDir()
	pkg := writeFile(t, dir, "package.json", `{"version":"1.0.0"}`)
	lock := filepath.Join(dir, "package-lock.json")

	snap, err := Take(pkg, lock)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(pkg, []byte(`{"version":"9.9.9"}`), 0644))
	require.NoError(t, os.WriteFile(lock, []byte(`{}`), 0644))

	require.NoError(t, snap.Restore())

	v, err := ReadVersion(pkg)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", v)
	assert.NoFileExists(t, lock)
}
