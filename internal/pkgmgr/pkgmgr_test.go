// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package pkgmgr

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"release-manager/internal/runner/runnertest"
)

func TestNew_RejectsUnknown(t *testing.T) {
	_, err := New(&runnertest.Fake{}, "bun", ".", "package.json")
	assert.Error(t, err)
}

func TestSetVersion(t *testing.T) {
	tests := map[string]string{
		"npm":  "npm version 1.2.3 --no-git-tag-version --allow-same-version",
		"pnpm": "pnpm version 1.2.3 --no-git-tag-version --allow-same-version",
		"yarn": "yarn version --new-version 1.2.3 --no-git-tag-version",
	}
	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			fake := &runnertest.Fake{}
			m, err := New(fake, name, "/proj", "package.json")
			require.NoError(t, err)

			require.NoError(t, m.SetVersion(context.Background(), "1.2.3"))
			require.Len(t, fake.Calls, 1)
			assert.Equal(t, want, fake.Calls[0].Line)
			assert.Equal(t, "/proj", fake.Calls[0].Step.Dir)
			assert.False(t, fake.Calls[0].Capture)
		})
	}
}

func TestSetVersion_PropagatesFailure(t *testing.T) {
	fake := (&runnertest.Fake{}).Fail("npm version", 1, "npm ERR! Version not changed")
	m, err := New(fake, "npm", "/proj", "package.json")
	require.NoError(t, err)

	assert.Error(t, m.SetVersion(context.Background(), "1.2.3"))
}

func TestRunScript(t *testing.T) {
	fake := &runnertest.Fake{}
	m, err := New(fake, "npm", "/proj", "package.json")
	require.NoError(t, err)

	require.NoError(t, m.RunScript(context.Background(), "build:mac"))
	assert.Equal(t, []string{"npm run build:mac"}, fake.Lines())
}

func TestVersionFiles(t *testing.T) {
	dir := t.TempDir()
	m, err := New(&runnertest.Fake{}, "npm", dir, "package.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"package.json"}, m.VersionFiles())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "package-lock.json"), []byte("{}"), 0644))
	assert.Equal(t, []string{"package.json", "package-lock.json"}, m.VersionFiles())
}
