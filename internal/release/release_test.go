// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package release

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"release-manager/internal/logger"
	"release-manager/internal/runner/runnertest"
)

func init() {
	logger.SetLogger(zap.NewNop())
}

func TestExists(t *testing.T) {
	fake := (&runnertest.Fake{}).
		On("gh release view v1.0.0", `{"tagName":"v1.0.0"}`, nil).
		Fail("gh release view v2.0.0", 1, "release not found")
	c := New(fake, "gh", "", "/proj")

	ok, err := c.Exists(context.Background(), "v1.0.0")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.Exists(context.Background(), "v2.0.0")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExists_AuthFailureIsAnError(t *testing.T) {
	fake := (&runnertest.Fake{}).Fail("gh release view", 4, "gh auth login required")
	_, err := New(fake, "gh", "", "/proj").Exists(context.Background(), "v1.0.0")
	assert.Error(t, err)
}

func TestPublish_CreatesMissingRelease(t *testing.T) {
	fake := (&runnertest.Fake{}).Fail("gh release view", 1, "release not found")
	c := New(fake, "gh", "acme/player", "/proj")

	out, err := c.Publish(context.Background(), "v1.2.0", []string{"release/Player-1.2.0.dmg"})
	require.NoError(t, err)
	assert.Equal(t, Outcome{Created: true, Uploaded: 1}, out)
	assert.Equal(t, []string{
		"gh release view v1.2.0 --json tagName --repo acme/player",
		"gh release create v1.2.0 release/Player-1.2.0.dmg --title v1.2.0 --notes 'Release v1.2.0' --repo acme/player",
	}, fake.Lines())
}

func TestPublish_UploadsToExistingRelease(t *testing.T) {
	fake := &runnertest.Fake{}
	c := New(fake, "gh", "", "/proj")

	out, err := c.Publish(context.Background(), "v1.2.0", []string{"a.dmg", "b.exe"})
	require.NoError(t, err)
	assert.Equal(t, Outcome{Uploaded: 2}, out)
	assert.Equal(t, "gh release upload v1.2.0 a.dmg b.exe --clobber", fake.Lines()[1])
	assert.False(t, fake.Ran("gh release create"))
}

func TestPublish_NoFiles(t *testing.T) {
	fake := &runnertest.Fake{}
	_, err := New(fake, "gh", "", "/proj").Publish(context.Background(), "v1.2.0", nil)
	assert.Error(t, err)
	assert.Empty(t, fake.Calls)
}

func TestPublish_UploadFailure(t *testing.T) {
	fake := (&runnertest.Fake{}).Fail("gh release upload", 1, "HTTP 422")
	_, err := New(fake, "gh", "", "/proj").Publish(context.Background(), "v1.2.0", []string{"a.dmg"})
	assert.Error(t, err)
}
