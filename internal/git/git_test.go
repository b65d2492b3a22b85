// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package git

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"release-manager/internal/runner/runnertest"
)

func TestStatus(t *testing.T) {
	fake := (&runnertest.Fake{}).On("git status --porcelain", " M package.json\n?? notes.txt\n", nil)
	repo := New(fake, "/proj", "origin")

	dirty, err := repo.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{" M package.json", "?? notes.txt"}, dirty)
	assert.Equal(t, "/proj", fake.Calls[0].Step.Dir)
}

func TestStatus_Clean(t *testing.T) {
	repo := New(&runnertest.Fake{}, "/proj", "origin")
	dirty, err := repo.Status(context.Background())
	require.NoError(t, err)
	assert.Empty(t, dirty)
}

func TestStatus_NotARepo(t *testing.T) {
	fake := (&runnertest.Fake{}).Fail("git status", 128, "fatal: not a git repository")
	_, err := New(fake, "/proj", "origin").Status(context.Background())
	assert.Error(t, err)
}

func TestTagExists(t *testing.T) {
	fake := (&runnertest.Fake{}).
		On("git rev-parse -q --verify refs/tags/v1.0.0", "abc123", nil).
		Fail("git rev-parse -q --verify refs/tags/v2.0.0", 1, "")
	repo := New(fake, "/proj", "origin")

	ok, err := repo.TagExists(context.Background(), "v1.0.0")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.TagExists(context.Background(), "v2.0.0")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTagExists_OtherFailure(t *testing.T) {
	fake := (&runnertest.Fake{}).Fail("git rev-parse", 128, "fatal: not a git repository")
	_, err := New(fake, "/proj", "origin").TagExists(context.Background(), "v1.0.0")
	assert.Error(t, err)
}

func TestRemoteTagExists(t *testing.T) {
	fake := (&runnertest.Fake{}).
		On("git ls-remote --tags upstream refs/tags/v1.0.0", "abc123\trefs/tags/v1.0.0", nil)
	repo := New(fake, "/proj", "upstream")

	ok, err := repo.RemoteTagExists(context.Background(), "v1.0.0")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.RemoteTagExists(context.Background(), "v1.0.1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCreateAndPushTag(t *testing.T) {
	fake := &runnertest.Fake{}
	repo := New(fake, "/proj", "origin")

	require.NoError(t, repo.CreateTag(context.Background(), "v1.0.0", "Release v1.0.0"))
	require.NoError(t, repo.PushTag(context.Background(), "v1.0.0"))
	assert.Equal(t, []string{
		"git tag -a v1.0.0 -m 'Release v1.0.0'",
		"git push origin v1.0.0",
	}, fake.Lines())
}

func TestCommitAndPush(t *testing.T) {
	fake := (&runnertest.Fake{}).On("git rev-parse --abbrev-ref HEAD", "main", nil)
	repo := New(fake, "/proj", "origin")

	require.NoError(t, repo.Commit(context.Background(), "chore: release v1.0.0", "package.json", "package-lock.json"))
	require.NoError(t, repo.Push(context.Background()))
	assert.Equal(t, []string{
		"git add -- package.json package-lock.json",
		"git commit -m 'chore: release v1.0.0'",
		"git rev-parse --abbrev-ref HEAD",
		"git push origin main",
	}, fake.Lines())
}

func TestCommit_StopsWhenAddFails(t *testing.T) {
	fake := (&runnertest.Fake{}).On("git add", "", errors.New("boom"))
	repo := New(fake, "/proj", "origin")

	assert.Error(t, repo.Commit(context.Background(), "msg", "package.json"))
	assert.False(t, fake.Ran("git commit"))
}

func TestUnstage(t *testing.T) {
	fake := &runnertest.Fake{}
	repo := New(fake, "/proj", "origin")

	require.NoError(t, repo.Unstage(context.Background(), "package.json", "package-lock.json"))
	require.NoError(t, repo.Unstage(context.Background()))
	assert.Equal(t, []string{"git reset -q -- package.json package-lock.json"}, fake.Lines())
}

func TestPush_DetachedHead(t *testing.T) {
	fake := (&runnertest.Fake{}).On("git rev-parse --abbrev-ref HEAD", "HEAD", nil)
	assert.Error(t, New(fake, "/proj", "origin").Push(context.Background()))
	assert.False(t, fake.Ran("git push"))
}
