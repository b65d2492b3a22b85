// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndList(t *testing.T) {
	j, err := OpenIn(t.TempDir())
	require.NoError(t, err)
	defer j.Close()

	start := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	for i, v := range []string{"1.0.0", "1.0.1", "1.1.0"} {
		id, err := j.Append(Record{
			Project:      "player",
			VersionAfter: v,
			Tag:          "v" + v,
			Steps:        []StepResult{{Step: "tag", Status: "done"}},
			StartedAt:    start.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(i+1), id)
	}

	all, err := j.List(0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "1.1.0", all[0].VersionAfter)
	assert.Equal(t, uint64(3), all[0].ID)
	assert.Equal(t, "1.0.0", all[2].VersionAfter)
	assert.Equal(t, []StepResult{{Step: "tag", Status: "done"}}, all[2].Steps)
	assert.True(t, all[2].StartedAt.Equal(start))

	latest, err := j.List(2)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, "1.0.1", latest[1].VersionAfter)
}

func TestReopenKeepsRecords(t *testing.T) {
	dir := t.TempDir()
	j, err := OpenIn(dir)
	require.NoError(t, err)
	_, err = j.Append(Record{VersionAfter: "2.0.0"})
	require.NoError(t, err)
	require.NoError(t, j.Close())

	j, err = OpenIn(dir)
	require.NoError(t, err)
	defer j.Close()
	records, err := j.List(10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2.0.0", records[0].VersionAfter)
}

func TestList_Empty(t *testing.T) {
	j, err := OpenIn(t.TempDir())
	require.NoError(t, err)
	defer j.Close()

	records, err := j.List(5)
	require.NoError(t, err)
	assert.Empty(t, records)
}
