// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package prompt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"release-manager/internal/prompt"
	"release-manager/internal/prompt/prompttest"
)

func TestIsYes(t *testing.T) {
	for _, a := range []string{"y", "Y", "yes", " YES ", "Yes"} {
		assert.True(t, prompt.IsYes(a), a)
	}
	for _, a := range []string{"", "n", "no", "yep", "1", "true"} {
		assert.False(t, prompt.IsYes(a), a)
	}
}

func TestScripted(t *testing.T) {
	var p prompt.Prompter = prompttest.New("y", "", "2.0.0", "nope")

	ok, err := p.Confirm("Change version?")
	require.NoError(t, err)
	assert.True(t, ok)

	v, err := p.Input("New version", "1.0.1")
	require.NoError(t, err)
	assert.Equal(t, "1.0.1", v)

	v, err = p.Input("New version", "1.0.1")
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", v)

	ok, err = p.Confirm("Release?")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = p.Confirm("One more?")
	assert.ErrorIs(t, err, prompt.ErrAborted)
}
