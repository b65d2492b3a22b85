// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteArgForShell(t *testing.T) {
	tests := map[string]string{
		"":                  `''`,
		"build:mac":         "build:mac",
		"v1.2.3":            "v1.2.3",
		"release/app-1.dmg": "release/app-1.dmg",
		"Release v1.2.3":    `'Release v1.2.3'`,
		"it's":              `'it'\''s'`,
		"$HOME":             `'$HOME'`,
		"--notes=a b":       `'--notes=a b'`,
	}
	for in, want := range tests {
		assert.Equal(t, want, QuoteArgForShell(in), "input %q", in)
	}
}
