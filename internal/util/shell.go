// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package util

import "strings"

// shellSafe holds the characters that never need quoting in a POSIX shell word.
const shellSafe = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-_./:=@%+,"

// QuoteArgForShell quotes an argument for display as part of a POSIX shell command.
// Words made only of safe characters are returned as-is; anything else is wrapped
// in single quotes with internal single quotes escaped.
func QuoteArgForShell(arg string) string {
	if arg == "" {
		return `''`
	}
	if strings.Trim(arg, shellSafe) == "" {
		return arg
	}

	quotedArg := strings.ReplaceAll(arg, "'", `'\''`)
	return `'` + quotedArg + `'`
}
