// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package pipeline

import "github.com/fatih/color"

var (
	statusColor     = color.New(color.FgCyan)
	errorColor      = color.New(color.FgRed)
	stepColor       = color.New(color.FgYellow)
	successColor    = color.New(color.FgGreen)
	identifierColor = color.New(color.FgBlue)
)
