// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	skippedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	successStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	cursorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	identifierStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	boxStyle        = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("238")). // Light grey border
			Padding(0, 1)

	footerKeyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))  // Bright blue for key
	footerDescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250")) // Light grey for description
	footerSepStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")) // Dim grey for separator "|"
)
