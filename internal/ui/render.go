// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Row is one line of the end-of-run summary.
type Row struct {
	Step   string
	Status string // done, skipped, failed
	Detail string
}

// RenderBanner renders the header shown at the start of a run.
func RenderBanner(project, version, dir string) string {
	lines := []string{
		titleStyle.Render("relm") + dimStyle.Render(" · release manager"),
		fmt.Sprintf("Project: %s", identifierStyle.Render(project)),
		fmt.Sprintf("Version: %s", identifierStyle.Render(version)),
		dimStyle.Render(dir),
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

// RenderSummary renders the outcome of every step as an aligned table.
func RenderSummary(rows []Row) string {
	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r.Step))
	}

	var lines []string
	lines = append(lines, titleStyle.Render("Summary"))
	for _, r := range rows {
		status := r.Status
		switch r.Status {
		case "done":
			status = successStyle.Render(fmt.Sprintf("%-7s", r.Status))
		case "skipped":
			status = skippedStyle.Render(fmt.Sprintf("%-7s", r.Status))
		case "failed":
			status = errorStyle.Render(fmt.Sprintf("%-7s", r.Status))
		}
		line := fmt.Sprintf("%-*s  %s", width, r.Step, status)
		if r.Detail != "" {
			line += "  " + dimStyle.Render(r.Detail)
		}
		lines = append(lines, line)
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}
