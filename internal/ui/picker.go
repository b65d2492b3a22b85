// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"release-manager/internal/version"
)

// ErrCancelled is returned when the picker is closed without a selection.
var ErrCancelled = errors.New("version selection cancelled")

// ChoiceKind tells the caller what to do with a selection.
type ChoiceKind int

const (
	ChoiceVersion ChoiceKind = iota // Version holds the new version
	ChoiceCustom                    // ask for a version as free text
	ChoiceKeep                      // keep the current version
)

// Choice is one row of the picker.
type Choice struct {
	Label   string
	Version string
	Kind    ChoiceKind
}

// Picker is a bubbletea model offering the next patch/minor/major version,
// a custom version, or keeping the current one.
type Picker struct {
	current  string
	choices  []Choice
	cursor   int
	selected *Choice
	keymap   KeyMap
}

// NewPicker builds the choices for current. Increments that cannot be
// computed (unparseable current version) are left out.
func NewPicker(current string) Picker {
	var choices []Choice
	for _, kind := range version.Kinds {
		next, err := version.Next(current, kind)
		if err != nil {
			continue
		}
		choices = append(choices, Choice{Label: string(kind), Version: next, Kind: ChoiceVersion})
	}
	choices = append(choices,
		Choice{Label: "custom…", Kind: ChoiceCustom},
		Choice{Label: "keep current", Version: current, Kind: ChoiceKeep},
	)
	return Picker{current: current, choices: choices, keymap: DefaultKeyMap}
}

func (m Picker) Init() tea.Cmd {
	return nil
}

func (m Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keymap.Quit):
		return m, tea.Quit
	case key.Matches(keyMsg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keymap.Down):
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keymap.Home):
		m.cursor = 0
	case key.Matches(keyMsg, m.keymap.End):
		m.cursor = len(m.choices) - 1
	case key.Matches(keyMsg, m.keymap.Enter):
		choice := m.choices[m.cursor]
		m.selected = &choice
		return m, tea.Quit
	}
	return m, nil
}

func (m Picker) View() string {
	if m.selected != nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Current version: %s", m.current)))
	b.WriteString("\n\n")
	for i, c := range m.choices {
		prefix := "  "
		label := c.Label
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
			label = cursorStyle.Render(label)
		}
		b.WriteString(prefix + label)
		if c.Kind == ChoiceVersion {
			b.WriteString(" " + dimStyle.Render("→ ") + identifierStyle.Render(c.Version))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n" + renderHelp(m.keymap) + "\n")
	return b.String()
}

// Selected returns the chosen row, or false if the picker was cancelled.
func (m Picker) Selected() (Choice, bool) {
	if m.selected == nil {
		return Choice{}, false
	}
	return *m.selected, true
}

func renderHelp(k KeyMap) string {
	var parts []string
	for _, b := range k.ShortHelp() {
		h := b.Help()
		parts = append(parts, footerKeyStyle.Render(h.Key)+" "+footerDescStyle.Render(h.Desc))
	}
	return strings.Join(parts, footerSepStyle.Render(" | "))
}

// PickVersion runs the picker on the terminal.
func PickVersion(current string) (Choice, error) {
	p := tea.NewProgram(NewPicker(current))
	final, err := p.Run()
	if err != nil {
		return Choice{}, fmt.Errorf("version picker failed: %w", err)
	}
	choice, ok := final.(Picker).Selected()
	if !ok {
		return Choice{}, ErrCancelled
	}
	return choice, nil
}
