// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package prompt asks the yes/no and free-text questions that drive a release run.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
)

// ErrAborted is returned when the user interrupts a prompt (Ctrl-C or end of input).
var ErrAborted = errors.New("prompt aborted")

// Prompter asks the user questions.
type Prompter interface {
	// Confirm asks a yes/no question. Only "y" and "yes" count as yes.
	Confirm(question string) (bool, error)
	// Input asks for free text. An empty answer returns def.
	Input(question, def string) (string, error)
}

// IsYes reports whether answer is an affirmative reply.
func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// Line prompts on the controlling terminal with line editing.
type Line struct {
	state *liner.State

	// The terminal is only in raw mode while a prompt is open, so that child
	// process output and the version picker render normally in between.
	origMode liner.ModeApplier
	rawMode  liner.ModeApplier
}

// NewLine takes over the terminal for prompting; Close must be called to restore it.
func NewLine() *Line {
	origMode, origErr := liner.TerminalMode()
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)

	l := &Line{state: state}
	if origErr == nil {
		rawMode, err := liner.TerminalMode()
		if err == nil {
			l.origMode, l.rawMode = origMode, rawMode
			_ = origMode.ApplyMode()
		}
	}
	return l
}

func (l *Line) Close() error {
	return l.state.Close()
}

func (l *Line) Confirm(question string) (bool, error) {
	answer, err := l.ask(fmt.Sprintf("%s (y/n): ", question))
	if err != nil {
		return false, err
	}
	return IsYes(answer), nil
}

func (l *Line) Input(question, def string) (string, error) {
	p := fmt.Sprintf("%s: ", question)
	if def != "" {
		p = fmt.Sprintf("%s [%s]: ", question, def)
	}
	answer, err := l.ask(p)
	if err != nil {
		return "", err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return def, nil
	}
	l.state.AppendHistory(answer)
	return answer, nil
}

func (l *Line) ask(p string) (string, error) {
	if l.rawMode != nil {
		_ = l.rawMode.ApplyMode()
		defer l.origMode.ApplyMode()
	}
	answer, err := l.state.Prompt(p)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return "", ErrAborted
		}
		return "", fmt.Errorf("error reading answer: %w", err)
	}
	return answer, nil
}

// Interactive reports whether the terminal supports line editing.
func Interactive() bool {
	return liner.TerminalSupported()
}
