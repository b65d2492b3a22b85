// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package prompttest provides a prompt.Prompter that replays canned answers.
package prompttest

import (
	"strings"

	"release-manager/internal/prompt"
)

// Scripted answers questions from a queue. Once the queue is empty every
// question fails with prompt.ErrAborted.
type Scripted struct {
	Answers   []string
	Questions []string
}

// New returns a Scripted prompter with the given answers.
func New(answers ...string) *Scripted {
	return &Scripted{Answers: answers}
}

func (s *Scripted) next(question string) (string, error) {
	s.Questions = append(s.Questions, question)
	if len(s.Answers) == 0 {
		return "", prompt.ErrAborted
	}
	a := s.Answers[0]
	s.Answers = s.Answers[1:]
	return a, nil
}

func (s *Scripted) Confirm(question string) (bool, error) {
	a, err := s.next(question)
	if err != nil {
		return false, err
	}
	return prompt.IsYes(a), nil
}

func (s *Scripted) Input(question, def string) (string, error) {
	a, err := s.next(question)
	if err != nil {
		return "", err
	}
	if a = strings.TrimSpace(a); a == "" {
		return def, nil
	}
	return a, nil
}
