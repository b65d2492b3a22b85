// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package runnertest provides a scripted runner.Executor for tests of the
// packages that drive git, the package manager and the release CLI.
package runnertest

import (
	"context"
	"fmt"
	"strings"

	"release-manager/internal/runner"
)

// Call records one step handed to the fake.
type Call struct {
	Step    runner.Step
	Line    string // runner.CommandLine(Step)
	Capture bool   // true for Output, false for Run
}

// ExitError mimics a process that exited with a non-zero status.
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string      { return fmt.Sprintf("exit status %d", e.Code) }
func (e *ExitError) ExitCode() int      { return e.Code }
func (e *ExitError) StderrText() string { return e.Stderr }

type rule struct {
	prefix string
	fn     func(step runner.Step) (string, error)
}

// Fake answers steps from rules matched by command-line prefix. The most
// recently added matching rule wins; unmatched steps succeed with no output.
type Fake struct {
	Calls []Call
	rules []rule
}

// On makes every step whose command line starts with prefix return out and err.
func (f *Fake) On(prefix, out string, err error) *Fake {
	return f.Do(prefix, func(runner.Step) (string, error) { return out, err })
}

// Fail makes matching steps exit with code and stderr.
func (f *Fake) Fail(prefix string, code int, stderr string) *Fake {
	return f.On(prefix, "", &ExitError{Code: code, Stderr: stderr})
}

// Do registers a callback for matching steps, for side effects such as writing files.
func (f *Fake) Do(prefix string, fn func(step runner.Step) (string, error)) *Fake {
	f.rules = append(f.rules, rule{prefix: prefix, fn: fn})
	return f
}

func (f *Fake) Run(ctx context.Context, step runner.Step) error {
	_, err := f.dispatch(step, false)
	return err
}

func (f *Fake) Output(ctx context.Context, step runner.Step) (string, error) {
	return f.dispatch(step, true)
}

func (f *Fake) dispatch(step runner.Step, capture bool) (string, error) {
	line := runner.CommandLine(step)
	f.Calls = append(f.Calls, Call{Step: step, Line: line, Capture: capture})
	for i := len(f.rules) - 1; i >= 0; i-- {
		if strings.HasPrefix(line, f.rules[i].prefix) {
			return f.rules[i].fn(step)
		}
	}
	return "", nil
}

// Lines returns the command lines seen so far, in order.
func (f *Fake) Lines() []string {
	lines := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		lines[i] = c.Line
	}
	return lines
}

// Ran reports whether any executed command line starts with prefix.
func (f *Fake) Ran(prefix string) bool {
	for _, c := range f.Calls {
		if strings.HasPrefix(c.Line, prefix) {
			return true
		}
	}
	return false
}
