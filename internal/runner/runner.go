// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"release-manager/internal/logger"
	"release-manager/internal/util"
)

// Step is a single external command invocation.
type Step struct {
	Name    string
	Command string
	Args    []string
	Dir     string // Working directory; empty means the executor's default
}

// Executor runs steps synchronously. Run streams the command's output to the
// terminal; Output captures stdout and folds stderr into the returned error.
type Executor interface {
	Run(ctx context.Context, step Step) error
	Output(ctx context.Context, step Step) (string, error)
}

// Local executes steps as child processes on this machine.
type Local struct {
	Dir    string
	Stdout io.Writer
	Stderr io.Writer

	execCommand func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewLocal returns an executor rooted at dir that writes to the process's stdout/stderr.
func NewLocal(dir string) *Local {
	return &Local{
		Dir:         dir,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		execCommand: exec.CommandContext,
	}
}

func (l *Local) command(ctx context.Context, step Step) *exec.Cmd {
	cmd := l.execCommand(ctx, step.Command, step.Args...)
	cmd.Dir = l.Dir
	if step.Dir != "" {
		cmd.Dir = step.Dir
	}
	return cmd
}

// Run executes step with its output attached to the executor's writers.
func (l *Local) Run(ctx context.Context, step Step) error {
	cmd := l.command(ctx, step)
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr

	logger.Debug("running step", "step", step.Name, "command", CommandLine(step), "dir", cmd.Dir)
	return runLocalCommand(cmd, describe(step))
}

// Output executes step and returns its stdout without trailing whitespace.
func (l *Local) Output(ctx context.Context, step Step) (string, error) {
	cmd := l.command(ctx, step)
	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	logger.Debug("querying", "step", step.Name, "command", CommandLine(step), "dir", cmd.Dir)
	err := runLocalCommand(cmd, describe(step))
	out := strings.TrimRight(stdoutBuf.String(), " \t\r\n")
	if err != nil {
		if stderrStr := strings.TrimSpace(stderrBuf.String()); stderrStr != "" {
			return out, &outputError{err: err, stderr: stderrStr}
		}
		return out, err
	}
	return out, nil
}

func describe(step Step) string {
	return fmt.Sprintf("step '%s' (%s)", step.Name, step.Command)
}

// outputError keeps the captured stderr next to the wrapped command error.
type outputError struct {
	err    error
	stderr string
}

func (e *outputError) Error() string { return fmt.Sprintf("%v: %s", e.err, e.stderr) }
func (e *outputError) Unwrap() error { return e.err }

// Stderr returns the captured stderr of a failed Output call, if any.
func Stderr(err error) string {
	var oe *outputError
	if errors.As(err, &oe) {
		return oe.stderr
	}
	var se interface{ StderrText() string }
	if errors.As(err, &se) {
		return se.StderrText()
	}
	return ""
}

// ExitCode extracts the exit status carried by err, or -1 when there is none.
func ExitCode(err error) int {
	var coded interface{ ExitCode() int }
	if errors.As(err, &coded) {
		return coded.ExitCode()
	}
	return -1
}

// CommandLine renders step as a shell command line, for display and logs.
func CommandLine(step Step) string {
	parts := make([]string, 0, len(step.Args)+1)
	parts = append(parts, util.QuoteArgForShell(step.Command))
	for _, arg := range step.Args {
		parts = append(parts, util.QuoteArgForShell(arg))
	}
	return strings.Join(parts, " ")
}
