// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package git wraps the git command-line operations used around a release:
// the clean-tree check, version commits, and the tag that triggers CI.
package git

import (
	"context"
	"fmt"
	"strings"

	"release-manager/internal/runner"
)

// Repo runs git in one working tree.
type Repo struct {
	Dir    string
	Remote string

	exec runner.Executor
}

func New(exec runner.Executor, dir, remote string) *Repo {
	return &Repo{Dir: dir, Remote: remote, exec: exec}
}

func (r *Repo) step(name string, args ...string) runner.Step {
	return runner.Step{Name: name, Command: "git", Args: args, Dir: r.Dir}
}

// Status returns the porcelain status lines; an empty result means the tree is clean.
func (r *Repo) Status(ctx context.Context) ([]string, error) {
	out, err := r.exec.Output(ctx, r.step("Check Working Tree", "status", "--porcelain"))
	if err != nil {
		return nil, fmt.Errorf("git status failed: %w", err)
	}
	var dirty []string
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) != "" {
			dirty = append(dirty, line)
		}
	}
	return dirty, nil
}

// TagExists reports whether tag exists in the local repository.
func (r *Repo) TagExists(ctx context.Context, tag string) (bool, error) {
	_, err := r.exec.Output(ctx, r.step("Look Up Tag", "rev-parse", "-q", "--verify", "refs/tags/"+tag))
	if err == nil {
		return true, nil
	}
	// rev-parse --verify -q exits 1 without output for a missing ref
	if runner.ExitCode(err) == 1 {
		return false, nil
	}
	return false, fmt.Errorf("failed to look up tag %s: %w", tag, err)
}

// RemoteTagExists reports whether tag exists on the configured remote.
func (r *Repo) RemoteTagExists(ctx context.Context, tag string) (bool, error) {
	out, err := r.exec.Output(ctx, r.step("Look Up Remote Tag", "ls-remote", "--tags", r.Remote, "refs/tags/"+tag))
	if err != nil {
		return false, fmt.Errorf("failed to look up tag %s on %s: %w", tag, r.Remote, err)
	}
	return strings.TrimSpace(out) != "", nil
}

// CreateTag creates an annotated tag on HEAD.
func (r *Repo) CreateTag(ctx context.Context, tag, message string) error {
	return r.exec.Run(ctx, r.step("Create Tag", "tag", "-a", tag, "-m", message))
}

// PushTag pushes a single tag to the remote.
func (r *Repo) PushTag(ctx context.Context, tag string) error {
	return r.exec.Run(ctx, r.step("Push Tag", "push", r.Remote, tag))
}

// Commit stages paths and commits them with message.
func (r *Repo) Commit(ctx context.Context, message string, paths ...string) error {
	if len(paths) > 0 {
		args := append([]string{"add", "--"}, paths...)
		if err := r.exec.Run(ctx, r.step("Stage Files", args...)); err != nil {
			return err
		}
	}
	return r.exec.Run(ctx, r.step("Commit", "commit", "-m", message))
}

// Unstage removes paths from the index, leaving the working tree alone.
func (r *Repo) Unstage(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"reset", "-q", "--"}, paths...)
	return r.exec.Run(ctx, r.step("Unstage Files", args...))
}

// Push pushes the current branch to the remote.
func (r *Repo) Push(ctx context.Context) error {
	branch, err := r.CurrentBranch(ctx)
	if err != nil {
		return err
	}
	return r.exec.Run(ctx, r.step("Push Branch", "push", r.Remote, branch))
}

// CurrentBranch returns the checked-out branch name.
func (r *Repo) CurrentBranch(ctx context.Context) (string, error) {
	out, err := r.exec.Output(ctx, r.step("Current Branch", "rev-parse", "--abbrev-ref", "HEAD"))
	if err != nil {
		return "", fmt.Errorf("failed to determine current branch: %w", err)
	}
	if out == "HEAD" {
		return "", fmt.Errorf("HEAD is detached; check out a branch before releasing")
	}
	return out, nil
}
