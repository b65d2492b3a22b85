// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package release talks to the release service through its command-line
// client (gh): looking a release up by tag, creating it, and uploading
// installers with overwrite semantics.
package release

import (
	"context"
	"fmt"
	"strings"

	"release-manager/internal/logger"
	"release-manager/internal/runner"
)

// Client wraps the release CLI.
type Client struct {
	CLI  string // e.g. "gh"
	Repo string // optional owner/name
	Dir  string

	exec runner.Executor
}

func New(exec runner.Executor, cli, repo, dir string) *Client {
	return &Client{CLI: cli, Repo: repo, Dir: dir, exec: exec}
}

func (c *Client) step(name string, args ...string) runner.Step {
	if c.Repo != "" {
		args = append(args, "--repo", c.Repo)
	}
	return runner.Step{Name: name, Command: c.CLI, Args: append([]string{"release"}, args...), Dir: c.Dir}
}

// Exists reports whether a release for tag exists.
func (c *Client) Exists(ctx context.Context, tag string) (bool, error) {
	_, err := c.exec.Output(ctx, c.step("View Release", "view", tag, "--json", "tagName"))
	if err == nil {
		return true, nil
	}
	if strings.Contains(strings.ToLower(runner.Stderr(err)), "not found") {
		return false, nil
	}
	return false, fmt.Errorf("failed to look up release %s: %w", tag, err)
}

// Create creates the release for tag with files attached.
func (c *Client) Create(ctx context.Context, tag, notes string, files []string) error {
	args := []string{"create", tag}
	args = append(args, files...)
	args = append(args, "--title", tag, "--notes", notes)
	return c.exec.Run(ctx, c.step("Create Release", args...))
}

// Upload attaches files to an existing release, replacing assets with the same name.
func (c *Client) Upload(ctx context.Context, tag string, files []string) error {
	args := []string{"upload", tag}
	args = append(args, files...)
	args = append(args, "--clobber")
	return c.exec.Run(ctx, c.step("Upload Assets", args...))
}

// Outcome describes what Publish did.
type Outcome struct {
	Created  bool
	Uploaded int
}

// Publish creates the release when it does not exist yet and otherwise
// uploads files into the existing one.
func (c *Client) Publish(ctx context.Context, tag string, files []string) (Outcome, error) {
	if len(files) == 0 {
		return Outcome{}, fmt.Errorf("no files to publish for %s", tag)
	}

	exists, err := c.Exists(ctx, tag)
	if err != nil {
		return Outcome{}, err
	}

	if exists {
		logger.Info("updating existing release", "tag", tag, "files", len(files))
		if err := c.Upload(ctx, tag, files); err != nil {
			return Outcome{}, fmt.Errorf("failed to upload to release %s: %w", tag, err)
		}
		return Outcome{Uploaded: len(files)}, nil
	}

	logger.Info("creating release", "tag", tag, "files", len(files))
	if err := c.Create(ctx, tag, fmt.Sprintf("Release %s", tag), files); err != nil {
		return Outcome{}, fmt.Errorf("failed to create release %s: %w", tag, err)
	}
	return Outcome{Created: true, Uploaded: len(files)}, nil
}
