// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package pkgmgr drives the project's package manager: its version command
// edits the manifest and lockfile, and its scripts drive the packaging tool.
package pkgmgr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"release-manager/internal/runner"
)

// lockfiles maps each supported package manager to the lockfile it maintains.
var lockfiles = map[string]string{
	"npm":  "package-lock.json",
	"pnpm": "pnpm-lock.yaml",
	"yarn": "yarn.lock",
}

// Manager wraps one package manager binary for a project directory.
type Manager struct {
	Name     string // npm, pnpm or yarn
	Dir      string
	Manifest string // manifest path relative to Dir

	exec runner.Executor
}

func New(exec runner.Executor, name, dir, manifest string) (*Manager, error) {
	if _, ok := lockfiles[name]; !ok {
		return nil, fmt.Errorf("unsupported package manager '%s'", name)
	}
	return &Manager{Name: name, Dir: dir, Manifest: manifest, exec: exec}, nil
}

// SetVersion writes version into the manifest and lockfile without letting
// the package manager commit or tag; relm does that itself.
func (m *Manager) SetVersion(ctx context.Context, version string) error {
	var args []string
	switch m.Name {
	case "yarn":
		args = []string{"version", "--new-version", version, "--no-git-tag-version"}
	default:
		args = []string{"version", version, "--no-git-tag-version", "--allow-same-version"}
	}
	return m.exec.Run(ctx, runner.Step{
		Name:    "Set Version",
		Command: m.Name,
		Args:    args,
		Dir:     m.Dir,
	})
}

// RunScript runs a manifest script, e.g. "build:mac".
func (m *Manager) RunScript(ctx context.Context, script string) error {
	return m.exec.Run(ctx, runner.Step{
		Name:    fmt.Sprintf("Run %s", script),
		Command: m.Name,
		Args:    []string{"run", script},
		Dir:     m.Dir,
	})
}

// VersionFiles lists the files SetVersion may change: the manifest plus the
// lockfile when the project has one.
func (m *Manager) VersionFiles() []string {
	files := []string{m.Manifest}
	lock := lockfiles[m.Name]
	if _, err := os.Stat(filepath.Join(m.Dir, lock)); err == nil {
		files = append(files, lock)
	}
	return files
}
