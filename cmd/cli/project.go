// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"path/filepath"

	"release-manager/internal/build"
	"release-manager/internal/config"
	"release-manager/internal/git"
	"release-manager/internal/journal"
	"release-manager/internal/logger"
	"release-manager/internal/manifest"
	"release-manager/internal/pipeline"
	"release-manager/internal/pkgmgr"
	"release-manager/internal/prompt"
	"release-manager/internal/release"
	"release-manager/internal/runner"
)

// project holds the tool wrappers for the project directory, all sharing one
// local executor.
type project struct {
	Name       string
	Dir        string
	Manifest   string // absolute
	ReleaseDir string // absolute

	Git      *git.Repo
	Packages *pkgmgr.Manager
	Releases *release.Client
}

func openProject() (*project, error) {
	manifestPath, err := config.Abs(projectDir, cfg.Manifest)
	if err != nil {
		return nil, err
	}
	releaseDir, err := config.Abs(projectDir, cfg.ReleaseDir)
	if err != nil {
		return nil, err
	}

	exec := runner.NewLocal(projectDir)
	pm, err := pkgmgr.New(exec, cfg.PackageManager, projectDir, cfg.Manifest)
	if err != nil {
		return nil, err
	}

	name, err := manifest.ReadName(manifestPath)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = filepath.Base(projectDir)
	}

	return &project{
		Name:       name,
		Dir:        projectDir,
		Manifest:   manifestPath,
		ReleaseDir: releaseDir,
		Git:        git.New(exec, projectDir, cfg.Remote),
		Packages:   pm,
		Releases:   release.New(exec, cfg.ReleaseCLI, cfg.Repo, projectDir),
	}, nil
}

func (p *project) CurrentVersion() (string, error) {
	return manifest.ReadVersion(p.Manifest)
}

// pipeline assembles a release pipeline for the host platform. The prompter
// is only needed by the wizard and may be nil for single-step commands. A host
// without build settings only fails the build step.
func (p *project) pipeline(pr prompt.Prompter) (*pipeline.Pipeline, error) {
	builder, err := build.New(cfg, p.Dir, p.Packages)
	if err != nil {
		return nil, err
	}
	return &pipeline.Pipeline{
		Project:    p.Name,
		Dir:        p.Dir,
		Manifest:   p.Manifest,
		ReleaseDir: p.ReleaseDir,
		DistDir:    cfg.DistDir,
		TagPrefix:  cfg.TagPrefix,
		Remote:     cfg.Remote,
		Git:        p.Git,
		Packages:   p.Packages,
		Builder:    builder,
		Releases:   p.Releases,
		Prompt:     pr,
	}, nil
}

// openJournal returns nil when the journal cannot be opened; a run is never
// blocked on its history.
func openJournal() *journal.Journal {
	dir, err := config.EnsureStateDir()
	if err != nil {
		logger.Warn("journal disabled", "error", err)
		return nil
	}
	j, err := journal.OpenIn(dir)
	if err != nil {
		logger.Warn("journal disabled", "error", err)
		return nil
	}
	return j
}

func mustOpenJournal() *journal.Journal {
	dir, err := config.EnsureStateDir()
	if err != nil {
		fail("Error: %v", err)
	}
	j, err := journal.OpenIn(dir)
	if err != nil {
		fail("Error opening run history (is another relm running?): %v", err)
	}
	return j
}
