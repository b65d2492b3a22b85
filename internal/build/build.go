// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package build dispatches the local installer build for the host platform
// and stages the resulting installers for release.
package build

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/samber/lo"

	"release-manager/internal/config"
	"release-manager/internal/logger"
)

// ScriptRunner runs a package manager script.
type ScriptRunner interface {
	RunScript(ctx context.Context, script string) error
}

// Builder produces installers for one host platform.
type Builder struct {
	GOOS       string
	Platform   config.Platform
	DistDir    string // absolute
	ReleaseDir string // absolute

	scripts     ScriptRunner
	platformErr error
}

// PlatformFor returns the build settings configured for goos.
func PlatformFor(cfg config.Config, goos string) (config.Platform, error) {
	p, ok := cfg.Platforms[goos]
	if !ok {
		return config.Platform{}, fmt.Errorf("no build configured for host platform '%s' (configured: %s)",
			goos, strings.Join(cfg.PlatformNames(), ", "))
	}
	return p, nil
}

// New returns a Builder for the current host.
func New(cfg config.Config, projectDir string, scripts ScriptRunner) (*Builder, error) {
	return NewFor(cfg, projectDir, runtime.GOOS, scripts)
}

// NewFor returns a Builder for goos. A goos without build settings still
// yields a Builder that can clean; Build and Supported report the problem.
func NewFor(cfg config.Config, projectDir, goos string, scripts ScriptRunner) (*Builder, error) {
	p, platformErr := PlatformFor(cfg, goos)
	distDir, err := config.Abs(projectDir, cfg.DistDir)
	if err != nil {
		return nil, err
	}
	releaseDir, err := config.Abs(projectDir, cfg.ReleaseDir)
	if err != nil {
		return nil, err
	}
	return &Builder{
		GOOS:        goos,
		Platform:    p,
		DistDir:     distDir,
		ReleaseDir:  releaseDir,
		scripts:     scripts,
		platformErr: platformErr,
	}, nil
}

// Host returns the platform this builder targets.
func (b *Builder) Host() string {
	return b.GOOS
}

// Supported returns an error when the host platform has no build settings.
func (b *Builder) Supported() error {
	return b.platformErr
}

// Build runs the platform's build script and stages its installers.
func (b *Builder) Build(ctx context.Context) ([]string, error) {
	if b.platformErr != nil {
		return nil, b.platformErr
	}
	logger.Info("building installers", "platform", b.GOOS, "script", b.Platform.Script)
	if err := b.scripts.RunScript(ctx, b.Platform.Script); err != nil {
		return nil, fmt.Errorf("build for %s failed: %w", b.GOOS, err)
	}
	return b.Stage()
}

// Stage copies installers from the dist directory into the release directory.
// Only top-level files whose extension matches the platform are copied.
func (b *Builder) Stage() ([]string, error) {
	entries, err := os.ReadDir(b.DistDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read build output %s: %w", b.DistDir, err)
	}
	if err := os.MkdirAll(b.ReleaseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create release directory %s: %w", b.ReleaseDir, err)
	}

	var copied []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !b.matches(entry.Name()) {
			continue
		}
		dst := filepath.Join(b.ReleaseDir, entry.Name())
		if err := copyFile(filepath.Join(b.DistDir, entry.Name()), dst); err != nil {
			return copied, err
		}
		logger.Info("staged installer", "file", entry.Name(), "dest", b.ReleaseDir)
		copied = append(copied, dst)
	}
	return copied, nil
}

func (b *Builder) matches(name string) bool {
	ext := filepath.Ext(name)
	return lo.ContainsBy(b.Platform.Extensions, func(want string) bool {
		return strings.EqualFold(ext, want)
	})
}

// Clean removes the dist directory and recreates it along with the release directory.
func (b *Builder) Clean() error {
	if err := os.RemoveAll(b.DistDir); err != nil {
		return fmt.Errorf("failed to remove %s: %w", b.DistDir, err)
	}
	for _, dir := range []string{b.DistDir, b.ReleaseDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	return out.Close()
}
