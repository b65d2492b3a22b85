// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package config handles the project configuration: where the manifest lives,
// which directories hold build output and staged installers, which tools are
// invoked, and how each host platform is built.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the per-project configuration file, looked up in the project directory.
const FileName = ".relm.yaml"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Platform describes how installers are produced on one host operating system.
type Platform struct {
	// Script is the package manager script that drives the packaging tool
	Script string `yaml:"script"`

	// Extensions are the installer file extensions staged after a build (e.g. ".dmg")
	Extensions []string `yaml:"extensions"`
}

// Config represents the top-level project configuration
type Config struct {
	// Manifest is the package manifest holding the version field
	Manifest string `yaml:"manifest"`

	// DistDir is where the packaging tool writes its output
	DistDir string `yaml:"dist_dir"`

	// ReleaseDir is the staging directory installers are copied into
	ReleaseDir string `yaml:"release_dir"`

	// PackageManager is one of npm, pnpm or yarn
	PackageManager string `yaml:"package_manager"`

	// TagPrefix is prepended to the version to form the tag name
	TagPrefix string `yaml:"tag_prefix"`

	// Remote is the git remote tags and commits are pushed to
	Remote string `yaml:"remote"`

	// ReleaseCLI is the release service command-line tool
	ReleaseCLI string `yaml:"release_cli"`

	// Repo optionally pins the release repository (owner/name)
	Repo string `yaml:"repo,omitempty"`

	// Platforms maps a GOOS value to its build settings
	Platforms map[string]Platform `yaml:"platforms"`
}

// SupportedPackageManagers lists the package managers relm knows how to drive.
var SupportedPackageManagers = []string{"npm", "pnpm", "yarn"}

// Default returns the configuration used when no project file exists.
func Default() Config {
	return Config{
		Manifest:       "package.json",
		DistDir:        "dist",
		ReleaseDir:     "release",
		PackageManager: "npm",
		TagPrefix:      "v",
		Remote:         "origin",
		ReleaseCLI:     "gh",
		Platforms: map[string]Platform{
			"windows": {Script: "build:win", Extensions: []string{".exe"}},
			"darwin":  {Script: "build:mac", Extensions: []string{".dmg"}},
			"linux":   {Script: "build:linux", Extensions: []string{".AppImage", ".deb", ".snap"}},
		},
	}
}

// Path returns the configuration file path for a project directory.
func Path(projectDir string) string {
	return filepath.Join(projectDir, FileName)
}

// Load reads the project configuration, filling unset fields with defaults.
// A missing file is not an error.
func Load(projectDir string) (Config, error) {
	cfg := Default()
	configPath := Path(projectDir)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}
	cfg.merge(fileCfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", configPath, err)
	}
	return cfg, nil
}

// merge overlays the non-empty fields of other onto c.
func (c *Config) merge(other Config) {
	setIfNotEmpty(&c.Manifest, other.Manifest)
	setIfNotEmpty(&c.DistDir, other.DistDir)
	setIfNotEmpty(&c.ReleaseDir, other.ReleaseDir)
	setIfNotEmpty(&c.PackageManager, other.PackageManager)
	setIfNotEmpty(&c.Remote, other.Remote)
	setIfNotEmpty(&c.ReleaseCLI, other.ReleaseCLI)
	setIfNotEmpty(&c.Repo, other.Repo)
	// An explicit empty prefix cannot be told apart from an unset one; "v" stays the default.
	setIfNotEmpty(&c.TagPrefix, other.TagPrefix)

	for goos, p := range other.Platforms {
		c.Platforms[goos] = p
	}
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Validate reports the first problem found in the configuration.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Manifest) == "" {
		return fmt.Errorf("%w: manifest path is empty", ErrInvalid)
	}
	if c.DistDir == "" || c.ReleaseDir == "" {
		return fmt.Errorf("%w: dist_dir and release_dir must be set", ErrInvalid)
	}
	if !slices.Contains(SupportedPackageManagers, c.PackageManager) {
		return fmt.Errorf("%w: unsupported package manager '%s' (want one of %s)",
			ErrInvalid, c.PackageManager, strings.Join(SupportedPackageManagers, ", "))
	}
	for _, goos := range c.PlatformNames() {
		p := c.Platforms[goos]
		if p.Script == "" {
			return fmt.Errorf("%w: platform '%s' has no build script", ErrInvalid, goos)
		}
		if len(p.Extensions) == 0 {
			return fmt.Errorf("%w: platform '%s' has no artifact extensions", ErrInvalid, goos)
		}
	}
	return nil
}

// PlatformNames returns the configured GOOS keys in a stable order.
func (c Config) PlatformNames() []string {
	names := make([]string, 0, len(c.Platforms))
	for goos := range c.Platforms {
		names = append(names, goos)
	}
	sort.Strings(names)
	return names
}

// Save writes cfg to the project configuration file.
func Save(projectDir string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	configPath := Path(projectDir)
	// Write with permissions rw-r--r-- (0644); the file is meant to be committed
	err = os.WriteFile(configPath, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write config file %s: %w", configPath, err)
	}
	return nil
}

// StateDir is where the log file and the run journal live.
func StateDir() (string, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not get user home directory: %w", err)
		}
		stateDir = filepath.Join(homeDir, ".local", "state")
	}
	return filepath.Join(stateDir, "release-manager"), nil
}

func EnsureStateDir() (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	err = os.MkdirAll(dir, 0750) // rwxr-x---
	if err != nil {
		return "", fmt.Errorf("failed to create state directory %s: %w", dir, err)
	}
	return dir, nil
}

func ResolvePath(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path, fmt.Errorf("could not get user home directory to resolve path '%s': %w", path, err)
	}

	return filepath.Join(homeDir, path[2:]), nil
}

// Abs resolves a configured path against the project directory.
func Abs(projectDir, path string) (string, error) {
	resolved, err := ResolvePath(path)
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(resolved) {
		return resolved, nil
	}
	return filepath.Join(projectDir, resolved), nil
}
