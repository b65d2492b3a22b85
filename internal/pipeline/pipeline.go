// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package pipeline sequences a release run: preflight, dist cleaning, version
// change, local build, tag-and-push, and the legacy manual upload. Each step
// is also callable on its own. Steps fail independently; nothing is rolled
// back across steps.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"release-manager/internal/artifact"
	"release-manager/internal/journal"
	"release-manager/internal/logger"
	"release-manager/internal/manifest"
	"release-manager/internal/prompt"
	"release-manager/internal/release"
	"release-manager/internal/ui"
	"release-manager/internal/version"
)

var (
	// ErrDirtyTree aborts a run started with uncommitted changes.
	ErrDirtyTree = errors.New("working tree has uncommitted changes")
	// ErrTagExists is returned by TagAndPush when the version is already tagged.
	ErrTagExists = errors.New("tag already exists")
	// ErrTagNotPushed is an ErrTagExists for a tag that never reached the remote.
	ErrTagNotPushed = fmt.Errorf("%w locally but not on the remote", ErrTagExists)
	// ErrNothingToUpload is returned by Upload when no staged artifact matches the version.
	ErrNothingToUpload = errors.New("no artifacts match the version")
)

// VCS is the subset of git the pipeline needs.
type VCS interface {
	Status(ctx context.Context) ([]string, error)
	TagExists(ctx context.Context, tag string) (bool, error)
	RemoteTagExists(ctx context.Context, tag string) (bool, error)
	CreateTag(ctx context.Context, tag, message string) error
	PushTag(ctx context.Context, tag string) error
	Commit(ctx context.Context, message string, paths ...string) error
	Unstage(ctx context.Context, paths ...string) error
	Push(ctx context.Context) error
}

// PackageManager edits the version through the package manager's own command.
type PackageManager interface {
	SetVersion(ctx context.Context, version string) error
	VersionFiles() []string
}

// Builder builds and stages installers for the host platform.
type Builder interface {
	Build(ctx context.Context) ([]string, error)
	Clean() error
	Host() string
	// Supported returns an error when the host cannot be built on.
	Supported() error
}

// Publisher pushes artifacts to the release service.
type Publisher interface {
	Publish(ctx context.Context, tag string, files []string) (release.Outcome, error)
}

// Recorder stores the record of a finished run.
type Recorder interface {
	Append(rec journal.Record) (uint64, error)
}

// VersionPicker lets the user choose the next version interactively.
type VersionPicker func(current string) (ui.Choice, error)

// Pipeline holds everything a release run touches.
type Pipeline struct {
	Project    string
	Dir        string
	Manifest   string // absolute manifest path
	ReleaseDir string // absolute staging directory
	DistDir    string // build output as configured, for display
	TagPrefix  string
	Remote     string

	Git      VCS
	Packages PackageManager
	Builder  Builder
	Releases Publisher
	Prompt   prompt.Prompter
	Pick     VersionPicker // optional; free-text prompt when nil
	Journal  Recorder      // optional
	Out      io.Writer

	report Report
}

func (p *Pipeline) out() io.Writer {
	if p.Out == nil {
		return os.Stdout
	}
	return p.Out
}

// CurrentVersion reads the version from the manifest.
func (p *Pipeline) CurrentVersion() (string, error) {
	return manifest.ReadVersion(p.Manifest)
}

// Tag returns the tag name mirroring v.
func (p *Pipeline) Tag(v string) string {
	return version.TagName(p.TagPrefix, v)
}

// Preflight fails with ErrDirtyTree when the working tree has changes.
func (p *Pipeline) Preflight(ctx context.Context) error {
	dirty, err := p.Git.Status(ctx)
	if err != nil {
		return err
	}
	if len(dirty) > 0 {
		errorColor.Fprintln(p.out(), "Uncommitted changes:")
		for _, line := range dirty {
			errorColor.Fprintf(p.out(), "  %s\n", line)
		}
		return fmt.Errorf("%w (%d paths)", ErrDirtyTree, len(dirty))
	}
	return nil
}

// Clean empties the build output and makes sure the staging directory exists.
func (p *Pipeline) Clean(ctx context.Context) error {
	if err := p.Builder.Clean(); err != nil {
		return err
	}
	logger.Info("cleaned build output")
	successColor.Fprintln(p.out(), "Build output cleaned.")
	return nil
}

// ChangeVersion writes next into the manifest through the package manager,
// commits the version files and pushes. If the version command or the commit
// fails, the files are restored and the current version is returned along
// with the error. A failed push keeps the local commit.
func (p *Pipeline) ChangeVersion(ctx context.Context, next string) (string, error) {
	current, err := p.CurrentVersion()
	if err != nil {
		return "", err
	}
	next, err = version.Parse(next)
	if err != nil {
		return current, err
	}
	if next == current {
		return current, nil
	}

	files := p.Packages.VersionFiles()
	snap, err := manifest.Take(p.abs(files)...)
	if err != nil {
		return current, err
	}

	revert := func(cause error) (string, error) {
		if rerr := snap.Restore(); rerr != nil {
			logger.Error("failed to restore version files", "error", rerr)
			return current, fmt.Errorf("%w (restoring version files also failed: %v)", cause, rerr)
		}
		logger.Warn("version change reverted", "version", current, "error", cause)
		return current, cause
	}

	stepColor.Fprintf(p.out(), "Setting version %s → %s\n", current, identifierColor.Sprint(next))
	if err := p.Packages.SetVersion(ctx, next); err != nil {
		return revert(fmt.Errorf("version command failed: %w", err))
	}

	if err := p.Git.Commit(ctx, fmt.Sprintf("chore: release %s", p.Tag(next)), files...); err != nil {
		// git add may have succeeded before the commit failed.
		if uerr := p.Git.Unstage(ctx, files...); uerr != nil {
			logger.Error("failed to unstage version files", "error", uerr)
		}
		return revert(fmt.Errorf("failed to commit version change: %w", err))
	}
	logger.Info("version changed", "from", current, "to", next)

	if err := p.Git.Push(ctx); err != nil {
		return next, fmt.Errorf("version committed locally but push failed: %w", err)
	}
	successColor.Fprintf(p.out(), "Version updated to %s\n", next)
	return next, nil
}

func (p *Pipeline) remote() string {
	if p.Remote == "" {
		return "origin"
	}
	return p.Remote
}

func (p *Pipeline) distName() string {
	if p.DistDir == "" {
		return "dist"
	}
	return filepath.ToSlash(filepath.Clean(p.DistDir))
}

func (p *Pipeline) abs(files []string) []string {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f
		if !filepath.IsAbs(f) {
			paths[i] = filepath.Join(p.Dir, f)
		}
	}
	return paths
}

// Build runs the host platform build and returns the staged installers.
func (p *Pipeline) Build(ctx context.Context) ([]string, error) {
	if err := p.Builder.Supported(); err != nil {
		return nil, err
	}
	stepColor.Fprintf(p.out(), "Building installers for %s...\n", identifierColor.Sprint(p.Builder.Host()))
	staged, err := p.Builder.Build(ctx)
	if err != nil {
		return nil, err
	}
	for _, f := range staged {
		fmt.Fprintf(p.out(), "  staged %s\n", f)
	}
	successColor.Fprintf(p.out(), "Build finished, %d installer(s) staged.\n", len(staged))
	return staged, nil
}

// TagAndPush creates the annotated tag for v and pushes it, which starts the
// CI release build. An existing tag, local or remote, yields ErrTagExists and
// nothing is created; a tag the remote lacks yields ErrTagNotPushed.
func (p *Pipeline) TagAndPush(ctx context.Context, v string) (string, error) {
	tag := p.Tag(v)

	exists, err := p.Git.TagExists(ctx, tag)
	if err != nil {
		return tag, err
	}
	remoteExists, err := p.Git.RemoteTagExists(ctx, tag)
	if exists {
		if err == nil && !remoteExists {
			return tag, fmt.Errorf("%w: %s (push it with 'git push %s %s')", ErrTagNotPushed, tag, p.remote(), tag)
		}
		return tag, fmt.Errorf("%w locally: %s", ErrTagExists, tag)
	}
	if err != nil {
		// The local check already passed; an unreachable remote will fail the push anyway.
		logger.Warn("remote tag lookup failed", "tag", tag, "error", err)
	} else if remoteExists {
		return tag, fmt.Errorf("%w on the remote: %s", ErrTagExists, tag)
	}

	if err := p.Git.CreateTag(ctx, tag, fmt.Sprintf("Release %s", tag)); err != nil {
		return tag, fmt.Errorf("failed to create tag %s: %w", tag, err)
	}
	if err := p.Git.PushTag(ctx, tag); err != nil {
		return tag, fmt.Errorf("tag %s created locally but push failed: %w", tag, err)
	}
	logger.Info("tag pushed", "tag", tag)
	successColor.Fprintf(p.out(), "Tag %s pushed; CI will build and publish the installers.\n", identifierColor.Sprint(tag))
	return tag, nil
}

// Upload publishes the staged artifacts whose names contain v to the release
// for v's tag, creating it if needed.
func (p *Pipeline) Upload(ctx context.Context, v string) (release.Outcome, error) {
	staged, err := artifact.List(p.ReleaseDir)
	if err != nil {
		return release.Outcome{}, err
	}
	matching := artifact.ForVersion(staged, v)
	if len(matching) == 0 {
		return release.Outcome{}, fmt.Errorf("%w %s in %s", ErrNothingToUpload, v, p.ReleaseDir)
	}

	tag := p.Tag(v)
	for _, a := range matching {
		fmt.Fprintf(p.out(), "  %s\n", a.Name)
	}
	outcome, err := p.Releases.Publish(ctx, tag, artifact.Paths(matching))
	if err != nil {
		return outcome, err
	}
	if outcome.Created {
		successColor.Fprintf(p.out(), "Created release %s with %d file(s).\n", identifierColor.Sprint(tag), outcome.Uploaded)
	} else {
		successColor.Fprintf(p.out(), "Uploaded %d file(s) to existing release %s.\n", outcome.Uploaded, identifierColor.Sprint(tag))
	}
	return outcome, nil
}

// Run walks through every step, asking before each optional one.
func (p *Pipeline) Run(ctx context.Context) (Report, error) {
	p.report = Report{Project: p.Project, StartedAt: time.Now()}
	err := p.run(ctx)
	p.report.FinishedAt = time.Now()

	if p.Journal != nil {
		if _, jerr := p.Journal.Append(p.report.Record()); jerr != nil {
			logger.Warn("failed to record run", "error", jerr)
		}
	}
	return p.report, err
}

func (p *Pipeline) run(ctx context.Context) error {
	current, err := p.CurrentVersion()
	if err != nil {
		return err
	}
	p.report.VersionBefore = current
	p.report.VersionAfter = current

	statusColor.Fprintln(p.out(), "Checking working tree...")
	if err := p.Preflight(ctx); err != nil {
		p.report.add(StepPreflight, StatusFailed, err.Error())
		return err
	}
	p.report.add(StepPreflight, StatusDone, "")

	// Clean
	ok, err := p.Prompt.Confirm(fmt.Sprintf("Clean %s/ folder?", p.distName()))
	if err != nil {
		return err
	}
	if !ok {
		p.report.add(StepClean, StatusSkipped, "")
	} else if err := p.Clean(ctx); err != nil {
		errorColor.Fprintf(p.out(), "Clean failed: %v\n", err)
		p.report.add(StepClean, StatusFailed, err.Error())
	} else {
		p.report.add(StepClean, StatusDone, "")
	}

	// Version
	fmt.Fprintf(p.out(), "Current version: %s\n", identifierColor.Sprint(current))
	ok, err = p.Prompt.Confirm("Change version?")
	if err != nil {
		return err
	}
	if !ok {
		p.report.add(StepVersion, StatusSkipped, "")
	} else {
		next, err := p.askVersion(current)
		if err != nil {
			return err
		}
		if next == "" || next == current {
			p.report.add(StepVersion, StatusSkipped, "version unchanged")
		} else {
			effective, err := p.ChangeVersion(ctx, next)
			p.report.VersionAfter = effective
			if err != nil {
				errorColor.Fprintf(p.out(), "Version change failed, continuing with %s: %v\n", effective, err)
				p.report.add(StepVersion, StatusFailed, err.Error())
			} else {
				p.report.add(StepVersion, StatusDone, fmt.Sprintf("%s → %s", current, effective))
			}
		}
	}
	v := p.report.VersionAfter

	// Build
	buildFailed := false
	if unsupported := p.Builder.Supported(); unsupported != nil {
		stepColor.Fprintf(p.out(), "Skipping local build: %v\n", unsupported)
		p.report.add(StepBuild, StatusSkipped, unsupported.Error())
	} else if ok, err = p.Prompt.Confirm(fmt.Sprintf("Build installers locally for %s?", p.Builder.Host())); err != nil {
		return err
	} else if !ok {
		p.report.add(StepBuild, StatusSkipped, "")
	} else if staged, err := p.Build(ctx); err != nil {
		buildFailed = true
		errorColor.Fprintf(p.out(), "Build failed: %v\n", err)
		p.report.add(StepBuild, StatusFailed, err.Error())
	} else {
		p.report.add(StepBuild, StatusDone, fmt.Sprintf("%d installer(s) staged", len(staged)))
	}

	// Tag & push
	tag := p.Tag(v)
	ok, err = p.Prompt.Confirm(fmt.Sprintf("Create and push tag %s to trigger the release build?", tag))
	if err != nil {
		return err
	}
	if !ok {
		p.report.add(StepTag, StatusSkipped, "")
	} else if _, err := p.TagAndPush(ctx, v); err != nil {
		if errors.Is(err, ErrTagExists) {
			stepColor.Fprintf(p.out(), "%v, not tagging again.\n", err)
			p.report.add(StepTag, StatusSkipped, err.Error())
		} else {
			errorColor.Fprintf(p.out(), "Tagging failed: %v\n", err)
			p.report.add(StepTag, StatusFailed, err.Error())
		}
	} else {
		p.report.Tag = tag
		p.report.add(StepTag, StatusDone, tag)
	}

	// Manual upload
	if buildFailed {
		p.report.add(StepUpload, StatusSkipped, "local build failed")
		return nil
	}
	ok, err = p.Prompt.Confirm(fmt.Sprintf("Upload staged installers for %s to the release manually?", v))
	if err != nil {
		return err
	}
	if !ok {
		p.report.add(StepUpload, StatusSkipped, "")
		return nil
	}
	outcome, err := p.Upload(ctx, v)
	switch {
	case errors.Is(err, artifact.ErrNoStagingDir), errors.Is(err, ErrNothingToUpload):
		stepColor.Fprintf(p.out(), "Nothing uploaded: %v\n", err)
		p.report.add(StepUpload, StatusSkipped, err.Error())
	case err != nil:
		errorColor.Fprintf(p.out(), "Upload failed: %v\n", err)
		p.report.add(StepUpload, StatusFailed, err.Error())
	case outcome.Created:
		p.report.add(StepUpload, StatusDone, fmt.Sprintf("created %s with %d file(s)", tag, outcome.Uploaded))
	default:
		p.report.add(StepUpload, StatusDone, fmt.Sprintf("updated %s with %d file(s)", tag, outcome.Uploaded))
	}
	return nil
}

// askVersion returns the version the user wants, or "" to keep the current one.
func (p *Pipeline) askVersion(current string) (string, error) {
	if p.Pick != nil {
		choice, err := p.Pick(current)
		if errors.Is(err, ui.ErrCancelled) {
			return "", nil
		}
		if err != nil {
			logger.Warn("version picker unavailable, falling back to text prompt", "error", err)
		} else {
			switch choice.Kind {
			case ui.ChoiceVersion:
				return choice.Version, nil
			case ui.ChoiceKeep:
				return "", nil
			}
		}
	}

	suggested, err := version.Next(current, version.Patch)
	if err != nil {
		suggested = ""
	}
	const attempts = 3
	for i := 0; i < attempts; i++ {
		answer, err := p.Prompt.Input("Enter new version (e.g., 1.2.3, or patch/minor/major)", suggested)
		if err != nil {
			return "", err
		}
		next, err := version.Resolve(current, answer)
		if err == nil {
			return next, nil
		}
		errorColor.Fprintf(p.out(), "%v\n", err)
	}
	errorColor.Fprintln(p.out(), "No valid version given; keeping the current one.")
	return "", nil
}
