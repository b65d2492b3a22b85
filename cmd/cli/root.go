// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"release-manager/internal/artifact"
	"release-manager/internal/config"
	"release-manager/internal/logger"
	"release-manager/internal/pipeline"
	"release-manager/internal/prompt"
	"release-manager/internal/ui"
	"release-manager/internal/version"
)

var (
	projectDir string
	verbose    bool
	cfg        config.Config

	statusColor     = color.New(color.FgCyan)
	errorColor      = color.New(color.FgRed)
	stepColor       = color.New(color.FgYellow)
	successColor    = color.New(color.FgGreen)
	identifierColor = color.New(color.FgBlue)
)

var rootCmd = &cobra.Command{
	Use:   "relm",
	Short: "Release Manager CLI",
	Long: `Walks an Electron-style desktop app through a release: clean the build
output, bump the version, build installers for this host, and push the tag
that makes CI build and publish the release.

Run without a subcommand to start the interactive release wizard.
Project settings are read from .relm.yaml in the project directory.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.InitLogger(verbose)

		dir, err := resolveProjectDir()
		if err != nil {
			return err
		}
		projectDir = dir

		cfg, err = config.Load(projectDir)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		logger.Debug("configuration loaded", "dir", projectDir, "package_manager", cfg.PackageManager)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
	Run: runWizard,
}

// RunCLI executes the root command and exits non-zero on failure.
func RunCLI() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectDir, "dir", "C", "", "project directory (default: current directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(bumpCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(uploadCmd)
}

func resolveProjectDir() (string, error) {
	dir := projectDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not determine working directory: %w", err)
		}
		dir = wd
	}
	resolved, err := config.ResolvePath(dir)
	if err != nil {
		return "", err
	}
	return filepath.Abs(resolved)
}

// commandContext is cancelled on Ctrl-C so running tools are stopped.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func fail(format string, a ...any) {
	errorColor.Fprintf(os.Stderr, format+"\n", a...)
	logger.Sync()
	os.Exit(1)
}

func newSpinner(suffix string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Color("cyan")
	s.Suffix = suffix
	return s
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive release wizard (default command)",
	Args:  cobra.NoArgs,
	Run:   runWizard,
}

func runWizard(cmd *cobra.Command, args []string) {
	if err := wizard(); err != nil {
		if !errors.Is(err, errRunFailed) {
			errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		logger.Sync()
		os.Exit(1)
	}
}

var errRunFailed = errors.New("release run failed")

// wizard runs the interactive release and restores the terminal before returning.
func wizard() error {
	proj, err := openProject()
	if err != nil {
		return err
	}

	line := prompt.NewLine()
	defer line.Close()

	p, err := proj.pipeline(line)
	if err != nil {
		return err
	}
	if prompt.Interactive() {
		p.Pick = ui.PickVersion
	}
	if j := openJournal(); j != nil {
		defer j.Close()
		p.Journal = j
	}

	current, err := p.CurrentVersion()
	if err != nil {
		return err
	}
	fmt.Println(ui.RenderBanner(proj.Name, current, proj.Dir))

	ctx, stop := commandContext()
	defer stop()

	report, err := p.Run(ctx)
	fmt.Println()
	fmt.Println(ui.RenderSummary(report.Rows()))

	switch {
	case errors.Is(err, prompt.ErrAborted):
		stepColor.Println("Release aborted.")
		return errRunFailed
	case err != nil:
		return fmt.Errorf("release stopped: %w", err)
	case report.Failed():
		errorColor.Println("Release finished with failures.")
		return errRunFailed
	}
	successColor.Println("Release finished.")
	return nil
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the version, tag, release and staged installers",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		proj, err := openProject()
		if err != nil {
			fail("Error: %v", err)
		}
		current, err := proj.CurrentVersion()
		if err != nil {
			fail("Error: %v", err)
		}
		tag := version.TagName(cfg.TagPrefix, current)
		ctx, stop := commandContext()
		defer stop()

		fmt.Printf("Project:  %s (%s)\n", identifierColor.Sprint(proj.Name), proj.Dir)
		fmt.Printf("Version:  %s\n", identifierColor.Sprint(current))

		var failed bool
		dirty, err := proj.Git.Status(ctx)
		switch {
		case err != nil:
			failed = true
			errorColor.Printf("Tree:     %v\n", err)
		case len(dirty) == 0:
			successColor.Println("Tree:     clean")
		default:
			stepColor.Printf("Tree:     %d uncommitted change(s)\n", len(dirty))
		}

		local, err := proj.Git.TagExists(ctx, tag)
		if err != nil {
			failed = true
			errorColor.Printf("Tag:      %v\n", err)
		} else {
			fmt.Printf("Tag:      %s local=%s", identifierColor.Sprint(tag), yesNo(local))
		}

		s := newSpinner(fmt.Sprintf(" Looking up %s on %s...", tag, cfg.Remote))
		s.Start()
		remote, remoteErr := proj.Git.RemoteTagExists(ctx, tag)
		s.Suffix = fmt.Sprintf(" Looking up release %s...", tag)
		released, releaseErr := proj.Releases.Exists(ctx, tag)
		s.Stop()

		if err == nil {
			if remoteErr != nil {
				fmt.Println(" remote=?")
				logger.Warn("remote tag lookup failed", "tag", tag, "error", remoteErr)
			} else {
				fmt.Printf(" remote=%s\n", yesNo(remote))
			}
		}
		switch {
		case releaseErr != nil:
			stepColor.Printf("Release:  unknown (%v)\n", releaseErr)
		case released:
			successColor.Printf("Release:  %s published\n", tag)
		default:
			fmt.Printf("Release:  none for %s\n", tag)
		}

		staged, err := artifact.List(proj.ReleaseDir)
		switch {
		case errors.Is(err, artifact.ErrNoStagingDir):
			fmt.Printf("Staged:   no staging directory (%s)\n", proj.ReleaseDir)
		case err != nil:
			failed = true
			errorColor.Printf("Staged:   %v\n", err)
		default:
			matching := artifact.ForVersion(staged, current)
			fmt.Printf("Staged:   %d file(s) for %s in %s\n", len(matching), current, proj.ReleaseDir)
			for _, a := range matching {
				fmt.Printf("  - %s (%s)\n", a.Name, humanSize(a.Size))
			}
		}

		if failed {
			os.Exit(1)
		}
	},
}

var bumpCmd = &cobra.Command{
	Use:   "bump <version|patch|minor|major>",
	Short: "Set the version, commit the manifest and push",
	Long: `Writes the new version through the package manager, commits the changed
version files and pushes the current branch. The files are restored if the
version command or the commit fails.`,
	Example:   "  relm bump patch\n  relm bump 2.0.0-beta.1",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"patch", "minor", "major"},
	Run: func(cmd *cobra.Command, args []string) {
		proj, err := openProject()
		if err != nil {
			fail("Error: %v", err)
		}
		p, err := proj.pipeline(nil)
		if err != nil {
			fail("Error: %v", err)
		}
		current, err := p.CurrentVersion()
		if err != nil {
			fail("Error: %v", err)
		}
		next, err := version.Resolve(current, args[0])
		if err != nil {
			fail("Error: %v", err)
		}
		if next == current {
			stepColor.Printf("Version is already %s, nothing to do.\n", current)
			return
		}
		if !version.IsNewer(current, next) {
			stepColor.Printf("Warning: %s is not newer than %s.\n", next, current)
		}

		ctx, stop := commandContext()
		defer stop()
		if _, err := p.ChangeVersion(ctx, next); err != nil {
			fail("Version change failed: %v", err)
		}
	},
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build installers for this host and stage them",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		proj, err := openProject()
		if err != nil {
			fail("Error: %v", err)
		}
		p, err := proj.pipeline(nil)
		if err != nil {
			fail("Error: %v", err)
		}
		ctx, stop := commandContext()
		defer stop()
		if _, err := p.Build(ctx); err != nil {
			fail("Build failed: %v", err)
		}
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Empty the build output directory",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		proj, err := openProject()
		if err != nil {
			fail("Error: %v", err)
		}
		p, err := proj.pipeline(nil)
		if err != nil {
			fail("Error: %v", err)
		}
		if err := p.Clean(cmd.Context()); err != nil {
			fail("Clean failed: %v", err)
		}
	},
}

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Create and push the tag for the manifest version",
	Long: `Creates an annotated tag for the current manifest version and pushes it.
The pushed tag triggers the CI release build. Nothing is done when the tag
already exists; a tag that exists only locally is reported with the command
that pushes it.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		proj, err := openProject()
		if err != nil {
			fail("Error: %v", err)
		}
		p, err := proj.pipeline(nil)
		if err != nil {
			fail("Error: %v", err)
		}
		current, err := p.CurrentVersion()
		if err != nil {
			fail("Error: %v", err)
		}
		ctx, stop := commandContext()
		defer stop()
		if _, err := p.TagAndPush(ctx, current); err != nil {
			if errors.Is(err, pipeline.ErrTagNotPushed) {
				fail("%v", err)
			}
			if errors.Is(err, pipeline.ErrTagExists) {
				stepColor.Printf("%v, nothing to do.\n", err)
				return
			}
			fail("Tagging failed: %v", err)
		}
	},
}

var uploadCmd = &cobra.Command{
	Use:   "upload [version]",
	Short: "Upload staged installers to the release (legacy manual flow)",
	Long: `Uploads every file in the staging directory whose name contains the
version to the release for its tag. The release is created when it does not
exist yet; existing assets with the same name are replaced.
Defaults to the manifest version.`,
	Example:           "  relm upload\n  relm upload 1.4.2",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: versionCompletionFunc,
	Run: func(cmd *cobra.Command, args []string) {
		proj, err := openProject()
		if err != nil {
			fail("Error: %v", err)
		}
		p, err := proj.pipeline(nil)
		if err != nil {
			fail("Error: %v", err)
		}

		v := ""
		if len(args) == 1 {
			v, err = version.Parse(args[0])
		} else {
			v, err = p.CurrentVersion()
		}
		if err != nil {
			fail("Error: %v", err)
		}

		statusColor.Printf("Uploading installers for %s...\n", identifierColor.Sprint(v))
		ctx, stop := commandContext()
		defer stop()
		if _, err := p.Upload(ctx, v); err != nil {
			fail("Upload failed: %v", err)
		}
	},
}

func yesNo(b bool) string {
	if b {
		return successColor.Sprint("yes")
	}
	return stepColor.Sprint("no")
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
