// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"regexp"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"release-manager/internal/artifact"
	"release-manager/internal/config"
	"release-manager/internal/version"
)

// versionPattern finds a version inside an installer file name such as
// "Player Setup 1.4.2.exe" or "Player-2.0.0-beta.1.dmg".
var versionPattern = regexp.MustCompile(`\d+\.\d+\.\d+(?:-[0-9A-Za-z]+(?:\.\d+)*)?`)

// stagedVersions returns the versions found in the names of staged
// artifacts, newest first.
func stagedVersions(artifacts []artifact.Artifact) []string {
	found := lo.FlatMap(artifacts, func(a artifact.Artifact, _ int) []string {
		return versionPattern.FindAllString(a.Name, -1)
	})
	versions := lo.Uniq(lo.FilterMap(found, func(s string, _ int) (string, bool) {
		v, err := version.Parse(s)
		return v, err == nil
	}))
	sort.SliceStable(versions, func(i, j int) bool {
		return version.IsNewer(versions[j], versions[i])
	})
	return versions
}

// versionCompletionFunc suggests versions that have installers in the staging directory.
func versionCompletionFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	// Completion does not run the persistent hooks, so load the config here.
	dir, err := resolveProjectDir()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	projectCfg, err := config.Load(dir)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	releaseDir, err := config.Abs(dir, projectCfg.ReleaseDir)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	staged, err := artifact.List(releaseDir)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	suggestions := lo.Filter(stagedVersions(staged), func(v string, _ int) bool {
		return strings.HasPrefix(v, toComplete)
	})
	return suggestions, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveKeepOrder
}

func stepStatusColor(status string) *color.Color {
	switch status {
	case "done":
		return successColor
	case "failed":
		return errorColor
	default:
		return dimColor
	}
}
