// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"release-manager/internal/config"
	"release-manager/internal/logger"
)

// dimColor is used for less important/secondary text in the CLI output
var dimColor = color.New(color.Faint)

var forceInit bool

// configCmd is the parent command for all configuration-related subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the project configuration",
	Long: `Provides subcommands to inspect and create the .relm.yaml file that
tells relm where the manifest lives, which package manager to drive and how
each host platform is built.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fail("Error encoding configuration: %v", err)
		}

		path := config.Path(projectDir)
		if _, err := os.Stat(path); err == nil {
			dimColor.Printf("# %s\n", path)
		} else {
			dimColor.Printf("# defaults (no %s in %s)\n", config.FileName, projectDir)
		}
		fmt.Print(string(data))

		if stateDir, err := config.StateDir(); err == nil {
			dimColor.Printf("# log and run history: %s\n", stateDir)
		}
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a .relm.yaml with the default settings",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		path := config.Path(projectDir)
		if _, err := os.Stat(path); err == nil && !forceInit {
			fail("Error: %s already exists (use --force to overwrite)", path)
		}

		if err := config.Save(projectDir, config.Default()); err != nil {
			fail("Error saving configuration: %v", err)
		}
		logger.Info("configuration written", "path", path)
		successColor.Printf("Wrote %s\n", path)
		fmt.Println("\nTip: adjust the platform scripts to match the build scripts in your manifest.")
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "overwrite an existing file")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
