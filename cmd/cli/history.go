// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"release-manager/internal/journal"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past release runs, newest first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		j := mustOpenJournal()
		defer j.Close()

		records, err := j.List(historyLimit)
		if err != nil {
			fail("Error reading run history: %v", err)
		}
		if len(records) == 0 {
			fmt.Println("No release runs recorded yet.")
			return
		}
		for _, rec := range records {
			printRecord(rec)
		}
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of runs to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

func printRecord(rec journal.Record) {
	versions := rec.VersionBefore
	if rec.VersionAfter != rec.VersionBefore {
		versions = fmt.Sprintf("%s → %s", rec.VersionBefore, rec.VersionAfter)
	}
	fmt.Printf("#%d %s  %s  %s",
		rec.ID,
		rec.StartedAt.Local().Format("2006-01-02 15:04"),
		identifierColor.Sprint(rec.Project),
		versions,
	)
	if rec.Tag != "" {
		fmt.Printf("  tagged %s", identifierColor.Sprint(rec.Tag))
	}
	fmt.Println()

	steps := make([]string, 0, len(rec.Steps))
	for _, s := range rec.Steps {
		steps = append(steps, stepStatusColor(s.Status).Sprintf("%s:%s", s.Step, s.Status))
	}
	fmt.Printf("    %s\n", strings.Join(steps, " "))
}
