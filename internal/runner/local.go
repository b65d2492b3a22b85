// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package runner

import (
	"errors"
	"fmt"
	"os/exec"
)

// runLocalCommand starts cmd and waits for it. The exit status, when the
// process got far enough to have one, is part of the returned error.
func runLocalCommand(cmd *exec.Cmd, cmdDesc string) error {
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", cmdDesc, err)
	}

	cmdErr := cmd.Wait()
	if cmdErr != nil {
		exitCode := -1
		var exitError *exec.ExitError
		if errors.As(cmdErr, &exitError) {
			exitCode = exitError.ExitCode()
		}
		if exitCode != -1 {
			return fmt.Errorf("%s exited with status %d: %w", cmdDesc, exitCode, cmdErr)
		}
		return fmt.Errorf("%s failed: %w", cmdDesc, cmdErr)
	}
	return nil
}
