package main

import (
	"release-manager/cmd/cli"
)

func main() {
	// Without arguments the root command starts the release wizard.
	cli.RunCLI()
}
