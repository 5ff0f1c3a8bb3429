package main

import (
	"os"

	"github.com/idilsaglam/treedit/internal/cli"
)

func main() {
	// Hand the args to the CLI runner; it owns flags, config and exit codes.
	os.Exit(cli.Run(os.Args[1:], cli.Options{}))
}
