package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	goversion "go.hein.dev/go-version"
)

// Set by the linker: -X github.com/idilsaglam/treedit/internal/cli.version=...
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func addVersion(topLevel *cobra.Command) {
	shortened := false
	output := "json"
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the treedit version.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output != "json" && output != "yaml" {
				return usagef("version: unknown output %q", output)
			}
			resp := goversion.FuncWithOutput(shortened, version, commit, date, output)
			_, err := fmt.Fprint(cmd.OutOrStdout(), resp)
			return err
		},
	}
	cmd.Flags().BoolVarP(&shortened, "short", "s", false, "Print just the version number.")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format. One of 'yaml' or 'json'.")
	topLevel.AddCommand(cmd)
}
