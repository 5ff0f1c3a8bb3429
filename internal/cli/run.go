package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/treedit/internal/script"
	"github.com/idilsaglam/treedit/internal/snapshot"
	"github.com/idilsaglam/treedit/internal/ui"
)

func addRun(a *app, topLevel *cobra.Command) {
	keepGoing := false
	panel := false
	formats := make([]string, len(snapshot.Formats))
	for i, f := range snapshot.Formats {
		formats[i] = string(f)
	}

	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Apply a script of edits to a fresh tree and print the result.",
		Long: `Apply a script of edits, one per line, to a fresh tree and print the result.
The script is read from file, or from stdin when no file (or "-") is given.

Commands:
  add <parentID> <title...>   Append a child under parentID
  edit <id> <title...>        Rename a node
  rm <id>                     Delete a node and its subtree (roots cannot be deleted)
  toggle <id>                 Expand or collapse a node
  expand-all | collapse-all   Set every node
  global-toggle               Collapse all if everything is expanded, else expand all
  show [format]               Print the tree now

Blank titles are ignored. Lines starting with # are comments.`,
		Example: `
printf 'add 1 Groceries\nadd 2 Milk\n' | treedit run
treedit run edits.txt --format json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := snapshot.ParseFormat(a.cfg.Format)
			if err != nil {
				return usageError{err}
			}

			in := cmd.InOrStdin()
			name := "stdin"
			if len(args) == 1 && args[0] != "-" {
				file, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open script: %w", err)
				}
				defer file.Close()
				in, name = file, args[0]
			}
			return a.runScript(cmd.Context(), in, name, scriptOptions{format: f, keepGoing: keepGoing, panel: panel})
		},
	}
	cmd.Flags().StringP("format", "o", "text", "Output format. One of "+strings.Join(formats, ", ")+".")
	cmd.Flags().BoolVarP(&keepGoing, "keep-going", "k", false, "Report failed lines and continue.")
	cmd.Flags().BoolVar(&panel, "panel", false, "Print the visible tree in a themed panel instead of --format.")
	topLevel.AddCommand(cmd)
}

type scriptOptions struct {
	format    snapshot.Format
	keepGoing bool
	panel     bool
}

func (a *app) runScript(ctx context.Context, in io.Reader, name string, o scriptOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	s := a.newTree()
	r := &script.Runner{
		Tree:      s,
		Out:       a.opt.Out,
		Format:    o.format,
		KeepGoing: o.keepGoing,
	}
	runErr := r.Run(ctx, in)
	if runErr != nil && !o.keepGoing {
		return fmt.Errorf("%s: %w", name, runErr)
	}

	if o.panel {
		header := ui.Current().Title.Render(fmt.Sprintf("Tree  %d nodes", s.Len()))
		ui.Panel(a.opt.Out, append([]string{header, ""}, ui.Outline(s.Rows(true))...))
		return runErr
	}
	if err := snapshot.Write(a.opt.Out, o.format, s.Roots()); err != nil {
		return fmt.Errorf("print tree: %w", err)
	}
	return runErr
}
