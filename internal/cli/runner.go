// Package cli wires configuration, logging and the two front ends (the
// interactive editor and the script runner) behind one command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/idilsaglam/treedit/internal/config"
	"github.com/idilsaglam/treedit/internal/logger"
	"github.com/idilsaglam/treedit/internal/script"
	"github.com/idilsaglam/treedit/internal/tree"
	"github.com/idilsaglam/treedit/internal/tui"
	"github.com/idilsaglam/treedit/internal/ui"
)

// Exit codes: 0 ok, 1 error, 2 usage.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Options carries the process streams; zero values mean the os ones.
type Options struct {
	In       io.Reader
	Out, Err io.Writer
	// Interactive replaces the terminal UI, mainly for tests.
	Interactive func(*tree.Store) error
}

type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{fmt.Errorf(format, args...)}
}

// app is the state shared by every subcommand of one invocation.
type app struct {
	opt Options
	cfg config.Config

	configFile string
	logCloser  io.Closer
}

// Run executes the command line and returns an exit code.
func Run(args []string, opt Options) int {
	if opt.In == nil {
		opt.In = os.Stdin
	}
	if opt.Out == nil {
		opt.Out = os.Stdout
	}
	if opt.Err == nil {
		opt.Err = os.Stderr
	}
	if opt.Interactive == nil {
		opt.Interactive = func(s *tree.Store) error { return tui.Run(s) }
	}
	ui.Stderr = opt.Err

	a := &app{opt: opt}
	root := a.newRoot()
	root.SetArgs(args)
	root.SetIn(opt.In)
	root.SetOut(opt.Out)
	root.SetErr(opt.Err)

	err := root.Execute()
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
	return exitCode(err)
}

func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	for _, line := range strings.Split(err.Error(), "\n") {
		ui.Fail(line)
	}
	var ue usageError
	var pe *script.ParseError
	if errors.As(err, &ue) || errors.As(err, &pe) {
		ui.Hint("run `treedit --help` to see valid commands")
		return ExitUsage
	}
	return ExitError
}

func (a *app) newRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "treedit",
		Short: "Edit a tree of labeled nodes.",
		Long: `treedit edits a tree of labeled nodes: add children, rename, delete and
expand or collapse subtrees. With no subcommand it opens the interactive editor.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usagef("unknown command %q for %q", args[0], cmd.CommandPath())
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.interactive()
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "Config file (default .treedit.yaml in ., $TREEDIT_CONFIG_PATH or $HOME).")
	pf.String("theme", "classic", "Colour theme: "+strings.Join(ui.Themes, ", ")+".")
	pf.String("root-title", tree.DefaultRootTitle, "Title of the initial root node.")
	pf.Bool("log", false, "Write a debug log under ~/.treedit/logs.")
	pf.Bool("no-color", false, "Disable colour output.")

	addTUI(a, cmd)
	addRun(a, cmd)
	addVersion(cmd)
	return cmd
}

// setup resolves configuration once flags are parsed.
func (a *app) setup(cmd *cobra.Command) error {
	flags := cmd.Flags()
	cfg, err := config.Load(config.Source{
		File: a.configFile,
		Flags: map[string]*pflag.Flag{
			config.KeyTheme:      flags.Lookup("theme"),
			config.KeyRootTitle:  flags.Lookup("root-title"),
			config.KeyLogEnabled: flags.Lookup("log"),
			config.KeyFormat:     flags.Lookup("format"),
		},
	})
	if err != nil {
		return err
	}
	a.cfg = cfg

	ui.SetTheme(cfg.Theme)
	if noColor, _ := flags.GetBool("no-color"); noColor || cfg.Theme == "mono" {
		ui.SetColor(false)
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return usageError{err}
	}
	closer, err := logger.Init(logger.Options{Enabled: cfg.Log.Enabled, Dir: cfg.Log.Dir, Level: level})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	a.logCloser = closer
	logger.Info("starting treedit", "command", cmd.Name(), "theme", cfg.Theme)
	return nil
}

func (a *app) newTree() *tree.Store {
	return tree.New(tree.WithRootTitle(a.cfg.RootTitle))
}

func (a *app) interactive() error {
	if err := a.opt.Interactive(a.newTree()); err != nil {
		logger.Error("tui error", "error", err)
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func addTUI(a *app, topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive editor.",
		Long: `Open the interactive editor on a fresh tree.

Keys: a add child, e edit, d delete, space expand/collapse, g global toggle,
E expand all, C collapse all, q quit.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.interactive()
		},
	}
	topLevel.AddCommand(cmd)
}
