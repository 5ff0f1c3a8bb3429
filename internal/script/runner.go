// Package script runs a batch of tree edits, one command per line, against a
// single in-memory tree.
package script

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/idilsaglam/treedit/internal/logger"
	"github.com/idilsaglam/treedit/internal/model"
	"github.com/idilsaglam/treedit/internal/snapshot"
)

// Editor is the part of a tree the runner drives. Both *tree.Store and
// *tree.Locked satisfy it.
type Editor interface {
	AddChild(parent model.ID, title string) (model.Node, bool, error)
	EditTitle(id model.ID, title string) (bool, error)
	Delete(id model.ID) error
	ToggleExpand(id model.ID) (bool, error)
	ExpandAll()
	CollapseAll()
	GlobalToggle() bool
	Roots() []model.Node
}

// MaxLineBytes is the longest script line Run accepts.
const MaxLineBytes = 1 << 20

type Runner struct {
	Tree Editor
	Out  io.Writer
	// Format is used by "show" lines that name none.
	Format snapshot.Format
	// KeepGoing reports failed lines and carries on; the joined failures are
	// returned at the end.
	KeepGoing bool
}

// Run executes every line of r in order. It stops at the first failure unless
// KeepGoing is set.
func (r *Runner) Run(ctx context.Context, in io.Reader) error {
	var failures []error
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineBytes)
	n := 0
	for sc.Scan() {
		n++
		if err := ctx.Err(); err != nil {
			return err
		}
		cmd, ok, err := Parse(sc.Text(), n)
		if err == nil && ok {
			err = r.Exec(cmd)
		}
		if err == nil {
			continue
		}
		logger.Warn("script line failed", "line", n, "error", err)
		if !r.KeepGoing {
			return err
		}
		failures = append(failures, err)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	return errors.Join(failures...)
}

// Exec applies one command and writes its outcome to Out.
func (r *Runner) Exec(cmd Command) error {
	logger.Debug("exec", "line", cmd.Line, "verb", string(cmd.Verb), "id", uint64(cmd.ID))
	fail := func(err error) error {
		return fmt.Errorf("line %d: %s: %w", cmd.Line, cmd, err)
	}

	switch cmd.Verb {
	case Add:
		n, changed, err := r.Tree.AddChild(cmd.ID, cmd.Title)
		if err != nil {
			return fail(err)
		}
		if !changed {
			return r.say("no-op: blank title")
		}
		return r.say("added %d under %d", n.ID, cmd.ID)
	case Edit:
		changed, err := r.Tree.EditTitle(cmd.ID, cmd.Title)
		if err != nil {
			return fail(err)
		}
		if !changed {
			return r.say("no-op: blank title")
		}
		return r.say("edited %d", cmd.ID)
	case Remove:
		if err := r.Tree.Delete(cmd.ID); err != nil {
			return fail(err)
		}
		return r.say("deleted %d", cmd.ID)
	case Toggle:
		expanded, err := r.Tree.ToggleExpand(cmd.ID)
		if err != nil {
			return fail(err)
		}
		return r.say("toggled %d: %s", cmd.ID, state(expanded))
	case ExpandAll:
		r.Tree.ExpandAll()
		return r.say("expanded all")
	case CollapseAll:
		r.Tree.CollapseAll()
		return r.say("collapsed all")
	case GlobalToggle:
		return r.say("global toggle: %s", state(r.Tree.GlobalToggle()))
	case Show:
		f := cmd.Format
		if f == "" {
			f = r.Format
		}
		if err := snapshot.Write(r.out(), f, r.Tree.Roots()); err != nil {
			return fail(err)
		}
		return nil
	}
	return fail(fmt.Errorf("unsupported command %q", cmd.Verb))
}

func (r *Runner) out() io.Writer {
	if r.Out == nil {
		return io.Discard
	}
	return r.Out
}

func (r *Runner) say(format string, args ...any) error {
	_, err := fmt.Fprintf(r.out(), format+"\n", args...)
	return err
}

func state(expanded bool) string {
	if expanded {
		return "expanded"
	}
	return "collapsed"
}
