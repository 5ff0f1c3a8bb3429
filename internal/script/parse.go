package script

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/idilsaglam/treedit/internal/model"
	"github.com/idilsaglam/treedit/internal/snapshot"
)

type Verb string

const (
	Add          Verb = "add"
	Edit         Verb = "edit"
	Remove       Verb = "rm"
	Toggle       Verb = "toggle"
	ExpandAll    Verb = "expand-all"
	CollapseAll  Verb = "collapse-all"
	GlobalToggle Verb = "global-toggle"
	Show         Verb = "show"
)

// Command is one parsed script line.
type Command struct {
	Line   int
	Verb   Verb
	ID     model.ID
	Title  string
	Format snapshot.Format
}

func (c Command) String() string {
	switch c.Verb {
	case Add, Edit:
		return fmt.Sprintf("%s %d %s", c.Verb, c.ID, c.Title)
	case Remove, Toggle:
		return fmt.Sprintf("%s %d", c.Verb, c.ID)
	case Show:
		if c.Format != "" {
			return fmt.Sprintf("%s %s", c.Verb, c.Format)
		}
	}
	return string(c.Verb)
}

// ParseError reports a line that is not a valid command.
type ParseError struct {
	Line int
	Text string
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Msg, e.Text)
}

// Parse reads one line. Blank lines and # comments yield ok=false.
func Parse(line string, n int) (cmd Command, ok bool, err error) {
	text := strings.TrimSpace(line)
	if text == "" || strings.HasPrefix(text, "#") {
		return Command{}, false, nil
	}
	fail := func(msg string) (Command, bool, error) {
		return Command{}, false, &ParseError{Line: n, Text: text, Msg: msg}
	}

	verb, rest := cut(text)
	cmd = Command{Line: n, Verb: Verb(strings.ToLower(verb))}

	switch cmd.Verb {
	case Add, Edit:
		arg, title := cut(rest)
		if arg == "" {
			return fail(fmt.Sprintf("usage: %s <id> <title...>", cmd.Verb))
		}
		id, err := parseID(arg)
		if err != nil {
			return fail(err.Error())
		}
		// A missing title is kept as blank; the tree treats it as a no-op.
		cmd.ID, cmd.Title = id, title
	case Remove, Toggle:
		arg, extra := cut(rest)
		if arg == "" || extra != "" {
			return fail(fmt.Sprintf("usage: %s <id>", cmd.Verb))
		}
		id, err := parseID(arg)
		if err != nil {
			return fail(err.Error())
		}
		cmd.ID = id
	case ExpandAll, CollapseAll, GlobalToggle:
		if rest != "" {
			return fail(fmt.Sprintf("%s takes no arguments", cmd.Verb))
		}
	case Show:
		if rest != "" {
			f, err := snapshot.ParseFormat(rest)
			if err != nil {
				return fail(err.Error())
			}
			cmd.Format = f
		}
	default:
		return fail("unknown command " + strconv.Quote(verb))
	}
	return cmd, true, nil
}

// cut splits off the first whitespace-separated word.
func cut(s string) (head, rest string) {
	s = strings.TrimSpace(s)
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i+1:])
}

func parseID(s string) (model.ID, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("not a node id: %s", s)
	}
	return model.ID(n), nil
}
