package script

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/treedit/internal/model"
	"github.com/idilsaglam/treedit/internal/snapshot"
	"github.com/idilsaglam/treedit/internal/tree"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Command
	}{
		{"add 1 Buy   milk", Command{Line: 1, Verb: Add, ID: 1, Title: "Buy   milk"}},
		{"  EDIT 3 New title ", Command{Line: 1, Verb: Edit, ID: 3, Title: "New title"}},
		{"add 2", Command{Line: 1, Verb: Add, ID: 2}},
		{"rm 4", Command{Line: 1, Verb: Remove, ID: 4}},
		{"toggle 5", Command{Line: 1, Verb: Toggle, ID: 5}},
		{"global-toggle", Command{Line: 1, Verb: GlobalToggle}},
		{"show json", Command{Line: 1, Verb: Show, Format: snapshot.JSON}},
		{"show", Command{Line: 1, Verb: Show}},
	}
	for _, tc := range cases {
		got, ok, err := Parse(tc.in, 1)
		require.NoError(t, err, tc.in)
		require.True(t, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParse_SkipsBlankAndComments(t *testing.T) {
	for _, in := range []string{"", "   ", "# note", "  # indented"} {
		_, ok, err := Parse(in, 3)
		assert.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestParse_Errors(t *testing.T) {
	for _, in := range []string{
		"frobnicate 1",
		"add",
		"add x title",
		"rm",
		"rm 0",
		"rm 1 2",
		"toggle -3",
		"expand-all now",
		"show xml",
	} {
		_, _, err := Parse(in, 7)
		var pe *ParseError
		require.ErrorAs(t, err, &pe, in)
		assert.Equal(t, 7, pe.Line)
	}
}

func run(t *testing.T, r *Runner, src string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	r.Out = &out
	err := r.Run(context.Background(), strings.NewReader(src))
	return out.String(), err
}

func TestRunner_Scenario(t *testing.T) {
	s := tree.New(tree.WithRootTitle("R"))
	out, err := run(t, &Runner{Tree: s, Format: snapshot.Text}, `
# build a small tree
add 1 A
add 2 B
add 1
rm 2
show
`)
	require.NoError(t, err)
	assert.Equal(t, "added 2 under 1\nadded 3 under 2\nno-op: blank title\ndeleted 2\n- R [1]\n", out)
	_, ok := s.Find(3)
	assert.False(t, ok)
}

func TestRunner_StopsAtFirstFailure(t *testing.T) {
	s := tree.New()
	out, err := run(t, &Runner{Tree: s}, "add 1 a\nrm 1\nadd 1 b\n")

	require.Error(t, err)
	assert.ErrorIs(t, err, tree.ErrNoParent)
	assert.Equal(t, "line 2: rm 1: node has no parent", err.Error())
	assert.Equal(t, "added 2 under 1\n", out)
	assert.Equal(t, 2, s.Len())
}

func TestRunner_KeepGoing(t *testing.T) {
	s := tree.New()
	out, err := run(t, &Runner{Tree: s, KeepGoing: true}, "edit 9 x\nbogus\nadd 1 a\ntoggle 7\n")

	require.Error(t, err)
	assert.ErrorIs(t, err, tree.ErrNodeNotFound)
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
	assert.Len(t, strings.Split(err.Error(), "\n"), 3)
	assert.Equal(t, "added 2 under 1\n", out)
}

func TestRunner_ExpandCollapse(t *testing.T) {
	s := tree.New()
	out, err := run(t, &Runner{Tree: s}, "add 1 a\ntoggle 2\nglobal-toggle\nglobal-toggle\ncollapse-all\nexpand-all\nedit 2 b\nedit 2  \n")
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"added 2 under 1",
		"toggled 2: collapsed",
		"global toggle: expanded",
		"global toggle: collapsed",
		"collapsed all",
		"expanded all",
		"edited 2",
		"no-op: blank title",
		"",
	}, "\n"), out)
	n, _ := s.Find(2)
	assert.Equal(t, "b", n.Title)
}

func TestRunner_LockedTree(t *testing.T) {
	l := tree.NewLocked(tree.New())
	_, err := run(t, &Runner{Tree: l}, "add 1 a\nadd 2 b\n")
	require.NoError(t, err)
	n, ok := l.Find(3)
	require.True(t, ok)
	assert.Equal(t, []model.Node{}, n.Children)
}

func TestRunner_LongTitle(t *testing.T) {
	s := tree.New()
	title := strings.Repeat("x", 70000)
	out, err := run(t, &Runner{Tree: s}, "add 1 "+title+"\nadd 2 b\n")
	require.NoError(t, err)
	assert.Equal(t, "added 2 under 1\nadded 3 under 2\n", out)
	n, ok := s.Find(2)
	require.True(t, ok)
	assert.Len(t, n.Title, 70000)

	_, err = run(t, &Runner{Tree: tree.New()}, "add 1 "+strings.Repeat("y", MaxLineBytes)+"\n")
	assert.ErrorIs(t, err, bufio.ErrTooLong)
}

func TestRunner_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &Runner{Tree: tree.New()}
	err := r.Run(ctx, strings.NewReader("add 1 a\n"))
	assert.True(t, errors.Is(err, context.Canceled))
}
