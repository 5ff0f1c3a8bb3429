package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/idilsaglam/treedit/internal/model"
)

// maxTitleWidth is the widest title Outline prints, in terminal cells.
const maxTitleWidth = 80

// Marker returns the theme glyph for a row.
func Marker(r model.Row) string {
	t := Current()
	switch {
	case !r.HasChildren:
		return t.Leaf
	case r.Expanded:
		return t.Expanded
	default:
		return t.Collapsed
	}
}

// OutlineLine renders one row: indent, accented marker, title.
func OutlineLine(r model.Row) string {
	t := Current()
	return strings.Repeat(t.Indent, r.Depth) + t.Accent.Render(Marker(r)) + " " + r.Title
}

// Outline renders rows as lines tagged with their ids.
func Outline(rows []model.Row) []string {
	t := Current()
	if len(rows) == 0 {
		return []string{t.Muted.Render("empty tree")}
	}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		r.Title = runewidth.Truncate(r.Title, maxTitleWidth, "...")
		out = append(out, OutlineLine(r)+" "+t.Muted.Render(fmt.Sprintf("#%d", r.ID)))
	}
	return out
}

// PanelString draws a framed box around lines using the current theme.
func PanelString(lines []string) string {
	t := Current()
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// Panel writes PanelString(lines) to w.
func Panel(w io.Writer, lines []string) {
	fmt.Fprintln(w, PanelString(lines))
}
