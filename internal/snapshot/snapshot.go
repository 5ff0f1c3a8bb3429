// Package snapshot writes read views of a tree in a handful of formats.
// It is output only: nothing here is ever loaded back.
package snapshot

import (
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/gosuri/uitable"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/treedit/internal/model"
)

type Format string

const (
	Text  Format = "text"
	JSON  Format = "json"
	YAML  Format = "yaml"
	Table Format = "table"
)

// Formats lists every supported format in help order.
var Formats = []Format{Text, JSON, YAML, Table}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want one of %s)", s, joinFormats())
}

func joinFormats() string {
	parts := make([]string, len(Formats))
	for i, f := range Formats {
		parts[i] = string(f)
	}
	return strings.Join(parts, ", ")
}

// Write encodes roots to w in format f.
func Write(w io.Writer, f Format, roots []model.Node) error {
	switch f {
	case JSON:
		return writeJSON(w, roots)
	case YAML:
		return writeYAML(w, roots)
	case Table:
		return writeTable(w, roots)
	case Text, "":
		return writeText(w, roots)
	}
	return fmt.Errorf("unknown format %q", f)
}

func writeJSON(w io.Writer, roots []model.Node) error {
	b, err := json.MarshalIndent(roots, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	b = append(b, '\n')
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, roots []model.Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(roots); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("yaml close: %w", err)
	}
	return nil
}

// writeText prints an indented outline. Collapsed nodes are marked but their
// children are still listed; this is a dump, not a view.
func writeText(w io.Writer, roots []model.Node) error {
	var b strings.Builder
	var walk func(nodes []model.Node, depth int)
	walk = func(nodes []model.Node, depth int) {
		for _, n := range nodes {
			mark := "-"
			if len(n.Children) > 0 {
				mark = "+"
				if n.Expanded {
					mark = "v"
				}
			}
			fmt.Fprintf(&b, "%s%s %s [%d]\n", strings.Repeat("  ", depth), mark, n.Title, n.ID)
			walk(n.Children, depth+1)
		}
	}
	walk(roots, 0)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeTable(w io.Writer, roots []model.Node) error {
	table := uitable.New()
	table.Separator = "  "
	table.MaxColWidth = 80
	table.AddRow("ID", "DEPTH", "STATE", "TITLE")
	var walk func(nodes []model.Node, depth int)
	walk = func(nodes []model.Node, depth int) {
		for _, n := range nodes {
			state := "collapsed"
			if n.Expanded {
				state = "expanded"
			}
			table.AddRow(n.ID, depth, state, n.Title)
			walk(n.Children, depth+1)
		}
	}
	walk(roots, 0)
	if _, err := fmt.Fprintln(w, table.String()); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
