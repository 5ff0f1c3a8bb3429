package model

import "strings"

// ID identifies a node for the lifetime of the tree that created it.
// Zero is never handed out and means "no node".
type ID uint64

// Node is a read view of one tree element and its subtree.
// Values are copies; changing them does not touch the tree they came from.
type Node struct {
	ID       ID     `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Expanded bool   `json:"isExpanded" yaml:"isExpanded"`
	Children []Node `json:"children" yaml:"children"`
}

// Row is one line of a flattened pre-order walk.
type Row struct {
	ID          ID
	Title       string
	Depth       int
	Expanded    bool
	HasChildren bool
}

// Blank reports whether s is empty once surrounding whitespace is removed.
// Blank titles are never stored.
func Blank(s string) bool { return strings.TrimSpace(s) == "" }
