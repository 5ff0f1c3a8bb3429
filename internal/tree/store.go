// Package tree holds the editable tree and every structural operation on it.
//
// Nodes live in a flat arena keyed by id; each record knows its parent and
// its ordered children, so lookups never walk the tree. Callers only ever get
// copies (model.Node, model.Row) back.
package tree

import (
	"errors"
	"fmt"

	"github.com/idilsaglam/treedit/internal/model"
)

// DefaultRootTitle is the title of the seed root when none is configured.
const DefaultRootTitle = "Root"

var (
	ErrParentNotFound = errors.New("parent not found")
	ErrNodeNotFound   = errors.New("node not found")
	// ErrNoParent is returned when deleting a root or an unknown id.
	ErrNoParent = errors.New("node has no parent")
	// ErrIDReused is returned when the IDSource hands out zero or an id
	// that is already in the tree.
	ErrIDReused = errors.New("id source returned an id in use")
)

type record struct {
	title    string
	expanded bool
	parent   model.ID // 0 for roots
	children []model.ID
}

// Store owns one tree. It is not safe for concurrent use; see Locked.
type Store struct {
	nodes map[model.ID]*record
	roots []model.ID
	ids   IDSource
}

// Option tunes a Store at construction.
type Option func(*options)

type options struct {
	rootTitle string
	ids       IDSource
}

// WithRootTitle sets the seed root's title. Blank values keep the default.
func WithRootTitle(title string) Option {
	return func(o *options) {
		if !model.Blank(title) {
			o.rootTitle = title
		}
	}
}

// WithIDSource replaces the default counter. The source must never repeat an
// id or return zero; AddChild refuses one that does.
func WithIDSource(src IDSource) Option {
	return func(o *options) {
		if src != nil {
			o.ids = src
		}
	}
}

// New returns a tree seeded with a single expanded root.
func New(opts ...Option) *Store {
	o := options{rootTitle: DefaultRootTitle}
	for _, opt := range opts {
		opt(&o)
	}
	if o.ids == nil {
		o.ids = NewCounter()
	}
	s := &Store{
		nodes: make(map[model.ID]*record),
		ids:   o.ids,
	}
	id := s.ids.Next()
	if id == 0 {
		panic("tree: id source returned 0 for the root")
	}
	s.nodes[id] = &record{title: o.rootTitle, expanded: true}
	s.roots = append(s.roots, id)
	return s
}

// Find returns the node with the given id and its subtree.
func (s *Store) Find(id model.ID) (model.Node, bool) {
	if _, ok := s.nodes[id]; !ok {
		return model.Node{}, false
	}
	return s.view(id), true
}

// FindParent returns the node whose children directly contain id.
// Roots and unknown ids have no parent.
func (s *Store) FindParent(id model.ID) (model.Node, bool) {
	r, ok := s.nodes[id]
	if !ok || r.parent == 0 {
		return model.Node{}, false
	}
	return s.view(r.parent), true
}

// AddChild appends a new expanded node titled title under parent.
// A blank title is a no-op: nothing is created and changed is false.
func (s *Store) AddChild(parent model.ID, title string) (n model.Node, changed bool, err error) {
	if model.Blank(title) {
		return model.Node{}, false, nil
	}
	p, ok := s.nodes[parent]
	if !ok {
		return model.Node{}, false, ErrParentNotFound
	}
	id := s.ids.Next()
	if _, taken := s.nodes[id]; taken || id == 0 {
		return model.Node{}, false, fmt.Errorf("%w: %d", ErrIDReused, id)
	}
	s.nodes[id] = &record{title: title, expanded: true, parent: parent}
	p.children = append(p.children, id)
	return s.view(id), true, nil
}

// EditTitle replaces the title of id. A blank title leaves it unchanged.
func (s *Store) EditTitle(id model.ID, title string) (changed bool, err error) {
	r, ok := s.nodes[id]
	if !ok {
		return false, ErrNodeNotFound
	}
	if model.Blank(title) {
		return false, nil
	}
	r.title = title
	return true, nil
}

// Delete detaches id and its whole subtree from its parent.
// Roots cannot be deleted.
func (s *Store) Delete(id model.ID) error {
	r, ok := s.nodes[id]
	if !ok || r.parent == 0 {
		return ErrNoParent
	}
	p := s.nodes[r.parent]
	for i, c := range p.children {
		if c == id {
			p.children = append(p.children[:i:i], p.children[i+1:]...)
			break
		}
	}
	s.forget(id)
	return nil
}

// forget drops id and its descendants from the arena so the ids can no
// longer be found.
func (s *Store) forget(id model.ID) {
	stack := []model.ID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if r, ok := s.nodes[cur]; ok {
			stack = append(stack, r.children...)
			delete(s.nodes, cur)
		}
	}
}

// ToggleExpand flips the expanded flag of id and returns the new value.
func (s *Store) ToggleExpand(id model.ID) (expanded bool, err error) {
	r, ok := s.nodes[id]
	if !ok {
		return false, ErrNodeNotFound
	}
	r.expanded = !r.expanded
	return r.expanded, nil
}

// ExpandAll marks every node expanded.
func (s *Store) ExpandAll() { s.setAll(true) }

// CollapseAll marks every node collapsed.
func (s *Store) CollapseAll() { s.setAll(false) }

func (s *Store) setAll(expanded bool) {
	for _, r := range s.nodes {
		r.expanded = expanded
	}
}

// AllExpanded reports whether every node in the tree is expanded.
func (s *Store) AllExpanded() bool {
	for _, r := range s.nodes {
		if !r.expanded {
			return false
		}
	}
	return true
}

// GlobalToggle collapses everything when every node is expanded and expands
// everything otherwise, so a mixed tree always ends up fully expanded.
// It returns the new expanded state.
func (s *Store) GlobalToggle() bool {
	if s.AllExpanded() {
		s.CollapseAll()
		return false
	}
	s.ExpandAll()
	return true
}

// Len returns the number of nodes in the tree.
func (s *Store) Len() int { return len(s.nodes) }

// Roots returns the top-level nodes with their subtrees, in order.
func (s *Store) Roots() []model.Node {
	out := make([]model.Node, 0, len(s.roots))
	for _, id := range s.roots {
		out = append(out, s.view(id))
	}
	return out
}

// Rows flattens the tree in pre-order. With visibleOnly the children of
// collapsed nodes are skipped.
func (s *Store) Rows(visibleOnly bool) []model.Row {
	rows := make([]model.Row, 0, len(s.nodes))
	var walk func(ids []model.ID, depth int)
	walk = func(ids []model.ID, depth int) {
		for _, id := range ids {
			r := s.nodes[id]
			rows = append(rows, model.Row{
				ID:          id,
				Title:       r.title,
				Depth:       depth,
				Expanded:    r.expanded,
				HasChildren: len(r.children) > 0,
			})
			if r.expanded || !visibleOnly {
				walk(r.children, depth+1)
			}
		}
	}
	walk(s.roots, 0)
	return rows
}

func (s *Store) view(id model.ID) model.Node {
	r := s.nodes[id]
	n := model.Node{
		ID:       id,
		Title:    r.title,
		Expanded: r.expanded,
		Children: make([]model.Node, 0, len(r.children)),
	}
	for _, c := range r.children {
		n.Children = append(n.Children, s.view(c))
	}
	return n
}
