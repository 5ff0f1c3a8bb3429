package tree

import (
	"sync"

	"github.com/idilsaglam/treedit/internal/model"
)

// Locked serializes access to a Store shared between goroutines.
// Every call holds one mutex for its whole find-then-mutate sequence.
type Locked struct {
	mu sync.Mutex
	s  *Store
}

func NewLocked(s *Store) *Locked { return &Locked{s: s} }

func (l *Locked) Find(id model.ID) (model.Node, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.s.Find(id)
}

func (l *Locked) FindParent(id model.ID) (model.Node, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.s.FindParent(id)
}

func (l *Locked) AddChild(parent model.ID, title string) (model.Node, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.s.AddChild(parent, title)
}

func (l *Locked) EditTitle(id model.ID, title string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.s.EditTitle(id, title)
}

func (l *Locked) Delete(id model.ID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.s.Delete(id)
}

func (l *Locked) ToggleExpand(id model.ID) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.s.ToggleExpand(id)
}

func (l *Locked) ExpandAll() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.s.ExpandAll()
}

func (l *Locked) CollapseAll() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.s.CollapseAll()
}

func (l *Locked) GlobalToggle() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.s.GlobalToggle()
}

func (l *Locked) Roots() []model.Node {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.s.Roots()
}
