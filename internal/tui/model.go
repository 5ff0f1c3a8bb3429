// Package tui is the interactive tree editor: one list row per visible node,
// with inline prompts for adding and renaming.
package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/treedit/internal/logger"
	"github.com/idilsaglam/treedit/internal/model"
	"github.com/idilsaglam/treedit/internal/tree"
	"github.com/idilsaglam/treedit/internal/ui"
)

type mode int

const (
	browsing mode = iota
	adding
	editing
)

// rowItem adapts a model.Row to bubbles/list.Item
type rowItem struct{ row model.Row }

func (i rowItem) FilterValue() string { return i.row.Title }

// Custom delegate to control how rows render (single line, indented)
type rowDelegate struct{}

func (d rowDelegate) Height() int                               { return 1 }
func (d rowDelegate) Spacing() int                              { return 0 }
func (d rowDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(rowItem)
	if !ok {
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = ui.Current().Selected.Render("> ")
	}
	fmt.Fprint(w, prefix+ui.OutlineLine(it.row))
}

// Model is the Bubble Tea model. It edits the tree it was given in place.
type Model struct {
	tree *tree.Store
	list list.Model
	keys keyMap

	mode   mode
	target model.ID        // node the open prompt acts on
	ti     textinput.Model // shared by add and edit

	status    string
	statusErr bool

	width, height int
}

func New(s *tree.Store) Model {
	keys := defaultKeys()

	l := list.New(nil, rowDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("node", "nodes")
	l.Styles.Title = ui.Current().Title
	l.Styles.HelpStyle = ui.Current().Muted
	l.Styles.PaginationStyle = ui.Current().Muted
	// g and d belong to the tree, not to list paging.
	l.KeyMap.GoToStart = key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "go to start"))
	l.KeyMap.NextPage = key.NewBinding(key.WithKeys("right", "l", "pgdown", "f"), key.WithHelp("→/l/pgdn", "next page"))
	l.KeyMap.Quit.SetEnabled(false)
	l.AdditionalShortHelpKeys = keys.short
	l.AdditionalFullHelpKeys = keys.full

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := Model{
		tree:   s,
		list:   l,
		keys:   keys,
		ti:     ti,
		width:  80,
		height: 24,
	}
	m.resize()
	m.refresh(0)
	return m
}

// Run starts the editor on s and blocks until the user quits.
func Run(s *tree.Store, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	p := tea.NewProgram(New(s), opts...)
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = size.Width, size.Height
		m.resize()
		return m, nil
	}
	if m.mode != browsing {
		return m.updatePrompt(msg)
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(k, m.keys.Add):
			if id, ok := m.selected(); ok {
				m.openPrompt(adding, id, "", "New child title...")
			}
			return m, nil
		case key.Matches(k, m.keys.Edit):
			if id, ok := m.selected(); ok {
				n, _ := m.tree.Find(id)
				m.openPrompt(editing, id, n.Title, "New title...")
			}
			return m, nil
		case key.Matches(k, m.keys.Delete):
			m.deleteSelected()
			return m, nil
		case key.Matches(k, m.keys.Toggle):
			if id, ok := m.selected(); ok {
				expanded, err := m.tree.ToggleExpand(id)
				if err != nil {
					m.setError(err.Error())
				} else {
					m.setStatus(fmt.Sprintf("%s #%d", stateWord(expanded), id))
				}
				m.refresh(id)
			}
			return m, nil
		case key.Matches(k, m.keys.GlobalToggle):
			expanded := m.tree.GlobalToggle()
			logger.Info("global toggle", "expanded", expanded)
			m.setStatus("global toggle: " + stateWord(expanded))
			m.refreshKeep()
			return m, nil
		case key.Matches(k, m.keys.ExpandAll):
			m.tree.ExpandAll()
			m.setStatus("expanded all")
			m.refreshKeep()
			return m, nil
		case key.Matches(k, m.keys.CollapseAll):
			m.tree.CollapseAll()
			m.setStatus("collapsed all")
			m.refreshKeep()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updatePrompt(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			m.submitPrompt()
			return m, nil
		case "esc":
			m.closePrompt()
			m.setStatus("cancelled")
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *Model) openPrompt(md mode, target model.ID, value, placeholder string) {
	m.mode = md
	m.target = target
	m.ti.SetValue(value)
	m.ti.CursorEnd()
	m.ti.Placeholder = placeholder
	m.ti.Focus()
	m.status, m.statusErr = "", false
	m.resize()
}

func (m *Model) closePrompt() {
	m.mode = browsing
	m.ti.SetValue("")
	m.ti.Blur()
	m.resize()
}

// submitPrompt applies the open prompt. Blank input keeps the prompt open
// and leaves the tree untouched.
func (m *Model) submitPrompt() {
	title := strings.TrimSpace(m.ti.Value())
	if title == "" {
		m.setError("Title cannot be empty")
		return
	}

	switch m.mode {
	case adding:
		n, _, err := m.tree.AddChild(m.target, title)
		if err != nil {
			m.closePrompt()
			m.setError(fmt.Sprintf("add: %v", err))
			m.refreshKeep()
			return
		}
		logger.Info("added node", "id", uint64(n.ID), "parent", uint64(m.target))
		m.closePrompt()
		m.setStatus(fmt.Sprintf("added #%d", n.ID))
		m.refresh(n.ID)
	case editing:
		if _, err := m.tree.EditTitle(m.target, title); err != nil {
			m.closePrompt()
			m.setError(fmt.Sprintf("edit: %v", err))
			m.refreshKeep()
			return
		}
		logger.Info("edited node", "id", uint64(m.target))
		m.closePrompt()
		m.setStatus(fmt.Sprintf("edited #%d", m.target))
		m.refresh(m.target)
	}
}

func (m *Model) deleteSelected() {
	id, ok := m.selected()
	if !ok {
		return
	}
	parent, _ := m.tree.FindParent(id)
	if err := m.tree.Delete(id); err != nil {
		if errors.Is(err, tree.ErrNoParent) {
			m.setError("root nodes cannot be deleted")
		} else {
			m.setError(err.Error())
		}
		return
	}
	logger.Info("deleted node", "id", uint64(id))
	m.setStatus(fmt.Sprintf("deleted #%d", id))
	m.refresh(parent.ID)
}

func (m Model) selected() (model.ID, bool) {
	it, ok := m.list.SelectedItem().(rowItem)
	if !ok {
		return 0, false
	}
	return it.row.ID, true
}

func (m *Model) refreshKeep() {
	id, _ := m.selected()
	m.refresh(id)
}

// refresh rebuilds the rows from the tree and selects selectID when it is
// visible, otherwise keeps the cursor in range.
func (m *Model) refresh(selectID model.ID) {
	rows := m.tree.Rows(true)
	items := make([]list.Item, len(rows))
	idx := -1
	for i, r := range rows {
		items[i] = rowItem{row: r}
		if r.ID == selectID {
			idx = i
		}
	}
	m.list.SetItems(items)
	switch {
	case idx >= 0:
		m.list.Select(idx)
	case m.list.Index() >= len(items):
		m.list.Select(len(items) - 1)
	}
	m.list.Title = m.header()
}

func (m Model) header() string {
	label := "Global Expand"
	if m.tree.AllExpanded() {
		label = "Global Collapse"
	}
	return fmt.Sprintf("Tree  %d nodes  g: %s", m.tree.Len(), label)
}

func (m *Model) setStatus(s string) { m.status, m.statusErr = s, false }
func (m *Model) setError(s string)  { m.status, m.statusErr = s, true }

func (m *Model) resize() {
	reserved := 4 // panel border and status line
	if m.mode != browsing {
		reserved += 4
	}
	h := m.height - reserved
	if h < 3 {
		h = 3
	}
	w := m.width - 4
	if w < 10 {
		w = 10
	}
	m.list.SetSize(w, h)
	m.ti.Width = w - 4
}

func (m Model) View() string {
	t := ui.Current()
	parts := []string{m.list.View()}

	if m.mode != browsing {
		title := "Add child"
		if m.mode == editing {
			title = "Edit title"
		}
		title = fmt.Sprintf("%s of #%d", title, m.target)
		if m.statusErr && m.status != "" {
			title += " - " + t.Error.Render(m.status)
		}
		parts = append(parts, ui.PanelString([]string{title, m.ti.View()}))
	} else if m.status != "" {
		style := t.Muted
		if m.statusErr {
			style = t.Error
		}
		parts = append(parts, style.Render(m.status))
	}
	return ui.PanelString(parts)
}

func stateWord(expanded bool) string {
	if expanded {
		return "expanded"
	}
	return "collapsed"
}
