package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add, Edit, Delete, Toggle            key.Binding
	GlobalToggle, ExpandAll, CollapseAll key.Binding
	Quit                                 key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Add:          key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add child")),
		Edit:         key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Toggle:       key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "expand/collapse")),
		GlobalToggle: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "global toggle")),
		ExpandAll:    key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "expand all")),
		CollapseAll:  key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "collapse all")),
		Quit:         key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) short() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Delete, k.Toggle, k.GlobalToggle}
}

func (k keyMap) full() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Delete, k.Toggle, k.GlobalToggle, k.ExpandAll, k.CollapseAll}
}
