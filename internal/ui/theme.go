package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette, tree markers and panel borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Selected lipgloss.Style
	Border                                         lipgloss.Border
	BorderColor                                    lipgloss.Color

	// Markers drawn in front of a node title.
	Expanded, Collapsed, Leaf string
	Indent                    string
}

var current = themeFor("classic")

// Themes lists the names SetTheme understands.
var Themes = []string{"classic", "neon", "mono"}

func SetTheme(name string) { current = themeFor(name) }

func themeFor(name string) Theme {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "neon":
		return Theme{
			Name:        "neon",
			Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			Muted:       lipgloss.NewStyle().Faint(true),
			Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
			Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Selected:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")).Reverse(true),
			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("13"),
			Expanded:    "◆", Collapsed: "◇", Leaf: "·",
			Indent: "  ",
		}
	case "mono":
		plain := lipgloss.NewStyle()
		return Theme{
			Name:  "mono",
			Title: plain, Muted: plain, Accent: plain, Success: plain, Error: plain,
			Selected:    plain.Reverse(true),
			Border:      lipgloss.NormalBorder(),
			BorderColor: lipgloss.Color(""),
			Expanded:    "[-]", Collapsed: "[+]", Leaf: "[ ]",
			Indent: "    ",
		}
	default: // classic
		return Theme{
			Name:        "classic",
			Title:       lipgloss.NewStyle().Bold(true),
			Muted:       lipgloss.NewStyle().Faint(true),
			Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Selected:    lipgloss.NewStyle().Bold(true).Reverse(true),
			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("8"),
			Expanded:    "▾", Collapsed: "▸", Leaf: "•",
			Indent: "  ",
		}
	}
}

// Expose what renderers need
func Current() Theme { return current }
