package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/riverlane-tools/riverlane/pkg/chain"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// FamilyListModel is the bubbletea model for browsing a document's families.
// The left pane lists families; the detail pane shows the selected family's
// chains with their members and time spans.
type FamilyListModel struct {
	Graph    *chain.Graph
	Families []*chain.Family
	Cursor   int
	Height   int
	Offset   int
}

// NewFamilyListModel creates a new family browser model.
func NewFamilyListModel(g *chain.Graph, families []*chain.Family) FamilyListModel {
	return FamilyListModel{
		Graph:    g,
		Families: families,
		Cursor:   0,
		Height:   15,
		Offset:   0,
	}
}

func (m FamilyListModel) Init() tea.Cmd {
	return nil
}

func (m FamilyListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Families)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m FamilyListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Families"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	if len(m.Families) == 0 {
		b.WriteString(listDimStyle.Render("no families"))
		b.WriteString("\n")
		return b.String()
	}

	end := m.Offset + m.Height
	if end > len(m.Families) {
		end = len(m.Families)
	}

	for i := m.Offset; i < end; i++ {
		fam := m.Families[i]
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		line := fmt.Sprintf("family %-3d %3d chains %3d links", fam.Index, fam.Size(), fam.LinkCount())
		b.WriteString(cursor + style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.detailView())
	return b.String()
}

// detailView renders the selected family's chains.
func (m FamilyListModel) detailView() string {
	fam := m.Families[m.Cursor]

	var b strings.Builder
	b.WriteString(StyleHighlight.Render(fmt.Sprintf("family %d", fam.Index)))
	b.WriteString(listDimStyle.Render("  hash " + truncateHash(fam.Hash(m.Graph))))
	b.WriteString("\n")

	shown := fam.Chains
	const maxChains = 10
	if len(shown) > maxChains {
		shown = shown[:maxChains]
	}
	for _, id := range shown {
		c, ok := m.Graph.Chain(id)
		if !ok {
			continue
		}
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d-%d  ", c.Start, c.End)))
		b.WriteString(listNormalStyle.Render(joinMembers(c.Members)))
		b.WriteString("\n")
	}
	if len(fam.Chains) > maxChains {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  … %d more", len(fam.Chains)-maxChains)))
		b.WriteString("\n")
	}
	return b.String()
}
