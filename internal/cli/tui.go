package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/docgraph/docgraph/pkg/diagram"
)

// List styles
var (
	listNormalStyle = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// NodeListModel - Interactive graph node browser
// =============================================================================

// NodeListModel is the bubbletea model for browsing the nodes of a
// diagram graph. The upper pane is a scrollable node table; the lower
// pane shows the content of the node under the cursor.
type NodeListModel struct {
	Graph    *diagram.DiagramData
	Cursor   int
	Height   int
	Offset   int
	children map[string]int
}

// NewNodeListModel creates a node browser for the given graph.
func NewNodeListModel(g *diagram.DiagramData) NodeListModel {
	children := make(map[string]int, len(g.Nodes))
	for _, c := range g.Connectors {
		children[c.SourceID]++
	}
	return NodeListModel{
		Graph:    g,
		Cursor:   0,
		Height:   15,
		Offset:   0,
		children: children,
	}
}

func (m NodeListModel) Init() tea.Cmd {
	return nil
}

func (m NodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Graph.Nodes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "g":
			m.Cursor = 0
			m.Offset = 0
		case "G":
			m.Cursor = len(m.Graph.Nodes) - 1
			if m.Cursor >= m.Offset+m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 12
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m NodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Graph Nodes"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G top/bottom  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Graph.Nodes) {
		end = len(m.Graph.Nodes)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		n := m.Graph.Nodes[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		kind := "container"
		if n.IsLeaf {
			kind = "leaf"
		} else if n.IsSuperRoot() {
			kind = "root"
		}

		childStr := "—"
		if c := m.children[n.ID]; c > 0 {
			childStr = fmt.Sprintf("%d", c)
		}

		rows = append(rows, []string{cursor, nodeTitle(&n), kind, displayPath(&n), childStr})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "Kind", "Path", "Children").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Graph.Nodes) {
				return lipgloss.NewStyle()
			}
			n := m.Graph.Nodes[actualIdx]

			base := lipgloss.NewStyle()
			if col == 2 || col == 3 {
				base = base.Foreground(colorDim)
			}
			if actualIdx == m.Cursor {
				if col == 2 || col == 3 {
					return base.Foreground(colorGray).Bold(true)
				}
				return base.Foreground(colorCyan).Bold(true)
			}
			if n.IsLeaf {
				return base
			}
			return base.Foreground(colorGray)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(m.renderDetail())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Graph.Nodes))))

	return b.String()
}

// renderDetail shows the content of the node under the cursor.
func (m NodeListModel) renderDetail() string {
	if len(m.Graph.Nodes) == 0 {
		return ""
	}
	n := m.Graph.Nodes[m.Cursor]

	content := n.MergedContent
	if content == "" {
		content = n.Title
	}
	if content == "" {
		content = listDimStyle.Render("(no content)")
	}

	lines := strings.Split(content, "\n")
	if len(lines) > 6 {
		lines = append(lines[:6], listDimStyle.Render(fmt.Sprintf("… %d more", len(lines)-6)))
	}
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return listNormalStyle.Render(strings.Join(lines, "\n"))
}

// =============================================================================
// Helpers
// =============================================================================

// nodeTitle returns the best display name for a node.
func nodeTitle(n *diagram.Node) string {
	switch {
	case n.IsSuperRoot():
		return "(document)"
	case n.Title != "":
		return n.Title
	case n.MergedContent != "":
		if idx := strings.IndexByte(n.MergedContent, '\n'); idx > 0 {
			return n.MergedContent[:idx]
		}
		return n.MergedContent
	default:
		return n.ID
	}
}

// displayPath shortens long paths for the table view.
func displayPath(n *diagram.Node) string {
	if n.Path == "" {
		return "—"
	}
	if len(n.Path) > 40 {
		return "…" + n.Path[len(n.Path)-39:]
	}
	return n.Path
}
