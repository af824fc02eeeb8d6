package cli

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	core "github.com/rohith0110/Wikipedia-Graph/pkg/core/graph"
	"github.com/rohith0110/Wikipedia-Graph/pkg/pipeline"
)

// memberPreview caps the member list shown for an expanded cluster.
const memberPreview = 20

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ClusterBrowserModel - Interactive cluster browser
// =============================================================================

// ClusterBrowserModel is the bubbletea model behind `clusters --interactive`.
// Enter expands the selected cluster into its largest members.
type ClusterBrowserModel struct {
	Clusters []pipeline.ClusterSummary
	Members  map[string][]string
	Cursor   int
	Offset   int
	Height   int
	Expanded bool
}

// NewClusterBrowserModel builds a browser over the clusters of g.
func NewClusterBrowserModel(g *core.Graph) ClusterBrowserModel {
	return ClusterBrowserModel{
		Clusters: pipeline.SummarizeClusters(g),
		Members:  membersBySize(g),
		Height:   15,
	}
}

func (m ClusterBrowserModel) Init() tea.Cmd {
	return nil
}

func (m ClusterBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.Expanded {
				m.Expanded = false
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Clusters)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Clusters) > 0 {
				m.Expanded = !m.Expanded
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m ClusterBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Clusters"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ members  q quit"))
	b.WriteString("\n\n")

	if len(m.Clusters) == 0 {
		b.WriteString(listDimStyle.Render("  no clusters"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Clusters))
	b.WriteString(clusterTable(m.Clusters[m.Offset:end], m.Cursor-m.Offset))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Clusters))))

	if m.Expanded {
		c := m.Clusters[m.Cursor]
		b.WriteString("\n\n")
		b.WriteString(listSelectedStyle.Render(fmt.Sprintf("%s (%d members)", c.ID, c.Members)))
		b.WriteString("\n")
		members := m.Members[c.ID]
		for _, label := range members[:min(len(members), memberPreview)] {
			b.WriteString("  " + listNormalStyle.Render(label) + "\n")
		}
		if len(members) > memberPreview {
			b.WriteString(listDimStyle.Render(fmt.Sprintf("  … %d more", len(members)-memberPreview)))
		}
	}

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// clusterTable renders summaries as a bordered table. The row at cursor is
// highlighted; pass -1 for none.
func clusterTable(summaries []pipeline.ClusterSummary, cursor int) string {
	rows := make([][]string, 0, len(summaries))
	for i, s := range summaries {
		marker := "  "
		if i == cursor {
			marker = "▸ "
		}
		rows = append(rows, []string{
			marker,
			s.ID,
			fmt.Sprint(s.Members),
			fmt.Sprint(s.Placed),
			fmt.Sprintf("(%.0f, %.0f)", s.Center.X, s.Center.Y),
			fmt.Sprintf("%.0f", s.Radius),
			s.Largest,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Cluster", "Members", "Placed", "Center", "Radius", "Largest").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == cursor:
				return listSelectedStyle
			case col == 2 || col == 3:
				return lipgloss.NewStyle().Foreground(colorCyan)
			case col == 4 || col == 5:
				return listDimStyle
			}
			return listNormalStyle
		}).
		Render()
}

// membersBySize lists member labels per cluster, largest first.
func membersBySize(g *core.Graph) map[string][]string {
	out := make(map[string][]string)
	for _, c := range g.Clusters() {
		nodes := slices.Clone(c.Members)
		slices.SortStableFunc(nodes, func(a, b *core.Node) int {
			return cmp.Compare(b.Size, a.Size)
		})
		labels := make([]string, len(nodes))
		for i, n := range nodes {
			labels[i] = cmp.Or(n.Label, n.ID)
		}
		out[c.ID] = labels
	}
	return out
}
