package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/palaeoverse-community/rphylopic/pkg/phylopic"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// MatchListModel - Interactive taxon selection
// =============================================================================

// MatchListModel is the bubbletea model for interactive taxon selection.
// Matches without a silhouette image are shown dimmed and cannot be chosen.
type MatchListModel struct {
	Matches  []phylopic.NodeMatch
	Cursor   int
	Selected *phylopic.NodeMatch
	Height   int
	Offset   int
}

// NewMatchListModel creates a new taxon match list model.
func NewMatchListModel(matches []phylopic.NodeMatch) MatchListModel {
	return MatchListModel{
		Matches: matches,
		Cursor:  0,
		Height:  15,
		Offset:  0,
	}
}

func (m MatchListModel) Init() tea.Cmd {
	return nil
}

func (m MatchListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Matches)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			match := m.Matches[m.Cursor]
			if match.ImageUUID == "" {
				return m, nil
			}
			m.Selected = &match
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m MatchListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Taxon"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Matches) {
		end = len(m.Matches)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		match := m.Matches[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		image := "—"
		if match.ImageUUID != "" {
			image = match.ImageUUID
		}

		rows = append(rows, []string{cursor, match.Name, image})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Taxon", "Image").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Matches) {
				return lipgloss.NewStyle()
			}
			match := m.Matches[actualIdx]
			hasImage := match.ImageUUID != ""
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if col == 2 {
				base = base.Foreground(colorGray)
			}

			if isCurrent {
				if hasImage {
					if col != 2 {
						return base.Foreground(colorGreen).Bold(true)
					}
					return base.Bold(true)
				}
				return base.Foreground(colorDim).Bold(true)
			} else if hasImage {
				if col != 2 {
					return base.Foreground(colorWhite)
				}
				return base
			}
			return base.Foreground(colorDim)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Matches))))

	return b.String()
}

// =============================================================================
// RenditionListModel - Interactive rendition selection
// =============================================================================

// Rendition is one downloadable form of a silhouette image.
type Rendition struct {
	Label  string // e.g. "vector" or "512x341"
	Format string // "svg" or "png"
	Height int    // raster height in pixels, 0 for the vector
}

// RenditionListModel is the bubbletea model for choosing among an image's
// available renditions.
type RenditionListModel struct {
	Renditions []Rendition
	Cursor     int
	Selected   *Rendition
}

// NewRenditionListModel creates a new rendition list model.
func NewRenditionListModel(renditions []Rendition) RenditionListModel {
	return RenditionListModel{Renditions: renditions}
}

func (m RenditionListModel) Init() tea.Cmd {
	return nil
}

func (m RenditionListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Renditions)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = &m.Renditions[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m RenditionListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Rendition"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("arrows: navigate  enter: select  q: quit"))
	b.WriteString("\n\n")

	for i, r := range m.Renditions {
		cursor := "  "
		if i == m.Cursor {
			cursor = "> "
		}

		var marker string
		if r.Format == "svg" {
			marker = StyleSuccess.Render("*")
		} else {
			marker = " "
		}

		line := fmt.Sprintf("%s%s %-12s %s", cursor, marker, r.Label, listDimStyle.Render(strings.ToUpper(r.Format)))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(strings.Repeat("-", 40)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s scales without quality loss\n", StyleSuccess.Render("*")))

	return b.String()
}
