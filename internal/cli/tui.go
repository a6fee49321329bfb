package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// VariantBrowserModel - Interactive variant browsing
// =============================================================================

// VariantBrowserModel is the bubbletea model for paging through a document's
// variants. The table view lists every variant; enter opens the listing of
// the variant under the cursor.
type VariantBrowserModel struct {
	Title    string
	Variants []variantSummary
	Cursor   int
	// Detail is true while a variant's listing is shown.
	Detail bool
	// Scroll is the first listing line shown in the detail view.
	Scroll int
	Height int
}

// NewVariantBrowserModel creates a browser over the given summaries.
func NewVariantBrowserModel(title string, variants []variantSummary) VariantBrowserModel {
	return VariantBrowserModel{Title: title, Variants: variants, Height: 20}
}

func (m VariantBrowserModel) Init() tea.Cmd {
	return nil
}

func (m VariantBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Detail {
			return m.updateDetail(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Variants)-1 {
				m.Cursor++
			}
		case "enter", "right", "l":
			if len(m.Variants) > 0 {
				m.Detail = true
				m.Scroll = 0
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m VariantBrowserModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "left", "h", "backspace":
		m.Detail = false
	case "up", "k":
		if m.Scroll > 0 {
			m.Scroll--
		}
	case "down", "j":
		if m.Scroll < len(m.detailLines())-1 {
			m.Scroll++
		}
	}
	return m, nil
}

func (m VariantBrowserModel) detailLines() []string {
	if len(m.Variants) == 0 {
		return nil
	}
	return strings.Split(m.Variants[m.Cursor].markdown(), "\n")
}

func (m VariantBrowserModel) View() string {
	var b strings.Builder

	title := "Variants"
	if m.Title != "" {
		title = m.Title
	}
	b.WriteString(styleTitle.Render(title))
	b.WriteString("\n")

	if m.Detail {
		b.WriteString(listDimStyle.Render("↑/↓ scroll  esc back  q quit"))
		b.WriteString("\n\n")
		lines := m.detailLines()
		end := min(m.Scroll+m.Height, len(lines))
		for _, line := range lines[m.Scroll:end] {
			b.WriteString(detailLine(line))
			b.WriteString("\n")
		}
		return b.String()
	}

	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ show logos  q quit"))
	b.WriteString("\n\n")
	if len(m.Variants) == 0 {
		b.WriteString(listDimStyle.Render("  no variants"))
		return b.String()
	}
	b.WriteString(variantTable(m.Variants, m.Cursor))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Variants))))
	return b.String()
}

// detailLine styles one Markdown listing line for the terminal.
func detailLine(line string) string {
	switch {
	case strings.HasPrefix(line, "### "):
		return styleTitle.Render(strings.TrimPrefix(line, "### "))
	case strings.HasPrefix(line, "## "):
		return styleTitle.Underline(true).Render(strings.TrimPrefix(line, "## "))
	case strings.HasPrefix(line, "* "):
		return "  " + listDimStyle.Render("•") + " " + styleValue.Render(strings.TrimPrefix(line, "* "))
	}
	return listDimStyle.Render(line)
}
