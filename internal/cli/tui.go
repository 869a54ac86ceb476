package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// TreeViewModel - Scrollable dependency tree
// =============================================================================

// TreeViewModel is the bubbletea model behind --interactive. It shows a
// pre-rendered tree one screen at a time.
type TreeViewModel struct {
	Title  string
	Lines  []string
	Height int
	Offset int
}

// NewTreeViewModel creates a viewer for the given tree output.
func NewTreeViewModel(title, rendered string) TreeViewModel {
	return TreeViewModel{
		Title:  title,
		Lines:  strings.Split(strings.TrimRight(rendered, "\n"), "\n"),
		Height: 15,
	}
}

func (m TreeViewModel) Init() tea.Cmd {
	return nil
}

func (m TreeViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.scroll(-1)
		case "down", "j":
			m.scroll(1)
		case "pgup", "b":
			m.scroll(-m.Height)
		case "pgdown", "f", " ":
			m.scroll(m.Height)
		case "home", "g":
			m.Offset = 0
		case "end", "G":
			m.Offset = m.maxOffset()
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 5
		if m.Height < 5 {
			m.Height = 5
		}
		m.scroll(0)
	}
	return m, nil
}

func (m *TreeViewModel) scroll(delta int) {
	m.Offset = min(max(m.Offset+delta, 0), m.maxOffset())
}

func (m TreeViewModel) maxOffset() int {
	return max(len(m.Lines)-m.Height, 0)
}

func (m TreeViewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ scroll  pgup/pgdn page  g/G top/bottom  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Lines))
	for _, line := range m.Lines[m.Offset:end] {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d-%d/%d]", m.Offset+1, end, len(m.Lines))))
	return b.String()
}
