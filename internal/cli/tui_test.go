package cli

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func treeOf(n int) string {
	var b strings.Builder
	for i := range n {
		fmt.Fprintf(&b, " ├── pkg%d - ()\n", i)
	}
	return b.String()
}

func press(m TreeViewModel, key string) TreeViewModel {
	var msg tea.KeyMsg
	switch key {
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(TreeViewModel)
}

func TestTreeViewScroll(t *testing.T) {
	m := NewTreeViewModel("demo", treeOf(20))
	m.Height = 5

	if len(m.Lines) != 20 {
		t.Fatalf("Lines = %d, want 20", len(m.Lines))
	}

	m = press(m, "up")
	if m.Offset != 0 {
		t.Errorf("scrolling above the top: Offset = %d", m.Offset)
	}
	m = press(m, "down")
	m = press(m, "j")
	if m.Offset != 2 {
		t.Errorf("Offset = %d, want 2", m.Offset)
	}
	m = press(m, "G")
	if m.Offset != 15 {
		t.Errorf("end: Offset = %d, want 15", m.Offset)
	}
	m = press(m, "down")
	if m.Offset != 15 {
		t.Errorf("scrolling past the end: Offset = %d", m.Offset)
	}
	m = press(m, "g")
	if m.Offset != 0 {
		t.Errorf("home: Offset = %d", m.Offset)
	}
}

func TestTreeViewShortTree(t *testing.T) {
	m := NewTreeViewModel("solo", treeOf(2))
	m = press(m, "G")
	if m.Offset != 0 {
		t.Errorf("tree shorter than the screen should not scroll, Offset = %d", m.Offset)
	}
	view := m.View()
	if !strings.Contains(view, "pkg1") || !strings.Contains(view, "[1-2/2]") {
		t.Errorf("View() =\n%s", view)
	}
}

func TestTreeViewWindowSize(t *testing.T) {
	m := NewTreeViewModel("demo", treeOf(50))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 3})
	if got := next.(TreeViewModel).Height; got != 5 {
		t.Errorf("Height = %d, want minimum 5", got)
	}
}

func TestTreeViewQuit(t *testing.T) {
	m := NewTreeViewModel("demo", treeOf(1))
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd == nil {
		t.Error("q should return a quit command")
	}
}
