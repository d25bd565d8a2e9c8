package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(s string) tea.KeyMsg {
	if s == "ctrl+c" {
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPreviewModelQuitKeys(t *testing.T) {
	for _, key := range []string{"q", "ctrl+c"} {
		m := previewModel{columns: 80}
		_, cmd := m.Update(keyMsg(key))
		if cmd == nil {
			t.Errorf("key %q should produce a quit command", key)
			continue
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("key %q command = %T, want tea.QuitMsg", key, cmd())
		}
	}
}

func TestPreviewModelResize(t *testing.T) {
	m := previewModel{columns: 80}

	updated, _ := m.Update(keyMsg("+"))
	if got := updated.(previewModel).columns; got != 90 {
		t.Errorf("columns after '+' = %d, want 90", got)
	}

	updated, _ = m.Update(keyMsg("-"))
	if got := updated.(previewModel).columns; got != 70 {
		t.Errorf("columns after '-' = %d, want 70", got)
	}
}

func TestPreviewModelMinColumns(t *testing.T) {
	m := previewModel{columns: minPreviewColumns}

	updated, cmd := m.Update(keyMsg("-"))
	if got := updated.(previewModel).columns; got != minPreviewColumns {
		t.Errorf("columns shrank below minimum: %d", got)
	}
	if cmd != nil {
		t.Error("shrinking at the minimum should not trigger a re-render")
	}
}

func TestPreviewModelToggles(t *testing.T) {
	m := previewModel{columns: 80}

	updated, _ := m.Update(keyMsg("m"))
	if !updated.(previewModel).monochrome {
		t.Error("'m' should enable monochrome")
	}

	updated, _ = updated.Update(keyMsg("g"))
	if !updated.(previewModel).gridDump {
		t.Error("'g' should enable the grid dump")
	}
}

func TestPreviewModelWindowSize(t *testing.T) {
	m := previewModel{columns: 80}

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if got := updated.(previewModel).columns; got != 118 {
		t.Errorf("columns after resize = %d, want 118", got)
	}

	// Too narrow to fit the minimum, keep the current width.
	updated, _ = m.Update(tea.WindowSizeMsg{Width: 10, Height: 40})
	if got := updated.(previewModel).columns; got != 80 {
		t.Errorf("columns after tiny resize = %d, want 80", got)
	}
}

func TestPreviewModelRenderedMsg(t *testing.T) {
	m := previewModel{columns: 80, rendering: true}

	updated, _ := m.Update(renderedMsg{art: "###"})
	got := updated.(previewModel)
	if got.art != "###" {
		t.Errorf("art = %q, want %q", got.art, "###")
	}
	if got.rendering {
		t.Error("rendering flag should clear after a rendered message")
	}
}

func TestPreviewModelViewShowsError(t *testing.T) {
	m := previewModel{cfgPath: "x.toml", err: errTest}

	view := m.View()
	if !strings.Contains(view, "boom") {
		t.Errorf("View() = %q, should mention the render error", view)
	}
}

var errTest = &testError{}

type testError struct{}

func (*testError) Error() string { return "boom" }
