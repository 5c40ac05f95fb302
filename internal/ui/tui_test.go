package ui

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/mbermudez24/To-Do-List-App/internal/controller"
	"github.com/mbermudez24/To-Do-List-App/internal/store"
)

func newTestModel(t *testing.T, texts ...string) *model {
	t.Helper()
	ctrl := controller.New(store.NewMemStore(), log.New(io.Discard))
	for _, text := range texts {
		if _, ok := ctrl.AddTask(text); !ok {
			t.Fatalf("AddTask(%q) failed", text)
		}
	}
	return newModel(ctrl, log.New(io.Discard))
}

func listTexts(m *model) []string {
	tasks := m.ctrl.Tasks()
	out := make([]string, len(tasks))
	for i, tk := range tasks {
		out[i] = tk.Text
	}
	return out
}

func press(m *model, y int) {
	m.handleMouse(tea.MouseMsg{Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func release(m *model, y int) {
	m.handleMouse(tea.MouseMsg{Y: y, Action: tea.MouseActionRelease})
}

func TestRowGeometry(t *testing.T) {
	m := newTestModel(t, "A", "B", "C")

	tests := []struct {
		y    int
		want int
	}{
		{0, -1}, // title
		{listTop - 1, -1},
		{listTop, 0},
		{listTop + rowHeight - 1, 0},
		{listTop + rowHeight, 1},
		{listTop + 2*rowHeight, 2},
		{listTop + 3*rowHeight, -1}, // past the last row
	}
	for _, tt := range tests {
		if got := m.rowAt(tt.y); got != tt.want {
			t.Errorf("rowAt(%d) = %d, want %d", tt.y, got, tt.want)
		}
	}

	for i := 0; i < 3; i++ {
		if got := m.rowAt(m.rowTop(i)); got != i {
			t.Errorf("rowAt(rowTop(%d)) = %d", i, got)
		}
	}
}

func TestClickTogglesTask(t *testing.T) {
	m := newTestModel(t, "A", "B")

	y := m.rowTop(1)
	press(m, y)
	release(m, y)

	if !m.ctrl.At(1).Completed {
		t.Error("click should toggle the task under the pointer")
	}

	press(m, y)
	release(m, y)
	if m.ctrl.At(1).Completed {
		t.Error("second click should toggle back")
	}
}

func TestDragReorders(t *testing.T) {
	t.Run("drop below target midpoint lands after it", func(t *testing.T) {
		m := newTestModel(t, "A", "B", "C")

		press(m, m.rowTop(0))
		release(m, m.rowTop(2)+rowHeight-1)

		want := []string{"B", "C", "A"}
		if got := listTexts(m); !equalStrings(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("drop above target midpoint lands before it", func(t *testing.T) {
		m := newTestModel(t, "A", "B", "C")

		press(m, m.rowTop(2))
		release(m, m.rowTop(0))

		want := []string{"C", "A", "B"}
		if got := listTexts(m); !equalStrings(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("release outside the list cancels", func(t *testing.T) {
		m := newTestModel(t, "A", "B")

		press(m, m.rowTop(0))
		release(m, 0)

		want := []string{"A", "B"}
		if got := listTexts(m); !equalStrings(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
		if m.draggingID != "" {
			t.Error("drag state should be cleared")
		}
	})

	t.Run("release without press is ignored", func(t *testing.T) {
		m := newTestModel(t, "A", "B")
		release(m, m.rowTop(1))
		if got := listTexts(m); !equalStrings(got, []string{"A", "B"}) {
			t.Errorf("got %v", got)
		}
	})
}

func TestEnterAddsTaskAndClearsInput(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("  new task  ")

	m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	if got := listTexts(m); !equalStrings(got, []string{"new task"}) {
		t.Fatalf("got %v", got)
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}
}

func TestEnterWithBlankInputIsNoOp(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("   ")

	m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	if m.ctrl.Len() != 0 {
		t.Error("blank input should not add a task")
	}
	if m.input.Value() != "   " {
		t.Error("rejected input should stay in the field")
	}
}

func TestKeyboardMoveUsesMidpointPolicy(t *testing.T) {
	m := newTestModel(t, "A", "B", "C")
	m.focus = focusList
	m.cursor = 0

	m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("J")})
	if got := listTexts(m); !equalStrings(got, []string{"B", "A", "C"}) {
		t.Fatalf("after J: %v", got)
	}
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}

	m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("K")})
	if got := listTexts(m); !equalStrings(got, []string{"A", "B", "C"}) {
		t.Fatalf("after K: %v", got)
	}
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
}

func TestDeleteKeyRemovesSelection(t *testing.T) {
	m := newTestModel(t, "A", "B")
	m.focus = focusList
	m.cursor = 1

	m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})

	if got := listTexts(m); !equalStrings(got, []string{"A"}) {
		t.Fatalf("got %v", got)
	}
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
}

func equalStrings(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
