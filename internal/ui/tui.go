// Package ui provides the terminal interface for the task list.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/mbermudez24/To-Do-List-App/internal/controller"
)

// Row geometry. The list starts below the title and input; every task
// occupies rowHeight terminal lines (text plus spacing). Mouse handling
// maps terminal cells back to tasks through these constants, and the
// drop position within a row decides before/after via the midpoint rule.
const (
	listTop   = 4
	rowHeight = 2
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	cursorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	completedStyle = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	draggingStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("177"))
	helpStyle      = lipgloss.NewStyle().Faint(true)
	statusStyle    = lipgloss.NewStyle().Faint(true).Italic(true)
)

// focus identifies which collaborator receives key input.
type focus int

const (
	focusInput focus = iota
	focusList
)

// RunTUI starts the interactive task list.
func RunTUI(ctx context.Context, ctrl *controller.Controller, logger *log.Logger) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newModel(ctrl, logger)
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithMouseCellMotion(),
	)
	_, err := program.Run()
	return err
}

type model struct {
	ctrl   *controller.Controller
	logger *log.Logger

	input  textinput.Model
	focus  focus
	cursor int

	// Drag state: draggingID is the picked-up task, pressY the cell the
	// press landed on. The ID, not the text, travels with the drag, so
	// duplicate task text never confuses the drop.
	draggingID string
	pressY     int

	width    int
	height   int
	status   string
	showHelp bool
}

func newModel(ctrl *controller.Controller, logger *log.Logger) *model {
	input := textinput.New()
	input.Placeholder = "Add a task..."
	input.Prompt = "> "
	input.Focus()

	return &model{
		ctrl:   ctrl,
		logger: logger,
		input:  input,
		focus:  focusInput,
	}
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Bindings that apply regardless of focus.
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.toggleFocus()
		return m, nil
	}

	if m.focus == focusInput {
		switch msg.String() {
		case "enter":
			if _, ok := m.ctrl.AddTask(m.input.Value()); ok {
				m.input.Reset()
				m.cursor = m.ctrl.Len() - 1
				m.status = ""
			}
			return m, nil
		case "esc":
			m.toggleFocus()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "a", "i":
		m.toggleFocus()
		return m, nil
	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	case "j", "down":
		if m.cursor < m.ctrl.Len()-1 {
			m.cursor++
		}
		return m, nil
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case " ", "x":
		if t := m.ctrl.At(m.cursor); t != nil {
			m.ctrl.ToggleComplete(t.ID)
		}
		return m, nil
	case "d", "delete", "backspace":
		if t := m.ctrl.At(m.cursor); t != nil {
			m.ctrl.DeleteTask(t.ID)
			if m.cursor >= m.ctrl.Len() && m.cursor > 0 {
				m.cursor--
			}
		}
		return m, nil
	case "J", "shift+down":
		m.moveCursorTask(+1)
		return m, nil
	case "K", "shift+up":
		m.moveCursorTask(-1)
		return m, nil
	case "y":
		if t := m.ctrl.At(m.cursor); t != nil {
			if err := clipboard.WriteAll(t.Text); err != nil {
				m.logger.Debug("copy to clipboard", "err", err)
				m.status = "clipboard unavailable"
			} else {
				m.status = "copied"
			}
		}
		return m, nil
	}
	return m, nil
}

// moveCursorTask moves the selected task one position up or down. The
// move is expressed as a drop on the neighbouring row so that keyboard
// reordering and drag-and-drop share the same midpoint policy: moving
// down drops below the neighbour's midpoint, moving up above it.
func (m *model) moveCursorTask(delta int) {
	dragged := m.ctrl.At(m.cursor)
	target := m.ctrl.At(m.cursor + delta)
	if dragged == nil || target == nil {
		return
	}
	top := m.rowTop(m.cursor + delta)
	pointerY := top
	if delta > 0 {
		pointerY = top + rowHeight - 1
	}
	if m.ctrl.Reorder(dragged.ID, target.ID, pointerY, top, rowHeight) {
		m.cursor += delta
	}
}

func (m *model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if i := m.rowAt(msg.Y); i >= 0 {
			if t := m.ctrl.At(i); t != nil {
				m.draggingID = t.ID
				m.pressY = msg.Y
				m.cursor = i
				m.focus = focusList
				m.input.Blur()
			}
		}
		return m, nil
	case tea.MouseActionRelease:
		if m.draggingID == "" {
			return m, nil
		}
		m.drop(msg.Y)
		return m, nil
	}
	return m, nil
}

// drop finishes a drag at terminal row y. A release on the press cell is
// a click and toggles the task. A release on another task's row reorders
// relative to that row's midpoint. Anywhere else cancels the drag.
func (m *model) drop(y int) {
	draggedID := m.draggingID
	m.draggingID = ""

	if y == m.pressY {
		m.ctrl.ToggleComplete(draggedID)
		return
	}

	i := m.rowAt(y)
	if i < 0 {
		return
	}
	target := m.ctrl.At(i)
	if target == nil {
		return
	}
	if m.ctrl.Reorder(draggedID, target.ID, y, m.rowTop(i), rowHeight) {
		if idx := m.ctrl.Index(draggedID); idx >= 0 {
			m.cursor = idx
		}
	}
}

// rowAt maps a terminal line to a task index, or -1 when the line is
// outside the list.
func (m *model) rowAt(y int) int {
	if y < listTop {
		return -1
	}
	i := (y - listTop) / rowHeight
	if i >= m.ctrl.Len() {
		return -1
	}
	return i
}

// rowTop returns the first terminal line of the row at index i.
func (m *model) rowTop(i int) int {
	return listTop + i*rowHeight
}

func (m *model) toggleFocus() {
	if m.focus == focusInput {
		m.focus = focusList
		m.input.Blur()
	} else {
		m.focus = focusInput
		m.input.Focus()
	}
}

func (m *model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("To-Do List") + "\n")
	b.WriteString("\n")
	b.WriteString(m.input.View() + "\n")
	b.WriteString("\n")

	tasks := m.ctrl.Tasks()
	for i, t := range tasks {
		check := "[ ]"
		if t.Completed {
			check = "[x]"
		}
		line := fmt.Sprintf("%s %s", check, t.Text)

		switch {
		case t.ID == m.draggingID:
			line = draggingStyle.Render(line)
		case t.Completed:
			line = completedStyle.Render(line)
		}
		if i == m.cursor && m.focus == focusList {
			line = cursorStyle.Render("* ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
		b.WriteString("\n")
	}

	if len(tasks) == 0 {
		b.WriteString(helpStyle.Render("  No tasks yet. Type one above and press enter.") + "\n\n")
	}

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status) + "\n")
	}
	if m.showHelp {
		writeHelp(&b)
	} else {
		b.WriteString(helpStyle.Render("tab focus | space toggle | d delete | drag or J/K to reorder | ? help | q quit"))
	}
	return b.String()
}

func writeHelp(b *strings.Builder) {
	b.WriteString(helpStyle.Render("Keyboard Shortcuts") + "\n")
	b.WriteString(helpStyle.Render("  enter        Add the typed task") + "\n")
	b.WriteString(helpStyle.Render("  tab, a, i    Switch focus between input and list") + "\n")
	b.WriteString(helpStyle.Render("  j/k, arrows  Move selection") + "\n")
	b.WriteString(helpStyle.Render("  space, x     Toggle completion") + "\n")
	b.WriteString(helpStyle.Render("  d, backspace Delete task") + "\n")
	b.WriteString(helpStyle.Render("  J/K          Move task down/up") + "\n")
	b.WriteString(helpStyle.Render("  y            Copy task text") + "\n")
	b.WriteString(helpStyle.Render("  mouse        Click toggles, drag reorders") + "\n")
	b.WriteString(helpStyle.Render("  q, ctrl+c    Quit") + "\n")
}

// IsTTY returns true if the writer is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, _ := f.Stat()
	return (info.Mode() & os.ModeCharDevice) != 0
}
