// Package task holds the in-memory task list model.
package task

import (
	"strings"

	"github.com/google/uuid"
)

// Task represents a single to-do entry.
//
// The ID is assigned at creation and identifies the task for the lifetime
// of the session. It is never persisted; the stored format carries only
// text and completion state. IDs exist so that two tasks with identical
// text stay distinguishable, e.g. as a drag payload.
type Task struct {
	ID        string
	Text      string
	Completed bool
}

// IsZero returns true if the task is empty (has no ID).
func (t *Task) IsZero() bool {
	return t.ID == ""
}

// List is an ordered sequence of tasks. Slice order is display order and
// is meaningful; reordering mutates it. The visible presentation is a
// projection of this list, never the other way around.
type List struct {
	tasks []Task
}

// NewList returns an empty list.
func NewList() *List {
	return &List{}
}

// Add appends a new incomplete task with the trimmed text and returns it.
// Whitespace-only input is ignored and reported with ok=false.
func (l *List) Add(raw string) (Task, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Task{}, false
	}
	t := Task{
		ID:   uuid.NewString(),
		Text: text,
	}
	l.tasks = append(l.tasks, t)
	return t, true
}

// Append restores a task with pre-existing text and completion state,
// assigning it a fresh ID. Used when rebuilding the list from storage.
func (l *List) Append(text string, completed bool) Task {
	t := Task{
		ID:        uuid.NewString(),
		Text:      text,
		Completed: completed,
	}
	l.tasks = append(l.tasks, t)
	return t
}

// Delete removes the task with the given ID. Unknown IDs are inert.
func (l *List) Delete(id string) bool {
	i := l.Index(id)
	if i < 0 {
		return false
	}
	l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
	return true
}

// Toggle flips the completion state of the task with the given ID.
func (l *List) Toggle(id string) bool {
	i := l.Index(id)
	if i < 0 {
		return false
	}
	l.tasks[i].Completed = !l.tasks[i].Completed
	return true
}

// MoveRelative removes the dragged task and reinserts it immediately
// before or after the target task. If either ID is unresolvable the list
// is left unchanged. Dropping a task onto itself degenerates to its
// current position.
func (l *List) MoveRelative(draggedID, targetID string, before bool) bool {
	from := l.Index(draggedID)
	if from < 0 || l.Index(targetID) < 0 {
		return false
	}

	dragged := l.tasks[from]
	l.tasks = append(l.tasks[:from], l.tasks[from+1:]...)

	// Re-resolve the target after removal; its index may have shifted.
	to := l.Index(targetID)
	if to < 0 {
		// Target was the dragged task itself; put it back where it was.
		to = from
	} else if !before {
		to++
	}

	l.tasks = append(l.tasks, Task{})
	copy(l.tasks[to+1:], l.tasks[to:])
	l.tasks[to] = dragged
	return true
}

// Index returns the position of the task with the given ID, or -1.
func (l *List) Index(id string) int {
	for i := range l.tasks {
		if l.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Get returns the task with the given ID, or nil if not found.
func (l *List) Get(id string) *Task {
	i := l.Index(id)
	if i < 0 {
		return nil
	}
	return &l.tasks[i]
}

// At returns the task at position i, or nil if out of range.
func (l *List) At(i int) *Task {
	if i < 0 || i >= len(l.tasks) {
		return nil
	}
	return &l.tasks[i]
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.tasks)
}

// Tasks returns a snapshot copy of the sequence in display order.
func (l *List) Tasks() []Task {
	out := make([]Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}
