// Package controller owns the task list and mirrors every mutation to
// the store.
package controller

import (
	"github.com/charmbracelet/log"

	"github.com/mbermudez24/To-Do-List-App/internal/store"
	"github.com/mbermudez24/To-Do-List-App/internal/task"
)

// Controller exposes the task list operations. It is constructed with an
// injected store; there is no ambient singleton. Every mutation persists
// the full sequence before returning, so the in-memory and stored views
// never diverge between operations.
//
// The controller is not safe for concurrent use. All operations are
// expected to run on a single event loop.
type Controller struct {
	list   *task.List
	store  store.Store
	logger *log.Logger
}

// New creates a controller and restores the persisted sequence. A missing
// key, unreadable store, or payload of the wrong shape yields an empty
// list rather than an error.
func New(st store.Store, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	c := &Controller{
		list:   task.NewList(),
		store:  st,
		logger: logger,
	}
	c.restore()
	return c
}

// AddTask trims the input and appends a new incomplete task. Whitespace
// only input is a no-op: no mutation, no write.
func (c *Controller) AddTask(raw string) (task.Task, bool) {
	t, ok := c.list.Add(raw)
	if !ok {
		return task.Task{}, false
	}
	c.persist()
	return t, true
}

// DeleteTask removes the task with the given ID. Unknown IDs are inert.
func (c *Controller) DeleteTask(id string) bool {
	if !c.list.Delete(id) {
		return false
	}
	c.persist()
	return true
}

// ToggleComplete flips the completion state of the task with the given
// ID. Each successful invocation writes, even though two toggles restore
// the original state.
func (c *Controller) ToggleComplete(id string) bool {
	if !c.list.Toggle(id) {
		return false
	}
	c.persist()
	return true
}

// Reorder moves the dragged task relative to the target task. pointerY is
// the drop position; targetTop and targetHeight describe the target row's
// bounding box in the same coordinate space. A pointer above the vertical
// midpoint places the dragged task immediately before the target,
// otherwise immediately after. Unresolvable IDs make it a no-op.
func (c *Controller) Reorder(draggedID, targetID string, pointerY, targetTop, targetHeight int) bool {
	before := Before(pointerY, targetTop, targetHeight)
	if !c.list.MoveRelative(draggedID, targetID, before) {
		return false
	}
	c.persist()
	return true
}

// Before reports whether a pointer at y lands above the vertical midpoint
// of a box starting at top with the given height. This is the entire
// ordering policy; there is no other tie-break.
func Before(y, top, height int) bool {
	return float64(y-top) < float64(height)/2
}

// Tasks returns a snapshot of the sequence in display order.
func (c *Controller) Tasks() []task.Task {
	return c.list.Tasks()
}

// Len returns the number of tasks.
func (c *Controller) Len() int {
	return c.list.Len()
}

// Get returns the task with the given ID, or nil.
func (c *Controller) Get(id string) *task.Task {
	return c.list.Get(id)
}

// At returns the task at display position i, or nil.
func (c *Controller) At(i int) *task.Task {
	return c.list.At(i)
}

// Index returns the display position of the task with the given ID, or -1.
func (c *Controller) Index(id string) int {
	return c.list.Index(id)
}

// persist writes the full sequence under the fixed key. A write failure
// is a recoverable warning: the in-memory state is kept and the operation
// that triggered the write still counts as applied.
func (c *Controller) persist() {
	data, err := store.EncodeTasks(c.list.Tasks())
	if err != nil {
		c.logger.Warn("encode tasks", "err", err)
		return
	}
	if err := c.store.Set(store.TasksKey, data); err != nil {
		c.logger.Warn("persist tasks, keeping in-memory state", "err", err)
	}
}

// restore rebuilds the list from the stored value. Runs once, at
// construction. Fails open: anything unreadable means an empty list.
func (c *Controller) restore() {
	data, ok, err := c.store.Get(store.TasksKey)
	if err != nil {
		c.logger.Warn("read stored tasks, starting empty", "err", err)
		return
	}
	if !ok {
		return
	}
	entries, ok := store.DecodeTasks(data)
	if !ok {
		c.logger.Debug("stored tasks have unexpected shape, starting empty")
		return
	}
	for _, e := range entries {
		c.list.Append(e.Text, e.Completed)
	}
}
