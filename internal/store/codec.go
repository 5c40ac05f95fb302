package store

import (
	"encoding/json"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/mbermudez24/To-Do-List-App/internal/task"
)

// Entry is the persisted shape of a single task. Array order in the
// stored value is display order. There is no version field; any payload
// that does not match this shape is treated as absent.
type Entry struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

const tasksSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["text", "completed"],
    "properties": {
      "text": {"type": "string"},
      "completed": {"type": "boolean"}
    }
  }
}`

var compiledTasksSchema = jsonschema.MustCompileString("tasks.schema.json", tasksSchema)

// EncodeTasks serializes the sequence to the stored JSON array form.
// The encoding never depends on task IDs; they are session-local.
func EncodeTasks(tasks []task.Task) ([]byte, error) {
	entries := make([]Entry, len(tasks))
	for i, t := range tasks {
		entries[i] = Entry{Text: t.Text, Completed: t.Completed}
	}
	return json.Marshal(entries)
}

// DecodeTasks parses a stored value back into entries in array order.
// A payload that is not valid JSON or does not match the expected shape
// is reported with ok=false; callers treat that as an empty list.
func DecodeTasks(data []byte) ([]Entry, bool) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, false
	}
	if err := compiledTasksSchema.Validate(raw); err != nil {
		return nil, false
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, false
	}
	return entries, true
}
