package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"todo-cli/internal/model"
)

const TasksFileName = "tasks.json"

// Store persists the task list as a single JSON array at Path.
type Store struct {
	Path string
}

// Load reads the task list from disk.
//
// A missing file is an empty list, not an error. A file that is not valid
// JSON, or whose top-level value is not an array of tasks, is treated as
// corrupt: the bytes are copied to a timestamped sibling backup (best effort)
// and an empty list is returned. Load never surfaces a parse error to the
// caller; the damaged bytes stay recoverable in the backup.
func (s Store) Load() []model.Task {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return []model.Task{}
	}
	var tasks []model.Task
	if err := json.Unmarshal(b, &tasks); err != nil {
		s.backupCorrupt(b)
		return []model.Task{}
	}
	if tasks == nil {
		// "null" parses as a nil slice but is not a list of tasks.
		s.backupCorrupt(b)
		return []model.Task{}
	}
	return tasks
}

// backupCorrupt preserves the unparseable bytes in a timestamped sibling file.
// The backup lands next to Path, so its directory already exists.
func (s Store) backupCorrupt(b []byte) {
	bak := fmt.Sprintf("%s.bak.%d", s.Path, time.Now().Unix())
	_ = os.WriteFile(bak, b, 0o644)
}

// Save serializes tasks with 2-space indentation (non-ASCII emitted literally)
// and replaces Path atomically: write a temp file in the same directory, then
// rename over the target. A crash mid-write leaves the previous file intact.
func (s Store) Save(tasks []model.Task) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tasks); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tasks-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.Path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

// NextID returns 1 for an empty list, else one more than the largest id in
// use. Ids are never recycled: deleting the max-id task and adding a new one
// reuses its id only if the max has genuinely dropped, which mirrors the
// on-disk contract (max+1, not a persisted counter).
func NextID(tasks []model.Task) int {
	max := 0
	for _, t := range tasks {
		if t.ID > max {
			max = t.ID
		}
	}
	return max + 1
}

// Dir returns the directory holding the tasks file. Sibling files (activity
// log, UI state) are colocated here.
func (s Store) Dir() string {
	return filepath.Dir(s.Path)
}

// DefaultPath resolves the tasks file location: $TODO_FILE if set, else
// ~/.todo/tasks.json.
func DefaultPath() (string, error) {
	if v := os.Getenv("TODO_FILE"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.New("cannot resolve home directory; set TODO_FILE or pass --file")
	}
	return filepath.Join(home, ".todo", TasksFileName), nil
}
