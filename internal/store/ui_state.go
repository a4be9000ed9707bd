package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"todo-cli/internal/model"
)

const uiStateFileName = "ui_state.json"

// UIState restores the last screen on relaunch: active sort mode and cursor
// row. It is intentionally best effort; callers tolerate missing or invalid
// data, and a failed save never blocks a task mutation.
type UIState struct {
	Version  int            `json:"version"`
	SortMode model.SortMode `json:"sortMode,omitempty"`
	Cursor   int            `json:"cursor,omitempty"`
}

func (s Store) uiStatePath() string {
	return filepath.Join(s.Dir(), uiStateFileName)
}

func (s Store) LoadUIState() *UIState {
	st := &UIState{Version: 1, SortMode: model.SortNone}
	b, err := os.ReadFile(s.uiStatePath())
	if err != nil {
		return st
	}
	var loaded UIState
	if err := json.Unmarshal(b, &loaded); err != nil {
		// Best effort; if corrupted, treat as missing.
		return st
	}
	if loaded.Version == 0 {
		loaded.Version = 1
	}
	if _, ok := model.ParseSortMode(string(loaded.SortMode)); !ok {
		loaded.SortMode = model.SortNone
	}
	if loaded.Cursor < 0 {
		loaded.Cursor = 0
	}
	return &loaded
}

func (s Store) SaveUIState(st *UIState) error {
	if st == nil {
		return nil
	}
	if err := os.MkdirAll(s.Dir(), 0o755); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	path := s.uiStatePath()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
