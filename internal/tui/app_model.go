package tui

import (
	"context"

	"todo-cli/internal/model"
	"todo-cli/internal/mutate"
	"todo-cli/internal/projection"
	"todo-cli/internal/store"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

type overlay int

const (
	overlayNone overlay = iota
	overlayEdit
	overlayConfirmDelete
	overlayConfirmClear
	overlayNotice
	overlayHelp
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Add    key.Binding
	AddSub key.Binding
	Edit   key.Binding
	Delete key.Binding
	Clear  key.Binding
	Sort   key.Binding
	Move   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle")),
		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		AddSub: key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "subtask")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Clear:  key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear all")),
		Sort:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Move:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Add, k.Edit, k.Delete, k.Sort, k.Move, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.Add, k.AddSub, k.Edit, k.Delete},
		{k.Clear, k.Sort, k.Move},
		{k.Help, k.Quit},
	}
}

type appModel struct {
	store store.Store

	tasks    []model.Task
	refs     []model.RowRef
	sortMode model.SortMode
	cursor   int

	width  int
	height int

	overlay       overlay
	edit          editModel
	confirmFocus  confirmModalFocus
	confirmTarget model.RowRef
	noticeTitle   string
	noticeBody    string

	// moving marks "move mode": j/k shift the selected task through the
	// list one position at a time, saving after each step.
	moving bool

	keys keyMap
	help help.Model
}

func newAppModel(st store.Store) appModel {
	m := appModel{
		store:    st,
		tasks:    st.Load(),
		sortMode: model.SortNone,
		keys:     defaultKeyMap(),
		help:     help.New(),
	}

	ui := st.LoadUIState()
	if _, ok := model.ParseSortMode(string(ui.SortMode)); ok {
		m.sortMode = ui.SortMode
	}
	m.cursor = ui.Cursor
	m.rebuildRows()
	return m
}

// rebuildRows recomputes the projection and clamps the cursor. It runs after
// every mutation and sort-mode change; the row map is pure output, never
// patched incrementally.
func (m *appModel) rebuildRows() {
	m.refs = projection.Project(m.tasks, m.sortMode)
	if m.cursor >= len(m.refs) {
		m.cursor = len(m.refs) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m appModel) selectedRef() (model.RowRef, bool) {
	if m.cursor < 0 || m.cursor >= len(m.refs) {
		return model.RowRef{}, false
	}
	return m.refs[m.cursor], true
}

// persist flushes the mutated list and logs the activity event. A failed save
// leaves the in-memory state ahead of disk and surfaces a notice; it is not
// rolled back.
func (m *appModel) persist(typ string, res mutate.Result) {
	if !res.Changed {
		return
	}
	if err := m.store.Save(m.tasks); err != nil {
		m.showNotice("Save Failed", "Could not write tasks file: "+err.Error())
		return
	}
	_ = m.store.AppendActivity(context.Background(), typ, res.TaskID, res.Title)
}

func (m *appModel) showNotice(title, body string) {
	m.overlay = overlayNotice
	m.noticeTitle = title
	m.noticeBody = body
}

func (m *appModel) saveUIState() {
	_ = m.store.SaveUIState(&store.UIState{
		Version:  1,
		SortMode: m.sortMode,
		Cursor:   m.cursor,
	})
}
