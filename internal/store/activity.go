package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const activityFileName = "activity.db"

// ActivityEvent is one append-only record of a task mutation. The activity
// log is an audit trail next to tasks.json; it is never read back into the
// task model and failing to write it never blocks a mutation.
type ActivityEvent struct {
	ID     int64     `json:"id"`
	TS     time.Time `json:"ts"`
	Type   string    `json:"type"`
	TaskID int       `json:"taskId,omitempty"`
	Title  string    `json:"title,omitempty"`
}

func (s Store) activityPath() string {
	return filepath.Join(s.Dir(), activityFileName)
}

func (s Store) openActivity(ctx context.Context) (*sql.DB, error) {
	if err := os.MkdirAll(s.Dir(), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.activityPath())
	if err != nil {
		return nil, err
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateActivity(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateActivity(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS activity (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ts_unixms INTEGER NOT NULL,
			type TEXT NOT NULL,
			task_id INTEGER NOT NULL,
			title TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_activity_ts ON activity(ts_unixms);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

// AppendActivity records a mutation. taskID may be 0 for list-wide operations
// (clear_all) and for subtask events that have no id of their own.
func (s Store) AppendActivity(ctx context.Context, typ string, taskID int, title string) error {
	db, err := s.openActivity(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx,
		`INSERT INTO activity(ts_unixms, type, task_id, title) VALUES(?, ?, ?, ?)`,
		time.Now().UTC().UnixMilli(), typ, taskID, title,
	)
	return err
}

// ReadActivity returns events oldest-first. limit <= 0 means "all"; otherwise
// the newest limit events are returned (still oldest-first within the window).
func (s Store) ReadActivity(ctx context.Context, limit int) ([]ActivityEvent, error) {
	if _, err := os.Stat(s.activityPath()); err != nil {
		if os.IsNotExist(err) {
			return []ActivityEvent{}, nil
		}
		return nil, err
	}
	db, err := s.openActivity(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT id, ts_unixms, type, task_id, title FROM activity ORDER BY id ASC`
	var rows *sql.Rows
	if limit > 0 {
		rows, err = db.QueryContext(ctx,
			`SELECT id, ts_unixms, type, task_id, title FROM (
				SELECT id, ts_unixms, type, task_id, title FROM activity ORDER BY id DESC LIMIT ?
			) ORDER BY id ASC`, limit)
	} else {
		rows, err = db.QueryContext(ctx, q)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ActivityEvent
	for rows.Next() {
		var ev ActivityEvent
		var tsMs int64
		if err := rows.Scan(&ev.ID, &tsMs, &ev.Type, &ev.TaskID, &ev.Title); err != nil {
			return nil, fmt.Errorf("scan activity row: %w", err)
		}
		ev.TS = time.UnixMilli(tsMs).UTC()
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if out == nil {
		out = []ActivityEvent{}
	}
	return out, nil
}
