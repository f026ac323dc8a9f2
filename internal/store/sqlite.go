package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteFollows persists the followed-destination set in a SQLite file.
type SQLiteFollows struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLite opens (or creates) the follows database at path.
func NewSQLite(path string, logger *slog.Logger) (*SQLiteFollows, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening follows db: %w", err)
	}
	// One writer at a time; Toggle relies on it.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		logger.Warn("could not set WAL mode", "path", path, "error", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS follows (
        id TEXT PRIMARY KEY,
        followed_at TEXT NOT NULL
    );`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating follows table: %w", err)
	}

	return &SQLiteFollows{db: db, now: time.Now}, nil
}

func (s *SQLiteFollows) Close() error {
	return s.db.Close()
}

func (s *SQLiteFollows) Follow(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO follows(id, followed_at) VALUES(?, ?)`,
		id, s.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("follow %s: %w", id, err)
	}
	return nil
}

func (s *SQLiteFollows) Unfollow(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM follows WHERE id = ?`, id); err != nil {
		return fmt.Errorf("unfollow %s: %w", id, err)
	}
	return nil
}

// Toggle flips id and reports whether it is followed afterwards.
func (s *SQLiteFollows) Toggle(ctx context.Context, id string) (followed bool, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `DELETE FROM follows WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("toggle %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		_, err = tx.ExecContext(ctx, `INSERT INTO follows(id, followed_at) VALUES(?, ?)`,
			id, s.now().UTC().Format(time.RFC3339Nano))
		if err != nil {
			return false, fmt.Errorf("toggle %s: %w", id, err)
		}
		followed = true
	}
	if err = tx.Commit(); err != nil {
		return false, err
	}
	return followed, nil
}

func (s *SQLiteFollows) IsFollowed(ctx context.Context, id string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM follows WHERE id = ?`, id).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// List returns followed ids in the order they were followed.
func (s *SQLiteFollows) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM follows ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
