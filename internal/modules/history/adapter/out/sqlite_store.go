package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"kex/internal/modules/history/domain"
	historyout "kex/internal/modules/history/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

var _ historyout.Store = (*SQLiteStore)(nil)

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS search_history (
  topic TEXT PRIMARY KEY COLLATE NOCASE,
  count INTEGER NOT NULL DEFAULT 1,
  last_used INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_search_history_last_used ON search_history(last_used);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create search_history table: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Record(ctx context.Context, topic string, at time.Time) error {
	const stmt = `
INSERT INTO search_history (topic, count, last_used)
VALUES (?, 1, ?)
ON CONFLICT(topic) DO UPDATE SET
  topic = excluded.topic,
  count = search_history.count + 1,
  last_used = excluded.last_used;
`
	if _, err := s.db.ExecContext(ctx, stmt, topic, at.UnixNano()); err != nil {
		return fmt.Errorf("record search: %w", err)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context, limit int) ([]domain.Entry, error) {
	query := `SELECT topic, count, last_used FROM search_history ORDER BY last_used DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query search history: %w", err)
	}
	defer rows.Close()

	var out []domain.Entry
	for rows.Next() {
		var e domain.Entry
		var lastUsed int64
		if err := rows.Scan(&e.Topic, &e.Count, &lastUsed); err != nil {
			return nil, fmt.Errorf("scan search history: %w", err)
		}
		e.LastUsed = time.Unix(0, lastUsed).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM search_history;`); err != nil {
		return fmt.Errorf("clear search history: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
