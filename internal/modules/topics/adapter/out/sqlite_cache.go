package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"kex/internal/modules/topics/domain"
	topicsout "kex/internal/modules/topics/port/out"
	"kex/internal/platform/clock"

	_ "modernc.org/sqlite"
)

// SQLiteCache stores backend payloads with a freshness window.
type SQLiteCache struct {
	db    *sql.DB
	ttl   time.Duration
	clock clock.Clock
}

var _ topicsout.ResponseCache = (*SQLiteCache)(nil)

func NewSQLiteCache(dbPath string, ttl time.Duration, clk clock.Clock) (*SQLiteCache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if clk == nil {
		clk = clock.SystemClock{}
	}
	c := &SQLiteCache{db: db, ttl: ttl, clock: clk}
	if err := c.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return c, nil
}

func (c *SQLiteCache) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS response_cache (
  kind TEXT NOT NULL,
  topic TEXT NOT NULL,
  level TEXT NOT NULL,
  payload BLOB NOT NULL,
  stored_at INTEGER NOT NULL,
  PRIMARY KEY (kind, topic, level)
);
`
	if _, err := c.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create response_cache table: %w", err)
	}
	return nil
}

func (c *SQLiteCache) Get(ctx context.Context, key domain.CacheKey) ([]byte, bool, error) {
	var payload []byte
	var storedAt int64
	err := c.db.QueryRowContext(ctx, `
SELECT payload, stored_at FROM response_cache
WHERE kind = ? AND topic = ? AND level = ?;
`, string(key.Kind), key.Topic, string(key.Level)).Scan(&payload, &storedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cache entry: %w", err)
	}
	if c.ttl > 0 && c.clock.Now().Sub(time.Unix(0, storedAt)) > c.ttl {
		return nil, false, nil
	}
	return payload, true, nil
}

func (c *SQLiteCache) Put(ctx context.Context, key domain.CacheKey, payload []byte) error {
	const stmt = `
INSERT INTO response_cache (kind, topic, level, payload, stored_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(kind, topic, level) DO UPDATE SET payload = excluded.payload, stored_at = excluded.stored_at;
`
	if _, err := c.db.ExecContext(ctx, stmt, string(key.Kind), key.Topic, string(key.Level), payload, c.clock.Now().UnixNano()); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

func (c *SQLiteCache) Clear(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM response_cache;`); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}

func (c *SQLiteCache) Close() error {
	return c.db.Close()
}
