// Package sqlite provides the durable session store on SQLite. The
// revision column backs the optimistic-concurrency contract of
// store.Store, so concurrent appends against one channel survive
// process restarts and multiple instances sharing the database file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/makeajourney/asnisum/pkg/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	channel_id TEXT PRIMARY KEY,
	data       BLOB NOT NULL,
	revision   INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
`

// Store is a SQLite-backed store.Store.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the session database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating storage dir: %w", err)
	}

	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Get(ctx context.Context, channelID string) (store.Record, error) {
	rec := store.Record{ChannelID: channelID}
	err := s.db.QueryRowContext(ctx,
		`SELECT data, revision FROM sessions WHERE channel_id = ?`, channelID,
	).Scan(&rec.Data, &rec.Revision)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Record{}, store.ErrNotFound
	}
	if err != nil {
		return store.Record{}, fmt.Errorf("get session %s: %w", channelID, err)
	}
	return rec, nil
}

func (s *Store) Put(ctx context.Context, rec store.Record) error {
	now := time.Now().UTC().UnixMilli()

	var (
		res sql.Result
		err error
	)
	if rec.Revision == 0 {
		res, err = s.db.ExecContext(ctx,
			`INSERT INTO sessions (channel_id, data, revision, updated_at)
			 VALUES (?, ?, 1, ?)
			 ON CONFLICT (channel_id) DO NOTHING`,
			rec.ChannelID, rec.Data, now)
	} else {
		res, err = s.db.ExecContext(ctx,
			`UPDATE sessions
			 SET data = ?, revision = revision + 1, updated_at = ?
			 WHERE channel_id = ? AND revision = ?`,
			rec.Data, now, rec.ChannelID, rec.Revision)
	}
	if err != nil {
		return fmt.Errorf("put session %s: %w", rec.ChannelID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("put session %s: %w", rec.ChannelID, err)
	}
	if n == 0 {
		return store.ErrRevisionMismatch
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, channelID string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE channel_id = ?`, channelID); err != nil {
		return fmt.Errorf("delete session %s: %w", channelID, err)
	}
	return nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
