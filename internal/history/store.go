// Package history persists recently played stream URLs in SQLite.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver" // SQLite driver (pure Go)
	_ "github.com/ncruces/go-sqlite3/embed"  // Embed SQLite WASM binary

	"streamplay/internal/logging"
)

const schema = `
CREATE TABLE IF NOT EXISTS plays (
	url             TEXT PRIMARY KEY,
	play_count      INTEGER NOT NULL DEFAULT 1,
	first_played_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	last_played_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_plays_last_played ON plays(last_played_at DESC);
`

// Entry is one played URL with its visit statistics.
type Entry struct {
	URL          string
	PlayCount    int
	LastPlayedAt time.Time
}

// Store is a SQLite-backed play-history repository.
type Store struct {
	db *sql.DB
}

// Open creates the database directory and file if needed, applies the
// performance pragmas and ensures the schema exists.
func Open(ctx context.Context, path string) (*Store, error) {
	const dbDirPerm = 0o750
	log := logging.FromContext(ctx)

	if path == "" {
		return nil, fmt.Errorf("history database path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), dbDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// SQLite is single-writer; keep one connection alive for the whole
	// process lifetime.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}

	log.Debug().Str("path", path).Msg("history database ready")
	return &Store{db: db}, nil
}

// Record upserts a play of url, bumping its count and timestamp.
func (s *Store) Record(ctx context.Context, url string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO plays (url) VALUES (?)
		ON CONFLICT(url) DO UPDATE SET
			play_count = play_count + 1,
			last_played_at = CURRENT_TIMESTAMP`, url)
	if err != nil {
		return fmt.Errorf("failed to record play: %w", err)
	}
	return nil
}

// Recent returns the most recently played entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT url, play_count, last_played_at
		FROM plays
		ORDER BY last_played_at DESC, url
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.URL, &e.PlayCount, &e.LastPlayedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Prune deletes everything but the max most recently played entries.
func (s *Store) Prune(ctx context.Context, max int) error {
	if max <= 0 {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM plays WHERE url NOT IN (
			SELECT url FROM plays
			ORDER BY last_played_at DESC, url
			LIMIT ?)`, max)
	if err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}
	return nil
}

// Clear deletes all history entries.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM plays`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
