// Package store keeps the in-process journal of finished attempts in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/typemaster/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// MemoryPath opens a private in-memory database that disappears on Close.
const MemoryPath = ":memory:"

// Store wraps SQLite access for attempt data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies migrations.
func Open(path string) (*Store, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Every pooled connection to :memory: would get its own empty database.
	db.SetMaxOpenConns(1)
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS attempts (
			id INTEGER PRIMARY KEY,
			session_id TEXT NOT NULL UNIQUE,
			level INTEGER NOT NULL,
			level_name TEXT NOT NULL,
			wpm INTEGER NOT NULL,
			accuracy INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			typed_chars INTEGER NOT NULL,
			ended_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_level ON attempts(level);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertAttempt stores a finished attempt and returns its row id.
func (s *Store) InsertAttempt(ctx context.Context, a model.Attempt) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO attempts (session_id, level, level_name, wpm, accuracy, duration_ms, typed_chars, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.SessionID,
		a.Level,
		a.LevelName,
		a.WPM,
		a.Accuracy,
		a.Duration.Milliseconds(),
		a.TypedChars,
		a.EndedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListAttempts returns every attempt in insertion order.
func (s *Store) ListAttempts(ctx context.Context) ([]model.Attempt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, level, level_name, wpm, accuracy, duration_ms, typed_chars, ended_at
		 FROM attempts
		 ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var attempts []model.Attempt
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return attempts, nil
}

// BestByLevel returns the attempt with the most words on a level, breaking
// ties by accuracy and then by age. ok is false when the level has no attempts.
func (s *Store) BestByLevel(ctx context.Context, level int) (model.Attempt, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, session_id, level, level_name, wpm, accuracy, duration_ms, typed_chars, ended_at
		 FROM attempts
		 WHERE level = ?
		 ORDER BY wpm DESC, accuracy DESC, id ASC
		 LIMIT 1`, level)
	a, err := scanAttempt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Attempt{}, false, nil
	}
	if err != nil {
		return model.Attempt{}, false, err
	}
	return a, true, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAttempt(sc scanner) (model.Attempt, error) {
	var a model.Attempt
	var durationMs int64
	var endedAt string
	if err := sc.Scan(&a.ID, &a.SessionID, &a.Level, &a.LevelName, &a.WPM, &a.Accuracy, &durationMs, &a.TypedChars, &endedAt); err != nil {
		return model.Attempt{}, err
	}
	parsed, err := time.Parse(time.RFC3339Nano, endedAt)
	if err != nil {
		return model.Attempt{}, err
	}
	a.Duration = time.Duration(durationMs) * time.Millisecond
	a.EndedAt = parsed
	return a, nil
}
