package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pvieira/arxdigest/internal/session"
)

// The four independent persisted slices. Each is owned by exactly one
// controller and loaded/saved as a whole.
const (
	keySelectedSource = "selected_source"
	keyPreferences    = "preferences"
	keyReadingList    = "reading_list"
	keyDisplayMode    = "display_mode"
)

// Repository persists user state in a single SQLite key-value table.
// Persistence is a convenience, not a correctness requirement: loads
// collapse every failure to a defined default and saves are best-effort.
type Repository struct {
	db *sql.DB
}

func NewRepository(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Repository) Init(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS app_state (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`
	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// CheckWritable verifies the database accepts writes before the UI starts.
func (r *Repository) CheckWritable(ctx context.Context) error {
	if err := r.set(ctx, "write_check", time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("write check: %w", err)
	}
	return nil
}

func (r *Repository) set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO app_state (key, value, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
  value=excluded.value,
  updated_at=excluded.updated_at
`, key, value, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// get returns the stored value and whether it was present. Storage errors
// count as absent.
func (r *Repository) get(ctx context.Context, key string) (string, bool) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM app_state WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", false
	}
	return value, true
}

func (r *Repository) SaveSelectedSource(ctx context.Context, key string) error {
	return r.set(ctx, keySelectedSource, key)
}

// LoadSelectedSource returns the stored source key, or "" when absent. The
// caller resolves "" against the payload default.
func (r *Repository) LoadSelectedSource(ctx context.Context) string {
	value, _ := r.get(ctx, keySelectedSource)
	return value
}

func (r *Repository) SavePreferences(ctx context.Context, prefs session.Preferences) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	return r.set(ctx, keyPreferences, string(raw))
}

// LoadPreferences returns the stored preferences normalized, and whether a
// stored value was usable. Corruption counts as absent.
func (r *Repository) LoadPreferences(ctx context.Context) (session.Preferences, bool) {
	value, ok := r.get(ctx, keyPreferences)
	if !ok {
		return session.Preferences{}, false
	}
	var stored session.Preferences
	if err := json.Unmarshal([]byte(value), &stored); err != nil {
		return session.Preferences{}, false
	}
	return session.NormalizePreferences(stored.FavoriteAuthors, stored.Keywords), true
}

func (r *Repository) SaveReadingList(ctx context.Context, list []session.ReadingEntry) error {
	if list == nil {
		list = []session.ReadingEntry{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode reading list: %w", err)
	}
	return r.set(ctx, keyReadingList, string(raw))
}

// LoadReadingList returns the stored list normalized, empty on absence or
// corruption.
func (r *Repository) LoadReadingList(ctx context.Context, now time.Time) []session.ReadingEntry {
	value, ok := r.get(ctx, keyReadingList)
	if !ok {
		return nil
	}
	var stored []session.ReadingEntry
	if err := json.Unmarshal([]byte(value), &stored); err != nil {
		return nil
	}
	return session.NormalizeReadingList(stored, now)
}

func (r *Repository) SaveDisplayMode(ctx context.Context, mode session.DisplayMode) error {
	return r.set(ctx, keyDisplayMode, string(mode))
}

// LoadDisplayMode returns the stored mode. An absent or unreadable slice
// defaults to authors; a present but unrecognized value normalizes to full.
func (r *Repository) LoadDisplayMode(ctx context.Context) session.DisplayMode {
	value, ok := r.get(ctx, keyDisplayMode)
	if !ok {
		return session.ModeAuthors
	}
	return session.NormalizeDisplayMode(value)
}
