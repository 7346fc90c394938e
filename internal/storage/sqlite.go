// Package storage provides SQLite-based persistence for Gift Runner.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// Two tables live in one database: kv holds small integer settings such as the
// high score, and scores is the leaderboard of finished runs.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/gift-runner/internal/core"
)

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry is a single leaderboard row.
type ScoreEntry struct {
	ID        int64
	RunID     string
	Player    string
	Score     int
	CreatedAt time.Time
}

// Stats contains aggregated leaderboard statistics.
type Stats struct {
	Runs       int
	Players    int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	path, err := ExpandHome(dbPath)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	// SSH sessions write concurrently; SQLite allows one writer at a time
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(score DESC);
		CREATE INDEX IF NOT EXISTS idx_scores_player ON scores(player);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetInt reads an integer value. A missing key reads as 0 with no error;
// a value that does not parse reads as 0 with an error.
func (s *Store) GetInt(key string) (int, error) {
	var raw string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read %q: %w", key, err)
	}

	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("storage: value of %q is not an integer: %w", key, err)
	}
	return v, nil
}

// SetMaxInt writes value only if it is greater than the stored one, so
// concurrent writers can never lower it. A stored value that is not an
// integer counts as 0.
func (s *Store) SetMaxInt(key string, value int) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value
		 WHERE CAST(kv.value AS INTEGER) < CAST(excluded.value AS INTEGER)`,
		key, strconv.Itoa(value),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write %q: %w", key, err)
	}
	return nil
}

// SaveScore records a finished run on the leaderboard.
// A run id that was already recorded is ignored, so retries are harmless.
// Returns the ID of the row, or 0 if the run was a duplicate.
func (s *Store) SaveScore(ctx context.Context, sub core.ScoreSubmission) (int64, error) {
	if sub.RunID == "" {
		sub.RunID = uuid.NewString()
	}
	finished := sub.FinishedAt
	if finished.IsZero() {
		finished = time.Now()
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO scores (run_id, player, score, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(run_id) DO NOTHING`,
		sub.RunID, sub.Player, sub.Score, finished.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read affected rows: %w", err)
	}
	if n == 0 {
		return 0, nil
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// SubmitScore implements game.ScoreSubmitter on top of SaveScore.
func (s *Store) SubmitScore(ctx context.Context, sub core.ScoreSubmission) error {
	_, err := s.SaveScore(ctx, sub)
	return err
}

// TopScores retrieves the top N runs ordered by score descending.
// Ties go to the earlier run.
func (s *Store) TopScores(limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryScores(
		`SELECT id, run_id, player, score, created_at
		 FROM scores
		 ORDER BY score DESC, created_at ASC, id ASC
		 LIMIT ?`,
		limit,
	)
}

// PlayerScores retrieves the top N runs of one player.
func (s *Store) PlayerScores(player string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryScores(
		`SELECT id, run_id, player, score, created_at
		 FROM scores
		 WHERE player = ?
		 ORDER BY score DESC, created_at ASC, id ASC
		 LIMIT ?`,
		player, limit,
	)
}

func (s *Store) queryScores(query string, args ...any) ([]ScoreEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.RunID, &e.Player, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearScores deletes every leaderboard entry. Stored high scores are kept.
func (s *Store) ClearScores() error {
	if _, err := s.db.Exec("DELETE FROM scores"); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// Stats retrieves aggregated leaderboard statistics.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT player), COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0), COALESCE(SUM(score), 0), MAX(created_at)
		 FROM scores`,
	).Scan(&stats.Runs, &stats.Players, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// parseTime handles the driver returning either time.Time or text for DATETIME columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	case []byte:
		if parsed, err := time.Parse(timeLayout, string(t)); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// HighScoreKV stores one high score under a fixed key.
// It satisfies game.HighScoreStore.
type HighScoreKV struct {
	store *Store
	key   string
}

// HighScores returns a high score store bound to key.
func (s *Store) HighScores(key string) *HighScoreKV {
	return &HighScoreKV{store: s, key: key}
}

// LoadHighScore reads the stored high score.
func (h *HighScoreKV) LoadHighScore() (int, error) {
	return h.store.GetInt(h.key)
}

// SaveHighScore raises the stored high score to score. Other processes or
// sessions may share the key, so a lower score never replaces a higher one.
func (h *HighScoreKV) SaveHighScore(score int) error {
	return h.store.SetMaxInt(h.key, score)
}
