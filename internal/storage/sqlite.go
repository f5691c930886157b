// Package storage provides SQLite-based persistence for completed runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// AnonymousName is recorded when a player leaves the name empty.
const AnonymousName = "Anonymous"

// MaxNameLength bounds stored player names.
const MaxNameLength = 32

// DefaultLimit is the scoreboard size used when no limit is given.
const DefaultLimit = 10

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// ScoreEntry is one completed run. Fewer deaths rank higher.
type ScoreEntry struct {
	ID         int64
	PlayerName string
	Deaths     int
	Levels     int // Levels in the catalog that was completed
	CreatedAt  time.Time
}

// Stats contains aggregated statistics over all runs.
type Stats struct {
	Runs       int
	BestDeaths int
	AvgDeaths  float64
	LastPlayed time.Time
}

// DefaultPath returns ~/.hardest/scores.db.
func DefaultPath() string {
	return filepath.Join("~", ".hardest", "scores.db")
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player_name TEXT NOT NULL,
			deaths INTEGER NOT NULL,
			levels INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(deaths ASC, created_at ASC);
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

// NormalizeName trims a player name, bounds its length and substitutes
// AnonymousName for an empty one.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return AnonymousName
	}
	if r := []rune(name); len(r) > MaxNameLength {
		name = string(r[:MaxNameLength])
	}
	return name
}

// SaveScore records a completed run.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(playerName string, deaths, levels int) (int64, error) {
	if deaths < 0 {
		return 0, fmt.Errorf("storage: deaths must not be negative, got %d", deaths)
	}

	result, err := s.db.Exec(
		"INSERT INTO scores (player_name, deaths, levels) VALUES (?, ?, ?)",
		NormalizeName(playerName), deaths, levels,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the best N runs, fewest deaths first.
// Ties go to the earlier run.
func (s *Store) TopScores(limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	return s.queryScores(
		`SELECT id, player_name, deaths, levels, created_at
		 FROM scores
		 ORDER BY deaths ASC, created_at ASC, id ASC
		 LIMIT ?`,
		limit,
	)
}

// AllScores retrieves every run (no limit), best first.
func (s *Store) AllScores() ([]ScoreEntry, error) {
	return s.queryScores(
		`SELECT id, player_name, deaths, levels, created_at
		 FROM scores
		 ORDER BY deaths ASC, created_at ASC, id ASC`,
	)
}

// PlayerScores retrieves the runs of one player, best first.
func (s *Store) PlayerScores(playerName string) ([]ScoreEntry, error) {
	return s.queryScores(
		`SELECT id, player_name, deaths, levels, created_at
		 FROM scores
		 WHERE player_name = ?
		 ORDER BY deaths ASC, created_at ASC, id ASC`,
		NormalizeName(playerName),
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
		if err := rows.Scan(&e.ID, &e.PlayerName, &e.Deaths, &e.Levels, &createdAt); err != nil {
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

// BestScore returns the lowest death count recorded.
// ok is false if no runs exist.
func (s *Store) BestScore() (deaths int, ok bool, err error) {
	var best sql.NullInt64
	if err := s.db.QueryRow("SELECT MIN(deaths) FROM scores").Scan(&best); err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	if !best.Valid {
		return 0, false, nil
	}
	return int(best.Int64), true, nil
}

// Rank returns the 1-based position a run with the given deaths would take
// on the scoreboard.
func (s *Store) Rank(deaths int) (int, error) {
	var better int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM scores WHERE deaths < ?", deaths).Scan(&better); err != nil {
		return 0, fmt.Errorf("storage: cannot query rank: %w", err)
	}
	return better + 1, nil
}

// ClearScores deletes all runs.
func (s *Store) ClearScores() error {
	if _, err := s.db.Exec("DELETE FROM scores"); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// GetStats retrieves aggregated statistics over all runs.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MIN(deaths), 0), COALESCE(AVG(deaths), 0), MAX(created_at)
		 FROM scores`,
	).Scan(&stats.Runs, &stats.BestDeaths, &stats.AvgDeaths, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
