// Package storage provides SQLite-based persistence for puzzle progress.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/decompose/internal/progress"
	"github.com/vovakirdan/decompose/internal/puzzle"
)

// ErrNoSession is returned when no saved session matches a lookup.
var ErrNoSession = errors.New("storage: no saved session")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// BestTime is the fastest recorded clear of one level.
type BestTime struct {
	Pack      string
	Level     int
	Millis    int
	UpdatedAt time.Time
}

// SavedSession is an in-progress attempt that can be resumed.
type SavedSession struct {
	ID        string
	Pack      string
	Level     int
	Board     puzzle.Snapshot
	Selected  int
	Moves     int
	ElapsedMS int
	CursorX   int
	CursorY   int
	CreatedAt time.Time
}

// State converts the saved row into an engine session state.
func (s SavedSession) State() puzzle.SessionState {
	return puzzle.SessionState{
		Level:    s.Level,
		Board:    s.Board,
		Selected: s.Selected,
		Moves:    s.Moves,
	}
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

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
		CREATE TABLE IF NOT EXISTS progress (
			pack TEXT PRIMARY KEY,
			max_level INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS best_times (
			pack TEXT NOT NULL,
			level INTEGER NOT NULL,
			millis INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (pack, level)
		);

		CREATE TABLE IF NOT EXISTS clears (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			pack TEXT NOT NULL,
			level INTEGER NOT NULL,
			millis INTEGER NOT NULL,
			moves INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_clears_pack_level ON clears(pack, level);

		CREATE TABLE IF NOT EXISTS saved_sessions (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			pack TEXT NOT NULL,
			level INTEGER NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			states TEXT NOT NULL,
			selected INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			elapsed_ms INTEGER NOT NULL DEFAULT 0,
			cursor_x INTEGER NOT NULL DEFAULT 0,
			cursor_y INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_saved_sessions_pack ON saved_sessions(pack, level);
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

// LoadProgress reads a pack's progress, normalized to levelCount levels.
// A pack that was never played yields a fresh record.
func (s *Store) LoadProgress(pack string, levelCount int) (*progress.Progress, error) {
	p := progress.New(levelCount)

	err := s.db.QueryRow("SELECT max_level FROM progress WHERE pack = ?", pack).Scan(&p.MaxLevel)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot query progress: %w", err)
	}

	times, err := s.BestTimes(pack)
	if err != nil {
		return nil, err
	}
	for _, bt := range times {
		if bt.Level >= 0 && bt.Level < levelCount {
			p.BestTimes[bt.Level] = bt.Millis
		}
	}

	p.Normalize(levelCount)
	return p, nil
}

// SaveProgress writes a pack's unlocked level and every recorded best time.
func (s *Store) SaveProgress(pack string, p *progress.Progress) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO progress (pack, max_level, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(pack) DO UPDATE SET max_level = excluded.max_level, updated_at = CURRENT_TIMESTAMP`,
		pack, p.MaxLevel,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}

	for level, ms := range p.BestTimes {
		if ms <= 0 {
			continue
		}
		_, err = tx.Exec(
			`INSERT INTO best_times (pack, level, millis, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
			 ON CONFLICT(pack, level) DO UPDATE SET millis = excluded.millis, updated_at = CURRENT_TIMESTAMP
			 WHERE excluded.millis < best_times.millis`,
			pack, level, ms,
		)
		if err != nil {
			return fmt.Errorf("storage: cannot save best time: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit progress: %w", err)
	}
	return nil
}

// BestTimes returns a pack's recorded best times ordered by level.
func (s *Store) BestTimes(pack string) ([]BestTime, error) {
	rows, err := s.db.Query(
		`SELECT pack, level, millis, updated_at
		 FROM best_times
		 WHERE pack = ?
		 ORDER BY level`,
		pack,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best times: %w", err)
	}
	defer rows.Close()

	var times []BestTime
	for rows.Next() {
		var bt BestTime
		var updatedAt any
		if err := rows.Scan(&bt.Pack, &bt.Level, &bt.Millis, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		bt.UpdatedAt = parseTime(updatedAt)
		times = append(times, bt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return times, nil
}

// ClearProgress forgets everything recorded for a pack: unlocks, best
// times, clear history and saved sessions.
func (s *Store) ClearProgress(pack string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"progress", "best_times", "clears", "saved_sessions"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE pack = ?", pack); err != nil {
			return fmt.Errorf("storage: cannot clear %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit clear: %w", err)
	}
	return nil
}

// SaveSession stores an in-progress attempt, replacing any earlier saved
// attempt at the same level. An empty ID is assigned a new UUID.
// Returns the session ID.
func (s *Store) SaveSession(ss SavedSession) (string, error) {
	if ss.ID == "" {
		ss.ID = uuid.NewString()
	}
	if !ss.Board.Consistent() {
		return "", fmt.Errorf("storage: %w", puzzle.ErrInvalidSnapshot)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM saved_sessions WHERE pack = ? AND level = ?", ss.Pack, ss.Level); err != nil {
		return "", fmt.Errorf("storage: cannot replace session: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO saved_sessions
		 (id, pack, level, width, height, states, selected, moves, elapsed_ms, cursor_x, cursor_y)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ss.ID,
		ss.Pack,
		ss.Level,
		ss.Board.Width,
		ss.Board.Height,
		puzzle.EncodeStates(ss.Board.States),
		ss.Selected,
		ss.Moves,
		ss.ElapsedMS,
		ss.CursorX,
		ss.CursorY,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit session: %w", err)
	}
	return ss.ID, nil
}

const sessionColumns = `id, pack, level, width, height, states, selected, moves, elapsed_ms, cursor_x, cursor_y, created_at`

// LatestSession returns the most recently saved attempt in a pack.
func (s *Store) LatestSession(pack string) (*SavedSession, error) {
	row := s.db.QueryRow(
		`SELECT `+sessionColumns+`
		 FROM saved_sessions
		 WHERE pack = ?
		 ORDER BY seq DESC
		 LIMIT 1`,
		pack,
	)
	return scanSession(row)
}

// SessionByID returns a saved attempt by its ID.
func (s *Store) SessionByID(id string) (*SavedSession, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("storage: bad session id %q: %w", id, err)
	}

	row := s.db.QueryRow(
		`SELECT `+sessionColumns+`
		 FROM saved_sessions
		 WHERE id = ?`,
		id,
	)
	return scanSession(row)
}

// ListSessions returns a pack's saved attempts, newest first.
func (s *Store) ListSessions(pack string, limit int) ([]SavedSession, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+sessionColumns+`
		 FROM saved_sessions
		 WHERE pack = ?
		 ORDER BY seq DESC
		 LIMIT ?`,
		pack, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SavedSession
	for rows.Next() {
		ss, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *ss)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// DeleteSessions removes saved attempts at one level of a pack.
func (s *Store) DeleteSessions(pack string, level int) error {
	_, err := s.db.Exec("DELETE FROM saved_sessions WHERE pack = ? AND level = ?", pack, level)
	if err != nil {
		return fmt.Errorf("storage: cannot delete sessions: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*SavedSession, error) {
	var ss SavedSession
	var states string
	var createdAt any

	err := row.Scan(
		&ss.ID,
		&ss.Pack,
		&ss.Level,
		&ss.Board.Width,
		&ss.Board.Height,
		&states,
		&ss.Selected,
		&ss.Moves,
		&ss.ElapsedMS,
		&ss.CursorX,
		&ss.CursorY,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot scan session: %w", err)
	}

	ss.Board.States, err = puzzle.DecodeStates(states)
	if err != nil {
		return nil, fmt.Errorf("storage: session %s: %w", ss.ID, err)
	}
	if !ss.Board.Consistent() {
		return nil, fmt.Errorf("storage: session %s: %w", ss.ID, puzzle.ErrInvalidSnapshot)
	}
	ss.CreatedAt = parseTime(createdAt)

	return &ss, nil
}

// RecordClear appends one finished attempt to the clear history.
func (s *Store) RecordClear(pack string, level, millis, moves int) error {
	_, err := s.db.Exec(
		"INSERT INTO clears (pack, level, millis, moves) VALUES (?, ?, ?, ?)",
		pack, level, millis, moves,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record clear: %w", err)
	}
	return nil
}

// LevelStats contains aggregated clear history for one level.
type LevelStats struct {
	Level       int
	Clears      int
	BestMillis  int
	AvgMillis   float64
	FewestMoves int
	LastPlayed  time.Time
}

// PackStats retrieves clear statistics for every level of a pack that has
// been cleared at least once, keyed by level.
func (s *Store) PackStats(pack string) (map[int]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level, COUNT(*), MIN(millis), AVG(millis), MIN(moves), MAX(created_at)
		 FROM clears
		 WHERE pack = ?
		 GROUP BY level`,
		pack,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get pack stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[int]*LevelStats)
	for rows.Next() {
		var ls LevelStats
		var lastPlayed any
		if err := rows.Scan(&ls.Level, &ls.Clears, &ls.BestMillis, &ls.AvgMillis, &ls.FewestMoves, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ls.LastPlayed = parseTime(lastPlayed)
		stats[ls.Level] = &ls
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
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
