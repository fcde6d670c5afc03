// Package storage provides SQLite-based persistence for replay journals.
// A journal holds what is needed to re-simulate a session: the seed, the
// config and the per-tick frame timing and intents. Scores are not stored.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

var (
	// ErrRunNotFound is returned when no run matches an ID or prefix.
	ErrRunNotFound = errors.New("storage: run not found")
	// ErrAmbiguousID is returned when an ID prefix matches several runs.
	ErrAmbiguousID = errors.New("storage: ambiguous run id")
)

// Store manages the SQLite database connection for replay journals.
type Store struct {
	db *sql.DB
}

// Run is one recorded session.
type Run struct {
	ID        string
	Seed      uint64
	TickRate  int
	Config    []byte // YAML encoded game config
	Frames    int    // number of recorded ticks
	CreatedAt time.Time
}

// Frame is one recorded tick.
type Frame struct {
	Seq     uint64
	Delta   time.Duration
	Resumed bool // first tick after the loop (re)started
	Left    bool
	Right   bool
}

// DefaultPath is where the CLI keeps its journal.
const DefaultPath = "~/.arcade/breakout.db"

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
	// SSH sessions record concurrently; one connection serializes the writers.
	db.SetMaxOpenConns(1)

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
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			tick_rate INTEGER NOT NULL,
			config BLOB,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS frames (
			run_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			delta_ns INTEGER NOT NULL,
			resumed INTEGER NOT NULL DEFAULT 0,
			move_left INTEGER NOT NULL DEFAULT 0,
			move_right INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (run_id, seq)
		);
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

// CreateRun starts a new journal and returns it with a fresh ID.
func (s *Store) CreateRun(seed uint64, tickRate int, cfg []byte) (Run, error) {
	run := Run{
		ID:        uuid.NewString(),
		Seed:      seed,
		TickRate:  tickRate,
		Config:    cfg,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.Exec(
		"INSERT INTO runs (id, seed, tick_rate, config) VALUES (?, ?, ?, ?)",
		run.ID, int64(seed), tickRate, cfg, //#nosec G115 -- stored bit for bit
	)
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot create run: %w", err)
	}
	return run, nil
}

// AppendFrames stores frames for a run in one transaction.
func (s *Store) AppendFrames(runID string, frames []Frame) error {
	if len(frames) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.Prepare(
		`INSERT INTO frames (run_id, seq, delta_ns, resumed, move_left, move_right)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare frame insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range frames {
		if _, err := stmt.Exec(runID, int64(f.Seq), int64(f.Delta), f.Resumed, f.Left, f.Right); err != nil { //#nosec G115 -- tick counters stay far below MaxInt64
			return fmt.Errorf("storage: cannot save frame %d: %w", f.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit frames: %w", err)
	}
	return nil
}

// Runs lists the most recent runs first.
func (s *Store) Runs(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT r.id, r.seed, r.tick_rate, r.config, r.created_at, COUNT(f.seq)
		 FROM runs r
		 LEFT JOIN frames f ON f.run_id = r.id
		 GROUP BY r.id
		 ORDER BY r.created_at DESC, r.rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// RunByID finds a run by full ID or unique prefix.
func (s *Store) RunByID(id string) (Run, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Run{}, ErrRunNotFound
	}

	rows, err := s.db.Query(
		`SELECT r.id, r.seed, r.tick_rate, r.config, r.created_at,
		        (SELECT COUNT(*) FROM frames f WHERE f.run_id = r.id)
		 FROM runs r
		 WHERE r.id = ? OR substr(r.id, 1, ?) = ?
		 LIMIT 2`,
		id, len(id), id,
	)
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot query run: %w", err)
	}
	defer rows.Close()

	var found []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return Run{}, err
		}
		found = append(found, run)
	}
	if err := rows.Err(); err != nil {
		return Run{}, fmt.Errorf("storage: row iteration error: %w", err)
	}

	switch len(found) {
	case 0:
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case 1:
		return found[0], nil
	default:
		return Run{}, fmt.Errorf("%w: %s", ErrAmbiguousID, id)
	}
}

// Frames loads the frames of a run in tick order.
func (s *Store) Frames(runID string) ([]Frame, error) {
	rows, err := s.db.Query(
		`SELECT seq, delta_ns, resumed, move_left, move_right
		 FROM frames
		 WHERE run_id = ?
		 ORDER BY seq`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query frames: %w", err)
	}
	defer rows.Close()

	var frames []Frame
	for rows.Next() {
		var f Frame
		var seq, delta int64
		if err := rows.Scan(&seq, &delta, &f.Resumed, &f.Left, &f.Right); err != nil {
			return nil, fmt.Errorf("storage: cannot scan frame: %w", err)
		}
		f.Seq = uint64(seq) //#nosec G115 -- written from a uint64
		f.Delta = time.Duration(delta)
		frames = append(frames, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return frames, nil
}

// DeleteRun removes a run and its frames.
func (s *Store) DeleteRun(runID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec("DELETE FROM frames WHERE run_id = ?", runID); err != nil {
		return fmt.Errorf("storage: cannot delete frames: %w", err)
	}
	res, err := tx.Exec("DELETE FROM runs WHERE id = ?", runID)
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var run Run
	var seed int64
	var createdAt any
	if err := row.Scan(&run.ID, &seed, &run.TickRate, &run.Config, &createdAt, &run.Frames); err != nil {
		return Run{}, fmt.Errorf("storage: cannot scan run: %w", err)
	}
	run.Seed = uint64(seed) //#nosec G115 -- stored bit for bit

	// Parse the datetime - handle both time.Time and string
	switch v := createdAt.(type) {
	case time.Time:
		run.CreatedAt = v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			run.CreatedAt = parsed
		}
	}
	return run, nil
}
