// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a SQLite log of conversion batches: one row per
// run and one row per transcript converted, skipped or failed in it.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/quizconv/pkg/types"
)

const (
	// DefaultDBPath is used when the config leaves db_path empty.
	DefaultDBPath     = ".quizconv/history.db"
	defaultMaxResults = 20
)

// Store manages the history SQLite database.
type Store struct {
	db         *sql.DB
	path       string
	maxResults int
}

// Open opens or creates the history database and its schema.
func Open(cfg types.HistoryConfig) (*Store, error) {
	path := cfg.DBPath
	if path == "" {
		path = DefaultDBPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, path: path, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			input_dir TEXT,
			output_dir TEXT,
			converted INTEGER,
			skipped INTEGER,
			failed INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS conversions (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			source_path TEXT NOT NULL,
			output_path TEXT,
			status TEXT NOT NULL,
			sections INTEGER,
			questions INTEGER,
			unmatched TEXT,
			sha256 TEXT,
			error TEXT,
			converted_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_run_id ON conversions(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_source ON conversions(source_path)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Run describes one conversion batch.
type Run struct {
	ID        string    `json:"id" yaml:"id"`
	StartedAt time.Time `json:"started_at" yaml:"started_at"`
	InputDir  string    `json:"input_dir" yaml:"input_dir"`
	OutputDir string    `json:"output_dir" yaml:"output_dir"`
	Converted int       `json:"converted" yaml:"converted"`
	Skipped   int       `json:"skipped" yaml:"skipped"`
	Failed    int       `json:"failed" yaml:"failed"`
}

// RecordRun stores a batch and its per-file outcomes in one transaction.
// A run without an ID gets a new UUID; the ID used is returned.
func (s *Store) RecordRun(ctx context.Context, run Run, convs []types.Conversion) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, input_dir, output_dir, converted, skipped, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC().Format(timeLayout), run.InputDir, run.OutputDir,
		run.Converted, run.Skipped, run.Failed,
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO conversions (run_id, source_path, output_path, status, sections, questions, unmatched, sha256, error, converted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range convs {
		unmatchedJSON, _ := json.Marshal(c.Unmatched)
		_, err := stmt.ExecContext(ctx,
			run.ID, c.SourcePath, c.OutputPath, string(c.Status),
			c.Sections, c.Questions, string(unmatchedJSON), c.SHA256, c.Error,
			c.ConvertedAt.UTC().Format(timeLayout),
		)
		if err != nil {
			return "", fmt.Errorf("inserting conversion %s: %w", c.SourcePath, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return run.ID, nil
}

// Entry is one stored conversion with the run it belongs to.
type Entry struct {
	RunID            string `json:"run_id" yaml:"run_id"`
	types.Conversion `yaml:",inline"`
}

// QueryOptions filters Recent. Zero values match everything.
type QueryOptions struct {
	RunID  string
	Status types.ConversionStatus
	Source string
	Limit  int
}

// Recent returns stored conversions, newest first.
func (s *Store) Recent(ctx context.Context, opts QueryOptions) ([]Entry, error) {
	var (
		where []string
		args  []any
	)
	if opts.RunID != "" {
		where = append(where, "run_id = ?")
		args = append(args, opts.RunID)
	}
	if opts.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(opts.Status))
	}
	if opts.Source != "" {
		where = append(where, "source_path LIKE ?")
		args = append(args, "%"+opts.Source+"%")
	}

	query := `SELECT run_id, source_path, output_path, status, sections, questions, unmatched, sha256, error, converted_at
		FROM conversions`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = s.maxResults
	}
	query += " ORDER BY rowid DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying conversions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                     Entry
			status, unmatched, at string
		)
		if err := rows.Scan(&e.RunID, &e.SourcePath, &e.OutputPath, &status,
			&e.Sections, &e.Questions, &unmatched, &e.SHA256, &e.Error, &at); err != nil {
			return nil, fmt.Errorf("scanning conversion: %w", err)
		}
		e.Status = types.ConversionStatus(status)
		if unmatched != "" && unmatched != "null" {
			if err := json.Unmarshal([]byte(unmatched), &e.Unmatched); err != nil {
				return nil, fmt.Errorf("decoding unmatched list: %w", err)
			}
		}
		if at != "" {
			if t, err := time.Parse(time.RFC3339Nano, at); err == nil {
				e.ConvertedAt = t
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Runs returns stored runs, newest first.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	return s.queryRuns(ctx, "", limit)
}

// queryRuns lists runs newest first, restricted to runID when it is set.
func (s *Store) queryRuns(ctx context.Context, runID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	query := `SELECT id, started_at, input_dir, output_dir, converted, skipped, failed FROM runs`
	var args []any
	if runID != "" {
		query += " WHERE id = ?"
		args = append(args, runID)
	}
	query += " ORDER BY started_at DESC, rowid DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r  Run
			at string
		)
		if err := rows.Scan(&r.ID, &at, &r.InputDir, &r.OutputDir, &r.Converted, &r.Skipped, &r.Failed); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, at); err == nil {
			r.StartedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
