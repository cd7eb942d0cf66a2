// Package history records fngate runs in a SQLite database so teams can
// track how function-length debt moves over time.
package history

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/harrison/fngate/internal/report"
)

//go:embed schema.sql
var schemaSQL string

// Run is one recorded gate execution.
type Run struct {
	ID             string
	StartedAt      time.Time
	Roots          []string
	Extension      string
	Threshold      int
	FilesScanned   int
	FunctionsFound int
	ViolationCount int
	Passed         bool
}

// Store manages the SQLite history database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (creating if needed) the history database at dbPath and
// initializes the schema.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// busy_timeout first so later statements wait on locks instead of
	// failing when parallel CI jobs share the database.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun stores a run and its violations in one transaction and
// returns the generated run ID.
func (s *Store) RecordRun(run Run, violations []report.Violation) (string, error) {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs (id, started_at, roots, extension, threshold,
			files_scanned, functions_found, violation_count, passed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt, strings.Join(run.Roots, ","), run.Extension,
		run.Threshold, run.FilesScanned, run.FunctionsFound,
		len(violations), boolToInt(len(violations) == 0))
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for _, v := range violations {
		_, err = tx.Exec(`
			INSERT INTO violations (run_id, path, function, start_line, length)
			VALUES (?, ?, ?, ?, ?)`,
			run.ID, v.Path, v.Name, v.StartLine, v.Length)
		if err != nil {
			return "", fmt.Errorf("insert violation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit transaction: %w", err)
	}
	return run.ID, nil
}

// ListRuns returns up to limit runs, most recent first.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT id, started_at, roots, extension, threshold,
			files_scanned, functions_found, violation_count, passed
		FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var roots string
		var passed int
		if err := rows.Scan(&r.ID, &r.StartedAt, &roots, &r.Extension,
			&r.Threshold, &r.FilesScanned, &r.FunctionsFound,
			&r.ViolationCount, &passed); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		if roots != "" {
			r.Roots = strings.Split(roots, ",")
		}
		r.Passed = passed != 0
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunViolations returns the violations recorded for a run, ordered by
// path then start line.
func (s *Store) RunViolations(runID string) ([]report.Violation, error) {
	rows, err := s.db.Query(`
		SELECT v.path, v.function, v.start_line, v.length, r.threshold
		FROM violations v JOIN runs r ON r.id = v.run_id
		WHERE v.run_id = ?
		ORDER BY v.path, v.start_line`, runID)
	if err != nil {
		return nil, fmt.Errorf("query violations: %w", err)
	}
	defer rows.Close()

	var violations []report.Violation
	for rows.Next() {
		var v report.Violation
		if err := rows.Scan(&v.Path, &v.Name, &v.StartLine, &v.Length, &v.Threshold); err != nil {
			return nil, fmt.Errorf("scan violation row: %w", err)
		}
		violations = append(violations, v)
	}
	return violations, rows.Err()
}

// boolToInt maps a bool onto SQLite's integer booleans.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
