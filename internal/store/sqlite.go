package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open opens the SQLite database at path and verifies the connection.
// A single connection serialises writes from concurrent bench workers.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: open sqlite database %q: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open db: verify sqlite connection to %q: %w", path, err)
	}
	return db, nil
}

// Initialize the results schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createResultsQuery := `
	CREATE TABLE IF NOT EXISTS results (
		run_id TEXT NOT NULL,
		class TEXT NOT NULL,
		file TEXT NOT NULL,
		periods INTEGER NOT NULL,
		class_t INTEGER,
		tau REAL,
		var REAL,
		cost INTEGER,
		feasible INTEGER NOT NULL,
		elapsed_s REAL NOT NULL,
		status TEXT NOT NULL,
		seed INTEGER NOT NULL,
		iterations INTEGER NOT NULL,
		error TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (run_id, class, file)
	);
	`

	createConvergenceQuery := `
	CREATE TABLE IF NOT EXISTS convergence (
		run_id TEXT NOT NULL,
		class TEXT NOT NULL,
		file TEXT NOT NULL,
		seq INTEGER NOT NULL,
		elapsed_s REAL NOT NULL,
		cost INTEGER NOT NULL,
		iteration INTEGER NOT NULL,
		PRIMARY KEY (run_id, class, file, seq)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_results_class
	ON results(class, status);
	`

	statements := []string{
		createResultsQuery,
		createConvergenceQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}
	return nil
}
