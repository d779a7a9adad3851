package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lotSizing/internal/bench"
	"lotSizing/internal/opt"
)

// SQLite-backed sink for bench records.
type SqliteResultStore struct{ DB *sql.DB }

func NewSqliteResultStore(db *sql.DB) *SqliteResultStore {
	return &SqliteResultStore{DB: db}
}

var _ bench.Sink = (*SqliteResultStore)(nil)

// Save stores one record and its convergence log in a single transaction.
// Saving the same (run, class, file) again replaces the previous rows.
func (s *SqliteResultStore) Save(ctx context.Context, runID string, rec bench.Record, conv []opt.Point) error {
	if s.DB == nil {
		return errors.New("save result: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save result: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var classT sql.NullInt64
	var tau, variation sql.NullFloat64
	if rec.Class.Parsed {
		classT = sql.NullInt64{Int64: int64(rec.Class.T), Valid: true}
		tau = sql.NullFloat64{Float64: rec.Class.Tau, Valid: true}
		variation = sql.NullFloat64{Float64: rec.Class.Var, Valid: true}
	}
	var cost sql.NullInt64
	if rec.Feasible {
		cost = sql.NullInt64{Int64: int64(rec.Cost), Valid: true}
	}

	insertResult := `
	INSERT OR REPLACE INTO results (
		run_id, class, file, periods, class_t, tau, var, cost,
		feasible, elapsed_s, status, seed, iterations, error
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err = tx.ExecContext(ctx, insertResult,
		runID, rec.Class.Name, rec.File, rec.Periods, classT, tau, variation, cost,
		rec.Feasible, rec.Elapsed.Seconds(), string(rec.Status), rec.Seed, rec.Iterations, rec.Err,
	)
	if err != nil {
		return fmt.Errorf("save result: insert %s/%s: %w", rec.Class.Name, rec.File, err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM convergence WHERE run_id = ? AND class = ? AND file = ?;`,
		runID, rec.Class.Name, rec.File,
	); err != nil {
		return fmt.Errorf("save result: clear convergence: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO convergence (run_id, class, file, seq, elapsed_s, cost, iteration)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("save result: prepare convergence insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range conv {
		if _, err := stmt.ExecContext(ctx,
			runID, rec.Class.Name, rec.File, i, p.Elapsed.Seconds(), p.Cost, p.Iteration,
		); err != nil {
			return fmt.Errorf("save result: insert convergence point %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save result: commit tx: %w", err)
	}
	return nil
}

// Return all records of a run ordered by class and file.
func (s *SqliteResultStore) ListRun(ctx context.Context, runID string) ([]bench.Record, error) {
	if s.DB == nil {
		return nil, errors.New("list run: DB is nil")
	}

	query := `
	SELECT
		class, file, periods, class_t, tau, var, cost,
		feasible, elapsed_s, status, seed, iterations, error
	FROM results
	WHERE run_id = ?
	ORDER BY class, file;
	`
	rows, err := s.DB.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("list run: query results table: %w", err)
	}
	defer rows.Close()

	records := make([]bench.Record, 0, 64)
	for rows.Next() {
		var (
			rec            bench.Record
			tau, variation sql.NullFloat64
			classT, cost   sql.NullInt64
			elapsed        float64
			status         string
		)
		err := rows.Scan(
			&rec.Class.Name, &rec.File, &rec.Periods, &classT, &tau, &variation, &cost,
			&rec.Feasible, &elapsed, &status, &rec.Seed, &rec.Iterations, &rec.Err,
		)
		if err != nil {
			return nil, fmt.Errorf("list run: scan row: %w", err)
		}
		if classT.Valid && tau.Valid && variation.Valid {
			rec.Class.T = int(classT.Int64)
			rec.Class.Tau = tau.Float64
			rec.Class.Var = variation.Float64
			rec.Class.Parsed = true
		}
		if cost.Valid {
			rec.Cost = int(cost.Int64)
		}
		rec.Elapsed = time.Duration(elapsed * float64(time.Second))
		rec.Status = bench.Status(status)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list run: row iteration: %w", err)
	}
	return records, nil
}

// Return the stored convergence log of one instance in a run.
func (s *SqliteResultStore) Convergence(ctx context.Context, runID, class, file string) ([]opt.Point, error) {
	if s.DB == nil {
		return nil, errors.New("convergence: DB is nil")
	}

	query := `
	SELECT elapsed_s, cost, iteration
	FROM convergence
	WHERE run_id = ? AND class = ? AND file = ?
	ORDER BY seq;
	`
	rows, err := s.DB.QueryContext(ctx, query, runID, class, file)
	if err != nil {
		return nil, fmt.Errorf("convergence: query convergence table: %w", err)
	}
	defer rows.Close()

	var points []opt.Point
	for rows.Next() {
		var p opt.Point
		var elapsed float64
		if err := rows.Scan(&elapsed, &p.Cost, &p.Iteration); err != nil {
			return nil, fmt.Errorf("convergence: scan row: %w", err)
		}
		p.Elapsed = time.Duration(elapsed * float64(time.Second))
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("convergence: row iteration: %w", err)
	}
	return points, nil
}
