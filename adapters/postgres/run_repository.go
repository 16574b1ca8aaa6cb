// Package postgres persists discovery runs and their scores.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/battyone/beyond-correlation/domain/core"
	"github.com/battyone/beyond-correlation/domain/relate"
	"github.com/battyone/beyond-correlation/ports"
)

// Connect opens a postgres connection pool
func Connect(databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// runRepository implements the ResultRepository interface
type runRepository struct {
	db *sqlx.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *sqlx.DB) ports.ResultRepository {
	return &runRepository{db: db}
}

// SaveRun inserts a run and all of its score rows in one transaction
func (r *runRepository) SaveRun(ctx context.Context, run *relate.Run) error {
	resultJSON, err := json.Marshal(run.Result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	columnsJSON, err := json.Marshal(run.Columns)
	if err != nil {
		return fmt.Errorf("failed to marshal columns: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO discovery_runs (
		id, source, method, seed, columns, result, created_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7
	)`

	_, err = tx.ExecContext(ctx, query,
		run.ID, run.Source, run.Method, run.Seed, columnsJSON, resultJSON, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	scoreQuery := `INSERT INTO discovery_scores (
		run_id, position, feature, target, score
	) VALUES ($1, $2, $3, $4, $5)`

	for i, s := range run.Result.Scores {
		// NaN cannot travel through a float column; store NULL instead
		var score sql.NullFloat64
		if s.Score == s.Score {
			score = sql.NullFloat64{Float64: s.Score, Valid: true}
		}
		if _, err := tx.ExecContext(ctx, scoreQuery, run.ID, i, s.Feature, s.Target, score); err != nil {
			return fmt.Errorf("failed to insert score row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by its ID
func (r *runRepository) GetRun(ctx context.Context, id core.RunID) (*relate.Run, error) {
	query := `SELECT
		id, source, method, seed, columns, result, created_at
	FROM discovery_runs WHERE id = $1`

	var run relate.Run
	var columnsJSON, resultJSON []byte
	var seed sql.NullInt64

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&run.ID, &run.Source, &run.Method, &seed, &columnsJSON, &resultJSON, &run.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %s", core.ErrRunNotFound, id)
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	if seed.Valid {
		v := seed.Int64
		run.Seed = &v
	}
	if err := json.Unmarshal(columnsJSON, &run.Columns); err != nil {
		return nil, fmt.Errorf("failed to unmarshal columns: %w", err)
	}
	if err := json.Unmarshal(resultJSON, &run.Result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}

	return &run, nil
}

// ListRuns retrieves recent runs with pagination
func (r *runRepository) ListRuns(ctx context.Context, limit, offset int) ([]*relate.Run, error) {
	query := `SELECT
		id, source, method, seed, columns, result, created_at
	FROM discovery_runs
	ORDER BY created_at DESC
	LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*relate.Run
	for rows.Next() {
		var run relate.Run
		var columnsJSON, resultJSON []byte
		var seed sql.NullInt64

		err := rows.Scan(
			&run.ID, &run.Source, &run.Method, &seed, &columnsJSON, &resultJSON, &run.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		if seed.Valid {
			v := seed.Int64
			run.Seed = &v
		}
		if err := json.Unmarshal(columnsJSON, &run.Columns); err != nil {
			return nil, fmt.Errorf("failed to unmarshal columns: %w", err)
		}
		if err := json.Unmarshal(resultJSON, &run.Result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result: %w", err)
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}
