package postgres

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema creates the run tables when they do not exist yet
var schema = []string{
	`CREATE TABLE IF NOT EXISTS discovery_runs (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		method INTEGER NOT NULL,
		seed BIGINT,
		columns JSONB NOT NULL,
		result JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS discovery_scores (
		run_id TEXT NOT NULL REFERENCES discovery_runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		feature TEXT NOT NULL,
		target TEXT NOT NULL,
		score DOUBLE PRECISION,
		PRIMARY KEY (run_id, position)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_discovery_runs_created_at ON discovery_runs(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_discovery_scores_pair ON discovery_scores(feature, target)`,
}

// EnsureSchema applies the run schema idempotently
func EnsureSchema(db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
