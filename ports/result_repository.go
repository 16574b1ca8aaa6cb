package ports

import (
	"context"

	"github.com/battyone/beyond-correlation/domain/core"
	"github.com/battyone/beyond-correlation/domain/relate"
)

// ResultRepository persists discovery runs with their scores and diagnostics
type ResultRepository interface {
	// SaveRun stores a run and all of its score and NaN-info rows
	SaveRun(ctx context.Context, run *relate.Run) error

	// GetRun retrieves a run by ID, including its result rows
	GetRun(ctx context.Context, id core.RunID) (*relate.Run, error)

	// ListRuns returns recent runs, newest first, with pagination
	ListRuns(ctx context.Context, limit, offset int) ([]*relate.Run, error)
}
