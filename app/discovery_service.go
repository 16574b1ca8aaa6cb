// Package app wires the discovery engine, profiling, reporting and optional
// persistence into one orchestration surface shared by the CLI and the API.
package app

import (
	"context"
	"time"

	"github.com/battyone/beyond-correlation/domain/core"
	"github.com/battyone/beyond-correlation/domain/frame"
	"github.com/battyone/beyond-correlation/domain/relate"
	"github.com/battyone/beyond-correlation/internal"
	"github.com/battyone/beyond-correlation/internal/discovery"
	"github.com/battyone/beyond-correlation/internal/errors"
	"github.com/battyone/beyond-correlation/internal/profile"
	"github.com/battyone/beyond-correlation/internal/report"
	"github.com/battyone/beyond-correlation/ports"
)

// DiscoveryService orchestrates a full discovery run
type DiscoveryService struct {
	engine *discovery.Engine
	repo   ports.ResultRepository // nil disables persistence
	logger *internal.Logger
}

// NewDiscoveryService creates a discovery service. repo may be nil when run
// persistence is not configured.
func NewDiscoveryService(factory ports.EstimatorFactory, repo ports.ResultRepository, logger *internal.Logger) *DiscoveryService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DiscoveryService{
		engine: discovery.NewEngine(factory),
		repo:   repo,
		logger: logger,
	}
}

// DiscoverRequest describes one discovery invocation
type DiscoverRequest struct {
	Source              string
	Frame               *frame.Frame
	Method              string
	ClassifierOverrides []string
	Seed                *int64
	IncludeNAInfo       bool
	Workers             int
	Persist             bool
}

// Discover validates the request, scores every ordered column pair and
// assembles the run record, persisting it when requested.
func (s *DiscoveryService) Discover(ctx context.Context, req DiscoverRequest) (*relate.Run, error) {
	method, err := relate.ParseMethod(req.Method)
	if err != nil {
		return nil, err
	}
	if req.Frame == nil || req.Frame.ColumnCount() == 0 {
		return nil, errors.InvalidInput("dataset has no columns")
	}

	start := time.Now()
	s.logger.Info("discovery started: source=%s method=%s columns=%d rows=%d workers=%d",
		req.Source, method, req.Frame.ColumnCount(), req.Frame.RowCount(), req.Workers)

	result, err := s.engine.Discover(ctx, req.Frame, discovery.Options{
		Method:              method,
		ClassifierOverrides: req.ClassifierOverrides,
		Seed:                req.Seed,
		IncludeNAInfo:       req.IncludeNAInfo,
		Workers:             req.Workers,
	})
	if err != nil {
		return nil, errors.Wrap(err, "discovery failed")
	}

	s.logger.Info("discovery finished: pairs=%d failures=%d elapsed=%.2fms",
		len(result.Scores), len(result.Failures), float64(time.Since(start).Nanoseconds())/1e6)

	run := relate.NewRun(req.Source, method, req.Seed, req.Frame.Columns(), result)

	if req.Persist {
		if s.repo == nil {
			return nil, errors.ConfigInvalid("run persistence requested but no database is configured")
		}
		if err := s.repo.SaveRun(ctx, run); err != nil {
			return nil, errors.Wrap(err, "failed to persist run")
		}
		s.logger.Info("run persisted: id=%s", run.ID)
	}

	return run, nil
}

// Report renders a markdown report for a finished run, with column profiles
// drawn from the source frame.
func (s *DiscoveryService) Report(run *relate.Run, f *frame.Frame) string {
	return report.Markdown(report.Input{
		Run:      run,
		Profiles: profile.Frame(f),
	})
}

// ReportHTML renders the run report as HTML
func (s *DiscoveryService) ReportHTML(run *relate.Run, f *frame.Frame) []byte {
	return report.HTML(report.Input{
		Run:      run,
		Profiles: profile.Frame(f),
	})
}

// GetRun loads a persisted run
func (s *DiscoveryService) GetRun(ctx context.Context, id string) (*relate.Run, error) {
	if s.repo == nil {
		return nil, errors.ConfigInvalid("no database is configured")
	}
	runID, err := core.ParseRunID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetRun(ctx, runID)
}

// ListRuns lists persisted runs, newest first
func (s *DiscoveryService) ListRuns(ctx context.Context, limit, offset int) ([]*relate.Run, error) {
	if s.repo == nil {
		return nil, errors.ConfigInvalid("no database is configured")
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListRuns(ctx, limit, offset)
}
