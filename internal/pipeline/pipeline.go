// Package pipeline runs the forecast ETL: resolve, fetch, write raw, rename,
// drop, remap and write processed. The first failing stage stops the run.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"datapoint-forecast/internal/forecast"
	"datapoint-forecast/internal/location"
	"datapoint-forecast/internal/storage/sqlite"
	"datapoint-forecast/internal/table"
	"datapoint-forecast/internal/types"

	"github.com/google/uuid"
)

// Options configures a single run
type Options struct {
	// LocationNames are resolved to ids before fetching
	LocationNames []string
	// LocationIDs are fetched as given, after any resolved names
	LocationIDs []string

	OutputDir     string
	RawFile       string
	ProcessedFile string

	Headings       table.HeadingMap
	DropColumns    []string
	CategoryColumn string
	Categories     table.CategoryMap
	Mode           table.Mode

	// SkipUnresolved continues with the names that did resolve instead of
	// failing the resolve stage
	SkipUnresolved bool
}

// Result summarizes a completed run
type Result struct {
	RunID         string   `json:"run_id" example:"6f1c2a9e-8d4b-4a55-9a43-2f0e8c9b1d20"`
	LocationIDs   []string `json:"location_ids"`
	Unresolved    []string `json:"unresolved,omitempty"`
	Rows          int      `json:"rows" example:"80"`
	Columns       []string `json:"columns"`
	RawPath       string   `json:"raw_path" example:"data/raw_data.csv"`
	ProcessedPath string   `json:"processed_path" example:"data/data_processed.csv"`
}

// DatasetWriter persists a table to a path
type DatasetWriter interface {
	Write(t *table.Table, path string) error
}

// RunRecorder stores a summary of every run
type RunRecorder interface {
	SaveRun(ctx context.Context, run *sqlite.RunRecord) error
}

// Pipeline holds the collaborators for a run and no per-run state
type Pipeline struct {
	resolver location.Service
	fetcher  forecast.Service
	writer   DatasetWriter
	recorder RunRecorder
	logger   *slog.Logger

	now   func() time.Time
	newID func() string
}

// New creates a pipeline
func New(resolver location.Service, fetcher forecast.Service, writer DatasetWriter, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		resolver: resolver,
		fetcher:  fetcher,
		writer:   writer,
		logger:   logger.With("component", "pipeline"),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// WithRecorder records every run outcome with r
func (p *Pipeline) WithRecorder(r RunRecorder) *Pipeline {
	p.recorder = r
	return p
}

// Run executes every stage in order. On failure it returns the partial result
// and a *StageError. Files written by earlier stages are left in place.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Result, error) {
	result := &Result{
		RunID:         p.newID(),
		RawPath:       filepath.Join(opts.OutputDir, opts.RawFile),
		ProcessedPath: filepath.Join(opts.OutputDir, opts.ProcessedFile),
	}
	started := p.now()
	logger := p.logger.With("run_id", result.RunID)

	logger.Info("starting pipeline run",
		"names", len(opts.LocationNames),
		"ids", len(opts.LocationIDs),
		"mode", opts.Mode.String(),
	)

	err := p.run(ctx, logger, opts, result)
	p.record(ctx, logger, started, result, err)

	if err != nil {
		logger.Error("pipeline run failed", "error", err)
		return result, err
	}

	logger.Info("pipeline run complete",
		"rows", result.Rows,
		"raw_path", result.RawPath,
		"processed_path", result.ProcessedPath,
		"duration", p.now().Sub(started),
	)
	return result, nil
}

func (p *Pipeline) run(ctx context.Context, logger *slog.Logger, opts Options, result *Result) error {
	// a stage failing after the run was cancelled reports the cancellation
	fail := func(stage Stage, err error) error {
		se := stageError(stage, err)
		if ctx.Err() != nil {
			se.Kind = KindCanceled
		}
		return se
	}

	ids, unresolved, err := p.resolve(ctx, logger, opts)
	result.Unresolved = unresolved
	if err != nil {
		return fail(StageResolve, err)
	}
	result.LocationIDs = ids

	raw, err := p.fetcher.Fetch(ctx, ids)
	if err != nil {
		return fail(StageFetch, err)
	}

	if err := p.writer.Write(raw, result.RawPath); err != nil {
		return fail(StageWriteRaw, err)
	}

	processed := table.Rename(raw, opts.Headings)
	logger.Debug("stage complete", "stage", StageRename, "columns", processed.Columns())

	for _, c := range opts.DropColumns {
		processed = table.DropColumn(processed, c)
	}
	logger.Debug("stage complete", "stage", StageDrop, "dropped", opts.DropColumns)

	processed, err = table.RemapCategory(processed, opts.CategoryColumn, opts.Categories, opts.Mode)
	if err != nil {
		return fail(StageRemap, err)
	}

	if err := p.writer.Write(processed, result.ProcessedPath); err != nil {
		return fail(StageWriteProcessed, err)
	}

	result.Rows = processed.Len()
	result.Columns = processed.Columns()
	return nil
}

// resolve returns resolved name ids followed by the explicit ids
func (p *Pipeline) resolve(ctx context.Context, logger *slog.Logger, opts Options) ([]string, []string, error) {
	var (
		ids        []string
		unresolved []string
	)

	if len(opts.LocationNames) > 0 {
		sites, err := p.resolver.ResolveAll(ctx, opts.LocationNames)
		if err != nil {
			recoverable := errors.Is(err, location.ErrNotFound) || errors.Is(err, location.ErrEmptyName)
			if !recoverable || !opts.SkipUnresolved {
				return nil, nil, err
			}
		}

		for _, site := range sites {
			ids = append(ids, site.ID)
		}
		for _, name := range opts.LocationNames {
			if !slices.ContainsFunc(sites, func(s types.Site) bool { return s.Name == name }) {
				unresolved = append(unresolved, name)
			}
		}
		if len(unresolved) > 0 {
			logger.Warn("skipping unresolved locations", "names", unresolved)
		}
	}

	ids = append(ids, opts.LocationIDs...)
	if len(ids) == 0 {
		return nil, unresolved, ErrNoLocations
	}
	return ids, unresolved, nil
}

// record saves the run outcome. A ledger failure is logged and does not
// change the run result.
func (p *Pipeline) record(ctx context.Context, logger *slog.Logger, started time.Time, result *Result, runErr error) {
	if p.recorder == nil {
		return
	}

	run := &sqlite.RunRecord{
		ID:          result.RunID,
		StartedAt:   started,
		FinishedAt:  p.now(),
		Status:      sqlite.RunStatusSucceeded,
		LocationIDs: result.LocationIDs,
		Rows:        result.Rows,
	}

	var stageErr *StageError
	if errors.As(runErr, &stageErr) {
		run.Status = sqlite.RunStatusFailed
		run.FailedStage = string(stageErr.Stage)
		run.ErrorKind = string(stageErr.Kind)
		run.ErrorMessage = stageErr.Err.Error()
		switch stageErr.Stage {
		case StageResolve, StageFetch, StageWriteRaw:
		default:
			// the raw snapshot stays on disk after a later failure
			run.RawPath = result.RawPath
		}
	} else {
		run.RawPath = result.RawPath
		run.ProcessedPath = result.ProcessedPath
	}

	if err := p.recorder.SaveRun(context.WithoutCancel(ctx), run); err != nil {
		logger.Error("failed to record run", "error", err)
	}
}
