package main

import (
	"fmt"
	"log/slog"

	"datapoint-forecast/internal/config"
	"datapoint-forecast/internal/dataset"
	"datapoint-forecast/internal/forecast"
	"datapoint-forecast/internal/location"
	"datapoint-forecast/internal/mapping"
	"datapoint-forecast/internal/pipeline"
	"datapoint-forecast/internal/providers/datapoint"
	"datapoint-forecast/internal/storage/sqlite"
	"datapoint-forecast/internal/table"

	"github.com/spf13/afero"
)

// services holds the wired application components
type services struct {
	mappings  *mapping.Set
	locations location.Service
	datasets  *dataset.Store
	runs      *sqlite.RunStorage // nil when the run ledger is disabled
	pipeline  *pipeline.Pipeline
}

// newServices wires the DataPoint client, services, dataset store and
// optional run ledger from configuration
func newServices(cfg *config.Config, logger *slog.Logger) (*services, error) {
	fsys := afero.NewOsFs()

	apiKey, err := cfg.APIKey(fsys)
	if err != nil {
		return nil, err
	}

	mappings, err := mapping.Load(cfg.Pipeline.MappingsFile)
	if err != nil {
		return nil, err
	}

	client := datapoint.NewClient(datapoint.Options{
		APIKey:  apiKey,
		BaseURL: cfg.DataPoint.BaseURL,
		Timeout: cfg.DataPoint.Timeout,
	}, logger)

	svc := &services{
		mappings:  mappings,
		locations: location.NewLocationService(client, logger),
		datasets:  dataset.NewStore(fsys, logger),
	}
	svc.pipeline = pipeline.New(
		svc.locations,
		forecast.NewForecastService(client, logger),
		svc.datasets,
		logger,
	)

	if cfg.Storage.Enabled {
		runs, err := sqlite.NewRunStorage(cfg.Storage.Path, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open run ledger: %w", err)
		}
		svc.runs = runs
		svc.pipeline.WithRecorder(runs)
	}

	logger.Info("services initialized",
		"mappings_version", mappings.Version,
		"run_ledger", cfg.Storage.Enabled,
	)

	return svc, nil
}

// Close releases the run ledger if one is open
func (s *services) Close() error {
	if s.runs != nil {
		return s.runs.Close()
	}
	return nil
}

// pipelineOptions builds run options from configuration. Overrides with
// empty values keep the configured setting.
func pipelineOptions(cfg *config.Config, mappings *mapping.Set, o runOverrides) (pipeline.Options, error) {
	modeName := cfg.Pipeline.Mode
	if o.mode != "" {
		modeName = o.mode
	}
	mode, err := table.ParseMode(modeName)
	if err != nil {
		return pipeline.Options{}, err
	}

	setName := cfg.Pipeline.Categories
	if o.categories != "" {
		setName = o.categories
	}
	categories, err := mappings.CategoryMap(setName)
	if err != nil {
		return pipeline.Options{}, err
	}

	names, ids := cfg.Pipeline.Locations, cfg.Pipeline.LocationIDs
	if len(o.names) > 0 || len(o.ids) > 0 {
		names, ids = o.names, o.ids
	}

	outputDir := cfg.Pipeline.OutputDir
	if o.outputDir != "" {
		outputDir = o.outputDir
	}

	skip := cfg.Pipeline.SkipUnresolved
	if o.skipUnresolved != nil {
		skip = *o.skipUnresolved
	}

	return pipeline.Options{
		LocationNames:  names,
		LocationIDs:    ids,
		OutputDir:      outputDir,
		RawFile:        cfg.Pipeline.RawFile,
		ProcessedFile:  cfg.Pipeline.ProcessedFile,
		Headings:       mappings.Headings,
		DropColumns:    mappings.DropColumns,
		CategoryColumn: mappings.CategoryColumn,
		Categories:     categories,
		Mode:           mode,
		SkipUnresolved: skip,
	}, nil
}

// runOverrides are per-invocation settings from flags or a request body
type runOverrides struct {
	names          []string
	ids            []string
	outputDir      string
	mode           string
	categories     string
	skipUnresolved *bool
}
