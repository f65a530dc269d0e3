package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"datapoint-forecast/internal/config"
	"datapoint-forecast/internal/location"
	"datapoint-forecast/internal/mapping"
	"datapoint-forecast/internal/pipeline"
	"datapoint-forecast/internal/storage/sqlite"
	"datapoint-forecast/internal/table"

	"github.com/gin-gonic/gin"

	_ "datapoint-forecast/docs" // Ensure docs are imported
)

// pipelineRunner executes one ETL run
type pipelineRunner interface {
	Run(ctx context.Context, opts pipeline.Options) (*pipeline.Result, error)
}

// runLedger reads recorded runs
type runLedger interface {
	GetRun(ctx context.Context, id string) (*sqlite.RunRecord, error)
	ListRuns(ctx context.Context, limit int) ([]*sqlite.RunRecord, error)
}

// datasetReader loads a written CSV snapshot
type datasetReader interface {
	Read(path string) (*table.Table, error)
}

// AppDeps are the services the HTTP layer delegates to
type AppDeps struct {
	Locations location.Service
	Pipeline  pipelineRunner
	Runs      runLedger // nil when the run ledger is disabled
	Datasets  datasetReader
	Mappings  *mapping.Set
}

// App encapsulates application dependencies
type App struct {
	router          *gin.Engine
	logger          *slog.Logger
	cfg             *config.Config
	locationService location.Service
	pipeline        pipelineRunner
	runs            runLedger
	datasets        datasetReader
	mappings        *mapping.Set

	// runs share output files, so only one executes at a time
	runMu sync.Mutex
}

// NewApp creates a new application with injected dependencies
func NewApp(cfg *config.Config, logger *slog.Logger, deps AppDeps) *App {
	// Set Gin mode from configuration
	gin.SetMode(cfg.Server.GinMode)

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())

	app := &App{
		router:          router,
		logger:          logger.With("component", "api"),
		cfg:             cfg,
		locationService: deps.Locations,
		pipeline:        deps.Pipeline,
		runs:            deps.Runs,
		datasets:        deps.Datasets,
		mappings:        deps.Mappings,
	}

	// Register routes
	app.registerRoutes()

	return app
}

// appDeps adapts the wired services for the HTTP layer
func (s *services) appDeps() AppDeps {
	deps := AppDeps{
		Locations: s.locations,
		Pipeline:  s.pipeline,
		Datasets:  s.datasets,
		Mappings:  s.mappings,
	}
	if s.runs != nil {
		deps.Runs = s.runs
	}
	return deps
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully
func (app *App) Run(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      app.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute, // pipeline runs are synchronous
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("starting server", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	app.logger.Info("server stopped")
	return nil
}
