package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"log-analyzer/internal/aggregators"
	"log-analyzer/internal/models"
	"log-analyzer/internal/parsers"
	"log-analyzer/internal/reports"
	"log-analyzer/internal/shared/configs"
	"log-analyzer/internal/shared/filestorages"
	"log-analyzer/internal/shared/loggers"
	"log-analyzer/internal/shared/metrics"
	"log-analyzer/internal/shared/svcerrors"
	"log-analyzer/internal/shared/ulid"
	"log-analyzer/internal/sources"
)

const appName = "log-analyzer"

const (
	componentSelector   = "selector"
	componentParser     = "parser"
	componentAggregator = "aggregator"
	componentRenderer   = "renderer"
)

// App holds all pipeline dependencies for one process.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	logCloser io.Closer

	selector           sources.Selector
	aggregationService aggregators.AggregationService
	renderer           reports.Renderer

	now func() time.Time
}

// RunResult describes a finished run. Report is nil when the log directory
// had no candidate files.
type RunResult struct {
	RunID  string
	Source sources.LogFile
	Report *reports.RenderResult
	Rows   []models.ReportRow
	Stats  models.ParseStats
}

// New creates and initializes a new App instance.
func New(config *configs.Config) (*App, error) {
	appLogger, logCloser, err := loggers.New(config.Log.Level, config.Log.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, appName).
		Logger()

	reportStorage, err := filestorages.NewFileStorage(config.Report.Dir)
	if err != nil {
		_ = logCloser.Close()
		return nil, fmt.Errorf("failed to initialize report storage: %w", err)
	}

	renderer, err := reports.NewRenderer(reportStorage, reports.Options{
		TemplatePath: config.Report.TemplatePath,
		Overwrite:    config.Report.Overwrite,
	})
	if err != nil {
		_ = logCloser.Close()
		return nil, err
	}

	return &App{
		config:             config,
		appLogger:          appLogger,
		logCloser:          logCloser,
		selector:           sources.NewSelector(),
		aggregationService: aggregators.NewAggregationService(config.Aggregation.Workers),
		renderer:           renderer,
		now:                time.Now,
	}, nil
}

// Run analyzes the most recent log of the configured directory once.
func (app *App) Run(ctx context.Context) (*RunResult, error) {
	runID := ulid.NewRunID()
	logger := app.appLogger.With().Str(loggers.FieldRunID, runID).Logger()
	ctx = logger.WithContext(ctx)

	logger.Info().
		Msgf("starting run (log_dir=%s, report_dir=%s, workers=%d, malformed_lines=%s)",
			app.config.Source.LogDir,
			app.config.Report.Dir,
			app.config.Aggregation.Workers,
			app.config.Parser.MalformedLines)

	started := time.Now()
	result, err := app.run(ctx, runID)
	elapsed := time.Since(started)
	if _, ok := svcerrors.AsServiceError(err); err != nil && !ok {
		err = svcerrors.NewInternalErrorUndefined(err)
	}

	outcome := outcomeOf(result, err)
	metricRunsTotal.WithLabelValues(outcome).Inc()
	metricRunDurationSeconds.WithLabelValues(outcome).Observe(elapsed.Seconds())
	app.exportMetrics(ctx)

	if err != nil {
		svcErr, _ := svcerrors.AsServiceError(err)
		logger.Error().
			Err(err).
			Dur(loggers.FieldDuration, elapsed).
			Str(loggers.FieldErrorCode, svcErr.Code).
			Msg("run failed")
		return nil, err
	}

	if result.Report != nil {
		logger.Info().
			Dur(loggers.FieldDuration, elapsed).
			Str(loggers.FieldFile, result.Report.Path).
			Msg("report generated")
	}
	return result, nil
}

func (app *App) run(ctx context.Context, runID string) (*RunResult, error) {
	logger := loggers.Ctx(ctx)

	selectorCtx := withComponent(ctx, componentSelector)
	source, ok, err := app.selector.Latest(selectorCtx, app.config.Source.LogDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		loggers.Ctx(selectorCtx).Warn().Msgf("no log files to analyze in %s", app.config.Source.LogDir)
		return &RunResult{RunID: runID}, nil
	}
	loggers.Ctx(selectorCtx).Info().Str(loggers.FieldFile, source.Path).Msg("selected log file")

	reader, err := parsers.Open(withComponent(ctx, componentParser), source.Path, parsers.Options{
		Policy: parsers.MalformedPolicy(app.config.Parser.MalformedLines),
	})
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := reader.Close(); closeErr != nil {
			logger.Warn().Err(closeErr).Str(loggers.FieldFile, source.Path).Msg("failed to close log file")
		}
	}()

	aggregated, err := app.aggregationService.Aggregate(withComponent(ctx, componentAggregator), reader)
	if err != nil {
		return nil, err
	}
	stats := reader.Stats()
	if err := reader.CheckMalformedRatio(app.config.Parser.MaxMalformedRatio); err != nil {
		return nil, err
	}

	report := &models.Report{
		Rows: aggregated.Rows,
		Meta: models.ReportMeta{
			RunID:       runID,
			SourceFile:  source.Name,
			SourceDate:  source.Date,
			GeneratedAt: app.now().UTC(),
			RunTotals:   aggregated.Totals,
			ParseStats:  stats,
		},
	}

	rendered, err := app.renderer.Render(withComponent(ctx, componentRenderer), report)
	if err != nil {
		return nil, err
	}

	return &RunResult{
		RunID:  runID,
		Source: source,
		Report: rendered,
		Rows:   aggregated.Rows,
		Stats:  stats,
	}, nil
}

// withComponent tags the context logger with the pipeline stage it is handed to.
func withComponent(ctx context.Context, component string) context.Context {
	logger := loggers.Ctx(ctx).With().Str(loggers.FieldComponent, component).Logger()
	return logger.WithContext(ctx)
}

// exportMetrics writes the default registry to the configured textfile. A
// failed export is logged and does not fail the run.
func (app *App) exportMetrics(ctx context.Context) {
	path := app.config.Metrics.TextfilePath
	if path == "" {
		return
	}
	if err := metrics.WriteTextfile(path); err != nil {
		loggers.Ctx(ctx).Warn().Err(err).Str(loggers.FieldFile, path).Msg("failed to export metrics")
	}
}

// Close releases the diagnostics log file.
func (app *App) Close() error {
	return app.logCloser.Close()
}

func outcomeOf(result *RunResult, err error) string {
	if svcErr, ok := svcerrors.AsServiceError(err); ok {
		return svcErr.Code
	}
	if result.Report == nil {
		return outcomeNoSource
	}
	return outcomeReported
}
