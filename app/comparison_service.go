package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"trackplume/domain/comparison"
	"trackplume/domain/core"
	"trackplume/domain/table"
	"trackplume/internal"
	"trackplume/internal/charts"
	"trackplume/internal/profiling"
	"trackplume/internal/report"
	"trackplume/ports"
)

// ServiceOptions configures the optional outputs of a ComparisonService
type ServiceOptions struct {
	// Charts renders PNGs; nil disables chart output
	Charts *charts.Writer
	// ReportPath exports the paired results as markdown or HTML; empty disables it
	ReportPath string
	// Source names the input in exported reports
	Source string
}

// ComparisonResult is the outcome of one site-effect or paired comparison
type ComparisonResult struct {
	RunID      core.RunID                    `json:"run_id"`
	Records    []comparison.ComparisonRecord `json:"records"`
	Skipped    []string                      `json:"skipped"`
	ChartPaths []string                      `json:"chart_paths"`
	ReportPath string                        `json:"report_path,omitempty"`
	RuntimeMs  int64                         `json:"runtime_ms"`
}

// ComparisonService reads the statistics table once and drives extraction,
// console output, charts and report export
type ComparisonService struct {
	reader    ports.TableReader
	extractor *comparison.Extractor
	profiler  *profiling.DataProfiler
	runner    *StageRunner
	opts      ServiceOptions
	runID     core.RunID
	logger    *internal.Logger

	tbl *table.RawTable
}

// NewComparisonService creates a comparison service
func NewComparisonService(reader ports.TableReader, opts ServiceOptions, logger *internal.Logger) *ComparisonService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	runID := core.NewRunID()
	logger = logger.WithField("run_id", runID.String())
	return &ComparisonService{
		reader:    reader,
		extractor: comparison.NewExtractor(nil),
		profiler:  profiling.NewDataProfiler(nil),
		runner:    NewStageRunner(logger),
		opts:      opts,
		runID:     runID,
		logger:    logger.With("comparison"),
	}
}

// RunID identifies this service's invocation
func (s *ComparisonService) RunID() core.RunID {
	return s.runID
}

func (s *ComparisonService) table(ctx context.Context) (*table.RawTable, error) {
	if s.tbl != nil {
		return s.tbl, nil
	}
	tbl, err := s.reader.ReadTable(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Loaded table: %d rows x %d columns", tbl.NumRows(), tbl.NumColumns())
	s.tbl = tbl
	return tbl, nil
}

// Overview prints the dataset summary
func (s *ComparisonService) Overview(ctx context.Context, w io.Writer) (*profiling.Overview, error) {
	tbl, err := s.table(ctx)
	if err != nil {
		return nil, err
	}
	ov := s.profiler.ProfileTable(tbl)
	report.NewConsoleRenderer(w).WriteOverview(ov)
	s.logger.Debug("Overview: %d numeric columns, %d missing cells", len(ov.Describe), ov.TotalMissing())
	return ov, nil
}

// SiteEffect compares Track and Plume for Abundance and Species Richness and
// renders one chart per metric
func (s *ComparisonService) SiteEffect(ctx context.Context, w io.Writer) (*ComparisonResult, error) {
	start := time.Now()
	result, err := s.extract(ctx, comparison.SiteEffectMetrics())
	if err != nil {
		return nil, fmt.Errorf("site effect comparison: %w", err)
	}

	out := report.NewConsoleRenderer(w)
	out.WriteSkipped(result.Skipped)
	if len(result.Records) == 0 {
		out.WriteNoResults()
		result.RuntimeMs = time.Since(start).Milliseconds()
		return result, nil
	}
	out.WriteSiteEffect(result.Records)

	if s.opts.Charts != nil {
		jobs, err := charts.SiteEffectSet(result.Records)
		if err != nil {
			return nil, err
		}
		if result.ChartPaths, err = s.opts.Charts.WriteAll(ctx, jobs); err != nil {
			return nil, fmt.Errorf("site effect charts: %w", err)
		}
		out.WriteChartPaths(result.ChartPaths)
	}

	result.RuntimeMs = time.Since(start).Milliseconds()
	return result, nil
}

// Paired compares Track and Plume for every metric, prints the per-metric blocks
// and results table, then renders the four comparison charts. When no metric
// yields a record the charts and report are skipped.
func (s *ComparisonService) Paired(ctx context.Context, w io.Writer) (*ComparisonResult, error) {
	start := time.Now()
	result, err := s.extract(ctx, comparison.DefaultMetrics())
	if err != nil {
		return nil, fmt.Errorf("paired comparison: %w", err)
	}

	out := report.NewConsoleRenderer(w)
	out.WriteDatasetInfo(s.tbl.NumRows(), comparison.StatColumns(s.tbl.NumColumns()))
	if len(result.Records) == 0 {
		out.WriteSkipped(result.Skipped)
		out.WriteNoResults()
		result.RuntimeMs = time.Since(start).Milliseconds()
		return result, nil
	}

	out.WriteComparisons(result.Records)
	out.WriteResultsTable(result.Records)
	out.WriteSkipped(result.Skipped)

	if s.opts.Charts != nil {
		jobs, err := charts.ComparisonSet(result.Records)
		if err != nil {
			return nil, err
		}
		if result.ChartPaths, err = s.opts.Charts.WriteAll(ctx, jobs); err != nil {
			return nil, fmt.Errorf("comparison charts: %w", err)
		}
	}
	out.WriteLegend()
	out.WriteChartPaths(result.ChartPaths)

	if s.opts.ReportPath != "" {
		doc := report.Document{
			RunID:      s.runID.String(),
			Source:     s.opts.Source,
			Records:    result.Records,
			Skipped:    result.Skipped,
			ChartPaths: result.ChartPaths,
		}
		if err := report.WriteFile(s.opts.ReportPath, doc); err != nil {
			return nil, err
		}
		result.ReportPath = s.opts.ReportPath
		s.logger.Info("Report written to %s", s.opts.ReportPath)
	}

	result.RuntimeMs = time.Since(start).Milliseconds()
	return result, nil
}

// RunAll prints the overview, then the site effect and paired comparisons.
// It returns the paired result.
func (s *ComparisonService) RunAll(ctx context.Context, w io.Writer) (*ComparisonResult, error) {
	var paired *ComparisonResult
	stages := []Stage{
		{Name: "overview", Run: func(ctx context.Context) error {
			_, err := s.Overview(ctx, w)
			return err
		}},
		{Name: "site-effect", Run: func(ctx context.Context) error {
			_, err := s.SiteEffect(ctx, w)
			return err
		}},
		{Name: "paired", Run: func(ctx context.Context) error {
			var err error
			paired, err = s.Paired(ctx, w)
			return err
		}},
	}
	if _, err := s.runner.ExecutePipeline(ctx, stages); err != nil {
		return nil, err
	}
	return paired, nil
}

func (s *ComparisonService) extract(ctx context.Context, specs []comparison.MetricSpec) (*ComparisonResult, error) {
	tbl, err := s.table(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.extractor.Extract(tbl, specs)
	if err != nil {
		return nil, err
	}
	skipped := comparison.Skipped(specs, records)
	for _, name := range skipped {
		s.logger.Warn("Skipping %s: Track or Plume F-value is missing", name)
	}
	s.logger.Debug("Extracted %d of %d metrics", len(records), len(specs))
	return &ComparisonResult{RunID: s.runID, Records: records, Skipped: skipped}, nil
}
