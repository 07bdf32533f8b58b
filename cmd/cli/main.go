package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"trackplume/adapters/excel"
	"trackplume/app"
	"trackplume/domain/core"
	"trackplume/internal"
	"trackplume/internal/charts"
	"trackplume/internal/config"
	"trackplume/internal/errors"

	"github.com/spf13/cobra"
)

// options holds the flags shared by every subcommand
type options struct {
	file      string
	sheet     string
	chartsDir string
	noCharts  bool
	report    string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if core.IsInputError(err) || errors.GetCode(err) == errors.CodeNotFound {
			fmt.Fprintln(os.Stderr, "Hint: point --file or DATASET_FILE at the statistics workbook")
		}
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "trackplume",
		Short: "Compare Track and Plume site effects from a workbook of ANOVA statistics",
		Long: `Reads pre-computed F-values and p-values for Track and Plume sites from a
spreadsheet, prints the comparison and renders bar charts.

Configuration is read from the environment (and .env when present):
- DATASET_FILE (default: Dataset.xlsx next to the executable, else the working directory)
- DATASET_SHEET (default: first sheet)
- CHART_DIR (default: charts)
- CHARTS_ENABLED (default: true)
- LOG_LEVEL (ERROR, WARN, INFO, DEBUG, TRACE)
- ENV=production for JSON logs

Flags override the environment.`,
		SilenceUsage: true,
	}
	rootCmd.SetOut(out)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.file, "file", "f", "", "Workbook (.xlsx, .xlsm) or CSV file to read")
	flags.StringVar(&opts.sheet, "sheet", "", "Sheet name (default: first sheet)")
	flags.StringVar(&opts.chartsDir, "charts-dir", "", "Directory for PNG charts")
	flags.BoolVar(&opts.noCharts, "no-charts", false, "Skip chart rendering")
	flags.StringVar(&opts.report, "report", "", "Export paired results to a .md or .html file")

	rootCmd.AddCommand(
		newOverviewCmd(opts),
		newSiteEffectCmd(opts),
		newPairedCmd(opts),
		newAllCmd(opts),
	)
	return rootCmd
}

func newOverviewCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Print dataset shape, preview, column info, statistics and correlations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.service(cmd)
			if err != nil {
				return err
			}
			_, err = svc.Overview(cmd.Context(), cmd.OutOrStdout())
			return err
		},
	}
}

func newSiteEffectCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "site-effect",
		Short: "Compare Track vs Plume for Abundance and Species Richness",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.service(cmd)
			if err != nil {
				return err
			}
			_, err = svc.SiteEffect(cmd.Context(), cmd.OutOrStdout())
			return err
		},
	}
}

func newPairedCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "paired",
		Short: "Compare Track vs Plume for all four diversity metrics",
		Long: `Extracts F and p for Abundance, Species Richness, Gini-Simpson Diversity and
Simpson's Evenness, prints each comparison and a results table, then renders
the F-value, p-value, F-difference and significance charts.

Metrics with a missing Track or Plume F-value are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.service(cmd)
			if err != nil {
				return err
			}
			_, err = svc.Paired(cmd.Context(), cmd.OutOrStdout())
			return err
		},
	}
}

func newAllCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run overview, site-effect and paired in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.service(cmd)
			if err != nil {
				return err
			}
			_, err = svc.RunAll(cmd.Context(), cmd.OutOrStdout())
			return err
		},
	}
}

// service loads configuration, applies flag overrides and wires the comparison service
func (o *options) service(cmd *cobra.Command) (*app.ComparisonService, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	o.apply(cmd, cfg)

	logger := internal.NewEnvLogger(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Env)
	logger.Debug("Using dataset %s (sheet %q)", cfg.Data.File, cfg.Data.Sheet)

	reader := excel.NewDataReader(excel.ExcelConfig{FilePath: cfg.Data.File, Sheet: cfg.Data.Sheet}, logger)

	svcOpts := app.ServiceOptions{ReportPath: o.report, Source: cfg.Data.File}
	if cfg.Charts.Enabled {
		svcOpts.Charts = charts.NewWriter(cfg.Charts.Dir, logger)
	}
	return app.NewComparisonService(reader, svcOpts, logger), nil
}

func (o *options) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("file") {
		cfg.Data.File = o.file
	}
	if flags.Changed("sheet") {
		cfg.Data.Sheet = o.sheet
	}
	if flags.Changed("charts-dir") {
		cfg.Charts.Dir = o.chartsDir
	}
	if o.noCharts {
		cfg.Charts.Enabled = false
	}
}
