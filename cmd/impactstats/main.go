package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/uyouii/automation-impact/analysis"
	"github.com/uyouii/automation-impact/api"
	"github.com/uyouii/automation-impact/common"
	"github.com/uyouii/automation-impact/config"
	"github.com/uyouii/automation-impact/dataset"
	"github.com/uyouii/automation-impact/utils"
	"go.uber.org/zap"
)

type options struct {
	envFile  string
	dataPath string
	student  bool
}

// app is the wiring shared by every command.
type app struct {
	cfg      *config.Config
	cache    *dataset.Cache
	analyzer *analysis.Analyzer
	close    func() error
}

func main() {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "impactstats",
		Short: "Statistics on the impact of automation by economic sector",
		Long: `Load a dataset of automation impact by sector and region and compute
confidence intervals, sector hypothesis tests, region regressions and impact
distributions.

The dataset comes from IMPACT_DATABASE_URL when set, else from IMPACT_DATA_PATH
(or --data), else a builtin five sector sample.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "Load environment from this file instead of .env")
	rootCmd.PersistentFlags().StringVar(&opts.dataPath, "data", "", "CSV or XLSX dataset, overrides IMPACT_DATA_PATH")
	rootCmd.PersistentFlags().BoolVar(&opts.student, "student", false, "Use the pooled variance t-test instead of Welch")

	rootCmd.AddCommand(
		newReportCmd(opts),
		newIntervalCmd(opts),
		newTestCmd(opts),
		newRegressCmd(opts),
		newServeCmd(opts),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newReportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Compute the full report for every sector",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, func(ctx context.Context, a *app) error {
				snap, err := a.cache.Get(ctx)
				if err != nil {
					return err
				}
				report, err := a.analyzer.Report(ctx, snap)
				if err != nil {
					return err
				}
				return printJSON(report)
			})
		},
	}
}

func newIntervalCmd(opts *options) *cobra.Command {
	var level float64

	cmd := &cobra.Command{
		Use:   "interval [sector]",
		Short: "Confidence interval for the mean impact of a sector",
		Long: `Confidence interval for the mean impact of a sector, based on the Student t
distribution.

Example: impactstats interval Technology --confidence 0.99`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkLevelFlag(cmd, "confidence", level); err != nil {
				return err
			}
			return withApp(cmd.Context(), opts, func(ctx context.Context, a *app) error {
				snap, err := a.cache.Get(ctx)
				if err != nil {
					return err
				}
				ci, err := a.analyzer.SectorInterval(ctx, snap, args[0], level)
				if err != nil {
					return err
				}
				return printJSON(ci)
			})
		},
	}

	cmd.Flags().Float64Var(&level, "confidence", 0, "Confidence level, defaults to IMPACT_CONFIDENCE_LEVEL")
	return cmd
}

func newTestCmd(opts *options) *cobra.Command {
	var alpha float64

	cmd := &cobra.Command{
		Use:   "test [sector]",
		Short: "Compare the impact of a sector with every other sector",
		Long: `Two sample t-test of the sector impact against the impact of all other
sectors.

Example: impactstats test Health --alpha 0.01 --student`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkLevelFlag(cmd, "alpha", alpha); err != nil {
				return err
			}
			return withApp(cmd.Context(), opts, func(ctx context.Context, a *app) error {
				snap, err := a.cache.Get(ctx)
				if err != nil {
					return err
				}
				cmp, err := a.analyzer.SectorTest(ctx, snap, args[0], alpha)
				if err != nil {
					return err
				}
				return printJSON(cmp)
			})
		},
	}

	cmd.Flags().Float64Var(&alpha, "alpha", 0, "Significance level, defaults to IMPACT_ALPHA")
	return cmd
}

func newRegressCmd(opts *options) *cobra.Command {
	var encoding string

	cmd := &cobra.Command{
		Use:   "regress",
		Short: "Regress impact on region",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var enc config.Encoding
			if encoding != "" {
				e, err := config.ParseEncoding(encoding)
				if err != nil {
					return err
				}
				enc = e
			}
			return withApp(cmd.Context(), opts, func(ctx context.Context, a *app) error {
				snap, err := a.cache.Get(ctx)
				if err != nil {
					return err
				}
				res, err := a.analyzer.RegionRegression(ctx, snap, enc)
				if err != nil {
					return err
				}
				return printJSON(res)
			})
		},
	}

	cmd.Flags().StringVar(&encoding, "encoding", "", "Region encoding: onehot|ordinal, defaults to IMPACT_ENCODING")
	return cmd
}

func newServeCmd(opts *options) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis as a JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts, func(ctx context.Context, a *app) error {
				if addr == "" {
					addr = a.cfg.Server.ListenAddr
				}
				if _, err := a.cache.Get(ctx); err != nil {
					return err
				}
				return api.NewServer(a.cache, a.analyzer).ListenAndServe(ctx, addr)
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address, defaults to IMPACT_LISTEN_ADDR")
	return cmd
}

func withApp(ctx context.Context, opts *options, fn func(ctx context.Context, a *app) error) error {
	a, err := newApp(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.close(); err != nil {
			utils.GetLogger(ctx).Warn("close dataset source failed", zap.Error(err))
		}
	}()
	return fn(ctx, a)
}

func newApp(ctx context.Context, opts *options) (*app, error) {
	var envFiles []string
	if opts.envFile != "" {
		envFiles = append(envFiles, opts.envFile)
	}
	if err := config.LoadDotEnv(envFiles...); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if opts.dataPath != "" {
		cfg.Data.Path = opts.dataPath
		cfg.Data.DatabaseURL = ""
	}

	if err := utils.InitLogger(cfg.LogLevel); err != nil {
		return nil, err
	}
	logger := utils.GetLogger(ctx)

	source, closeFn, err := openSource(ctx, cfg.Data)
	if err != nil {
		return nil, err
	}
	logger.Info("dataset source selected", zap.String("source", source.Name()))

	analyzer := analysis.NewAnalyzer(cfg.Stats)
	analyzer.EqualVariance = opts.student

	return &app{
		cfg:      cfg,
		cache:    dataset.NewCache(source),
		analyzer: analyzer,
		close:    closeFn,
	}, nil
}

func openSource(ctx context.Context, cfg config.DataConfig) (dataset.Source, func() error, error) {
	noop := func() error { return nil }
	switch {
	case cfg.DatabaseURL != "":
		src, err := dataset.OpenPostgresSource(ctx, cfg.DatabaseURL, cfg.DatabaseTable)
		if err != nil {
			return nil, nil, err
		}
		return src, src.Close, nil
	case cfg.Path != "":
		return dataset.NewFileSource(cfg.Path), noop, nil
	default:
		return dataset.BuiltinSource{}, noop, nil
	}
}

// checkLevelFlag rejects an explicit 0, which the analyzer would read as
// "use the configured level".
func checkLevelFlag(cmd *cobra.Command, name string, v float64) error {
	if cmd.Flags().Changed(name) && v == 0 {
		return fmt.Errorf("%w: --%s 0 is outside (0, 1)", common.ErrorInvalidConfidenceLevel, name)
	}
	return nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
