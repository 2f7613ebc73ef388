package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/okian/ignite/internal/adapters/dataset"
	app "github.com/okian/ignite/internal/app"
	"github.com/okian/ignite/internal/config"
	"github.com/okian/ignite/internal/domain/types"
	"github.com/okian/ignite/internal/sampledata"
	"github.com/okian/ignite/internal/server"
	"github.com/okian/ignite/pkg/logger"
)

// Output formats accepted by train --format.
const (
	formatYAML = "yaml"
	formatJSON = "json"
)

// trainOutput is what train prints.
type trainOutput struct {
	Report     app.Report         `json:"report" yaml:"report"`
	TopRisks   []types.RiskEntry  `json:"top_risks" yaml:"top_risks"`
	Importance []types.Importance `json:"importance" yaml:"importance"`
}

func newRootCmd() *cobra.Command {
	var logLevel string
	root := &cobra.Command{
		Use:          "ignite",
		Short:        "Employee turnover risk and engagement analytics",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("log-level") {
				return nil
			}
			return logger.SetLevelString(logLevel)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	root.AddCommand(newGenerateCmd(), newTrainCmd(), newServeCmd())
	return root
}

func newGenerateCmd() *cobra.Command {
	var (
		out       string
		employees int
		seed      int64
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a seeded sample population as employees.csv, surveys.csv and metrics.csv",
		RunE: func(cmd *cobra.Command, args []string) error {
			if employees < 1 {
				return fmt.Errorf("--employees must be positive, got %d", employees)
			}
			ctx := cmd.Context()
			ds := sampledata.New(
				sampledata.WithEmployees(employees),
				sampledata.WithSeed(seed),
				sampledata.WithAsOf(time.Now().UTC().Truncate(time.Second)),
			).Generate(ctx)
			if err := dataset.SaveDir(ctx, out, ds); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d employees to %s\n", len(ds.Employees), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "data", "output directory")
	cmd.Flags().IntVar(&employees, "employees", 100, "number of employees")
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed")
	return cmd
}

func newTrainCmd() *cobra.Command {
	var (
		dataDir string
		format  string
		top     int
		seed    int64
		trees   int
	)
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train both models and print their metrics, the riskiest employees and feature importance",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatYAML && format != formatJSON {
				return fmt.Errorf("--format must be %q or %q, got %q", formatYAML, formatJSON, format)
			}
			ctx := cmd.Context()
			cfg, err := config.Load(ctx)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("data") {
				cfg.DataDir = dataDir
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = seed
			}
			if cmd.Flags().Changed("trees") {
				cfg.ForestTrees = trees
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			svc := app.New(app.WithConfig(cfg), app.WithLogger(logger.Named("service")))
			report, err := svc.Initialize(ctx)
			if err != nil {
				return err
			}
			risks, err := svc.TopRisks(ctx, top)
			if err != nil {
				return err
			}
			imps, err := svc.Importance(ctx)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), format, trainOutput{
				Report:     report,
				TopRisks:   risks,
				Importance: imps,
			})
		},
	}
	cmd.Flags().StringVar(&dataDir, "data", "", "directory with employees.csv, surveys.csv and metrics.csv (default: generated sample)")
	cmd.Flags().StringVar(&format, "format", formatYAML, "output format: yaml or json")
	cmd.Flags().IntVar(&top, "top", 10, "number of riskiest employees to print")
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed")
	cmd.Flags().IntVar(&trees, "trees", 100, "trees in the turnover forest")
	return cmd
}

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Train on startup and serve the risk read API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load(ctx)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			svc := app.New(app.WithConfig(cfg), app.WithLogger(logger.Named("service")))
			if _, err := svc.Initialize(ctx); err != nil {
				return err
			}
			return server.Run(ctx, server.New(ctx, cfg, svc))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":9080", "listen address")
	return cmd
}

func writeOutput(w io.Writer, format string, v any) error {
	if format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
