package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/DjordjeVuckovic/ir-eval/internal/eval/report"
	"github.com/DjordjeVuckovic/ir-eval/internal/eval/runner"
	"github.com/DjordjeVuckovic/ir-eval/internal/storage"
	"github.com/DjordjeVuckovic/ir-eval/internal/storage/factory"
	"github.com/DjordjeVuckovic/ir-eval/internal/storage/file"
	"github.com/DjordjeVuckovic/ir-eval/pkg/config/env"
	"github.com/spf13/cobra"
)

func addRunnerFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("workers", "w", runtime.NumCPU(), "queries scored concurrently")
	cmd.Flags().Bool("no-progress", false, "disable the progress bar")
}

func runnerConfig(cmd *cobra.Command) runner.Config {
	cfg := runner.DefaultConfig()
	cfg.Workers, _ = cmd.Flags().GetInt("workers")
	noProgress, _ := cmd.Flags().GetBool("no-progress")
	cfg.Progress = !noProgress
	return cfg
}

func loadDotEnv(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("env")
	return env.LoadDotEnv(path)
}

// envSinks opens the result sinks enabled through RESULT_SINKS.
func envSinks(ctx context.Context, cmd *cobra.Command) (storage.MultiSink, func(), error) {
	if err := loadDotEnv(cmd); err != nil {
		return nil, func() {}, err
	}
	cfg, err := factory.LoadEnv()
	if err != nil {
		return nil, func() {}, fmt.Errorf("load result sinks: %w", err)
	}
	return factory.NewSinks(ctx, cfg)
}

func pgConnString(cmd *cobra.Command) (string, error) {
	conn, _ := cmd.Flags().GetString("pg")
	if conn != "" {
		return conn, nil
	}
	if err := loadDotEnv(cmd); err != nil {
		return "", err
	}
	conn = env.GetOr("PG_CONNECTION_STRING", "")
	if conn == "" {
		return "", fmt.Errorf("postgres connection string missing: use --pg or PG_CONNECTION_STRING")
	}
	return conn, nil
}

// persist hands every report to the external sinks first and writes the
// result files last, so a sink failure leaves no file behind.
func persist(ctx context.Context, reports []*report.Report, outputs []string, external storage.Sink) error {
	if external != nil {
		for _, rep := range reports {
			if err := external.Save(ctx, rep); err != nil {
				return fmt.Errorf("save %s: %w", rep.RunName, err)
			}
		}
	}

	for i, rep := range reports {
		if err := os.MkdirAll(filepath.Dir(outputs[i]), 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		if err := file.NewJSONSink(outputs[i]).Save(ctx, rep); err != nil {
			return err
		}
	}
	return nil
}
