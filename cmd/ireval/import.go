package main

import (
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/ir-eval/internal/reader"
	"github.com/DjordjeVuckovic/ir-eval/internal/storage/file"
	"github.com/DjordjeVuckovic/ir-eval/internal/storage/pg"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load a run and/or judgments into postgres",
		Example: `  ireval import --predictions runs/bm25 --run bm25
  ireval import --judgments truth --sep tab`,
		RunE: runImport,
	}

	cmd.Flags().StringP("predictions", "p", "", "predictions file to import")
	cmd.Flags().String("run", "", "name the imported predictions are stored under")
	cmd.Flags().StringP("judgments", "j", "", "judgments file to import, replaces the stored judgments")
	cmd.Flags().String("sep", " ", "column separator")
	cmd.Flags().String("pg", "", "postgres connection string (default PG_CONNECTION_STRING)")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	predictions, _ := cmd.Flags().GetString("predictions")
	judgments, _ := cmd.Flags().GetString("judgments")
	run, _ := cmd.Flags().GetString("run")

	if predictions == "" && judgments == "" {
		return fmt.Errorf("nothing to import: use --predictions and/or --judgments")
	}
	if predictions != "" && run == "" {
		return fmt.Errorf("--run is required with --predictions")
	}

	sepFlag, _ := cmd.Flags().GetString("sep")
	sep, err := reader.ParseSeparator(sepFlag)
	if err != nil {
		return err
	}

	conn, err := pgConnString(cmd)
	if err != nil {
		return err
	}
	pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{ConnStr: conn})
	if err != nil {
		return err
	}
	defer pool.Close()

	src := file.NewSource(predictions, judgments, sep)
	im := pg.NewImporter(pool)

	if predictions != "" {
		rows, err := src.Predictions(ctx)
		if err != nil {
			return err
		}
		if _, err := im.ImportPredictions(ctx, run, rows); err != nil {
			return err
		}
	}

	if judgments != "" {
		rows, err := src.Judgments(ctx)
		if err != nil {
			return err
		}
		if _, err := im.ImportJudgments(ctx, rows); err != nil {
			return err
		}
	}

	slog.Info("Import finished", "run", run)
	return nil
}
