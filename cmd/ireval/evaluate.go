package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/DjordjeVuckovic/ir-eval/internal/eval/report"
	"github.com/DjordjeVuckovic/ir-eval/internal/eval/runner"
	"github.com/DjordjeVuckovic/ir-eval/internal/reader"
	"github.com/DjordjeVuckovic/ir-eval/internal/storage"
	"github.com/DjordjeVuckovic/ir-eval/internal/storage/factory"
	"github.com/DjordjeVuckovic/ir-eval/internal/storage/file"
	"github.com/DjordjeVuckovic/ir-eval/internal/storage/pg"
	"github.com/spf13/cobra"
)

func evaluateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate one run",
		Long: `Evaluate one run read from delimited files, or from postgres with --run.
The result array is written to --output, by default next to the predictions
file with the extension replaced by -evaluation_result.json.`,
		Example: `  ireval evaluate --predictions runs/bm25 --judgments truth
  ireval evaluate --predictions runs/bm25.tsv --judgments truth.yaml --sep '\t' --table
  ireval evaluate --run bm25 --pg postgres://localhost:5432/ireval`,
		RunE: runEvaluate,
	}

	cmd.Flags().StringP("predictions", "p", "", "predictions file (query_ids, doc_ids)")
	cmd.Flags().StringP("judgments", "j", "", "judgments file (query_ids, doc_ids, relevance) or YAML judgment file")
	cmd.Flags().String("sep", " ", `column separator ("space", "tab", "\t", "comma" or one character)`)
	cmd.Flags().StringP("output", "o", "", "result file path")
	cmd.Flags().Bool("table", false, "print a summary table to stdout")
	cmd.Flags().String("run", "", "evaluate the run stored in postgres under this name")
	cmd.Flags().String("pg", "", "postgres connection string (default PG_CONNECTION_STRING)")
	addRunnerFlags(cmd)

	return cmd
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	src, name, output, closeSrc, err := evaluateSource(ctx, cmd)
	if err != nil {
		return err
	}
	defer closeSrc()

	rep, err := runner.New(runnerConfig(cmd)).EvaluateSource(ctx, name, src)
	if err != nil {
		return err
	}

	extra, closeSinks, err := envSinks(ctx, cmd)
	if err != nil {
		return err
	}
	defer closeSinks()

	if err := persist(ctx, []*report.Report{rep}, []string{output}, extra); err != nil {
		return err
	}

	if table, _ := cmd.Flags().GetBool("table"); table {
		report.WriteTable([]*report.Report{rep}, os.Stdout)
	}
	return nil
}

func evaluateSource(ctx context.Context, cmd *cobra.Command) (storage.Source, string, string, func(), error) {
	output, _ := cmd.Flags().GetString("output")

	if run, _ := cmd.Flags().GetString("run"); run != "" {
		conn, err := pgConnString(cmd)
		if err != nil {
			return nil, "", "", nil, err
		}
		src, closeSrc, err := factory.NewPGSource(ctx, pg.PoolConfig{ConnStr: conn}, run)
		if err != nil {
			return nil, "", "", nil, err
		}
		if output == "" {
			output = run + report.OutputSuffix
		}
		return src, run, output, closeSrc, nil
	}

	predictions, _ := cmd.Flags().GetString("predictions")
	judgments, _ := cmd.Flags().GetString("judgments")
	if predictions == "" || judgments == "" {
		return nil, "", "", nil, fmt.Errorf("--predictions and --judgments are required unless --run is given")
	}

	sepFlag, _ := cmd.Flags().GetString("sep")
	sep, err := reader.ParseSeparator(sepFlag)
	if err != nil {
		return nil, "", "", nil, err
	}

	if output == "" {
		output = report.DefaultOutputPath(predictions)
	}
	return file.NewSource(predictions, judgments, sep), filepath.Base(predictions), output, func() {}, nil
}
