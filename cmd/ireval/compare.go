package main

import (
	"os"

	"github.com/DjordjeVuckovic/ir-eval/internal/eval/report"
	"github.com/DjordjeVuckovic/ir-eval/internal/eval/runner"
	"github.com/DjordjeVuckovic/ir-eval/internal/eval/spec"
	"github.com/spf13/cobra"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Evaluate every run of a comparison spec and print them side by side",
		Example: `  ireval compare --spec configs/compare.yaml`,
		RunE:    runCompare,
	}

	cmd.Flags().StringP("spec", "s", "", "comparison spec (YAML)")
	_ = cmd.MarkFlagRequired("spec")
	addRunnerFlags(cmd)

	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	specPath, _ := cmd.Flags().GetString("spec")
	cs, err := spec.LoadFromFile(specPath)
	if err != nil {
		return err
	}

	reports, err := runner.New(runnerConfig(cmd)).Compare(ctx, cs, runner.FileSources)
	if err != nil {
		return err
	}

	extra, closeSinks, err := envSinks(ctx, cmd)
	if err != nil {
		return err
	}
	defer closeSinks()

	outputs := make([]string, len(reports))
	for i := range reports {
		outputs[i] = cs.OutputPath(cs.Runs[i])
	}
	if err := persist(ctx, reports, outputs, extra); err != nil {
		return err
	}

	report.WriteTable(reports, os.Stdout)
	return nil
}
