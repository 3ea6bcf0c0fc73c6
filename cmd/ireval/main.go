package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ireval",
		Short: "Score ranked retrieval runs against relevance judgments",
		Long: `ireval computes per-query and summary IR metrics (Precision@1..100,
Recall, MRR, AP, NDCG@10, NDCG@20, NDCG) for a run of ranked predictions
scored against graded relevance judgments.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				slog.SetLogLoggerLevel(slog.LevelDebug)
			}
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().String("env", ".env", "path of the .env file (ENV_PATH overrides)")

	rootCmd.AddCommand(
		evaluateCmd(),
		compareCmd(),
		importCmd(),
		serveCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		slog.Error("ireval failed", "error", err)
		os.Exit(1)
	}
}
