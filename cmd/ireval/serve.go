package main

import (
	"github.com/DjordjeVuckovic/ir-eval/internal/api/health"
	"github.com/DjordjeVuckovic/ir-eval/internal/api/router"
	"github.com/DjordjeVuckovic/ir-eval/internal/api/server"
	"github.com/DjordjeVuckovic/ir-eval/internal/eval/runner"
	"github.com/DjordjeVuckovic/ir-eval/internal/storage"
	"github.com/DjordjeVuckovic/ir-eval/internal/storage/in_mem"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the evaluation HTTP API",
		Long: `Serve POST /api/v1/evaluations, GET /api/v1/evaluations/:id and /health.
PORT, CORS_ORIGINS, USE_HTTP2 and EVAL_WORKERS configure the server;
RESULT_SINKS forwards every report to postgres and/or elasticsearch.`,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := server.LoadConfig()
	if err != nil {
		return err
	}

	sinks, closeSinks, err := envSinks(ctx, cmd)
	if err != nil {
		return err
	}
	defer closeSinks()

	checkers := health.All{health.NewOkChecker()}
	for _, s := range sinks {
		if c, ok := s.(health.Checker); ok {
			checkers = append(checkers, c)
		}
	}

	var sink storage.Sink
	if len(sinks) > 0 {
		sink = sinks
	}

	s := server.NewServer(echo.New(), cfg)
	r := runner.New(runner.Config{Workers: cfg.Workers})

	router.NewHealthRouter(s.Echo, checkers).Bind()
	router.NewEvaluationRouter(s.Echo, r, in_mem.NewInMemStorer(), sink).Bind()

	return s.Start()
}
