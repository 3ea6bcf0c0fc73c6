package server

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/DjordjeVuckovic/ir-eval/pkg/config/env"
	"github.com/DjordjeVuckovic/ir-eval/pkg/utils"
)

const DefaultDotEnvPath = ".env"

type Config struct {
	Port        string
	UseHttp2    bool
	CorsOrigins []string
	// Workers bounds per-request query scoring.
	Workers int
}

func LoadConfig() (*Config, error) {
	if err := env.LoadDotEnv(DefaultDotEnvPath); err != nil {
		slog.Info("Skipping .env ...", "error", err)
	}

	port := env.GetOr("PORT", "8080")
	if err := validatePort(port); err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}

	origins := utils.SplitList(os.Getenv("CORS_ORIGINS"))
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	workers := 0
	if v := os.Getenv("EVAL_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid EVAL_WORKERS %q", v)
		}
		workers = n
	}

	return &Config{
		Port:        port,
		UseHttp2:    os.Getenv("USE_HTTP2") == "true",
		CorsOrigins: origins,
		Workers:     workers,
	}, nil
}

func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return errors.New("port must be a number")
	}
	if portNum < 1 || portNum > 65535 {
		return errors.New("port must be between 1 and 65535")
	}
	return nil
}
