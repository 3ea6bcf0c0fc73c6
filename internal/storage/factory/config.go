package factory

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/DjordjeVuckovic/ir-eval/internal/storage"
	"github.com/DjordjeVuckovic/ir-eval/internal/storage/es"
	"github.com/DjordjeVuckovic/ir-eval/internal/storage/pg"
	"github.com/DjordjeVuckovic/ir-eval/pkg/utils"
)

const DefaultIndexName = "ir-evaluations"

// SinkConfig lists the result sinks enabled through RESULT_SINKS together
// with their connection settings.
type SinkConfig struct {
	Types []storage.Type
	Pg    *pg.PoolConfig
	Es    *es.ClientConfig
}

func (c *SinkConfig) Enabled(t storage.Type) bool {
	return c != nil && slices.Contains(c.Types, t)
}

func LoadEnv() (*SinkConfig, error) {
	cfg := &SinkConfig{}
	for _, v := range utils.SplitList(os.Getenv("RESULT_SINKS")) {
		t := storage.Type(v)
		if t != storage.PG && t != storage.ES {
			slog.Error("Invalid RESULT_SINKS value", "value", v)
			return nil, fmt.Errorf("invalid RESULT_SINKS value: %s, expected any of %v", v, []storage.Type{storage.PG, storage.ES})
		}
		if !slices.Contains(cfg.Types, t) {
			cfg.Types = append(cfg.Types, t)
		}
	}

	if cfg.Enabled(storage.PG) {
		cfg.Pg = &pg.PoolConfig{ConnStr: os.Getenv("PG_CONNECTION_STRING")}
		if cfg.Pg.ConnStr == "" {
			slog.Error("PostgreSQL connection string is not set")
			return nil, fmt.Errorf("PG_CONNECTION_STRING is required when the pg sink is enabled")
		}
	}

	if cfg.Enabled(storage.ES) {
		cfg.Es = &es.ClientConfig{
			Addresses: utils.SplitList(os.Getenv("ES_ADDRESSES")),
			IndexName: os.Getenv("ES_INDEX_NAME"),
			Username:  os.Getenv("ES_USERNAME"),
			Password:  os.Getenv("ES_PASSWORD"),
		}
		if cfg.Es.IndexName == "" {
			cfg.Es.IndexName = DefaultIndexName
		}
		if len(cfg.Es.Addresses) == 0 {
			slog.Error("Elasticsearch configuration is incomplete", "addresses", cfg.Es.Addresses)
			return nil, fmt.Errorf("ES_ADDRESSES is required when the es sink is enabled")
		}
	}

	return cfg, nil
}
