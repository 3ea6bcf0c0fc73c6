package factory

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/ir-eval/internal/storage"
	"github.com/DjordjeVuckovic/ir-eval/internal/storage/es"
	"github.com/DjordjeVuckovic/ir-eval/internal/storage/pg"
)

// NewSinks builds every sink enabled in cfg. The returned close func releases
// the connections held by the sinks and is safe to call when err != nil.
func NewSinks(ctx context.Context, cfg *SinkConfig) (storage.MultiSink, func(), error) {
	var (
		sinks   storage.MultiSink
		closers []func()
	)
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}
	if cfg == nil {
		return nil, closeAll, nil
	}

	for _, t := range cfg.Types {
		switch t {
		case storage.PG:
			pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
			if err != nil {
				closeAll()
				return nil, func() {}, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
			}
			closers = append(closers, pool.Close)
			sinks = append(sinks, pg.NewSink(pool))

		case storage.ES:
			sink, err := es.NewSink(ctx, *cfg.Es)
			if err != nil {
				closeAll()
				return nil, func() {}, fmt.Errorf("failed to create Elasticsearch sink: %w", err)
			}
			sinks = append(sinks, sink)

		default:
			closeAll()
			return nil, func() {}, fmt.Errorf(string(storage.ErrUnsupportedStorer), t)
		}
	}

	return sinks, closeAll, nil
}

// NewPGSource connects to postgres and reads the stored run runName.
func NewPGSource(ctx context.Context, cfg pg.PoolConfig, runName string) (storage.Source, func(), error) {
	pool, err := pg.NewConnectionPool(ctx, cfg)
	if err != nil {
		return nil, func() {}, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
	}
	return pg.NewSource(pool, runName), pool.Close, nil
}
