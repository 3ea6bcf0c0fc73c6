package storage

import (
	"context"

	"github.com/DjordjeVuckovic/ir-eval/internal/eval/report"
)

// Sink persists a finished evaluation. Sinks only ever receive complete
// reports; a failed evaluation writes nothing.
type Sink interface {
	Save(ctx context.Context, r *report.Report) error
}

type Type string

const (
	ES    Type = "es"
	PG    Type = "pg"
	File  Type = "file"
	InMem Type = "in_mem"
)

type StorerError string

const (
	ErrUnsupportedStorer StorerError = "unsupported storer type: %s"
)

func (e StorerError) Error() string {
	return string(e)
}

// MultiSink fans a report out to several sinks, stopping at the first failure.
type MultiSink []Sink

func (m MultiSink) Save(ctx context.Context, r *report.Report) error {
	for _, s := range m {
		if err := s.Save(ctx, r); err != nil {
			return err
		}
	}
	return nil
}
