package in_mem

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/DjordjeVuckovic/ir-eval/internal/domain"
	"github.com/DjordjeVuckovic/ir-eval/internal/eval/report"
	"github.com/google/uuid"
)

// Source serves tables already held in memory, e.g. decoded from a request body.
type Source struct {
	predictions []domain.PredictionRow
	judgments   []domain.Judgment
}

func NewSource(predictions []domain.PredictionRow, judgments []domain.Judgment) *Source {
	return &Source{predictions: predictions, judgments: judgments}
}

func (s *Source) Predictions(ctx context.Context) ([]domain.PredictionRow, error) {
	return slices.Clone(s.predictions), nil
}

func (s *Source) Judgments(ctx context.Context) ([]domain.Judgment, error) {
	return slices.Clone(s.judgments), nil
}

type InMemStorer struct {
	storageLock sync.RWMutex
	storage     map[uuid.UUID]*report.Report
}

func NewInMemStorer() *InMemStorer {
	return &InMemStorer{
		storage: make(map[uuid.UUID]*report.Report),
	}
}

func (s *InMemStorer) Save(ctx context.Context, r *report.Report) error {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	if r.RunID == uuid.Nil {
		r.RunID = uuid.New()
	}
	s.storage[r.RunID] = r
	slog.Debug("Saved evaluation in memory", "run", r.RunName, "id", r.RunID)

	return nil
}

func (s *InMemStorer) Get(id uuid.UUID) (*report.Report, bool) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	r, ok := s.storage[id]
	return r, ok
}
