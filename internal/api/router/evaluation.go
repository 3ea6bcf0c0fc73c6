package router

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/DjordjeVuckovic/ir-eval/internal/apperr"
	"github.com/DjordjeVuckovic/ir-eval/internal/domain"
	"github.com/DjordjeVuckovic/ir-eval/internal/eval/report"
	"github.com/DjordjeVuckovic/ir-eval/internal/eval/runner"
	"github.com/DjordjeVuckovic/ir-eval/internal/storage"
	"github.com/DjordjeVuckovic/ir-eval/internal/storage/in_mem"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	defaultRunName = "api"
	HeaderRunID    = "X-Run-ID"
)

type EvaluationRequest struct {
	Name        string                 `json:"name"`
	Predictions []domain.PredictionRow `json:"predictions"`
	Judgments   []domain.Judgment      `json:"judgments"`
}

func (r *EvaluationRequest) validate() error {
	if len(r.Predictions) == 0 {
		return apperr.NewValidation("predictions are required")
	}
	for i, p := range r.Predictions {
		if p.QueryID == "" || p.DocID == "" {
			return apperr.NewValidationf("predictions[%d]: query_id and doc_id are required", i)
		}
	}
	for i, j := range r.Judgments {
		if j.QueryID == "" || j.DocID == "" {
			return apperr.NewValidationf("judgments[%d]: query_id and doc_id are required", i)
		}
		if j.Relevance < 0 {
			return apperr.NewValidationf("judgments[%d]: relevance must not be negative, got %d", i, j.Relevance)
		}
	}
	return nil
}

type EvaluationRouter struct {
	e      *echo.Echo
	runner *runner.Runner
	store  *in_mem.InMemStorer
	sink   storage.Sink
}

// NewEvaluationRouter serves evaluations computed by r. Every report is kept
// in store for later retrieval and forwarded to sink when it is not nil.
func NewEvaluationRouter(e *echo.Echo, r *runner.Runner, store *in_mem.InMemStorer, sink storage.Sink) *EvaluationRouter {
	return &EvaluationRouter{
		e:      e,
		runner: r,
		store:  store,
		sink:   sink,
	}
}

func (r *EvaluationRouter) Bind() {
	g := r.e.Group("/api/v1/evaluations")
	g.POST("", r.evaluateHandler)
	g.GET("/:id", r.getHandler)
}

func (r *EvaluationRouter) evaluateHandler(c echo.Context) error {
	var req EvaluationRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}
	if err := req.validate(); err != nil {
		return err
	}
	if req.Name == "" {
		req.Name = defaultRunName
	}

	ctx := c.Request().Context()
	rep, err := r.runner.EvaluateSource(ctx, req.Name, in_mem.NewSource(req.Predictions, req.Judgments))
	if err != nil {
		return err
	}

	if err := r.store.Save(ctx, rep); err != nil {
		return fmt.Errorf("store report: %w", err)
	}
	if r.sink != nil {
		if err := r.sink.Save(ctx, rep); err != nil {
			slog.Error("Failed to forward report to result sinks", "run", rep.RunName, "id", rep.RunID, "error", err)
		}
	}

	return writeReport(c, rep)
}

func (r *EvaluationRouter) getHandler(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NewValidationWrap("invalid evaluation id", err)
	}

	rep, ok := r.store.Get(id)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "evaluation not found")
	}
	return writeReport(c, rep)
}

func writeReport(c echo.Context, rep *report.Report) error {
	var buf bytes.Buffer
	if err := report.WriteJSON(rep.Entries, &buf); err != nil {
		return err
	}
	c.Response().Header().Set(HeaderRunID, rep.RunID.String())
	return c.JSONBlob(http.StatusOK, buf.Bytes())
}
