package router

import (
	"net/http"

	"github.com/DjordjeVuckovic/ir-eval/internal/api/health"
	"github.com/labstack/echo/v4"
)

type HealthRouter struct {
	e       *echo.Echo
	checker health.Checker
}

func NewHealthRouter(e *echo.Echo, checker health.Checker) *HealthRouter {
	return &HealthRouter{e: e, checker: checker}
}

func (r *HealthRouter) Bind() {
	r.e.GET("/health", r.healthHandler)
}

func (r *HealthRouter) healthHandler(c echo.Context) error {
	if !r.checker.Healthy(c.Request().Context()) {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
