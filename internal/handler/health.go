package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/pr-poehali-dev/internal-employee-app/internal/middleware"
	"github.com/pr-poehali-dev/internal-employee-app/internal/server"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const (
	CheckDatabase = "database"
	CheckRedis    = "redis"
)

// HealthHandler serves GET /status.
type HealthHandler struct {
	server *server.Server
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{server: s}
}

type checkResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time,omitempty"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]checkResult `json:"checks"`
}

// CheckHealth returns 200 when every configured check passes, 503 otherwise.
// A dependency that is not configured is reported as "disabled". Redis
// failures are reported but never fail the check.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	log := middleware.GetLogger(c).With().Str("operation", "health_check").Logger()

	checksCfg := h.server.Config.Observability.HealthChecks

	response := healthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]checkResult),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), checksCfg.Timeout)
	defer cancel()

	if checksCfg.Has(CheckDatabase) {
		if h.server.DB == nil {
			response.Checks[CheckDatabase] = checkResult{Status: "disabled"}
		} else {
			result := h.probe(ctx, &log, CheckDatabase, func(ctx context.Context) error {
				return h.server.DB.Pool.Ping(ctx)
			})
			response.Checks[CheckDatabase] = result
			if result.Status != "healthy" {
				response.Status = "unhealthy"
			}
		}
	}

	if checksCfg.Has(CheckRedis) {
		if h.server.Redis == nil {
			response.Checks[CheckRedis] = checkResult{Status: "disabled"}
		} else {
			response.Checks[CheckRedis] = h.probe(ctx, &log, CheckRedis, func(ctx context.Context) error {
				return h.server.Redis.Ping(ctx).Err()
			})
		}
	}

	if response.Status != "healthy" {
		log.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	log.Debug().Dur("total_duration", time.Since(start)).Msg("health check passed")
	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) probe(ctx context.Context, log *zerolog.Logger, name string, ping func(context.Context) error) checkResult {
	start := time.Now()
	err := ping(ctx)
	elapsed := time.Since(start)

	if err != nil {
		log.Error().Err(err).Str("check", name).Dur("response_time", elapsed).Msg("health check failed")

		if app := h.server.LoggerService.GetApplication(); app != nil {
			app.RecordCustomEvent("HealthCheckError", map[string]interface{}{
				"check_type":       name,
				"operation":        "health_check",
				"error_type":       name + "_unhealthy",
				"response_time_ms": elapsed.Milliseconds(),
				"error_message":    err.Error(),
			})
		}

		return checkResult{Status: "unhealthy", ResponseTime: elapsed.String(), Error: err.Error()}
	}

	return checkResult{Status: "healthy", ResponseTime: elapsed.String()}
}
