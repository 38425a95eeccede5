// Package router builds the echo instance: global middleware in order, the
// action endpoint and the system routes.
package router

import (
	"github.com/pr-poehali-dev/internal-employee-app/internal/handler"
	"github.com/pr-poehali-dev/internal-employee-app/internal/middleware"
	"github.com/pr-poehali-dev/internal-employee-app/internal/server"

	"github.com/labstack/echo/v4"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// RequestID before ContextEnhancer so the logger carries it; tracing
	// before ContextEnhancer so trace ids land on the logger too.
	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.BodyLimit(),
	)

	registerSystemRoutes(router, h)
	registerActionRoutes(router, h)

	return router
}

// registerActionRoutes mounts the action endpoint. Every method reaches it
// so OPTIONS and unknown methods get the action handler's answers.
func registerActionRoutes(r *echo.Echo, h *handler.Handlers) {
	r.Any("/", h.Action.Serve)
	r.Any("/api", h.Action.Serve)
}
