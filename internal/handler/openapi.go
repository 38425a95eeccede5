package handler

import (
	_ "embed"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed static/openapi.json
var openAPISpec []byte

// OpenAPIHandler serves the API description compiled into the binary.
type OpenAPIHandler struct{}

func NewOpenAPIHandler() *OpenAPIHandler {
	return &OpenAPIHandler{}
}

func (h *OpenAPIHandler) ServeOpenAPI(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")
	c.Response().Header().Set(echo.HeaderAccessControlAllowOrigin, corsAllowOrigin)
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, openAPISpec)
}
