package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pr-poehali-dev/internal-employee-app/internal/config"
	"github.com/pr-poehali-dev/internal-employee-app/internal/handler"
	"github.com/pr-poehali-dev/internal-employee-app/internal/repository"
	"github.com/pr-poehali-dev/internal-employee-app/internal/server"
	"github.com/pr-poehali-dev/internal-employee-app/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter wires the real stack without a database or Redis.
func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()

	log := zerolog.Nop()
	s := &server.Server{
		Config: config.Default(),
		Logger: &log,
	}

	services := service.NewServices(s, repository.NewRepositories())
	handlers, err := handler.NewHandlers(s, services)
	require.NoError(t, err)

	return NewRouter(s, handlers)
}

func serve(r *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestPreflight(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{"/", "/api"} {
		rec := serve(r, http.MethodOptions, path+"?action=create_order", "")

		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Empty(t, rec.Body.String(), path)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "Content-Type, X-User-Id, X-Auth-Token", rec.Header().Get("Access-Control-Allow-Headers"))
		assert.Equal(t, "86400", rec.Header().Get("Access-Control-Max-Age"))
	}
}

func TestActionWithoutDatabase(t *testing.T) {
	r := newTestRouter(t)

	rec := serve(r, http.MethodPost, "/api?action=create_order",
		`{"user_id":1,"items":[{"product_id":1,"quantity":3,"unit":"pcs"}]}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "application/json")
	assert.JSONEq(t, `{"error":"DATABASE_URL not configured"}`, rec.Body.String())
}

func TestUnknownPathIsNotFound(t *testing.T) {
	r := newTestRouter(t)

	rec := serve(r, http.MethodGet, "/nowhere", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.JSONEq(t, `{"error":"Not found"}`, rec.Body.String())
}

func TestRequestIDIsEchoed(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))

	rec = serve(r, http.MethodOptions, "/", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestStatusWithoutBackingServices(t *testing.T) {
	r := newTestRouter(t)

	rec := serve(r, http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status string `json:"status"`
		Checks map[string]struct {
			Status string `json:"status"`
		} `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "disabled", body.Checks["database"].Status)
	assert.Equal(t, "disabled", body.Checks["redis"].Status)
}

func TestDocs(t *testing.T) {
	r := newTestRouter(t)

	rec := serve(r, http.MethodGet, "/docs", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "3.0.3", doc["openapi"])
}

func TestOversizedChunkedBodyIsRejected(t *testing.T) {
	r := newTestRouter(t)

	body := `{"name":"` + strings.Repeat("x", 2<<20) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/?action=create_product", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	// Unknown length, so the limit trips while the action reads the body.
	req.ContentLength = -1
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.JSONEq(t, `{"error":"Request Entity Too Large"}`, rec.Body.String())
}
