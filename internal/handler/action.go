package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pr-poehali-dev/internal-employee-app/internal/config"
	"github.com/pr-poehali-dev/internal-employee-app/internal/database"
	"github.com/pr-poehali-dev/internal-employee-app/internal/errs"
	"github.com/pr-poehali-dev/internal-employee-app/internal/logger"
	"github.com/pr-poehali-dev/internal-employee-app/internal/model"
	"github.com/pr-poehali-dev/internal-employee-app/internal/sqlerr"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Action is the value of the "action" query parameter.
type Action string

const (
	ActionLogin         Action = "login"
	ActionProducts      Action = "products"
	ActionCreateProduct Action = "create_product"
	ActionUpdateProduct Action = "update_product"
	ActionOrders        Action = "orders"
	ActionCreateOrder   Action = "create_order"
	ActionUpdateOrder   Action = "update_order"
)

// RouteKey identifies one operation.
type RouteKey struct {
	Method string
	Action Action
}

func (k RouteKey) String() string {
	return k.Method + " " + string(k.Action)
}

// Actions lists every supported operation. The route table must match it exactly.
var Actions = []RouteKey{
	{Method: http.MethodPost, Action: ActionLogin},
	{Method: http.MethodGet, Action: ActionProducts},
	{Method: http.MethodPost, Action: ActionCreateProduct},
	{Method: http.MethodPut, Action: ActionUpdateProduct},
	{Method: http.MethodGet, Action: ActionOrders},
	{Method: http.MethodPost, Action: ActionCreateOrder},
	{Method: http.MethodPut, Action: ActionUpdateOrder},
}

const (
	NotFoundMessage = "Not found"

	corsAllowOrigin  = "*"
	corsAllowMethods = "GET, POST, PUT, DELETE, OPTIONS"
	corsAllowHeaders = "Content-Type, X-User-Id, X-Auth-Token"
	corsMaxAge       = "86400"
)

// ActionHandler dispatches normalized requests to the seven operations.
type ActionHandler struct {
	configured    bool
	logger        *zerolog.Logger
	slowThreshold time.Duration

	auth     AuthService
	products ProductService
	orders   OrderService

	routes map[RouteKey]ActionFunc
}

// NewActionHandler builds the route table and fails when it does not cover
// Actions exactly.
func NewActionHandler(
	cfg *config.Config,
	logger *zerolog.Logger,
	auth AuthService,
	products ProductService,
	orders OrderService,
) (*ActionHandler, error) {
	if auth == nil || products == nil || orders == nil {
		return nil, errors.New("action handler requires auth, product and order services")
	}

	h := &ActionHandler{
		configured: cfg.Database.Configured(),
		logger:     logger,
		auth:       auth,
		products:   products,
		orders:     orders,
	}
	if cfg.Observability != nil {
		h.slowThreshold = cfg.Observability.Logging.SlowQueryThreshold
	}

	h.routes = h.routeTable()
	if err := checkRoutes(h.routes); err != nil {
		return nil, err
	}

	return h, nil
}

func (h *ActionHandler) routeTable() map[RouteKey]ActionFunc {
	return map[RouteKey]ActionFunc{
		{Method: http.MethodPost, Action: ActionLogin}: Handle(h, string(ActionLogin), h.login,
			func() *model.LoginRequest { return &model.LoginRequest{} }),
		{Method: http.MethodGet, Action: ActionProducts}: Handle(h, string(ActionProducts), h.listProducts,
			func() *model.ListProductsRequest { return &model.ListProductsRequest{} }),
		{Method: http.MethodPost, Action: ActionCreateProduct}: Handle(h, string(ActionCreateProduct), h.createProduct,
			func() *model.CreateProductRequest { return &model.CreateProductRequest{} }),
		{Method: http.MethodPut, Action: ActionUpdateProduct}: Handle(h, string(ActionUpdateProduct), h.updateProduct,
			func() *model.UpdateProductRequest { return &model.UpdateProductRequest{} }),
		{Method: http.MethodGet, Action: ActionOrders}: Handle(h, string(ActionOrders), h.listOrders,
			func() *model.ListOrdersRequest { return &model.ListOrdersRequest{} }),
		{Method: http.MethodPost, Action: ActionCreateOrder}: Handle(h, string(ActionCreateOrder), h.createOrder,
			func() *model.CreateOrderRequest { return &model.CreateOrderRequest{} }),
		{Method: http.MethodPut, Action: ActionUpdateOrder}: Handle(h, string(ActionUpdateOrder), h.updateOrder,
			func() *model.UpdateOrderRequest { return &model.UpdateOrderRequest{} }),
	}
}

func checkRoutes(routes map[RouteKey]ActionFunc) error {
	for _, key := range Actions {
		if routes[key] == nil {
			return fmt.Errorf("no handler registered for %s", key)
		}
	}
	if len(routes) != len(Actions) {
		return fmt.Errorf("route table has %d entries, expected %d", len(routes), len(Actions))
	}
	return nil
}

// Dispatch answers one request. It never returns nil.
func (h *ActionHandler) Dispatch(ctx context.Context, req *model.Request) *model.Response {
	method := strings.ToUpper(strings.TrimSpace(req.HTTPMethod))
	if method == "" {
		method = http.MethodGet
	}

	if method == http.MethodOptions {
		return preflightResponse()
	}

	action := req.Query("action")
	log := logger.FromContext(ctx, h.logger).With().
		Str("http_method", method).
		Str("action", action).
		Logger()
	ctx = log.WithContext(ctx)

	if !h.configured {
		return h.errorResponse(&log, nil, errs.NewConfigError(database.ErrNotConfigured.Error()))
	}

	route, ok := h.routes[RouteKey{Method: method, Action: Action(action)}]
	if !ok {
		return h.errorResponse(&log, nil, errs.NewNotFoundError(NotFoundMessage, nil))
	}

	result, err := route(ctx, req)
	if err != nil {
		return h.errorResponse(&log, err, resolveError(err))
	}

	return h.jsonResponse(&log, http.StatusOK, result)
}

func resolveError(err error) *errs.HTTPError {
	if errors.Is(err, database.ErrNotConfigured) {
		return errs.NewConfigError(database.ErrNotConfigured.Error())
	}
	return sqlerr.HandleError(err)
}

func (h *ActionHandler) errorResponse(log *zerolog.Logger, cause error, httpErr *errs.HTTPError) *model.Response {
	event := log.Warn()
	if httpErr.Status >= http.StatusInternalServerError {
		event = log.Error()
		if detail := sqlerr.Describe(cause); detail != "" {
			event = event.Str("detail", detail)
		}
	}
	if cause != nil {
		event = event.Err(cause)
	}
	if len(httpErr.Errors) > 0 {
		event = event.Interface("field_errors", httpErr.Errors)
	}
	event.
		Int("status", httpErr.Status).
		Str("code", httpErr.Code).
		Msg(httpErr.Message)

	return h.jsonResponse(log, httpErr.Status, httpErr.ToBody())
}

func (h *ActionHandler) jsonResponse(log *zerolog.Logger, status int, payload any) *model.Response {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode response")
		status = http.StatusInternalServerError
		body, _ = json.Marshal(errs.NewInternalServerError().ToBody())
	}

	return &model.Response{
		StatusCode: status,
		Headers: map[string]string{
			echo.HeaderContentType:              echo.MIMEApplicationJSON,
			echo.HeaderAccessControlAllowOrigin: corsAllowOrigin,
		},
		Body: string(body),
	}
}

func preflightResponse() *model.Response {
	return &model.Response{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			echo.HeaderAccessControlAllowOrigin:  corsAllowOrigin,
			echo.HeaderAccessControlAllowMethods: corsAllowMethods,
			echo.HeaderAccessControlAllowHeaders: corsAllowHeaders,
			echo.HeaderAccessControlMaxAge:       corsMaxAge,
		},
		Body: "",
	}
}

// Serve adapts an echo request to Dispatch and writes the result back.
func (h *ActionHandler) Serve(c echo.Context) error {
	r := c.Request()

	// Read errors include the body limit's 413 and go to the error handler as is.
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}

	req := &model.Request{
		HTTPMethod:            r.Method,
		QueryStringParameters: firstValues(c.QueryParams()),
		Headers:               firstValues(r.Header),
		Body:                  string(body),
	}

	resp := h.Dispatch(r.Context(), req)

	header := c.Response().Header()
	for k, v := range resp.Headers {
		header.Set(k, v)
	}

	if resp.Body == "" {
		return c.NoContent(resp.StatusCode)
	}
	return c.Blob(resp.StatusCode, resp.Headers[echo.HeaderContentType], []byte(resp.Body))
}

func firstValues(values map[string][]string) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}

func (h *ActionHandler) login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	user, err := h.auth.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	return &model.LoginResponse{User: user}, nil
}

func (h *ActionHandler) listProducts(ctx context.Context, _ *model.ListProductsRequest) (*model.ProductsResponse, error) {
	products, err := h.products.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []model.Product{}
	}
	return &model.ProductsResponse{Products: products}, nil
}

func (h *ActionHandler) createProduct(ctx context.Context, req *model.CreateProductRequest) (*model.ProductResponse, error) {
	product, err := h.products.CreateProduct(ctx, req)
	if err != nil {
		return nil, err
	}
	return &model.ProductResponse{Product: product}, nil
}

func (h *ActionHandler) updateProduct(ctx context.Context, req *model.UpdateProductRequest) (*model.ProductResponse, error) {
	product, err := h.products.UpdateProduct(ctx, req)
	if err != nil {
		return nil, err
	}
	return &model.ProductResponse{Product: product}, nil
}

func (h *ActionHandler) listOrders(ctx context.Context, req *model.ListOrdersRequest) (*model.OrdersResponse, error) {
	orders, err := h.orders.ListOrders(ctx, req)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []model.OrderView{}
	}
	return &model.OrdersResponse{Orders: orders}, nil
}

func (h *ActionHandler) createOrder(ctx context.Context, req *model.CreateOrderRequest) (*model.CreateOrderResponse, error) {
	id, err := h.orders.CreateOrder(ctx, req)
	if err != nil {
		return nil, err
	}
	return &model.CreateOrderResponse{OrderID: id}, nil
}

func (h *ActionHandler) updateOrder(ctx context.Context, req *model.UpdateOrderRequest) (*model.UpdateOrderResponse, error) {
	if err := h.orders.UpdateOrder(ctx, req); err != nil {
		return nil, err
	}
	return &model.UpdateOrderResponse{Success: true}, nil
}
