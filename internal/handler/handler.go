// Package handler turns normalized requests into service calls.
//
// ActionHandler owns the (method, action) route table. Each route decodes and
// validates its payload through the shared pipeline in base.go, calls one
// service operation and returns the value that becomes the JSON response.
// Health and docs handlers serve the system routes next to it.
package handler

import (
	"context"

	"github.com/pr-poehali-dev/internal-employee-app/internal/model"
)

type AuthService interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.User, error)
}

type ProductService interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	CreateProduct(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error)
	UpdateProduct(ctx context.Context, req *model.UpdateProductRequest) (*model.Product, error)
}

type OrderService interface {
	ListOrders(ctx context.Context, req *model.ListOrdersRequest) ([]model.OrderView, error)
	CreateOrder(ctx context.Context, req *model.CreateOrderRequest) (int64, error)
	UpdateOrder(ctx context.Context, req *model.UpdateOrderRequest) error
}
