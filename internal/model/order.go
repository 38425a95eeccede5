package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pr-poehali-dev/internal-employee-app/internal/validation"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCollected OrderStatus = "collected"
	OrderStatusCompleted OrderStatus = "completed"
)

// OrderStatuses is the fixed lifecycle, in order.
var OrderStatuses = []OrderStatus{OrderStatusPending, OrderStatusCollected, OrderStatusCompleted}

func (s OrderStatus) IsValid() bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// OrderDateLayout renders order dates as DD.MM.YYYY.
const OrderDateLayout = "02.01.2006"

// FormatOrderDate formats t with OrderDateLayout; the zero time renders as "".
func FormatOrderDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(OrderDateLayout)
}

type Order struct {
	ID           int64
	UserID       int64
	EmployeeName string
	Status       OrderStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Items        []OrderItem
}

type OrderItem struct {
	ProductID int64    `json:"product_id" validate:"required"`
	Quantity  Quantity `json:"quantity"`
	Unit      string   `json:"unit" validate:"required"`
}

// OrderView is an order as the listing returns it.
type OrderView struct {
	ID       int64           `json:"id"`
	Employee string          `json:"employee"`
	Status   OrderStatus     `json:"status"`
	Date     string          `json:"date"`
	Items    []OrderItemView `json:"items"`
}

type OrderItemView struct {
	Quantity    Quantity `json:"quantity"`
	Unit        string   `json:"unit"`
	ProductID   int64    `json:"product_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
}

type OrdersResponse struct {
	Orders []OrderView `json:"orders"`
}

type CreateOrderResponse struct {
	OrderID int64 `json:"order_id"`
}

type UpdateOrderResponse struct {
	Success bool `json:"success"`
}

// ListOrdersRequest filters the listing by user when UserID is set.
type ListOrdersRequest struct {
	UserID *int64 `json:"-"`
}

func (r *ListOrdersRequest) BindQuery(params map[string]string) error {
	raw := strings.TrimSpace(params["user_id"])
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return validation.CustomValidationErrors{{Field: "user_id", Message: "must be an integer"}}
	}
	r.UserID = &id
	return nil
}

func (r *ListOrdersRequest) Validate() error {
	return nil
}

func (r *ListOrdersRequest) IgnoresBody() bool { return true }

type CreateOrderRequest struct {
	UserID       int64       `json:"user_id" validate:"required"`
	EmployeeName string      `json:"employee_name"`
	Items        []OrderItem `json:"items" validate:"required,min=1,dive"`
}

func (r *CreateOrderRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}

	var errs validation.CustomValidationErrors
	for i, item := range r.Items {
		if !item.Quantity.IsPositive() {
			errs = append(errs, validation.CustomValidationError{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: "must be greater than 0",
			})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToOrder builds a pending order from the request.
func (r *CreateOrderRequest) ToOrder() Order {
	return Order{
		UserID:       r.UserID,
		EmployeeName: r.EmployeeName,
		Status:       OrderStatusPending,
		Items:        r.Items,
	}
}

type UpdateOrderRequest struct {
	OrderID int64       `json:"order_id" validate:"required"`
	Status  OrderStatus `json:"status" validate:"required,oneof=pending collected completed"`
}

func (r *UpdateOrderRequest) Validate() error {
	return validation.Struct(r)
}
