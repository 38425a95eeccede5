package service

import (
	"context"

	"github.com/pr-poehali-dev/internal-employee-app/internal/database"
	"github.com/pr-poehali-dev/internal-employee-app/internal/model"
	"github.com/pr-poehali-dev/internal-employee-app/internal/repository"

	"github.com/jackc/pgx/v5"
)

type OrderService struct {
	db     database.TxBeginner
	orders *repository.OrderRepository
}

func NewOrderService(db database.TxBeginner, orders *repository.OrderRepository) *OrderService {
	return &OrderService{db: db, orders: orders}
}

func (s *OrderService) ListOrders(ctx context.Context, req *model.ListOrdersRequest) ([]model.OrderView, error) {
	var orders []model.OrderView
	err := database.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		var err error
		orders, err = s.orders.List(ctx, tx, req.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateOrder stores a pending order with its items; all or nothing.
func (s *OrderService) CreateOrder(ctx context.Context, req *model.CreateOrderRequest) (int64, error) {
	order := req.ToOrder()

	var id int64
	err := database.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		var err error
		id, err = s.orders.Create(ctx, tx, &order)
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *OrderService) UpdateOrder(ctx context.Context, req *model.UpdateOrderRequest) error {
	return database.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		return s.orders.UpdateStatus(ctx, tx, req.OrderID, req.Status)
	})
}
