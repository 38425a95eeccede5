package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/pr-poehali-dev/internal-employee-app/internal/model"

	"github.com/jackc/pgx/v5"
)

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Create inserts the order header and its items in item order and returns the new id.
func (r *OrderRepository) Create(ctx context.Context, db DBTX, order *model.Order) (int64, error) {
	const orderQuery = `INSERT INTO orders (user_id, employee_name, status) VALUES ($1, $2, $3) RETURNING id, created_at, updated_at`

	err := db.QueryRow(ctx, orderQuery, order.UserID, order.EmployeeName, string(order.Status)).
		Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("table:orders: create order: %w", err)
	}

	const itemQuery = `INSERT INTO order_items (order_id, product_id, quantity, unit) VALUES ($1, $2, $3, $4)`

	for i := range order.Items {
		item := &order.Items[i]
		if _, err := db.Exec(ctx, itemQuery, order.ID, item.ProductID, item.Quantity, item.Unit); err != nil {
			return 0, fmt.Errorf("table:order_items: create item (product_id: %d): %w", item.ProductID, err)
		}
	}

	return order.ID, nil
}

// List returns orders newest first, optionally for one user, with their items.
//
// Items for all returned orders are loaded in a single query.
func (r *OrderRepository) List(ctx context.Context, db DBTX, userID *int64) ([]model.OrderView, error) {
	var (
		rows pgx.Rows
		err  error
	)
	const listQuery = `SELECT id, employee_name, status, created_at FROM orders`
	const ordering = ` ORDER BY created_at DESC, id DESC`

	if userID != nil {
		rows, err = db.Query(ctx, listQuery+` WHERE user_id = $1`+ordering, *userID)
	} else {
		rows, err = db.Query(ctx, listQuery+ordering)
	}
	if err != nil {
		return nil, fmt.Errorf("table:orders: list orders: %w", err)
	}

	orders := make([]model.OrderView, 0)
	for rows.Next() {
		var (
			view      model.OrderView
			status    string
			createdAt time.Time
		)
		if err := rows.Scan(&view.ID, &view.Employee, &status, &createdAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("table:orders: scan order: %w", err)
		}
		view.Status = model.OrderStatus(status)
		view.Date = model.FormatOrderDate(createdAt)
		view.Items = make([]model.OrderItemView, 0)
		orders = append(orders, view)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("table:orders: iterate orders: %w", err)
	}

	if len(orders) == 0 {
		return orders, nil
	}

	if err := r.attachItems(ctx, db, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *OrderRepository) attachItems(ctx context.Context, db DBTX, orders []model.OrderView) error {
	ids := make([]int64, len(orders))
	index := make(map[int64]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		index[o.ID] = i
	}

	const itemsQuery = `SELECT oi.order_id, oi.quantity, oi.unit, p.id, p.name, p.description, p.image_url FROM order_items oi JOIN products p ON p.id = oi.product_id WHERE oi.order_id = ANY($1) ORDER BY oi.order_id, oi.id`

	rows, err := db.Query(ctx, itemsQuery, ids)
	if err != nil {
		return fmt.Errorf("table:order_items: list items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID int64
			item    model.OrderItemView
		)
		if err := rows.Scan(&orderID, &item.Quantity, &item.Unit, &item.ProductID, &item.Name, &item.Description, &item.ImageURL); err != nil {
			return fmt.Errorf("table:order_items: scan item: %w", err)
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("table:order_items: iterate items: %w", err)
	}
	return nil
}

// UpdateStatus sets the status of order id and stamps updated_at.
// A missing order surfaces as a wrapped pgx.ErrNoRows.
func (r *OrderRepository) UpdateStatus(ctx context.Context, db DBTX, id int64, status model.OrderStatus) error {
	const query = `UPDATE orders SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`

	tag, err := db.Exec(ctx, query, string(status), id)
	if err != nil {
		return fmt.Errorf("table:orders: update order %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("table:orders: update order %d: %w", id, pgx.ErrNoRows)
	}
	return nil
}
