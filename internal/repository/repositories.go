// Package repository holds the SQL for users, products and orders.
//
// Repositories are stateless: every method takes the DBTX to run on, which
// is the transaction the service opened. Errors carry a "table:<name>:"
// prefix so the error mapper can name the missing entity.
package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the query surface shared by pgx.Tx, *pgxpool.Pool and *pgx.Conn.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories is a container for all repository instances.
type Repositories struct {
	User    *UserRepository
	Product *ProductRepository
	Order   *OrderRepository
}

func NewRepositories() *Repositories {
	return &Repositories{
		User:    NewUserRepository(),
		Product: NewProductRepository(),
		Order:   NewOrderRepository(),
	}
}
