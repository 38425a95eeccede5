package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/pr-poehali-dev/internal-employee-app/internal/model"

	"github.com/jackc/pgx/v5"
)

const productColumns = "id, name, description, image_url, in_stock, updated_at"

type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.ImageURL, &p.InStock, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns every product ordered by id.
func (r *ProductRepository) List(ctx context.Context, db DBTX) ([]model.Product, error) {
	rows, err := db.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("table:products: list products: %w", err)
	}
	defer rows.Close()

	products := make([]model.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("table:products: scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("table:products: iterate products: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) Create(ctx context.Context, db DBTX, p model.Product) (*model.Product, error) {
	query := `INSERT INTO products (name, description, image_url, in_stock) VALUES ($1, $2, $3, $4) RETURNING ` + productColumns

	created, err := scanProduct(db.QueryRow(ctx, query, p.Name, p.Description, p.ImageURL, p.InStock))
	if err != nil {
		return nil, fmt.Errorf("table:products: create product: %w", err)
	}
	return created, nil
}

// Update applies patch to product id and returns the full row.
// A missing product surfaces as a wrapped pgx.ErrNoRows.
func (r *ProductRepository) Update(ctx context.Context, db DBTX, id int64, patch model.ProductPatch) (*model.Product, error) {
	query, args := buildProductUpdate(id, patch)

	updated, err := scanProduct(db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("table:products: update product %d: %w", id, err)
	}
	return updated, nil
}

// buildProductUpdate lists only the patched columns, then stamps updated_at.
func buildProductUpdate(id int64, patch model.ProductPatch) (string, []any) {
	sets := make([]string, 0, 5)
	args := make([]any, 0, 5)

	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		set("name", *patch.Name)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.ImageURL != nil {
		set("image_url", *patch.ImageURL)
	}
	if patch.InStock != nil {
		set("in_stock", *patch.InStock)
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE products SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), productColumns,
	)

	return query, args
}
