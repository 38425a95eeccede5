package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/pr-poehali-dev/internal-employee-app/internal/lib/cache"
	"github.com/pr-poehali-dev/internal-employee-app/internal/model"
	"github.com/pr-poehali-dev/internal-employee-app/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCachedProductService(t *testing.T) (*ProductService, pgxmock.PgxPoolIface, *miniredis.Miniredis) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	log := zerolog.Nop()
	productCache := cache.NewProductCache(client, time.Minute, &log)

	return NewProductService(mock, repository.NewProductRepository(), productCache), mock, mr
}

func expectProductList(mock pgxmock.PgxPoolIface, products ...model.Product) {
	rows := pgxmock.NewRows(productColumns)
	for _, p := range products {
		rows.AddRow(p.ID, p.Name, p.Description, p.ImageURL, p.InStock, nil)
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM products")).WillReturnRows(rows)
	mock.ExpectCommit()
}

var gloves = model.Product{ID: 1, Name: "Gloves", Description: "Nitrile", ImageURL: model.DefaultImageURL, InStock: true}

func TestListProductsServedFromCache(t *testing.T) {
	svc, mock, _ := newCachedProductService(t)
	ctx := context.Background()

	expectProductList(mock, gloves)

	first, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// No database expectations remain, so this must come from Redis.
	second, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProductInvalidatesListEvenAfterRedisHiccup(t *testing.T) {
	svc, mock, mr := newCachedProductService(t)
	ctx := context.Background()

	expectProductList(mock, gloves)
	_, err := svc.ListProducts(ctx)
	require.NoError(t, err)

	tape := model.Product{ID: 2, Name: "Tape", Description: "Duct", ImageURL: model.DefaultImageURL, InStock: true}
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO products (name, description, image_url, in_stock)")).
		WithArgs("Tape", "Duct", model.DefaultImageURL, true).
		WillReturnRows(pgxmock.NewRows(productColumns).AddRow(tape.ID, tape.Name, tape.Description, tape.ImageURL, true, nil))
	mock.ExpectCommit()

	// Redis rejects the invalidation that follows the commit.
	mr.SetError("ERR injected failure")
	_, err = svc.CreateProduct(ctx, &model.CreateProductRequest{Name: "Tape", Description: "Duct"})
	require.NoError(t, err)
	mr.SetError("")

	expectProductList(mock, gloves, tape)

	products, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Tape", products[1].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProductInvalidatesList(t *testing.T) {
	svc, mock, _ := newCachedProductService(t)
	ctx := context.Background()

	expectProductList(mock, gloves)
	_, err := svc.ListProducts(ctx)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE products SET in_stock = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2")).
		WithArgs(false, int64(1)).
		WillReturnRows(pgxmock.NewRows(productColumns).AddRow(int64(1), "Gloves", "Nitrile", model.DefaultImageURL, false, nil))
	mock.ExpectCommit()

	inStock := false
	_, err = svc.UpdateProduct(ctx, &model.UpdateProductRequest{
		ProductID:    1,
		ProductPatch: model.ProductPatch{InStock: &inStock},
	})
	require.NoError(t, err)

	soldOut := gloves
	soldOut.InStock = false
	expectProductList(mock, soldOut)

	products, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.False(t, products[0].InStock)
	require.NoError(t, mock.ExpectationsWereMet())
}
