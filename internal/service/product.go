package service

import (
	"context"

	"github.com/pr-poehali-dev/internal-employee-app/internal/database"
	"github.com/pr-poehali-dev/internal-employee-app/internal/lib/cache"
	"github.com/pr-poehali-dev/internal-employee-app/internal/model"
	"github.com/pr-poehali-dev/internal-employee-app/internal/repository"

	"github.com/jackc/pgx/v5"
)

type ProductService struct {
	db       database.TxBeginner
	products *repository.ProductRepository
	cache    *cache.ProductCache
}

func NewProductService(db database.TxBeginner, products *repository.ProductRepository, productCache *cache.ProductCache) *ProductService {
	return &ProductService{db: db, products: products, cache: productCache}
}

// ListProducts serves the catalog from cache when possible.
func (s *ProductService) ListProducts(ctx context.Context) ([]model.Product, error) {
	products, generation, ok := s.cache.Products(ctx)
	if ok {
		return products, nil
	}

	err := database.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		var err error
		products, err = s.products.List(ctx, tx)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.cache.StoreProducts(ctx, generation, products)
	return products, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	var created *model.Product
	err := database.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		var err error
		created, err = s.products.Create(ctx, tx, req.ToProduct())
		return err
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	return created, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, req *model.UpdateProductRequest) (*model.Product, error) {
	var updated *model.Product
	err := database.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		var err error
		updated, err = s.products.Update(ctx, tx, req.ProductID, req.ProductPatch)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	return updated, nil
}
