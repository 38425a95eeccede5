// Package service contains the business logic.
//
// It sits between the handler and repository layers: each operation opens
// one transaction, calls the repositories on it and maps domain failures
// (bad credentials, missing rows) to API errors.
package service

import (
	"time"

	"github.com/pr-poehali-dev/internal-employee-app/internal/database"
	"github.com/pr-poehali-dev/internal-employee-app/internal/lib/cache"
	"github.com/pr-poehali-dev/internal-employee-app/internal/repository"
	"github.com/pr-poehali-dev/internal-employee-app/internal/server"
)

type Services struct {
	Auth    *AuthService
	Product *ProductService
	Order   *OrderService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	// A nil pool must stay a nil interface so WithTx reports ErrNotConfigured.
	var db database.TxBeginner
	if s.DB != nil {
		db = s.DB.Pool
	}

	productCache := cache.NewProductCache(
		s.Redis,
		time.Duration(s.Config.Redis.CacheTTL)*time.Second,
		s.Logger,
	)

	return &Services{
		Auth:    NewAuthService(db, repos.User),
		Product: NewProductService(db, repos.Product, productCache),
		Order:   NewOrderService(db, repos.Order),
	}
}
