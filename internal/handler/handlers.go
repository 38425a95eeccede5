package handler

import (
	"github.com/pr-poehali-dev/internal-employee-app/internal/server"
	"github.com/pr-poehali-dev/internal-employee-app/internal/service"
)

// Handlers groups everything the router registers.
type Handlers struct {
	Action  *ActionHandler
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
}

func NewHandlers(s *server.Server, services *service.Services) (*Handlers, error) {
	action, err := NewActionHandler(s.Config, s.Logger, services.Auth, services.Product, services.Order)
	if err != nil {
		return nil, err
	}

	return &Handlers{
		Action:  action,
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(),
	}, nil
}
