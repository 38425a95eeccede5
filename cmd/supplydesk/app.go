package main

import (
	"fmt"
	"io"

	"github.com/pr-poehali-dev/internal-employee-app/internal/config"
	"github.com/pr-poehali-dev/internal-employee-app/internal/handler"
	"github.com/pr-poehali-dev/internal-employee-app/internal/logger"
	"github.com/pr-poehali-dev/internal-employee-app/internal/repository"
	"github.com/pr-poehali-dev/internal-employee-app/internal/server"
	"github.com/pr-poehali-dev/internal-employee-app/internal/service"

	"github.com/rs/zerolog"
)

// app is the wired dependency graph shared by serve and invoke.
type app struct {
	cfg           *config.Config
	log           *zerolog.Logger
	loggerService *logger.LoggerService
	server        *server.Server
	handlers      *handler.Handlers
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newApp wires config, logging, backing services and handlers. Logs go to logOut.
func newApp(logOut io.Writer) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithWriter(cfg.Observability, loggerService, logOut)

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		loggerService.Shutdown()
		return nil, err
	}

	repos := repository.NewRepositories()
	services := service.NewServices(srv, repos)

	handlers, err := handler.NewHandlers(srv, services)
	if err != nil {
		_ = srv.Close()
		loggerService.Shutdown()
		return nil, err
	}

	return &app{
		cfg:           cfg,
		log:           &log,
		loggerService: loggerService,
		server:        srv,
		handlers:      handlers,
	}, nil
}

// close releases backing services; used when the HTTP server never started.
func (a *app) close() {
	if err := a.server.Close(); err != nil {
		a.log.Error().Err(err).Msg("failed to release resources")
	}
	a.loggerService.Shutdown()
}
