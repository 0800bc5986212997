package container

import (
	"fmt"

	"signup-web/internal/config"
	"signup-web/internal/page"
	"signup-web/internal/service"
	"signup-web/internal/service/session"
	"signup-web/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	Logger   *logger.Logger
	Client   service.ActivitiesClient
	Sessions *session.Service
	Renderer *page.Renderer
}

// New creates a new dependency injection container
func New(cfg *config.Config, logger *logger.Logger) (*Container, error) {
	client := service.NewActivitiesClient(cfg, logger)

	renderer, err := page.NewRenderer(cfg.MessageHideDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize renderer: %w", err)
	}

	sessions := session.NewService(client, cfg, logger)

	logger.WithField("activities_api_url", cfg.ActivitiesAPIURL).Info("Activities client initialized")

	return &Container{
		Config:   cfg,
		Logger:   logger,
		Client:   client,
		Sessions: sessions,
		Renderer: renderer,
	}, nil
}

// GetActivitiesClient returns the activities server client
func (c *Container) GetActivitiesClient() service.ActivitiesClient {
	return c.Client
}

// GetSessionService returns the session service
func (c *Container) GetSessionService() *session.Service {
	return c.Sessions
}

// GetRenderer returns the page renderer
func (c *Container) GetRenderer() *page.Renderer {
	return c.Renderer
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.Logger
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}
