package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"room-sync/internal/config"
	"room-sync/internal/database/migration"
	"room-sync/internal/database/seeder"
	"room-sync/internal/delivery/http/middleware"
	"room-sync/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// Bootstrap connects infrastructure, applies migrations and wires every route.
// The returned cleanup closes the container.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := c.Close

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := (migration.Runner{}).Run(ctx, c.DB.SQLDB()); err != nil {
		_ = cleanup()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}

	if cfg.App.SeedDemo {
		if err := seeder.NewDemoSeeder(c.Logger).Run(ctx, c.DB); err != nil {
			_ = cleanup()
			return nil, nil, fmt.Errorf("seed: %w", err)
		}
	}

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})

	f.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	f.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())

	go c.Hub.Run()

	registry := routes.NewRegistry(cfg, c.DB, c.Cache, c.Hub, c.Logger)
	if err := registry.Register(f); err != nil {
		_ = cleanup()
		return nil, nil, fmt.Errorf("register routes: %w", err)
	}

	return &App{Fiber: f, Container: c}, cleanup, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
