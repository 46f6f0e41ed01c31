package routes

import (
	"log"

	"room-sync/internal/config"
	"room-sync/internal/database"
	"room-sync/internal/delivery/http/handler"
	"room-sync/internal/infrastructure/cache"
	"room-sync/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	cfg    config.Config
	db     database.DB
	cache  *cache.Redis
	hub    *ws.Hub
	logger *log.Logger
}

func NewRegistry(cfg config.Config, db database.DB, redis *cache.Redis, hub *ws.Hub, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.Default()
	}
	return &Registry{cfg: cfg, db: db, cache: redis, hub: hub, logger: logger}
}

func (r *Registry) Register(app *fiber.App) error {
	if app == nil {
		return nil
	}

	r.registerHealth(app)
	return r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	handler.NewHealthHandler(r.db).RegisterRoutes(app)
}

func (r *Registry) registerAPI(app *fiber.App) error {
	api := app.Group("/api")
	return RegisterV1(api.Group("/v1"), r.cfg, r.db, r.cache, r.hub, r.logger)
}
