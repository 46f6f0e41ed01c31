package routes

import (
	"log"

	"room-sync/internal/config"
	"room-sync/internal/database"
	v1 "room-sync/internal/delivery/http/routes/v1"
	"room-sync/internal/infrastructure/cache"
	"room-sync/internal/ws"

	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, cfg config.Config, db database.DB, redis *cache.Redis, hub *ws.Hub, logger *log.Logger) error {
	if r == nil {
		return nil
	}

	return v1.Register(r, cfg, db, redis, hub, logger)
}
