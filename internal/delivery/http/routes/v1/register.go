package v1

import (
	"log"

	"room-sync/internal/config"
	"room-sync/internal/database"
	"room-sync/internal/delivery/http/handler"
	"room-sync/internal/delivery/http/middleware"
	"room-sync/internal/infrastructure/cache"
	"room-sync/internal/infrastructure/persistence/postgres"
	"room-sync/internal/pkg/jwt"
	"room-sync/internal/repository"
	"room-sync/internal/usecase"
	"room-sync/internal/ws"

	"github.com/gofiber/fiber/v3"
)

func Register(r fiber.Router, cfg config.Config, db database.DB, redis *cache.Redis, hub *ws.Hub, logger *log.Logger) error {
	if r == nil {
		return nil
	}

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo, err := postgres.NewUserRepository(db)
	if err != nil {
		return err
	}
	profileRepo := repository.NewPostgresProfileRepository(db)
	matchRepo := repository.NewPostgresMatchRepository(db)
	propertyRepo := repository.NewPostgresPropertyRepository(db)

	var rankCache usecase.RankCache
	if redis != nil {
		rankCache = redis
	}
	notifier := ws.NewHubNotifier(hub)

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	profileUC := usecase.NewProfileUsecase(profileRepo, rankCache)
	rankingUC := usecase.NewRankingUsecase(profileRepo, matchRepo, rankCache, logger)
	matchUC := usecase.NewMatchUsecase(profileRepo, matchRepo, rankCache, notifier, logger)
	propertyUC := usecase.NewPropertyUsecase(propertyRepo)

	authHandler := handler.NewAuthHandler(authUC)
	userHandler := handler.NewUserHandler(authUC)
	profileHandler := handler.NewProfileHandler(profileUC)
	candidateHandler := handler.NewCandidateHandler(rankingUC)
	matchHandler := handler.NewMatchHandler(matchUC)
	propertyHandler := handler.NewPropertyHandler(propertyUC)
	wsHandler := ws.NewHandler(hub, logger)

	authGroup := r.Group("/auth")
	authHandler.RegisterRoutes(authGroup)

	propertiesGroup := r.Group("/properties")
	propertyHandler.RegisterRoutes(propertiesGroup)

	protected := r.Group("", authMw.Middleware())

	usersGroup := protected.Group("/users")
	userHandler.RegisterRoutes(usersGroup)

	profilesGroup := protected.Group("/profiles")
	profileHandler.RegisterRoutes(profilesGroup)

	matchesGroup := protected.Group("/matches")
	candidateHandler.RegisterRoutes(matchesGroup)
	matchHandler.RegisterRoutes(matchesGroup)

	protected.Get("/ws/matches", wsHandler.HandleMatchesWS)

	return nil
}
