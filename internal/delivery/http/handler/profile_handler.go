package handler

import (
	"errors"

	"room-sync/internal/delivery/http/dto"
	"room-sync/internal/delivery/http/middleware"
	"room-sync/internal/domain/profile"
	"room-sync/internal/pkg/response"
	"room-sync/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ProfileHandler struct {
	uc usecase.ProfileUsecase
}

func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.GetMine)
	r.Put("/me", h.UpsertMine)
	r.Get("/:user_id", h.GetByUserID)
}

func (h *ProfileHandler) GetMine(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	p, err := h.uc.Get(c.Context(), userID)
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, profileResponse(p))
}

func (h *ProfileHandler) UpsertMine(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var in usecase.ProfileInput
	if err := c.Bind().Body(&in); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.uc.Upsert(c.Context(), userID, in)
	if err != nil {
		var verr *profile.ValidationError
		if errors.As(err, &verr) {
			// Every violated field is reported so the client fixes one round trip.
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid profile", map[string]any{"violations": verr.Violations}, err)
		}
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, profileResponse(p))
}

func (h *ProfileHandler) GetByUserID(c fiber.Ctx) error {
	if _, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID); !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	targetID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.uc.Get(c.Context(), targetID)
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, profileResponse(p))
}

func profileResponse(p profile.Profile) dto.ProfileResponse {
	return dto.ProfileResponse{
		UserID:       p.UserID,
		Name:         p.Name,
		City:         p.City,
		Smoking:      p.Smoking,
		Pets:         p.Pets,
		WorkFromHome: p.WorkFromHome,
		Schedule:     string(p.Schedule),
		Cleanliness:  p.Cleanliness,
		MaxRent:      p.MaxRent,
		Interests:    p.Interests,
	}
}

func mapProfileUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
	case errors.Is(err, usecase.ErrIncompleteProfile):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Profile incomplete", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
