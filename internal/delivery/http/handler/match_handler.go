package handler

import (
	"errors"

	"room-sync/internal/delivery/http/dto"
	"room-sync/internal/delivery/http/middleware"
	"room-sync/internal/domain/match"
	"room-sync/internal/pkg/response"
	"room-sync/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchHandler struct {
	uc usecase.MatchUsecase
}

type createMatchRequest struct {
	UserID uuid.UUID `json:"user_id"`
}

type decideMatchRequest struct {
	Status string `json:"status"`
}

func NewMatchHandler(uc usecase.MatchUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Create)
	r.Patch("/:match_id", h.Decide)
	r.Get("/", h.ListAccepted)
}

func (h *MatchHandler) Create(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createMatchRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	m, err := h.uc.CreateMatch(c.Context(), userID, req.UserID)
	if err != nil {
		return mapMatchUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, matchResponse(m))
}

func (h *MatchHandler) Decide(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	matchID, err := uuid.Parse(c.Params("match_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req decideMatchRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	m, err := h.uc.UpdateStatus(c.Context(), matchID, userID, req.Status)
	if err != nil {
		return mapMatchUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, matchResponse(m))
}

func (h *MatchHandler) ListAccepted(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	ms, err := h.uc.ListAccepted(c.Context(), userID)
	if err != nil {
		return mapMatchUsecaseError(err)
	}

	out := make([]dto.AcceptedMatchResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, dto.AcceptedMatchResponse{
			MatchID:     m.MatchID,
			PartnerID:   m.PartnerID,
			PartnerName: m.PartnerName,
			Score:       m.Score,
			CreatedAt:   m.CreatedAt,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func matchResponse(m match.Match) dto.MatchResponse {
	return dto.MatchResponse{
		ID:        m.ID,
		UserAID:   m.UserAID,
		UserBID:   m.UserBID,
		Score:     m.Score,
		Status:    string(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func mapMatchUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrSelfMatch):
		return middleware.NewAppError(fiber.StatusBadRequest, "Cannot match with yourself", nil, err)
	case errors.Is(err, usecase.ErrInvalidMatchStatus):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid match status", nil, err)
	case errors.Is(err, usecase.ErrDuplicateMatch):
		return middleware.NewAppError(fiber.StatusConflict, "Match already exists", nil, err)
	case errors.Is(err, usecase.ErrInvalidStateTransition):
		return middleware.NewAppError(fiber.StatusConflict, "Match already decided", nil, err)
	case errors.Is(err, usecase.ErrMatchNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Match not found", nil, err)
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
	case errors.Is(err, usecase.ErrIncompleteProfile):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Profile incomplete", nil, err)
	case errors.Is(err, usecase.ErrNotAuthorized):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
