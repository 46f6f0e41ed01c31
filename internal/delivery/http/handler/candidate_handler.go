package handler

import (
	"errors"
	"strconv"
	"strings"

	"room-sync/internal/delivery/http/dto"
	"room-sync/internal/delivery/http/middleware"
	"room-sync/internal/pkg/response"
	"room-sync/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const maxCandidateLimit = 100

type CandidateHandler struct {
	uc usecase.RankingUsecase
}

func NewCandidateHandler(uc usecase.RankingUsecase) *CandidateHandler {
	return &CandidateHandler{uc: uc}
}

func (h *CandidateHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/candidates", h.ListCandidates)
}

func (h *CandidateHandler) ListCandidates(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	params := usecase.RankParams{
		City:           strings.TrimSpace(c.Query("city")),
		IncludeDecided: c.Query("include_decided") == "true",
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid limit", nil, err)
		}
		if limit > maxCandidateLimit {
			limit = maxCandidateLimit
		}
		params.Limit = limit
	}

	res, err := h.uc.RankCandidates(c.Context(), userID, params)
	if err != nil {
		return mapRankingUsecaseError(err)
	}

	out := dto.CandidateListResponse{
		Items:   make([]dto.CandidateResponse, 0, len(res.Items)),
		Skipped: res.Skipped,
	}
	for _, it := range res.Items {
		out.Items = append(out.Items, dto.CandidateResponse{
			UserID: it.UserID,
			Name:   it.Name,
			Score:  it.Score,
			Breakdown: dto.ScoreBreakdownResponse{
				CityMatch:        it.Breakdown.CityMatch,
				SmokingMatch:     it.Breakdown.SmokingMatch,
				PetsMatch:        it.Breakdown.PetsMatch,
				ScheduleMatch:    it.Breakdown.ScheduleMatch,
				CleanlinessClose: it.Breakdown.CleanlinessClose,
				BudgetClose:      it.Breakdown.BudgetClose,
				CommonInterests:  it.Breakdown.CommonInterests,
			},
		})
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func mapRankingUsecaseError(err error) error {
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
