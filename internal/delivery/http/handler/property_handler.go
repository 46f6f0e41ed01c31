package handler

import (
	"errors"
	"strconv"
	"strings"

	"room-sync/internal/delivery/http/dto"
	"room-sync/internal/delivery/http/middleware"
	"room-sync/internal/domain/property"
	"room-sync/internal/pkg/response"
	"room-sync/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type PropertyHandler struct {
	uc usecase.PropertyUsecase
}

func NewPropertyHandler(uc usecase.PropertyUsecase) *PropertyHandler {
	return &PropertyHandler{uc: uc}
}

func (h *PropertyHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/:property_id", h.Get)
}

func (h *PropertyHandler) List(c fiber.Ctx) error {
	filter := property.Filter{
		City: strings.ToLower(strings.TrimSpace(c.Query("city"))),
	}

	if raw := c.Query("max_price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil || price < 0 {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid max_price", nil, err)
		}
		filter.MaxPrice = price
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid limit", nil, err)
		}
		filter.Limit = limit
	}

	props, err := h.uc.List(c.Context(), filter)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	out := make([]dto.PropertyResponse, 0, len(props))
	for _, p := range props {
		out = append(out, propertyResponse(p))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *PropertyHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("property_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.uc.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrPropertyNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Property not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, propertyResponse(p))
}

func propertyResponse(p property.Property) dto.PropertyResponse {
	return dto.PropertyResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		City:        p.City,
		Area:        p.Area,
		Price:       p.Price,
		Bedrooms:    p.Bedrooms,
		Bathrooms:   p.Bathrooms,
		Available:   p.Available,
		Amenities:   p.Amenities,
		CreatedAt:   p.CreatedAt,
	}
}
