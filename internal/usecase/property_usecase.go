package usecase

import (
	"context"
	"errors"

	"room-sync/internal/domain/property"
	"room-sync/internal/repository"

	"github.com/google/uuid"
)

var ErrPropertyNotFound = errors.New("property not found")

type PropertyUsecase interface {
	List(ctx context.Context, filter property.Filter) ([]property.Property, error)
	Get(ctx context.Context, id uuid.UUID) (property.Property, error)
}

type Properties struct {
	properties repository.PropertyRepository
}

func NewPropertyUsecase(properties repository.PropertyRepository) *Properties {
	return &Properties{properties: properties}
}

func (u *Properties) List(ctx context.Context, filter property.Filter) ([]property.Property, error) {
	if filter.Limit < 0 {
		filter.Limit = 0
	}
	out, err := u.properties.List(ctx, filter)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Properties) Get(ctx context.Context, id uuid.UUID) (property.Property, error) {
	p, err := u.properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, property.ErrNotFound) {
			return property.Property{}, ErrPropertyNotFound
		}
		return property.Property{}, ErrInternal
	}
	return p, nil
}
