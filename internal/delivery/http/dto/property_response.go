package dto

import (
	"time"

	"github.com/google/uuid"
)

type PropertyResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	City        string    `json:"city"`
	Area        string    `json:"area"`
	Price       float64   `json:"price"`
	Bedrooms    int       `json:"bedrooms"`
	Bathrooms   int       `json:"bathrooms"`
	Available   bool      `json:"available"`
	Amenities   []string  `json:"amenities"`
	CreatedAt   time.Time `json:"created_at"`
}
