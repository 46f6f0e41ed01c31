package property

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("property not found")

type Property struct {
	ID          uuid.UUID
	Title       string
	Description string
	City        string
	Area        string
	Price       float64
	Bedrooms    int
	Bathrooms   int
	Available   bool
	Amenities   []string
	CreatedAt   time.Time
}

// Filter narrows a listing query. Zero values mean "no constraint".
type Filter struct {
	City     string
	MaxPrice float64
	Limit    int
}
