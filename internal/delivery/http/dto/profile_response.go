package dto

import "github.com/google/uuid"

type ProfileResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	Name         string    `json:"name"`
	City         string    `json:"city"`
	Smoking      bool      `json:"smoking"`
	Pets         bool      `json:"pets"`
	WorkFromHome bool      `json:"work_from_home"`
	Schedule     string    `json:"schedule"`
	Cleanliness  int       `json:"cleanliness"`
	MaxRent      float64   `json:"max_rent"`
	Interests    []string  `json:"interests"`
}
