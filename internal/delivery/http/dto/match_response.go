package dto

import (
	"time"

	"github.com/google/uuid"
)

type MatchResponse struct {
	ID        uuid.UUID `json:"id"`
	UserAID   uuid.UUID `json:"user_a_id"`
	UserBID   uuid.UUID `json:"user_b_id"`
	Score     int       `json:"score"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AcceptedMatchResponse struct {
	MatchID     uuid.UUID `json:"match_id"`
	PartnerID   uuid.UUID `json:"partner_id"`
	PartnerName string    `json:"partner_name"`
	Score       int       `json:"score"`
	CreatedAt   time.Time `json:"created_at"`
}
