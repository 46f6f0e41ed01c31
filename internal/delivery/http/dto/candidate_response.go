package dto

import "github.com/google/uuid"

type ScoreBreakdownResponse struct {
	CityMatch        bool `json:"city_match"`
	SmokingMatch     bool `json:"smoking_match"`
	PetsMatch        bool `json:"pets_match"`
	ScheduleMatch    bool `json:"schedule_match"`
	CleanlinessClose bool `json:"cleanliness_close"`
	BudgetClose      bool `json:"budget_close"`
	CommonInterests  int  `json:"common_interests"`
}

type CandidateResponse struct {
	UserID    uuid.UUID              `json:"user_id"`
	Name      string                 `json:"name"`
	Score     int                    `json:"score"`
	Breakdown ScoreBreakdownResponse `json:"breakdown"`
}

type CandidateListResponse struct {
	Items   []CandidateResponse `json:"items"`
	Skipped int                 `json:"skipped"`
}
