package matching

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"room-sync/internal/domain/profile"
)

// ErrInvalidProfile signals that an input violated profile invariants that
// upstream validation should already have enforced. It indicates a bug, not
// bad user input.
var ErrInvalidProfile = errors.New("invalid profile")

const (
	pointsCityMatch        = 20
	pointsSmokingMatch     = 10
	pointsPetsMatch        = 10
	pointsScheduleMatch    = 10
	pointsCleanlinessClose = 10
	pointsPerInterest      = 5
	pointsBudgetClose      = 10

	cleanlinessTolerance = 1
	budgetTolerance      = 500.0

	// ScoreMax bounds the reported score; unclamped sums can exceed it when
	// many interests overlap.
	ScoreMax = 100
)

// Breakdown records which criteria contributed to a score.
type Breakdown struct {
	CityMatch        bool `json:"city_match"`
	SmokingMatch     bool `json:"smoking_match"`
	PetsMatch        bool `json:"pets_match"`
	ScheduleMatch    bool `json:"schedule_match"`
	CleanlinessClose bool `json:"cleanliness_close"`
	BudgetClose      bool `json:"budget_close"`
	CommonInterests  int  `json:"common_interests"`
}

type Result struct {
	Score     int
	Breakdown Breakdown
}

// Calculate computes the compatibility score between two validated profiles.
// Pure and deterministic: every rule is symmetric, each criterion contributes
// independently, and the total is clamped to [0, ScoreMax].
func Calculate(self, other profile.Profile) (Result, error) {
	if err := self.Validate(); err != nil {
		return Result{}, fmt.Errorf("%w: self %s: %v", ErrInvalidProfile, self.UserID, err)
	}
	if err := other.Validate(); err != nil {
		return Result{}, fmt.Errorf("%w: other %s: %v", ErrInvalidProfile, other.UserID, err)
	}

	b := Breakdown{
		CityMatch:        strings.EqualFold(self.City, other.City),
		SmokingMatch:     self.Smoking == other.Smoking,
		PetsMatch:        self.Pets == other.Pets,
		ScheduleMatch:    self.Schedule == other.Schedule,
		CleanlinessClose: absInt(self.Cleanliness-other.Cleanliness) <= cleanlinessTolerance,
		BudgetClose:      math.Abs(self.MaxRent-other.MaxRent) <= budgetTolerance,
		CommonInterests:  self.CommonInterests(other),
	}

	score := 0
	if b.CityMatch {
		score += pointsCityMatch
	}
	if b.SmokingMatch {
		score += pointsSmokingMatch
	}
	if b.PetsMatch {
		score += pointsPetsMatch
	}
	if b.ScheduleMatch {
		score += pointsScheduleMatch
	}
	if b.CleanlinessClose {
		score += pointsCleanlinessClose
	}
	score += b.CommonInterests * pointsPerInterest
	if b.BudgetClose {
		score += pointsBudgetClose
	}

	if score > ScoreMax {
		score = ScoreMax
	}
	if score < 0 {
		score = 0
	}

	return Result{Score: score, Breakdown: b}, nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
