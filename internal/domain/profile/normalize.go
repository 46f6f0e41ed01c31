package profile

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Raw is a preference record as it arrives from storage or the API, before
// any validation. Schedule is an open string here; Normalize turns it into
// the typed enum or rejects it.
type Raw struct {
	UserID       uuid.UUID
	Name         string
	City         string
	Smoking      bool
	Pets         bool
	WorkFromHome bool
	Schedule     string
	Cleanliness  int
	MaxRent      float64
	Interests    []string
}

type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError carries every violated field, not just the first one, so a
// caller fixing bad input sees the whole picture at once.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Violations) == 0 {
		return "invalid profile"
	}
	fields := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		fields = append(fields, v.Field)
	}
	return fmt.Sprintf("invalid profile: %s", strings.Join(fields, ", "))
}

func (e *ValidationError) Add(field, reason string) {
	e.Violations = append(e.Violations, FieldViolation{Field: field, Reason: reason})
}

func (e *ValidationError) HasViolations() bool {
	return e != nil && len(e.Violations) > 0
}

// Normalize validates a raw record and produces the canonical Profile:
// city lower-cased for case-insensitive comparison, interests deduplicated
// and sorted, schedule parsed into the enum. Out-of-range values are
// rejected rather than clamped; silent clamping would hide data-entry bugs
// upstream.
func Normalize(raw Raw) (Profile, error) {
	v := &ValidationError{}

	if raw.UserID == uuid.Nil {
		v.Add("userId", "required")
	}

	city := strings.ToLower(strings.TrimSpace(raw.City))
	if city == "" {
		v.Add("city", "required")
	}

	sched, ok := ParseSchedule(raw.Schedule)
	if !ok {
		if strings.TrimSpace(raw.Schedule) == "" {
			v.Add("schedule", "required")
		} else {
			v.Add("schedule", "must be one of early_bird, night_owl, flexible")
		}
	}

	if raw.Cleanliness < CleanlinessMin || raw.Cleanliness > CleanlinessMax {
		v.Add("cleanliness", "must be between 1 and 5")
	}

	if raw.MaxRent < 0 {
		v.Add("maxRent", "must not be negative")
	}

	if v.HasViolations() {
		return Profile{}, v
	}

	return Profile{
		UserID:       raw.UserID,
		Name:         strings.TrimSpace(raw.Name),
		City:         city,
		Smoking:      raw.Smoking,
		Pets:         raw.Pets,
		WorkFromHome: raw.WorkFromHome,
		Schedule:     sched,
		Cleanliness:  raw.Cleanliness,
		MaxRent:      raw.MaxRent,
		Interests:    dedupeSorted(raw.Interests),
	}, nil
}
