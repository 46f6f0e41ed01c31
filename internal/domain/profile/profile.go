package profile

import (
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("profile not found")

// Schedule is the daily-rhythm preference. Only the three listed values are
// valid; anything else is rejected at normalization time.
type Schedule string

const (
	ScheduleEarlyBird Schedule = "early_bird"
	ScheduleNightOwl  Schedule = "night_owl"
	ScheduleFlexible  Schedule = "flexible"
)

func ParseSchedule(s string) (Schedule, bool) {
	switch Schedule(strings.TrimSpace(strings.ToLower(s))) {
	case ScheduleEarlyBird:
		return ScheduleEarlyBird, true
	case ScheduleNightOwl:
		return ScheduleNightOwl, true
	case ScheduleFlexible:
		return ScheduleFlexible, true
	default:
		return "", false
	}
}

const (
	CleanlinessMin = 1
	CleanlinessMax = 5
)

// Profile is the validated, matching-relevant view of a user. Instances are
// built through Normalize and treated as read-only snapshots for the duration
// of a ranking call.
type Profile struct {
	UserID       uuid.UUID
	Name         string
	City         string
	Smoking      bool
	Pets         bool
	WorkFromHome bool
	Schedule     Schedule
	Cleanliness  int
	MaxRent      float64
	Interests    []string
}

// Validate re-checks the invariants Normalize establishes. The scoring engine
// calls this defensively on every input.
func (p Profile) Validate() error {
	v := &ValidationError{}
	if p.UserID == uuid.Nil {
		v.Add("userId", "required")
	}
	if strings.TrimSpace(p.City) == "" {
		v.Add("city", "required")
	}
	if _, ok := ParseSchedule(string(p.Schedule)); !ok {
		v.Add("schedule", "must be one of early_bird, night_owl, flexible")
	}
	if p.Cleanliness < CleanlinessMin || p.Cleanliness > CleanlinessMax {
		v.Add("cleanliness", "must be between 1 and 5")
	}
	if p.MaxRent < 0 {
		v.Add("maxRent", "must not be negative")
	}
	if hasDuplicates(p.Interests) {
		v.Add("interests", "must not contain duplicates")
	}
	if v.HasViolations() {
		return v
	}
	return nil
}

// CommonInterests returns the intersection cardinality of the two interest
// sets. Comparison is case-sensitive exact match.
func (p Profile) CommonInterests(other Profile) int {
	if len(p.Interests) == 0 || len(other.Interests) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(p.Interests))
	for _, it := range p.Interests {
		set[it] = struct{}{}
	}
	n := 0
	for _, it := range other.Interests {
		if _, ok := set[it]; ok {
			n++
		}
	}
	return n
}

func hasDuplicates(items []string) bool {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			return true
		}
		seen[it] = struct{}{}
	}
	return false
}

func dedupeSorted(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" {
			continue
		}
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	sort.Strings(out)
	return out
}
