package profile

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func validRaw() Raw {
	return Raw{
		UserID:      uuid.New(),
		Name:        "Dana",
		City:        "  Lisbon ",
		Smoking:     false,
		Pets:        true,
		Schedule:    "flexible",
		Cleanliness: 4,
		MaxRent:     1200,
		Interests:   []string{"yoga", "jazz", "yoga", " ", "climbing"},
	}
}

func TestNormalize_CanonicalizesCityAndInterests(t *testing.T) {
	p, err := Normalize(validRaw())
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if p.City != "lisbon" {
		t.Errorf("city = %q, want %q", p.City, "lisbon")
	}
	if len(p.Interests) != 3 {
		t.Fatalf("interests = %v, want 3 deduplicated entries", p.Interests)
	}
	for i := 1; i < len(p.Interests); i++ {
		if p.Interests[i-1] >= p.Interests[i] {
			t.Errorf("interests not sorted: %v", p.Interests)
		}
	}
	if p.Schedule != ScheduleFlexible {
		t.Errorf("schedule = %q, want %q", p.Schedule, ScheduleFlexible)
	}
}

func TestNormalize_RejectsOutOfRangeCleanliness(t *testing.T) {
	raw := validRaw()
	raw.Cleanliness = 6

	_, err := Normalize(raw)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !violates(verr, "cleanliness") {
		t.Errorf("violations = %+v, want cleanliness named", verr.Violations)
	}
}

func TestNormalize_CollectsEveryViolation(t *testing.T) {
	raw := Raw{
		UserID:      uuid.Nil,
		City:        "",
		Schedule:    "whenever",
		Cleanliness: 0,
		MaxRent:     -50,
	}

	_, err := Normalize(raw)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"userId", "city", "schedule", "cleanliness", "maxRent"} {
		if !violates(verr, field) {
			t.Errorf("violations = %+v, want %s named", verr.Violations, field)
		}
	}
}

func TestNormalize_MissingScheduleReportedAsRequired(t *testing.T) {
	raw := validRaw()
	raw.Schedule = ""

	_, err := Normalize(raw)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !violates(verr, "schedule") {
		t.Errorf("violations = %+v, want schedule named", verr.Violations)
	}
}

func TestParseSchedule(t *testing.T) {
	cases := []struct {
		in   string
		want Schedule
		ok   bool
	}{
		{"early_bird", ScheduleEarlyBird, true},
		{"NIGHT_OWL", ScheduleNightOwl, true},
		{" flexible ", ScheduleFlexible, true},
		{"morning", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseSchedule(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseSchedule(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestCommonInterests(t *testing.T) {
	a := Profile{Interests: []string{"jazz", "yoga"}}
	b := Profile{Interests: []string{"coding", "yoga"}}
	if n := a.CommonInterests(b); n != 1 {
		t.Errorf("CommonInterests = %d, want 1", n)
	}
	// Case-sensitive exact match.
	c := Profile{Interests: []string{"Yoga"}}
	if n := a.CommonInterests(c); n != 0 {
		t.Errorf("CommonInterests = %d, want 0 for case mismatch", n)
	}
}

func TestValidate_RejectsDuplicateInterests(t *testing.T) {
	p, err := Normalize(validRaw())
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	p.Interests = []string{"yoga", "yoga"}

	verr := p.Validate()
	var v *ValidationError
	if !errors.As(verr, &v) || !violates(v, "interests") {
		t.Errorf("Validate = %v, want interests violation", verr)
	}
}

func violates(v *ValidationError, field string) bool {
	for _, fv := range v.Violations {
		if fv.Field == field {
			return true
		}
	}
	return false
}
