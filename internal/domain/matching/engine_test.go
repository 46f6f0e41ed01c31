package matching

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"room-sync/internal/domain/profile"
)

func baseProfile(t *testing.T) profile.Profile {
	t.Helper()
	p, err := profile.Normalize(profile.Raw{
		UserID:      uuid.New(),
		Name:        "A",
		City:        "SF",
		Smoking:     false,
		Pets:        true,
		Schedule:    "flexible",
		Cleanliness: 4,
		MaxRent:     1200,
		Interests:   []string{"yoga", "jazz"},
	})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	return p
}

func TestCalculate_SelfComparisonSaturates(t *testing.T) {
	a := baseProfile(t)
	res, err := Calculate(a, a)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	// 20+10+10+10+10+(2*5)+10 = 80, but even with many shared interests the
	// clamp holds the score to 100.
	if res.Score != 80 {
		t.Errorf("self score = %d, want 80", res.Score)
	}

	many := a
	many.Interests = []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	res, err = Calculate(many, many)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if res.Score != ScoreMax {
		t.Errorf("saturated self score = %d, want %d", res.Score, ScoreMax)
	}
}

func TestCalculate_PartialOverlap(t *testing.T) {
	a := baseProfile(t)
	b := baseProfile(t)
	b.Interests = []string{"coding", "yoga"}
	b.MaxRent = 1300

	res, err := Calculate(a, b)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	// 20 city + 10 smoking + 10 pets + 10 schedule + 10 cleanliness
	// + 5 (one common interest) + 10 budget (diff 100 <= 500) = 75.
	if res.Score != 75 {
		t.Errorf("score = %d, want 75", res.Score)
	}
	if res.Breakdown.CommonInterests != 1 {
		t.Errorf("common interests = %d, want 1", res.Breakdown.CommonInterests)
	}
}

func TestCalculate_CityAndBudgetMiss(t *testing.T) {
	a := baseProfile(t)
	b := baseProfile(t)
	b.City = "la"
	b.MaxRent = a.MaxRent + 600

	res, err := Calculate(a, b)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	// 0 city + 10 + 10 + 10 + 10 + (2 common * 5) + 0 budget = 50.
	if res.Score != 50 {
		t.Errorf("score = %d, want 50", res.Score)
	}
	if res.Breakdown.CityMatch || res.Breakdown.BudgetClose {
		t.Errorf("breakdown = %+v, want city and budget misses", res.Breakdown)
	}
}

func TestCalculate_Symmetry(t *testing.T) {
	a := baseProfile(t)
	b := baseProfile(t)
	b.City = "porto"
	b.Smoking = true
	b.Schedule = profile.ScheduleNightOwl
	b.Cleanliness = 2
	b.MaxRent = 400
	b.Interests = []string{"jazz", "surfing"}

	ab, err := Calculate(a, b)
	if err != nil {
		t.Fatalf("Calculate(a,b): %v", err)
	}
	ba, err := Calculate(b, a)
	if err != nil {
		t.Fatalf("Calculate(b,a): %v", err)
	}
	if ab.Score != ba.Score {
		t.Errorf("asymmetric score: %d vs %d", ab.Score, ba.Score)
	}
}

func TestCalculate_BoundedOutput(t *testing.T) {
	a := baseProfile(t)
	b := baseProfile(t)
	b.City = "berlin"
	b.Smoking = true
	b.Pets = false
	b.Schedule = profile.ScheduleEarlyBird
	b.Cleanliness = 1
	b.MaxRent = 9000
	b.Interests = nil

	res, err := Calculate(a, b)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if res.Score != 0 {
		t.Errorf("fully mismatched score = %d, want 0", res.Score)
	}

	a.Interests = make([]string, 0, 30)
	b.Interests = make([]string, 0, 30)
	for _, it := range []string{"i0", "i1", "i2", "i3", "i4", "i5", "i6", "i7", "i8", "i9",
		"j0", "j1", "j2", "j3", "j4", "j5", "j6", "j7", "j8", "j9",
		"k0", "k1", "k2", "k3", "k4", "k5", "k6", "k7", "k8", "k9"} {
		a.Interests = append(a.Interests, it)
		b.Interests = append(b.Interests, it)
	}
	res, err = Calculate(a, b)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if res.Score < 0 || res.Score > ScoreMax {
		t.Errorf("score = %d, want within [0,%d]", res.Score, ScoreMax)
	}
}

func TestCalculate_CaseInsensitiveCity(t *testing.T) {
	a := baseProfile(t)
	b := baseProfile(t)
	b.City = "SF" // Normalize lower-cases, but the engine must not rely on it.

	res, err := Calculate(a, b)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if !res.Breakdown.CityMatch {
		t.Error("city comparison must be case-insensitive")
	}
}

func TestCalculate_RejectsInvalidProfile(t *testing.T) {
	a := baseProfile(t)
	bad := baseProfile(t)
	bad.Cleanliness = 9

	if _, err := Calculate(a, bad); !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("err = %v, want ErrInvalidProfile", err)
	}
	if _, err := Calculate(bad, a); !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("err = %v, want ErrInvalidProfile for self side", err)
	}
}
