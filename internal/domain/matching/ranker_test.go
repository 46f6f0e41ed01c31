package matching

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"room-sync/internal/domain/profile"
)

func candidate(t *testing.T, city string, cleanliness int, interests ...string) profile.Profile {
	t.Helper()
	p, err := profile.Normalize(profile.Raw{
		UserID:      uuid.New(),
		City:        city,
		Schedule:    "flexible",
		Cleanliness: cleanliness,
		MaxRent:     1000,
		Interests:   interests,
	})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	return p
}

func TestRank_EmptyPool(t *testing.T) {
	query := candidate(t, "lisbon", 3)
	out, err := Rank(query, nil, RankOptions{ExcludeUserID: query.UserID})
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(out.Candidates) != 0 || out.Skipped != 0 {
		t.Errorf("out = %+v, want empty outcome", out)
	}
}

func TestRank_ExcludesQueryingUser(t *testing.T) {
	query := candidate(t, "lisbon", 3)
	other := candidate(t, "lisbon", 3)

	out, err := Rank(query, []profile.Profile{query, other}, RankOptions{ExcludeUserID: query.UserID})
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(out.Candidates) != 1 || out.Candidates[0].Profile.UserID != other.UserID {
		t.Errorf("candidates = %+v, want only %s", out.Candidates, other.UserID)
	}
}

func TestRank_ExcludesDecidedPartners(t *testing.T) {
	query := candidate(t, "lisbon", 3)
	decided := candidate(t, "lisbon", 3)
	fresh := candidate(t, "lisbon", 3)

	out, err := Rank(query, []profile.Profile{decided, fresh}, RankOptions{
		ExcludeUserID:    query.UserID,
		ExcludedPartners: map[uuid.UUID]struct{}{decided.UserID: {}},
	})
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(out.Candidates) != 1 || out.Candidates[0].Profile.UserID != fresh.UserID {
		t.Errorf("candidates = %+v, want only %s", out.Candidates, fresh.UserID)
	}

	// Re-surfacing decided partners is the caller's choice.
	out, err = Rank(query, []profile.Profile{decided, fresh}, RankOptions{ExcludeUserID: query.UserID})
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(out.Candidates) != 2 {
		t.Errorf("got %d candidates, want 2 when decided partners are kept", len(out.Candidates))
	}
}

func TestRank_OrdersByScoreThenUserID(t *testing.T) {
	query := candidate(t, "lisbon", 3, "yoga", "jazz")

	strong := candidate(t, "lisbon", 3, "yoga", "jazz") // same city, both interests
	weak := candidate(t, "porto", 5)                    // different city, cleanliness far
	tieA := candidate(t, "lisbon", 3)
	tieB := candidate(t, "lisbon", 3)

	out, err := Rank(query, []profile.Profile{weak, tieB, strong, tieA}, RankOptions{ExcludeUserID: query.UserID})
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}

	for i := 1; i < len(out.Candidates); i++ {
		if out.Candidates[i-1].Score < out.Candidates[i].Score {
			t.Fatalf("not sorted descending at %d: %+v", i, out.Candidates)
		}
	}
	if out.Candidates[0].Profile.UserID != strong.UserID {
		t.Errorf("top = %s, want %s", out.Candidates[0].Profile.UserID, strong.UserID)
	}
	if out.Candidates[len(out.Candidates)-1].Profile.UserID != weak.UserID {
		t.Errorf("bottom = %s, want %s", out.Candidates[len(out.Candidates)-1].Profile.UserID, weak.UserID)
	}

	// Equal scores break ties by userId ascending.
	var tiePos []string
	for _, c := range out.Candidates {
		if c.Profile.UserID == tieA.UserID || c.Profile.UserID == tieB.UserID {
			tiePos = append(tiePos, c.Profile.UserID.String())
		}
	}
	if len(tiePos) != 2 || tiePos[0] > tiePos[1] {
		t.Errorf("tie order = %v, want userId ascending", tiePos)
	}
}

func TestRank_DeterministicAcrossCalls(t *testing.T) {
	query := candidate(t, "lisbon", 3, "yoga")
	pool := make([]profile.Profile, 0, 120)
	for i := 0; i < 120; i++ {
		pool = append(pool, candidate(t, "lisbon", 1+i%5, fmt.Sprintf("hobby-%d", i%7)))
	}

	first, err := Rank(query, pool, RankOptions{ExcludeUserID: query.UserID, Workers: 4})
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Rank(query, pool, RankOptions{ExcludeUserID: query.UserID, Workers: 4})
		if err != nil {
			t.Fatalf("Rank: %v", err)
		}
		if !reflect.DeepEqual(first.Candidates, again.Candidates) {
			t.Fatal("ranking not reproducible for identical inputs")
		}
	}
}

func TestRank_SkipsMalformedCandidates(t *testing.T) {
	query := candidate(t, "lisbon", 3)
	ok := candidate(t, "lisbon", 3)
	bad := candidate(t, "lisbon", 3)
	bad.Cleanliness = 7

	out, err := Rank(query, []profile.Profile{ok, bad}, RankOptions{ExcludeUserID: query.UserID})
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(out.Candidates) != 1 {
		t.Errorf("got %d candidates, want 1", len(out.Candidates))
	}
	if out.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", out.Skipped)
	}
}

func TestRank_Limit(t *testing.T) {
	query := candidate(t, "lisbon", 3)
	pool := []profile.Profile{
		candidate(t, "lisbon", 3),
		candidate(t, "lisbon", 3),
		candidate(t, "lisbon", 3),
	}

	out, err := Rank(query, pool, RankOptions{ExcludeUserID: query.UserID, Limit: 2})
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(out.Candidates) != 2 {
		t.Errorf("got %d candidates, want 2", len(out.Candidates))
	}
}

func TestRank_InvalidQueryPropagates(t *testing.T) {
	query := candidate(t, "lisbon", 3)
	query.MaxRent = -10

	_, err := Rank(query, []profile.Profile{candidate(t, "lisbon", 3)}, RankOptions{})
	if !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("err = %v, want ErrInvalidProfile", err)
	}
}
