package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"room-sync/internal/domain/match"
	"room-sync/internal/domain/profile"
	"room-sync/internal/repository"
)

type mockProfileRepo struct {
	byUser     map[uuid.UUID]profile.Raw
	candidates []profile.Raw
	listErr    error
	upserted   []profile.Raw
}

func (m *mockProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (profile.Raw, error) {
	raw, ok := m.byUser[userID]
	if !ok {
		return profile.Raw{}, profile.ErrNotFound
	}
	return raw, nil
}

func (m *mockProfileRepo) Upsert(_ context.Context, raw profile.Raw) error {
	m.upserted = append(m.upserted, raw)
	return nil
}

func (m *mockProfileRepo) ListCandidates(context.Context, repository.CandidateFilter) ([]profile.Raw, error) {
	return m.candidates, m.listErr
}

type mockMatchRepo struct {
	created    []match.Match
	createErr  error
	byID       map[uuid.UUID]match.Match
	updated    map[uuid.UUID]match.Status
	decidedIDs []uuid.UUID
}

func (m *mockMatchRepo) Create(_ context.Context, mm match.Match) (match.Match, error) {
	if m.createErr != nil {
		return match.Match{}, m.createErr
	}
	if mm.ID == uuid.Nil {
		mm.ID = uuid.New()
	}
	mm.UserAID, mm.UserBID = match.CanonicalPair(mm.UserAID, mm.UserBID)
	mm.Status = match.StatusPending
	m.created = append(m.created, mm)
	return mm, nil
}

func (m *mockMatchRepo) GetByID(_ context.Context, id uuid.UUID) (match.Match, error) {
	mm, ok := m.byID[id]
	if !ok {
		return match.Match{}, match.ErrNotFound
	}
	return mm, nil
}

func (m *mockMatchRepo) UpdateStatus(_ context.Context, id uuid.UUID, to match.Status) (match.Match, error) {
	mm, ok := m.byID[id]
	if !ok {
		return match.Match{}, match.ErrNotFound
	}
	if mm.Status != match.StatusPending {
		return mm, match.ErrInvalidStateTransition
	}
	mm.Status = to
	m.byID[id] = mm
	if m.updated == nil {
		m.updated = make(map[uuid.UUID]match.Status)
	}
	m.updated[id] = to
	return mm, nil
}

func (m *mockMatchRepo) ListByUserAndStatus(_ context.Context, userID uuid.UUID, status match.Status) ([]match.Match, error) {
	out := make([]match.Match, 0)
	for _, mm := range m.byID {
		if mm.Involves(userID) && mm.Status == status {
			out = append(out, mm)
		}
	}
	return out, nil
}

func (m *mockMatchRepo) ListDecidedPartnerIDs(context.Context, uuid.UUID) ([]uuid.UUID, error) {
	return m.decidedIDs, nil
}

type mockCache struct {
	store    map[string][]byte
	deleted  []string
	patterns []string
}

func (m *mockCache) GetJSON(context.Context, string, any) (bool, error) { return false, nil }
func (m *mockCache) SetJSON(context.Context, string, any, time.Duration) error {
	return nil
}
func (m *mockCache) Delete(_ context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	return nil
}
func (m *mockCache) DeleteByPattern(_ context.Context, pattern string) error {
	m.patterns = append(m.patterns, pattern)
	return nil
}

func rawProfile(userID uuid.UUID, city string, cleanliness int, interests ...string) profile.Raw {
	return profile.Raw{
		UserID:      userID,
		Name:        "user-" + userID.String()[:8],
		City:        city,
		Schedule:    "flexible",
		Cleanliness: cleanliness,
		MaxRent:     1000,
		Interests:   interests,
	}
}

func TestRankCandidates_ProfileNotFound(t *testing.T) {
	uc := NewRankingUsecase(&mockProfileRepo{byUser: map[uuid.UUID]profile.Raw{}}, &mockMatchRepo{}, nil, nil)

	_, err := uc.RankCandidates(context.Background(), uuid.New(), RankParams{})
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("err = %v, want ErrProfileNotFound", err)
	}
}

func TestRankCandidates_IncompleteQueryProfile(t *testing.T) {
	me := uuid.New()
	bad := rawProfile(me, "lisbon", 9)
	uc := NewRankingUsecase(&mockProfileRepo{byUser: map[uuid.UUID]profile.Raw{me: bad}}, &mockMatchRepo{}, nil, nil)

	_, err := uc.RankCandidates(context.Background(), me, RankParams{})
	if !errors.Is(err, ErrIncompleteProfile) {
		t.Fatalf("err = %v, want ErrIncompleteProfile", err)
	}
}

func TestRankCandidates_OrdersAndExcludes(t *testing.T) {
	me := uuid.New()
	strong := uuid.New()
	weak := uuid.New()
	decided := uuid.New()

	profiles := &mockProfileRepo{
		byUser: map[uuid.UUID]profile.Raw{me: rawProfile(me, "lisbon", 3, "yoga")},
		candidates: []profile.Raw{
			rawProfile(me, "lisbon", 3, "yoga"), // self, must vanish
			rawProfile(strong, "lisbon", 3, "yoga"),
			rawProfile(weak, "porto", 1),
			rawProfile(decided, "lisbon", 3, "yoga"),
		},
	}
	matches := &mockMatchRepo{decidedIDs: []uuid.UUID{decided}}

	uc := NewRankingUsecase(profiles, matches, nil, nil)
	res, err := uc.RankCandidates(context.Background(), me, RankParams{})
	if err != nil {
		t.Fatalf("RankCandidates: %v", err)
	}

	if len(res.Items) != 2 {
		t.Fatalf("items = %d, want 2 (self and decided excluded)", len(res.Items))
	}
	if res.Items[0].UserID != strong || res.Items[1].UserID != weak {
		t.Errorf("order = [%s %s], want strong first", res.Items[0].UserID, res.Items[1].UserID)
	}
	if res.Items[0].Score <= res.Items[1].Score {
		t.Errorf("scores not descending: %d <= %d", res.Items[0].Score, res.Items[1].Score)
	}
}

func TestRankCandidates_IncludeDecidedResurfaces(t *testing.T) {
	me := uuid.New()
	decided := uuid.New()

	profiles := &mockProfileRepo{
		byUser:     map[uuid.UUID]profile.Raw{me: rawProfile(me, "lisbon", 3)},
		candidates: []profile.Raw{rawProfile(decided, "lisbon", 3)},
	}
	matches := &mockMatchRepo{decidedIDs: []uuid.UUID{decided}}

	uc := NewRankingUsecase(profiles, matches, nil, nil)
	res, err := uc.RankCandidates(context.Background(), me, RankParams{IncludeDecided: true})
	if err != nil {
		t.Fatalf("RankCandidates: %v", err)
	}
	if len(res.Items) != 1 || res.Items[0].UserID != decided {
		t.Errorf("items = %+v, want the decided partner back", res.Items)
	}
}

func TestRankCandidates_SkipsMalformedAndReportsCount(t *testing.T) {
	me := uuid.New()
	ok := uuid.New()
	broken := uuid.New()

	brokenRaw := rawProfile(broken, "lisbon", 3)
	brokenRaw.Schedule = "whenever"

	profiles := &mockProfileRepo{
		byUser:     map[uuid.UUID]profile.Raw{me: rawProfile(me, "lisbon", 3)},
		candidates: []profile.Raw{rawProfile(ok, "lisbon", 3), brokenRaw},
	}

	uc := NewRankingUsecase(profiles, &mockMatchRepo{}, nil, nil)
	res, err := uc.RankCandidates(context.Background(), me, RankParams{})
	if err != nil {
		t.Fatalf("RankCandidates: %v", err)
	}
	if len(res.Items) != 1 {
		t.Errorf("items = %d, want 1", len(res.Items))
	}
	if res.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", res.Skipped)
	}
}

func TestRankCandidates_EmptyPool(t *testing.T) {
	me := uuid.New()
	profiles := &mockProfileRepo{byUser: map[uuid.UUID]profile.Raw{me: rawProfile(me, "lisbon", 3)}}

	uc := NewRankingUsecase(profiles, &mockMatchRepo{}, nil, nil)
	res, err := uc.RankCandidates(context.Background(), me, RankParams{})
	if err != nil {
		t.Fatalf("RankCandidates: %v", err)
	}
	if len(res.Items) != 0 || res.Skipped != 0 {
		t.Errorf("res = %+v, want empty success", res)
	}
}

func TestRankCandidates_Limit(t *testing.T) {
	me := uuid.New()
	profiles := &mockProfileRepo{
		byUser: map[uuid.UUID]profile.Raw{me: rawProfile(me, "lisbon", 3)},
		candidates: []profile.Raw{
			rawProfile(uuid.New(), "lisbon", 3),
			rawProfile(uuid.New(), "lisbon", 3),
			rawProfile(uuid.New(), "lisbon", 3),
		},
	}

	uc := NewRankingUsecase(profiles, &mockMatchRepo{}, nil, nil)
	res, err := uc.RankCandidates(context.Background(), me, RankParams{Limit: 2})
	if err != nil {
		t.Fatalf("RankCandidates: %v", err)
	}
	if len(res.Items) != 2 {
		t.Errorf("items = %d, want 2", len(res.Items))
	}
}
