package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"room-sync/internal/domain/match"
	"room-sync/internal/domain/profile"
)

type recordedNotification struct {
	kind    string
	userID  uuid.UUID
	matchID uuid.UUID
	status  string
}

type mockNotifier struct {
	events []recordedNotification
}

func (m *mockNotifier) MatchCreated(userID, _, matchID uuid.UUID, _ int) {
	m.events = append(m.events, recordedNotification{kind: "created", userID: userID, matchID: matchID})
}

func (m *mockNotifier) MatchDecided(userID, matchID uuid.UUID, status string) {
	m.events = append(m.events, recordedNotification{kind: "decided", userID: userID, matchID: matchID, status: status})
}

func matchFixture(t *testing.T) (*Matches, *mockProfileRepo, *mockMatchRepo, *mockNotifier, uuid.UUID, uuid.UUID) {
	t.Helper()
	a := uuid.New()
	b := uuid.New()
	profiles := &mockProfileRepo{byUser: map[uuid.UUID]profile.Raw{
		a: rawProfile(a, "lisbon", 3, "yoga"),
		b: rawProfile(b, "lisbon", 4, "yoga"),
	}}
	matches := &mockMatchRepo{byID: map[uuid.UUID]match.Match{}}
	notifier := &mockNotifier{}
	uc := NewMatchUsecase(profiles, matches, &mockCache{}, notifier, nil)
	return uc, profiles, matches, notifier, a, b
}

func TestCreateMatch_ComputesScoreServerSide(t *testing.T) {
	uc, _, matches, notifier, a, b := matchFixture(t)

	m, err := uc.CreateMatch(context.Background(), a, b)
	if err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}
	// Same city, booleans, schedule, cleanliness within 1, budget equal, one
	// shared interest: 20+10+10+10+10+5+10.
	if m.Score != 75 {
		t.Errorf("score = %d, want 75", m.Score)
	}
	if m.Status != match.StatusPending {
		t.Errorf("status = %s, want pending", m.Status)
	}
	if len(matches.created) != 1 {
		t.Fatalf("created = %d records, want 1", len(matches.created))
	}
	if matches.created[0].UserAID.String() > matches.created[0].UserBID.String() {
		t.Error("pair not stored in canonical order")
	}
	if len(notifier.events) != 1 || notifier.events[0].kind != "created" || notifier.events[0].userID != b {
		t.Errorf("notifications = %+v, want one created event for the partner", notifier.events)
	}
}

func TestCreateMatch_SelfMatchRejected(t *testing.T) {
	uc, _, _, _, a, _ := matchFixture(t)

	if _, err := uc.CreateMatch(context.Background(), a, a); !errors.Is(err, ErrSelfMatch) {
		t.Errorf("err = %v, want ErrSelfMatch", err)
	}
}

func TestCreateMatch_DuplicatePair(t *testing.T) {
	uc, _, matches, _, a, b := matchFixture(t)

	if _, err := uc.CreateMatch(context.Background(), a, b); err != nil {
		t.Fatalf("first CreateMatch: %v", err)
	}

	matches.createErr = match.ErrDuplicate
	if _, err := uc.CreateMatch(context.Background(), b, a); !errors.Is(err, ErrDuplicateMatch) {
		t.Errorf("err = %v, want ErrDuplicateMatch for the reversed pair", err)
	}
	if len(matches.created) != 1 {
		t.Errorf("created = %d records, want exactly 1", len(matches.created))
	}
}

func TestCreateMatch_MissingProfile(t *testing.T) {
	uc, _, _, _, a, _ := matchFixture(t)

	if _, err := uc.CreateMatch(context.Background(), a, uuid.New()); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("err = %v, want ErrProfileNotFound", err)
	}
}

func TestUpdateStatus_AcceptPending(t *testing.T) {
	uc, _, matches, notifier, a, b := matchFixture(t)
	id := uuid.New()
	matches.byID[id] = match.Match{ID: id, UserAID: a, UserBID: b, Status: match.StatusPending}

	updated, err := uc.UpdateStatus(context.Background(), id, a, "accepted")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != match.StatusAccepted {
		t.Errorf("status = %s, want accepted", updated.Status)
	}

	found := false
	for _, e := range notifier.events {
		if e.kind == "decided" && e.userID == b && e.status == "accepted" {
			found = true
		}
	}
	if !found {
		t.Errorf("notifications = %+v, want a decided event for the partner", notifier.events)
	}
}

func TestUpdateStatus_TerminalIsFinal(t *testing.T) {
	uc, _, matches, _, a, b := matchFixture(t)
	id := uuid.New()
	matches.byID[id] = match.Match{ID: id, UserAID: a, UserBID: b, Status: match.StatusRejected}

	_, err := uc.UpdateStatus(context.Background(), id, a, "accepted")
	if !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("err = %v, want ErrInvalidStateTransition", err)
	}
	if got := matches.byID[id].Status; got != match.StatusRejected {
		t.Errorf("status mutated to %s, want rejected unchanged", got)
	}
}

func TestUpdateStatus_NonParticipant(t *testing.T) {
	uc, _, matches, _, a, b := matchFixture(t)
	id := uuid.New()
	matches.byID[id] = match.Match{ID: id, UserAID: a, UserBID: b, Status: match.StatusPending}

	if _, err := uc.UpdateStatus(context.Background(), id, uuid.New(), "accepted"); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("err = %v, want ErrNotAuthorized", err)
	}
}

func TestUpdateStatus_InvalidTarget(t *testing.T) {
	uc, _, matches, _, a, b := matchFixture(t)
	id := uuid.New()
	matches.byID[id] = match.Match{ID: id, UserAID: a, UserBID: b, Status: match.StatusPending}

	for _, bad := range []string{"pending", "maybe", ""} {
		if _, err := uc.UpdateStatus(context.Background(), id, a, bad); !errors.Is(err, ErrInvalidMatchStatus) {
			t.Errorf("UpdateStatus(%q) err = %v, want ErrInvalidMatchStatus", bad, err)
		}
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	uc, _, _, _, a, _ := matchFixture(t)

	if _, err := uc.UpdateStatus(context.Background(), uuid.New(), a, "accepted"); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("err = %v, want ErrMatchNotFound", err)
	}
}

func TestListAccepted_ResolvesPartnerNames(t *testing.T) {
	uc, profiles, matches, _, a, b := matchFixture(t)
	id := uuid.New()
	matches.byID[id] = match.Match{ID: id, UserAID: a, UserBID: b, Score: 75, Status: match.StatusAccepted}

	out, err := uc.ListAccepted(context.Background(), a)
	if err != nil {
		t.Fatalf("ListAccepted: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d matches, want 1", len(out))
	}
	if out[0].PartnerID != b {
		t.Errorf("partner = %s, want %s", out[0].PartnerID, b)
	}
	if want := profiles.byUser[b].Name; out[0].PartnerName != want {
		t.Errorf("partner name = %q, want %q", out[0].PartnerName, want)
	}
}

func TestCreateMatch_InvalidatesRankings(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	profiles := &mockProfileRepo{byUser: map[uuid.UUID]profile.Raw{
		a: rawProfile(a, "lisbon", 3),
		b: rawProfile(b, "lisbon", 3),
	}}
	cache := &mockCache{}
	uc := NewMatchUsecase(profiles, &mockMatchRepo{byID: map[uuid.UUID]match.Match{}}, cache, nil, nil)

	if _, err := uc.CreateMatch(context.Background(), a, b); err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}
	if len(cache.patterns) == 0 {
		t.Error("expected ranking cache invalidation after match creation")
	}
}
