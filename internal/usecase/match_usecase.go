package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"room-sync/internal/domain/match"
	"room-sync/internal/domain/matching"
	"room-sync/internal/domain/profile"
	"room-sync/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrSelfMatch              = errors.New("cannot match a user with themselves")
	ErrDuplicateMatch         = errors.New("match already exists for this pair")
	ErrMatchNotFound          = errors.New("match not found")
	ErrNotAuthorized          = errors.New("not a participant of this match")
	ErrInvalidMatchStatus     = errors.New("invalid match status")
	ErrInvalidStateTransition = errors.New("match already decided")
)

// MatchNotifier pushes match lifecycle events to connected clients. A nil
// notifier disables notifications.
type MatchNotifier interface {
	MatchCreated(userID, partnerID, matchID uuid.UUID, score int)
	MatchDecided(userID, matchID uuid.UUID, status string)
}

type AcceptedMatch struct {
	MatchID     uuid.UUID `json:"match_id"`
	PartnerID   uuid.UUID `json:"partner_id"`
	PartnerName string    `json:"partner_name"`
	Score       int       `json:"score"`
	CreatedAt   time.Time `json:"created_at"`
}

type MatchUsecase interface {
	CreateMatch(ctx context.Context, requesterID, otherID uuid.UUID) (match.Match, error)
	UpdateStatus(ctx context.Context, matchID, userID uuid.UUID, status string) (match.Match, error)
	ListAccepted(ctx context.Context, userID uuid.UUID) ([]AcceptedMatch, error)
}

type Matches struct {
	profiles repository.ProfileRepository
	matches  repository.MatchRepository
	cache    RankCache
	notifier MatchNotifier
	logger   *log.Logger
}

func NewMatchUsecase(profiles repository.ProfileRepository, matches repository.MatchRepository, cache RankCache, notifier MatchNotifier, logger *log.Logger) *Matches {
	return &Matches{profiles: profiles, matches: matches, cache: cache, notifier: notifier, logger: logger}
}

// CreateMatch persists a pending match between the requester and another
// user. The compatibility score is computed server-side from the two current
// profiles so a stored score can never disagree with the engine.
func (u *Matches) CreateMatch(ctx context.Context, requesterID, otherID uuid.UUID) (match.Match, error) {
	if requesterID == uuid.Nil {
		return match.Match{}, ErrUnauthorized
	}
	if otherID == uuid.Nil {
		return match.Match{}, ErrProfileNotFound
	}
	if requesterID == otherID {
		return match.Match{}, ErrSelfMatch
	}

	self, err := u.loadProfile(ctx, requesterID)
	if err != nil {
		return match.Match{}, err
	}
	other, err := u.loadProfile(ctx, otherID)
	if err != nil {
		return match.Match{}, err
	}

	res, err := matching.Calculate(self, other)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Match] engine rejected validated profiles | a=%s b=%s err=%v", requesterID, otherID, err)
		}
		return match.Match{}, ErrInternal
	}

	created, err := u.matches.Create(ctx, match.Match{
		UserAID: requesterID,
		UserBID: otherID,
		Score:   res.Score,
	})
	if err != nil {
		if errors.Is(err, match.ErrDuplicate) {
			return match.Match{}, ErrDuplicateMatch
		}
		return match.Match{}, ErrInternal
	}

	u.invalidateRankings(ctx)
	if u.notifier != nil {
		u.notifier.MatchCreated(otherID, requesterID, created.ID, created.Score)
	}

	return created, nil
}

// UpdateStatus moves a pending match into a terminal state. Only the two
// participants may decide, and a decided match never changes again.
func (u *Matches) UpdateStatus(ctx context.Context, matchID, userID uuid.UUID, status string) (match.Match, error) {
	if userID == uuid.Nil {
		return match.Match{}, ErrUnauthorized
	}

	to, err := match.ParseStatus(status)
	if err != nil || !to.Terminal() {
		return match.Match{}, ErrInvalidMatchStatus
	}

	m, err := u.matches.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, match.ErrNotFound) {
			return match.Match{}, ErrMatchNotFound
		}
		return match.Match{}, ErrInternal
	}

	if !m.Involves(userID) {
		return match.Match{}, ErrNotAuthorized
	}
	if !m.Status.CanTransitionTo(to) {
		return match.Match{}, ErrInvalidStateTransition
	}

	updated, err := u.matches.UpdateStatus(ctx, matchID, to)
	if err != nil {
		switch {
		case errors.Is(err, match.ErrInvalidStateTransition):
			// Lost a race with the other participant's decision.
			return match.Match{}, ErrInvalidStateTransition
		case errors.Is(err, match.ErrNotFound):
			return match.Match{}, ErrMatchNotFound
		default:
			return match.Match{}, ErrInternal
		}
	}

	u.invalidateRankings(ctx)
	if u.notifier != nil {
		partner := updated.PartnerOf(userID)
		if partner != uuid.Nil {
			u.notifier.MatchDecided(partner, updated.ID, string(updated.Status))
		}
	}

	return updated, nil
}

func (u *Matches) ListAccepted(ctx context.Context, userID uuid.UUID) ([]AcceptedMatch, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	ms, err := u.matches.ListByUserAndStatus(ctx, userID, match.StatusAccepted)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]AcceptedMatch, 0, len(ms))
	for _, m := range ms {
		partnerID := m.PartnerOf(userID)
		item := AcceptedMatch{
			MatchID:   m.ID,
			PartnerID: partnerID,
			Score:     m.Score,
			CreatedAt: m.CreatedAt,
		}
		if raw, err := u.profiles.GetByUserID(ctx, partnerID); err == nil {
			item.PartnerName = raw.Name
		}
		out = append(out, item)
	}
	return out, nil
}

func (u *Matches) loadProfile(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	raw, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return profile.Profile{}, ErrProfileNotFound
		}
		return profile.Profile{}, ErrInternal
	}
	p, err := profile.Normalize(raw)
	if err != nil {
		return profile.Profile{}, ErrIncompleteProfile
	}
	return p, nil
}

func (u *Matches) invalidateRankings(ctx context.Context) {
	if u.cache == nil {
		return
	}
	_ = u.cache.DeleteByPattern(ctx, RankCacheInvalidationPattern())
}
