package usecase

import (
	"context"
	"errors"
	"log"

	"room-sync/internal/domain/matching"
	"room-sync/internal/domain/profile"
	"room-sync/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrProfileNotFound = errors.New("profile not found")

	// ErrIncompleteProfile means the requesting user's stored profile does
	// not pass validation and cannot be ranked against anyone.
	ErrIncompleteProfile = errors.New("preference profile incomplete")

	ErrInternal = errors.New("internal error")
)

type RankParams struct {
	City           string
	Limit          int
	IncludeDecided bool
}

type RankedItem struct {
	UserID    uuid.UUID          `json:"user_id"`
	Name      string             `json:"name"`
	Score     int                `json:"score"`
	Breakdown matching.Breakdown `json:"breakdown"`
}

type RankResult struct {
	Items []RankedItem `json:"items"`

	// Skipped counts candidates dropped because their stored profile failed
	// validation. Surfaced so a growing number of malformed rows is visible.
	Skipped int `json:"skipped"`
}

type RankingUsecase interface {
	RankCandidates(ctx context.Context, userID uuid.UUID, params RankParams) (RankResult, error)
}

type Ranking struct {
	profiles repository.ProfileRepository
	matches  repository.MatchRepository
	cache    RankCache
	logger   *log.Logger
}

func NewRankingUsecase(profiles repository.ProfileRepository, matches repository.MatchRepository, cache RankCache, logger *log.Logger) *Ranking {
	return &Ranking{profiles: profiles, matches: matches, cache: cache, logger: logger}
}

func (u *Ranking) RankCandidates(ctx context.Context, userID uuid.UUID, params RankParams) (RankResult, error) {
	if userID == uuid.Nil {
		return RankResult{}, ErrUnauthorized
	}
	if params.Limit < 0 {
		params.Limit = 0
	}

	cacheKey := RankCacheKey(userID, params)
	if u.cache != nil {
		var cached RankResult
		if hit, err := u.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	raw, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return RankResult{}, ErrProfileNotFound
		}
		return RankResult{}, ErrInternal
	}

	query, err := profile.Normalize(raw)
	if err != nil {
		return RankResult{}, ErrIncompleteProfile
	}

	rawCandidates, err := u.profiles.ListCandidates(ctx, repository.CandidateFilter{City: params.City})
	if err != nil {
		return RankResult{}, ErrInternal
	}

	skipped := 0
	candidates := make([]profile.Profile, 0, len(rawCandidates))
	for _, rc := range rawCandidates {
		c, err := profile.Normalize(rc)
		if err != nil {
			skipped++
			continue
		}
		candidates = append(candidates, c)
	}

	opts := matching.RankOptions{ExcludeUserID: userID, Limit: params.Limit}
	if !params.IncludeDecided {
		partnerIDs, err := u.matches.ListDecidedPartnerIDs(ctx, userID)
		if err != nil {
			return RankResult{}, ErrInternal
		}
		if len(partnerIDs) > 0 {
			opts.ExcludedPartners = make(map[uuid.UUID]struct{}, len(partnerIDs))
			for _, id := range partnerIDs {
				opts.ExcludedPartners[id] = struct{}{}
			}
		}
	}

	outcome, err := matching.Rank(query, candidates, opts)
	if err != nil {
		// Candidates are pre-validated, so this only fires on an engine-side
		// invariant failure. Loud log, opaque error to the caller.
		if u.logger != nil {
			u.logger.Printf("[Ranking] engine rejected pre-validated input | user_id=%s err=%v", userID, err)
		}
		return RankResult{}, ErrInternal
	}

	items := make([]RankedItem, 0, len(outcome.Candidates))
	for _, c := range outcome.Candidates {
		items = append(items, RankedItem{
			UserID:    c.Profile.UserID,
			Name:      c.Profile.Name,
			Score:     c.Score,
			Breakdown: c.Breakdown,
		})
	}

	result := RankResult{Items: items, Skipped: skipped + outcome.Skipped}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, cacheKey, result, 0)
	}

	return result, nil
}
