package usecase

import (
	"context"
	"errors"

	"room-sync/internal/domain/profile"
	"room-sync/internal/repository"

	"github.com/google/uuid"
)

// ProfileInput is the untyped record accepted from the API; Normalize is the
// only gate between it and a stored profile.
type ProfileInput struct {
	Name         string   `json:"name"`
	City         string   `json:"city"`
	Smoking      bool     `json:"smoking"`
	Pets         bool     `json:"pets"`
	WorkFromHome bool     `json:"work_from_home"`
	Schedule     string   `json:"schedule"`
	Cleanliness  int      `json:"cleanliness"`
	MaxRent      float64  `json:"max_rent"`
	Interests    []string `json:"interests"`
}

type ProfileUsecase interface {
	Get(ctx context.Context, userID uuid.UUID) (profile.Profile, error)
	Upsert(ctx context.Context, userID uuid.UUID, in ProfileInput) (profile.Profile, error)
}

type Profiles struct {
	profiles repository.ProfileRepository
	cache    RankCache
}

func NewProfileUsecase(profiles repository.ProfileRepository, cache RankCache) *Profiles {
	return &Profiles{profiles: profiles, cache: cache}
}

func (u *Profiles) Get(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	if userID == uuid.Nil {
		return profile.Profile{}, ErrProfileNotFound
	}

	raw, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return profile.Profile{}, ErrProfileNotFound
		}
		return profile.Profile{}, ErrInternal
	}

	p, err := profile.Normalize(raw)
	if err != nil {
		// Rows are validated on write, so a stored profile failing
		// normalization indicates out-of-band writes.
		return profile.Profile{}, ErrIncompleteProfile
	}
	return p, nil
}

// Upsert validates through Normalize and stores the canonical form. A
// *profile.ValidationError is returned as-is so the handler can report every
// violated field.
func (u *Profiles) Upsert(ctx context.Context, userID uuid.UUID, in ProfileInput) (profile.Profile, error) {
	if userID == uuid.Nil {
		return profile.Profile{}, ErrUnauthorized
	}

	p, err := profile.Normalize(profile.Raw{
		UserID:       userID,
		Name:         in.Name,
		City:         in.City,
		Smoking:      in.Smoking,
		Pets:         in.Pets,
		WorkFromHome: in.WorkFromHome,
		Schedule:     in.Schedule,
		Cleanliness:  in.Cleanliness,
		MaxRent:      in.MaxRent,
		Interests:    in.Interests,
	})
	if err != nil {
		return profile.Profile{}, err
	}

	if err := u.profiles.Upsert(ctx, profile.Raw{
		UserID:       p.UserID,
		Name:         p.Name,
		City:         p.City,
		Smoking:      p.Smoking,
		Pets:         p.Pets,
		WorkFromHome: p.WorkFromHome,
		Schedule:     string(p.Schedule),
		Cleanliness:  p.Cleanliness,
		MaxRent:      p.MaxRent,
		Interests:    p.Interests,
	}); err != nil {
		return profile.Profile{}, ErrInternal
	}

	// A changed profile changes an unbounded set of other users' rankings.
	if u.cache != nil {
		_ = u.cache.DeleteByPattern(ctx, RankCacheInvalidationPattern())
	}

	return p, nil
}
