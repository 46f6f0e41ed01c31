package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

const rankCachePrefix = "rank:"

type rankCacheKeyInput struct {
	UserID         string `json:"user_id"`
	City           string `json:"city"`
	Limit          int    `json:"limit"`
	IncludeDecided bool   `json:"include_decided"`
}

// RankCacheKey is stable for identical ranking requests: same user, same
// filters, same options.
func RankCacheKey(userID uuid.UUID, params RankParams) string {
	in := rankCacheKeyInput{
		UserID:         userID.String(),
		City:           strings.ToLower(strings.TrimSpace(params.City)),
		Limit:          params.Limit,
		IncludeDecided: params.IncludeDecided,
	}
	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return rankCachePrefix + hex.EncodeToString(sum[:])
}

// RankCacheInvalidationPattern matches every cached ranking. Profile and
// match writes change scores for an unbounded set of other users' rankings,
// so invalidation is deliberately broad.
func RankCacheInvalidationPattern() string {
	return rankCachePrefix + "*"
}
