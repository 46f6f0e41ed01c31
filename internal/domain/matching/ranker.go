package matching

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"room-sync/internal/domain/profile"
)

// parallelThreshold is the pool size above which candidate scoring fans out
// to a bounded set of workers. Each comparison is independent and pure, so
// concurrency cannot change the outcome; sorting happens after all scores
// land.
const parallelThreshold = 64

const defaultWorkers = 8

type RankOptions struct {
	// ExcludeUserID removes the querying user from the pool; a user never
	// matches themselves.
	ExcludeUserID uuid.UUID

	// ExcludedPartners removes candidates already linked to the querying
	// user by a decided match. Leave empty to re-surface them.
	ExcludedPartners map[uuid.UUID]struct{}

	// Limit truncates the ranked result. Zero means unbounded.
	Limit int

	// Workers caps scoring concurrency for large pools. Zero picks a
	// default.
	Workers int
}

type RankedCandidate struct {
	Profile   profile.Profile
	Score     int
	Breakdown Breakdown
}

type RankOutcome struct {
	Candidates []RankedCandidate

	// Skipped counts candidates dropped because they failed profile
	// invariants. A single malformed candidate must not abort ranking for
	// the whole pool, but callers want to know it happened.
	Skipped int
}

// Rank scores every eligible candidate against the query profile and returns
// them ordered by score descending, ties broken by userId ascending so the
// ordering is reproducible across calls with identical input.
func Rank(query profile.Profile, candidates []profile.Profile, opts RankOptions) (RankOutcome, error) {
	if err := query.Validate(); err != nil {
		// Same defensive contract as Calculate: a bad query profile is an
		// upstream bug, not a rankable state.
		return RankOutcome{}, fmt.Errorf("%w: query %s: %v", ErrInvalidProfile, query.UserID, err)
	}

	eligible := make([]profile.Profile, 0, len(candidates))
	for _, c := range candidates {
		if c.UserID == opts.ExcludeUserID {
			continue
		}
		if _, decided := opts.ExcludedPartners[c.UserID]; decided {
			continue
		}
		eligible = append(eligible, c)
	}

	ranked, skipped := scoreAll(query, eligible, opts.Workers)

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Profile.UserID.String() < ranked[j].Profile.UserID.String()
	})

	if opts.Limit > 0 && len(ranked) > opts.Limit {
		ranked = ranked[:opts.Limit]
	}

	return RankOutcome{Candidates: ranked, Skipped: skipped}, nil
}

func scoreAll(query profile.Profile, eligible []profile.Profile, workers int) ([]RankedCandidate, int) {
	if len(eligible) == 0 {
		return []RankedCandidate{}, 0
	}
	if len(eligible) < parallelThreshold {
		return scoreSequential(query, eligible)
	}
	return scoreParallel(query, eligible, workers)
}

func scoreSequential(query profile.Profile, eligible []profile.Profile) ([]RankedCandidate, int) {
	out := make([]RankedCandidate, 0, len(eligible))
	skipped := 0
	for _, c := range eligible {
		res, err := Calculate(query, c)
		if err != nil {
			skipped++
			continue
		}
		out = append(out, RankedCandidate{Profile: c, Score: res.Score, Breakdown: res.Breakdown})
	}
	return out, skipped
}

func scoreParallel(query profile.Profile, eligible []profile.Profile, workers int) ([]RankedCandidate, int) {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if workers > len(eligible) {
		workers = len(eligible)
	}

	type slot struct {
		cand RankedCandidate
		ok   bool
	}
	slots := make([]slot, len(eligible))
	idx := make(chan int, len(eligible))
	for i := range eligible {
		idx <- i
	}
	close(idx)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range idx {
				res, err := Calculate(query, eligible[i])
				if err != nil {
					continue
				}
				slots[i] = slot{
					cand: RankedCandidate{Profile: eligible[i], Score: res.Score, Breakdown: res.Breakdown},
					ok:   true,
				}
			}
		}()
	}
	wg.Wait()

	out := make([]RankedCandidate, 0, len(eligible))
	skipped := 0
	for _, s := range slots {
		if !s.ok {
			skipped++
			continue
		}
		out = append(out, s.cand)
	}
	return out, skipped
}
