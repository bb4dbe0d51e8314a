package service

import (
	"context"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/sync/errgroup"

	"github.com/omarshaarawi/livescore/internal/models"
)

const rosterMatchThreshold = 0.6

// FindRosters lists the league's rosters with resolved team names. With a
// non-empty query only rosters whose team or owner name resembles it are
// kept, closest first.
func (s *ScoreboardService) FindRosters(ctx context.Context, leagueID, query string) ([]models.RosterSummary, error) {
	var (
		rosters []models.Roster
		users   []models.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rosters, err = s.api.GetRosters(gctx, leagueID)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = s.api.GetUsers(gctx, leagueID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	usersByID := indexUsers(users)
	summaries := make([]models.RosterSummary, 0, len(rosters))
	for _, r := range rosters {
		summaries = append(summaries, models.RosterSummary{
			RosterID:  r.RosterID,
			Name:      TeamName(r, usersByID),
			OwnerName: usersByID[r.OwnerID].DisplayName,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].RosterID < summaries[j].RosterID
	})

	query = strings.TrimSpace(query)
	if query == "" {
		return summaries, nil
	}
	return rankRosters(summaries, query), nil
}

func rankRosters(summaries []models.RosterSummary, query string) []models.RosterSummary {
	type scored struct {
		summary models.RosterSummary
		rank    matchRank
	}

	var matches []scored
	for _, summary := range summaries {
		var best *matchRank
		for _, name := range []string{summary.Name, summary.OwnerName} {
			if name == "" {
				continue
			}
			rank, ok := nameMatch(query, name)
			if ok && (best == nil || rank.less(*best)) {
				best = &rank
			}
		}
		if best != nil {
			matches = append(matches, scored{summary: summary, rank: *best})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].rank.less(matches[j].rank)
	})

	result := make([]models.RosterSummary, len(matches))
	for i, m := range matches {
		result[i] = m.summary
	}
	return result
}

// matchRank orders subsequence matches ahead of names that only clear the
// similarity threshold, then by edit distance.
type matchRank struct {
	subsequence bool
	distance    int
}

func (r matchRank) less(o matchRank) bool {
	if r.subsequence != o.subsequence {
		return r.subsequence
	}
	return r.distance < o.distance
}

func nameMatch(query, name string) (matchRank, bool) {
	q := strings.ToLower(query)
	n := strings.ToLower(name)
	rank := matchRank{distance: fuzzy.LevenshteinDistance(q, n)}

	if fuzzy.MatchNormalizedFold(query, name) {
		rank.subsequence = true
		return rank, true
	}

	maxLen := float64(max(len(q), len(n)))
	similarity := 1 - float64(rank.distance)/maxLen
	return rank, similarity > rosterMatchThreshold
}
