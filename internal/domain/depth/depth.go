// Package depth ranks players within each team and assembles the team
// depth chart.
package depth

import (
	"fmt"
	"sort"

	"github.com/okian/depthchart/internal/domain/model"
)

// NthBest returns the n-th best player of group by metric. The sort is
// stable and descending, so ties keep input order. When the group has
// fewer than n players the policy applies: PolicyError fails with
// ErrEmptyGroup, PolicyExclude reports ok=false, PolicyLegacy returns the
// group's lowest scorer. An empty group is never ok.
func NthBest(group []model.ScoredPlayer, n int, metric model.Metric, policy Policy) (p model.ScoredPlayer, ok bool, err error) {
	if n < 1 {
		return model.ScoredPlayer{}, false, fmt.Errorf("%w: got %d", ErrInvalidRank, n)
	}
	if len(group) < n {
		switch {
		case policy == PolicyError:
			return model.ScoredPlayer{}, false, fmt.Errorf("%w: %d players, rank %d", ErrEmptyGroup, len(group), n)
		case policy == PolicyExclude, len(group) == 0:
			return model.ScoredPlayer{}, false, nil
		}
		n = len(group)
	}

	sorted := make([]model.ScoredPlayer, len(group))
	copy(sorted, group)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value(metric) > sorted[j].Value(metric)
	})
	return sorted[n-1], true, nil
}

// Aggregate returns, for each team in subset, the n-th best player by
// metric. Entries are sorted by team. Teams the policy excludes have no
// entry.
func Aggregate(subset model.PositionSubset, metric model.Metric, n int, policy Policy) ([]model.TeamDepthEntry, error) {
	if !subset.Role.HasMetric(metric) {
		return nil, fmt.Errorf("%w: %s has no %s", ErrUnsupportedMetric, subset.Role, metric)
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRank, n)
	}

	groups := make(map[string][]model.ScoredPlayer)
	for _, p := range subset.Rows {
		groups[p.Team] = append(groups[p.Team], p)
	}
	teams := make([]string, 0, len(groups))
	for t := range groups {
		teams = append(teams, t)
	}
	sort.Strings(teams)

	slot := model.Slot{Role: subset.Role, Rank: n}
	out := make([]model.TeamDepthEntry, 0, len(teams))
	for _, team := range teams {
		p, ok, err := NthBest(groups[team], n, metric, policy)
		if err != nil {
			return nil, fmt.Errorf("team %s slot %s: %w", team, slot, err)
		}
		if !ok {
			continue
		}
		out = append(out, model.TeamDepthEntry{
			Team:   team,
			Slot:   slot,
			Player: p.Player,
			Score:  p.Value(metric),
		})
	}
	return out, nil
}
