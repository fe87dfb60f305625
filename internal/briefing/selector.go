// Package briefing turns a scored candidate pool into the user's daily
// Top 3 briefing and the longer digest, and persists the selection.
package briefing

import (
	"github.com/google/uuid"
	"github.com/mvasiljevic/feed-curator/internal/domain"
	"github.com/mvasiljevic/feed-curator/internal/filter"
	"github.com/mvasiljevic/feed-curator/internal/scoring"
)

// Pick is one selected slot before persistence.
type Pick struct {
	Item   domain.ContentItem
	Score  float64
	Reason domain.SelectionReason
}

// ImportanceSignals carries the editorial and trending marks computed
// upstream of selection.
type ImportanceSignals struct {
	FrontPage map[uuid.UUID]struct{}
	Trending  map[uuid.UUID]struct{}
}

func (s ImportanceSignals) frontPage(id uuid.UUID) bool {
	_, ok := s.FrontPage[id]
	return ok
}

func (s ImportanceSignals) trending(id uuid.UUID) bool {
	_, ok := s.Trending[id]
	return ok
}

// SelectTop3 picks the briefing slots from the reranked pool.
//
// Importance boosts are applied on top of the personalized score before
// picking. Slots 1 and 2 must come from distinct sources; slot 3 prefers
// a followed source the first two slots did not cover, falling back to
// the best remaining candidate. An item fills at most one slot.
func SelectTop3(ranked []scoring.ScoredItem, signals ImportanceSignals, ctx *scoring.Context, w scoring.Weights) []Pick {
	if len(ranked) == 0 {
		return nil
	}

	boosted := make([]scoring.ScoredItem, len(ranked))
	copy(boosted, ranked)
	for i := range boosted {
		id := boosted[i].Item.ID
		if signals.frontPage(id) {
			boosted[i].Score += w.FrontPageBoost
		}
		if signals.trending(id) {
			boosted[i].Score += w.TrendingBoost
		}
	}
	scoring.SortByScore(boosted)

	used := make(map[uuid.UUID]struct{}, domain.BriefingSize)
	usedSources := make(map[uuid.UUID]struct{}, domain.BriefingSize)
	var picks []Pick

	take := func(s scoring.ScoredItem) {
		used[s.Item.ID] = struct{}{}
		usedSources[s.Item.SourceID] = struct{}{}
		picks = append(picks, Pick{
			Item:   s.Item,
			Score:  s.Score,
			Reason: reasonFor(s.Item, signals, ctx),
		})
	}

	// Slots 1 and 2: best scores from distinct sources.
	for _, s := range boosted {
		if len(picks) == 2 {
			break
		}
		if _, ok := used[s.Item.ID]; ok {
			continue
		}
		if _, ok := usedSources[s.Item.SourceID]; ok {
			continue
		}
		take(s)
	}

	// Slot 3: a followed source not yet represented, when one qualifies.
	if len(picks) < domain.BriefingSize {
		for _, s := range boosted {
			if _, ok := used[s.Item.ID]; ok {
				continue
			}
			if _, ok := usedSources[s.Item.SourceID]; ok {
				continue
			}
			if ctx != nil && ctx.Follows(s.Item.SourceID) {
				take(s)
				break
			}
		}
	}

	// Fallback: best remaining items, still one per source. A thin pool
	// yields fewer slots rather than a source holding two.
	for _, s := range boosted {
		if len(picks) == domain.BriefingSize {
			break
		}
		if _, ok := used[s.Item.ID]; ok {
			continue
		}
		if _, ok := usedSources[s.Item.SourceID]; ok {
			continue
		}
		take(s)
	}

	return picks
}

// ensureOpposing guarantees a perspective run surfaces at least one
// counter-perspective: when no pick's source bias opposes the user's,
// the last slot is swapped for the best-ranked opposing candidate from
// a source not already selected. Picks stay untouched when the pool has
// no such candidate.
func ensureOpposing(picks []Pick, ranked []scoring.ScoredItem, p filter.PerspectivePreset) []Pick {
	if len(picks) == 0 {
		return picks
	}

	usedSources := make(map[uuid.UUID]struct{}, len(picks))
	for _, pk := range picks {
		usedSources[pk.Item.SourceID] = struct{}{}
		if pk.Item.Source != nil && p.Opposes(pk.Item.Source.Bias) {
			return picks
		}
	}

	items := make([]domain.ContentItem, len(ranked))
	for i := range ranked {
		items[i] = ranked[i].Item
	}
	found := p.PickOpposing(items, usedSources)
	if found == nil {
		return picks
	}

	var score float64
	for _, s := range ranked {
		if s.Item.ID == found.ID {
			score = s.Score
			break
		}
	}
	picks[len(picks)-1] = Pick{
		Item:   *found,
		Score:  score,
		Reason: domain.ReasonPerspective,
	}
	return picks
}

// reasonFor labels a pick. Front page outranks trending when both apply;
// a followed source outranks the generic recommendation.
func reasonFor(item domain.ContentItem, signals ImportanceSignals, ctx *scoring.Context) domain.SelectionReason {
	switch {
	case signals.frontPage(item.ID):
		return domain.ReasonFrontPage
	case signals.trending(item.ID):
		return domain.ReasonTrending
	case ctx != nil && ctx.Follows(item.SourceID):
		return domain.ReasonFollowedSource
	default:
		return domain.ReasonRecommended
	}
}
