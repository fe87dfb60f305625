package briefing

import (
	"strings"

	"github.com/google/uuid"
	"github.com/mvasiljevic/feed-curator/internal/domain"
	"github.com/mvasiljevic/feed-curator/internal/scoring"
)

// SelectDigest picks up to k items greedily by score while enforcing the
// variety caps: at most maxPerSource items from one source and at most
// maxPerTheme from one effective theme. When the caps would leave slots
// empty, a second pass relaxes the theme cap, then the source cap, so a
// thin pool still fills the digest.
func SelectDigest(ranked []scoring.ScoredItem, signals ImportanceSignals, ctx *scoring.Context, w scoring.Weights, k int) []Pick {
	if k <= 0 || len(ranked) == 0 {
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

	used := make(map[uuid.UUID]struct{}, k)
	perSource := make(map[uuid.UUID]int)
	perTheme := make(map[string]int)
	var picks []Pick

	take := func(s scoring.ScoredItem) {
		used[s.Item.ID] = struct{}{}
		perSource[s.Item.SourceID]++
		perTheme[themeKey(s.Item)]++
		picks = append(picks, Pick{
			Item:   s.Item,
			Score:  s.Score,
			Reason: reasonFor(s.Item, signals, ctx),
		})
	}

	for _, s := range boosted {
		if len(picks) == k {
			return picks
		}
		if _, ok := used[s.Item.ID]; ok {
			continue
		}
		if perSource[s.Item.SourceID] >= w.DigestMaxPerSource {
			continue
		}
		if perTheme[themeKey(s.Item)] >= w.DigestMaxPerTheme {
			continue
		}
		take(s)
	}

	// Relax the theme cap first, then the source cap.
	for _, s := range boosted {
		if len(picks) == k {
			return picks
		}
		if _, ok := used[s.Item.ID]; ok {
			continue
		}
		if perSource[s.Item.SourceID] >= w.DigestMaxPerSource {
			continue
		}
		take(s)
	}
	for _, s := range boosted {
		if len(picks) == k {
			return picks
		}
		if _, ok := used[s.Item.ID]; ok {
			continue
		}
		take(s)
	}

	return picks
}

func themeKey(item domain.ContentItem) string {
	return strings.ToLower(item.EffectiveTheme())
}
