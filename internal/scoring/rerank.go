package scoring

import (
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/mvasiljevic/feed-curator/internal/domain"
)

// ScoredItem pairs a content item with its ranking score.
type ScoredItem struct {
	Item  domain.ContentItem
	Score float64
}

// SortByScore orders scored items descending by score, breaking ties on
// content id so identical inputs always produce identical rankings.
func SortByScore(items []ScoredItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].Item.ID.String() < items[j].Item.ID.String()
	})
}

// RerankForDiversity applies the source-fatigue pass: walking the
// score-ordered list, the nth occurrence of a source has its effective
// score multiplied by decay^n, then the list is re-sorted. The first item
// per source keeps its full score; repeats sink so other sources get the
// top of the feed.
func RerankForDiversity(items []ScoredItem, decay float64) []ScoredItem {
	if len(items) == 0 {
		return items
	}

	ranked := make([]ScoredItem, len(items))
	copy(ranked, items)
	SortByScore(ranked)

	seen := map[uuid.UUID]int{}
	for i := range ranked {
		n := seen[ranked[i].Item.SourceID]
		if n > 0 {
			ranked[i].Score *= math.Pow(decay, float64(n))
		}
		seen[ranked[i].Item.SourceID]++
	}

	SortByScore(ranked)
	return ranked
}
