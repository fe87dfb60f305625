package briefing

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mvasiljevic/feed-curator/internal/domain"
	"github.com/mvasiljevic/feed-curator/internal/filter"
	"github.com/mvasiljevic/feed-curator/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var selTestNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func fixedUUID(n byte) uuid.UUID {
	var b [16]byte
	b[15] = n
	b[6] = 0x40
	b[8] = 0x80
	return uuid.UUID(b)
}

func candidate(id byte, sourceID byte, theme string) domain.ContentItem {
	sid := fixedUUID(sourceID)
	return domain.ContentItem{
		ID:          fixedUUID(id),
		Title:       fmt.Sprintf("item %d", id),
		PublishedAt: selTestNow.Add(-2 * time.Hour),
		SourceID:    sid,
		Source:      &domain.Source{ID: sid, Name: fmt.Sprintf("source %d", sourceID), Theme: theme},
		Theme:       theme,
	}
}

func scored(item domain.ContentItem, score float64) scoring.ScoredItem {
	return scoring.ScoredItem{Item: item, Score: score}
}

func TestSelectTop3_DistinctSourcesInFirstTwoSlots(t *testing.T) {
	// The two best items share a source; the second slot must skip to the
	// next source instead.
	ranked := []scoring.ScoredItem{
		scored(candidate(1, 10, "tech"), 120),
		scored(candidate(2, 10, "tech"), 110),
		scored(candidate(3, 11, "science"), 90),
		scored(candidate(4, 12, "culture"), 70),
	}

	picks := SelectTop3(ranked, ImportanceSignals{}, scoring.NewContext(fixedUUID(99), selTestNow), scoring.DefaultWeights())

	require.Len(t, picks, 3)
	assert.Equal(t, fixedUUID(1), picks[0].Item.ID)
	assert.Equal(t, fixedUUID(3), picks[1].Item.ID)
	assert.NotEqual(t, picks[0].Item.SourceID, picks[1].Item.SourceID)
}

func TestSelectTop3_ThirdSlotPrefersFollowedSource(t *testing.T) {
	ctx := scoring.NewContext(fixedUUID(99), selTestNow)
	ctx.FollowedSources[fixedUUID(13)] = struct{}{}

	ranked := []scoring.ScoredItem{
		scored(candidate(1, 10, "tech"), 120),
		scored(candidate(2, 11, "science"), 110),
		scored(candidate(3, 12, "culture"), 100),
		scored(candidate(4, 13, "economy"), 40),
	}

	picks := SelectTop3(ranked, ImportanceSignals{}, ctx, scoring.DefaultWeights())

	require.Len(t, picks, 3)
	// The followed source wins slot 3 even though a higher-scored
	// candidate from an unfollowed source exists.
	assert.Equal(t, fixedUUID(4), picks[2].Item.ID)
	assert.Equal(t, domain.ReasonFollowedSource, picks[2].Reason)
}

func TestSelectTop3_ThirdSlotFallsBackWithoutFollowedCandidate(t *testing.T) {
	ranked := []scoring.ScoredItem{
		scored(candidate(1, 10, "tech"), 120),
		scored(candidate(2, 11, "science"), 110),
		scored(candidate(3, 12, "culture"), 100),
	}

	picks := SelectTop3(ranked, ImportanceSignals{}, scoring.NewContext(fixedUUID(99), selTestNow), scoring.DefaultWeights())

	require.Len(t, picks, 3)
	assert.Equal(t, fixedUUID(3), picks[2].Item.ID)
	assert.Equal(t, domain.ReasonRecommended, picks[2].Reason)
}

func TestSelectTop3_ImportanceBoostsReorder(t *testing.T) {
	w := scoring.DefaultWeights()
	trendingID := fixedUUID(3)

	ranked := []scoring.ScoredItem{
		scored(candidate(1, 10, "tech"), 100),
		scored(candidate(2, 11, "science"), 95),
		scored(candidate(3, 12, "politics"), 70),
	}
	signals := ImportanceSignals{
		Trending: map[uuid.UUID]struct{}{trendingID: {}},
	}

	picks := SelectTop3(ranked, signals, scoring.NewContext(fixedUUID(99), selTestNow), w)

	require.Len(t, picks, 3)
	// 70 + trending boost 40 = 110 beats 100.
	assert.Equal(t, trendingID, picks[0].Item.ID)
	assert.Equal(t, domain.ReasonTrending, picks[0].Reason)
	assert.InDelta(t, 70+w.TrendingBoost, picks[0].Score, 1e-9)
}

func TestSelectTop3_FrontPageLabelWinsOverTrending(t *testing.T) {
	id := fixedUUID(1)
	signals := ImportanceSignals{
		FrontPage: map[uuid.UUID]struct{}{id: {}},
		Trending:  map[uuid.UUID]struct{}{id: {}},
	}
	ranked := []scoring.ScoredItem{scored(candidate(1, 10, "tech"), 100)}

	picks := SelectTop3(ranked, signals, scoring.NewContext(fixedUUID(99), selTestNow), scoring.DefaultWeights())

	require.Len(t, picks, 1)
	assert.Equal(t, domain.ReasonFrontPage, picks[0].Reason)
	// Both boosts still stack on the score.
	w := scoring.DefaultWeights()
	assert.InDelta(t, 100+w.FrontPageBoost+w.TrendingBoost, picks[0].Score, 1e-9)
}

func TestSelectTop3_FewerCandidatesThanSlots(t *testing.T) {
	ranked := []scoring.ScoredItem{
		scored(candidate(1, 10, "tech"), 100),
		scored(candidate(2, 11, "science"), 90),
	}

	picks := SelectTop3(ranked, ImportanceSignals{}, scoring.NewContext(fixedUUID(99), selTestNow), scoring.DefaultWeights())

	assert.Len(t, picks, 2)
}

func TestSelectTop3_ThinPoolNeverRepeatsSource(t *testing.T) {
	// Three items from two sources: the fallback must stop at two slots
	// instead of giving a source a second one.
	ranked := []scoring.ScoredItem{
		scored(candidate(1, 10, "tech"), 100),
		scored(candidate(2, 10, "tech"), 95),
		scored(candidate(3, 11, "science"), 90),
	}

	picks := SelectTop3(ranked, ImportanceSignals{}, scoring.NewContext(fixedUUID(99), selTestNow), scoring.DefaultWeights())

	require.Len(t, picks, 2)
	assert.NotEqual(t, picks[0].Item.SourceID, picks[1].Item.SourceID)
}

func TestSelectTop3_NoDuplicateContent(t *testing.T) {
	ranked := []scoring.ScoredItem{
		scored(candidate(1, 10, "tech"), 100),
		scored(candidate(1, 10, "tech"), 100),
		scored(candidate(2, 11, "science"), 90),
		scored(candidate(3, 12, "culture"), 80),
	}

	picks := SelectTop3(ranked, ImportanceSignals{}, scoring.NewContext(fixedUUID(99), selTestNow), scoring.DefaultWeights())

	seen := map[uuid.UUID]struct{}{}
	for _, p := range picks {
		_, dup := seen[p.Item.ID]
		assert.False(t, dup, "content %s selected twice", p.Item.ID)
		seen[p.Item.ID] = struct{}{}
	}
}

func TestEnsureOpposing(t *testing.T) {
	p := filter.PerspectivePreset{UserBias: domain.BiasLeft}

	left := candidate(1, 10, "tech")
	left.Source.Bias = domain.BiasLeft
	right := candidate(2, 11, "tech")
	right.Source.Bias = domain.BiasRight

	ranked := []scoring.ScoredItem{scored(left, 100), scored(right, 40)}

	picks := ensureOpposing([]Pick{{Item: left, Score: 100, Reason: domain.ReasonRecommended}}, ranked, p)
	require.Len(t, picks, 1)
	assert.Equal(t, right.ID, picks[0].Item.ID)
	assert.Equal(t, domain.ReasonPerspective, picks[0].Reason)
	assert.InDelta(t, 40, picks[0].Score, 1e-9)

	// Already satisfied: nothing is swapped.
	satisfied := []Pick{{Item: right, Score: 40, Reason: domain.ReasonRecommended}}
	assert.Equal(t, satisfied, ensureOpposing(satisfied, ranked, p))

	// No opposing candidate outside the used sources: picks survive.
	onlyLeft := []scoring.ScoredItem{scored(left, 100)}
	unchanged := ensureOpposing([]Pick{{Item: left, Score: 100, Reason: domain.ReasonRecommended}}, onlyLeft, p)
	require.Len(t, unchanged, 1)
	assert.Equal(t, left.ID, unchanged[0].Item.ID)
}

func TestSelectTop3_EmptyPool(t *testing.T) {
	picks := SelectTop3(nil, ImportanceSignals{}, scoring.NewContext(fixedUUID(99), selTestNow), scoring.DefaultWeights())

	assert.Empty(t, picks)
}
