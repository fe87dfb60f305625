package briefing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/mvasiljevic/feed-curator/internal/domain"
	"github.com/mvasiljevic/feed-curator/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectDigest_CapsPerSource(t *testing.T) {
	// One source dominates the scores; the digest still carries at most
	// two of its items.
	ranked := []scoring.ScoredItem{
		scored(candidate(1, 10, "tech"), 100),
		scored(candidate(2, 10, "science"), 95),
		scored(candidate(3, 10, "culture"), 90),
		scored(candidate(4, 11, "economy"), 60),
		scored(candidate(5, 12, "sport"), 55),
		scored(candidate(6, 13, "health"), 50),
	}

	picks := SelectDigest(ranked, ImportanceSignals{}, scoring.NewContext(fixedUUID(99), selTestNow), scoring.DefaultWeights(), domain.DigestSize)

	require.Len(t, picks, domain.DigestSize)
	perSource := map[uuid.UUID]int{}
	for _, p := range picks {
		perSource[p.Item.SourceID]++
	}
	assert.Equal(t, 2, perSource[fixedUUID(10)])
}

func TestSelectDigest_CapsPerTheme(t *testing.T) {
	ranked := []scoring.ScoredItem{
		scored(candidate(1, 10, "tech"), 100),
		scored(candidate(2, 11, "tech"), 95),
		scored(candidate(3, 12, "tech"), 90),
		scored(candidate(4, 13, "science"), 60),
		scored(candidate(5, 14, "culture"), 55),
		scored(candidate(6, 15, "economy"), 50),
	}

	picks := SelectDigest(ranked, ImportanceSignals{}, scoring.NewContext(fixedUUID(99), selTestNow), scoring.DefaultWeights(), domain.DigestSize)

	require.Len(t, picks, domain.DigestSize)
	perTheme := map[string]int{}
	for _, p := range picks {
		perTheme[p.Item.EffectiveTheme()]++
	}
	assert.Equal(t, 2, perTheme["tech"])
}

func TestSelectDigest_RelaxesCapsWhenPoolIsThin(t *testing.T) {
	// Only one source available: the strict cap would stop at two items,
	// but empty slots are worse than repetition.
	ranked := []scoring.ScoredItem{
		scored(candidate(1, 10, "tech"), 100),
		scored(candidate(2, 10, "tech"), 95),
		scored(candidate(3, 10, "tech"), 90),
		scored(candidate(4, 10, "tech"), 85),
	}

	picks := SelectDigest(ranked, ImportanceSignals{}, scoring.NewContext(fixedUUID(99), selTestNow), scoring.DefaultWeights(), domain.DigestSize)

	assert.Len(t, picks, 4)
}

func TestSelectDigest_OrderedByBoostedScore(t *testing.T) {
	w := scoring.DefaultWeights()
	signals := ImportanceSignals{
		FrontPage: map[uuid.UUID]struct{}{fixedUUID(3): {}},
	}
	ranked := []scoring.ScoredItem{
		scored(candidate(1, 10, "tech"), 100),
		scored(candidate(2, 11, "science"), 90),
		scored(candidate(3, 12, "culture"), 80),
	}

	picks := SelectDigest(ranked, signals, scoring.NewContext(fixedUUID(99), selTestNow), w, domain.DigestSize)

	require.Len(t, picks, 3)
	// 80 + front-page boost 30 = 110 leads.
	assert.Equal(t, fixedUUID(3), picks[0].Item.ID)
	assert.Equal(t, domain.ReasonFrontPage, picks[0].Reason)
	for i := 1; i < len(picks); i++ {
		assert.GreaterOrEqual(t, picks[i-1].Score, picks[i].Score)
	}
}

func TestSelectDigest_ZeroSize(t *testing.T) {
	ranked := []scoring.ScoredItem{scored(candidate(1, 10, "tech"), 100)}

	assert.Empty(t, SelectDigest(ranked, ImportanceSignals{}, nil, scoring.DefaultWeights(), 0))
}
