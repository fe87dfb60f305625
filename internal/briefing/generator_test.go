package briefing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mvasiljevic/feed-curator/internal/domain"
	"github.com/mvasiljevic/feed-curator/internal/filter"
	"github.com/mvasiljevic/feed-curator/internal/scoring"
	"github.com/mvasiljevic/feed-curator/internal/storage"
	"github.com/mvasiljevic/feed-curator/internal/storage/in_mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFrontPages struct {
	guids map[string]struct{}
}

func (s stubFrontPages) CollectGUIDs(_ context.Context, _ []domain.Source) (map[string]struct{}, error) {
	return s.guids, nil
}

func newTestGenerator(t *testing.T, store *in_mem.Store, fp FrontPageCollector) *Generator {
	t.Helper()
	g, err := NewGenerator(store, store, scoring.DefaultWeights(), fp)
	require.NoError(t, err)
	g.now = func() time.Time { return selTestNow }
	return g
}

func seedPool(store *in_mem.Store) {
	store.Seed([]domain.ContentItem{
		candidate(1, 10, "tech"),
		candidate(2, 11, "science"),
		candidate(3, 12, "culture"),
		candidate(4, 13, "economy"),
		candidate(5, 14, "politics"),
	})
}

func TestGenerator_GeneratePersistsRankedSlots(t *testing.T) {
	store := in_mem.NewStore()
	seedPool(store)
	g := newTestGenerator(t, store, nil)

	user := scoring.NewContext(fixedUUID(99), selTestNow)
	user.Interests["tech"] = 1

	items, err := g.Generate(context.Background(), Request{User: user})

	require.NoError(t, err)
	require.Len(t, items, domain.BriefingSize)
	for i, it := range items {
		assert.Equal(t, i+1, it.Rank)
		assert.Equal(t, user.UserID, it.UserID)
		assert.NotNil(t, it.Content)
		assert.Equal(t, selTestNow, it.GeneratedAt)
	}
	// The tech interest puts the tech item on top.
	assert.Equal(t, fixedUUID(1), items[0].ContentID)
}

func TestGenerator_GenerateIsIdempotentPerDay(t *testing.T) {
	store := in_mem.NewStore()
	seedPool(store)
	g := newTestGenerator(t, store, nil)
	user := scoring.NewContext(fixedUUID(99), selTestNow)

	first, err := g.Generate(context.Background(), Request{User: user})
	require.NoError(t, err)
	require.Len(t, first, domain.BriefingSize)

	second, err := g.Generate(context.Background(), Request{User: user})
	require.NoError(t, err)
	require.Len(t, second, domain.BriefingSize)

	// No duplicate rows; the winning set survives verbatim.
	persisted, err := store.GetBriefing(context.Background(), user.UserID, selTestNow)
	require.NoError(t, err)
	require.Len(t, persisted, domain.BriefingSize)
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].ContentID, second[i].ContentID)
	}
}

func TestGenerator_GetOrGenerateReturnsExisting(t *testing.T) {
	store := in_mem.NewStore()
	seedPool(store)
	g := newTestGenerator(t, store, nil)
	user := scoring.NewContext(fixedUUID(99), selTestNow)

	first, err := g.GetOrGenerate(context.Background(), Request{User: user})
	require.NoError(t, err)
	require.Len(t, first, domain.BriefingSize)

	// A changed pool must not change an already generated day.
	store.Seed([]domain.ContentItem{candidate(8, 15, "sport")})

	again, err := g.GetOrGenerate(context.Background(), Request{User: user})
	require.NoError(t, err)
	require.Len(t, again, domain.BriefingSize)
	assert.Equal(t, first[0].ContentID, again[0].ContentID)
}

func TestGenerator_EmptyPoolYieldsEmptyBriefing(t *testing.T) {
	store := in_mem.NewStore()
	g := newTestGenerator(t, store, nil)
	user := scoring.NewContext(fixedUUID(99), selTestNow)

	items, err := g.Generate(context.Background(), Request{User: user})

	require.NoError(t, err)
	assert.Empty(t, items)

	persisted, err := store.GetBriefing(context.Background(), user.UserID, selTestNow)
	require.NoError(t, err)
	assert.Empty(t, persisted)
}

func TestGenerator_PresetNarrowsPool(t *testing.T) {
	store := in_mem.NewStore()
	seedPool(store)
	g := newTestGenerator(t, store, nil)
	user := scoring.NewContext(fixedUUID(99), selTestNow)

	items, err := g.Generate(context.Background(), Request{
		User:   user,
		Preset: filter.ThemeFocusPreset{Theme: "science"},
	})

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, fixedUUID(2), items[0].ContentID)
}

type captureReader struct {
	inner storage.CandidateReader
	last  storage.CandidateQuery
}

func (r *captureReader) ListCandidates(ctx context.Context, q storage.CandidateQuery) ([]domain.ContentItem, error) {
	r.last = q
	return r.inner.ListCandidates(ctx, q)
}

func TestGenerator_PresetNarrowsAtTheStore(t *testing.T) {
	store := in_mem.NewStore()
	seedPool(store)
	reader := &captureReader{inner: store}
	g, err := NewGenerator(reader, store, scoring.DefaultWeights(), nil)
	require.NoError(t, err)
	g.now = func() time.Time { return selTestNow }
	user := scoring.NewContext(fixedUUID(99), selTestNow)

	_, err = g.ScoreFeed(context.Background(), Request{
		User:   user,
		Preset: filter.ThemeFocusPreset{Theme: "science"},
	})
	require.NoError(t, err)
	assert.Equal(t, "science", reader.last.FocusTheme)

	_, err = g.ScoreFeed(context.Background(), Request{User: user, Preset: filter.CalmPreset{}})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"economy", "international", "politics", "society"}, reader.last.ExcludeThemes)

	_, err = g.Generate(context.Background(), Request{
		User:        user,
		CuratedOnly: true,
		SourceIDs:   []uuid.UUID{fixedUUID(10)},
	})
	require.NoError(t, err)
	assert.True(t, reader.last.CuratedOnly)
	assert.Equal(t, []uuid.UUID{fixedUUID(10)}, reader.last.SourceIDs)
}

func TestGenerator_PerspectiveReservesOpposingSlot(t *testing.T) {
	store := in_mem.NewStore()
	withBias := func(id, sourceID byte, theme string, bias domain.BiasStance) domain.ContentItem {
		it := candidate(id, sourceID, theme)
		it.Source.Bias = bias
		return it
	}
	// Three strong left items, one weak right item. Score alone would
	// fill every slot from the left.
	store.Seed([]domain.ContentItem{
		withBias(1, 10, "tech", domain.BiasLeft),
		withBias(2, 11, "tech", domain.BiasLeft),
		withBias(3, 12, "tech", domain.BiasCenterLeft),
		withBias(4, 13, "culture", domain.BiasRight),
	})
	g := newTestGenerator(t, store, nil)
	user := scoring.NewContext(fixedUUID(99), selTestNow)
	user.Interests["tech"] = 1

	items, err := g.Generate(context.Background(), Request{
		User:   user,
		Preset: filter.PerspectivePreset{UserBias: domain.BiasLeft},
	})

	require.NoError(t, err)
	require.Len(t, items, domain.BriefingSize)
	last := items[domain.BriefingSize-1]
	assert.Equal(t, fixedUUID(4), last.ContentID)
	assert.Equal(t, domain.ReasonPerspective, last.Reason)
}

func TestGenerator_FrontPageSignalFlagsReason(t *testing.T) {
	store := in_mem.NewStore()
	item := candidate(1, 10, "tech")
	item.GUID = "guid-front-1"
	store.Seed([]domain.ContentItem{
		item,
		candidate(2, 11, "science"),
		candidate(3, 12, "culture"),
	})

	g := newTestGenerator(t, store, stubFrontPages{guids: map[string]struct{}{"guid-front-1": {}}})
	user := scoring.NewContext(fixedUUID(99), selTestNow)

	items, err := g.Generate(context.Background(), Request{
		User:    user,
		Sources: []domain.Source{{Name: "daily", FrontPageFeedURL: "https://example.com/front.xml"}},
	})

	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, item.ID, items[0].ContentID)
	assert.Equal(t, domain.ReasonFrontPage, items[0].Reason)
}

func TestGenerator_DigestSizeUsesVarietyCaps(t *testing.T) {
	store := in_mem.NewStore()
	store.Seed([]domain.ContentItem{
		candidate(1, 10, "tech"),
		candidate(2, 10, "tech"),
		candidate(3, 10, "tech"),
		candidate(4, 11, "science"),
		candidate(5, 12, "culture"),
		candidate(6, 13, "economy"),
	})
	g := newTestGenerator(t, store, nil)
	user := scoring.NewContext(fixedUUID(99), selTestNow)

	items, err := g.Generate(context.Background(), Request{User: user, Size: domain.DigestSize})

	require.NoError(t, err)
	require.Len(t, items, domain.DigestSize)
	perSource := map[string]int{}
	for _, it := range items {
		require.NotNil(t, it.Content)
		perSource[it.Content.SourceID.String()]++
	}
	assert.LessOrEqual(t, perSource[fixedUUID(10).String()], 2)
}

func TestGenerator_ScoreFeedDoesNotPersist(t *testing.T) {
	store := in_mem.NewStore()
	seedPool(store)
	g := newTestGenerator(t, store, nil)
	user := scoring.NewContext(fixedUUID(99), selTestNow)

	ranked, err := g.ScoreFeed(context.Background(), Request{User: user})

	require.NoError(t, err)
	assert.Len(t, ranked, 5)

	persisted, err := store.GetBriefing(context.Background(), user.UserID, selTestNow)
	require.NoError(t, err)
	assert.Empty(t, persisted)
}

func TestGenerator_RequiresUserContext(t *testing.T) {
	store := in_mem.NewStore()
	g := newTestGenerator(t, store, nil)

	_, err := g.Generate(context.Background(), Request{})

	assert.Error(t, err)
}
