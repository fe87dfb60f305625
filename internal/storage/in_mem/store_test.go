package in_mem

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mvasiljevic/feed-curator/internal/domain"
	"github.com/mvasiljevic/feed-curator/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var storeTestNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func item(name string, age time.Duration, src *domain.Source, theme string) domain.ContentItem {
	return domain.ContentItem{
		ID:          uuid.New(),
		Title:       name,
		PublishedAt: storeTestNow.Add(-age),
		SourceID:    src.ID,
		Source:      src,
		Theme:       theme,
	}
}

func TestListCandidates_WindowAndOrder(t *testing.T) {
	src := &domain.Source{ID: uuid.New(), Name: "daily", Theme: "tech"}
	store := NewStore()
	store.Seed([]domain.ContentItem{
		item("old", 72*time.Hour, src, "tech"),
		item("newest", 1*time.Hour, src, "tech"),
		item("recent", 5*time.Hour, src, "tech"),
	})

	got, err := store.ListCandidates(context.Background(), storage.CandidateQuery{
		Since: storeTestNow.Add(-24 * time.Hour),
	})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "newest", got[0].Title)
	assert.Equal(t, "recent", got[1].Title)
}

func TestListCandidates_CuratedAndSourceNarrowing(t *testing.T) {
	curated := &domain.Source{ID: uuid.New(), Name: "curated", Curated: true}
	custom := &domain.Source{ID: uuid.New(), Name: "custom"}
	store := NewStore()
	store.Seed([]domain.ContentItem{
		item("from curated", time.Hour, curated, "tech"),
		item("from custom", time.Hour, custom, "tech"),
	})

	got, err := store.ListCandidates(context.Background(), storage.CandidateQuery{CuratedOnly: true})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "from curated", got[0].Title)

	got, err = store.ListCandidates(context.Background(), storage.CandidateQuery{
		SourceIDs: []uuid.UUID{custom.ID},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "from custom", got[0].Title)
}

func TestListCandidates_ThemePushdown(t *testing.T) {
	tech := &domain.Source{ID: uuid.New(), Name: "tech daily", Theme: "tech"}
	politics := &domain.Source{ID: uuid.New(), Name: "politics daily", Theme: "politics"}
	store := NewStore()
	store.Seed([]domain.ContentItem{
		item("chips", time.Hour, tech, "tech"),
		item("vote", time.Hour, politics, "politics"),
	})

	focused, err := store.ListCandidates(context.Background(), storage.CandidateQuery{FocusTheme: "tech"})
	require.NoError(t, err)
	require.Len(t, focused, 1)
	assert.Equal(t, "chips", focused[0].Title)

	calm, err := store.ListCandidates(context.Background(), storage.CandidateQuery{
		ExcludeThemes: []string{"politics"},
	})
	require.NoError(t, err)
	require.Len(t, calm, 1)
	assert.Equal(t, "chips", calm[0].Title)
}

func TestSaveBriefing_SkipsConflictingRanks(t *testing.T) {
	store := NewStore()
	userID := uuid.New()

	first := []domain.BriefingItem{
		{ID: uuid.New(), UserID: userID, ContentID: uuid.New(), Rank: 1, GeneratedAt: storeTestNow},
		{ID: uuid.New(), UserID: userID, ContentID: uuid.New(), Rank: 2, GeneratedAt: storeTestNow},
	}
	require.NoError(t, store.SaveBriefing(context.Background(), first))

	// Same day, same ranks: the second write must be a no-op.
	later := []domain.BriefingItem{
		{ID: uuid.New(), UserID: userID, ContentID: uuid.New(), Rank: 1, GeneratedAt: storeTestNow.Add(3 * time.Hour)},
	}
	require.NoError(t, store.SaveBriefing(context.Background(), later))

	got, err := store.GetBriefing(context.Background(), userID, storeTestNow)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first[0].ID, got[0].ID)

	// A different day starts fresh.
	nextDay := storeTestNow.Add(24 * time.Hour)
	require.NoError(t, store.SaveBriefing(context.Background(), []domain.BriefingItem{
		{ID: uuid.New(), UserID: userID, ContentID: uuid.New(), Rank: 1, GeneratedAt: nextDay},
	}))
	tomorrow, err := store.GetBriefing(context.Background(), userID, nextDay)
	require.NoError(t, err)
	assert.Len(t, tomorrow, 1)
}
