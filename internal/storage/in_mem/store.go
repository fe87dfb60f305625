package in_mem

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mvasiljevic/feed-curator/internal/domain"
	"github.com/mvasiljevic/feed-curator/internal/storage"
)

// Store keeps candidates and briefings in memory. It backs tests and
// local runs without a database; all methods are safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	items     []domain.ContentItem
	briefings []domain.BriefingItem
}

func NewStore() *Store {
	return &Store{}
}

// Seed replaces the candidate set.
func (s *Store) Seed(items []domain.ContentItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]domain.ContentItem(nil), items...)
}

func (s *Store) ListCandidates(_ context.Context, q storage.CandidateQuery) ([]domain.ContentItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.ContentItem
	for _, it := range s.items {
		if !q.Since.IsZero() && it.PublishedAt.Before(q.Since) {
			continue
		}
		if q.CuratedOnly && (it.Source == nil || !it.Source.Curated) {
			continue
		}
		if len(q.SourceIDs) > 0 && !containsID(q.SourceIDs, it.SourceID) {
			continue
		}
		if q.FocusTheme != "" && !matchesFocus(it, q.FocusTheme) {
			continue
		}
		if len(q.ExcludeThemes) > 0 && excludedTheme(it, q.ExcludeThemes) {
			continue
		}
		out = append(out, it)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (s *Store) SaveBriefing(_ context.Context, items []domain.BriefingItem) error {
	if len(items) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	// Mirrors the unique (user, rank, day) constraint: conflicting rows
	// are skipped so re-generation stays idempotent.
	for _, it := range items {
		if s.hasRankLocked(it.UserID, it.Rank, it.GeneratedAt) {
			continue
		}
		if it.ID == uuid.Nil {
			it.ID = uuid.New()
		}
		s.briefings = append(s.briefings, it)
	}
	return nil
}

func (s *Store) GetBriefing(_ context.Context, userID uuid.UUID, day time.Time) ([]domain.BriefingItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.BriefingItem
	for _, b := range s.briefings {
		if b.UserID == userID && sameDay(b.GeneratedAt, day) {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rank < out[j].Rank
	})
	return out, nil
}

func (s *Store) hasRankLocked(userID uuid.UUID, rank int, day time.Time) bool {
	for _, b := range s.briefings {
		if b.UserID == userID && b.Rank == rank && sameDay(b.GeneratedAt, day) {
			return true
		}
	}
	return false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func matchesFocus(it domain.ContentItem, theme string) bool {
	if strings.EqualFold(it.Theme, theme) {
		return true
	}
	return it.Source != nil && it.Source.HasTheme(theme)
}

func excludedTheme(it domain.ContentItem, themes []string) bool {
	effective := it.EffectiveTheme()
	for _, t := range themes {
		if strings.EqualFold(effective, t) {
			return true
		}
	}
	return false
}
