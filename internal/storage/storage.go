package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mvasiljevic/feed-curator/internal/domain"
)

// CandidateQuery describes one candidate read. Basic eligibility
// (active sources, hidden-for-user, prior status) is resolved upstream;
// the core only narrows by window and mode.
type CandidateQuery struct {
	UserID uuid.UUID
	// Since bounds the window; items published before it are out.
	Since time.Time
	Limit int
	// SourceIDs restricts to specific sources when non-empty
	// (followed-sources pass of the digest pool).
	SourceIDs []uuid.UUID
	// CuratedOnly keeps hand-picked catalog sources only.
	CuratedOnly bool
	// FocusTheme pushes the theme-focus union filter into the backend:
	// source primary/secondary theme or item theme equals it.
	FocusTheme string
	// ExcludeThemes pushes the calm-mode theme exclusion into the backend.
	ExcludeThemes []string
}

// CandidateReader is the candidate supply interface: items come back
// with their source joined, newest first.
type CandidateReader interface {
	ListCandidates(ctx context.Context, q CandidateQuery) ([]domain.ContentItem, error)
}

// BriefingStore persists the daily briefing/digest selection. SaveBriefing
// must be atomic for the day's set and idempotent: re-running generation
// for a (user, day) that already has rows inserts nothing and returns no
// error, honoring the (user, rank, day) uniqueness invariant.
type BriefingStore interface {
	SaveBriefing(ctx context.Context, items []domain.BriefingItem) error
	// GetBriefing returns the persisted rows for the user's calendar day
	// of `day`, ordered by rank. Empty result means not generated yet.
	GetBriefing(ctx context.Context, userID uuid.UUID, day time.Time) ([]domain.BriefingItem, error)
}

type Type string

const (
	PG    Type = "pg"
	ES    Type = "es"
	InMem Type = "in_mem"
)

type StoreError string

const (
	ErrUnsupportedStore StoreError = "unsupported storage type: %s"
)

func (e StoreError) Error() string {
	return string(e)
}
