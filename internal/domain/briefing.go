package domain

import (
	"time"

	"github.com/google/uuid"
)

// SelectionReason explains why an item made it into a briefing or digest.
type SelectionReason string

const (
	ReasonFrontPage      SelectionReason = "front_page"
	ReasonTrending       SelectionReason = "trending"
	ReasonFollowedSource SelectionReason = "followed_source"
	ReasonRecommended    SelectionReason = "recommended"
	// ReasonPerspective marks the counter-perspective slot a perspective
	// run guarantees.
	ReasonPerspective SelectionReason = "perspective"
)

// BriefingSize and DigestSize are the fixed slot counts per product surface.
const (
	BriefingSize = 3
	DigestSize   = 5
)

// BriefingItem is one ranked slot of a user's daily briefing or digest.
// At most one row may exist per (user, rank, calendar day); ranks are
// contiguous starting at 1 and a content item appears at most once per day.
type BriefingItem struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"userId"`
	ContentID   uuid.UUID       `json:"contentId"`
	Content     *ContentItem    `json:"content,omitempty"`
	Rank        int             `json:"rank"`
	Reason      SelectionReason `json:"reason"`
	Score       float64         `json:"score"`
	Consumed    bool            `json:"consumed"`
	GeneratedAt time.Time       `json:"generatedAt"`
}
