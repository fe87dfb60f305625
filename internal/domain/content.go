package domain

import (
	"time"

	"github.com/google/uuid"
)

type ContentKind string

const (
	KindArticle ContentKind = "article"
	KindPodcast ContentKind = "podcast"
	KindVideo   ContentKind = "video"
)

// QualityTier describes how much readable text the ingestion pipeline
// managed to extract for in-app reading.
type QualityTier string

const (
	QualityFull    QualityTier = "full"
	QualityPartial QualityTier = "partial"
	QualityNone    QualityTier = "none"
)

// ContentItem is a single rankable piece of content. Items are owned by
// the ingestion pipeline and treated as read-only by the scoring core.
type ContentItem struct {
	ID           uuid.UUID   `json:"id"`
	GUID         string      `json:"guid,omitempty"`
	Title        string      `json:"title"`
	Description  string      `json:"description,omitempty"`
	ThumbnailURL string      `json:"thumbnailUrl,omitempty"`
	PublishedAt  time.Time   `json:"publishedAt"`
	SourceID     uuid.UUID   `json:"sourceId"`
	Source       *Source     `json:"source,omitempty"`
	Kind         ContentKind `json:"kind"`
	// Topics is ordered by inferred relevance, most relevant first.
	Topics          []string    `json:"topics,omitempty"`
	Theme           string      `json:"theme,omitempty"`
	DurationSeconds int         `json:"durationSeconds,omitempty"`
	Paywalled       bool        `json:"paywalled,omitempty"`
	Quality         QualityTier `json:"quality,omitempty"`
}

// EffectiveTheme resolves the broad theme for an item: the item-level
// inferred theme wins over the source primary theme.
func (c *ContentItem) EffectiveTheme() string {
	if c.Theme != "" {
		return c.Theme
	}
	if c.Source != nil {
		return c.Source.Theme
	}
	return ""
}
