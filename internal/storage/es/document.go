package es

import (
	"time"

	"github.com/google/uuid"
	"github.com/mvasiljevic/feed-curator/internal/domain"
)

// ContentDocument is the denormalized index shape: the source is flattened
// onto the item so candidate reads need no join.
type ContentDocument struct {
	ID               string    `json:"id"`
	GUID             string    `json:"guid"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	ThumbnailURL     string    `json:"thumbnail_url"`
	PublishedAt      time.Time `json:"published_at"`
	Kind             string    `json:"kind"`
	Topics           []string  `json:"topics"`
	Theme            string    `json:"theme"`
	DurationSeconds  int       `json:"duration_seconds"`
	Paywalled        bool      `json:"paywalled"`
	Quality          string    `json:"quality"`
	SourceID         string    `json:"source_id"`
	SourceName       string    `json:"source_name"`
	SourceTheme      string    `json:"source_theme"`
	SecondaryThemes  []string  `json:"secondary_themes"`
	SourceBias       string    `json:"source_bias"`
	Reliability      string    `json:"reliability"`
	Curated          bool      `json:"curated"`
	FrontPageFeedURL string    `json:"front_page_feed_url"`
	IndexedAt        time.Time `json:"indexed_at"`
}

func (d *ContentDocument) toDomain() (domain.ContentItem, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return domain.ContentItem{}, err
	}
	sourceID, err := uuid.Parse(d.SourceID)
	if err != nil {
		return domain.ContentItem{}, err
	}

	src := &domain.Source{
		ID:               sourceID,
		Name:             d.SourceName,
		Theme:            d.SourceTheme,
		SecondaryThemes:  d.SecondaryThemes,
		Bias:             domain.BiasStance(d.SourceBias),
		Reliability:      domain.ReliabilityTier(d.Reliability),
		Curated:          d.Curated,
		FrontPageFeedURL: d.FrontPageFeedURL,
	}

	return domain.ContentItem{
		ID:              id,
		GUID:            d.GUID,
		Title:           d.Title,
		Description:     d.Description,
		ThumbnailURL:    d.ThumbnailURL,
		PublishedAt:     d.PublishedAt,
		SourceID:        sourceID,
		Source:          src,
		Kind:            domain.ContentKind(d.Kind),
		Topics:          d.Topics,
		Theme:           d.Theme,
		DurationSeconds: d.DurationSeconds,
		Paywalled:       d.Paywalled,
		Quality:         domain.QualityTier(d.Quality),
	}, nil
}
