package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/mvasiljevic/feed-curator/internal/domain"
	"github.com/mvasiljevic/feed-curator/internal/scoring"
	"github.com/mvasiljevic/feed-curator/pkg/utils"
)

const scoreDecimalPlaces = 2

// ScoreReason is one layer's contribution, shaped for the client UI.
type ScoreReason struct {
	Label      string  `json:"label"`
	Points     float64 `json:"points"`
	IsPositive bool    `json:"isPositive"`
}

// FeedItem is one ranked entry of the personalized feed.
type FeedItem struct {
	ID           uuid.UUID     `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description,omitempty"`
	ThumbnailURL string        `json:"thumbnailUrl,omitempty"`
	PublishedAt  time.Time     `json:"publishedAt"`
	SourceID     uuid.UUID     `json:"sourceId"`
	SourceName   string        `json:"sourceName,omitempty"`
	Kind         string        `json:"kind"`
	Theme        string        `json:"theme,omitempty"`
	Topics       []string      `json:"topics,omitempty"`
	Score        float64       `json:"score"`
	Reasons      []ScoreReason `json:"reasons,omitempty"`
}

type FeedResponse struct {
	Items []FeedItem `json:"items"`
	Total int        `json:"total"`
}

// BriefingSlot is one persisted briefing or digest slot.
type BriefingSlot struct {
	Rank        int       `json:"rank"`
	Reason      string    `json:"reason"`
	Score       float64   `json:"score"`
	Consumed    bool      `json:"consumed"`
	GeneratedAt time.Time `json:"generatedAt"`
	Item        *FeedItem `json:"item,omitempty"`
}

type BriefingResponse struct {
	UserID uuid.UUID      `json:"userId"`
	Day    string         `json:"day"`
	Slots  []BriefingSlot `json:"slots"`
}

// NewFeedItem maps a scored item, attaching the reason log for the
// "why am I seeing this" surface.
func NewFeedItem(s scoring.ScoredItem, ctx *scoring.Context) FeedItem {
	item := FeedItem{
		ID:           s.Item.ID,
		Title:        s.Item.Title,
		Description:  s.Item.Description,
		ThumbnailURL: s.Item.ThumbnailURL,
		PublishedAt:  s.Item.PublishedAt,
		SourceID:     s.Item.SourceID,
		Kind:         string(s.Item.Kind),
		Theme:        s.Item.EffectiveTheme(),
		Topics:       s.Item.Topics,
		Score:        utils.RoundDecimal(s.Score, scoreDecimalPlaces),
	}
	if s.Item.Source != nil {
		item.SourceName = s.Item.Source.Name
	}
	if ctx != nil {
		for _, r := range ctx.Reasons(s.Item.ID) {
			item.Reasons = append(item.Reasons, ScoreReason{
				Label:      r.Details,
				Points:     utils.RoundDecimal(r.Points, scoreDecimalPlaces),
				IsPositive: r.Points >= 0,
			})
		}
	}
	return item
}

func NewFeedResponse(ranked []scoring.ScoredItem, ctx *scoring.Context) FeedResponse {
	items := make([]FeedItem, 0, len(ranked))
	for _, s := range ranked {
		items = append(items, NewFeedItem(s, ctx))
	}
	return FeedResponse{Items: items, Total: len(items)}
}

func NewBriefingResponse(userID uuid.UUID, day time.Time, rows []domain.BriefingItem) BriefingResponse {
	resp := BriefingResponse{
		UserID: userID,
		Day:    day.UTC().Format("2006-01-02"),
		Slots:  make([]BriefingSlot, 0, len(rows)),
	}
	for _, b := range rows {
		slot := BriefingSlot{
			Rank:        b.Rank,
			Reason:      string(b.Reason),
			Score:       utils.RoundDecimal(b.Score, scoreDecimalPlaces),
			Consumed:    b.Consumed,
			GeneratedAt: b.GeneratedAt,
		}
		if b.Content != nil {
			item := NewFeedItem(scoring.ScoredItem{Item: *b.Content, Score: b.Score}, nil)
			slot.Item = &item
		}
		resp.Slots = append(resp.Slots, slot)
	}
	return resp
}
