package scoring

import (
	"strings"

	"github.com/mvasiljevic/feed-curator/internal/domain"
)

// VisualLayer boosts items with a displayable thumbnail.
type VisualLayer struct {
	Weights Weights
}

func (l *VisualLayer) Name() string { return "visual" }

func (l *VisualLayer) Score(item *domain.ContentItem, ctx *Context) float64 {
	if strings.TrimSpace(item.ThumbnailURL) == "" {
		return 0
	}
	ctx.AddReason(item.ID, l.Name(), l.Weights.ImageBoost, "Content with thumbnail")
	return l.Weights.ImageBoost
}
