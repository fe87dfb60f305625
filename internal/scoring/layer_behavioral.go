package scoring

import (
	"fmt"
	"sort"

	"github.com/mvasiljevic/feed-curator/internal/domain"
)

// BehavioralLayer adjusts the theme signal by the learned interest
// weight: heavy consumption of a theme amplifies its matches, fading
// interest attenuates them. CoreLayer pays the flat match bonus; this
// layer only pays the delta.
type BehavioralLayer struct {
	Weights Weights
}

func (l *BehavioralLayer) Name() string { return "behavioral" }

func (l *BehavioralLayer) Score(item *domain.ContentItem, ctx *Context) float64 {
	theme := l.effectiveTheme(item, ctx)
	if theme == "" {
		return 0
	}

	weight, ok := ctx.Interests[theme]
	if !ok || weight == 1 || weight == 0 {
		return 0
	}

	delta := l.Weights.ThemeMatch * (weight - 1)
	if delta > 0 {
		ctx.AddReason(item.ID, l.Name(), delta, fmt.Sprintf("High interest: %s (x%.1f)", theme, weight))
	} else {
		ctx.AddReason(item.ID, l.Name(), delta, fmt.Sprintf("Low interest: %s (x%.1f)", theme, weight))
	}
	return delta
}

func (l *BehavioralLayer) effectiveTheme(item *domain.ContentItem, ctx *Context) string {
	if item.Theme != "" && ctx.InterestedIn(item.Theme) {
		return item.Theme
	}
	if item.Source == nil {
		return ""
	}
	if item.Source.Theme != "" && ctx.InterestedIn(item.Source.Theme) {
		return item.Source.Theme
	}
	var hits []string
	for _, t := range item.Source.SecondaryThemes {
		if ctx.InterestedIn(t) {
			hits = append(hits, t)
		}
	}
	if len(hits) == 0 {
		return ""
	}
	sort.Strings(hits)
	return hits[0]
}
