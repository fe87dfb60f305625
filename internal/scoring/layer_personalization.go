package scoring

import (
	"strings"

	"github.com/mvasiljevic/feed-curator/internal/domain"
)

// PersonalizationLayer applies the explicit "show me less of this"
// maluses. The penalties are independently additive: an item can be hit
// by a muted source, a muted theme, a muted kind and several muted
// topics at once.
type PersonalizationLayer struct {
	Weights Weights
}

func (l *PersonalizationLayer) Name() string { return "personalization" }

func (l *PersonalizationLayer) Score(item *domain.ContentItem, ctx *Context) float64 {
	score := 0.0

	if _, ok := ctx.MutedSources[item.SourceID]; ok {
		score -= l.Weights.MutePenaltySource
		ctx.AddReason(item.ID, l.Name(), -l.Weights.MutePenaltySource, "Muted source")
	}

	if theme := strings.ToLower(strings.TrimSpace(item.EffectiveTheme())); theme != "" {
		if _, ok := ctx.MutedThemes[theme]; ok {
			score -= l.Weights.MutePenaltyTheme
			ctx.AddReason(item.ID, l.Name(), -l.Weights.MutePenaltyTheme, "Muted theme: "+theme)
		}
	}

	if _, ok := ctx.MutedKinds[item.Kind]; ok {
		score -= l.Weights.MutePenaltyKind
		ctx.AddReason(item.ID, l.Name(), -l.Weights.MutePenaltyKind, "Muted format: "+string(item.Kind))
	}

	// Cumulative across muted topics: each hit counts.
	seen := map[string]struct{}{}
	for _, t := range item.Topics {
		slug := strings.ToLower(strings.TrimSpace(t))
		if slug == "" {
			continue
		}
		if _, dup := seen[slug]; dup {
			continue
		}
		seen[slug] = struct{}{}
		if _, ok := ctx.MutedTopics[slug]; ok {
			score -= l.Weights.MutePenaltyTopic
			ctx.AddReason(item.ID, l.Name(), -l.Weights.MutePenaltyTopic, "Muted topic: "+slug)
		}
	}

	return score
}
