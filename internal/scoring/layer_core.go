package scoring

import (
	"fmt"
	"sort"

	"github.com/mvasiljevic/feed-curator/internal/domain"
)

// CoreLayer carries the base relevance signal: theme match, source trust
// and recency decay.
type CoreLayer struct {
	Weights Weights
}

func (l *CoreLayer) Name() string { return "core" }

func (l *CoreLayer) Score(item *domain.ContentItem, ctx *Context) float64 {
	score := 0.0

	// Theme match, three tiers: item-level inferred theme is the most
	// precise, then the source primary theme, then secondary themes at a
	// reduced factor.
	matched := false
	if item.Theme != "" && ctx.InterestedIn(item.Theme) {
		score += l.Weights.ThemeMatch
		ctx.AddReason(item.ID, l.Name(), l.Weights.ThemeMatch, "Item theme: "+item.Theme)
		matched = true
	}
	if !matched && item.Source != nil && item.Source.Theme != "" && ctx.InterestedIn(item.Source.Theme) {
		score += l.Weights.ThemeMatch
		ctx.AddReason(item.ID, l.Name(), l.Weights.ThemeMatch, "Theme: "+item.Source.Theme)
		matched = true
	}
	if !matched && item.Source != nil {
		var hits []string
		for _, t := range item.Source.SecondaryThemes {
			if ctx.InterestedIn(t) {
				hits = append(hits, t)
			}
		}
		if len(hits) > 0 {
			sort.Strings(hits)
			bonus := l.Weights.ThemeMatch * l.Weights.SecondaryThemeFactor
			score += bonus
			ctx.AddReason(item.ID, l.Name(), bonus, "Secondary theme: "+hits[0])
		}
	}

	// Source trust.
	if ctx.Follows(item.SourceID) {
		score += l.Weights.FollowedSource
		ctx.AddReason(item.ID, l.Name(), l.Weights.FollowedSource, "Followed source")
		if _, ok := ctx.CustomSources[item.SourceID]; ok {
			score += l.Weights.CustomSourceBonus
			ctx.AddReason(item.ID, l.Name(), l.Weights.CustomSourceBonus, "Your custom source")
		}
	} else {
		score += l.Weights.StandardSource
	}

	if affinity := ctx.SourceAffinity[item.SourceID]; affinity > 0 {
		bonus := affinity * l.Weights.SourceAffinityMax
		score += bonus
		ctx.AddReason(item.ID, l.Name(), bonus, fmt.Sprintf("Source affinity: %.0f%%", affinity*100))
	}

	// Recency: smooth hyperbolic decay, never a cutoff. Maximal at age 0
	// and strictly positive, so old-but-relevant items sink instead of
	// disappearing.
	if !item.PublishedAt.IsZero() {
		ageHours := ctx.Now.Sub(item.PublishedAt).Hours()
		if ageHours < 0 {
			ageHours = 0
		}
		score += l.Weights.RecencyBase / (ageHours/24 + 1)
	}

	return score
}
