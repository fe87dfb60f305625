package scoring

import "github.com/mvasiljevic/feed-curator/internal/domain"

// ReliabilityLayer rewards high-reliability sources and penalizes
// low-reliability ones. Medium, mixed and unknown tiers are neutral.
type ReliabilityLayer struct {
	Weights Weights
}

func (l *ReliabilityLayer) Name() string { return "reliability" }

func (l *ReliabilityLayer) Score(item *domain.ContentItem, ctx *Context) float64 {
	if item.Source == nil {
		return 0
	}
	switch item.Source.Reliability {
	case domain.ReliabilityHigh:
		ctx.AddReason(item.ID, l.Name(), l.Weights.ReliabilityHighBonus, "High reliability source")
		return l.Weights.ReliabilityHighBonus
	case domain.ReliabilityLow:
		ctx.AddReason(item.ID, l.Name(), -l.Weights.ReliabilityLowMalus, "Low reliability source")
		return -l.Weights.ReliabilityLowMalus
	default:
		return 0
	}
}

// ContentQualityLayer boosts items with enough extracted text for
// in-app reading.
type ContentQualityLayer struct {
	Weights Weights
}

func (l *ContentQualityLayer) Name() string { return "content_quality" }

func (l *ContentQualityLayer) Score(item *domain.ContentItem, ctx *Context) float64 {
	switch item.Quality {
	case domain.QualityFull:
		ctx.AddReason(item.ID, l.Name(), l.Weights.QualityFull, "Rich content for in-app reading")
		return l.Weights.QualityFull
	case domain.QualityPartial:
		ctx.AddReason(item.ID, l.Name(), l.Weights.QualityPartial, "Partial content available")
		return l.Weights.QualityPartial
	default:
		// none or unset: no contribution.
		return 0
	}
}
