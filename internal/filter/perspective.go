package filter

import (
	"github.com/google/uuid"
	"github.com/mvasiljevic/feed-curator/internal/domain"
)

// DefaultOpposingBiases encodes the perspective policy: which stances to
// surface for a user with a given dominant bias. Left and right map to
// each other; centrists get alternative, specialized and both extremes.
// Kept as data rather than branching because product tunes this.
var DefaultOpposingBiases = map[domain.BiasStance][]domain.BiasStance{
	domain.BiasLeft: {domain.BiasRight, domain.BiasCenterRight},
	domain.BiasRight: {domain.BiasLeft, domain.BiasCenterLeft},
	domain.BiasCenter: {
		domain.BiasAlternative,
		domain.BiasSpecialized,
		domain.BiasLeft,
		domain.BiasRight,
	},
}

// DominantBias derives the user's editorial lean from followed sources:
// +1 per right-leaning source, -1 per left-leaning, sign decides. Ties
// and empty input resolve to center.
func DominantBias(followed []domain.Source) domain.BiasStance {
	score := 0
	for _, s := range followed {
		switch s.Bias {
		case domain.BiasLeft, domain.BiasCenterLeft:
			score--
		case domain.BiasRight, domain.BiasCenterRight:
			score++
		}
	}
	switch {
	case score < 0:
		return domain.BiasLeft
	case score > 0:
		return domain.BiasRight
	default:
		return domain.BiasCenter
	}
}

// PerspectivePreset keeps candidates whose source bias opposes the
// user's dominant bias. Opposing overrides DefaultOpposingBiases when
// set.
type PerspectivePreset struct {
	UserBias domain.BiasStance
	Opposing map[domain.BiasStance][]domain.BiasStance
}

func (p PerspectivePreset) Name() string { return "perspective" }

func (p PerspectivePreset) opposingSet() map[domain.BiasStance]struct{} {
	table := p.Opposing
	if table == nil {
		table = DefaultOpposingBiases
	}
	stances, ok := table[p.UserBias]
	if !ok {
		stances = table[domain.BiasCenter]
	}
	set := make(map[domain.BiasStance]struct{}, len(stances))
	for _, s := range stances {
		set[s] = struct{}{}
	}
	return set
}

// Opposes reports whether a source bias belongs to the opposing set for
// the user's stance.
func (p PerspectivePreset) Opposes(bias domain.BiasStance) bool {
	_, ok := p.opposingSet()[bias]
	return ok
}

func (p PerspectivePreset) Apply(items []domain.ContentItem) []domain.ContentItem {
	opposing := p.opposingSet()
	out := make([]domain.ContentItem, 0, len(items))
	for _, it := range items {
		if it.Source == nil {
			continue
		}
		if _, ok := opposing[it.Source.Bias]; ok {
			out = append(out, it)
		}
	}
	return out
}

// PickOpposing returns the first candidate with an opposing-bias source
// outside excludeSources, or nil when none qualifies. Used to guarantee
// at least one counter-perspective next to an already covered story.
func (p PerspectivePreset) PickOpposing(items []domain.ContentItem, excludeSources map[uuid.UUID]struct{}) *domain.ContentItem {
	opposing := p.opposingSet()
	for i := range items {
		it := &items[i]
		if it.Source == nil {
			continue
		}
		if _, used := excludeSources[it.SourceID]; used {
			continue
		}
		if _, ok := opposing[it.Source.Bias]; ok {
			return it
		}
	}
	return nil
}
