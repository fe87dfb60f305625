package scoring

import (
	"sort"
	"strings"

	"github.com/mvasiljevic/feed-curator/internal/domain"
)

// TopicLayer scores the intersection between an item's granular topic
// tags and the user's subtopics, enabling personalization one level finer
// than broad themes.
type TopicLayer struct {
	Weights Weights
}

func (l *TopicLayer) Name() string { return "topic" }

func (l *TopicLayer) Score(item *domain.ContentItem, ctx *Context) float64 {
	if len(ctx.Subtopics) == 0 || len(item.Topics) == 0 {
		return 0
	}

	// Tags are set-intersected: a topic repeated on the item counts once.
	var matches []string
	seen := map[string]struct{}{}
	for _, t := range item.Topics {
		slug := strings.TrimSpace(strings.ToLower(t))
		if slug == "" {
			continue
		}
		if _, dup := seen[slug]; dup {
			continue
		}
		seen[slug] = struct{}{}
		if _, ok := ctx.Subtopics[slug]; ok {
			matches = append(matches, slug)
		}
	}
	if len(matches) == 0 {
		return 0
	}

	sort.Strings(matches)
	if len(matches) > l.Weights.TopicMaxMatches {
		matches = matches[:l.Weights.TopicMaxMatches]
	}

	score := 0.0
	for _, slug := range matches {
		w := ctx.Subtopics[slug]
		if w == 0 {
			w = 1
		}
		score += l.Weights.TopicMatch * w
	}

	// Precision bonus when the broad theme also matches: the item is both
	// in the right neighborhood and on the exact street.
	precise := l.themeMatches(item, ctx)
	if precise {
		score += l.Weights.SubtopicPrecisionBonus
	}

	detail := "Topic match: " + strings.Join(matches, ", ")
	if precise {
		detail += " (precise)"
	}
	ctx.AddReason(item.ID, l.Name(), score, detail)

	return score
}

func (l *TopicLayer) themeMatches(item *domain.ContentItem, ctx *Context) bool {
	if item.Theme != "" && ctx.InterestedIn(item.Theme) {
		return true
	}
	if item.Source == nil {
		return false
	}
	if item.Source.Theme != "" && ctx.InterestedIn(item.Source.Theme) {
		return true
	}
	for _, t := range item.Source.SecondaryThemes {
		if ctx.InterestedIn(t) {
			return true
		}
	}
	return false
}
