// Package filter holds the mode-dependent candidate restrictions applied
// before scoring, so excluded items never reach the engine.
package filter

import (
	"regexp"
	"sort"
	"strings"

	"github.com/mvasiljevic/feed-curator/internal/domain"
)

// Preset restricts a candidate set for one feed mode. Presets are pure:
// they never mutate the input slice.
type Preset interface {
	Name() string
	Apply(items []domain.ContentItem) []domain.ContentItem
}

// CalmExcludedThemes are the anxiogenic themes removed in calm mode.
var CalmExcludedThemes = map[string]struct{}{
	"society":       {},
	"international": {},
	"economy":       {},
	"politics":      {},
}

// CalmKeywords are the case-insensitive triggers excluded in calm mode:
// politics, war, crisis vocabulary plus high-frequency proper nouns.
var CalmKeywords = []string{
	"politic", "election", "war", "conflict", "inflation", "strike",
	"crisis", "scandal", "terror", "corruption", "trial", "violence",
	"disaster", "protest", "geopolit", "shooting", "crime",
	"trump", "musk", "putin", "netanyahu", "zelensky",
	"ukraine", "gaza",
}

var calmPattern = regexp.MustCompile("(?i)" + strings.Join(CalmKeywords, "|"))

// CalmPreset excludes anxiogenic themes and keyword hits. A missing title
// or description never causes exclusion: an empty field simply does not
// match.
type CalmPreset struct{}

func (CalmPreset) Name() string { return "calm" }

// ExcludedThemes returns the calm theme exclusions in stable order, so
// storage readers can push the restriction into the candidate query.
// The keyword filter stays in Apply; keywords do not push down.
func (CalmPreset) ExcludedThemes() []string {
	themes := make([]string, 0, len(CalmExcludedThemes))
	for t := range CalmExcludedThemes {
		themes = append(themes, t)
	}
	sort.Strings(themes)
	return themes
}

func (CalmPreset) Apply(items []domain.ContentItem) []domain.ContentItem {
	out := make([]domain.ContentItem, 0, len(items))
	for _, it := range items {
		theme := strings.ToLower(it.EffectiveTheme())
		if _, excluded := CalmExcludedThemes[theme]; excluded {
			continue
		}
		if it.Title != "" && calmPattern.MatchString(it.Title) {
			continue
		}
		if it.Description != "" && calmPattern.MatchString(it.Description) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// ThemeFocusPreset keeps items on one target theme. The match is a union
// of two paths: the source carries the theme (primary or secondary), or
// the item's own inferred theme equals it.
type ThemeFocusPreset struct {
	Theme string
}

func (p ThemeFocusPreset) Name() string { return "theme_focus" }

func (p ThemeFocusPreset) Apply(items []domain.ContentItem) []domain.ContentItem {
	out := make([]domain.ContentItem, 0, len(items))
	for _, it := range items {
		if it.Theme == p.Theme || it.Source.HasTheme(p.Theme) {
			out = append(out, it)
		}
	}
	return out
}
