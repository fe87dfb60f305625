// Package taxonomy holds the fixed topic and theme vocabularies and the
// lookup tables between them. Pure data, no state.
package taxonomy

import "strings"

// ValidThemes is the closed set of broad theme slugs.
var ValidThemes = map[string]struct{}{
	"tech":          {},
	"society":       {},
	"environment":   {},
	"economy":       {},
	"politics":      {},
	"culture":       {},
	"science":       {},
	"international": {},
}

// topicToTheme maps the granular topic vocabulary (tens of values) onto
// the eight broad themes.
var topicToTheme = map[string]string{
	// Tech & science
	"ai":            "tech",
	"tech":          "tech",
	"cybersecurity": "tech",
	"gaming":        "tech",
	"privacy":       "tech",
	"space":         "science",
	"science":       "science",
	// Society
	"politics":      "politics",
	"economy":       "economy",
	"work":          "society",
	"education":     "society",
	"health":        "society",
	"justice":       "society",
	"immigration":   "society",
	"inequality":    "society",
	"feminism":      "society",
	"lgbtq":         "society",
	"religion":      "society",
	"wellness":      "society",
	"family":        "society",
	"relationships": "society",
	"factcheck":     "society",
	// Environment
	"climate":      "environment",
	"environment":  "environment",
	"energy":       "environment",
	"biodiversity": "environment",
	"agriculture":  "environment",
	"food":         "environment",
	// Culture
	"cinema":     "culture",
	"music":      "culture",
	"literature": "culture",
	"art":        "culture",
	"media":      "culture",
	"fashion":    "culture",
	"design":     "culture",
	"travel":     "culture",
	"gastronomy": "culture",
	"sport":      "culture",
	"history":    "culture",
	"philosophy": "culture",
	// Economy & business
	"startups":         "economy",
	"finance":          "economy",
	"realestate":       "economy",
	"entrepreneurship": "economy",
	"marketing":        "economy",
	// International
	"geopolitics": "international",
	"europe":      "international",
	"usa":         "international",
	"africa":      "international",
	"asia":        "international",
	"middleeast":  "international",
}

// sourceLabelToSlugs maps human-readable source theme labels (as entered
// by catalog editors) to the interest slug vocabulary users pick from.
var sourceLabelToSlugs = map[string][]string{
	"tech & future":     {"tech", "science"},
	"society & climate": {"society", "environment"},
	"economy":           {"economy", "business"},
	"geopolitics":       {"politics", "international"},
	"culture & ideas":   {"culture"},
}

// IsValidTheme reports whether slug is one of the known broad themes.
func IsValidTheme(slug string) bool {
	_, ok := ValidThemes[strings.TrimSpace(strings.ToLower(slug))]
	return ok
}

// ThemeForTopic returns the broad theme for a granular topic slug, or ""
// when the topic is unknown.
func ThemeForTopic(topic string) string {
	return topicToTheme[strings.TrimSpace(strings.ToLower(topic))]
}

// InferTheme derives a broad theme from an ordered topic list. The first
// topic carries the highest inferred relevance, so the first one with a
// known mapping wins.
func InferTheme(topics []string) string {
	for _, t := range topics {
		if theme := ThemeForTopic(t); theme != "" {
			return theme
		}
	}
	return ""
}

// InterestSlugsForSourceLabel returns the interest slugs compatible with
// a source theme label. Unknown labels that are already valid slugs map
// to themselves, so catalogs storing bare slugs keep working.
func InterestSlugsForSourceLabel(label string) []string {
	norm := strings.TrimSpace(strings.ToLower(label))
	if norm == "" {
		return nil
	}
	if slugs, ok := sourceLabelToSlugs[norm]; ok {
		return slugs
	}
	if _, ok := ValidThemes[norm]; ok {
		return []string{norm}
	}
	return nil
}
