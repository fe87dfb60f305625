package scoring

import "github.com/mvasiljevic/feed-curator/internal/domain"

// StaticPrefsLayer applies the onboarding preferences: how much recency
// should weigh and which formats the user favors.
type StaticPrefsLayer struct{}

const (
	prefRecencyBonus  = 15.0
	prefArchiveBonus  = 10.0
	prefFormatBonus   = 20.0
	prefDurationBonus = 15.0

	shortDurationMax = 300 // seconds, <= 5 min
	longDurationMin  = 900 // seconds, >= 15 min
)

func (l *StaticPrefsLayer) Name() string { return "static_prefs" }

func (l *StaticPrefsLayer) Score(item *domain.ContentItem, ctx *Context) float64 {
	score := 0.0

	switch ctx.Prefs["content_recency"] {
	case "recent":
		if l.ageHours(item, ctx) >= 0 && l.ageHours(item, ctx) < 24 {
			score += prefRecencyBonus
			ctx.AddReason(item.ID, l.Name(), prefRecencyBonus, "Pref: recent content")
		}
	case "timeless":
		// Compensate the core recency decay so older evergreen items can
		// climb back.
		if l.ageHours(item, ctx) > 48 {
			score += prefArchiveBonus
			ctx.AddReason(item.ID, l.Name(), prefArchiveBonus, "Pref: timeless content")
		}
	}

	switch format := ctx.Prefs["format_preference"]; format {
	case "audio":
		if item.Kind == domain.KindPodcast {
			score += prefFormatBonus
			ctx.AddReason(item.ID, l.Name(), prefFormatBonus, "Pref: audio match")
		}
	case "video":
		if item.Kind == domain.KindVideo {
			score += prefFormatBonus
			ctx.AddReason(item.ID, l.Name(), prefFormatBonus, "Pref: video match")
		}
	case "short":
		if item.DurationSeconds > 0 && item.DurationSeconds <= shortDurationMax {
			score += prefDurationBonus
			ctx.AddReason(item.ID, l.Name(), prefDurationBonus, "Pref: short match")
		}
	case "long":
		if item.DurationSeconds >= longDurationMin {
			score += prefDurationBonus
			ctx.AddReason(item.ID, l.Name(), prefDurationBonus, "Pref: long match")
		}
	}

	return score
}

// ageHours returns -1 when the publish time is unknown, so missing
// timestamps never trigger a recency preference.
func (l *StaticPrefsLayer) ageHours(item *domain.ContentItem, ctx *Context) float64 {
	if item.PublishedAt.IsZero() {
		return -1
	}
	h := ctx.Now.Sub(item.PublishedAt).Hours()
	if h < 0 {
		h = 0
	}
	return h
}
