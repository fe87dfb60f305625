package domain

import "github.com/google/uuid"

// BiasStance is the editorial stance of a source.
type BiasStance string

const (
	BiasLeft        BiasStance = "left"
	BiasCenterLeft  BiasStance = "center-left"
	BiasCenter      BiasStance = "center"
	BiasCenterRight BiasStance = "center-right"
	BiasRight       BiasStance = "right"
	BiasAlternative BiasStance = "alternative"
	BiasSpecialized BiasStance = "specialized"
	BiasUnknown     BiasStance = "unknown"
)

// ParseBiasStance maps a raw string to a known stance; unrecognized
// values report false instead of silently becoming a policy key.
func ParseBiasStance(raw string) (BiasStance, bool) {
	switch BiasStance(raw) {
	case BiasLeft, BiasCenterLeft, BiasCenter, BiasCenterRight, BiasRight,
		BiasAlternative, BiasSpecialized, BiasUnknown:
		return BiasStance(raw), true
	default:
		return "", false
	}
}

// ReliabilityTier is an editorial trust rating for a source.
type ReliabilityTier string

const (
	ReliabilityLow     ReliabilityTier = "low"
	ReliabilityMedium  ReliabilityTier = "medium"
	ReliabilityMixed   ReliabilityTier = "mixed"
	ReliabilityHigh    ReliabilityTier = "high"
	ReliabilityUnknown ReliabilityTier = "unknown"
)

type Source struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	// Theme is the primary broad theme slug (tech, society, ...).
	Theme           string          `json:"theme,omitempty"`
	SecondaryThemes []string        `json:"secondaryThemes,omitempty"`
	Bias            BiasStance      `json:"bias,omitempty"`
	Reliability     ReliabilityTier `json:"reliability,omitempty"`
	// Curated marks hand-picked catalog sources, as opposed to
	// auto-indexed ones.
	Curated bool `json:"curated,omitempty"`
	// FrontPageFeedURL points at the source's curated "front page" feed,
	// when it publishes one.
	FrontPageFeedURL string `json:"frontPageFeedUrl,omitempty"`
}

// HasTheme reports whether theme matches the source's primary or any
// secondary theme.
func (s *Source) HasTheme(theme string) bool {
	if s == nil || theme == "" {
		return false
	}
	if s.Theme == theme {
		return true
	}
	for _, t := range s.SecondaryThemes {
		if t == theme {
			return true
		}
	}
	return false
}
