package scoring

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mvasiljevic/feed-curator/internal/domain"
)

// Contribution is one layer's signed addition to an item's score,
// with a short human-readable justification for UI transparency.
// Contributions never feed back into the scoring math.
type Contribution struct {
	Layer   string  `json:"layer"`
	Points  float64 `json:"points"`
	Details string  `json:"details"`
}

// Context bundles the user signals every layer scores against. It is
// built once per ranking request and never mutated by layers, except for
// the append-only reason log.
type Context struct {
	UserID uuid.UUID

	// Interests maps interest slugs to consumption weights. Weight 1.0 is
	// neutral; above 1.0 means heavy consumption of the theme.
	Interests map[string]float64
	// Subtopics maps granular topic slugs to weights, same convention.
	Subtopics map[string]float64

	FollowedSources map[uuid.UUID]struct{}
	CustomSources   map[uuid.UUID]struct{}
	// SourceAffinity holds learned per-source affinity in [0, 1].
	SourceAffinity map[uuid.UUID]float64

	MutedSources map[uuid.UUID]struct{}
	MutedThemes  map[string]struct{}
	MutedTopics  map[string]struct{}
	MutedKinds   map[domain.ContentKind]struct{}

	// Prefs carries free-form onboarding preferences
	// (content_recency: recent|timeless|balanced, format_preference: ...).
	Prefs map[string]string

	Now time.Time

	// reasonMu guards the log: items are scored in parallel, so layers
	// append concurrently for different content ids.
	reasonMu sync.Mutex
	reasons  map[uuid.UUID][]Contribution
}

// NewContext returns a Context with all collections initialized empty, so
// callers only fill what they have and layers never nil-check maps.
func NewContext(userID uuid.UUID, now time.Time) *Context {
	return &Context{
		UserID:          userID,
		Interests:       map[string]float64{},
		Subtopics:       map[string]float64{},
		FollowedSources: map[uuid.UUID]struct{}{},
		CustomSources:   map[uuid.UUID]struct{}{},
		SourceAffinity:  map[uuid.UUID]float64{},
		MutedSources:    map[uuid.UUID]struct{}{},
		MutedThemes:     map[string]struct{}{},
		MutedTopics:     map[string]struct{}{},
		MutedKinds:      map[domain.ContentKind]struct{}{},
		Prefs:           map[string]string{},
		Now:             now,
		reasons:         map[uuid.UUID][]Contribution{},
	}
}

// InterestedIn reports whether slug is one of the user's interests.
func (c *Context) InterestedIn(slug string) bool {
	_, ok := c.Interests[slug]
	return ok
}

// Follows reports whether the user follows the source.
func (c *Context) Follows(sourceID uuid.UUID) bool {
	_, ok := c.FollowedSources[sourceID]
	return ok
}

// AddReason appends a contribution to the reason log for a content item.
// The log is keyed by content id; ordering across layers is unspecified.
func (c *Context) AddReason(contentID uuid.UUID, layer string, points float64, details string) {
	c.reasonMu.Lock()
	defer c.reasonMu.Unlock()
	c.reasons[contentID] = append(c.reasons[contentID], Contribution{
		Layer:   layer,
		Points:  points,
		Details: details,
	})
}

// Reasons returns the logged contributions for a content item.
func (c *Context) Reasons(contentID uuid.UUID) []Contribution {
	c.reasonMu.Lock()
	defer c.reasonMu.Unlock()
	return c.reasons[contentID]
}
