package scoring

import (
	"fmt"
	"io"
	"math"

	"github.com/mvasiljevic/feed-curator/internal/apperr"
	"gopkg.in/yaml.v3"
)

// Weights is the externally tunable constant table for the whole ranking
// core. Every knob the scoring layers, diversity re-rank, importance
// detector and briefing selector use lives here so product can retune
// the balance without code changes.
type Weights struct {
	// Core layer
	ThemeMatch           float64 `yaml:"theme_match"`
	SecondaryThemeFactor float64 `yaml:"secondary_theme_factor"`
	FollowedSource       float64 `yaml:"followed_source"`
	CustomSourceBonus    float64 `yaml:"custom_source_bonus"`
	StandardSource       float64 `yaml:"standard_source"`
	RecencyBase          float64 `yaml:"recency_base"`
	SourceAffinityMax    float64 `yaml:"source_affinity_max"`

	// Reliability layer
	ReliabilityHighBonus float64 `yaml:"reliability_high_bonus"`
	ReliabilityLowMalus  float64 `yaml:"reliability_low_malus"`

	// Content-quality layer
	QualityFull    float64 `yaml:"quality_full"`
	QualityPartial float64 `yaml:"quality_partial"`

	// Visual layer
	ImageBoost float64 `yaml:"image_boost"`

	// Topic-precision layer
	TopicMatch             float64 `yaml:"topic_match"`
	TopicMaxMatches        int     `yaml:"topic_max_matches"`
	SubtopicPrecisionBonus float64 `yaml:"subtopic_precision_bonus"`

	// Personalization maluses (stored positive, applied negative)
	MutePenaltySource float64 `yaml:"mute_penalty_source"`
	MutePenaltyKind   float64 `yaml:"mute_penalty_kind"`
	MutePenaltyTheme  float64 `yaml:"mute_penalty_theme"`
	MutePenaltyTopic  float64 `yaml:"mute_penalty_topic"`

	// Diversity re-rank
	DiversityDecay float64 `yaml:"diversity_decay"`

	// Importance detector
	ClusterSimilarityThreshold float64 `yaml:"cluster_similarity_threshold"`
	ClusterMinTokens           int     `yaml:"cluster_min_tokens"`
	ClusterMaxTokens           int     `yaml:"cluster_max_tokens"`
	MinSourcesForTrending      int     `yaml:"min_sources_for_trending"`

	// Briefing / digest selection
	FrontPageBoost     float64 `yaml:"front_page_boost"`
	TrendingBoost      float64 `yaml:"trending_boost"`
	DigestMaxPerSource int     `yaml:"digest_max_per_source"`
	DigestMaxPerTheme  int     `yaml:"digest_max_per_theme"`
}

// DefaultWeights returns the production tuning.
func DefaultWeights() Weights {
	return Weights{
		ThemeMatch:           50,
		SecondaryThemeFactor: 0.7,
		FollowedSource:       35,
		CustomSourceBonus:    12,
		StandardSource:       15,
		RecencyBase:          30,
		SourceAffinityMax:    20,

		ReliabilityHighBonus: 10,
		ReliabilityLowMalus:  20,

		QualityFull:    15,
		QualityPartial: 6,

		ImageBoost: 12,

		TopicMatch:             45,
		TopicMaxMatches:        2,
		SubtopicPrecisionBonus: 18,

		MutePenaltySource: 80,
		MutePenaltyKind:   50,
		MutePenaltyTheme:  40,
		MutePenaltyTopic:  30,

		DiversityDecay: 0.7,

		ClusterSimilarityThreshold: 0.4,
		ClusterMinTokens:           3,
		ClusterMaxTokens:           30,
		MinSourcesForTrending:      3,

		FrontPageBoost:     30,
		TrendingBoost:      40,
		DigestMaxPerSource: 2,
		DigestMaxPerTheme:  2,
	}
}

// LoadWeights reads a yaml weights table, layered over the defaults so a
// config file only needs to name the knobs it changes.
func LoadWeights(r io.Reader) (Weights, error) {
	w := DefaultWeights()
	if err := yaml.NewDecoder(r).Decode(&w); err != nil {
		return Weights{}, fmt.Errorf("failed to decode weights: %w", err)
	}
	if err := w.Validate(); err != nil {
		return Weights{}, err
	}
	return w, nil
}

// Validate fails fast on configuration that would silently degrade the
// pipeline.
func (w Weights) Validate() error {
	if w.DiversityDecay <= 0 || w.DiversityDecay > 1 {
		return apperr.NewValidation("diversity_decay must be in (0, 1]")
	}
	if w.ClusterSimilarityThreshold < 0 || w.ClusterSimilarityThreshold > 1 {
		return apperr.NewValidation("cluster_similarity_threshold must be in [0, 1]")
	}
	if w.MinSourcesForTrending < 1 {
		return apperr.NewValidation("min_sources_for_trending must be >= 1")
	}
	if w.TopicMaxMatches < 1 {
		return apperr.NewValidation("topic_max_matches must be >= 1")
	}
	if w.ClusterMinTokens < 1 || w.ClusterMaxTokens < w.ClusterMinTokens {
		return apperr.NewValidation("cluster token bounds must satisfy 1 <= min <= max")
	}
	if w.DigestMaxPerSource < 1 || w.DigestMaxPerTheme < 1 {
		return apperr.NewValidation("digest diversity caps must be >= 1")
	}
	for name, v := range map[string]float64{
		"theme_match":      w.ThemeMatch,
		"followed_source":  w.FollowedSource,
		"standard_source":  w.StandardSource,
		"recency_base":     w.RecencyBase,
		"front_page_boost": w.FrontPageBoost,
		"trending_boost":   w.TrendingBoost,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return apperr.NewValidation(name + " must be a non-negative finite number")
		}
	}
	return nil
}
