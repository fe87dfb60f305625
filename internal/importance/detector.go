// Package importance detects objectively important content: headlines
// covered by several independent sources (trending clusters) and items
// published on curated front-page feeds. It is decoupled from the
// scoring engine; its output feeds the briefing selector.
package importance

import (
	"log/slog"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/mvasiljevic/feed-curator/internal/apperr"
	"github.com/mvasiljevic/feed-curator/internal/domain"
	"github.com/mvasiljevic/feed-curator/internal/scoring"
)

// Detector clusters same-day candidates into topics by lexical title
// similarity.
type Detector struct {
	// SimilarityThreshold is the minimum Jaccard similarity for two
	// titles to land in the same cluster.
	SimilarityThreshold float64
	// MinSources is the distinct-source floor for a cluster to count as
	// trending; below it a cluster is one outlet repeating itself.
	MinSources int
	// MinTokens keeps very short titles out of clustering: fewer tokens
	// than this and the item stays a singleton.
	MinTokens int
	// MaxTokens caps the growth of a cluster's token set to stop topic
	// drift as items merge in.
	MaxTokens int
}

// NewDetector validates the configuration and fails fast on values that
// would silently degrade detection.
func NewDetector(threshold float64, minSources, minTokens, maxTokens int) (*Detector, error) {
	if threshold < 0 || threshold > 1 {
		return nil, apperr.NewValidation("similarity threshold must be in [0, 1]")
	}
	if minSources < 1 {
		return nil, apperr.NewValidation("min sources must be >= 1")
	}
	if minTokens < 1 || maxTokens < minTokens {
		return nil, apperr.NewValidation("token bounds must satisfy 1 <= min <= max")
	}
	return &Detector{
		SimilarityThreshold: threshold,
		MinSources:          minSources,
		MinTokens:           minTokens,
		MaxTokens:           maxTokens,
	}, nil
}

// NewDetectorFromWeights builds a detector from the tunable weights table.
func NewDetectorFromWeights(w scoring.Weights) (*Detector, error) {
	return NewDetector(
		w.ClusterSimilarityThreshold,
		w.MinSourcesForTrending,
		w.ClusterMinTokens,
		w.ClusterMaxTokens,
	)
}

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeTitle reduces a headline to its distinctive token set:
// lowercase, diacritics stripped, punctuation and digits dropped,
// stop words and tokens of three characters or fewer removed.
func NormalizeTitle(title string) map[string]struct{} {
	tokens := map[string]struct{}{}
	if title == "" {
		return tokens
	}

	text := strings.ToLower(title)
	if plain, _, err := transform.String(deaccent, text); err == nil {
		text = plain
	}

	var b strings.Builder
	for _, r := range text {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	for _, tok := range strings.Fields(b.String()) {
		// Rune count, not bytes: multi-byte scripts must face the same floor.
		if utf8.RuneCountInString(tok) <= 3 {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		tokens[tok] = struct{}{}
	}
	return tokens
}

// Jaccard is |A ∩ B| / |A ∪ B| over token sets: 1.0 for identical sets,
// 0.0 for disjoint or empty ones.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// BuildClusters greedily groups items by title similarity. Each item
// joins the best-matching existing cluster at or above the threshold, or
// founds a new one. Clusters come back sorted by size descending.
func (d *Detector) BuildClusters(items []domain.ContentItem) []domain.TopicCluster {
	if len(items) == 0 {
		return nil
	}

	clusters := make([]domain.TopicCluster, 0, len(items))

	for _, item := range items {
		tokens := NormalizeTitle(item.Title)
		if len(tokens) == 0 {
			continue
		}

		// Short titles carry too little signal to merge safely.
		if len(tokens) < d.MinTokens {
			clusters = append(clusters, newCluster(item, tokens))
			continue
		}

		best := -1
		bestSim := 0.0
		for i := range clusters {
			sim := Jaccard(tokens, clusters[i].Tokens)
			if sim >= d.SimilarityThreshold && sim > bestSim {
				bestSim = sim
				best = i
			}
		}

		if best < 0 {
			clusters = append(clusters, newCluster(item, tokens))
			continue
		}

		c := &clusters[best]
		c.Items = append(c.Items, item)
		c.SourceIDs[item.SourceID] = struct{}{}
		// Token sets overlap after a merge, so the cap applies to the union
		// size, not the sum of both sets.
		union := len(c.Tokens)
		for tok := range tokens {
			if _, ok := c.Tokens[tok]; !ok {
				union++
			}
		}
		if union <= d.MaxTokens {
			for tok := range tokens {
				c.Tokens[tok] = struct{}{}
			}
		}
	}

	for i := range clusters {
		clusters[i].Theme = dominantTheme(clusters[i].Items)
	}

	sortClustersBySize(clusters)

	slog.Debug("topic clustering complete",
		"items", len(items),
		"clusters", len(clusters),
		"threshold", d.SimilarityThreshold,
	)
	return clusters
}

// TrendingIDs returns the content ids that belong to a trending cluster:
// one aggregating items from at least MinSources distinct sources.
// Clusters below the floor are discarded outright.
func (d *Detector) TrendingIDs(items []domain.ContentItem) map[uuid.UUID]struct{} {
	trending := map[uuid.UUID]struct{}{}
	for _, c := range d.BuildClusters(items) {
		if len(c.SourceIDs) < d.MinSources {
			continue
		}
		for _, it := range c.Items {
			trending[it.ID] = struct{}{}
		}
	}
	return trending
}

// FrontPageIDs intersects the candidate set with the externally supplied
// curated front-page GUIDs, independent of clustering.
func FrontPageIDs(items []domain.ContentItem, frontPageGUIDs map[string]struct{}) map[uuid.UUID]struct{} {
	ids := map[uuid.UUID]struct{}{}
	for _, it := range items {
		if it.GUID == "" {
			continue
		}
		if _, ok := frontPageGUIDs[it.GUID]; ok {
			ids[it.ID] = struct{}{}
		}
	}
	return ids
}

func newCluster(item domain.ContentItem, tokens map[string]struct{}) domain.TopicCluster {
	return domain.TopicCluster{
		ID:        uuid.New(),
		Tokens:    tokens,
		Items:     []domain.ContentItem{item},
		SourceIDs: map[uuid.UUID]struct{}{item.SourceID: {}},
	}
}

func dominantTheme(items []domain.ContentItem) string {
	counts := map[string]int{}
	for _, it := range items {
		if theme := it.EffectiveTheme(); theme != "" {
			counts[theme]++
		}
	}
	best, bestCount := "", 0
	for theme, n := range counts {
		if n > bestCount || (n == bestCount && theme < best) {
			best, bestCount = theme, n
		}
	}
	return best
}

func sortClustersBySize(clusters []domain.TopicCluster) {
	sort.SliceStable(clusters, func(i, j int) bool {
		return len(clusters[i].Items) > len(clusters[j].Items)
	})
}
