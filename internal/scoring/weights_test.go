package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvasiljevic/feed-curator/internal/apperr"
)

func TestDefaultWeightsValidate(t *testing.T) {
	assert.NoError(t, DefaultWeights().Validate())
}

func TestWeightsValidateRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Weights)
	}{
		{name: "zero decay", mutate: func(w *Weights) { w.DiversityDecay = 0 }},
		{name: "decay above one", mutate: func(w *Weights) { w.DiversityDecay = 1.5 }},
		{name: "negative threshold", mutate: func(w *Weights) { w.ClusterSimilarityThreshold = -0.1 }},
		{name: "threshold above one", mutate: func(w *Weights) { w.ClusterSimilarityThreshold = 1.1 }},
		{name: "min sources zero", mutate: func(w *Weights) { w.MinSourcesForTrending = 0 }},
		{name: "negative theme match", mutate: func(w *Weights) { w.ThemeMatch = -1 }},
		{name: "inverted token bounds", mutate: func(w *Weights) { w.ClusterMaxTokens = w.ClusterMinTokens - 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := DefaultWeights()
			tt.mutate(&w)

			err := w.Validate()
			require.Error(t, err)

			var ve *apperr.ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}
}

func TestLoadWeightsLayersOverDefaults(t *testing.T) {
	yml := "theme_match: 70\ndiversity_decay: 0.85\n"

	w, err := LoadWeights(strings.NewReader(yml))
	require.NoError(t, err)

	assert.Equal(t, 70.0, w.ThemeMatch)
	assert.Equal(t, 0.85, w.DiversityDecay)
	// Untouched knobs keep the defaults.
	assert.Equal(t, DefaultWeights().TopicMatch, w.TopicMatch)
}

func TestLoadWeightsFailsFastOnInvalid(t *testing.T) {
	_, err := LoadWeights(strings.NewReader("min_sources_for_trending: 0\n"))
	require.Error(t, err)
}
