package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThemeForTopic(t *testing.T) {
	tests := []struct {
		name  string
		topic string
		want  string
	}{
		{name: "known topic", topic: "ai", want: "tech"},
		{name: "case insensitive", topic: "  Climate ", want: "environment"},
		{name: "unknown topic", topic: "origami", want: ""},
		{name: "empty", topic: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ThemeForTopic(tt.topic))
		})
	}
}

func TestInferTheme(t *testing.T) {
	tests := []struct {
		name   string
		topics []string
		want   string
	}{
		{name: "first topic wins", topics: []string{"ai", "climate"}, want: "tech"},
		{name: "skips unknown leading topic", topics: []string{"origami", "finance"}, want: "economy"},
		{name: "no mapping", topics: []string{"origami"}, want: ""},
		{name: "nil topics", topics: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferTheme(tt.topics))
		})
	}
}

func TestInterestSlugsForSourceLabel(t *testing.T) {
	assert.Equal(t, []string{"tech", "science"}, InterestSlugsForSourceLabel("Tech & Future"))
	assert.Equal(t, []string{"politics", "international"}, InterestSlugsForSourceLabel(" geopolitics "))
	// Bare slugs pass through.
	assert.Equal(t, []string{"culture"}, InterestSlugsForSourceLabel("culture"))
	assert.Nil(t, InterestSlugsForSourceLabel("esoterica"))
	assert.Nil(t, InterestSlugsForSourceLabel(""))
}

func TestAllMappedThemesAreValid(t *testing.T) {
	for topic, theme := range topicToTheme {
		_, ok := ValidThemes[theme]
		assert.True(t, ok, "topic %q maps to invalid theme %q", topic, theme)
	}
}
