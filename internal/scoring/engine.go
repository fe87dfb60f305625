package scoring

import (
	"log/slog"

	"github.com/mvasiljevic/feed-curator/internal/domain"
)

// Layer computes one additive scoring dimension for a content item.
// Layers must not mutate the item or shared engine state; they may append
// to the context's reason log.
type Layer interface {
	Name() string
	Score(item *domain.ContentItem, ctx *Context) float64
}

// Engine sums the contributions of an ordered list of layers. A failing
// layer is logged and contributes zero; it never aborts scoring of other
// layers or items.
type Engine struct {
	layers []Layer
}

func NewEngine(layers ...Layer) *Engine {
	return &Engine{layers: layers}
}

// NewDefaultEngine wires the production layer stack in its fixed order.
func NewDefaultEngine(w Weights) *Engine {
	return NewEngine(
		&CoreLayer{Weights: w},
		&TopicLayer{Weights: w},
		&ReliabilityLayer{Weights: w},
		&ContentQualityLayer{Weights: w},
		&VisualLayer{Weights: w},
		&StaticPrefsLayer{},
		&BehavioralLayer{Weights: w},
		&PersonalizationLayer{Weights: w},
	)
}

// ComputeScore returns the summed layer contributions for one item.
// Deterministic for an identical (item, context) pair.
func (e *Engine) ComputeScore(item *domain.ContentItem, ctx *Context) float64 {
	total := 0.0
	for _, layer := range e.layers {
		total += e.scoreLayer(layer, item, ctx)
	}
	return total
}

func (e *Engine) scoreLayer(layer Layer, item *domain.ContentItem, ctx *Context) (score float64) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("scoring layer panicked, contribution dropped",
				"layer", layer.Name(), "content_id", item.ID, "panic", r)
			score = 0
		}
	}()
	return layer.Score(item, ctx)
}
