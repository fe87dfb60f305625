package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/mvasiljevic/feed-curator/internal/domain"
	"github.com/mvasiljevic/feed-curator/internal/scoring"
	"github.com/mvasiljevic/feed-curator/internal/storage/factory"
	"github.com/mvasiljevic/feed-curator/pkg/config/env"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type CuratorConfig struct {
	StorageConfig factory.Config
	Weights       scoring.Weights
	Sources       []domain.Source
}

func (as *AppConfig) Load() (*CuratorConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/curator_api/.env")
	if err != nil {
		slog.Info("Failed to load .env, continuing with existing environment variables", "error", err)
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage configuration from environment", "error", err)
		return nil, err
	}

	weights, err := loadWeights(os.Getenv("WEIGHTS_PATH"))
	if err != nil {
		return nil, err
	}

	sources, err := loadSourceCatalog(os.Getenv("SOURCES_PATH"))
	if err != nil {
		return nil, err
	}

	return &CuratorConfig{
		StorageConfig: *storageCfg,
		Weights:       weights,
		Sources:       sources,
	}, nil
}

// loadWeights layers the optional yaml knob file over the defaults.
func loadWeights(path string) (scoring.Weights, error) {
	if path == "" {
		return scoring.DefaultWeights(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return scoring.Weights{}, fmt.Errorf("failed to open weights file: %w", err)
	}
	defer f.Close()

	w, err := scoring.LoadWeights(f)
	if err != nil {
		return scoring.Weights{}, fmt.Errorf("failed to load weights from %s: %w", path, err)
	}
	return w, nil
}

type sourceEntry struct {
	ID               string   `yaml:"id"`
	Name             string   `yaml:"name"`
	Theme            string   `yaml:"theme"`
	SecondaryThemes  []string `yaml:"secondary_themes"`
	Bias             string   `yaml:"bias"`
	Reliability      string   `yaml:"reliability"`
	Curated          bool     `yaml:"curated"`
	FrontPageFeedURL string   `yaml:"front_page_feed_url"`
}

// loadSourceCatalog reads the curated source catalog. The catalog drives
// the front-page importance signal; an empty path just disables it.
func loadSourceCatalog(path string) ([]domain.Source, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source catalog: %w", err)
	}

	var entries []sourceEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse source catalog: %w", err)
	}

	sources := make([]domain.Source, 0, len(entries))
	for _, e := range entries {
		id, err := uuid.Parse(e.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid source id %q in catalog: %w", e.ID, err)
		}
		sources = append(sources, domain.Source{
			ID:               id,
			Name:             e.Name,
			Theme:            e.Theme,
			SecondaryThemes:  e.SecondaryThemes,
			Bias:             domain.BiasStance(e.Bias),
			Reliability:      domain.ReliabilityTier(e.Reliability),
			Curated:          e.Curated,
			FrontPageFeedURL: e.FrontPageFeedURL,
		})
	}
	return sources, nil
}
