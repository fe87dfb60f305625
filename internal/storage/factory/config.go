package factory

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mvasiljevic/feed-curator/internal/storage"
	"github.com/mvasiljevic/feed-curator/internal/storage/es"
	"github.com/mvasiljevic/feed-curator/internal/storage/pg"
)

func LoadEnv() (*Config, error) {
	storageType := (storage.Type)(os.Getenv("STORAGE_TYPE"))
	if storageType == "" {
		slog.Error("STORAGE_TYPE environment variable is not set")
		return nil, fmt.Errorf("STORAGE_TYPE environment variable is not set")
	}
	if storageType != storage.ES && storageType != storage.PG && storageType != storage.InMem {
		slog.Error("Invalid STORAGE_TYPE environment variable value", "value", storageType)
		return nil, fmt.Errorf(
			"invalid STORAGE_TYPE environment variable value: %s, expected one of %v",
			storageType,
			[]storage.Type{storage.ES, storage.PG, storage.InMem})
	}

	cfg := &Config{Type: storageType}

	if storageType == storage.ES {
		cfg.ES = es.ClientConfig{
			Addresses: strings.Split(os.Getenv("ES_ADDRESSES"), ","),
			IndexName: os.Getenv("ES_INDEX_NAME"),
			Username:  os.Getenv("ES_USERNAME"),
			Password:  os.Getenv("ES_PASSWORD"),
		}
		if len(cfg.ES.Addresses) == 0 || cfg.ES.IndexName == "" {
			slog.Error("Elasticsearch configuration is incomplete",
				"addresses", cfg.ES.Addresses, "indexName", cfg.ES.IndexName)
			return nil, fmt.Errorf("elasticsearch configuration is incomplete: addresses or index name is missing")
		}
	}

	// Briefing persistence always runs on Postgres, so the conn string is
	// required for both the pg and es candidate backends.
	if storageType == storage.PG || storageType == storage.ES {
		cfg.PG = pg.PoolConfig{
			ConnStr: os.Getenv("PG_CONNECTION_STRING"),
		}
		if cfg.PG.ConnStr == "" {
			slog.Error("PostgreSQL connection string is not set")
			return nil, fmt.Errorf("PostgreSQL connection string is not set")
		}
	}

	return cfg, nil
}
