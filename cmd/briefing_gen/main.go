// briefing_gen pre-generates daily briefings, so the first app open of
// the day hits a warm selection instead of paying for the pipeline.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mvasiljevic/feed-curator/internal/briefing"
	"github.com/mvasiljevic/feed-curator/internal/domain"
	"github.com/mvasiljevic/feed-curator/internal/frontpage"
	"github.com/mvasiljevic/feed-curator/internal/scoring"
	"github.com/mvasiljevic/feed-curator/internal/storage/factory"
	"github.com/mvasiljevic/feed-curator/pkg/config/env"
)

func main() {
	users := flag.String("users", "", "comma-separated user ids to generate for")
	digest := flag.Bool("digest", false, "generate the five-item digest instead of the Top 3")
	timeout := flag.Duration("timeout", 2*time.Minute, "per-user generation timeout")
	flag.Parse()

	if err := env.LoadDotEnv(os.Getenv("ENV"), "cmd/briefing_gen/.env"); err != nil {
		slog.Info("Failed to load .env, continuing with existing environment variables", "error", err)
	}

	userIDs, err := parseUserIDs(*users)
	if err != nil {
		slog.Error("Invalid -users flag", "error", err)
		os.Exit(1)
	}
	if len(userIDs) == 0 {
		slog.Error("No user ids given, nothing to generate")
		os.Exit(1)
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage configuration", "error", err)
		os.Exit(1)
	}

	backends, err := factory.NewBackends(context.Background(), *storageCfg)
	if err != nil {
		slog.Error("Failed to create storage backends", "error", err)
		os.Exit(1)
	}
	defer backends.Close()

	gen, err := briefing.NewGenerator(
		backends.Candidates,
		backends.Briefings,
		scoring.DefaultWeights(),
		frontpage.NewFetcher(0),
	)
	if err != nil {
		slog.Error("Failed to create briefing generator", "error", err)
		os.Exit(1)
	}

	size := domain.BriefingSize
	if *digest {
		size = domain.DigestSize
	}

	failed := 0
	for _, userID := range userIDs {
		if err := generateOne(gen, userID, size, *timeout); err != nil {
			slog.Error("Generation failed", "user_id", userID, "error", err)
			failed++
		}
	}

	slog.Info("Generation run finished", "users", len(userIDs), "failed", failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func generateOne(gen *briefing.Generator, userID uuid.UUID, size int, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	items, err := gen.Generate(ctx, briefing.Request{
		User: scoring.NewContext(userID, time.Now()),
		Size: size,
	})
	if err != nil {
		return err
	}

	slog.Info("Briefing generated", "user_id", userID, "slots", len(items))
	return nil
}

func parseUserIDs(raw string) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
