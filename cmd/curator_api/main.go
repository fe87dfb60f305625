package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/mvasiljevic/feed-curator/internal/apperr"
	"github.com/mvasiljevic/feed-curator/internal/briefing"
	"github.com/mvasiljevic/feed-curator/internal/frontpage"
	"github.com/mvasiljevic/feed-curator/internal/router"
	"github.com/mvasiljevic/feed-curator/internal/server"
	"github.com/mvasiljevic/feed-curator/internal/storage/factory"
)

func main() {
	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load server config", "error", err)
		os.Exit(1)
	}

	e := echo.New()
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()

	s := server.NewServer(e, sCfg)

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "Feed Curator API is running")
	})

	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}

	backends, err := factory.NewBackends(context.Background(), cfg.StorageConfig)
	if err != nil {
		slog.Error("Failed to create storage backends", "error", err)
		os.Exit(1)
	}
	defer backends.Close()

	s.SetupHealthChecks(backends.HealthChecker())

	gen, err := briefing.NewGenerator(
		backends.Candidates,
		backends.Briefings,
		cfg.Weights,
		frontpage.NewFetcher(0),
	)
	if err != nil {
		slog.Error("Failed to create briefing generator", "error", err)
		os.Exit(1)
	}

	router.NewFeedRouter(s.Echo, gen, nil, cfg.Sources).Bind()
	router.NewBriefingRouter(s.Echo, gen, nil, cfg.Sources).Bind()

	if err := s.Start(); err != nil {
		s.Echo.Logger.Error("Failed to start server: ", err)
		os.Exit(1)
	}
}
