package router

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/mvasiljevic/feed-curator/internal/apperr"
	"github.com/mvasiljevic/feed-curator/internal/briefing"
	"github.com/mvasiljevic/feed-curator/internal/domain"
	"github.com/mvasiljevic/feed-curator/internal/dto"
	"github.com/mvasiljevic/feed-curator/internal/filter"
	"github.com/mvasiljevic/feed-curator/internal/scoring"
	"github.com/mvasiljevic/feed-curator/internal/taxonomy"
)

// ContextResolver builds the scoring context for a user. Implementations
// typically read the user's interests, follows and mutes from a profile
// store; the default resolver returns an empty context so every request
// degrades to recency-only ranking.
type ContextResolver interface {
	Resolve(ctx context.Context, userID uuid.UUID) (*scoring.Context, error)
}

type emptyContextResolver struct{}

func (emptyContextResolver) Resolve(_ context.Context, userID uuid.UUID) (*scoring.Context, error) {
	return scoring.NewContext(userID, time.Now()), nil
}

func NewEmptyContextResolver() ContextResolver {
	return emptyContextResolver{}
}

type FeedRouter struct {
	e        *echo.Echo
	gen      *briefing.Generator
	resolver ContextResolver
	// sources is the catalog used to derive a perspective bias from the
	// user's follows when the request does not pin one.
	sources []domain.Source
}

func NewFeedRouter(e *echo.Echo, gen *briefing.Generator, resolver ContextResolver, sources []domain.Source) *FeedRouter {
	if resolver == nil {
		resolver = NewEmptyContextResolver()
	}
	return &FeedRouter{
		e:        e,
		gen:      gen,
		resolver: resolver,
		sources:  sources,
	}
}

func (r *FeedRouter) Bind() {
	r.e.GET("/feed", r.feedHandler)
}

func (r *FeedRouter) feedHandler(c echo.Context) error {
	userID, err := parseUserID(c)
	if err != nil {
		return err
	}

	window, err := parseWindow(c)
	if err != nil {
		return err
	}

	sourceIDs, err := parseSourceIDs(c)
	if err != nil {
		return err
	}

	curated, err := parseCurated(c)
	if err != nil {
		return err
	}

	user, err := r.resolver.Resolve(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	preset, err := parsePreset(c, user, r.sources)
	if err != nil {
		return err
	}

	ranked, err := r.gen.ScoreFeed(c.Request().Context(), briefing.Request{
		User:        user,
		Preset:      preset,
		Window:      window,
		SourceIDs:   sourceIDs,
		CuratedOnly: curated,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewFeedResponse(ranked, user))
}

func parseUserID(c echo.Context) (uuid.UUID, error) {
	raw := c.QueryParam("user_id")
	if raw == "" {
		return uuid.Nil, apperr.NewValidation("user_id parameter is required")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.NewValidationWrap("user_id must be a valid uuid", err)
	}
	return userID, nil
}

// parsePreset maps the preset and theme query params onto a pool filter.
// preset=calm excludes hard-news themes and keywords; preset=theme_focus
// requires a valid theme param. preset=perspective takes an explicit
// bias param or derives the stance from the user's followed sources.
func parsePreset(c echo.Context, user *scoring.Context, catalog []domain.Source) (filter.Preset, error) {
	switch c.QueryParam("preset") {
	case "":
		return nil, nil
	case "calm":
		return filter.CalmPreset{}, nil
	case "theme_focus":
		theme := c.QueryParam("theme")
		if theme == "" {
			return nil, apperr.NewValidation("theme parameter is required for theme_focus preset")
		}
		if !taxonomy.IsValidTheme(theme) {
			return nil, apperr.NewValidation("unknown theme: " + theme)
		}
		return filter.ThemeFocusPreset{Theme: theme}, nil
	case "perspective":
		raw := c.QueryParam("bias")
		if raw == "" {
			return filter.PerspectivePreset{UserBias: derivedBias(user, catalog)}, nil
		}
		bias, ok := domain.ParseBiasStance(raw)
		if !ok {
			return nil, apperr.NewValidation("unknown bias: " + raw)
		}
		return filter.PerspectivePreset{UserBias: bias}, nil
	default:
		return nil, apperr.NewValidation("unknown preset: " + c.QueryParam("preset"))
	}
}

// derivedBias recomputes the user's dominant lean from the catalog
// entries they follow. No follows, or no catalog, resolves to center.
func derivedBias(user *scoring.Context, catalog []domain.Source) domain.BiasStance {
	var followed []domain.Source
	for _, s := range catalog {
		if user.Follows(s.ID) {
			followed = append(followed, s)
		}
	}
	return filter.DominantBias(followed)
}

// parseSourceIDs reads the optional comma-separated sources param.
func parseSourceIDs(c echo.Context) ([]uuid.UUID, error) {
	raw := c.QueryParam("sources")
	if raw == "" {
		return nil, nil
	}
	var ids []uuid.UUID
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			return nil, apperr.NewValidationWrap("sources must be a comma-separated list of uuids", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseCurated(c echo.Context) (bool, error) {
	raw := c.QueryParam("curated")
	if raw == "" {
		return false, nil
	}
	curated, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperr.NewValidation("curated must be a boolean")
	}
	return curated, nil
}

func parseWindow(c echo.Context) (time.Duration, error) {
	raw := c.QueryParam("window_hours")
	if raw == "" {
		return 0, nil
	}
	hours, err := strconv.Atoi(raw)
	if err != nil || hours < 1 {
		return 0, apperr.NewValidation("window_hours must be a positive integer")
	}
	return time.Duration(hours) * time.Hour, nil
}
