package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mvasiljevic/feed-curator/internal/briefing"
	"github.com/mvasiljevic/feed-curator/internal/domain"
	"github.com/mvasiljevic/feed-curator/internal/dto"
)

type BriefingRouter struct {
	e        *echo.Echo
	gen      *briefing.Generator
	resolver ContextResolver
	// sources are the curated sources whose front pages feed the
	// importance signal.
	sources []domain.Source
}

func NewBriefingRouter(e *echo.Echo, gen *briefing.Generator, resolver ContextResolver, sources []domain.Source) *BriefingRouter {
	if resolver == nil {
		resolver = NewEmptyContextResolver()
	}
	return &BriefingRouter{
		e:        e,
		gen:      gen,
		resolver: resolver,
		sources:  sources,
	}
}

func (r *BriefingRouter) Bind() {
	r.e.GET("/briefing", r.briefingHandler)
	r.e.GET("/digest", r.digestHandler)
}

// briefingHandler serves the day's Top 3, generating it lazily on the
// first request of the day.
func (r *BriefingRouter) briefingHandler(c echo.Context) error {
	userID, err := parseUserID(c)
	if err != nil {
		return err
	}

	user, err := r.resolver.Resolve(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	rows, err := r.gen.GetOrGenerate(c.Request().Context(), briefing.Request{
		User:    user,
		Sources: r.sources,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewBriefingResponse(userID, user.Now, rows))
}

// digestHandler serves the five-item digest. Unlike the briefing it is
// composed per request and never persisted, so the day's Top 3 stays the
// single pinned selection.
func (r *BriefingRouter) digestHandler(c echo.Context) error {
	userID, err := parseUserID(c)
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

	rows, err := r.gen.Compose(c.Request().Context(), briefing.Request{
		User:    user,
		Preset:  preset,
		Sources: r.sources,
		Size:    domain.DigestSize,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewBriefingResponse(userID, user.Now, rows))
}
