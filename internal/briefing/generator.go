package briefing

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/mvasiljevic/feed-curator/internal/domain"
	"github.com/mvasiljevic/feed-curator/internal/filter"
	"github.com/mvasiljevic/feed-curator/internal/importance"
	"github.com/mvasiljevic/feed-curator/internal/scoring"
	"github.com/mvasiljevic/feed-curator/internal/storage"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultWindow bounds the candidate pool for a daily run.
	DefaultWindow = 36 * time.Hour
	// defaultPoolLimit keeps pathological backfills from flooding a run.
	defaultPoolLimit = 500
)

// FrontPageCollector yields the GUIDs currently on the curated sources'
// front pages. Implemented by frontpage.Fetcher.
type FrontPageCollector interface {
	CollectGUIDs(ctx context.Context, sources []domain.Source) (map[string]struct{}, error)
}

// Request describes one generation run.
type Request struct {
	User *scoring.Context
	// Preset optionally narrows the pool before scoring (calm, theme focus,
	// perspective). Nil means no narrowing.
	Preset filter.Preset
	// Sources are the curated sources whose front pages flag importance.
	Sources []domain.Source
	// SourceIDs restricts the candidate read to specific sources.
	SourceIDs []uuid.UUID
	// CuratedOnly restricts the candidate read to hand-picked sources.
	CuratedOnly bool
	// Window bounds candidate recency; zero falls back to DefaultWindow.
	Window time.Duration
	// Size is the slot count: domain.BriefingSize for the briefing,
	// domain.DigestSize for the digest. Zero means briefing.
	Size int
}

// Generator runs the full pipeline: read candidates, narrow, score in
// parallel, rerank for diversity, mark importance, select and persist.
type Generator struct {
	candidates storage.CandidateReader
	briefings  storage.BriefingStore
	engine     *scoring.Engine
	detector   *importance.Detector
	frontPages FrontPageCollector
	weights    scoring.Weights
	now        func() time.Time
}

func NewGenerator(
	candidates storage.CandidateReader,
	briefings storage.BriefingStore,
	w scoring.Weights,
	frontPages FrontPageCollector,
) (*Generator, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	detector, err := importance.NewDetectorFromWeights(w)
	if err != nil {
		return nil, err
	}
	return &Generator{
		candidates: candidates,
		briefings:  briefings,
		engine:     scoring.NewDefaultEngine(w),
		detector:   detector,
		frontPages: frontPages,
		weights:    w,
		now:        time.Now,
	}, nil
}

// candidateQuery maps the run onto one candidate read. Theme
// restrictions travel with the query so pg and es narrow at the store,
// not after a blind fetch; calm keywords cannot push down and stay in
// the preset's Apply.
func (g *Generator) candidateQuery(req Request, since time.Time) storage.CandidateQuery {
	q := storage.CandidateQuery{
		UserID:      req.User.UserID,
		Since:       since,
		Limit:       defaultPoolLimit,
		SourceIDs:   req.SourceIDs,
		CuratedOnly: req.CuratedOnly,
	}
	switch p := req.Preset.(type) {
	case filter.CalmPreset:
		q.ExcludeThemes = p.ExcludedThemes()
	case filter.ThemeFocusPreset:
		q.FocusTheme = p.Theme
	}
	return q
}

// compose runs the read/narrow/score/rerank/select pipeline and returns
// the would-be slots for the run, unpersisted.
func (g *Generator) compose(ctx context.Context, req Request, size int, now time.Time) ([]domain.BriefingItem, error) {
	window := req.Window
	if window <= 0 {
		window = DefaultWindow
	}

	pool, err := g.candidates.ListCandidates(ctx, g.candidateQuery(req, now.Add(-window)))
	if err != nil {
		return nil, fmt.Errorf("failed to read candidates: %w", err)
	}

	// Perspective does not narrow a briefing or digest pool; it reserves
	// a counter-perspective slot after selection instead.
	perspective, guaranteeOpposing := req.Preset.(filter.PerspectivePreset)
	if req.Preset != nil && !guaranteeOpposing {
		before := len(pool)
		pool = req.Preset.Apply(pool)
		slog.Info("Preset applied", "preset", req.Preset.Name(), "before", before, "after", len(pool))
	}

	if len(pool) == 0 {
		slog.Info("Empty candidate pool, selection skipped", "user_id", req.User.UserID)
		return nil, nil
	}

	scored, err := g.scorePool(ctx, pool, req.User)
	if err != nil {
		return nil, err
	}
	ranked := scoring.RerankForDiversity(scored, g.weights.DiversityDecay)

	signals, err := g.collectSignals(ctx, pool, req.Sources)
	if err != nil {
		return nil, err
	}

	var picks []Pick
	if size > domain.BriefingSize {
		picks = SelectDigest(ranked, signals, req.User, g.weights, size)
	} else {
		picks = SelectTop3(ranked, signals, req.User, g.weights)
	}
	if guaranteeOpposing {
		picks = ensureOpposing(picks, ranked, perspective)
	}

	items := make([]domain.BriefingItem, 0, len(picks))
	for i, p := range picks {
		content := p.Item
		items = append(items, domain.BriefingItem{
			ID:          uuid.New(),
			UserID:      req.User.UserID,
			ContentID:   p.Item.ID,
			Content:     &content,
			Rank:        i + 1,
			Reason:      p.Reason,
			Score:       p.Score,
			GeneratedAt: now,
		})
	}
	return items, nil
}

// Generate runs the pipeline and persists the selection for the run's
// calendar day. Re-running for a day that is already persisted inserts
// nothing; the persisted rows for the day are returned either way. An
// empty candidate pool yields an empty briefing without error.
func (g *Generator) Generate(ctx context.Context, req Request) ([]domain.BriefingItem, error) {
	if req.User == nil {
		return nil, fmt.Errorf("generation requires a user context")
	}

	size := req.Size
	if size <= 0 {
		size = domain.BriefingSize
	}
	now := g.now()

	items, err := g.compose(ctx, req, size, now)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	if err := g.briefings.SaveBriefing(ctx, items); err != nil {
		return nil, fmt.Errorf("failed to persist briefing: %w", err)
	}

	// Read back so concurrent generators all observe the winning set.
	persisted, err := g.briefings.GetBriefing(ctx, req.User.UserID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to read back briefing: %w", err)
	}

	slog.Info("Briefing generated",
		"user_id", req.User.UserID,
		"slots", len(persisted))
	return persisted, nil
}

// Compose runs the pipeline without persistence, for surfaces like the
// on-demand digest that should not pin the day's selection.
func (g *Generator) Compose(ctx context.Context, req Request) ([]domain.BriefingItem, error) {
	if req.User == nil {
		return nil, fmt.Errorf("generation requires a user context")
	}

	size := req.Size
	if size <= 0 {
		size = domain.BriefingSize
	}
	return g.compose(ctx, req, size, g.now())
}

// GetOrGenerate returns the day's persisted briefing, generating it first
// when no rows exist yet.
func (g *Generator) GetOrGenerate(ctx context.Context, req Request) ([]domain.BriefingItem, error) {
	if req.User == nil {
		return nil, fmt.Errorf("generation requires a user context")
	}

	existing, err := g.briefings.GetBriefing(ctx, req.User.UserID, g.now())
	if err != nil {
		return nil, fmt.Errorf("failed to read briefing: %w", err)
	}
	if len(existing) > 0 {
		return existing, nil
	}
	return g.Generate(ctx, req)
}

// ScoreFeed scores and reranks the pool for the feed surface without
// touching persistence.
func (g *Generator) ScoreFeed(ctx context.Context, req Request) ([]scoring.ScoredItem, error) {
	if req.User == nil {
		return nil, fmt.Errorf("scoring requires a user context")
	}

	window := req.Window
	if window <= 0 {
		window = DefaultWindow
	}

	pool, err := g.candidates.ListCandidates(ctx, g.candidateQuery(req, g.now().Add(-window)))
	if err != nil {
		return nil, fmt.Errorf("failed to read candidates: %w", err)
	}
	// The feed surface narrows on every preset, perspective included.
	if req.Preset != nil {
		pool = req.Preset.Apply(pool)
	}
	if len(pool) == 0 {
		return nil, nil
	}

	scored, err := g.scorePool(ctx, pool, req.User)
	if err != nil {
		return nil, err
	}
	return scoring.RerankForDiversity(scored, g.weights.DiversityDecay), nil
}

// scorePool scores every candidate concurrently. Items are independent
// given an immutable user context, so the pool splits across workers.
func (g *Generator) scorePool(ctx context.Context, pool []domain.ContentItem, user *scoring.Context) ([]scoring.ScoredItem, error) {
	scored := make([]scoring.ScoredItem, len(pool))

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))

	for i := range pool {
		i := i
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}
			scored[i] = scoring.ScoredItem{
				Item:  pool[i],
				Score: g.engine.ComputeScore(&pool[i], user),
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return scored, nil
}

func (g *Generator) collectSignals(ctx context.Context, pool []domain.ContentItem, sources []domain.Source) (ImportanceSignals, error) {
	signals := ImportanceSignals{
		Trending: g.detector.TrendingIDs(pool),
	}

	if g.frontPages != nil && len(sources) > 0 {
		guids, err := g.frontPages.CollectGUIDs(ctx, sources)
		if err != nil {
			return ImportanceSignals{}, fmt.Errorf("failed to collect front pages: %w", err)
		}
		signals.FrontPage = importance.FrontPageIDs(pool, guids)
	}
	return signals, nil
}
