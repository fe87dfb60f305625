package pg

import (
	"context"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mvasiljevic/feed-curator/internal/domain"
	"github.com/mvasiljevic/feed-curator/internal/storage"
)

type CandidateReader struct {
	db *pgxpool.Pool
}

func NewCandidateReader(pool *ConnectionPool) (*CandidateReader, error) {
	return &CandidateReader{db: pool.conn}, nil
}

// ListCandidates reads ranking candidates with their source joined,
// newest first. Window, mode and source narrowing are pushed into the
// query so the scoring pipeline never sees out-of-scope rows.
func (r *CandidateReader) ListCandidates(ctx context.Context, q storage.CandidateQuery) ([]domain.ContentItem, error) {
	slog.Info("Listing pg candidates",
		"user_id", q.UserID,
		"since", q.Since,
		"limit", q.Limit,
		"curated_only", q.CuratedOnly,
		"focus_theme", q.FocusTheme)

	builder := sq.Select(
		"c.id", "c.guid", "c.title", "c.description", "c.thumbnail_url",
		"c.published_at", "c.source_id", "c.kind", "c.topics", "c.theme",
		"c.duration_seconds", "c.paywalled", "c.quality",
		"s.id", "s.name", "s.theme", "s.secondary_themes", "s.bias",
		"s.reliability", "s.curated", "s.front_page_feed_url",
	).
		From("content_items c").
		Join("sources s ON s.id = c.source_id").
		PlaceholderFormat(sq.Dollar).
		OrderBy("c.published_at DESC", "c.id DESC")

	if !q.Since.IsZero() {
		builder = builder.Where(sq.GtOrEq{"c.published_at": q.Since})
	}
	if q.CuratedOnly {
		builder = builder.Where(sq.Eq{"s.curated": true})
	}
	if len(q.SourceIDs) > 0 {
		builder = builder.Where(sq.Eq{"c.source_id": q.SourceIDs})
	}
	if q.FocusTheme != "" {
		builder = builder.Where(sq.Or{
			sq.Eq{"c.theme": q.FocusTheme},
			sq.Eq{"s.theme": q.FocusTheme},
			sq.Expr("? = ANY(s.secondary_themes)", q.FocusTheme),
		})
	}
	if len(q.ExcludeThemes) > 0 {
		builder = builder.Where(sq.NotEq{"COALESCE(NULLIF(c.theme, ''), s.theme)": q.ExcludeThemes})
	}
	if q.Limit > 0 {
		builder = builder.Limit(uint64(q.Limit))
	}

	querySQL, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build candidates query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySQL, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute candidates query: %w", err)
	}
	defer rows.Close()

	var items []domain.ContentItem
	for rows.Next() {
		var it domain.ContentItem
		var src domain.Source

		if err := rows.Scan(
			&it.ID,
			&it.GUID,
			&it.Title,
			&it.Description,
			&it.ThumbnailURL,
			&it.PublishedAt,
			&it.SourceID,
			&it.Kind,
			&it.Topics,
			&it.Theme,
			&it.DurationSeconds,
			&it.Paywalled,
			&it.Quality,
			&src.ID,
			&src.Name,
			&src.Theme,
			&src.SecondaryThemes,
			&src.Bias,
			&src.Reliability,
			&src.Curated,
			&src.FrontPageFeedURL,
		); err != nil {
			return nil, fmt.Errorf("failed to scan content item: %w", err)
		}

		it.Source = &src
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return items, nil
}
