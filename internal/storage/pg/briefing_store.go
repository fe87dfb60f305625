package pg

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mvasiljevic/feed-curator/internal/domain"
)

type BriefingStore struct {
	db *pgxpool.Pool
}

func NewBriefingStore(pool *ConnectionPool) (*BriefingStore, error) {
	return &BriefingStore{db: pool.conn}, nil
}

// SaveBriefing writes the day's selection in one transaction. The
// briefing_items table carries a unique index on (user_id, rank, day);
// conflicting rows are skipped so a concurrent or repeated generation
// for the same day never duplicates or errors.
func (s *BriefingStore) SaveBriefing(ctx context.Context, items []domain.BriefingItem) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin briefing tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	insertSQL := `
		INSERT INTO briefing_items
			(id, user_id, content_id, rank, reason, score, consumed, generated_at, day)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, ($8 AT TIME ZONE 'UTC')::date)
		ON CONFLICT (user_id, rank, day) DO NOTHING
	`

	var inserted int64
	for _, it := range items {
		id := it.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		tag, err := tx.Exec(ctx, insertSQL,
			id,
			it.UserID,
			it.ContentID,
			it.Rank,
			it.Reason,
			it.Score,
			it.Consumed,
			it.GeneratedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert briefing item rank %d: %w", it.Rank, err)
		}
		inserted += tag.RowsAffected()
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit briefing tx: %w", err)
	}

	slog.Info("Briefing saved",
		"user_id", items[0].UserID,
		"items", len(items),
		"inserted", inserted)
	return nil
}

func (s *BriefingStore) GetBriefing(ctx context.Context, userID uuid.UUID, day time.Time) ([]domain.BriefingItem, error) {
	querySQL := `
		SELECT
			b.id, b.user_id, b.content_id, b.rank, b.reason, b.score, b.consumed, b.generated_at,
			c.id, c.guid, c.title, c.description, c.thumbnail_url, c.published_at,
			c.source_id, c.kind, c.topics, c.theme, c.duration_seconds, c.paywalled, c.quality
		FROM briefing_items b
		JOIN content_items c ON c.id = b.content_id
		WHERE b.user_id = $1 AND b.day = ($2 AT TIME ZONE 'UTC')::date
		ORDER BY b.rank ASC
	`

	rows, err := s.db.Query(ctx, querySQL, userID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query briefing: %w", err)
	}
	defer rows.Close()

	var out []domain.BriefingItem
	for rows.Next() {
		var b domain.BriefingItem
		var c domain.ContentItem

		if err := rows.Scan(
			&b.ID,
			&b.UserID,
			&b.ContentID,
			&b.Rank,
			&b.Reason,
			&b.Score,
			&b.Consumed,
			&b.GeneratedAt,
			&c.ID,
			&c.GUID,
			&c.Title,
			&c.Description,
			&c.ThumbnailURL,
			&c.PublishedAt,
			&c.SourceID,
			&c.Kind,
			&c.Topics,
			&c.Theme,
			&c.DurationSeconds,
			&c.Paywalled,
			&c.Quality,
		); err != nil {
			return nil, fmt.Errorf("failed to scan briefing item: %w", err)
		}

		b.Content = &c
		out = append(out, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return out, nil
}
