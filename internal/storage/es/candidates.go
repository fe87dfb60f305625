package es

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/mvasiljevic/feed-curator/internal/domain"
	"github.com/mvasiljevic/feed-curator/internal/storage"
)

const defaultPoolSize = 500

type CandidateReader struct {
	client    *elasticsearch.TypedClient
	indexName string
}

func NewCandidateReader(config ClientConfig) (*CandidateReader, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	return &CandidateReader{
		client:    client,
		indexName: config.IndexName,
	}, nil
}

// ListCandidates implements storage.CandidateReader with a bool filter
// query: window, mode and source narrowing run index-side, newest first.
func (r *CandidateReader) ListCandidates(ctx context.Context, q storage.CandidateQuery) ([]domain.ContentItem, error) {
	slog.Info("Listing es candidates",
		"user_id", q.UserID,
		"since", q.Since,
		"limit", q.Limit,
		"curated_only", q.CuratedOnly,
		"focus_theme", q.FocusTheme)

	boolQuery := r.buildQuery(q)

	size := q.Limit
	if size <= 0 {
		size = defaultPoolSize
	}

	sortOrderDesc := sortorder.Desc
	res, err := r.client.Search().
		Index(r.indexName).
		Query(&types.Query{Bool: boolQuery}).
		Size(size).
		Sort(
			&types.SortOptions{
				SortOptions: map[string]types.FieldSort{
					"published_at": {Order: &sortOrderDesc},
				},
			},
			&types.SortOptions{
				SortOptions: map[string]types.FieldSort{
					"id": {Order: &sortOrderDesc},
				},
			},
		).
		Do(ctx)
	if err != nil {
		slog.Error("Elasticsearch candidates query failed", "error", err, "user_id", q.UserID)
		return nil, fmt.Errorf("failed to execute candidates search: %w", err)
	}

	items := make([]domain.ContentItem, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var doc ContentDocument
		if err := json.Unmarshal(hit.Source_, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal content document: %w", err)
		}
		item, err := doc.toDomain()
		if err != nil {
			return nil, fmt.Errorf("failed to map content document: %w", err)
		}
		items = append(items, item)
	}

	slog.Info("Es candidates fetched",
		"total_matches", res.Hits.Total.Value,
		"returned_count", len(items))
	return items, nil
}

func (r *CandidateReader) buildQuery(q storage.CandidateQuery) *types.BoolQuery {
	var filters []types.Query

	if !q.Since.IsZero() {
		since := q.Since.Format("2006-01-02T15:04:05Z07:00")
		filters = append(filters, types.Query{
			Range: map[string]types.RangeQuery{
				"published_at": types.DateRangeQuery{Gte: &since},
			},
		})
	}
	if q.CuratedOnly {
		filters = append(filters, types.Query{
			Term: map[string]types.TermQuery{
				"curated": {Value: true},
			},
		})
	}
	if len(q.SourceIDs) > 0 {
		should := make([]types.Query, 0, len(q.SourceIDs))
		for _, id := range q.SourceIDs {
			should = append(should, types.Query{
				Term: map[string]types.TermQuery{"source_id": {Value: id.String()}},
			})
		}
		filters = append(filters, types.Query{
			Bool: &types.BoolQuery{Should: should, MinimumShouldMatch: 1},
		})
	}
	if q.FocusTheme != "" {
		filters = append(filters, types.Query{
			Bool: &types.BoolQuery{
				Should: []types.Query{
					{Term: map[string]types.TermQuery{"theme": {Value: q.FocusTheme}}},
					{Term: map[string]types.TermQuery{"source_theme": {Value: q.FocusTheme}}},
					{Term: map[string]types.TermQuery{"secondary_themes": {Value: q.FocusTheme}}},
				},
				MinimumShouldMatch: 1,
			},
		})
	}

	boolQuery := &types.BoolQuery{Filter: filters}

	// Calm-mode exclusion works on the effective theme: the item theme
	// when set, otherwise the source theme.
	for _, theme := range q.ExcludeThemes {
		boolQuery.MustNot = append(boolQuery.MustNot,
			types.Query{Term: map[string]types.TermQuery{"theme": {Value: theme}}},
			types.Query{Bool: &types.BoolQuery{
				MustNot: []types.Query{{Exists: &types.ExistsQuery{Field: "theme"}}},
				Filter: []types.Query{
					{Term: map[string]types.TermQuery{"source_theme": {Value: theme}}},
				},
			}},
		)
	}

	return boolQuery
}
