// Package frontpage resolves which items editors put on their sources'
// front pages. Each curated source may expose a front-page feed; the
// fetcher collects the item GUIDs across those feeds so the selector can
// mark matching candidates as front-page picks.
package frontpage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/mvasiljevic/feed-curator/internal/domain"
	"golang.org/x/sync/errgroup"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "feed-curator/1.0"
	maxConcurrent    = 4
)

type Fetcher struct {
	client    *http.Client
	userAgent string
}

func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
	}
}

// CollectGUIDs fetches the front-page feeds of the given sources and
// returns the union of item GUIDs. A source without a front-page feed is
// skipped; a feed that fails to fetch or parse is logged and skipped so
// one broken publisher never sinks the briefing run.
func (f *Fetcher) CollectGUIDs(ctx context.Context, sources []domain.Source) (map[string]struct{}, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	guids := make(map[string]struct{})
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for _, src := range sources {
		if strings.TrimSpace(src.FrontPageFeedURL) == "" {
			continue
		}
		src := src
		g.Go(func() error {
			found, err := f.fetchOne(gctx, src.FrontPageFeedURL)
			if err != nil {
				slog.Warn("Front-page feed skipped",
					"source", src.Name,
					"url", src.FrontPageFeedURL,
					"error", err)
				return nil
			}
			mu.Lock()
			for guid := range found {
				guids[guid] = struct{}{}
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return guids, nil
}

func (f *Fetcher) fetchOne(ctx context.Context, url string) (map[string]struct{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	return ParseGUIDs(resp.Body)
}

// ParseGUIDs reads one feed document and returns the GUIDs of its items.
// Items without an explicit GUID fall back to their link.
func ParseGUIDs(r io.Reader) (map[string]struct{}, error) {
	parser := gofeed.NewParser()
	feed, err := parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	guids := make(map[string]struct{}, len(feed.Items))
	for _, item := range feed.Items {
		guid := item.GUID
		if guid == "" {
			guid = item.Link
		}
		if guid != "" {
			guids[guid] = struct{}{}
		}
	}
	return guids, nil
}
