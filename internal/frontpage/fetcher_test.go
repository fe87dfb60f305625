package frontpage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mvasiljevic/feed-curator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Front Page</title>
    <item>
      <title>Markets rally after rate decision</title>
      <guid>guid-markets-1</guid>
      <link>https://example.com/markets-1</link>
    </item>
    <item>
      <title>New telescope images released</title>
      <guid>guid-telescope-2</guid>
      <link>https://example.com/telescope-2</link>
    </item>
    <item>
      <title>Item without guid</title>
      <link>https://example.com/no-guid</link>
    </item>
  </channel>
</rss>`

func TestParseGUIDs(t *testing.T) {
	guids, err := ParseGUIDs(strings.NewReader(sampleRSS))

	require.NoError(t, err)
	assert.Len(t, guids, 3)
	assert.Contains(t, guids, "guid-markets-1")
	assert.Contains(t, guids, "guid-telescope-2")
	// Fallback to link when the feed omits a guid.
	assert.Contains(t, guids, "https://example.com/no-guid")
}

func TestParseGUIDs_InvalidDocument(t *testing.T) {
	_, err := ParseGUIDs(strings.NewReader("not a feed"))

	assert.Error(t, err)
}

func TestCollectGUIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer broken.Close()

	sources := []domain.Source{
		{Name: "daily", FrontPageFeedURL: srv.URL},
		{Name: "no-feed"},
		{Name: "broken", FrontPageFeedURL: broken.URL},
	}

	f := NewFetcher(2 * time.Second)
	guids, err := f.CollectGUIDs(context.Background(), sources)

	require.NoError(t, err)
	assert.Len(t, guids, 3)
	assert.Contains(t, guids, "guid-markets-1")
}

func TestCollectGUIDs_NoEligibleSources(t *testing.T) {
	f := NewFetcher(time.Second)
	guids, err := f.CollectGUIDs(context.Background(), []domain.Source{{Name: "plain"}})

	require.NoError(t, err)
	assert.Empty(t, guids)
}
