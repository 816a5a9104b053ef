package providers

import (
	"context"
	"time"

	"github.com/qcomwatch/harvester/internal/domain"
	"github.com/qcomwatch/harvester/internal/timeframe"
	"github.com/qcomwatch/harvester/pkg/httpclient"
)

const (
	// Supported source types.
	TypeRSS        = "rss"
	TypeGoogleNews = "google-news"

	// Per-source candidate caps. Feeds are examined up to the cap to bound
	// worst-case latency; the aggregator feed gets a higher cap because its
	// items are pre-filtered by the search query.
	defaultRSSItemCap        = 15
	defaultGoogleNewsItemCap = 30

	// defaultRequestDelay spaces consecutive article fetches for one source.
	defaultRequestDelay = time.Second

	// defaultUserAgent is sent on every request unless a source overrides it.
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// HTTPClient is the transport used by fetchers.
type HTTPClient = httpclient.Client

// Provider is the immutable configuration for one news source. It is loaded
// once at startup and never mutated at runtime.
type Provider struct {
	Name         string            `yaml:"name" json:"name"`
	Type         string            `yaml:"type" json:"type"`
	RSSURL       string            `yaml:"rss_url" json:"rss_url"`
	SearchURL    string            `yaml:"search_url" json:"search_url"`
	BaseURL      string            `yaml:"base_url" json:"base_url"`
	Headers      map[string]string `yaml:"headers" json:"headers"`
	MaxItems     int               `yaml:"max_items" json:"max_items"`
	DelaySeconds float64           `yaml:"delay_seconds" json:"delay_seconds"`
}

// ItemCap returns the number of feed items examined for this source.
func (p Provider) ItemCap() int {
	if p.MaxItems > 0 {
		return p.MaxItems
	}
	if p.Type == TypeGoogleNews {
		return defaultGoogleNewsItemCap
	}
	return defaultRSSItemCap
}

// RequestDelay returns the minimum spacing between consecutive article
// fetches for this source.
func (p Provider) RequestDelay() time.Duration {
	if p.DelaySeconds > 0 {
		return time.Duration(p.DelaySeconds * float64(time.Second))
	}
	return defaultRequestDelay
}

// Headers merges the default request headers with source overrides.
func Headers(cfg Provider) map[string]string {
	headers := map[string]string{
		"User-Agent": defaultUserAgent,
	}
	for k, v := range cfg.Headers {
		headers[k] = v
	}
	return headers
}

// Fetcher retrieves candidate articles for one source type.
type Fetcher interface {
	ID() string
	Fetch(ctx context.Context, cfg Provider) ([]domain.Article, error)
}

// FetcherRegistry selects the fetcher for a source configuration.
type FetcherRegistry interface {
	FetcherFor(cfg Provider) (Fetcher, error)
}

// DefaultHTTPClient returns a tuned HTTP client for provider fetchers.
func DefaultHTTPClient() HTTPClient { return httpclient.NewRestyClient(15 * time.Second) }

// Searcher queries a keyed article-search API bounded by the run's window.
type Searcher interface {
	Search(ctx context.Context, query string, win timeframe.Window) ([]domain.Article, error)
}
