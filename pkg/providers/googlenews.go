package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/qcomwatch/harvester/internal/domain"
)

// googleNewsFetcher fetches the Google News search RSS feed. The search
// query already encodes the keyword vocabulary, so candidates from this
// source skip the title keyword filter downstream.
type googleNewsFetcher struct {
	client HTTPClient
}

// NewGoogleNewsFetcher builds a Fetcher for the aggregator search feed.
func NewGoogleNewsFetcher(client HTTPClient) Fetcher {
	if client == nil {
		client = DefaultHTTPClient()
	}
	return &googleNewsFetcher{client: client}
}

func (f *googleNewsFetcher) ID() string {
	return TypeGoogleNews
}

// Fetch retrieves up to the source's item cap of candidates from the search
// feed.
func (f *googleNewsFetcher) Fetch(ctx context.Context, cfg Provider) ([]domain.Article, error) {
	if !strings.EqualFold(cfg.Type, TypeGoogleNews) {
		return nil, fmt.Errorf("google news fetcher received incompatible source type %q", cfg.Type)
	}
	if strings.TrimSpace(cfg.RSSURL) == "" {
		return nil, fmt.Errorf("source %q rss_url is empty", cfg.Name)
	}

	feed, err := fetchFeed(ctx, f.client, cfg.RSSURL, cfg.Name, Headers(cfg))
	if err != nil {
		return nil, err
	}

	return buildArticlesFromFeed(feed, cfg.Name, cfg.ItemCap()), nil
}
