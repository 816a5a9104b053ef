package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/qcomwatch/harvester/internal/domain"
)

// rssFetcher fetches candidate articles from a source's RSS feed.
type rssFetcher struct {
	client HTTPClient
}

// NewRSSFetcher builds a Fetcher for plain RSS feed sources.
func NewRSSFetcher(client HTTPClient) Fetcher {
	if client == nil {
		client = DefaultHTTPClient()
	}
	return &rssFetcher{client: client}
}

func (f *rssFetcher) ID() string {
	return TypeRSS
}

// Fetch retrieves up to the source's item cap of candidates from its feed.
func (f *rssFetcher) Fetch(ctx context.Context, cfg Provider) ([]domain.Article, error) {
	if !strings.EqualFold(cfg.Type, TypeRSS) {
		return nil, fmt.Errorf("rss fetcher received incompatible source type %q", cfg.Type)
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
