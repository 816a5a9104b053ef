package providers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/qcomwatch/harvester/internal/domain"
	"github.com/qcomwatch/harvester/internal/textutil"
	"github.com/qcomwatch/harvester/pkg/httpclient"
)

// responseSnippet returns a truncated snippet of the response body for error
// messages.
func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}

// fetchFeed retrieves and parses an RSS/Atom document from the given URL.
// The body is fetched through the shared client so per-source headers and
// timeouts apply, then handed to gofeed for parsing.
func fetchFeed(ctx context.Context, client httpclient.Client, url, sourceName string, headers map[string]string) (*gofeed.Feed, error) {
	resp, err := client.Get(ctx, url, headers)
	if err != nil {
		return nil, fmt.Errorf("fetch %s feed: %w", sourceName, err)
	}

	body := resp.Body()
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%s feed returned status %d body: %s", sourceName, resp.StatusCode(), responseSnippet(body))
	}

	feed, err := gofeed.NewParser().ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s feed: %w", sourceName, err)
	}
	return feed, nil
}

// buildArticlesFromFeed maps feed items to candidate records, examining at
// most cap items. The raw published-date string is preserved untouched; the
// window check owns its interpretation.
func buildArticlesFromFeed(feed *gofeed.Feed, sourceName string, cap int) []domain.Article {
	count := len(feed.Items)
	if cap > 0 && count > cap {
		count = cap
	}

	articles := make([]domain.Article, 0, count)
	for _, item := range feed.Items[:count] {
		link := strings.TrimSpace(item.Link)
		if link == "" {
			continue
		}

		title := textutil.Normalize(item.Title)
		if title == "" {
			title = domain.NoTitle
		}

		articles = append(articles, domain.Article{
			Title:         title,
			URL:           link,
			Source:        sourceName,
			PublishedDate: strings.TrimSpace(item.Published),
			Description:   textutil.Normalize(item.Description),
		})
	}
	return articles
}
