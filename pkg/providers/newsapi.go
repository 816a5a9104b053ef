package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/qcomwatch/harvester/internal/domain"
	"github.com/qcomwatch/harvester/internal/textutil"
	"github.com/qcomwatch/harvester/internal/timeframe"
)

const (
	newsAPIEndpoint = "https://newsapi.org/v2/everything"
	newsAPIPageSize = 50

	// NewsAPISourceName is the fallback attribution when the API omits the
	// originating outlet's name.
	NewsAPISourceName = "Unknown"
)

// newsAPIResponse mirrors the subset of the NewsAPI everything payload the
// harvester reads.
type newsAPIResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

// NewsAPIClient queries the NewsAPI everything endpoint, bounded by the
// run's date window expressed as the provider's from/to parameters.
type NewsAPIClient struct {
	apiKey string
	client HTTPClient
}

// NewNewsAPIClient builds a client for the keyed search API.
func NewNewsAPIClient(apiKey string, client HTTPClient) *NewsAPIClient {
	if client == nil {
		client = DefaultHTTPClient()
	}
	return &NewsAPIClient{apiKey: apiKey, client: client}
}

// Search runs one query against the API within the window's date range.
func (c *NewsAPIClient) Search(ctx context.Context, query string, win timeframe.Window) ([]domain.Article, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return nil, fmt.Errorf("newsapi key is empty")
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("from", win.Start.Format("2006-01-02"))
	params.Set("to", win.End.Format("2006-01-02"))
	params.Set("sortBy", "publishedAt")
	params.Set("language", "en")
	params.Set("apiKey", c.apiKey)
	params.Set("pageSize", fmt.Sprintf("%d", newsAPIPageSize))

	resp, err := c.client.Get(ctx, newsAPIEndpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("newsapi query %q: %w", query, err)
	}

	body := resp.Body()
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("newsapi returned status %d body: %s", resp.StatusCode(), responseSnippet(body))
	}

	var payload newsAPIResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode newsapi response: %w", err)
	}
	if payload.Status != "ok" {
		return nil, fmt.Errorf("newsapi error status %q: %s", payload.Status, payload.Message)
	}

	articles := make([]domain.Article, 0, len(payload.Articles))
	for _, item := range payload.Articles {
		link := strings.TrimSpace(item.URL)
		if link == "" {
			continue
		}

		sourceName := strings.TrimSpace(item.Source.Name)
		if sourceName == "" {
			sourceName = NewsAPISourceName
		}

		title := textutil.Normalize(item.Title)
		if title == "" {
			title = domain.NoTitle
		}

		articles = append(articles, domain.Article{
			Title:         title,
			URL:           link,
			Source:        sourceName,
			PublishedDate: strings.TrimSpace(item.PublishedAt),
			Description:   textutil.Normalize(item.Description),
		})
	}
	return articles, nil
}
