package crawler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/qcomwatch/harvester/internal/domain"
	"github.com/qcomwatch/harvester/internal/extract"
	"github.com/qcomwatch/harvester/internal/logger"
	"github.com/qcomwatch/harvester/pkg/httpclient"
	"github.com/qcomwatch/harvester/pkg/providers"
)

const (
	maxHTMLBodyBytes  = 1 << 20 // 1 MiB
	maxArticleWorkers = 5
)

// Scraper fetches article pages and fills in their extracted body text.
type Scraper struct {
	client    httpclient.Client
	extractor *extract.Extractor
	log       logger.Logger
}

// NewScraper creates a Scraper with the given HTTP client, extractor and
// logger.
func NewScraper(client httpclient.Client, extractor *extract.Extractor, log logger.Logger) *Scraper {
	if client == nil {
		client = providers.DefaultHTTPClient()
	}
	if extractor == nil {
		extractor = extract.New()
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Scraper{client: client, extractor: extractor, log: log}
}

// Enrich fetches each article's page and attaches the extracted content.
// A fetch or parse failure never aborts the batch: the failing record keeps
// sentinel content with the error embedded so it stays visible downstream.
// Requests for one source are spaced by the source's configured delay.
func (s *Scraper) Enrich(ctx context.Context, cfg providers.Provider, articles []domain.Article) []domain.Article {
	out := make([]domain.Article, len(articles))
	copy(out, articles) // partial results are returned on cancel

	if len(articles) == 0 {
		return out
	}

	workerCount := min(len(articles), maxArticleWorkers)

	var limiter <-chan time.Time
	if delay := cfg.RequestDelay(); delay > 0 {
		ticker := time.NewTicker(delay)
		limiter = ticker.C
		defer ticker.Stop()
	}

	jobCh := make(chan int)
	var wg sync.WaitGroup

	for workerID := range workerCount {
		wg.Add(1)
		go s.articleWorker(ctx, cfg, limiter, jobCh, out, &wg, workerID)
	}

	// The send must race against cancellation: once the workers have all
	// observed ctx.Done and returned, a bare send would block forever.
send:
	for idx := range articles {
		select {
		case jobCh <- idx:
		case <-ctx.Done():
			break send
		}
	}
	close(jobCh)

	wg.Wait()

	return out
}

// articleWorker processes indexes from the job channel, respecting the
// shared rate limiter.
func (s *Scraper) articleWorker(
	ctx context.Context,
	cfg providers.Provider,
	limiter <-chan time.Time,
	jobCh <-chan int,
	out []domain.Article,
	wg *sync.WaitGroup,
	workerID int,
) {
	defer wg.Done()

	for idx := range jobCh {
		if ctx.Err() != nil {
			return
		}

		if limiter != nil {
			select {
			case <-ctx.Done():
				return
			case <-limiter:
			}
		}

		out[idx] = s.fetchAndExtract(ctx, cfg, out[idx], workerID)
	}
}

// fetchAndExtract fetches the article HTML and runs the extractor. The
// record always comes back with a non-empty Content field.
func (s *Scraper) fetchAndExtract(ctx context.Context, cfg providers.Provider, art domain.Article, workerID int) domain.Article {
	s.log.DebugObj("extracting article content", "extract_start", map[string]any{
		"worker_id": workerID,
		"source":    cfg.Name,
		"url":       art.URL,
	})

	html, err := s.fetchPage(ctx, cfg, art.URL, workerID)
	if err != nil {
		s.log.WarnObj("article content fetch failed", "extract_error", map[string]any{
			"worker_id": workerID,
			"source":    cfg.Name,
			"url":       art.URL,
			"error":     err.Error(),
		})
		art.Content = fmt.Sprintf("Error extracting content: %v", err)
		return art
	}

	res := s.extractor.Extract(html)
	art.Content = res.Body
	if art.Title == "" || art.Title == domain.NoTitle {
		art.Title = res.Title
	}
	return art
}

// fetchPage retrieves the article HTML, truncating oversized bodies.
func (s *Scraper) fetchPage(ctx context.Context, cfg providers.Provider, url string, workerID int) (string, error) {
	resp, err := s.client.Get(ctx, url, providers.Headers(cfg))
	if err != nil {
		return "", fmt.Errorf("http fetch: %w", err)
	}

	if resp.StatusCode() != 200 {
		snippet := strings.TrimSpace(string(resp.Body()))
		if len(snippet) > 1024 {
			snippet = snippet[:1024]
		}
		return "", fmt.Errorf("status %d body: %s", resp.StatusCode(), snippet)
	}

	body := resp.Body()
	if len(body) > maxHTMLBodyBytes {
		s.log.InfoObj("html body truncated", "truncation", map[string]any{
			"worker_id": workerID,
			"source":    cfg.Name,
			"url":       url,
			"original":  len(body),
			"kept":      maxHTMLBodyBytes,
		})
		body = body[:maxHTMLBodyBytes]
	}

	return string(body), nil
}
