package crawler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/qcomwatch/harvester/internal/domain"
	"github.com/qcomwatch/harvester/internal/extract"
	"github.com/qcomwatch/harvester/pkg/httpclient"
	"github.com/qcomwatch/harvester/pkg/providers"
)

type stubResponse struct {
	status int
	body   []byte
}

func (r stubResponse) StatusCode() int { return r.status }
func (r stubResponse) Body() []byte    { return r.body }

type stubClient struct {
	pages map[string]stubResponse
	errs  map[string]error
}

func (c *stubClient) Get(_ context.Context, url string, _ map[string]string) (httpclient.Response, error) {
	if err, ok := c.errs[url]; ok {
		return nil, err
	}
	if resp, ok := c.pages[url]; ok {
		return resp, nil
	}
	return stubResponse{status: 404, body: []byte("not found")}, nil
}

const articleParagraph = "Quick commerce operators doubled their dark store count in tier-two cities over the past year."

func articleHTML(title string) string {
	return fmt.Sprintf(`<html><body><h1>%s</h1><article><p>%s</p></article></body></html>`,
		title, articleParagraph)
}

func fastCfg(name string) providers.Provider {
	return providers.Provider{Name: name, Type: providers.TypeRSS, DelaySeconds: 0.001}
}

func TestEnrichFillsContent(t *testing.T) {
	client := &stubClient{pages: map[string]stubResponse{
		"https://example.com/a": {status: 200, body: []byte(articleHTML("Page Title A"))},
		"https://example.com/b": {status: 200, body: []byte(articleHTML("Page Title B"))},
	}}
	s := NewScraper(client, extract.New(), nil)

	in := []domain.Article{
		{Title: "Feed Title A", URL: "https://example.com/a"},
		{Title: "", URL: "https://example.com/b"},
	}

	out := s.Enrich(context.Background(), fastCfg("Example"), in)
	if len(out) != 2 {
		t.Fatalf("got %d articles, want 2", len(out))
	}

	if out[0].Content != articleParagraph {
		t.Errorf("Content = %q", out[0].Content)
	}
	// A feed title is kept over the page title.
	if out[0].Title != "Feed Title A" {
		t.Errorf("Title = %q, want the feed title preserved", out[0].Title)
	}
	// A missing feed title is filled from the page.
	if out[1].Title != "Page Title B" {
		t.Errorf("Title = %q, want the extracted page title", out[1].Title)
	}
}

func TestEnrichIsolatesFailures(t *testing.T) {
	client := &stubClient{
		pages: map[string]stubResponse{
			"https://example.com/good": {status: 200, body: []byte(articleHTML("Good"))},
		},
		errs: map[string]error{
			"https://example.com/down": errors.New("connection refused"),
		},
	}
	s := NewScraper(client, extract.New(), nil)

	in := []domain.Article{
		{Title: "Down", URL: "https://example.com/down"},
		{Title: "Good", URL: "https://example.com/good"},
		{Title: "Missing", URL: "https://example.com/missing"},
	}

	out := s.Enrich(context.Background(), fastCfg("Example"), in)
	if len(out) != 3 {
		t.Fatalf("got %d articles, want 3", len(out))
	}

	if !strings.HasPrefix(out[0].Content, "Error extracting content:") {
		t.Errorf("failed fetch Content = %q, want the error sentinel", out[0].Content)
	}
	if out[1].Content != articleParagraph {
		t.Errorf("good fetch Content = %q", out[1].Content)
	}
	if !strings.Contains(out[2].Content, "status 404") {
		t.Errorf("404 fetch Content = %q, want the status error embedded", out[2].Content)
	}
}

func TestEnrichEmptyInput(t *testing.T) {
	s := NewScraper(&stubClient{}, extract.New(), nil)
	out := s.Enrich(context.Background(), fastCfg("Example"), nil)
	if len(out) != 0 {
		t.Errorf("got %d articles for empty input", len(out))
	}
}

// cancellingClient cancels the run once every worker is mid-fetch, then
// fails all the in-flight requests at once.
type cancellingClient struct {
	cancel  context.CancelFunc
	release chan struct{}
	mu      sync.Mutex
	calls   int
}

func (c *cancellingClient) Get(ctx context.Context, _ string, _ map[string]string) (httpclient.Response, error) {
	c.mu.Lock()
	c.calls++
	if c.calls == maxArticleWorkers {
		c.cancel()
		close(c.release)
	}
	c.mu.Unlock()

	<-c.release
	return nil, ctx.Err()
}

func TestEnrichReturnsWhenCancelledMidRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := &cancellingClient{cancel: cancel, release: make(chan struct{})}
	s := NewScraper(client, extract.New(), nil)

	// More articles than workers, so the producer is blocked on a send when
	// cancellation hits and every worker returns.
	in := make([]domain.Article, maxArticleWorkers+3)
	for i := range in {
		in[i] = domain.Article{Title: "A", URL: fmt.Sprintf("https://example.com/%d", i)}
	}

	done := make(chan []domain.Article, 1)
	go func() { done <- s.Enrich(ctx, fastCfg("Example"), in) }()

	select {
	case out := <-done:
		if len(out) != len(in) {
			t.Fatalf("got %d articles, want %d", len(out), len(in))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Enrich did not return after cancellation")
	}
}

func TestEnrichStopsOnCancel(t *testing.T) {
	client := &stubClient{pages: map[string]stubResponse{
		"https://example.com/a": {status: 200, body: []byte(articleHTML("A"))},
	}}
	s := NewScraper(client, extract.New(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := []domain.Article{{Title: "A", URL: "https://example.com/a"}}
	out := s.Enrich(ctx, fastCfg("Example"), in)

	// Cancelled runs still return one record per input, unenriched.
	if len(out) != 1 {
		t.Fatalf("got %d articles, want 1", len(out))
	}
	if out[0].Content != "" {
		t.Errorf("cancelled run enriched content: %q", out[0].Content)
	}
}
