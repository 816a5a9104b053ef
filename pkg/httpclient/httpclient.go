// Package httpclient wraps the outbound HTTP transport behind a minimal
// interface so fetchers and the scraper can be tested with stub clients.
package httpclient

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

// Response exposes the pieces of an HTTP response the harvester reads.
type Response interface {
	StatusCode() int
	Body() []byte
}

// Client performs HTTP GET requests with per-request headers.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}

type restyClient struct {
	client *resty.Client
}

// NewRestyClient returns a Client backed by resty with the given request
// timeout. Redirects are followed; response bodies are buffered in full.
func NewRestyClient(timeout time.Duration) Client {
	c := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0)
	return &restyClient{client: c}
}

// Get performs a GET request with the provided headers.
func (c *restyClient) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	req := c.client.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}

	resp, err := req.Get(url)
	if err != nil {
		return nil, err
	}
	return resp, nil
}
