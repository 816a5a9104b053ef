package publishers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// httpPublisher delivers run events to a generic HTTP sink.
type httpPublisher struct {
	id     string
	typ    string
	cfg    HTTPPublisherConfig
	client *resty.Client
	log    Logger
}

// newHTTPPublisher creates an HTTP publisher from the config entry.
func newHTTPPublisher(_ context.Context, cfg PublisherConfig, log Logger) (Publisher, error) {
	if cfg.HTTP == nil {
		return nil, fmt.Errorf("publisher %q missing http configuration", cfg.ID)
	}

	client := resty.New().
		SetTimeout(time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second)

	return &httpPublisher{
		id:     cfg.ID,
		typ:    cfg.Type,
		cfg:    *cfg.HTTP,
		client: client,
		log:    ensureLogger(log),
	}, nil
}

func (p *httpPublisher) ID() string   { return p.id }
func (p *httpPublisher) Type() string { return p.typ }

// Publish posts the run event as JSON to the configured endpoint.
func (p *httpPublisher) Publish(ctx context.Context, evt Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	req := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload)
	for k, v := range p.cfg.Headers {
		req.SetHeader(k, v)
	}

	resp, err := req.Execute(p.cfg.Method, p.cfg.URL)
	if err != nil {
		p.log.ErrorObj("http publisher send failed", "publisher_http_error", map[string]any{
			"url":   p.cfg.URL,
			"error": err.Error(),
		})
		return fmt.Errorf("send event to %s: %w", p.cfg.URL, err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		p.log.ErrorObj("http publisher got non-2xx response", "publisher_http_error", map[string]any{
			"url":    p.cfg.URL,
			"status": resp.StatusCode(),
		})
		return fmt.Errorf("sink %s returned status %d", p.cfg.URL, resp.StatusCode())
	}

	p.log.DebugObj("http publisher delivered event", "publisher_http_delivery", map[string]any{
		"url":    p.cfg.URL,
		"status": resp.StatusCode(),
	})
	return nil
}
