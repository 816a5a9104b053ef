// Package publishers delivers a completed-run event to configured external
// sinks: HTTP endpoints and cloud queues. Publishing is optional and always
// best-effort; a failing publisher never fails the run.
package publishers

import (
	"context"

	"github.com/qcomwatch/harvester/internal/domain"
	"github.com/qcomwatch/harvester/internal/logger"
)

// ArticleRef is the lightweight article record carried in run events.
// Bodies are deliberately excluded to keep payloads queue-sized.
type ArticleRef struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Source        string `json:"source"`
	PublishedDate string `json:"published_date,omitempty"`
}

// Event summarizes one completed harvest run.
type Event struct {
	GeneratedOn   string       `json:"generated_on"`
	TimeframeCode string       `json:"timeframe_code"`
	Timeframe     string       `json:"timeframe"`
	DateStart     string       `json:"date_start"`
	DateEnd       string       `json:"date_end"`
	TotalArticles int          `json:"total_articles"`
	Articles      []ArticleRef `json:"articles"`
}

// NewEvent builds a run event from the report fields and articles.
func NewEvent(generatedOn, timeframeCode, timeframeDesc, dateStart, dateEnd string, articles []domain.Article) Event {
	refs := make([]ArticleRef, 0, len(articles))
	for _, art := range articles {
		refs = append(refs, ArticleRef{
			Title:         art.Title,
			URL:           art.URL,
			Source:        art.Source,
			PublishedDate: art.PublishedDate,
		})
	}
	return Event{
		GeneratedOn:   generatedOn,
		TimeframeCode: timeframeCode,
		Timeframe:     timeframeDesc,
		DateStart:     dateStart,
		DateEnd:       dateEnd,
		TotalArticles: len(refs),
		Articles:      refs,
	}
}

// Publisher delivers run events to one configured sink.
type Publisher interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt Event) error
}

// Logger is the logging interface publishers report through.
type Logger = logger.Logger

// ensureLogger substitutes a no-op logger for nil.
func ensureLogger(log Logger) Logger {
	if log == nil {
		return logger.NopLogger{}
	}
	return log
}
