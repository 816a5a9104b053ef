// Package pipeline orchestrates one harvest run: candidate collection from
// every configured source, window and keyword filtering, content enrichment
// and deduplication.
package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/qcomwatch/harvester/internal/crawler"
	"github.com/qcomwatch/harvester/internal/dedupe"
	"github.com/qcomwatch/harvester/internal/domain"
	"github.com/qcomwatch/harvester/internal/logger"
	"github.com/qcomwatch/harvester/internal/timeframe"
	"github.com/qcomwatch/harvester/pkg/providers"
)

// searchQueryDelay spaces consecutive keyed-API queries.
const searchQueryDelay = 2 * time.Second

// searchEnrichDelaySeconds spaces article fetches for keyed-API candidates.
const searchEnrichDelaySeconds = 0.5

// Pipeline wires the collection stages together. All collaborators are
// injected; a nil searcher disables the keyed search source.
type Pipeline struct {
	catalog  providers.Catalog
	registry providers.FetcherRegistry
	searcher providers.Searcher
	scraper  *crawler.Scraper
	deduper  *dedupe.Deduper
	log      logger.Logger
}

// New builds a Pipeline. Registry and scraper are required; deduper and
// logger default when nil.
func New(
	catalog providers.Catalog,
	registry providers.FetcherRegistry,
	searcher providers.Searcher,
	scraper *crawler.Scraper,
	deduper *dedupe.Deduper,
	log logger.Logger,
) *Pipeline {
	if deduper == nil {
		deduper = dedupe.New()
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Pipeline{
		catalog:  catalog,
		registry: registry,
		searcher: searcher,
		scraper:  scraper,
		deduper:  deduper,
		log:      log,
	}
}

// Run executes one harvest for the given window and returns the
// deduplicated articles. No single source failing ever aborts the run; a
// failed source contributes nothing and is logged.
func (p *Pipeline) Run(ctx context.Context, win timeframe.Window) []domain.Article {
	p.log.InfoObj("harvest started", "run_start", map[string]any{
		"timeframe":  win.Code,
		"date_start": win.Start.Format("2006-01-02 15:04"),
		"date_end":   win.End.Format("2006-01-02 15:04"),
	})

	var all []domain.Article

	for _, cfg := range p.catalog.Sources {
		all = append(all, p.collectSource(ctx, cfg, win)...)
	}

	all = append(all, p.collectSearchAPI(ctx, win)...)

	unique := p.deduper.Dedupe(all)
	p.log.InfoObj("harvest finished", "run_done", map[string]any{
		"collected": len(all),
		"unique":    len(unique),
	})
	return unique
}

// collectSource pulls candidates from one feed source, filters them by the
// window (and by keyword for plain RSS sources, whose feeds are not
// pre-filtered), then enriches the survivors.
func (p *Pipeline) collectSource(ctx context.Context, cfg providers.Provider, win timeframe.Window) []domain.Article {
	fetcher, err := p.registry.FetcherFor(cfg)
	if err != nil {
		p.log.WarnObj("source skipped", "source_skip", map[string]any{
			"source": cfg.Name,
			"error":  err.Error(),
		})
		return nil
	}

	candidates, err := fetcher.Fetch(ctx, cfg)
	if err != nil {
		p.log.WarnObj("source fetch failed", "source_error", map[string]any{
			"source": cfg.Name,
			"error":  err.Error(),
		})
		return nil
	}

	applyKeywordFilter := strings.EqualFold(cfg.Type, providers.TypeRSS)

	kept := candidates[:0:0]
	for _, art := range candidates {
		if !win.Contains(art.PublishedDate) {
			continue
		}
		if applyKeywordFilter && !p.titleHasKeyword(art.Title) {
			continue
		}
		kept = append(kept, art)
	}

	p.log.InfoObj("source collected", "source_done", map[string]any{
		"source":     cfg.Name,
		"candidates": len(candidates),
		"kept":       len(kept),
	})

	return p.scraper.Enrich(ctx, cfg, kept)
}

// collectSearchAPI runs one keyed-API query per seed keyword within the
// window's date range. Absence of the searcher (no API key) was already
// logged at construction time by the caller.
func (p *Pipeline) collectSearchAPI(ctx context.Context, win timeframe.Window) []domain.Article {
	if p.searcher == nil {
		return nil
	}

	enrichCfg := providers.Provider{Name: "NewsAPI", DelaySeconds: searchEnrichDelaySeconds}

	var out []domain.Article
	for i, keyword := range p.catalog.APIKeywords {
		if i > 0 {
			select {
			case <-ctx.Done():
				return out
			case <-time.After(searchQueryDelay):
			}
		}

		candidates, err := p.searcher.Search(ctx, keyword, win)
		if err != nil {
			p.log.WarnObj("search api query failed", "search_error", map[string]any{
				"keyword": keyword,
				"error":   err.Error(),
			})
			continue
		}

		kept := candidates[:0:0]
		for _, art := range candidates {
			if !win.Contains(art.PublishedDate) {
				continue
			}
			kept = append(kept, art)
		}

		p.log.InfoObj("search api collected", "search_done", map[string]any{
			"keyword":    keyword,
			"candidates": len(candidates),
			"kept":       len(kept),
		})

		out = append(out, p.scraper.Enrich(ctx, enrichCfg, kept)...)
	}
	return out
}

// titleHasKeyword reports whether the title contains any configured keyword,
// case-insensitively.
func (p *Pipeline) titleHasKeyword(title string) bool {
	lower := strings.ToLower(title)
	for _, kw := range p.catalog.Keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
