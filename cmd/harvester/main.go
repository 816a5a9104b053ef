// Command harvester runs one quick-commerce news harvest: it collects
// candidates from the configured feeds and search APIs, filters them by the
// requested timeframe, extracts article bodies, deduplicates the results and
// writes the text and JSON reports.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/qcomwatch/harvester/internal/config"
	"github.com/qcomwatch/harvester/internal/crawler"
	"github.com/qcomwatch/harvester/internal/dedupe"
	"github.com/qcomwatch/harvester/internal/domain"
	"github.com/qcomwatch/harvester/internal/extract"
	"github.com/qcomwatch/harvester/internal/logger"
	"github.com/qcomwatch/harvester/internal/pipeline"
	"github.com/qcomwatch/harvester/internal/report"
	"github.com/qcomwatch/harvester/internal/timeframe"
	"github.com/qcomwatch/harvester/pkg/providers"
	"github.com/qcomwatch/harvester/pkg/publishers"
)

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()

	cfg := config.Load()

	var (
		tfFlag         string
		tfShort        string
		customDays     int
		listTimeframes bool
		outputFile     string
		jsonOutputFile string
		sourcesFile    string
		publishersFile string
	)

	flag.StringVar(&tfFlag, "timeframe", "", "timeframe code for the lookback window (see -list-timeframes)")
	flag.StringVar(&tfShort, "t", "", "shorthand for -timeframe")
	flag.IntVar(&customDays, "custom-days", 0, "number of days back when timeframe is custom")
	flag.BoolVar(&listTimeframes, "list-timeframes", false, "list the recognized timeframe codes and exit")
	flag.StringVar(&outputFile, "output", "", "text report filename (default is generated from the timeframe)")
	flag.StringVar(&jsonOutputFile, "json-output", "", "JSON report filename (default is generated from the timeframe)")
	flag.StringVar(&sourcesFile, "sources", "", "YAML or JSON source catalog file replacing the built-in sources")
	flag.StringVar(&publishersFile, "publishers", "", "YAML or JSON publishers file for run-event delivery")
	flag.Parse()

	if listTimeframes {
		fmt.Println("Available timeframes:")
		for _, code := range timeframe.Codes() {
			fmt.Printf("  %-8s %s\n", code, timeframe.Describe(code))
		}
		return 0
	}

	log := logger.New(cfg.LogLevel)

	requested := cfg.Timeframe
	if tfFlag != "" {
		requested = tfFlag
	} else if tfShort != "" {
		requested = tfShort
	}
	if customDays <= 0 {
		customDays = cfg.CustomDays
	}
	if sourcesFile == "" {
		sourcesFile = cfg.SourcesFile
	}
	if publishersFile == "" {
		publishersFile = cfg.PublishersFile
	}

	now := time.Now()
	win := timeframe.Resolve(requested, customDays, now)
	if win.Code != requested {
		log.WarnObj("unrecognized timeframe, using default", "timeframe_fallback", map[string]any{
			"requested": requested,
			"using":     win.Code,
		})
	}

	catalog := providers.DefaultCatalog()
	if sourcesFile != "" {
		loaded, err := providers.LoadCatalog(sourcesFile)
		if err != nil {
			log.ErrorObj("source catalog load failed", "catalog_error", map[string]any{
				"file":  sourcesFile,
				"error": err.Error(),
			})
			return 1
		}
		catalog = loaded
	}

	client := providers.DefaultHTTPClient()
	registry := providers.DefaultFetcherRegistry(client)

	var searcher providers.Searcher
	if cfg.NewsAPIKey != "" {
		searcher = providers.NewNewsAPIClient(cfg.NewsAPIKey, client)
	} else {
		log.WarnObj("NEWS_API_KEY not set, search api source disabled", "search_disabled", nil)
	}

	scraper := crawler.NewScraper(client, extract.New(), log)
	pipe := pipeline.New(catalog, registry, searcher, scraper, dedupe.New(), log)

	ctx := context.Background()
	articles := pipe.Run(ctx, win)

	if len(articles) == 0 {
		log.WarnObj("no articles found for the requested window", "empty_run", map[string]any{
			"timeframe": win.Code,
		})
	}

	rep := report.Build(win, articles, now)

	textFile, err := report.SaveText(rep, win, outputFile, now)
	if err != nil {
		log.ErrorObj("text report save failed", "report_error", map[string]any{"error": err.Error()})
	} else {
		log.InfoObj("text report written", "report_written", map[string]any{"file": textFile})
	}

	jsonFile, err := report.SaveJSON(rep, win, jsonOutputFile, now)
	if err != nil {
		log.ErrorObj("json report save failed", "report_error", map[string]any{"error": err.Error()})
	} else {
		log.InfoObj("json report written", "report_written", map[string]any{"file": jsonFile})
	}

	if publishersFile != "" {
		publishRun(ctx, publishersFile, rep, win, articles, log)
	}

	return 0
}

// publishRun delivers the run event to every enabled configured publisher.
// Publishing is best-effort: failures are logged, never fatal.
func publishRun(
	ctx context.Context,
	path string,
	rep report.Report,
	win timeframe.Window,
	articles []domain.Article,
	log logger.Logger,
) {
	reg, err := publishers.LoadRegistry(path)
	if err != nil {
		log.ErrorObj("publishers file load failed", "publisher_config_error", map[string]any{
			"file":  path,
			"error": err.Error(),
		})
		return
	}

	pubs, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), reg.Enabled(), log)
	if err != nil {
		log.ErrorObj("publisher setup failed", "publisher_config_error", map[string]any{
			"error": err.Error(),
		})
		return
	}
	if len(pubs) == 0 {
		return
	}

	evt := publishers.NewEvent(
		rep.GeneratedOn,
		win.Code,
		win.Description,
		rep.DateRange.Start,
		rep.DateRange.End,
		articles,
	)
	publishers.PublishAll(ctx, pubs, evt, log)
}
