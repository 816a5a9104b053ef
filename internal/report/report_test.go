package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/qcomwatch/harvester/internal/domain"
	"github.com/qcomwatch/harvester/internal/timeframe"
)

var testNow = time.Date(2025, time.March, 15, 14, 30, 45, 0, time.UTC)

func testArticles() []domain.Article {
	return []domain.Article{
		{
			Title:         "Blinkit opens dark stores in Pune",
			URL:           "https://news.test/blinkit",
			Source:        "Economic Times",
			PublishedDate: "Thu, 13 Mar 2025 09:30:00 GMT",
			Description:   "Expansion coverage.",
			Content:       "Full body text of the first article.",
		},
		{
			Title:   "Zepto funding round",
			URL:     "https://news.test/zepto",
			Source:  "TechCrunch",
			Content: "Full body text of the second article.",
		},
		{
			Title:   "Instamart partners with kiranas",
			URL:     "https://news.test/instamart",
			Source:  "Economic Times",
			Content: "Full body text of the third article.",
		},
	}
}

func TestBuild(t *testing.T) {
	win := timeframe.Resolve("7d", 0, testNow)
	rep := Build(win, testArticles(), testNow)

	if rep.GeneratedOn != "2025-03-15 14:30:45" {
		t.Errorf("GeneratedOn = %q", rep.GeneratedOn)
	}
	if rep.Timeframe != "Last week" {
		t.Errorf("Timeframe = %q", rep.Timeframe)
	}
	if rep.DateRange.Start != "2025-03-08 14:30:45" || rep.DateRange.End != "2025-03-15 14:30:45" {
		t.Errorf("DateRange = %+v", rep.DateRange)
	}
	if rep.TotalArticles != 3 {
		t.Errorf("TotalArticles = %d", rep.TotalArticles)
	}
}

func TestFilenames(t *testing.T) {
	win := timeframe.Resolve("7d", 0, testNow)

	if got := TextFilename(win, testNow); got != "quick_commerce_news_7days_20250315_143045.txt" {
		t.Errorf("TextFilename = %q", got)
	}
	if got := JSONFilename(win, testNow); got != "quick_commerce_news_7days_20250315_143045.json" {
		t.Errorf("JSONFilename = %q", got)
	}

	win = timeframe.Resolve("6h", 0, testNow)
	if got := TextFilename(win, testNow); got != "quick_commerce_news_6hours_20250315_143045.txt" {
		t.Errorf("TextFilename(6h) = %q", got)
	}
}

func TestWriteText(t *testing.T) {
	win := timeframe.Resolve("7d", 0, testNow)
	rep := Build(win, testArticles(), testNow)

	var sb strings.Builder
	if err := WriteText(&sb, rep, win); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	out := sb.String()

	for _, want := range []string{
		"QUICK COMMERCE INDUSTRY NEWS REPORT",
		"Generated on: 2025-03-15 14:30:45",
		"Timeframe: Last week",
		"Date range: 2025-03-08 14:30 to 2025-03-15 14:30",
		"Total articles: 3",
		"ARTICLES BY SOURCE:",
		"- Economic Times: 2 articles",
		"- TechCrunch: 1 articles",
		"ARTICLE 1",
		"ARTICLE 3",
		"TITLE: Blinkit opens dark stores in Pune",
		"SOURCE: TechCrunch",
		"URL: https://news.test/zepto",
		"PUBLISHED: Thu, 13 Mar 2025 09:30:00 GMT",
		"PUBLISHED: Unknown",
		"DESCRIPTION:\nExpansion coverage.",
		"FULL CONTENT:",
		"Full body text of the second article.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}

	// Per-source counts are ordered by first appearance.
	et := strings.Index(out, "- Economic Times")
	tc := strings.Index(out, "- TechCrunch")
	if et < 0 || tc < 0 || et > tc {
		t.Errorf("source counts out of order: ET at %d, TC at %d", et, tc)
	}
}

func TestSaveTextAndJSON(t *testing.T) {
	dir := t.TempDir()
	win := timeframe.Resolve("7d", 0, testNow)
	rep := Build(win, testArticles(), testNow)

	textPath := filepath.Join(dir, "report.txt")
	got, err := SaveText(rep, win, textPath, testNow)
	if err != nil {
		t.Fatalf("SaveText: %v", err)
	}
	if got != textPath {
		t.Errorf("SaveText returned %q", got)
	}
	raw, err := os.ReadFile(textPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "ARTICLE 1") {
		t.Error("text report content missing")
	}

	jsonPath := filepath.Join(dir, "report.json")
	if _, err := SaveJSON(rep, win, jsonPath, testNow); err != nil {
		t.Fatalf("SaveJSON: %v", err)
	}
	raw, err = os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}

	var decoded Report
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode json report: %v", err)
	}
	if decoded.TotalArticles != 3 || len(decoded.Articles) != 3 {
		t.Errorf("decoded report: total %d, articles %d", decoded.TotalArticles, len(decoded.Articles))
	}
	if decoded.Articles[0].URL != "https://news.test/blinkit" {
		t.Errorf("decoded URL = %q", decoded.Articles[0].URL)
	}

	// Every article carries every field, empty or not.
	if !strings.Contains(string(raw), `"description": ""`) {
		t.Error("articles without a summary must still emit the description key")
	}
}

func TestWriteTextEmptyRun(t *testing.T) {
	win := timeframe.Resolve("24h", 0, testNow)
	rep := Build(win, nil, testNow)

	var sb strings.Builder
	if err := WriteText(&sb, rep, win); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	out := sb.String()

	if !strings.Contains(out, "Total articles: 0") {
		t.Error("empty run should still render the header")
	}
	if strings.Contains(out, "ARTICLE 1") {
		t.Error("empty run should render no article blocks")
	}
}
