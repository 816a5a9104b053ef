// Package report serializes a harvest into the text and JSON output files.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/qcomwatch/harvester/internal/domain"
	"github.com/qcomwatch/harvester/internal/timeframe"
)

const (
	timestampFormat = "2006-01-02 15:04:05"
	rangeFormat     = "2006-01-02 15:04"
	filenameFormat  = "20060102_150405"
)

// DateRange is the run's window rendered for the structured report.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Report is the structured record of one completed harvest.
type Report struct {
	GeneratedOn   string           `json:"generated_on"`
	Timeframe     string           `json:"timeframe"`
	DateRange     DateRange        `json:"date_range"`
	TotalArticles int              `json:"total_articles"`
	Articles      []domain.Article `json:"articles"`
}

// Build assembles a Report for the window and articles.
func Build(win timeframe.Window, articles []domain.Article, now time.Time) Report {
	return Report{
		GeneratedOn: now.Format(timestampFormat),
		Timeframe:   win.Description,
		DateRange: DateRange{
			Start: win.Start.Format(timestampFormat),
			End:   win.End.Format(timestampFormat),
		},
		TotalArticles: len(articles),
		Articles:      articles,
	}
}

// TextFilename generates the default text report filename for the window.
func TextFilename(win timeframe.Window, now time.Time) string {
	return fmt.Sprintf("quick_commerce_news_%s_%s.txt", win.Label(), now.Format(filenameFormat))
}

// JSONFilename generates the default JSON report filename for the window.
func JSONFilename(win timeframe.Window, now time.Time) string {
	return fmt.Sprintf("quick_commerce_news_%s_%s.json", win.Label(), now.Format(filenameFormat))
}

// SaveText writes the human-readable report. An empty filename selects the
// generated default. Returns the filename written.
func SaveText(rep Report, win timeframe.Window, filename string, now time.Time) (string, error) {
	if filename == "" {
		filename = TextFilename(win, now)
	}

	f, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("create text report: %w", err)
	}
	defer f.Close()

	if err := WriteText(f, rep, win); err != nil {
		return "", fmt.Errorf("write text report: %w", err)
	}
	return filename, nil
}

// WriteText renders the report: a header block, per-source counts, then one
// delimited block per article.
func WriteText(w io.Writer, rep Report, win timeframe.Window) error {
	var b strings.Builder

	b.WriteString("QUICK COMMERCE INDUSTRY NEWS REPORT\n")
	b.WriteString(strings.Repeat("=", 50) + "\n")
	fmt.Fprintf(&b, "Generated on: %s\n", rep.GeneratedOn)
	fmt.Fprintf(&b, "Timeframe: %s\n", rep.Timeframe)
	fmt.Fprintf(&b, "Date range: %s to %s\n", win.Start.Format(rangeFormat), win.End.Format(rangeFormat))
	fmt.Fprintf(&b, "Total articles: %d\n\n", rep.TotalArticles)

	b.WriteString("ARTICLES BY SOURCE:\n")
	for _, sc := range sourceCounts(rep.Articles) {
		fmt.Fprintf(&b, "- %s: %d articles\n", sc.name, sc.count)
	}
	b.WriteString("\n")

	for i, art := range rep.Articles {
		rule := strings.Repeat("=", 80)
		fmt.Fprintf(&b, "\n%s\nARTICLE %d\n%s\n\n", rule, i+1, rule)
		fmt.Fprintf(&b, "TITLE: %s\n\n", art.Title)
		fmt.Fprintf(&b, "SOURCE: %s\n\n", art.Source)
		fmt.Fprintf(&b, "URL: %s\n\n", art.URL)
		fmt.Fprintf(&b, "PUBLISHED: %s\n\n", orUnknown(art.PublishedDate))

		if art.Description != "" {
			fmt.Fprintf(&b, "DESCRIPTION:\n%s\n\n", art.Description)
		}

		divider := strings.Repeat("-", 40)
		fmt.Fprintf(&b, "FULL CONTENT:\n%s\n%s\n%s\n\n", divider, orNoContent(art.Content), divider)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// SaveJSON writes the structured report. An empty filename selects the
// generated default. Returns the filename written.
func SaveJSON(rep Report, win timeframe.Window, filename string, now time.Time) (string, error) {
	if filename == "" {
		filename = JSONFilename(win, now)
	}

	payload, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal json report: %w", err)
	}

	if err := os.WriteFile(filename, payload, 0o644); err != nil {
		return "", fmt.Errorf("write json report: %w", err)
	}
	return filename, nil
}

type sourceCount struct {
	name  string
	count int
}

// sourceCounts tallies articles per source, ordered by first appearance.
func sourceCounts(articles []domain.Article) []sourceCount {
	idx := make(map[string]int)
	var counts []sourceCount
	for _, art := range articles {
		name := art.Source
		if name == "" {
			name = "Unknown"
		}
		if i, ok := idx[name]; ok {
			counts[i].count++
			continue
		}
		idx[name] = len(counts)
		counts = append(counts, sourceCount{name: name, count: 1})
	}
	return counts
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func orNoContent(s string) string {
	if s == "" {
		return "No content available"
	}
	return s
}
