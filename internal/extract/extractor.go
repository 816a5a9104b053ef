// Package extract pulls a best-effort title and body out of arbitrary news
// page HTML using an ordered cascade of selectors. No single selector works
// across news sites; the cascade trades precision for coverage.
package extract

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/qcomwatch/harvester/internal/domain"
	"github.com/qcomwatch/harvester/internal/textutil"
)

const (
	// DefaultMinParagraphLen is the length floor applied to every collected
	// fragment. It is the sole defense against captions, bylines and
	// boilerplate, so it is load-bearing despite being tunable.
	DefaultMinParagraphLen = 50

	// DefaultFallbackParagraphCap bounds the document-wide paragraph scan
	// used when no content container matched.
	DefaultFallbackParagraphCap = 10
)

// noiseSelector removes nodes whose text must never leak into the title or
// body.
const noiseSelector = "script, style, nav, header, footer, aside, advertisement"

// titleSelectors is tried in order; the first non-empty normalized match
// wins.
var titleSelectors = []string{
	"h1",
	"title",
	".headline",
	".article-title",
	".entry-title",
}

// bodySelectors is tried in order; the first matching container supplies the
// body fragments.
var bodySelectors = []string{
	"article",
	".article-content",
	".entry-content",
	".post-content",
	".article-body",
	".story-body",
	".content",
	".main-content",
	`[data-module="ArticleBody"]`,
	".article-wrap",
}

// Result is the outcome of one extraction. Both fields are always set;
// sentinel values stand in for anything that could not be extracted.
type Result struct {
	Title string
	Body  string
}

// Extractor runs the selector cascade. The zero value is not usable; use
// New.
type Extractor struct {
	MinParagraphLen      int
	FallbackParagraphCap int
}

// New returns an Extractor with the default fragment floor and fallback cap.
func New() *Extractor {
	return &Extractor{
		MinParagraphLen:      DefaultMinParagraphLen,
		FallbackParagraphCap: DefaultFallbackParagraphCap,
	}
}

// Extract never fails outward: on any internal error it returns sentinel
// title and body strings with the error description embedded in the body so
// the failure stays visible in the final report.
func (e *Extractor) Extract(html string) Result {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Result{
			Title: domain.NoTitle,
			Body:  fmt.Sprintf("Error extracting content: %v", err),
		}
	}

	doc.Find(noiseSelector).Remove()

	title := e.extractTitle(doc)
	if title == "" {
		title = domain.NoTitle
	}

	body := e.extractBody(doc)
	if body == "" {
		body = domain.NoContent
	}

	return Result{Title: title, Body: body}
}

// extractTitle walks the title cascade and returns the first non-empty
// normalized match.
func (e *Extractor) extractTitle(doc *goquery.Document) string {
	for _, sel := range titleSelectors {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		if title := textutil.Normalize(node.Text()); title != "" {
			return title
		}
	}
	return ""
}

// extractBody walks the container cascade, then falls back to a document-wide
// paragraph scan capped at FallbackParagraphCap fragments.
func (e *Extractor) extractBody(doc *goquery.Document) string {
	var body string
	for _, sel := range bodySelectors {
		container := doc.Find(sel).First()
		if container.Length() == 0 {
			continue
		}
		body = strings.Join(e.collectFragments(container.Find("p, div"), 0), "\n\n")
		break
	}
	if body != "" {
		return body
	}

	fragments := e.collectFragments(doc.Find("p"), e.FallbackParagraphCap)
	return strings.Join(fragments, "\n\n")
}

// collectFragments normalizes each node's text and keeps fragments above the
// length floor. The floor counts runes, so multibyte scripts are measured
// the same as ASCII. A max of 0 keeps everything.
func (e *Extractor) collectFragments(sel *goquery.Selection, max int) []string {
	var fragments []string
	sel.EachWithBreak(func(_ int, node *goquery.Selection) bool {
		text := textutil.Normalize(node.Text())
		if utf8.RuneCountInString(text) > e.MinParagraphLen {
			fragments = append(fragments, text)
		}
		return max == 0 || len(fragments) < max
	})
	return fragments
}
