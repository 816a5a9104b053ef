// Package dedupe removes repeat and near-duplicate articles from a harvest.
package dedupe

import (
	"strings"

	"github.com/qcomwatch/harvester/internal/domain"
)

// DefaultTitleOverlapThreshold is the word-overlap ratio above which two
// titles are treated as the same story. The value is a design constant, not
// derived; keep it tunable per Deduper.
const DefaultTitleOverlapThreshold = 0.7

// Deduper drops records whose URL repeats or whose title is near-identical
// to an already-kept title. First occurrence wins; relative order among kept
// records is preserved.
type Deduper struct {
	TitleOverlapThreshold float64
}

// New returns a Deduper with the default overlap threshold.
func New() *Deduper {
	return &Deduper{TitleOverlapThreshold: DefaultTitleOverlapThreshold}
}

// Dedupe filters the articles in input order. Cost is O(n*m*w) over kept
// titles and word-set sizes, which is fine at tens to low hundreds of
// records per run.
func (d *Deduper) Dedupe(articles []domain.Article) []domain.Article {
	seenURLs := make(map[string]struct{}, len(articles))
	var seenTitleWords []map[string]struct{}

	kept := make([]domain.Article, 0, len(articles))
	for _, art := range articles {
		if _, dup := seenURLs[art.URL]; dup {
			continue
		}

		words := titleWords(art.Title)
		if d.nearDuplicate(words, seenTitleWords) {
			continue
		}

		seenURLs[art.URL] = struct{}{}
		seenTitleWords = append(seenTitleWords, words)
		kept = append(kept, art)
	}
	return kept
}

// nearDuplicate reports whether the word set overlaps any kept title above
// the threshold. Overlap is |intersection| / max(|a|, |b|); empty titles
// never match.
func (d *Deduper) nearDuplicate(words map[string]struct{}, seen []map[string]struct{}) bool {
	if len(words) == 0 {
		return false
	}

	for _, other := range seen {
		if len(other) == 0 {
			continue
		}

		shared := 0
		for w := range words {
			if _, ok := other[w]; ok {
				shared++
			}
		}

		denom := len(words)
		if len(other) > denom {
			denom = len(other)
		}
		if float64(shared)/float64(denom) > d.TitleOverlapThreshold {
			return true
		}
	}
	return false
}

func titleWords(title string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(title)))
	words := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		words[f] = struct{}{}
	}
	return words
}
