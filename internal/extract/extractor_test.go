package extract

import (
	"fmt"
	"strings"
	"testing"

	"github.com/qcomwatch/harvester/internal/domain"
)

const para = "Quick commerce platforms are expanding their dark store networks across Indian metros this quarter."

func TestExtractTitleAndBody(t *testing.T) {
	html := fmt.Sprintf(`<html><head><title>Page Title</title></head><body>
		<h1>Blinkit Expands To Ten New Cities</h1>
		<article><p>%s</p><p>%s</p></article>
	</body></html>`, para, para)

	res := New().Extract(html)
	if res.Title != "Blinkit Expands To Ten New Cities" {
		t.Errorf("Title = %q", res.Title)
	}
	want := para + "\n\n" + para
	if res.Body != want {
		t.Errorf("Body = %q, want %q", res.Body, want)
	}
}

func TestExtractTitleCascadeFallsThrough(t *testing.T) {
	html := fmt.Sprintf(`<html><head><title>Fallback Title</title></head><body>
		<article><p>%s</p></article>
	</body></html>`, para)

	res := New().Extract(html)
	if res.Title != "Fallback Title" {
		t.Errorf("Title = %q, want the <title> fallback", res.Title)
	}
}

func TestExtractSentinelsOnGarbage(t *testing.T) {
	res := New().Extract("<html><body><span>hi</span></body></html>")
	if res.Title != domain.NoTitle {
		t.Errorf("Title = %q, want %q", res.Title, domain.NoTitle)
	}
	if res.Body != domain.NoContent {
		t.Errorf("Body = %q, want %q", res.Body, domain.NoContent)
	}
}

func TestExtractRemovesNoise(t *testing.T) {
	html := fmt.Sprintf(`<html><body>
		<nav>Home News Sports Entertainment Business Technology Lifestyle More</nav>
		<script>var trackingPayload = "%s";</script>
		<article><p>%s</p></article>
		<footer>Copyright notice and a very long list of legal disclaimers goes right here.</footer>
	</body></html>`, para, para)

	res := New().Extract(html)
	if res.Body != para {
		t.Errorf("Body = %q, want only the article paragraph", res.Body)
	}
	if strings.Contains(res.Body, "tracking") {
		t.Error("script text leaked into the body")
	}
}

func TestExtractDropsShortFragments(t *testing.T) {
	html := fmt.Sprintf(`<html><body><article>
		<p>Short byline.</p>
		<p>%s</p>
		<p>By Staff Writer</p>
	</article></body></html>`, para)

	res := New().Extract(html)
	if res.Body != para {
		t.Errorf("Body = %q, want short fragments dropped", res.Body)
	}
}

func TestExtractFloorCountsRunes(t *testing.T) {
	// 40 Devanagari characters are 120 bytes but only 40 runes, so the
	// fragment sits under the floor; 60 characters clear it.
	short := strings.Repeat("ब", 40)
	long := strings.Repeat("ब", 60)
	html := fmt.Sprintf(`<html><body><article><p>%s</p><p>%s</p></article></body></html>`, short, long)

	res := New().Extract(html)
	if res.Body != long {
		t.Errorf("Body = %q, want only the fragment above the rune floor", res.Body)
	}
}

func TestExtractFallbackScanCapped(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 15; i++ {
		fmt.Fprintf(&b, "<p>Paragraph number %02d of the page body text, long enough to clear the floor.</p>", i)
	}
	b.WriteString("</body></html>")

	res := New().Extract(b.String())
	if got := len(strings.Split(res.Body, "\n\n")); got != DefaultFallbackParagraphCap {
		t.Errorf("fallback kept %d paragraphs, want %d", got, DefaultFallbackParagraphCap)
	}
}

func TestExtractContainerEmptyFallsBackToScan(t *testing.T) {
	// The matched container has nothing above the floor, so the
	// document-wide paragraph scan must still find the loose paragraph.
	html := fmt.Sprintf(`<html><body>
		<article><p>tiny</p></article>
		<p>%s</p>
	</body></html>`, para)

	res := New().Extract(html)
	if res.Body != para {
		t.Errorf("Body = %q, want the loose paragraph via fallback", res.Body)
	}
}
