package providers

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	cat := DefaultCatalog()

	if len(cat.Sources) != 15 {
		t.Errorf("default catalog has %d sources, want 15", len(cat.Sources))
	}
	if len(cat.Keywords) == 0 || len(cat.APIKeywords) == 0 {
		t.Error("default catalog keywords must not be empty")
	}

	var aggregators int
	for _, src := range cat.Sources {
		switch src.Type {
		case TypeRSS:
		case TypeGoogleNews:
			aggregators++
		default:
			t.Errorf("source %q has unexpected type %q", src.Name, src.Type)
		}
		if src.RSSURL == "" {
			t.Errorf("source %q has no rss_url", src.Name)
		}
	}
	if aggregators != 1 {
		t.Errorf("default catalog has %d aggregator sources, want 1", aggregators)
	}
}

func TestLoadCatalogYAML(t *testing.T) {
	t.Setenv("TEST_FEED_HOST", "feeds.example.com")

	path := filepath.Join(t.TempDir(), "sources.yaml")
	content := `sources:
  - name: Example Feed
    type: rss
    rss_url: https://${TEST_FEED_HOST}/rss.xml
keywords:
  - quick commerce
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cat, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}

	if len(cat.Sources) != 1 {
		t.Fatalf("loaded %d sources, want 1", len(cat.Sources))
	}
	src := cat.Sources[0]
	if src.RSSURL != "https://feeds.example.com/rss.xml" {
		t.Errorf("env reference not expanded: %q", src.RSSURL)
	}
	if src.Type != TypeRSS {
		t.Errorf("type = %q", src.Type)
	}

	if len(cat.Keywords) != 1 {
		t.Errorf("loaded %d keywords, want 1", len(cat.Keywords))
	}
	// API keywords absent from the file fall back to the defaults.
	if len(cat.APIKeywords) == 0 {
		t.Error("api keywords should default when the file omits them")
	}
}

func TestLoadCatalogJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.json")
	content := `{"sources":[{"name":"JSON Feed","type":"rss","rss_url":"https://example.com/feed"}]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cat, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if len(cat.Sources) != 1 || cat.Sources[0].Name != "JSON Feed" {
		t.Errorf("unexpected catalog: %+v", cat.Sources)
	}
}

func TestLoadCatalogRejectsInvalid(t *testing.T) {
	dir := t.TempDir()

	cases := map[string]string{
		"empty.yaml":    `keywords: [x]`,
		"no-name.yaml":  "sources:\n  - type: rss\n    rss_url: https://example.com/feed\n",
		"no-url.yaml":   "sources:\n  - name: Broken\n    type: rss\n",
		"bad-type.yaml": "sources:\n  - name: Broken\n    type: sitemap\n    rss_url: https://example.com/feed\n",
	}

	for file, content := range cases {
		path := filepath.Join(dir, file)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadCatalog(path); err == nil {
			t.Errorf("LoadCatalog(%s) succeeded, want error", file)
		}
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadCatalog on a missing file succeeded, want error")
	}
	if _, err := LoadCatalog(""); err == nil {
		t.Error("LoadCatalog with empty path succeeded, want error")
	}
}
