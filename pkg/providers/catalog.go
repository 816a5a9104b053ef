package providers

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// GoogleNewsSourceName labels records coming from the aggregator feed.
const GoogleNewsSourceName = "Google News"

// Catalog is the fixed set of sources and keywords for a run. It is loaded
// once at process start and passed explicitly into the pipeline.
type Catalog struct {
	Sources     []Provider `yaml:"sources" json:"sources"`
	Keywords    []string   `yaml:"keywords" json:"keywords"`
	APIKeywords []string   `yaml:"api_keywords" json:"api_keywords"`
}

// DefaultCatalog returns the built-in quick-commerce source and keyword set.
func DefaultCatalog() Catalog {
	return Catalog{
		Sources: []Provider{
			{Name: "Economic Times", Type: TypeRSS, SearchURL: "https://economictimes.indiatimes.com/searchresult.cms?query={}", RSSURL: "https://economictimes.indiatimes.com/rssfeedsdefault.cms", BaseURL: "https://economictimes.indiatimes.com"},
			{Name: "Business Standard", Type: TypeRSS, SearchURL: "https://www.business-standard.com/search?q={}", RSSURL: "https://www.business-standard.com/rss/latest.rss", BaseURL: "https://www.business-standard.com"},
			{Name: "Financial Express", Type: TypeRSS, SearchURL: "https://www.financialexpress.com/search/?q={}", RSSURL: "https://www.financialexpress.com/feed/", BaseURL: "https://www.financialexpress.com"},
			{Name: "LiveMint", Type: TypeRSS, SearchURL: "https://www.livemint.com/Search/Link/Keyword/{}", RSSURL: "https://www.livemint.com/rss/companies", BaseURL: "https://www.livemint.com"},
			{Name: "MoneyControl", Type: TypeRSS, SearchURL: "https://www.moneycontrol.com/news/search/?q={}", RSSURL: "https://www.moneycontrol.com/rss/business.xml", BaseURL: "https://www.moneycontrol.com"},
			{Name: "YourStory", Type: TypeRSS, SearchURL: "https://yourstory.com/search?q={}", RSSURL: "https://yourstory.com/feed", BaseURL: "https://yourstory.com"},
			{Name: "Inc42", Type: TypeRSS, SearchURL: "https://inc42.com/?s={}", RSSURL: "https://inc42.com/feed/", BaseURL: "https://inc42.com"},
			{Name: "MediaNama", Type: TypeRSS, SearchURL: "https://www.medianama.com/?s={}", RSSURL: "https://www.medianama.com/feed/", BaseURL: "https://www.medianama.com"},
			{Name: "Entrackr", Type: TypeRSS, SearchURL: "https://entrackr.com/?s={}", RSSURL: "https://entrackr.com/feed/", BaseURL: "https://entrackr.com"},
			{Name: "Times of India", Type: TypeRSS, SearchURL: "https://timesofindia.indiatimes.com/searchresult.cms?query={}", RSSURL: "https://timesofindia.indiatimes.com/rssfeedstopstories.cms", BaseURL: "https://timesofindia.indiatimes.com"},
			{Name: "Hindustan Times", Type: TypeRSS, SearchURL: "https://www.hindustantimes.com/search?q={}", RSSURL: "https://www.hindustantimes.com/feeds/rss/business/rssfeed.xml", BaseURL: "https://www.hindustantimes.com"},
			{Name: "Indian Express", Type: TypeRSS, SearchURL: "https://indianexpress.com/search/?q={}", RSSURL: "https://indianexpress.com/section/business/rss/", BaseURL: "https://indianexpress.com"},
			{Name: "NDTV", Type: TypeRSS, SearchURL: "https://www.ndtv.com/search?q={}", RSSURL: "https://feeds.feedburner.com/ndtvprofit-latest", BaseURL: "https://www.ndtv.com"},
			{Name: "News18", Type: TypeRSS, SearchURL: "https://www.news18.com/search/?q={}", RSSURL: "https://www.news18.com/rss/business.xml", BaseURL: "https://www.news18.com"},
			{Name: GoogleNewsSourceName, Type: TypeGoogleNews, RSSURL: "https://news.google.com/rss/search?q=quick+commerce+OR+q-commerce+OR+blinkit+OR+zepto+OR+instamart&hl=en-US&gl=US&ceid=US:en", BaseURL: "https://news.google.com"},
		},
		Keywords: []string{
			"quick commerce", "q-commerce", "quick-commerce", "qcommerce",
			"blinkit", "zepto", "swiggy instamart", "instamart", "swiggy instant",
			"amazon now", "flipkart minutes", "myntra rapid", "bigbasket now",
			"dunzo", "grofers", "milk basket", "fresh to home instant",
			"gopuff", "getir", "gorillas", "flink", "jokr", "weezy",
			"ultra fast delivery", "10 minute delivery", "15 minute delivery", "30 minute delivery",
			"instant grocery", "instant delivery", "rapid delivery", "express delivery",
			"dark store", "dark stores", "micro fulfillment", "micro-fulfillment",
			"on-demand delivery", "hyperlocal delivery", "last mile delivery",
			"grocery delivery", "food delivery instant", "medicine delivery instant",
		},
		APIKeywords: []string{"quick commerce india", "blinkit", "zepto", "swiggy instamart"},
	}
}

// LoadCatalog reads a source catalog from a YAML or JSON file. Environment
// references in the file are expanded before decoding. A catalog file fully
// replaces the built-in sources and keywords.
func LoadCatalog(path string) (Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Catalog{}, errors.New("catalog file path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog file: %w", err)
	}

	expanded := []byte(os.ExpandEnv(string(raw)))

	cat, err := decodeCatalog(expanded, filepath.Ext(path))
	if err != nil {
		return Catalog{}, err
	}
	if len(cat.Sources) == 0 {
		return Catalog{}, errors.New("catalog file contains no sources")
	}

	for i := range cat.Sources {
		cat.Sources[i] = sanitizeProvider(cat.Sources[i])
		if err := validateProvider(cat.Sources[i]); err != nil {
			return Catalog{}, fmt.Errorf("sources[%d]: %w", i, err)
		}
	}

	if len(cat.Keywords) == 0 {
		cat.Keywords = DefaultCatalog().Keywords
	}
	if len(cat.APIKeywords) == 0 {
		cat.APIKeywords = DefaultCatalog().APIKeywords
	}

	return cat, nil
}

// decodeCatalog attempts to decode the catalog file content.
func decodeCatalog(data []byte, ext string) (Catalog, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var cat Catalog
		if err := d.fn(data, &cat); err == nil {
			return cat, nil
		}
	}

	return Catalog{}, errors.New("catalog file format not recognized (expected YAML or JSON)")
}

// sanitizeProvider trims and normalizes the source config fields.
func sanitizeProvider(cfg Provider) Provider {
	cfg.Name = strings.TrimSpace(cfg.Name)
	cfg.Type = strings.ToLower(strings.TrimSpace(cfg.Type))
	if cfg.Type == "" {
		cfg.Type = TypeRSS
	}
	cfg.RSSURL = strings.TrimSpace(cfg.RSSURL)
	cfg.SearchURL = strings.TrimSpace(cfg.SearchURL)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	return cfg
}

// validateProvider checks that required fields are present.
func validateProvider(cfg Provider) error {
	if cfg.Name == "" {
		return errors.New("name is required")
	}
	switch cfg.Type {
	case TypeRSS, TypeGoogleNews:
		if cfg.RSSURL == "" {
			return fmt.Errorf("rss_url is required for source %q", cfg.Name)
		}
	default:
		return fmt.Errorf("type %q not supported for source %q", cfg.Type, cfg.Name)
	}
	return nil
}
