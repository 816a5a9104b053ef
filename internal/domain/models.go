// Package domain contains the core article model shared by all stages.
package domain

const (
	// NoTitle is the title recorded when no usable headline was found.
	NoTitle = "No title found"
	// NoContent is the body recorded when page extraction produced nothing.
	NoContent = "No content extracted"
)

// Article is one discovered news story. PublishedDate keeps the raw
// source-native string; it is parsed only once, during window filtering,
// and never reinterpreted afterwards.
type Article struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Source        string `json:"source"`
	PublishedDate string `json:"published_date"`
	Description   string `json:"description"`
	Content       string `json:"content"`
}
