// Package timeframe computes the lookback window used to filter articles by
// publication date and decides whether raw feed dates fall inside it.
package timeframe

import (
	"strings"
	"time"
)

// DefaultCode is used when no timeframe is supplied or the supplied code is
// not recognized.
const DefaultCode = "7d"

// CodeCustom selects an externally supplied day count.
const CodeCustom = "custom"

// defaultCustomDays is the day count used when custom is selected without an
// override.
const defaultCustomDays = 7

// Option describes one recognized timeframe code.
type Option struct {
	Duration    time.Duration
	Description string
}

// options maps every recognized code to its fixed duration. The custom code
// has no fixed duration and is resolved from the supplied day count.
var options = map[string]Option{
	"6h":       {Duration: 6 * time.Hour, Description: "Last 6 hours"},
	"12h":      {Duration: 12 * time.Hour, Description: "Last 12 hours"},
	"24h":      {Duration: 24 * time.Hour, Description: "Last 24 hours"},
	"2d":       {Duration: 2 * 24 * time.Hour, Description: "Last 2 days"},
	"3d":       {Duration: 3 * 24 * time.Hour, Description: "Last 3 days"},
	"7d":       {Duration: 7 * 24 * time.Hour, Description: "Last week"},
	"14d":      {Duration: 14 * 24 * time.Hour, Description: "Last 2 weeks"},
	"30d":      {Duration: 30 * 24 * time.Hour, Description: "Last month"},
	"60d":      {Duration: 60 * 24 * time.Hour, Description: "Last 2 months"},
	"90d":      {Duration: 90 * 24 * time.Hour, Description: "Last 3 months"},
	CodeCustom: {Description: "Custom date range"},
}

// codeOrder fixes the listing order for Codes and the CLI help output.
var codeOrder = []string{"6h", "12h", "24h", "2d", "3d", "7d", "14d", "30d", "60d", "90d", CodeCustom}

// Window is the immutable half-open interval [Start, End] for one run.
type Window struct {
	Start       time.Time
	End         time.Time
	Code        string
	Description string
}

// IsValidCode reports whether code is a recognized timeframe code.
func IsValidCode(code string) bool {
	_, ok := options[strings.TrimSpace(code)]
	return ok
}

// Codes returns all recognized codes in listing order.
func Codes() []string {
	out := make([]string, len(codeOrder))
	copy(out, codeOrder)
	return out
}

// Describe returns the human description for a code, or the code itself when
// it is not recognized.
func Describe(code string) string {
	if opt, ok := options[code]; ok {
		return opt.Description
	}
	return code
}

// Resolve computes the window ending at now for the given code. An
// unrecognized code resolves as DefaultCode; callers detect the fallback by
// comparing the requested code with Window.Code. For custom, customDays <= 0
// falls back to the default day count.
func Resolve(code string, customDays int, now time.Time) Window {
	code = strings.TrimSpace(code)
	if _, ok := options[code]; !ok {
		code = DefaultCode
	}

	opt := options[code]
	dur := opt.Duration
	if code == CodeCustom {
		days := customDays
		if days <= 0 {
			days = defaultCustomDays
		}
		dur = time.Duration(days) * 24 * time.Hour
	}

	return Window{
		Start:       now.Add(-dur),
		End:         now,
		Code:        code,
		Description: opt.Description,
	}
}

// Label returns the filename-friendly form of the window's code, with the
// hour/day suffix spelled out (7d -> 7days, 6h -> 6hours).
func (w Window) Label() string {
	label := strings.ReplaceAll(w.Code, "h", "hours")
	return strings.ReplaceAll(label, "d", "days")
}

// Contains reports whether a raw publication-date string falls inside the
// window. It fails open: empty or unparsable input is treated as inside,
// so undateable articles are never silently dropped. Zone information is
// stripped before comparison to keep behavior deterministic when feeds mix
// zoned and unzoned timestamps.
func (w Window) Contains(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return true
	}

	pub, ok := parsePubDate(raw)
	if !ok {
		return true
	}

	return !naive(pub).Before(naive(w.Start))
}

// parsePubDate recognizes the two encodings seen in practice: RFC-2822-style
// feed dates (telltale GMT/UTC suffix) and ISO-8601 timestamps (telltale T
// separator). Anything else is reported unparsed.
func parsePubDate(raw string) (time.Time, bool) {
	if strings.Contains(raw, "GMT") || strings.Contains(raw, "UTC") {
		for _, layout := range []string{time.RFC1123, "Mon, 2 Jan 2006 15:04:05 MST", "2 Jan 2006 15:04:05 MST"} {
			if t, err := time.Parse(layout, raw); err == nil {
				return t, true
			}
		}
	}

	if strings.Contains(raw, "T") {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t, true
		}
		// Offset-less variant: drop a trailing Z or +hh:mm suffix and parse
		// the remainder as a naive timestamp.
		trimmed := strings.TrimSuffix(raw, "Z")
		if idx := strings.Index(trimmed, "+"); idx > 0 {
			trimmed = trimmed[:idx]
		}
		if t, err := time.Parse("2006-01-02T15:04:05", trimmed); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// naive strips zone information, keeping the wall-clock reading.
func naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
