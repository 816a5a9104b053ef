// Package config resolves harvester settings from the environment.
package config

import (
	"github.com/spf13/viper"

	"github.com/qcomwatch/harvester/internal/timeframe"
)

// Config holds the environment-driven settings for one run. Command-line
// flags override these after loading.
type Config struct {
	Timeframe      string
	CustomDays     int
	NewsAPIKey     string
	LogLevel       string
	SourcesFile    string
	PublishersFile string
}

// Load reads the configuration from environment variables, applying
// defaults for anything unset.
func Load() Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SCRAPE_TIMEFRAME", timeframe.DefaultCode)
	v.SetDefault("CUSTOM_DAYS_BACK", 0)
	v.SetDefault("LOG_LEVEL", "info")

	for _, key := range []string{
		"SCRAPE_TIMEFRAME",
		"CUSTOM_DAYS_BACK",
		"NEWS_API_KEY",
		"LOG_LEVEL",
		"SOURCES_FILE",
		"PUBLISHERS_FILE",
	} {
		_ = v.BindEnv(key)
	}

	return Config{
		Timeframe:      v.GetString("SCRAPE_TIMEFRAME"),
		CustomDays:     v.GetInt("CUSTOM_DAYS_BACK"),
		NewsAPIKey:     v.GetString("NEWS_API_KEY"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		SourcesFile:    v.GetString("SOURCES_FILE"),
		PublishersFile: v.GetString("PUBLISHERS_FILE"),
	}
}
