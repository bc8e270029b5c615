package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the optional YAML config file. Environment variables win over it.
type fileConfig struct {
	App struct {
		Env       string `yaml:"env"`
		LogLevel  string `yaml:"log_level"`
		LogFormat string `yaml:"log_format"`
	} `yaml:"app"`
	Pipeline struct {
		Season        string `yaml:"season"`
		Bookmaker     string `yaml:"bookmaker"`
		Bet           string `yaml:"bet"`
		Timezone      string `yaml:"timezone"`
		AnchorWeekday string `yaml:"anchor_weekday"`
		DateWorkers   int    `yaml:"date_workers"`
		Schedule      string `yaml:"schedule"`
		Windows       struct {
			Odds     string `yaml:"odds"`
			Fixtures string `yaml:"fixtures"`
			Enrich   string `yaml:"enrich"`
		} `yaml:"windows"`
	} `yaml:"pipeline"`
	Store struct {
		Backend    string `yaml:"backend"`
		Dir        string `yaml:"dir"`
		SQLitePath string `yaml:"sqlite_path"`
		DBURL      string `yaml:"db_url"`
		Redis      struct {
			Addr      string `yaml:"addr"`
			DB        int    `yaml:"db"`
			KeyPrefix string `yaml:"key_prefix"`
		} `yaml:"redis"`
	} `yaml:"store"`
	Reference struct {
		Backend    string `yaml:"backend"`
		TeamsKey   string `yaml:"teams_key"`
		LeaguesKey string `yaml:"leagues_key"`
		CacheTTL   string `yaml:"cache_ttl"`
	} `yaml:"reference"`
	Feed struct {
		BaseURL    string `yaml:"base_url"`
		APIHost    string `yaml:"api_host"`
		Timeout    string `yaml:"timeout"`
		MaxRetries *int   `yaml:"max_retries"`
	} `yaml:"feed"`
}

func readFile(path string) (fileConfig, error) {
	var out fileConfig
	raw, err := os.ReadFile(path)
	if err != nil {
		return out, fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return out, nil
}

// fallbacks flattens the file into the env keys it stands in for.
func (f fileConfig) fallbacks() map[string]string {
	out := map[string]string{
		"APP_ENV":                 f.App.Env,
		"APP_LOG_LEVEL":           f.App.LogLevel,
		"APP_LOG_FORMAT":          f.App.LogFormat,
		"PIPELINE_SEASON":         f.Pipeline.Season,
		"PIPELINE_BOOKMAKER":      f.Pipeline.Bookmaker,
		"PIPELINE_BET":            f.Pipeline.Bet,
		"PIPELINE_TIMEZONE":       f.Pipeline.Timezone,
		"PIPELINE_ANCHOR_WEEKDAY": f.Pipeline.AnchorWeekday,
		"PIPELINE_SCHEDULE":       f.Pipeline.Schedule,
		"ODDS_WINDOW":             f.Pipeline.Windows.Odds,
		"FIXTURES_WINDOW":         f.Pipeline.Windows.Fixtures,
		"ENRICH_WINDOW":           f.Pipeline.Windows.Enrich,
		"STORE_BACKEND":           f.Store.Backend,
		"STORE_DIR":               f.Store.Dir,
		"SQLITE_PATH":             f.Store.SQLitePath,
		"DB_URL":                  f.Store.DBURL,
		"REDIS_ADDR":              f.Store.Redis.Addr,
		"REDIS_KEY_PREFIX":        f.Store.Redis.KeyPrefix,
		"REFERENCE_BACKEND":       f.Reference.Backend,
		"TEAMS_KEY":               f.Reference.TeamsKey,
		"LEAGUES_KEY":             f.Reference.LeaguesKey,
		"CACHE_TTL":               f.Reference.CacheTTL,
		"FEED_BASE_URL":           f.Feed.BaseURL,
		"FEED_API_HOST":           f.Feed.APIHost,
		"FEED_TIMEOUT":            f.Feed.Timeout,
	}
	if f.Pipeline.DateWorkers > 0 {
		out["PIPELINE_DATE_WORKERS"] = strconv.Itoa(f.Pipeline.DateWorkers)
	}
	if f.Store.Redis.DB > 0 {
		out["REDIS_DB"] = strconv.Itoa(f.Store.Redis.DB)
	}
	if f.Feed.MaxRetries != nil {
		out["FEED_MAX_RETRIES"] = strconv.Itoa(*f.Feed.MaxRetries)
	}
	return out
}
