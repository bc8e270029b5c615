package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/weekendbets/internal/domain/standing"
	"github.com/riskibarqy/weekendbets/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	StoreFile     = "file"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
	StoreMemory   = "memory"

	ReferenceDocument = "document"
	ReferencePostgres = "postgres"
)

// Window is a date range relative to the run day, both ends inclusive.
type Window struct {
	StartOffset int
	EndOffset   int
}

func (w Window) String() string {
	return fmt.Sprintf("%d:%d", w.StartOffset, w.EndOffset)
}

// Config stores runtime configuration for the pipeline.
type Config struct {
	AppEnv         string `validate:"oneof=dev stage prod"`
	ServiceName    string `validate:"required"`
	ServiceVersion string
	LogLevel       logging.Level
	LogFormat      logging.Format

	Season        string `validate:"required,numeric"`
	Bookmaker     string `validate:"required,numeric"`
	Bet           string `validate:"required,numeric"`
	Timezone      string `validate:"required,timezone"`
	Location      *time.Location
	AnchorWeekday time.Weekday
	OddsWindow    Window
	FixtureWindow Window
	EnrichWindow  Window
	DateWorkers   int    `validate:"min=1,max=16"`
	Schedule      string `validate:"required,cron"`

	StoreBackend            string `validate:"oneof=file sqlite postgres redis memory"`
	StoreDir                string `validate:"required_if=StoreBackend file"`
	SQLitePath              string `validate:"required_if=StoreBackend sqlite"`
	DBURL                   string `validate:"required_if=StoreBackend postgres,required_if=ReferenceBackend postgres"`
	DBDisablePreparedBinary bool
	RedisAddr               string `validate:"required_if=StoreBackend redis"`
	RedisPassword           string
	RedisDB                 int `validate:"min=0"`
	RedisKeyPrefix          string

	ReferenceBackend string `validate:"oneof=document postgres"`
	TeamsKey         string `validate:"required"`
	LeaguesKey       string `validate:"required"`
	CacheEnabled     bool
	CacheTTL         time.Duration

	FeedBaseURL               string `validate:"required,url"`
	FeedAPIKey                string
	FeedAPIHost               string
	FeedTimeout               time.Duration `validate:"gt=0"`
	FeedMaxRetries            int           `validate:"min=0,max=10"`
	FeedCircuitEnabled        bool
	FeedCircuitFailureCount   int
	FeedCircuitOpenTimeout    time.Duration
	FeedCircuitHalfOpenMaxReq int

	UptraceEnabled             bool
	UptraceDSN                 string `validate:"required_if=UptraceEnabled true"`
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string `validate:"required_if=PyroscopeEnabled true"`
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

// Load reads the environment, using PIPELINE_CONFIG_FILE as fallback values when set.
func Load() (Config, error) {
	return LoadWithFile(os.Getenv("PIPELINE_CONFIG_FILE"))
}

// LoadWithFile reads the environment on top of the YAML file at path. An empty path skips the file.
func LoadWithFile(path string) (Config, error) {
	src := source{}
	if strings.TrimSpace(path) != "" {
		file, err := readFile(path)
		if err != nil {
			return Config{}, err
		}
		src.file = file.fallbacks()
	}

	appEnv, err := parseAppEnv(src.get("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:         appEnv,
		ServiceName:    src.get("SERVICE_NAME", "weekendbets-pipeline"),
		ServiceVersion: src.get("SERVICE_VERSION", "dev"),
		LogLevel:       logging.ParseLevel(src.get("APP_LOG_LEVEL", "info")),
		LogFormat:      logging.ParseFormat(src.get("APP_LOG_FORMAT", "json")),

		Season:    strings.TrimSpace(src.get("PIPELINE_SEASON", "2024")),
		Bookmaker: strings.TrimSpace(src.get("PIPELINE_BOOKMAKER", "8")),
		Bet:       strings.TrimSpace(src.get("PIPELINE_BET", "1")),
		Timezone:  strings.TrimSpace(src.get("PIPELINE_TIMEZONE", "UTC")),
		Schedule:  strings.TrimSpace(src.get("PIPELINE_SCHEDULE", "0 6 * * *")),

		StoreBackend:   strings.ToLower(strings.TrimSpace(src.get("STORE_BACKEND", StoreFile))),
		StoreDir:       strings.TrimSpace(src.get("STORE_DIR", "./data")),
		SQLitePath:     strings.TrimSpace(src.get("SQLITE_PATH", "")),
		DBURL:          strings.TrimSpace(src.get("DB_URL", "")),
		RedisAddr:      strings.TrimSpace(src.get("REDIS_ADDR", "")),
		RedisPassword:  src.get("REDIS_PASSWORD", ""),
		RedisKeyPrefix: src.get("REDIS_KEY_PREFIX", "weekendbets:"),

		ReferenceBackend: strings.ToLower(strings.TrimSpace(src.get("REFERENCE_BACKEND", ReferenceDocument))),
		TeamsKey:         strings.TrimSpace(src.get("TEAMS_KEY", "json/teams/all_teams.json")),
		LeaguesKey:       strings.TrimSpace(src.get("LEAGUES_KEY", "leagues.csv")),

		FeedBaseURL: strings.TrimSpace(src.get("FEED_BASE_URL", "https://v3.football.api-sports.io")),
		FeedAPIKey:  strings.TrimSpace(src.get("FEED_API_KEY", "")),
		FeedAPIHost: strings.TrimSpace(src.get("FEED_API_HOST", "")),

		UptraceDSN:                 strings.TrimSpace(src.get("UPTRACE_DSN", "")),
		PyroscopeServerAddress:     strings.TrimSpace(src.get("PYROSCOPE_SERVER_ADDRESS", "")),
		PyroscopeAppName:           strings.TrimSpace(src.get("PYROSCOPE_APP_NAME", "weekendbets.pipeline")),
		PyroscopeAuthToken:         src.get("PYROSCOPE_AUTH_TOKEN", ""),
		PyroscopeBasicAuthUser:     src.get("PYROSCOPE_BASIC_AUTH_USER", ""),
		PyroscopeBasicAuthPassword: src.get("PYROSCOPE_BASIC_AUTH_PASSWORD", ""),
	}

	if cfg.Location, err = time.LoadLocation(cfg.Timezone); err != nil {
		return Config{}, fmt.Errorf("parse PIPELINE_TIMEZONE: %w", err)
	}
	if cfg.AnchorWeekday, err = standing.ParseWeekday(src.get("PIPELINE_ANCHOR_WEEKDAY", "thursday")); err != nil {
		return Config{}, fmt.Errorf("parse PIPELINE_ANCHOR_WEEKDAY: %w", err)
	}
	if cfg.OddsWindow, err = parseWindow(src.get("ODDS_WINDOW", "-2:8")); err != nil {
		return Config{}, fmt.Errorf("parse ODDS_WINDOW: %w", err)
	}
	if cfg.FixtureWindow, err = parseWindow(src.get("FIXTURES_WINDOW", "-2:8")); err != nil {
		return Config{}, fmt.Errorf("parse FIXTURES_WINDOW: %w", err)
	}
	if cfg.EnrichWindow, err = parseWindow(src.get("ENRICH_WINDOW", "-2:8")); err != nil {
		return Config{}, fmt.Errorf("parse ENRICH_WINDOW: %w", err)
	}
	if cfg.DateWorkers, err = src.getInt("PIPELINE_DATE_WORKERS", 1); err != nil {
		return Config{}, fmt.Errorf("parse PIPELINE_DATE_WORKERS: %w", err)
	}

	if cfg.DBDisablePreparedBinary, err = src.getBool("DB_DISABLE_PREPARED_BINARY_RESULT", false); err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	if cfg.RedisDB, err = src.getInt("REDIS_DB", 0); err != nil {
		return Config{}, fmt.Errorf("parse REDIS_DB: %w", err)
	}
	if cfg.CacheEnabled, err = src.getBool("CACHE_ENABLED", true); err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	if cfg.CacheTTL, err = src.getDuration("CACHE_TTL", 6*time.Hour); err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}

	if cfg.FeedTimeout, err = src.getDuration("FEED_TIMEOUT", 20*time.Second); err != nil {
		return Config{}, fmt.Errorf("parse FEED_TIMEOUT: %w", err)
	}
	if cfg.FeedMaxRetries, err = src.getInt("FEED_MAX_RETRIES", 2); err != nil {
		return Config{}, fmt.Errorf("parse FEED_MAX_RETRIES: %w", err)
	}
	if cfg.FeedCircuitEnabled, err = src.getBool("FEED_CIRCUIT_ENABLED", true); err != nil {
		return Config{}, fmt.Errorf("parse FEED_CIRCUIT_ENABLED: %w", err)
	}
	if cfg.FeedCircuitFailureCount, err = src.getInt("FEED_CIRCUIT_FAILURE_COUNT", 5); err != nil {
		return Config{}, fmt.Errorf("parse FEED_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if cfg.FeedCircuitOpenTimeout, err = src.getDuration("FEED_CIRCUIT_OPEN_TIMEOUT", 30*time.Second); err != nil {
		return Config{}, fmt.Errorf("parse FEED_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if cfg.FeedCircuitHalfOpenMaxReq, err = src.getInt("FEED_CIRCUIT_HALF_OPEN_MAX_REQUESTS", 1); err != nil {
		return Config{}, fmt.Errorf("parse FEED_CIRCUIT_HALF_OPEN_MAX_REQUESTS: %w", err)
	}

	if cfg.UptraceEnabled, err = src.getBool("UPTRACE_ENABLED", false); err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	if cfg.PyroscopeEnabled, err = src.getBool("PYROSCOPE_ENABLED", false); err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	if cfg.PyroscopeUploadRate, err = src.getDuration("PYROSCOPE_UPLOAD_RATE", 15*time.Second); err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

type source struct {
	file map[string]string
}

func (s source) get(key, fallback string) string {
	if value := os.Getenv(key); strings.TrimSpace(value) != "" {
		return value
	}
	if value := s.file[key]; strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func (s source) getInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(s.get(key, ""))
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}

func (s source) getBool(key string, fallback bool) (bool, error) {
	value := strings.TrimSpace(s.get(key, ""))
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseBool(value)
}

func (s source) getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(s.get(key, ""))
	if value == "" {
		return fallback, nil
	}
	return time.ParseDuration(value)
}

func parseWindow(raw string) (Window, error) {
	parts := strings.SplitN(strings.TrimSpace(raw), ":", 2)
	if len(parts) != 2 {
		return Window{}, fmt.Errorf("invalid window %q, expected start:end day offsets", raw)
	}
	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Window{}, fmt.Errorf("invalid window start in %q: %w", raw, err)
	}
	end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Window{}, fmt.Errorf("invalid window end in %q: %w", raw, err)
	}
	if end < start {
		return Window{}, fmt.Errorf("window end must be >= start in %q", raw)
	}
	return Window{StartOffset: start, EndOffset: end}, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
