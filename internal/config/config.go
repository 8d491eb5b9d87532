// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes the bot
// credentials, catalog API key, admin list, storage paths, cache TTL, and
// ops server settings. Components receive the resulting struct explicitly;
// nothing reads the environment after startup.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values for the application.
type Config struct {
	// Telegram / catalog credentials
	BotToken          string  // BOT_TOKEN
	SpoonacularAPIKey string  // SPOONACULAR_API_KEY
	AdminIDs          []int64 // ADMIN_IDS, comma separated Telegram user ids

	// Storage
	DBPath   string        // SQLite path
	CacheDir string        // response cache directory
	CacheTTL time.Duration // response cache entry lifetime

	// Logging
	LogLevel  string // debug|info|warn|error|fatal|panic
	LogPretty bool   // pretty console logs in dev

	// Ops HTTP server
	Port               string
	GinMode            string // debug|release|test
	APIBasePath        string
	CORSAllowedOrigins []string
	ReadTimeout        time.Duration
	ReadHeaderTimeout  time.Duration
	WriteTimeout       time.Duration
	IdleTimeout        time.Duration
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		BotToken:          getenv("BOT_TOKEN", ""),
		SpoonacularAPIKey: getenv("SPOONACULAR_API_KEY", ""),
		AdminIDs:          splitIDs(getenv("ADMIN_IDS", "")),

		DBPath:   getenv("DB_PATH", "recipes.db"),
		CacheDir: getenv("CACHE_DIR", "cache"),
		CacheTTL: getdur("CACHE_TTL", time.Hour),

		LogLevel:  strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty: getbool("LOG_PRETTY", false),

		Port:               getenv("PORT", "8080"),
		GinMode:            strings.ToLower(getenv("GIN_MODE", "release")),
		APIBasePath:        normalizeBasePath(getenv("API_BASE_PATH", "/api/v1")),
		CORSAllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		ReadTimeout:        getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout:  getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:       getdur("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:        getdur("IDLE_TIMEOUT", 60*time.Second),
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.BotToken) == "" {
		return cfg, errors.New("BOT_TOKEN must not be empty")
	}
	if strings.TrimSpace(cfg.SpoonacularAPIKey) == "" {
		return cfg, errors.New("SPOONACULAR_API_KEY must not be empty")
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return cfg, errors.New("DB_PATH must not be empty")
	}
	if strings.TrimSpace(cfg.CacheDir) == "" {
		return cfg, errors.New("CACHE_DIR must not be empty")
	}
	if cfg.CacheTTL <= 0 {
		return cfg, errors.New("CACHE_TTL must be > 0")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}

	return cfg, nil
}

// IsAdmin reports whether the Telegram user id is in the configured admin
// list.
func (c Config) IsAdmin(userID int64) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// splitIDs parses a comma separated list of numeric ids, skipping anything
// that does not parse.
func splitIDs(s string) []int64 {
	var out []int64
	for _, p := range splitCSV(s) {
		if id, err := strconv.ParseInt(p, 10, 64); err == nil {
			out = append(out, id)
		}
	}
	return out
}

// normalizeBasePath ensures leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	return p
}
