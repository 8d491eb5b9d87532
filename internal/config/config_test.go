package config

import (
	"reflect"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("SPOONACULAR_API_KEY", "spoon-key")
}

// --- MustLoad ---

func TestMustLoad_PanicsOnInvalidConfig(t *testing.T) {
	t.Setenv("BOT_TOKEN", "") // required
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("MustLoad should panic on invalid config")
		}
	}()
	_ = MustLoad()
}

// --- Load success + normalization + parsing ---

func TestLoad_Success_DefaultsAndOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("ADMIN_IDS", " 100 , nope , 200 ") // bad entries skipped
	t.Setenv("CACHE_TTL", "30m")
	t.Setenv("LOG_LEVEL", "warning") // will normalize to "warn"
	t.Setenv("LOG_PRETTY", "yes")
	t.Setenv("GIN_MODE", "weird")        // will normalize to "release"
	t.Setenv("API_BASE_PATH", "api/v2/") // no leading slash + trailing slash -> "/api/v2"
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.com , , http://b ")
	t.Setenv("READ_TIMEOUT", "2s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.BotToken != "123:abc" || cfg.SpoonacularAPIKey != "spoon-key" {
		t.Fatalf("credentials unexpected: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.AdminIDs, []int64{100, 200}) {
		t.Fatalf("admin ids unexpected: %v", cfg.AdminIDs)
	}
	if cfg.CacheTTL != 30*time.Minute {
		t.Fatalf("cache ttl unexpected: %v", cfg.CacheTTL)
	}
	if cfg.LogLevel != "warn" || !cfg.LogPretty {
		t.Fatalf("logging fields unexpected: %+v", cfg)
	}
	if cfg.GinMode != "release" || cfg.APIBasePath != "/api/v2" {
		t.Fatalf("http fields unexpected: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.CORSAllowedOrigins, []string{"https://a.com", "http://b"}) {
		t.Fatalf("cors origins unexpected: %v", cfg.CORSAllowedOrigins)
	}
	if cfg.ReadTimeout != 2*time.Second {
		t.Fatalf("read timeout unexpected: %v", cfg.ReadTimeout)
	}
	// untouched defaults
	if cfg.DBPath != "recipes.db" || cfg.CacheDir != "cache" || cfg.Port != "8080" {
		t.Fatalf("defaults unexpected: %+v", cfg)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.CacheTTL != time.Hour {
		t.Fatalf("expected 1h default cache ttl, got %v", cfg.CacheTTL)
	}
	if cfg.LogLevel != "info" || cfg.GinMode != "release" || cfg.APIBasePath != "/api/v1" {
		t.Fatalf("defaults unexpected: %+v", cfg)
	}
	if len(cfg.AdminIDs) != 0 {
		t.Fatalf("expected no admins by default, got %v", cfg.AdminIDs)
	}
}

// --- validation failures ---

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"missing bot token", map[string]string{"BOT_TOKEN": " "}},
		{"missing api key", map[string]string{"SPOONACULAR_API_KEY": " "}},
		{"bad log level", map[string]string{"LOG_LEVEL": "verbose"}},
		{"zero cache ttl", map[string]string{"CACHE_TTL": "-1s"}},
		{"blank db path", map[string]string{"DB_PATH": " "}},
		{"blank cache dir", map[string]string{"CACHE_DIR": " "}},
		{"negative timeout", map[string]string{"WRITE_TIMEOUT": "-1s"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected Load() error")
			}
		})
	}
}

// --- IsAdmin ---

func TestIsAdmin(t *testing.T) {
	cfg := Config{AdminIDs: []int64{1, 2}}
	if !cfg.IsAdmin(1) || !cfg.IsAdmin(2) {
		t.Fatalf("configured admins must be recognized")
	}
	if cfg.IsAdmin(3) {
		t.Fatalf("unlisted id must not be admin")
	}
	if (Config{}).IsAdmin(1) {
		t.Fatalf("empty admin list admits nobody")
	}
}
