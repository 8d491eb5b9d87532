package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-recipe-bot/internal/config"
	"github.com/tbourn/go-recipe-bot/internal/domain"
	"github.com/tbourn/go-recipe-bot/internal/repo"
	"github.com/tbourn/go-recipe-bot/internal/services"
)

type statsShim struct{}

func (statsShim) IncrementStat(ctx context.Context, db *gorm.DB, kind domain.StatKind) error {
	return repo.IncrementStat(ctx, db, kind)
}

func (statsShim) GetStats(ctx context.Context, db *gorm.DB) (*domain.BotStats, error) {
	return repo.GetStats(ctx, db)
}

func (statsShim) CountUsers(ctx context.Context, db *gorm.DB) (total, banned int64, err error) {
	return repo.CountUsers(ctx, db)
}

func (statsShim) CountFavorites(ctx context.Context, db *gorm.DB) (int64, error) {
	return repo.CountFavorites(ctx, db)
}

func newRouterForTest(t *testing.T) http.Handler {
	t.Helper()

	dsn := fmt.Sprintf("file:router_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := db.AutoMigrate(&domain.User{}, &domain.Favorite{}, &domain.BotStats{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	if err := repo.IncrementStat(context.Background(), db, domain.StatTotalCommands); err != nil {
		t.Fatalf("seed counter: %v", err)
	}
	if err := repo.UpsertUser(context.Background(), db, 1, domain.UserProfile{Username: "u"}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	cfg := config.Config{GinMode: "test", APIBasePath: "/api/v1"}
	return NewRouter(cfg, services.NewStatsService(db, statsShim{}))
}

func TestRouter_Healthz(t *testing.T) {
	r := newRouterForTest(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("healthz status = %d", w.Code)
	}
}

func TestRouter_Metrics(t *testing.T) {
	r := newRouterForTest(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", w.Code)
	}
}

func TestRouter_Stats(t *testing.T) {
	r := newRouterForTest(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("stats status = %d body=%s", w.Code, w.Body.String())
	}

	var snap domain.StatsSnapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.TotalCommands != 1 {
		t.Fatalf("expected 1 command, got %d", snap.TotalCommands)
	}
	if snap.TotalUsers != 1 {
		t.Fatalf("expected 1 user, got %d", snap.TotalUsers)
	}
}

func TestRouter_StatsUnavailableOnStoreFailure(t *testing.T) {
	// A handle with no migrated tables makes the snapshot fail.
	dsn := fmt.Sprintf("file:router_bad_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	cfg := config.Config{GinMode: "test", APIBasePath: "/api/v1"}
	r := NewRouter(cfg, services.NewStatsService(db, statsShim{}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	r := newRouterForTest(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
