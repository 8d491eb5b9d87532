// Command bot runs the recipe Telegram bot: it wires configuration, the
// SQLite stores, the cache-fronted catalog client, and the conversational
// layer, and serves the read-only ops HTTP API alongside long polling.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/go-recipe-bot/internal/bot"
	"github.com/tbourn/go-recipe-bot/internal/cache"
	"github.com/tbourn/go-recipe-bot/internal/config"
	"github.com/tbourn/go-recipe-bot/internal/domain"
	httpapi "github.com/tbourn/go-recipe-bot/internal/http"
	"github.com/tbourn/go-recipe-bot/internal/repo"
	"github.com/tbourn/go-recipe-bot/internal/services"
	"github.com/tbourn/go-recipe-bot/internal/spoonacular"
	"github.com/tbourn/go-recipe-bot/internal/sysutil"
	"github.com/tbourn/go-recipe-bot/internal/translate"
)

// favoriteRepoShim adapts the repository free functions to the
// services.FavoriteRepo interface expected by the FavoriteService. This
// keeps services decoupled from the concrete repo package while reusing
// existing functions.
type favoriteRepoShim struct{}

func (favoriteRepoShim) AddFavorite(ctx context.Context, db *gorm.DB, userID int64, card domain.RecipeCard) (bool, error) {
	return repo.AddFavorite(ctx, db, userID, card)
}

func (favoriteRepoShim) RemoveFavorite(ctx context.Context, db *gorm.DB, userID, recipeID int64) (bool, error) {
	return repo.RemoveFavorite(ctx, db, userID, recipeID)
}

func (favoriteRepoShim) RemoveAllFavorites(ctx context.Context, db *gorm.DB, userID int64) (int64, error) {
	return repo.RemoveAllFavorites(ctx, db, userID)
}

func (favoriteRepoShim) ListFavorites(ctx context.Context, db *gorm.DB, userID int64) ([]domain.Favorite, error) {
	return repo.ListFavorites(ctx, db, userID)
}

// userRepoShim adapts the user repository functions to services.UserRepo.
type userRepoShim struct{}

func (userRepoShim) UpsertUser(ctx context.Context, db *gorm.DB, userID int64, profile domain.UserProfile) error {
	return repo.UpsertUser(ctx, db, userID, profile)
}

func (userRepoShim) IsBanned(ctx context.Context, db *gorm.DB, userID int64) (bool, error) {
	return repo.IsBanned(ctx, db, userID)
}

func (userRepoShim) SetBanned(ctx context.Context, db *gorm.DB, userID int64, banned bool) (bool, error) {
	return repo.SetBanned(ctx, db, userID, banned)
}

func (userRepoShim) ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error) {
	return repo.ListUsers(ctx, db)
}

// statsRepoShim adapts the statistics repository functions to
// services.StatsRepo.
type statsRepoShim struct{}

func (statsRepoShim) IncrementStat(ctx context.Context, db *gorm.DB, kind domain.StatKind) error {
	return repo.IncrementStat(ctx, db, kind)
}

func (statsRepoShim) GetStats(ctx context.Context, db *gorm.DB) (*domain.BotStats, error) {
	return repo.GetStats(ctx, db)
}

func (statsRepoShim) CountUsers(ctx context.Context, db *gorm.DB) (total, banned int64, err error) {
	return repo.CountUsers(ctx, db)
}

func (statsRepoShim) CountFavorites(ctx context.Context, db *gorm.DB) (int64, error) {
	return repo.CountFavorites(ctx, db)
}

func main() {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database failed")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	responseCache, err := cache.New(cfg.CacheDir, cfg.CacheTTL)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.CacheDir).Msg("cache init failed")
	}

	catalog := spoonacular.NewClient(cfg.SpoonacularAPIKey, responseCache, translate.NewGoogleTranslator())

	recipes := services.NewRecipeService(catalog)
	favorites := services.NewFavoriteService(db, favoriteRepoShim{})
	users := services.NewUserService(db, userRepoShim{})
	stats := services.NewStatsService(db, statsRepoShim{})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpapi.NewRouter(cfg, stats),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("ops http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("ops http server failed")
			stop()
		}
	}()

	tb := bot.New(cfg, recipes, favorites, users, stats)
	if err := tb.Run(ctx); err != nil {
		log.Error().Err(err).Msg("telegram bot failed")
	}

	// Long polling has returned; drain the ops server before exit.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("ops http server shutdown failed")
	}
	log.Info().Msg("shutdown complete")
}
