// Package services – StatsService
//
// This file implements the StatsService over the singleton counter row.
// Counter identity is the closed domain.StatKind enum; an unknown kind is a
// logged no-op rather than an error, so a stale caller can never break an
// interaction over bookkeeping.
package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/go-recipe-bot/internal/domain"
)

// StatsRepo defines the repository contract required by StatsService.
type StatsRepo interface {
	// IncrementStat bumps one counter, creating the singleton lazily.
	IncrementStat(ctx context.Context, db *gorm.DB, kind domain.StatKind) error

	// GetStats returns the singleton row, or nil if it never existed.
	GetStats(ctx context.Context, db *gorm.DB) (*domain.BotStats, error)

	// CountUsers returns total and banned user counts.
	CountUsers(ctx context.Context, db *gorm.DB) (total, banned int64, err error)

	// CountFavorites returns the total favorite rows across users.
	CountFavorites(ctx context.Context, db *gorm.DB) (int64, error)
}

// StatsService maintains the aggregate usage counters and assembles the
// read-time snapshot.
type StatsService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the statistics repository used by this service.
	Repo StatsRepo
}

// NewStatsService constructs a StatsService.
func NewStatsService(db *gorm.DB, r StatsRepo) *StatsService {
	return &StatsService{DB: db, Repo: r}
}

// Increment bumps the counter identified by kind. A kind outside the
// enumerated set changes nothing and returns nil.
func (s *StatsService) Increment(ctx context.Context, kind domain.StatKind) error {
	if _, ok := kind.Column(); !ok {
		log.Debug().Str("kind", string(kind)).Msg("stats: ignoring unknown counter kind")
		return nil
	}
	return s.Repo.IncrementStat(ctx, s.DB, kind)
}

// Snapshot returns the current counters together with the derived user and
// favorite totals. When no counter was ever incremented, the named counters
// report zero and last_updated is the snapshot time.
func (s *StatsService) Snapshot(ctx context.Context) (domain.StatsSnapshot, error) {
	var snap domain.StatsSnapshot

	stats, err := s.Repo.GetStats(ctx, s.DB)
	if err != nil {
		return snap, err
	}
	if stats != nil {
		snap.TotalCommands = stats.TotalCommands
		snap.RandomRecipeRequests = stats.RandomRecipeRequests
		snap.IngredientSearches = stats.IngredientSearches
		snap.FavoritesViews = stats.FavoritesViews
		snap.LastUpdated = stats.LastUpdated
	} else {
		snap.LastUpdated = time.Now().UTC()
	}

	total, banned, err := s.Repo.CountUsers(ctx, s.DB)
	if err != nil {
		return snap, err
	}
	snap.TotalUsers = total
	snap.BannedUsers = banned

	favs, err := s.Repo.CountFavorites(ctx, s.DB)
	if err != nil {
		return snap, err
	}
	snap.TotalFavorites = favs

	return snap, nil
}
