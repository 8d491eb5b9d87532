// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file maintains the singleton bot_stats counter row.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-recipe-bot/internal/domain"
)

// ErrUnknownStatKind is returned when a counter outside the enumerated set
// is requested. Callers that want name-based increments should resolve the
// kind first and decide how to treat unknown names.
var ErrUnknownStatKind = errors.New("unknown stat kind")

// IncrementStat increments the named counter by one, lazily creating the
// singleton row on first use. The create-or-update runs in one transaction;
// the increment itself is a relative SQL update, so concurrent increments
// from separate connections never lose counts.
func IncrementStat(ctx context.Context, db *gorm.DB, kind domain.StatKind) error {
	col, ok := kind.Column()
	if !ok {
		return ErrUnknownStatKind
	}
	now := time.Now().UTC()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stats domain.BotStats
		err := tx.First(&stats).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			stats = domain.BotStats{LastUpdated: now}
			if err := tx.Create(&stats).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		return tx.Model(&domain.BotStats{}).
			Where("id = ?", stats.ID).
			Updates(map[string]any{
				col:            gorm.Expr(col+" + ?", 1),
				"last_updated": now,
			}).Error
	})
}

// GetStats returns the singleton counter row, or nil when no increment has
// ever happened. Absence is not an error: callers report zero counters.
func GetStats(ctx context.Context, db *gorm.DB) (*domain.BotStats, error) {
	var stats domain.BotStats
	err := db.WithContext(ctx).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
