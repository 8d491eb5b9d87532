// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Favorite
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - AddFavorite reports an existing (user_id, recipe_id) pair as
//     (false, nil), never as an error. A concurrent insert racing past the
//     transactional existence check is caught by the unique index and also
//     reported as (false, nil).
//   - On DB errors (connectivity, constraint violations other than the
//     favorite uniqueness, etc.), the raw gorm error is propagated.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-recipe-bot/internal/domain"
)

// AddFavorite inserts a favorite for (userID, card.ID) unless the pair
// already exists. The existence check and the insert run in one transaction
// so a concurrent add/remove for the same pair cannot interleave; the unique
// index ux_fav_user_recipe backstops writers racing from other connections.
//
// It returns (true, nil) when a row was inserted and (false, nil) when the
// pair already existed.
func AddFavorite(ctx context.Context, db *gorm.DB, userID int64, card domain.RecipeCard) (bool, error) {
	added := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Favorite{}).
			Where("user_id = ? AND recipe_id = ?", userID, card.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		fav := &domain.Favorite{
			UserID:    userID,
			RecipeID:  card.ID,
			Title:     card.Title,
			Image:     card.Image,
			SourceURL: card.SourceURL,
			CreatedAt: time.Now().UTC(),
		}
		if err := tx.Create(fav).Error; err != nil {
			return err
		}
		added = true
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, err
	}
	return added, nil
}

// RemoveFavorite deletes the favorite identified by (userID, recipeID).
// It returns true iff a matching row existed and was deleted.
func RemoveFavorite(ctx context.Context, db *gorm.DB, userID, recipeID int64) (bool, error) {
	res := db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&domain.Favorite{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// RemoveAllFavorites deletes every favorite owned by userID in a single
// atomic statement and returns the number of rows removed (0 if none).
func RemoveAllFavorites(ctx context.Context, db *gorm.DB, userID int64) (int64, error) {
	res := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&domain.Favorite{})
	return res.RowsAffected, res.Error
}

// ListFavorites returns all favorites owned by userID in storage order
// (oldest first). It returns an empty slice if the user has none.
func ListFavorites(ctx context.Context, db *gorm.DB, userID int64) ([]domain.Favorite, error) {
	var out []domain.Favorite
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&out).Error
	return out, err
}

// CountFavorites returns the total number of favorite rows across all users.
func CountFavorites(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.Favorite{}).Count(&total).Error
	return total, err
}

// isUniqueViolation reports whether err looks like a SQLite unique
// constraint failure. The glebarez driver surfaces these as plain errors
// carrying the standard SQLite message, so string matching is the only
// portable detection.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
