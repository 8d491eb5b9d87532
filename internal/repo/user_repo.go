// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User
// registry.
//
// Error semantics:
//   - IsBanned treats an unknown user as not banned rather than an error.
//   - SetBanned reports an unknown user as (false, nil); it never creates
//     a registry row as a side effect of a ban.
//   - On DB errors the raw gorm error is propagated.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-recipe-bot/internal/domain"
)

// UpsertUser creates the registry row for userID if absent, otherwise
// refreshes the profile fields and last_activity. first_seen is written once
// on creation and never touched again. The read-then-write runs in a single
// transaction so concurrent upserts for the same user cannot interleave.
func UpsertUser(ctx context.Context, db *gorm.DB, userID int64, profile domain.UserProfile) error {
	now := time.Now().UTC()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u domain.User
		err := tx.Where("user_id = ?", userID).First(&u).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			u = domain.User{
				UserID:       userID,
				Username:     profile.Username,
				FirstName:    profile.FirstName,
				LastName:     profile.LastName,
				FirstSeen:    now,
				LastActivity: now,
			}
			return tx.Create(&u).Error
		case err != nil:
			return err
		}
		return tx.Model(&domain.User{}).
			Where("user_id = ?", userID).
			Updates(map[string]any{
				"username":      profile.Username,
				"first_name":    profile.FirstName,
				"last_name":     profile.LastName,
				"last_activity": now,
			}).Error
	})
}

// IsBanned reports whether userID is banned. Unknown users are not banned.
func IsBanned(ctx context.Context, db *gorm.DB, userID int64) (bool, error) {
	var u domain.User
	err := db.WithContext(ctx).
		Select("is_banned").
		Where("user_id = ?", userID).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return u.IsBanned, nil
}

// SetBanned updates the ban flag for an existing user. It returns true iff
// a registry row was updated; an unknown userID yields (false, nil) and
// does not create a record.
func SetBanned(ctx context.Context, db *gorm.DB, userID int64, banned bool) (bool, error) {
	res := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("user_id = ?", userID).
		Update("is_banned", banned)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListUsers returns every registry row, most recently active first.
func ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error) {
	var out []domain.User
	err := db.WithContext(ctx).
		Order("last_activity desc").
		Find(&out).Error
	return out, err
}

// CountUsers returns the total number of users and how many of them are
// banned, for the derived portion of the statistics snapshot.
func CountUsers(ctx context.Context, db *gorm.DB) (total, banned int64, err error) {
	if err = db.WithContext(ctx).Model(&domain.User{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err = db.WithContext(ctx).Model(&domain.User{}).
		Where("is_banned = ?", true).
		Count(&banned).Error; err != nil {
		return 0, 0, err
	}
	return total, banned, nil
}
