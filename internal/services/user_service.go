// Package services – UserService
//
// This file implements the UserService, the registry of every account the
// bot has interacted with plus the ban flag gating further interaction.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-recipe-bot/internal/domain"
)

// UserRepo defines the repository contract required by UserService.
type UserRepo interface {
	// UpsertUser creates or refreshes the registry row for userID.
	UpsertUser(ctx context.Context, db *gorm.DB, userID int64, profile domain.UserProfile) error

	// IsBanned reports the ban flag; unknown users are not banned.
	IsBanned(ctx context.Context, db *gorm.DB, userID int64) (bool, error)

	// SetBanned flips the ban flag; (false, nil) for unknown users.
	SetBanned(ctx context.Context, db *gorm.DB, userID int64, banned bool) (bool, error)

	// ListUsers returns every registry row.
	ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error)
}

// UserService tracks users and administers the ban flag.
type UserService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the user repository used by this service.
	Repo UserRepo
}

// NewUserService constructs a UserService.
func NewUserService(db *gorm.DB, r UserRepo) *UserService {
	return &UserService{DB: db, Repo: r}
}

// Track upserts the registry row for an observed interaction: creation sets
// first_seen, every call refreshes the profile and last_activity.
func (s *UserService) Track(ctx context.Context, userID int64, profile domain.UserProfile) error {
	return s.Repo.UpsertUser(ctx, s.DB, userID, profile)
}

// IsBanned reports whether the user is banned; unknown users are not.
func (s *UserService) IsBanned(ctx context.Context, userID int64) (bool, error) {
	return s.Repo.IsBanned(ctx, s.DB, userID)
}

// SetBanned updates the ban flag of an existing user. It returns true iff a
// record existed and was updated; it never creates one.
func (s *UserService) SetBanned(ctx context.Context, userID int64, banned bool) (bool, error) {
	return s.Repo.SetBanned(ctx, s.DB, userID, banned)
}

// List returns every known user, most recently active first.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.Repo.ListUsers(ctx, s.DB)
}
