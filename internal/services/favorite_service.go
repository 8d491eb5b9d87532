// Package services – FavoriteService
//
// This file implements the FavoriteService, which manages a user's saved
// recipes. It validates recipe input before writing and delegates the
// uniqueness invariant to the repository, which enforces it transactionally.
package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-recipe-bot/internal/domain"
)

// FavoriteRepo defines the repository contract required by FavoriteService.
type FavoriteRepo interface {
	// AddFavorite inserts the pair unless it exists; (false, nil) on duplicate.
	AddFavorite(ctx context.Context, db *gorm.DB, userID int64, card domain.RecipeCard) (bool, error)

	// RemoveFavorite deletes one favorite; true iff a row was deleted.
	RemoveFavorite(ctx context.Context, db *gorm.DB, userID, recipeID int64) (bool, error)

	// RemoveAllFavorites deletes every favorite of the user atomically.
	RemoveAllFavorites(ctx context.Context, db *gorm.DB, userID int64) (int64, error)

	// ListFavorites returns the user's favorites in storage order.
	ListFavorites(ctx context.Context, db *gorm.DB, userID int64) ([]domain.Favorite, error)
}

// FavoriteService provides save/remove/list operations over a user's
// favorite recipes.
type FavoriteService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the favorites repository used by this service.
	Repo FavoriteRepo
}

// NewFavoriteService constructs a FavoriteService.
func NewFavoriteService(db *gorm.DB, r FavoriteRepo) *FavoriteService {
	return &FavoriteService{DB: db, Repo: r}
}

// Save stores card as a favorite of userID. It returns (false, nil) when
// the recipe is already saved, and a validation error when the card lacks
// an id or a non-empty title.
func (s *FavoriteService) Save(ctx context.Context, userID int64, card domain.RecipeCard) (bool, error) {
	if card.ID == 0 {
		return false, ErrMissingRecipeID
	}
	if strings.TrimSpace(card.Title) == "" {
		return false, ErrMissingRecipeTitle
	}
	card.Title = strings.TrimSpace(card.Title)
	return s.Repo.AddFavorite(ctx, s.DB, userID, card)
}

// Remove deletes a single favorite; true iff it existed.
func (s *FavoriteService) Remove(ctx context.Context, userID, recipeID int64) (bool, error) {
	return s.Repo.RemoveFavorite(ctx, s.DB, userID, recipeID)
}

// RemoveAll deletes every favorite of the user and returns how many were
// removed. The whole batch is atomic: either all rows go or none do.
func (s *FavoriteService) RemoveAll(ctx context.Context, userID int64) (int64, error) {
	return s.Repo.RemoveAllFavorites(ctx, s.DB, userID)
}

// List returns the user's favorites in storage order. Display layers cap
// rendering at the first 10.
func (s *FavoriteService) List(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	return s.Repo.ListFavorites(ctx, s.DB, userID)
}
