// Package services – RecipeService
//
// This file implements the RecipeService, the conversational layer's entry
// point into the recipe catalog. It is deliberately thin: the cache-first
// fetch policy and the error-to-absent conversion live in the data source,
// and this service only guards input and keeps handlers decoupled from the
// concrete client.
package services

import (
	"context"
	"strings"

	"github.com/tbourn/go-recipe-bot/internal/spoonacular"
)

// RecipeSource is the catalog contract required by RecipeService. Both
// operations absorb upstream failures and report them as absent/empty.
type RecipeSource interface {
	GetRandomRecipe(ctx context.Context, diet string) *spoonacular.Recipe
	SearchByIngredients(ctx context.Context, ingredient string) []spoonacular.Recipe
}

// RecipeService exposes the two catalog operations to the conversational
// layer.
type RecipeService struct {
	// Source is the recipe data source (cache-fronted API client).
	Source RecipeSource
}

// NewRecipeService constructs a RecipeService.
func NewRecipeService(src RecipeSource) *RecipeService {
	return &RecipeService{Source: src}
}

// Random returns one random recipe, optionally filtered by diet, or nil
// when nothing could be found or fetched.
func (s *RecipeService) Random(ctx context.Context, diet string) *spoonacular.Recipe {
	return s.Source.GetRandomRecipe(ctx, strings.TrimSpace(diet))
}

// SearchByIngredient returns recipes matching the ingredient, sorted by
// used-ingredient count descending. A blank ingredient short-circuits to an
// empty result without touching the catalog.
func (s *RecipeService) SearchByIngredient(ctx context.Context, ingredient string) []spoonacular.Recipe {
	if strings.TrimSpace(ingredient) == "" {
		return nil
	}
	return s.Source.SearchByIngredients(ctx, ingredient)
}
