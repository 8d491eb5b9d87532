// Package services defines the business logic for recipes, favorites, the
// user registry, and statistics. This file centralizes common service-level
// error values so that they can be consistently returned by service methods
// and checked by callers.
//
// These errors are intended for internal use by the service layer;
// translation into user-facing messages should be performed at the
// conversational/handler layer.
package services

import "errors"

// Favorite validation errors. These are the only failures that surface to
// the end user as "invalid input" rather than a generic unavailability.
var (
	// ErrMissingRecipeID is returned when a favorite is saved without a
	// recipe identifier.
	ErrMissingRecipeID = errors.New("recipe id is missing")

	// ErrMissingRecipeTitle is returned when a favorite is saved without a
	// non-empty title.
	ErrMissingRecipeTitle = errors.New("recipe title is missing")
)
