// Package spoonacular wraps the two Spoonacular catalog endpoints used by
// the bot behind a cache-first, single-attempt fetch policy.
package spoonacular

// Recipe is the subset of the Spoonacular recipe payload the bot consumes.
// Both endpoints produce it: /recipes/random nests recipes under a
// "recipes" array, /recipes/findByIngredients returns a bare array with the
// ingredient-match counters populated.
type Recipe struct {
	ID                    int64  `json:"id"`
	Title                 string `json:"title"`
	Image                 string `json:"image,omitempty"`
	SourceURL             string `json:"sourceUrl,omitempty"`
	UsedIngredientCount   int    `json:"usedIngredientCount,omitempty"`
	MissedIngredientCount int    `json:"missedIngredientCount,omitempty"`
}

// randomResponse is the envelope returned by /recipes/random.
type randomResponse struct {
	Recipes []Recipe `json:"recipes"`
}
