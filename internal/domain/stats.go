package domain

// StatKind enumerates the counters tracked in the singleton BotStats row.
// The set is closed: looking a counter up by arbitrary name is not
// supported, and unknown kinds are rejected at the service boundary.
type StatKind string

const (
	// StatTotalCommands counts every command message processed.
	StatTotalCommands StatKind = "total_commands"
	// StatRandomRecipeRequests counts /random invocations.
	StatRandomRecipeRequests StatKind = "random_recipe_requests"
	// StatIngredientSearches counts ingredient search invocations.
	StatIngredientSearches StatKind = "ingredient_searches"
	// StatFavoritesViews counts views of the favorites list.
	StatFavoritesViews StatKind = "favorites_views"
)

// Column returns the bot_stats column backing the kind, or ok=false for a
// kind outside the enumerated set.
func (k StatKind) Column() (col string, ok bool) {
	switch k {
	case StatTotalCommands:
		return "total_commands", true
	case StatRandomRecipeRequests:
		return "random_recipe_requests", true
	case StatIngredientSearches:
		return "ingredient_searches", true
	case StatFavoritesViews:
		return "favorites_views", true
	default:
		return "", false
	}
}

// StatKinds lists every valid counter kind, in reporting order.
func StatKinds() []StatKind {
	return []StatKind{
		StatTotalCommands,
		StatRandomRecipeRequests,
		StatIngredientSearches,
		StatFavoritesViews,
	}
}
