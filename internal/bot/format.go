package bot

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/tbourn/go-recipe-bot/internal/domain"
	"github.com/tbourn/go-recipe-bot/internal/spoonacular"
)

// Recipe messages use fixed line markers so the save action can recover the
// recipe metadata from the message text later; Telegram callbacks only
// carry the recipe id.
const (
	markerTitle  = "🍴"
	markerImage  = "📷"
	markerSource = "🔗"
)

// renderRecipe formats a recipe card with the marker lines the save flow
// parses back. The used-ingredient line is included only for search results.
func renderRecipe(r spoonacular.Recipe, withUsedCount bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", markerTitle, r.Title)
	if withUsedCount {
		fmt.Fprintf(&b, "🔹 Использовано ингредиентов: %d\n", r.UsedIngredientCount)
	}
	if r.Image != "" {
		fmt.Fprintf(&b, "%s %s\n", markerImage, r.Image)
	}
	fmt.Fprintf(&b, "%s %s", markerSource, sourceURLOrFallback(r))
	return b.String()
}

// sourceURLOrFallback returns the recipe's source link, synthesizing the
// canonical catalog URL when upstream omitted one.
func sourceURLOrFallback(r spoonacular.Recipe) string {
	if r.SourceURL != "" {
		return r.SourceURL
	}
	slug := strings.ReplaceAll(strings.TrimSpace(r.Title), " ", "-")
	return fmt.Sprintf("https://spoonacular.com/recipes/%s-%d", slug, r.ID)
}

// parseRecipeCard recovers the recipe metadata from a rendered message.
// Lines without a known marker are ignored, so the parser tolerates the
// optional used-ingredient line and any heading text.
func parseRecipeCard(messageText string) domain.RecipeCard {
	var card domain.RecipeCard
	for _, line := range strings.Split(messageText, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.Contains(line, markerTitle):
			card.Title = strings.TrimSpace(afterMarker(line, markerTitle))
		case strings.Contains(line, markerImage):
			card.Image = strings.TrimSpace(afterMarker(line, markerImage))
		case strings.Contains(line, markerSource):
			card.SourceURL = strings.TrimSpace(afterMarker(line, markerSource))
		}
	}
	return card
}

// afterMarker returns the text following the last occurrence of marker.
func afterMarker(line, marker string) string {
	if i := strings.LastIndex(line, marker); i >= 0 {
		return line[i+len(marker):]
	}
	return ""
}

// capitalize upper-cases the first rune, for keyboard labels.
func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
