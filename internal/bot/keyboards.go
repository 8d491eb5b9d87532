// Package bot implements the Telegram conversational layer: command and
// callback handlers, middleware, inline keyboards, and the short-lived
// conversation states that glue multi-step flows together.
package bot

import (
	"fmt"

	"github.com/go-telegram/bot/models"

	"github.com/tbourn/go-recipe-bot/internal/domain"
)

// popularIngredients is the quick-pick grid shown for ingredient search.
var popularIngredients = []string{
	"яйца", "молоко", "мука",
	"курица", "рис", "картофель",
	"помидоры", "сыр", "лук",
}

// dietKeyboard offers the diet filters for a random recipe.
func dietKeyboard() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
		{{Text: "Вегетарианское", CallbackData: "diet_vegetarian"}},
		{{Text: "Веганское", CallbackData: "diet_vegan"}},
		{{Text: "Без диеты", CallbackData: "diet_none"}},
		{{Text: "🏠 В меню", CallbackData: "main_menu"}},
	}}
}

// recipeKeyboard attaches the save action to a rendered recipe.
func recipeKeyboard(recipeID int64) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
		{{Text: "⭐ Сохранить", CallbackData: fmt.Sprintf("save_%d", recipeID)}},
		{{Text: "🏠 В меню", CallbackData: "main_menu"}},
	}}
}

// favoritesKeyboard is shown under the favorites list; the delete entry is
// offered only when there is something to delete.
func favoritesKeyboard(hasRecipes bool) *models.InlineKeyboardMarkup {
	var rows [][]models.InlineKeyboardButton
	if hasRecipes {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: "🗑️ Удалить", CallbackData: "delete_favorites"},
		})
	}
	rows = append(rows, []models.InlineKeyboardButton{
		{Text: "🏠 В меню", CallbackData: "main_menu"},
	})
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// deleteFavoritesKeyboard numbers the user's favorites for deletion, three
// buttons per row, followed by bulk and navigation actions.
func deleteFavoritesKeyboard(favorites []domain.Favorite) *models.InlineKeyboardMarkup {
	var rows [][]models.InlineKeyboardButton
	var row []models.InlineKeyboardButton
	for i, fav := range favorites {
		row = append(row, models.InlineKeyboardButton{
			Text:         fmt.Sprintf("🗑️ %d", i+1),
			CallbackData: fmt.Sprintf("delete_fav_%d", fav.RecipeID),
		})
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows,
		[]models.InlineKeyboardButton{{Text: "🗑️ Удалить всё", CallbackData: "delete_all_favorites"}},
		[]models.InlineKeyboardButton{{Text: "🔙 Назад", CallbackData: "favorites_back"}},
		[]models.InlineKeyboardButton{{Text: "🏠 В меню", CallbackData: "main_menu"}},
	)
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// ingredientsKeyboard shows the popular-ingredient grid plus the custom
// entry option.
func ingredientsKeyboard() *models.InlineKeyboardMarkup {
	var rows [][]models.InlineKeyboardButton
	var row []models.InlineKeyboardButton
	for _, ing := range popularIngredients {
		row = append(row, models.InlineKeyboardButton{
			Text:         capitalize(ing),
			CallbackData: "ingredient_" + ing,
		})
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows,
		[]models.InlineKeyboardButton{{Text: "⚙️ Свой вариант", CallbackData: "custom_ingredient"}},
		[]models.InlineKeyboardButton{{Text: "🏠 В меню", CallbackData: "main_menu"}},
	)
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}
