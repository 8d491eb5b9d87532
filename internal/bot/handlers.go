package bot

import (
	"context"
	"fmt"
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-recipe-bot/internal/domain"
)

// handleStart answers /start and /help with the command overview.
func (tb *Bot) handleStart(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	send(ctx, b, chatIDFromUpdate(update), msgWelcome, nil)
}

// handleRandom starts the random-recipe flow with the diet picker.
func (tb *Bot) handleRandom(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	if err := tb.stats.Increment(ctx, domain.StatRandomRecipeRequests); err != nil {
		log.Error().Err(err).Msg("random counter increment failed")
	}
	send(ctx, b, chatIDFromUpdate(update), msgChooseDiet, dietKeyboard())
}

// handleDietChoice resolves the picked diet and delivers one random recipe.
func (tb *Bot) handleDietChoice(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	cb := update.CallbackQuery
	answer(ctx, b, cb, "", false)

	chatID := chatIDFromUpdate(update)
	diet := strings.TrimPrefix(cb.Data, "diet_")

	recipe := tb.recipes.Random(ctx, diet)
	if recipe == nil || recipe.Title == "" {
		send(ctx, b, chatID, msgRecipeNotFound, nil)
		return
	}

	text := "🎲 Случайный рецепт:\n\n" + renderRecipe(*recipe, false)
	send(ctx, b, chatID, text, recipeKeyboard(recipe.ID))
}

// handleFindByIngredients starts the ingredient search flow.
func (tb *Bot) handleFindByIngredients(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	if err := tb.stats.Increment(ctx, domain.StatIngredientSearches); err != nil {
		log.Error().Err(err).Msg("search counter increment failed")
	}
	send(ctx, b, chatIDFromUpdate(update), msgChooseIngredient, ingredientsKeyboard())
}

// handleIngredientChoice runs a search for a popular-ingredient button.
func (tb *Bot) handleIngredientChoice(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	cb := update.CallbackQuery
	answer(ctx, b, cb, "", false)

	ingredient := strings.TrimPrefix(cb.Data, "ingredient_")
	tb.runSearch(ctx, b, chatIDFromUpdate(update), ingredient)
}

// handleCustomIngredient prompts for a free-text ingredient and arms the
// matching conversation state.
func (tb *Bot) handleCustomIngredient(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	cb := update.CallbackQuery
	answer(ctx, b, cb, "", false)

	tb.states.Set(cb.From.ID, stateAwaitingIngredient)
	send(ctx, b, chatIDFromUpdate(update), msgEnterIngredient, nil)
}

// handleMainMenu sends a fresh main menu message.
func (tb *Bot) handleMainMenu(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	answer(ctx, b, update.CallbackQuery, "", false)
	send(ctx, b, chatIDFromUpdate(update), msgWelcome, nil)
}

// handleText is the default handler: free-text messages are meaningful
// only while a conversation state is armed.
func (tb *Bot) handleText(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)

	switch tb.states.Get(userID) {
	case stateAwaitingIngredient:
		tb.states.Clear(userID)
		tb.runSearch(ctx, b, chatID, text)
	case stateAwaitingBanID:
		tb.processBanTarget(ctx, b, chatID, userID, text, true)
	case stateAwaitingUnbanID:
		tb.processBanTarget(ctx, b, chatID, userID, text, false)
	}
}

// runSearch performs the ingredient search and sends each hit as its own
// message carrying a save button.
func (tb *Bot) runSearch(ctx context.Context, b *tgbot.Bot, chatID int64, ingredient string) {
	recipes := tb.recipes.SearchByIngredient(ctx, ingredient)
	if len(recipes) == 0 {
		send(ctx, b, chatID, fmt.Sprintf("😔 Рецепты с '%s' не найдены", ingredient), nil)
		return
	}
	for _, recipe := range recipes {
		send(ctx, b, chatID, renderRecipe(recipe, true), recipeKeyboard(recipe.ID))
	}
}
