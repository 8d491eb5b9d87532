package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-recipe-bot/internal/domain"
	"github.com/tbourn/go-recipe-bot/internal/services"
)

// maxFavoritesShown caps the favorites list rendering; the store itself is
// unbounded.
const maxFavoritesShown = 10

// handleFavoritesCommand lists the user's saved recipes.
func (tb *Bot) handleFavoritesCommand(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	if err := tb.stats.Increment(ctx, domain.StatFavoritesViews); err != nil {
		log.Error().Err(err).Msg("favorites counter increment failed")
	}

	user := userFromUpdate(update)
	if user == nil {
		return
	}
	text, markup := tb.favoritesView(ctx, user.ID)
	send(ctx, b, chatIDFromUpdate(update), text, markup)
}

// favoritesView assembles the favorites listing and its keyboard.
func (tb *Bot) favoritesView(ctx context.Context, userID int64) (string, *models.InlineKeyboardMarkup) {
	favs, err := tb.favorites.List(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("list favorites failed")
		return msgUnavailable, nil
	}
	if len(favs) == 0 {
		return msgNoFavorites, favoritesKeyboard(false)
	}

	var sb strings.Builder
	sb.WriteString(msgFavoritesHeader)
	for i, f := range favs {
		if i == maxFavoritesShown {
			break
		}
		fmt.Fprintf(&sb, "%d. %s %s\n", i+1, markerTitle, f.Title)
		if f.Image != "" {
			fmt.Fprintf(&sb, "   %s %s\n", markerImage, f.Image)
		}
		if f.SourceURL != "" {
			fmt.Fprintf(&sb, "   %s %s\n", markerSource, f.SourceURL)
		}
		sb.WriteString("\n")
	}
	return sb.String(), favoritesKeyboard(true)
}

// handleSaveFavorite saves the recipe behind a save_<id> button. The id
// travels in the callback data; title, image and source link are recovered
// from the message the button is attached to.
func (tb *Bot) handleSaveFavorite(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	cb := update.CallbackQuery

	recipeID, err := strconv.ParseInt(strings.TrimPrefix(cb.Data, "save_"), 10, 64)
	if err != nil {
		answer(ctx, b, cb, msgFavoriteInvalid, true)
		return
	}

	card := domain.RecipeCard{ID: recipeID}
	if msg := cb.Message.Message; msg != nil {
		parsed := parseRecipeCard(msg.Text)
		card.Title = parsed.Title
		card.Image = parsed.Image
		card.SourceURL = parsed.SourceURL
	}

	added, err := tb.favorites.Save(ctx, cb.From.ID, card)
	switch {
	case errors.Is(err, services.ErrMissingRecipeID) || errors.Is(err, services.ErrMissingRecipeTitle):
		answer(ctx, b, cb, msgFavoriteInvalid, true)
	case err != nil:
		log.Error().Err(err).Int64("user_id", cb.From.ID).Int64("recipe_id", recipeID).Msg("save favorite failed")
		answer(ctx, b, cb, msgFavoriteError, true)
	case added:
		answer(ctx, b, cb, msgFavoriteSaved, false)
	default:
		answer(ctx, b, cb, msgFavoriteDuplicate, false)
	}
}

// handleDeleteMenu shows the per-recipe delete keyboard.
func (tb *Bot) handleDeleteMenu(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	cb := update.CallbackQuery
	answer(ctx, b, cb, "", false)

	favs, err := tb.favorites.List(ctx, cb.From.ID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", cb.From.ID).Msg("list favorites failed")
		send(ctx, b, chatIDFromUpdate(update), msgUnavailable, nil)
		return
	}
	if len(favs) == 0 {
		answer(ctx, b, cb, msgNoFavoritesToDrop, true)
		return
	}

	var sb strings.Builder
	sb.WriteString(msgChooseToDelete)
	for i, f := range favs {
		if i == maxFavoritesShown {
			break
		}
		fmt.Fprintf(&sb, "%d. %s\n", i+1, f.Title)
	}
	edit(ctx, b, cb, sb.String(), deleteFavoritesKeyboard(favs))
}

// handleDeleteFavorite removes one recipe and refreshes the delete menu.
func (tb *Bot) handleDeleteFavorite(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	cb := update.CallbackQuery

	recipeID, err := strconv.ParseInt(strings.TrimPrefix(cb.Data, "delete_fav_"), 10, 64)
	if err != nil {
		answer(ctx, b, cb, msgFavoriteMissing, true)
		return
	}

	removed, err := tb.favorites.Remove(ctx, cb.From.ID, recipeID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", cb.From.ID).Int64("recipe_id", recipeID).Msg("remove favorite failed")
		answer(ctx, b, cb, msgUnavailable, true)
		return
	}
	if !removed {
		answer(ctx, b, cb, msgFavoriteMissing, true)
		return
	}
	answer(ctx, b, cb, msgFavoriteRemoved, false)

	text, markup := tb.favoritesView(ctx, cb.From.ID)
	edit(ctx, b, cb, text, markup)
}

// handleDeleteAllFavorites wipes the user's favorites in one shot.
func (tb *Bot) handleDeleteAllFavorites(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	cb := update.CallbackQuery

	count, err := tb.favorites.RemoveAll(ctx, cb.From.ID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", cb.From.ID).Msg("remove all favorites failed")
		answer(ctx, b, cb, msgUnavailable, true)
		return
	}
	if count == 0 {
		answer(ctx, b, cb, msgNoFavoritesToDrop, true)
		return
	}
	answer(ctx, b, cb, fmt.Sprintf("🗑️ Удалено %d рецептов из избранного", count), true)
	edit(ctx, b, cb, msgNoFavorites, favoritesKeyboard(false))
}

// handleFavoritesBack returns from the delete menu to the listing.
func (tb *Bot) handleFavoritesBack(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	cb := update.CallbackQuery
	answer(ctx, b, cb, "", false)

	text, markup := tb.favoritesView(ctx, cb.From.ID)
	edit(ctx, b, cb, text, markup)
}
