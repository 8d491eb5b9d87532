package bot

import (
	"context"
	"fmt"
	"strconv"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

// handleStatsCommand renders the usage counters for administrators.
func (tb *Bot) handleStatsCommand(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	user := userFromUpdate(update)
	if user == nil {
		return
	}
	chatID := chatIDFromUpdate(update)
	if !tb.cfg.IsAdmin(user.ID) {
		send(ctx, b, chatID, msgAdminsOnly, nil)
		return
	}

	snap, err := tb.stats.Snapshot(ctx)
	if err != nil {
		log.Error().Err(err).Msg("stats snapshot failed")
		send(ctx, b, chatID, msgUnavailable, nil)
		return
	}

	text := fmt.Sprintf(
		"📊 Статистика бота\n\n"+
			"👥 Пользователи: %d (заблокировано: %d)\n"+
			"⭐ Избранных рецептов: %d\n\n"+
			"📨 Всего команд: %d\n"+
			"🎲 Случайных рецептов: %d\n"+
			"🔍 Поисков по ингредиентам: %d\n"+
			"📋 Просмотров избранного: %d\n\n"+
			"🕒 Обновлено: %s",
		snap.TotalUsers, snap.BannedUsers,
		snap.TotalFavorites,
		snap.TotalCommands,
		snap.RandomRecipeRequests,
		snap.IngredientSearches,
		snap.FavoritesViews,
		snap.LastUpdated.Format("02.01.2006 15:04"),
	)
	send(ctx, b, chatID, text, nil)
}

// handleBanCommand prompts an administrator for the user id to ban.
func (tb *Bot) handleBanCommand(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	tb.promptBanTarget(ctx, b, update, stateAwaitingBanID, msgEnterBanID)
}

// handleUnbanCommand prompts an administrator for the user id to unban.
func (tb *Bot) handleUnbanCommand(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	tb.promptBanTarget(ctx, b, update, stateAwaitingUnbanID, msgEnterUnbanID)
}

func (tb *Bot) promptBanTarget(ctx context.Context, b *tgbot.Bot, update *models.Update, st convState, prompt string) {
	user := userFromUpdate(update)
	if user == nil {
		return
	}
	chatID := chatIDFromUpdate(update)
	if !tb.cfg.IsAdmin(user.ID) {
		send(ctx, b, chatID, msgAdminsOnly, nil)
		return
	}
	tb.states.Set(user.ID, st)
	send(ctx, b, chatID, prompt, nil)
}

// processBanTarget consumes the free-text reply to a ban/unban prompt. A
// malformed id keeps the state armed so the admin can retry or /cancel.
func (tb *Bot) processBanTarget(ctx context.Context, b *tgbot.Bot, chatID, adminID int64, text string, ban bool) {
	targetID, err := strconv.ParseInt(text, 10, 64)
	if err != nil || targetID == 0 {
		send(ctx, b, chatID, msgBadUserID, nil)
		return
	}
	tb.states.Clear(adminID)

	updated, err := tb.users.SetBanned(ctx, targetID, ban)
	if err != nil {
		log.Error().Err(err).Int64("user_id", targetID).Bool("ban", ban).Msg("ban flag update failed")
		send(ctx, b, chatID, msgUnavailable, nil)
		return
	}
	if !updated {
		send(ctx, b, chatID, fmt.Sprintf("⚠️ Пользователь %d не найден", targetID), nil)
		return
	}
	if ban {
		send(ctx, b, chatID, fmt.Sprintf("🚫 Пользователь %d заблокирован", targetID), nil)
	} else {
		send(ctx, b, chatID, fmt.Sprintf("✅ Пользователь %d разблокирован", targetID), nil)
	}
}

// handleCancel drops any armed conversation state.
func (tb *Bot) handleCancel(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	user := userFromUpdate(update)
	if user == nil {
		return
	}
	tb.states.Clear(user.ID)
	send(ctx, b, chatIDFromUpdate(update), msgActionAborted, nil)
}
