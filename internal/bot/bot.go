package bot

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-recipe-bot/internal/config"
	"github.com/tbourn/go-recipe-bot/internal/services"
)

// botUpdates counts processed Telegram updates by kind.
var botUpdates = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "telegram_updates_total",
		Help: "Total number of Telegram updates processed.",
	},
	[]string{"type"},
)

func init() {
	prometheus.MustRegister(botUpdates)
}

// Bot holds the long-lived services behind the Telegram handlers. All
// dependencies are injected once at startup; handlers never construct
// stores or clients per call.
type Bot struct {
	cfg       config.Config
	recipes   *services.RecipeService
	favorites *services.FavoriteService
	users     *services.UserService
	stats     *services.StatsService
	states    *stateStore
}

// New constructs the conversational layer over the injected services.
func New(cfg config.Config, recipes *services.RecipeService, favorites *services.FavoriteService, users *services.UserService, stats *services.StatsService) *Bot {
	return &Bot{
		cfg:       cfg,
		recipes:   recipes,
		favorites: favorites,
		users:     users,
		stats:     stats,
		states:    newStateStore(),
	}
}

// Run connects to Telegram and long-polls until ctx is cancelled. The
// middleware chain runs tracking before the ban gate so even a banned
// user's activity timestamp stays current.
func (tb *Bot) Run(ctx context.Context) error {
	b, err := tgbot.New(
		tb.cfg.BotToken,
		tgbot.WithDefaultHandler(tb.handleText),
		tgbot.WithMiddlewares(tb.trackUsers, tb.gateBanned),
	)
	if err != nil {
		return err
	}
	tb.register(b)

	log.Info().Msg("telegram bot started")
	b.Start(ctx)
	return nil
}

// register binds command and callback routes. Free-text messages fall
// through to the default handler, which consults the conversation state.
func (tb *Bot) register(b *tgbot.Bot) {
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/start", tgbot.MatchTypePrefix, tb.handleStart)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/help", tgbot.MatchTypePrefix, tb.handleStart)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/random", tgbot.MatchTypePrefix, tb.handleRandom)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/find_by_ingredients", tgbot.MatchTypePrefix, tb.handleFindByIngredients)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/favorites", tgbot.MatchTypePrefix, tb.handleFavoritesCommand)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/stats", tgbot.MatchTypePrefix, tb.handleStatsCommand)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/ban", tgbot.MatchTypePrefix, tb.handleBanCommand)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/unban", tgbot.MatchTypePrefix, tb.handleUnbanCommand)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/cancel", tgbot.MatchTypePrefix, tb.handleCancel)

	b.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, "diet_", tgbot.MatchTypePrefix, tb.handleDietChoice)
	b.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, "ingredient_", tgbot.MatchTypePrefix, tb.handleIngredientChoice)
	b.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, "custom_ingredient", tgbot.MatchTypeExact, tb.handleCustomIngredient)
	b.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, "save_", tgbot.MatchTypePrefix, tb.handleSaveFavorite)
	b.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, "main_menu", tgbot.MatchTypeExact, tb.handleMainMenu)
	b.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, "delete_favorites", tgbot.MatchTypeExact, tb.handleDeleteMenu)
	b.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, "delete_fav_", tgbot.MatchTypePrefix, tb.handleDeleteFavorite)
	b.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, "delete_all_favorites", tgbot.MatchTypeExact, tb.handleDeleteAllFavorites)
	b.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, "favorites_back", tgbot.MatchTypeExact, tb.handleFavoritesBack)
}

// userFromUpdate extracts the acting user from a message or callback.
func userFromUpdate(update *models.Update) *models.User {
	switch {
	case update.Message != nil && update.Message.From != nil:
		return update.Message.From
	case update.CallbackQuery != nil:
		return &update.CallbackQuery.From
	}
	return nil
}

// chatIDFromUpdate extracts the chat to reply into, 0 when unavailable
// (e.g. a callback on an inaccessible message).
func chatIDFromUpdate(update *models.Update) int64 {
	switch {
	case update.Message != nil:
		return update.Message.Chat.ID
	case update.CallbackQuery != nil && update.CallbackQuery.Message.Message != nil:
		return update.CallbackQuery.Message.Message.Chat.ID
	}
	return 0
}

// send delivers a message, logging (not propagating) transport failures.
func send(ctx context.Context, b *tgbot.Bot, chatID int64, text string, markup models.ReplyMarkup) {
	if chatID == 0 {
		return
	}
	_, err := b.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: markup,
	})
	if err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("send message failed")
	}
}

// answer acknowledges a callback query, optionally with an alert popup.
func answer(ctx context.Context, b *tgbot.Bot, cb *models.CallbackQuery, text string, alert bool) {
	_, err := b.AnswerCallbackQuery(ctx, &tgbot.AnswerCallbackQueryParams{
		CallbackQueryID: cb.ID,
		Text:            text,
		ShowAlert:       alert,
	})
	if err != nil {
		log.Error().Err(err).Msg("answer callback failed")
	}
}

// edit rewrites the message a callback originated from; when the message
// is inaccessible it falls back to sending a new one.
func edit(ctx context.Context, b *tgbot.Bot, cb *models.CallbackQuery, text string, markup *models.InlineKeyboardMarkup) {
	msg := cb.Message.Message
	if msg == nil {
		return
	}
	_, err := b.EditMessageText(ctx, &tgbot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        text,
		ReplyMarkup: markup,
	})
	if err != nil {
		log.Error().Err(err).Int64("chat_id", msg.Chat.ID).Msg("edit message failed")
		send(ctx, b, msg.Chat.ID, text, markup)
	}
}
