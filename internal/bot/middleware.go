package bot

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-recipe-bot/internal/domain"
)

// trackUsers upserts the registry row for every observed interaction and
// counts message traffic in the statistics. Bookkeeping failures are
// logged and never block the interaction.
func (tb *Bot) trackUsers(next tgbot.HandlerFunc) tgbot.HandlerFunc {
	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		user := userFromUpdate(update)
		if user == nil {
			next(ctx, b, update)
			return
		}

		kind := "message"
		if update.CallbackQuery != nil {
			kind = "callback"
		}
		botUpdates.WithLabelValues(kind).Inc()

		err := tb.users.Track(ctx, user.ID, domain.UserProfile{
			Username:  user.Username,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		})
		if err != nil {
			log.Error().Err(err).Int64("user_id", user.ID).Msg("user tracking failed")
		}

		if update.Message != nil {
			if err := tb.stats.Increment(ctx, domain.StatTotalCommands); err != nil {
				log.Error().Err(err).Msg("command counter increment failed")
			}
		}

		next(ctx, b, update)
	}
}

// gateBanned halts dispatch for banned users. A registry read failure
// fails open: dropping legitimate traffic over a transient store error is
// worse than momentarily serving a banned user.
func (tb *Bot) gateBanned(next tgbot.HandlerFunc) tgbot.HandlerFunc {
	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		user := userFromUpdate(update)
		if user == nil {
			next(ctx, b, update)
			return
		}

		banned, err := tb.users.IsBanned(ctx, user.ID)
		if err != nil {
			log.Error().Err(err).Int64("user_id", user.ID).Msg("ban check failed")
			next(ctx, b, update)
			return
		}
		if banned {
			switch {
			case update.Message != nil:
				send(ctx, b, update.Message.Chat.ID, msgBanned, nil)
			case update.CallbackQuery != nil:
				answer(ctx, b, update.CallbackQuery, msgBannedShort, true)
			}
			return
		}

		next(ctx, b, update)
	}
}
