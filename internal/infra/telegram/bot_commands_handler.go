// internal/infra/telegram/bot_commands_handler.go
package telegram

import (
	"time"

	"ambient_validation_bot/internal/app"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// OwnerOnly rejects updates from anyone but the configured owner.
func OwnerOnly(ownerID int64, baseLogger *logrus.Entry) telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			if c.Sender() == nil || c.Sender().ID != ownerID {
				var senderID int64
				if c.Sender() != nil {
					senderID = c.Sender().ID
				}
				baseLogger.WithField("sender_id", senderID).Warn("Unauthorized access attempt")
				if c.Callback() != nil {
					return c.Respond(&telebot.CallbackResponse{Text: "This bot is private."})
				}
				return c.Send("This bot is private.")
			}
			return next(c)
		}
	}
}

func RegisterBotCommands(
	b *telebot.Bot,
	controller *app.SessionController,
	baseLogger *logrus.Entry, // For contextual logging
) {
	startHelpLogger := baseLogger.WithField("handler_group", "start_help")

	b.Handle("/start", func(c telebot.Context) error {
		logCtx := startHelpLogger.WithField("command", "/start").WithField("sender_id", c.Sender().ID)
		snap := controller.Snapshot()
		logCtx.WithField("view", snap.View).Info("Processing /start command")

		s := render(snap, controller.Catalog(), time.Now())
		return c.Send(s.Text, s.markup())
	})

	b.Handle("/help", func(c telebot.Context) error {
		startHelpLogger.WithField("command", "/help").WithField("sender_id", c.Sender().ID).Info("Processing /help command")
		return c.Send(helpText())
	})

	b.Handle("/stats", func(c telebot.Context) error {
		startHelpLogger.WithField("command", "/stats").WithField("sender_id", c.Sender().ID).Info("Processing /stats command")
		snap := controller.Snapshot()
		return c.Send(statsLine(snap.State, time.Now()) + "\n" + notificationLine(snap))
	})
}
