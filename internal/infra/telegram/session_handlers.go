// internal/infra/telegram/session_handlers.go
package telegram

import (
	"context"
	"errors"
	"time"

	"ambient_validation_bot/internal/app"
	"ambient_validation_bot/internal/domain/session"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// RegisterSessionHandlers wires the inline buttons and session commands to
// the controller. Every handler answers with the re-rendered current view.
func RegisterSessionHandlers(ctx context.Context, b *telebot.Bot, controller *app.SessionController, baseLogger *logrus.Entry) {
	h := &sessionHandlers{
		ctx:        ctx,
		controller: controller,
		logger:     baseLogger.WithField("handler_group", "session"),
		now:        time.Now,
	}

	b.Handle("/next", h.command("/next", func(c telebot.Context) error {
		snap := h.controller.Snapshot()
		if snap.View != app.ViewDashboard {
			return h.sendView(c)
		}
		h.controller.NextAffirmation(h.ctx)
		return h.sendView(c)
	}))
	b.Handle("/settings", h.command("/settings", func(c telebot.Context) error {
		if err := h.controller.OpenSettings(); err != nil && !errors.Is(err, app.ErrInvalidTransition) {
			return err
		}
		return h.sendView(c)
	}))
	b.Handle("/notify", h.command("/notify", func(c telebot.Context) error {
		h.controller.ToggleNotifications(h.ctx)
		return h.sendView(c)
	}))
	b.Handle("/install", h.command("/install", h.install))

	b.Handle(&telebot.Btn{Unique: uniqueCategory}, h.callback(uniqueCategory, func(c telebot.Context) error {
		if _, err := h.controller.ToggleCategory(h.ctx, c.Callback().Data); err != nil {
			return c.Respond(&telebot.CallbackResponse{Text: "Unknown category."})
		}
		return h.editView(c)
	}))
	b.Handle(&telebot.Btn{Unique: uniqueFrequency}, h.callback(uniqueFrequency, func(c telebot.Context) error {
		if err := h.controller.SelectFrequency(session.Frequency(c.Callback().Data)); err != nil {
			return c.Respond(&telebot.CallbackResponse{Text: "That option is not available right now."})
		}
		return h.editView(c)
	}))
	b.Handle(&telebot.Btn{Unique: uniqueComplete}, h.callback(uniqueComplete, func(c telebot.Context) error {
		if err := h.controller.CompleteOnboarding(h.ctx); err != nil {
			if errors.Is(err, app.ErrNoCategoriesSelected) {
				return c.Respond(&telebot.CallbackResponse{Text: "Please select at least one category to continue.", ShowAlert: true})
			}
			return c.Respond(&telebot.CallbackResponse{Text: "That option is not available right now."})
		}
		return h.editView(c)
	}))
	b.Handle(&telebot.Btn{Unique: uniqueNext}, h.callback(uniqueNext, func(c telebot.Context) error {
		h.controller.NextAffirmation(h.ctx)
		return h.editView(c)
	}))
	b.Handle(&telebot.Btn{Unique: uniqueSettings}, h.callback(uniqueSettings, h.transition(func() error {
		return h.controller.OpenSettings()
	})))
	b.Handle(&telebot.Btn{Unique: uniqueSave}, h.callback(uniqueSave, h.transition(func() error {
		return h.controller.SaveSettings(h.ctx)
	})))
	b.Handle(&telebot.Btn{Unique: uniqueCancel}, h.callback(uniqueCancel, h.transition(func() error {
		return h.controller.CancelSettings(h.ctx)
	})))
	b.Handle(&telebot.Btn{Unique: uniqueNotify}, h.callback(uniqueNotify, func(c telebot.Context) error {
		h.controller.ToggleNotifications(h.ctx)
		return h.editView(c)
	}))
	b.Handle(&telebot.Btn{Unique: uniqueInstall}, h.callback(uniqueInstall, h.install))
}

type sessionHandlers struct {
	ctx        context.Context
	controller *app.SessionController
	logger     *logrus.Entry
	now        func() time.Time
}

func (h *sessionHandlers) command(name string, next telebot.HandlerFunc) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		h.logger.WithFields(logrus.Fields{
			"handler":   name,
			"sender_id": c.Sender().ID,
		}).Info("Command received")
		return next(c)
	}
}

func (h *sessionHandlers) callback(unique string, next telebot.HandlerFunc) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		h.logger.WithFields(logrus.Fields{
			"handler":   "callback:" + unique,
			"sender_id": c.Sender().ID,
			"data":      c.Callback().Data,
		}).Debug("Callback received")
		return next(c)
	}
}

// transition runs a view change; an ErrInvalidTransition (stale button)
// still refreshes the message to the real current view.
func (h *sessionHandlers) transition(change func() error) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		if err := change(); err != nil {
			h.logger.WithError(err).Debug("Transition rejected")
		}
		return h.editView(c)
	}
}

func (h *sessionHandlers) install(c telebot.Context) error {
	accepted, err := h.controller.Install(h.ctx)
	switch {
	case err != nil:
		h.logger.WithError(err).Error("Install failed")
		_ = h.respond(c, "Could not install the command menu.")
	case accepted:
		_ = h.respond(c, "Command menu installed.")
	default:
		_ = h.respond(c, "Nothing to install.")
	}
	if c.Callback() != nil {
		return h.editView(c)
	}
	return nil
}

func (h *sessionHandlers) respond(c telebot.Context, text string) error {
	if c.Callback() != nil {
		return c.Respond(&telebot.CallbackResponse{Text: text})
	}
	return c.Send(text)
}

func (h *sessionHandlers) current() screen {
	snap := h.controller.Snapshot()
	return render(snap, h.controller.Catalog(), h.now())
}

func (h *sessionHandlers) sendView(c telebot.Context) error {
	s := h.current()
	return c.Send(s.Text, s.markup())
}

func (h *sessionHandlers) editView(c telebot.Context) error {
	s := h.current()
	if err := c.Edit(s.Text, s.markup()); err != nil {
		// Telegram rejects edits that change nothing; that is not a failure.
		h.logger.WithError(err).Debug("Message edit skipped")
	}
	return c.Respond()
}
