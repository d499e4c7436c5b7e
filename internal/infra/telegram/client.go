// internal/infra/telegram/client.go
package telegram

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"sync"

	"ambient_validation_bot/internal/domain/notifier"

	"gopkg.in/telebot.v3"
)

// OwnerNotifier implements notifier.Notifier by messaging the bot owner.
// Permission means the owner's chat is reachable by the bot.
type OwnerNotifier struct {
	bot     *telebot.Bot
	ownerID int64

	mu      sync.Mutex
	granted bool
}

func NewOwnerNotifier(b *telebot.Bot, ownerID int64) *OwnerNotifier {
	return &OwnerNotifier{bot: b, ownerID: ownerID}
}

// Permission checks whether the owner's chat exists without sending anything.
func (n *OwnerNotifier) Permission(_ context.Context) (notifier.Permission, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.granted {
		return notifier.PermissionGranted, nil
	}

	if _, err := n.bot.ChatByID(n.ownerID); err != nil {
		if isUnreachable(err) {
			return notifier.PermissionDenied, nil
		}
		return notifier.PermissionDefault, fmt.Errorf("failed to look up owner chat: %w", err)
	}
	n.granted = true
	return notifier.PermissionGranted, nil
}

// RequestPermission probes the chat with a typing action. A blocked bot or
// an unknown chat counts as denial.
func (n *OwnerNotifier) RequestPermission(_ context.Context) (notifier.Permission, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if err := n.bot.Notify(telebot.ChatID(n.ownerID), telebot.Typing); err != nil {
		n.granted = false
		if isUnreachable(err) {
			return notifier.PermissionDenied, nil
		}
		return notifier.PermissionDefault, fmt.Errorf("failed to reach owner chat: %w", err)
	}
	n.granted = true
	return notifier.PermissionGranted, nil
}

// Notify sends the notification as an HTML message, or as a photo with a
// caption when the icon is a URL.
func (n *OwnerNotifier) Notify(_ context.Context, note notifier.Notification) error {
	text := formatNotification(note)
	opts := &telebot.SendOptions{ParseMode: telebot.ModeHTML}
	recipient := telebot.ChatID(n.ownerID)

	var what interface{} = text
	if isURL(note.Icon) {
		what = &telebot.Photo{File: telebot.FromURL(note.Icon), Caption: text}
	}
	if _, err := n.bot.Send(recipient, what, opts); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}

func formatNotification(note notifier.Notification) string {
	var b strings.Builder
	if note.Icon != "" && !isURL(note.Icon) {
		b.WriteString(html.EscapeString(note.Icon))
		b.WriteString(" ")
	}
	b.WriteString("<b>")
	b.WriteString(html.EscapeString(note.Title))
	b.WriteString("</b>")
	if note.Body != "" {
		b.WriteString("\n\n")
		b.WriteString(html.EscapeString(note.Body))
	}
	return b.String()
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "http://")
}

func isUnreachable(err error) bool {
	if errors.Is(err, telebot.ErrChatNotFound) || errors.Is(err, telebot.ErrBlockedByUser) {
		return true
	}
	var tbErr *telebot.Error
	return errors.As(err, &tbErr) && tbErr.Code == 403
}

// CommandMenuOffer installs the bot's command menu in the owner's client
// when accepted. It is the host's deferred install action.
type CommandMenuOffer struct {
	bot *telebot.Bot
}

func NewCommandMenuOffer(b *telebot.Bot) *CommandMenuOffer {
	return &CommandMenuOffer{bot: b}
}

func (o *CommandMenuOffer) Prompt(_ context.Context) (bool, error) {
	if err := o.bot.SetCommands(BotCommands); err != nil {
		return false, fmt.Errorf("failed to set bot commands: %w", err)
	}
	return true, nil
}
