package telegram

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"ambient_validation_bot/internal/app"
	"ambient_validation_bot/internal/domain/affirmation"
	"ambient_validation_bot/internal/domain/notifier"
	"ambient_validation_bot/internal/domain/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v3"
)

func buttonsWith(s screen, unique string) []button {
	var out []button
	for _, row := range s.Rows {
		for _, b := range row {
			if b.Unique == unique {
				out = append(out, b)
			}
		}
	}
	return out
}

func TestRenderOnboarding_LocksUnselectedAtLimit(t *testing.T) {
	catalog := affirmation.DefaultCatalog()
	state := session.Defaults()
	state.SelectedCategories = []string{"abundance", "peace", "love"}

	s := render(app.Snapshot{View: app.ViewOnboarding, State: state}, catalog, time.Now())

	assert.Contains(t, s.Text, "Selected: 3/3")
	cats := buttonsWith(s, uniqueCategory)
	require.Len(t, cats, len(catalog.AllCategories()))
	for _, b := range cats {
		switch b.Data {
		case "abundance", "peace", "love":
			assert.True(t, strings.HasPrefix(b.Text, "✅"), b.Text)
		default:
			assert.True(t, strings.HasPrefix(b.Text, "🔒"), b.Text)
		}
	}
	assert.Len(t, buttonsWith(s, uniqueComplete), 1)
}

func TestRenderOnboarding_NoLocksBelowLimit(t *testing.T) {
	state := session.Defaults()
	state.SelectedCategories = []string{"love"}

	s := render(app.Snapshot{View: app.ViewOnboarding, State: state}, affirmation.DefaultCatalog(), time.Now())
	for _, b := range buttonsWith(s, uniqueCategory) {
		assert.False(t, strings.HasPrefix(b.Text, "🔒"), b.Text)
	}
}

func TestRenderDashboard(t *testing.T) {
	now := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)

	state := session.Defaults()
	state.SelectedCategories = []string{"love", "peace"}
	state.TodayCount = 7
	state.LastNotificationTime = &yesterday
	state.NotificationsEnabled = true
	state.NotificationFrequency = session.Frequency2Hours

	s := render(app.Snapshot{
		View:               app.ViewDashboard,
		State:              state,
		CurrentAffirmation: "I choose peace in every moment.",
		ScheduleInterval:   2 * time.Hour,
		CanInstall:         true,
	}, affirmation.DefaultCatalog(), now)

	assert.True(t, strings.HasPrefix(s.Text, "I choose peace in every moment."))
	assert.Contains(t, s.Text, "Today: 0 · Active categories: 2")
	assert.Contains(t, s.Text, "Every 2 hours, every 2h0m0s")
	assert.Len(t, buttonsWith(s, uniqueNext), 1)
	assert.Len(t, buttonsWith(s, uniqueInstall), 1)
	assert.Equal(t, "🔔", buttonsWith(s, uniqueNotify)[0].Text)
}

func TestRenderSettings_MarksDraftFrequency(t *testing.T) {
	state := session.Defaults()
	state.SelectedCategories = []string{"love"}

	s := render(app.Snapshot{
		View:           app.ViewSettings,
		State:          state,
		DraftFrequency: session.FrequencyRandom,
	}, affirmation.DefaultCatalog(), time.Now())

	freqs := buttonsWith(s, uniqueFrequency)
	require.Len(t, freqs, len(session.Frequencies))
	for _, b := range freqs {
		marked := strings.HasPrefix(b.Text, "● ")
		assert.Equal(t, b.Data == string(session.FrequencyRandom), marked, b.Text)
	}
	assert.Contains(t, s.Text, "Random (3-8 times a day)")
	assert.Len(t, buttonsWith(s, uniqueSave), 1)
	assert.Len(t, buttonsWith(s, uniqueCancel), 1)
}

func TestScreenMarkup_BuildsInlineKeyboard(t *testing.T) {
	s := screen{Rows: [][]button{
		{{Text: "a", Unique: uniqueNext}, {Text: "b", Unique: uniqueSettings}},
		{{Text: "c", Unique: uniqueCategory, Data: "love"}},
	}}
	m := s.markup()
	require.Len(t, m.InlineKeyboard, 2)
	assert.Len(t, m.InlineKeyboard[0], 2)
	assert.Equal(t, "c", m.InlineKeyboard[1][0].Text)
	assert.Equal(t, uniqueCategory, m.InlineKeyboard[1][0].Unique)
}

func TestFormatNotification(t *testing.T) {
	got := formatNotification(notifier.Notification{Title: "Your <Ambient> Validation", Body: "I am calm & clear.", Icon: "🌿"})
	assert.Equal(t, "🌿 <b>Your &lt;Ambient&gt; Validation</b>\n\nI am calm &amp; clear.", got)

	got = formatNotification(notifier.Notification{Title: "T", Icon: "https://example.com/icon.png"})
	assert.Equal(t, "<b>T</b>", got)
}

func TestIsUnreachable(t *testing.T) {
	assert.True(t, isUnreachable(telebot.ErrBlockedByUser))
	assert.True(t, isUnreachable(fmt.Errorf("wrapped: %w", telebot.ErrChatNotFound)))
	assert.True(t, isUnreachable(&telebot.Error{Code: 403, Description: "Forbidden: user is deactivated"}))
	assert.False(t, isUnreachable(fmt.Errorf("timeout")))
}

func TestHelpTextListsCommands(t *testing.T) {
	text := helpText()
	for _, cmd := range BotCommands {
		assert.Contains(t, text, "/"+cmd.Text)
	}
}
