package telegram

import (
	"fmt"
	"strings"
	"time"

	"ambient_validation_bot/internal/app"
	"ambient_validation_bot/internal/domain/affirmation"
	"ambient_validation_bot/internal/domain/session"

	"gopkg.in/telebot.v3"
)

// Callback uniques for inline buttons.
const (
	uniqueCategory  = "category"
	uniqueFrequency = "frequency"
	uniqueComplete  = "complete"
	uniqueNext      = "next"
	uniqueSettings  = "settings"
	uniqueSave      = "save"
	uniqueCancel    = "cancel"
	uniqueNotify    = "notify"
	uniqueInstall   = "install"
)

// BotCommands is the command menu installed by CommandMenuOffer.
var BotCommands = []telebot.Command{
	{Text: "next", Description: "Show a new affirmation"},
	{Text: "settings", Description: "Change categories and frequency"},
	{Text: "notify", Description: "Turn scheduled affirmations on or off"},
	{Text: "stats", Description: "Today's count and active categories"},
	{Text: "help", Description: "How this bot works"},
}

type button struct {
	Text   string
	Unique string
	Data   string
}

// screen is a rendered view: message text plus inline keyboard rows.
type screen struct {
	Text string
	Rows [][]button
}

func (s screen) markup() *telebot.ReplyMarkup {
	menu := &telebot.ReplyMarkup{}
	rows := make([]telebot.Row, 0, len(s.Rows))
	for _, r := range s.Rows {
		row := make(telebot.Row, 0, len(r))
		for _, b := range r {
			row = append(row, menu.Data(b.Text, b.Unique, b.Data))
		}
		rows = append(rows, row)
	}
	menu.Inline(rows...)
	return menu
}

func render(snap app.Snapshot, catalog *affirmation.Catalog, now time.Time) screen {
	switch snap.View {
	case app.ViewSettings:
		return renderSettings(snap, catalog)
	case app.ViewDashboard:
		return renderDashboard(snap, now)
	default:
		return renderOnboarding(snap, catalog)
	}
}

func renderOnboarding(snap app.Snapshot, catalog *affirmation.Catalog) screen {
	var text strings.Builder
	text.WriteString("Welcome to Ambient Validation Loops!\n\n")
	text.WriteString(fmt.Sprintf("Choose up to %d categories to focus on. ", app.MaxOnboardingCategories))
	text.WriteString(fmt.Sprintf("Selected: %d/%d", len(snap.State.SelectedCategories), app.MaxOnboardingCategories))

	maxReached := len(snap.State.SelectedCategories) >= app.MaxOnboardingCategories
	rows := categoryRows(snap.State, catalog, maxReached)
	rows = append(rows, []button{{Text: "Continue ➡️", Unique: uniqueComplete}})
	return screen{Text: text.String(), Rows: rows}
}

func renderDashboard(snap app.Snapshot, now time.Time) screen {
	var text strings.Builder
	text.WriteString(snap.CurrentAffirmation)
	text.WriteString("\n\n")
	text.WriteString(statsLine(snap.State, now))
	text.WriteString("\n")
	text.WriteString(notificationLine(snap))

	rows := [][]button{
		{
			{Text: "✨ Next", Unique: uniqueNext},
			{Text: "⚙️ Settings", Unique: uniqueSettings},
			{Text: bellIcon(snap.State.NotificationsEnabled), Unique: uniqueNotify},
		},
	}
	if snap.CanInstall {
		rows = append(rows, []button{{Text: "📲 Add command menu", Unique: uniqueInstall}})
	}
	return screen{Text: text.String(), Rows: rows}
}

func renderSettings(snap app.Snapshot, catalog *affirmation.Catalog) screen {
	draft := snap.DraftFrequency
	if draft == "" {
		draft = snap.State.NotificationFrequency
	}

	var text strings.Builder
	text.WriteString("Settings\n\n")
	text.WriteString("Frequency: ")
	text.WriteString(draft.Label())
	text.WriteString("\nCategories: ")
	text.WriteString(fmt.Sprintf("%d selected", len(snap.State.SelectedCategories)))

	var rows [][]button
	var freqRow []button
	for _, f := range session.Frequencies {
		label := f.Label()
		if f == draft {
			label = "● " + label
		}
		freqRow = append(freqRow, button{Text: label, Unique: uniqueFrequency, Data: string(f)})
		if len(freqRow) == 2 {
			rows = append(rows, freqRow)
			freqRow = nil
		}
	}
	if len(freqRow) > 0 {
		rows = append(rows, freqRow)
	}

	rows = append(rows, categoryRows(snap.State, catalog, false)...)
	rows = append(rows, []button{
		{Text: "💾 Save", Unique: uniqueSave},
		{Text: "✖️ Cancel", Unique: uniqueCancel},
	})
	return screen{Text: text.String(), Rows: rows}
}

// categoryRows lays out category toggles two per row. Unselected categories
// are shown locked once the onboarding limit is reached.
func categoryRows(state session.State, catalog *affirmation.Catalog, locked bool) [][]button {
	var rows [][]button
	var row []button
	for _, cat := range catalog.AllCategories() {
		mark := ""
		switch {
		case state.IsSelected(cat.ID):
			mark = "✅ "
		case locked:
			mark = "🔒 "
		}
		row = append(row, button{
			Text:   mark + cat.Icon + " " + cat.DisplayName,
			Unique: uniqueCategory,
			Data:   cat.ID,
		})
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}

// displayCount hides a counter left over from a previous day.
func displayCount(state session.State, now time.Time) int {
	if !session.SameLocalDay(state.LastNotificationTime, now) {
		return 0
	}
	return state.TodayCount
}

func statsLine(state session.State, now time.Time) string {
	return fmt.Sprintf("Today: %d · Active categories: %d", displayCount(state, now), len(state.SelectedCategories))
}

func notificationLine(snap app.Snapshot) string {
	if !snap.State.NotificationsEnabled {
		return "Notifications: off 🔕"
	}
	line := "Notifications: on 🔔 (" + snap.State.NotificationFrequency.Label()
	if snap.ScheduleInterval > 0 {
		line += ", every " + snap.ScheduleInterval.Round(time.Minute).String()
	}
	return line + ")"
}

func bellIcon(enabled bool) string {
	if enabled {
		return "🔔"
	}
	return "🔕"
}

func helpText() string {
	var b strings.Builder
	b.WriteString("I send you short affirmations from the categories you pick.\n\n")
	for _, cmd := range BotCommands {
		b.WriteString("/")
		b.WriteString(cmd.Text)
		b.WriteString(" - ")
		b.WriteString(cmd.Description)
		b.WriteString("\n")
	}
	b.WriteString("/start - Open the current screen")
	return b.String()
}
