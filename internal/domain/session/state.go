// internal/domain/session/state.go
package session

import (
	"time"

	"ambient_validation_bot/internal/domain/affirmation"
)

// Frequency is the configured notification cadence.
type Frequency string

const (
	FrequencyHourly Frequency = "hourly"
	Frequency2Hours Frequency = "2hours"
	Frequency4Hours Frequency = "4hours"
	FrequencyRandom Frequency = "random"
)

// DefaultFrequency applies to fresh installs and unknown persisted values.
const DefaultFrequency = FrequencyHourly

const (
	day = 24 * time.Hour

	randomMinPerDay = 3
	randomMaxPerDay = 8
)

// Frequencies lists every cadence in display order.
var Frequencies = []Frequency{FrequencyHourly, Frequency2Hours, Frequency4Hours, FrequencyRandom}

// ParseFrequency validates a raw frequency value.
func ParseFrequency(raw string) (Frequency, bool) {
	for _, f := range Frequencies {
		if string(f) == raw {
			return f, true
		}
	}
	return "", false
}

// Interval returns the repeat interval for the cadence. For FrequencyRandom
// a per-day count in [3, 8] is drawn from rng and the day is split evenly;
// callers draw once per schedule start.
func (f Frequency) Interval(rng affirmation.Rand) time.Duration {
	switch f {
	case Frequency2Hours:
		return 2 * time.Hour
	case Frequency4Hours:
		return 4 * time.Hour
	case FrequencyRandom:
		perDay := randomMinPerDay + rng.IntN(randomMaxPerDay-randomMinPerDay+1)
		return day / time.Duration(perDay)
	default:
		return time.Hour
	}
}

// Label is the human readable cadence name.
func (f Frequency) Label() string {
	switch f {
	case Frequency2Hours:
		return "Every 2 hours"
	case Frequency4Hours:
		return "Every 4 hours"
	case FrequencyRandom:
		return "Random (3-8 times a day)"
	default:
		return "Hourly"
	}
}

// State is the persisted user state. It survives restarts and is written
// after every mutation.
type State struct {
	SelectedCategories    []string   `json:"selectedCategories"`
	NotificationFrequency Frequency  `json:"notificationFrequency"`
	NotificationsEnabled  bool       `json:"notificationsEnabled"`
	TodayCount            int        `json:"todayCount"`
	LastNotificationTime  *time.Time `json:"lastNotificationTime"`
	FirstRun              bool       `json:"firstRun"`
}

// Defaults is the state of a fresh install.
func Defaults() State {
	return State{
		SelectedCategories:    []string{},
		NotificationFrequency: DefaultFrequency,
		FirstRun:              true,
	}
}

// Clone returns a deep copy.
func (s State) Clone() State {
	out := s
	out.SelectedCategories = append([]string{}, s.SelectedCategories...)
	if s.LastNotificationTime != nil {
		ts := *s.LastNotificationTime
		out.LastNotificationTime = &ts
	}
	return out
}

// IsSelected reports whether the category is in the selection.
func (s State) IsSelected(id string) bool {
	for _, sel := range s.SelectedCategories {
		if sel == id {
			return true
		}
	}
	return false
}

// RecordAffirmation applies the daily counter rule for an affirmation
// delivered at now: the counter restarts when the last delivery fell on a
// different local calendar date (or never happened), then increments.
func (s *State) RecordAffirmation(now time.Time) {
	if !SameLocalDay(s.LastNotificationTime, now) {
		s.TodayCount = 0
	}
	s.TodayCount++
	ts := now
	s.LastNotificationTime = &ts
}

// SameLocalDay compares calendar dates in now's location. A nil last
// timestamp never matches.
func SameLocalDay(last *time.Time, now time.Time) bool {
	if last == nil {
		return false
	}
	ly, lm, ld := last.In(now.Location()).Date()
	ny, nm, nd := now.Date()
	return ly == ny && lm == nm && ld == nd
}
