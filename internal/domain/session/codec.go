package session

import (
	"encoding/json"
	"fmt"
	"time"
)

// Encode serializes the state as the flat JSON object stored under StateKey.
func Encode(s State) ([]byte, error) {
	if s.SelectedCategories == nil {
		s.SelectedCategories = []string{}
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session state: %w", err)
	}
	return data, nil
}

// Decode parses a persisted blob, repairing field by field. Missing or
// malformed fields keep their default, unknown frequencies become the
// default frequency, and category ids rejected by known (or repeated) are
// dropped. The returned slice names every field that had to be repaired.
// Decode never fails.
func Decode(data []byte, known func(id string) bool) (State, []string) {
	state := Defaults()
	var repaired []string

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return state, []string{"*"}
	}

	if v, ok := raw["selectedCategories"]; ok {
		var ids []string
		if err := json.Unmarshal(v, &ids); err != nil {
			repaired = append(repaired, "selectedCategories")
		} else {
			seen := make(map[string]bool, len(ids))
			for _, id := range ids {
				if seen[id] || (known != nil && !known(id)) {
					continue
				}
				seen[id] = true
				state.SelectedCategories = append(state.SelectedCategories, id)
			}
			if len(state.SelectedCategories) != len(ids) {
				repaired = append(repaired, "selectedCategories")
			}
		}
	}

	if v, ok := raw["notificationFrequency"]; ok {
		var rawFreq string
		freq, valid := Frequency(""), false
		if err := json.Unmarshal(v, &rawFreq); err == nil {
			freq, valid = ParseFrequency(rawFreq)
		}
		if valid {
			state.NotificationFrequency = freq
		} else {
			repaired = append(repaired, "notificationFrequency")
		}
	}

	if v, ok := raw["notificationsEnabled"]; ok {
		if err := json.Unmarshal(v, &state.NotificationsEnabled); err != nil {
			state.NotificationsEnabled = false
			repaired = append(repaired, "notificationsEnabled")
		}
	}

	if v, ok := raw["todayCount"]; ok {
		var count int
		if err := json.Unmarshal(v, &count); err != nil || count < 0 {
			repaired = append(repaired, "todayCount")
		} else {
			state.TodayCount = count
		}
	}

	if v, ok := raw["lastNotificationTime"]; ok {
		var rawTS *string
		if err := json.Unmarshal(v, &rawTS); err != nil {
			repaired = append(repaired, "lastNotificationTime")
		} else if rawTS != nil {
			ts, err := time.Parse(time.RFC3339Nano, *rawTS)
			if err != nil {
				repaired = append(repaired, "lastNotificationTime")
			} else {
				// Zone names are not persisted; callers compare in their own location.
				ts = ts.UTC()
				state.LastNotificationTime = &ts
			}
		}
	}

	if v, ok := raw["firstRun"]; ok {
		if err := json.Unmarshal(v, &state.FirstRun); err != nil {
			state.FirstRun = true
			repaired = append(repaired, "firstRun")
		}
	}

	return state, repaired
}
