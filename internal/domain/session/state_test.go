package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seqRand struct{ values []int }

func (r *seqRand) IntN(n int) int {
	v := r.values[0]
	r.values = r.values[1:]
	return v % n
}

func knownIDs(ids ...string) func(string) bool {
	set := map[string]bool{}
	for _, id := range ids {
		set[id] = true
	}
	return func(id string) bool { return set[id] }
}

func TestFrequencyInterval(t *testing.T) {
	assert.Equal(t, 3_600_000*time.Millisecond, FrequencyHourly.Interval(nil))
	assert.Equal(t, 7_200_000*time.Millisecond, Frequency2Hours.Interval(nil))
	assert.Equal(t, 14_400_000*time.Millisecond, Frequency4Hours.Interval(nil))

	// IntN(6) → 0 means three per day, 5 means eight per day.
	assert.Equal(t, 86_400_000*time.Millisecond/3, FrequencyRandom.Interval(&seqRand{values: []int{0}}))
	assert.Equal(t, 86_400_000*time.Millisecond/8, FrequencyRandom.Interval(&seqRand{values: []int{5}}))
}

func TestParseFrequency(t *testing.T) {
	for _, f := range Frequencies {
		got, ok := ParseFrequency(string(f))
		assert.True(t, ok)
		assert.Equal(t, f, got)
	}
	_, ok := ParseFrequency("bogus")
	assert.False(t, ok)
}

func TestRecordAffirmation_SameDayAccumulates(t *testing.T) {
	state := Defaults()
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)

	for i := 0; i < 5; i++ {
		state.RecordAffirmation(base.Add(time.Duration(i) * time.Hour))
	}
	assert.Equal(t, 5, state.TodayCount)

	state.RecordAffirmation(base.AddDate(0, 0, 1))
	assert.Equal(t, 1, state.TodayCount)
	require.NotNil(t, state.LastNotificationTime)
	assert.True(t, state.LastNotificationTime.Equal(base.AddDate(0, 0, 1)))
}

func TestRecordAffirmation_ResetsStaleCounter(t *testing.T) {
	last := time.Date(2026, 3, 9, 23, 59, 0, 0, time.UTC)
	state := Defaults()
	state.TodayCount = 12
	state.LastNotificationTime = &last

	state.RecordAffirmation(time.Date(2026, 3, 10, 0, 1, 0, 0, time.UTC))
	assert.Equal(t, 1, state.TodayCount)
}

func TestSameLocalDay_UsesNowLocation(t *testing.T) {
	zone := time.FixedZone("UTC+3", 3*60*60)
	// 22:30 UTC is already the next day at UTC+3.
	last := time.Date(2026, 3, 9, 22, 30, 0, 0, time.UTC)
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, zone)
	assert.True(t, SameLocalDay(&last, now))
	assert.False(t, SameLocalDay(nil, now))
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	// Decoded timestamps are UTC, so fixtures use UTC for deep equality.
	ts := time.Date(2026, 1, 2, 3, 4, 5, 678_000_000, time.UTC)
	cases := []State{
		Defaults(),
		{
			SelectedCategories:    []string{"abundance", "peace"},
			NotificationFrequency: Frequency2Hours,
			NotificationsEnabled:  true,
			TodayCount:            4,
			LastNotificationTime:  &ts,
			FirstRun:              false,
		},
		{
			SelectedCategories:    []string{"love"},
			NotificationFrequency: FrequencyRandom,
			TodayCount:            0,
			FirstRun:              true,
		},
	}

	for _, want := range cases {
		data, err := Encode(want)
		require.NoError(t, err)

		got, repaired := Decode(data, knownIDs("abundance", "peace", "love"))
		assert.Empty(t, repaired)
		assert.Equal(t, want, got)
	}
}

func TestDecode_TimestampNormalizedToUTC(t *testing.T) {
	zone := time.FixedZone("UTC+5", 5*60*60)
	ts := time.Date(2026, 3, 1, 23, 30, 0, 0, zone)
	data, err := Encode(State{SelectedCategories: []string{}, NotificationFrequency: FrequencyHourly, LastNotificationTime: &ts})
	require.NoError(t, err)

	got, repaired := Decode(data, nil)
	assert.Empty(t, repaired)
	require.NotNil(t, got.LastNotificationTime)
	assert.True(t, ts.Equal(*got.LastNotificationTime))
	assert.Equal(t, time.UTC, got.LastNotificationTime.Location())
	assert.True(t, SameLocalDay(got.LastNotificationTime, time.Date(2026, 3, 1, 23, 59, 0, 0, zone)))
}

func TestDecode_EmptyObjectYieldsDefaults(t *testing.T) {
	got, repaired := Decode([]byte(`{}`), nil)
	assert.Empty(t, repaired)
	assert.Equal(t, Defaults(), got)
}

func TestDecode_MalformedYieldsDefaults(t *testing.T) {
	for _, blob := range []string{``, `not json`, `[1,2]`, `null`, `{"firstRun":`} {
		got, repaired := Decode([]byte(blob), nil)
		assert.Equal(t, Defaults(), got, "blob %q", blob)
		assert.NotEmpty(t, repaired)
	}
}

func TestDecode_BogusFrequencyNormalized(t *testing.T) {
	got, repaired := Decode([]byte(`{"notificationFrequency":"bogus"}`), nil)
	assert.Equal(t, FrequencyHourly, got.NotificationFrequency)
	assert.Equal(t, []string{"notificationFrequency"}, repaired)
}

func TestDecode_RepairsFieldByField(t *testing.T) {
	blob := `{
		"selectedCategories": ["love", "ghost", "love", "peace"],
		"notificationFrequency": 7,
		"notificationsEnabled": "yes",
		"todayCount": -2,
		"lastNotificationTime": "yesterday",
		"firstRun": false
	}`
	got, repaired := Decode([]byte(blob), knownIDs("love", "peace"))

	assert.Equal(t, []string{"love", "peace"}, got.SelectedCategories)
	assert.Equal(t, FrequencyHourly, got.NotificationFrequency)
	assert.False(t, got.NotificationsEnabled)
	assert.Equal(t, 0, got.TodayCount)
	assert.Nil(t, got.LastNotificationTime)
	assert.False(t, got.FirstRun)
	assert.ElementsMatch(t, []string{
		"selectedCategories", "notificationFrequency", "notificationsEnabled", "todayCount", "lastNotificationTime",
	}, repaired)
}

func TestDecode_AcceptsBrowserISOTimestamp(t *testing.T) {
	got, repaired := Decode([]byte(`{"lastNotificationTime":"2025-06-01T08:15:30.123Z","todayCount":2}`), nil)
	assert.Empty(t, repaired)
	require.NotNil(t, got.LastNotificationTime)
	assert.True(t, got.LastNotificationTime.Equal(time.Date(2025, 6, 1, 8, 15, 30, 123_000_000, time.UTC)))
	assert.Equal(t, 2, got.TodayCount)
}

func TestClone_IsDeep(t *testing.T) {
	ts := time.Now()
	orig := Defaults()
	orig.SelectedCategories = []string{"love"}
	orig.LastNotificationTime = &ts

	cp := orig.Clone()
	cp.SelectedCategories[0] = "peace"
	*cp.LastNotificationTime = ts.Add(time.Hour)

	assert.Equal(t, "love", orig.SelectedCategories[0])
	assert.True(t, orig.LastNotificationTime.Equal(ts))
}
