package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshRaj112/serenify-journal/internal/models"
)

func entryAt(t time.Time, mood models.Mood) models.JournalEntry {
	return models.JournalEntry{Context: "x", Mood: mood, CreatedAt: t}
}

func TestComputeMoodStats(t *testing.T) {
	now := time.Date(2026, 10, 18, 15, 0, 0, 0, time.UTC)
	day := func(daysAgo int, hour int) time.Time {
		return time.Date(2026, 10, 18-daysAgo, hour, 0, 0, 0, time.UTC)
	}

	entries := []models.JournalEntry{
		entryAt(day(0, 9), models.MoodHappy),
		entryAt(day(0, 10), models.MoodHappy),
		entryAt(day(0, 11), models.MoodSad),
		entryAt(day(1, 8), models.MoodTired),
		entryAt(day(2, 8), models.Mood("")),
		entryAt(day(2, 9), models.Mood("grumpy")),
		entryAt(day(30, 8), models.MoodStressed),
		entryAt(day(31, 8), models.MoodAnxious),
	}

	stats := ComputeMoodStats(entries, 42, now, time.UTC)

	assert.EqualValues(t, 42, stats.Total)
	assert.Equal(t, 7, stats.Last30Days)
	assert.Equal(t, 3, stats.StreakDays)
	assert.Equal(t, map[models.Mood]int{
		models.MoodHappy:    2,
		models.MoodSad:      1,
		models.MoodAnxious:  0,
		models.MoodStressed: 1,
		models.MoodTired:    1,
		models.MoodNeutral:  2,
	}, stats.MoodCounts)

	require.Len(t, stats.Trend, 4)
	assert.Equal(t, models.DayMood{Date: "2026-09-18", Mood: models.MoodStressed, Count: 1}, stats.Trend[0])
	assert.Equal(t, models.DayMood{Date: "2026-10-16", Mood: models.MoodNeutral, Count: 2}, stats.Trend[1])
	assert.Equal(t, models.DayMood{Date: "2026-10-17", Mood: models.MoodTired, Count: 1}, stats.Trend[2])
	assert.Equal(t, models.DayMood{Date: "2026-10-18", Mood: models.MoodHappy, Count: 3}, stats.Trend[3])
}

func TestComputeMoodStats_NoEntryTodayBreaksStreak(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	entries := []models.JournalEntry{
		entryAt(now.AddDate(0, 0, -1), models.MoodHappy),
		entryAt(now.AddDate(0, 0, -2), models.MoodHappy),
	}

	stats := ComputeMoodStats(entries, 2, now, time.UTC)
	assert.Equal(t, 0, stats.StreakDays)
	assert.Equal(t, 2, stats.Last30Days)
}

func TestComputeMoodStats_TimezoneShiftsDays(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	now := time.Date(2026, 10, 18, 16, 0, 0, 0, time.UTC) // 01:00 on the 19th in Tokyo
	entries := []models.JournalEntry{
		entryAt(time.Date(2026, 10, 18, 14, 0, 0, 0, time.UTC), models.MoodSad), // 23:00 on the 18th in Tokyo
	}

	utc := ComputeMoodStats(entries, 1, now, time.UTC)
	assert.Equal(t, 1, utc.StreakDays)

	jst := ComputeMoodStats(entries, 1, now, tokyo)
	assert.Equal(t, 0, jst.StreakDays)
	assert.Equal(t, "JST", jst.Timezone)
	require.Len(t, jst.Trend, 1)
	assert.Equal(t, "2026-10-18", jst.Trend[0].Date)
}

func TestComputeMoodStats_Empty(t *testing.T) {
	stats := ComputeMoodStats(nil, 0, time.Now(), time.UTC)

	assert.Zero(t, stats.Last30Days)
	assert.Zero(t, stats.StreakDays)
	assert.NotNil(t, stats.Trend)
	assert.Len(t, stats.MoodCounts, len(models.AllMoods))
}

func TestDominantMood_TieIsNeutral(t *testing.T) {
	got := dominantMood("2026-01-01", map[models.Mood]int{models.MoodHappy: 2, models.MoodSad: 2, models.MoodTired: 1})
	assert.Equal(t, models.MoodNeutral, got.Mood)
	assert.Equal(t, 5, got.Count)
}
