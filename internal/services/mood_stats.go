package services

import (
	"sort"
	"time"

	"github.com/AnshRaj112/serenify-journal/internal/models"
)

const (
	// StatsWindowDays is the "last 30 days" window, inclusive of today.
	StatsWindowDays = 30
	// StreakLookbackDays bounds how far back a streak is followed.
	StreakLookbackDays = 366
)

const dayLayout = "2006-01-02"

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// statsLookbackStart is the earliest instant ComputeMoodStats needs entries from.
func statsLookbackStart(now time.Time, loc *time.Location) time.Time {
	return startOfDay(now, loc).AddDate(0, 0, -StreakLookbackDays)
}

// ComputeMoodStats aggregates entries (any order) created since statsLookbackStart.
// Days are calendar days in loc. Unknown or empty moods count as neutral.
func ComputeMoodStats(entries []models.JournalEntry, total int64, now time.Time, loc *time.Location) models.MoodStats {
	today := startOfDay(now, loc)
	windowStart := today.AddDate(0, 0, -StatsWindowDays)

	stats := models.MoodStats{
		Total:      total,
		MoodCounts: make(map[models.Mood]int, len(models.AllMoods)),
		Trend:      []models.DayMood{},
		Timezone:   loc.String(),
	}
	for _, m := range models.AllMoods {
		stats.MoodCounts[m] = 0
	}

	activeDays := make(map[string]bool)
	perDay := make(map[string]map[models.Mood]int)

	for _, e := range entries {
		day := startOfDay(e.CreatedAt, loc)
		key := day.Format(dayLayout)
		activeDays[key] = true

		if day.Before(windowStart) || day.After(today) {
			continue
		}
		mood, ok := models.ParseMood(string(e.Mood))
		if !ok {
			mood = models.MoodNeutral
		}
		stats.Last30Days++
		stats.MoodCounts[mood]++
		if perDay[key] == nil {
			perDay[key] = make(map[models.Mood]int)
		}
		perDay[key][mood]++
	}

	for i := 0; i < StreakLookbackDays; i++ {
		if !activeDays[today.AddDate(0, 0, -i).Format(dayLayout)] {
			break
		}
		stats.StreakDays++
	}

	for key, counts := range perDay {
		stats.Trend = append(stats.Trend, dominantMood(key, counts))
	}
	sort.Slice(stats.Trend, func(i, j int) bool {
		return stats.Trend[i].Date < stats.Trend[j].Date
	})

	return stats
}

// dominantMood picks the day's most frequent mood; ties give neutral.
func dominantMood(date string, counts map[models.Mood]int) models.DayMood {
	out := models.DayMood{Date: date, Mood: models.MoodNeutral}
	best, tied := 0, false
	for _, m := range models.AllMoods {
		n := counts[m]
		out.Count += n
		switch {
		case n > best:
			out.Mood, best, tied = m, n, false
		case n == best && n > 0:
			tied = true
		}
	}
	if tied {
		out.Mood = models.MoodNeutral
	}
	return out
}
