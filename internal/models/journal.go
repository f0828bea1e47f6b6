package models

import (
	"strings"
	"time"
)

// Mood is one label of the closed mood set.
type Mood string

const (
	MoodHappy    Mood = "happy"
	MoodSad      Mood = "sad"
	MoodAnxious  Mood = "anxious"
	MoodStressed Mood = "stressed"
	MoodTired    Mood = "tired"
	MoodNeutral  Mood = "neutral"
)

// AllMoods lists every label in a fixed order.
var AllMoods = []Mood{MoodHappy, MoodSad, MoodAnxious, MoodStressed, MoodTired, MoodNeutral}

// ParseMood normalizes s and reports whether it names a known mood.
func ParseMood(s string) (Mood, bool) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllMoods {
		if m == known {
			return m, true
		}
	}
	return MoodNeutral, false
}

// JournalEntry represents a private journaling entry owned by a single user
type JournalEntry struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Context   string    `json:"context"`
	Mood      Mood      `json:"mood"`
	Insight   string    `json:"insight,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// AnalysisSource tells where an analysis came from.
type AnalysisSource string

const (
	SourceLocal  AnalysisSource = "local"
	SourceRemote AnalysisSource = "remote"
)

// Analysis is a mood label plus a supportive insight.
type Analysis struct {
	Insight string         `json:"insight"`
	Mood    Mood           `json:"mood"`
	Source  AnalysisSource `json:"source"`
}

// EntryPage is one page of an owner's entries, most recent first.
type EntryPage struct {
	Entries    []JournalEntry `json:"entries"`
	Page       int            `json:"page"`
	Total      int64          `json:"total"`
	TotalPages int            `json:"totalPages"`
}

// DayMood is the dominant mood of a single calendar day.
type DayMood struct {
	Date  string `json:"date"`
	Mood  Mood   `json:"mood"`
	Count int    `json:"count"`
}

// MoodStats aggregates an owner's journal for the dashboard.
type MoodStats struct {
	Total      int64        `json:"total"`
	Last30Days int          `json:"last30Days"`
	StreakDays int          `json:"streakDays"`
	MoodCounts map[Mood]int `json:"moodCounts"`
	Trend      []DayMood    `json:"trend"`
	Timezone   string       `json:"timezone"`
}
