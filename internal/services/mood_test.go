package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AnshRaj112/serenify-journal/internal/models"
)

func TestClassifyMood_SingleBucket(t *testing.T) {
	cases := []struct {
		text string
		want models.Mood
	}{
		{"Today I felt really happy and grateful", models.MoodHappy},
		{"I am so proud, what a JOY", models.MoodHappy},
		{"feeling lonely and heartbroken", models.MoodSad},
		{"I'm worried and nervous about tomorrow", models.MoodAnxious},
		{"So much pressure, I'm frustrated", models.MoodStressed},
		{"exhausted and sleepy after the shift", models.MoodTired},
		{"completely worn out", models.MoodTired},
	}

	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			got := ClassifyMood(tc.text)
			assert.Equal(t, tc.want, got.Mood)
			assert.Equal(t, models.SourceLocal, got.Source)
			assert.Equal(t, TipFor(tc.want), got.Insight)
		})
	}
}

func TestClassifyMood_EveryKeywordAloneSelectsItsBucket(t *testing.T) {
	for _, bucket := range moodBuckets {
		for _, kw := range bucket.keywords {
			if inOtherBucket(kw, bucket.mood) {
				continue
			}
			assert.Equal(t, bucket.mood, ClassifyMood(kw).Mood, "keyword %q", kw)
		}
	}
}

func inOtherBucket(text string, own models.Mood) bool {
	for _, bucket := range moodBuckets {
		if bucket.mood == own {
			continue
		}
		for _, kw := range bucket.keywords {
			if strings.Contains(text, kw) {
				return true
			}
		}
	}
	return false
}

func TestClassifyMood_NoKeywordIsNeutral(t *testing.T) {
	for _, text := range []string{"", "   ", "went to the market and bought apples", "12345"} {
		got := ClassifyMood(text)
		assert.Equal(t, models.MoodNeutral, got.Mood, "text %q", text)
		assert.NotEmpty(t, got.Insight)
	}
}

func TestClassifyMood_TieIsNeutral(t *testing.T) {
	assert.Equal(t, models.MoodNeutral, ClassifyMood("happy but sad").Mood)
	assert.Equal(t, models.MoodNeutral, ClassifyMood("tired and frustrated").Mood)
	// two keywords each
	assert.Equal(t, models.MoodNeutral, ClassifyMood("excited and proud, yet lonely and upset").Mood)
}

func TestClassifyMood_RepetitionCountsOnce(t *testing.T) {
	got := ClassifyMood("sad sad sad sad but grateful and excited")
	assert.Equal(t, models.MoodHappy, got.Mood)
}

func TestClassifyMood_SubstringMatchesCount(t *testing.T) {
	// "content" inside "discontented" still scores for happy
	assert.Equal(t, models.MoodHappy, ClassifyMood("discontented").Mood)
}

func TestClassifyMood_AnxiousOverwhelmed(t *testing.T) {
	got := ClassifyMood("I feel so anxious and overwhelmed today")
	assert.Equal(t, models.MoodAnxious, got.Mood)
	assert.NotEmpty(t, got.Insight)
}

func TestClassifyMood_OverwhelmedAloneIsStressed(t *testing.T) {
	for _, text := range []string{"overwhelmed", "I'm so overwhelmed with work"} {
		assert.Equal(t, models.MoodStressed, ClassifyMood(text).Mood, "text %q", text)
	}
}

func TestClassifyMood_NoKeywordCollidesAcrossBuckets(t *testing.T) {
	for _, bucket := range moodBuckets {
		for _, kw := range bucket.keywords {
			assert.False(t, inOtherBucket(kw, bucket.mood), "keyword %q also scores for another bucket", kw)
		}
	}
}

func TestClassifyMood_Deterministic(t *testing.T) {
	text := "Stressed, tense and burnt out but also a little tired"
	first := ClassifyMood(text)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, ClassifyMood(text))
	}
	assert.Equal(t, models.MoodStressed, first.Mood)
}

func TestTipFor_UnknownFallsBackToNeutral(t *testing.T) {
	assert.Equal(t, TipFor(models.MoodNeutral), TipFor(models.Mood("ecstatic")))
}
