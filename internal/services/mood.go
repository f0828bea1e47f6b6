package services

import (
	"strings"

	"github.com/AnshRaj112/serenify-journal/internal/models"
)

// moodBucket is one row of the keyword table.
type moodBucket struct {
	mood     models.Mood
	keywords []string
}

// moodBuckets is traversed in this order; keep it fixed so scoring stays reproducible.
// Keywords are substring stems, so "burn" style partial matches inside longer words count.
var moodBuckets = []moodBucket{
	{models.MoodHappy, []string{"happy", "grateful", "excited", "proud", "joy", "accomplished", "calm", "content"}},
	{models.MoodSad, []string{"sad", "down", "lonely", "blue", "depressed", "heartbroken", "upset"}},
	{models.MoodAnxious, []string{"anxious", "anxiety", "worried", "nervous", "panic", "overthinking", "uneasy", "afraid", "anx"}},
	{models.MoodStressed, []string{"stressed", "overwhelmed", "burnt", "burned", "pressure", "tense", "frustrated"}},
	{models.MoodTired, []string{"tired", "exhausted", "fatigued", "sleepy", "drained", "worn out"}},
}

var moodTips = map[models.Mood]string{
	models.MoodHappy:    "Savor this moment. Write down one thing that made it special so you can come back to it later.",
	models.MoodSad:      "It is okay to feel heavy. What is one small kindness you can offer yourself tonight?",
	models.MoodAnxious:  "Your body is trying to protect you. Try box breathing (4-4-4-4) for one minute and put off big decisions until you feel calmer.",
	models.MoodStressed: "Name the one or two biggest stressors and pick a ten minute next step. Tiny progress lightens the load.",
	models.MoodTired:    "Your energy is finite. Consider swapping one task for rest; future you will be grateful.",
	models.MoodNeutral:  "A quick gratitude note or a five minute walk can nudge your day in a good direction.",
}

// ClassifyMood scores text against the keyword table. A keyword counts at most once.
// The single strictly highest bucket wins; ties and zero scores give neutral.
// It never fails.
func ClassifyMood(text string) models.Analysis {
	t := strings.ToLower(text)

	best := models.MoodNeutral
	bestScore := 0
	tied := false

	for _, bucket := range moodBuckets {
		score := 0
		for _, kw := range bucket.keywords {
			if strings.Contains(t, kw) {
				score++
			}
		}
		switch {
		case score > bestScore:
			best, bestScore, tied = bucket.mood, score, false
		case score == bestScore && score > 0:
			tied = true
		}
	}

	if bestScore == 0 || tied {
		best = models.MoodNeutral
	}

	return models.Analysis{
		Mood:    best,
		Insight: TipFor(best),
		Source:  models.SourceLocal,
	}
}

// TipFor returns the static supportive tip for mood.
func TipFor(mood models.Mood) string {
	if tip, ok := moodTips[mood]; ok {
		return tip
	}
	return moodTips[models.MoodNeutral]
}
