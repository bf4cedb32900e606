// Package mood maps sentiment polarity scores to scripted supportive
// responses and exercise suggestions.
package mood

import "moodmate/pkg/domain"

// Response is the classifier output for one mood score.
type Response struct {
	Text     string
	Exercise domain.ExerciseType
}

// Classify maps a polarity score in [-1, 1] to a supportive response.
// Bands are checked in order; the first match wins. The boundaries are
// load-bearing: 0.5 and 0 belong to the band below them, -0.5 to the
// bottom band.
func Classify(score float64) Response {
	switch {
	case score > 0.5:
		return Response{
			Text:     "I'm glad to hear you're feeling positive! Would you like to try a breathing exercise to maintain this good mood?",
			Exercise: domain.ExerciseBreathing,
		}
	case score > 0:
		return Response{
			Text:     "I'm happy you're doing okay. Would you like to try some positive affirmations to boost your mood further?",
			Exercise: domain.ExerciseAffirmations,
		}
	case score > -0.5:
		return Response{
			Text:     "I understand you might be feeling a bit down. Would you like to try a guided breathing exercise to help you feel better?",
			Exercise: domain.ExerciseBreathing,
		}
	default:
		return Response{
			Text:     "I'm here to support you. Would you like to try a calming self-hypnosis session to help you feel more at peace?",
			Exercise: domain.ExerciseHypnosis,
		}
	}
}

// Exercises returns the static self-help exercise catalog.
func Exercises() []domain.Exercise {
	return []domain.Exercise{
		{
			Type:        domain.ExerciseBreathing,
			Title:       "Guided Breathing",
			Duration:    "5 minutes",
			Description: "A calming breathing exercise to reduce stress",
		},
		{
			Type:        domain.ExerciseAffirmations,
			Title:       "Positive Affirmations",
			Duration:    "3 minutes",
			Description: "Uplifting statements to boost mood",
		},
		{
			Type:        domain.ExerciseHypnosis,
			Title:       "Self-Hypnosis",
			Duration:    "10 minutes",
			Description: "Deep relaxation and positive suggestion",
		},
	}
}
