package scheduler

import (
	"math"
	"time"

	"github.com/avieira/cardbox/internal/models"
)

// Apply computes a card's next scheduling state from a review outcome using
// an SM-2 variant with three response buckets. It is pure; the caller is
// responsible for validating response and persisting the result.
//
// AGAIN resets the card: repetitions and interval go to zero and the ease
// factor drops by 0.2, clamped at the 1.3 floor. HARD and EASY walk the
// 1-day / fixed-second-step / multiply ladder, HARD with a 0.8 damping on
// the multiplier and a 0.15 ease penalty (also floored), EASY with a 0.1
// ease bonus that has no upper bound. The next review lands interval
// calendar days after now, keeping now's time of day.
func Apply(card models.Card, response models.Response, now time.Time) models.Card {
	switch response {
	case models.ResponseAgain:
		card.Repetitions = 0
		card.IntervalDays = 0
		card.EaseFactor = clampEase(card.EaseFactor - 0.2)

	case models.ResponseHard:
		switch card.Repetitions {
		case 0:
			card.IntervalDays = 1
		case 1:
			card.IntervalDays = 3
		default:
			card.IntervalDays = roundDays(float64(card.IntervalDays) * card.EaseFactor * 0.8)
		}
		card.EaseFactor = clampEase(card.EaseFactor - 0.15)
		card.Repetitions++

	case models.ResponseEasy:
		switch card.Repetitions {
		case 0:
			card.IntervalDays = 1
		case 1:
			card.IntervalDays = 6
		default:
			card.IntervalDays = roundDays(float64(card.IntervalDays) * card.EaseFactor)
		}
		card.EaseFactor += 0.1
		card.Repetitions++
	}

	card.NextReviewAt = now.AddDate(0, 0, card.IntervalDays)
	return card
}

// Reset returns the card with its scheduling state reinitialized, as on
// creation: immediately due, default ease, no repetition streak.
func Reset(card models.Card, now time.Time) models.Card {
	card.IntervalDays = 0
	card.EaseFactor = models.InitialEaseFactor
	card.Repetitions = 0
	card.NextReviewAt = now
	return card
}

func clampEase(ef float64) float64 {
	if ef < models.MinEaseFactor {
		return models.MinEaseFactor
	}
	return ef
}

// roundDays rounds half-up; intervals only ever grow from non-negative
// products, so half away from zero is the same thing.
func roundDays(days float64) int {
	return int(math.Round(days))
}
