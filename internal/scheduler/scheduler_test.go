package scheduler_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avieira/cardbox/internal/models"
	"github.com/avieira/cardbox/internal/scheduler"
)

func newCard() models.Card {
	return models.Card{
		IntervalDays: 0,
		EaseFactor:   models.InitialEaseFactor,
		Repetitions:  0,
	}
}

func TestApply_Again(t *testing.T) {
	now := time.Now()
	card := models.Card{IntervalDays: 10, EaseFactor: 2.0, Repetitions: 2}

	updated := scheduler.Apply(card, models.ResponseAgain, now)

	assert.Equal(t, 0, updated.IntervalDays, "interval should reset to 0")
	assert.Equal(t, 0, updated.Repetitions, "repetitions should reset to 0")
	assert.InDelta(t, 1.8, updated.EaseFactor, 1e-9, "ease factor should drop by 0.2")
	assert.True(t, updated.NextReviewAt.Equal(now), "card should be immediately due again")
}

func TestApply_Hard(t *testing.T) {
	now := time.Now()
	card := models.Card{IntervalDays: 10, EaseFactor: 2.0, Repetitions: 2}

	updated := scheduler.Apply(card, models.ResponseHard, now)

	assert.Equal(t, 16, updated.IntervalDays, "interval should be round(10 * 2.0 * 0.8)")
	assert.InDelta(t, 1.85, updated.EaseFactor, 1e-9, "ease factor should drop by 0.15")
	assert.Equal(t, 3, updated.Repetitions)
	assert.True(t, updated.NextReviewAt.Equal(now.AddDate(0, 0, 16)))
}

func TestApply_HardSteps(t *testing.T) {
	now := time.Now()

	card := newCard()
	card = scheduler.Apply(card, models.ResponseHard, now)
	assert.Equal(t, 1, card.IntervalDays, "first hard review should schedule 1 day out")
	assert.Equal(t, 1, card.Repetitions)

	card = scheduler.Apply(card, models.ResponseHard, now)
	assert.Equal(t, 3, card.IntervalDays, "second hard review should schedule 3 days out")
	assert.Equal(t, 2, card.Repetitions)
}

func TestApply_EasySequence(t *testing.T) {
	now := time.Now()
	card := newCard()

	// Third step multiplies by the stored ease, already bumped twice: round(6 * 2.7).
	wantIntervals := []int{1, 6, 16}
	wantEase := []float64{2.6, 2.7, 2.8}

	for i := range wantIntervals {
		card = scheduler.Apply(card, models.ResponseEasy, now)
		require.Equal(t, wantIntervals[i], card.IntervalDays, "interval after %d easy reviews", i+1)
		require.InDelta(t, wantEase[i], card.EaseFactor, 1e-9, "ease after %d easy reviews", i+1)
		require.Equal(t, i+1, card.Repetitions)
	}
}

func TestApply_EaseFloor(t *testing.T) {
	now := time.Now()
	card := models.Card{IntervalDays: 10, EaseFactor: 1.35, Repetitions: 4}

	for i := 0; i < 20; i++ {
		card = scheduler.Apply(card, models.ResponseAgain, now)
		require.GreaterOrEqual(t, card.EaseFactor, models.MinEaseFactor,
			"ease factor must never drop below 1.3")
	}
	assert.Equal(t, 0, card.IntervalDays)
	assert.Equal(t, 0, card.Repetitions)
}

func TestApply_HardEaseFloor(t *testing.T) {
	now := time.Now()
	card := models.Card{IntervalDays: 4, EaseFactor: 1.3, Repetitions: 2}

	card = scheduler.Apply(card, models.ResponseHard, now)

	assert.Equal(t, models.MinEaseFactor, card.EaseFactor, "hard transitions are floored too")
	assert.Equal(t, 4, card.IntervalDays, "round(4 * 1.3 * 0.8) = round(4.16)")
}

func TestApply_EasyEaseUnbounded(t *testing.T) {
	now := time.Now()
	card := newCard()

	for i := 0; i < 50; i++ {
		card = scheduler.Apply(card, models.ResponseEasy, now)
	}
	assert.InDelta(t, 2.5+50*0.1, card.EaseFactor, 1e-9, "easy has no ease ceiling")
	assert.Equal(t, 50, card.Repetitions)
	assert.Greater(t, card.IntervalDays, 365, "interval growth is uncapped")
}

func TestApply_RoundingHalfUp(t *testing.T) {
	now := time.Now()
	// 5 * 1.3 = 6.5 rounds up to 7.
	card := models.Card{IntervalDays: 5, EaseFactor: 1.3, Repetitions: 2}

	card = scheduler.Apply(card, models.ResponseEasy, now)

	assert.Equal(t, 7, card.IntervalDays)
}

func TestApply_PreservesTimeOfDay(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	card := models.Card{IntervalDays: 6, EaseFactor: 2.5, Repetitions: 2}

	card = scheduler.Apply(card, models.ResponseEasy, now)

	assert.Equal(t, 15, card.IntervalDays)
	assert.Equal(t, time.Date(2026, 3, 29, 9, 26, 53, 0, time.UTC), card.NextReviewAt)
}

func TestReset(t *testing.T) {
	now := time.Now()
	card := models.Card{IntervalDays: 42, EaseFactor: 3.1, Repetitions: 9}

	card = scheduler.Reset(card, now)

	assert.Equal(t, 0, card.IntervalDays)
	assert.Equal(t, models.InitialEaseFactor, card.EaseFactor)
	assert.Equal(t, 0, card.Repetitions)
	assert.True(t, card.NextReviewAt.Equal(now))

	// Resetting twice is a no-op beyond the timestamp.
	again := scheduler.Reset(card, now)
	assert.Equal(t, card, again)
}
