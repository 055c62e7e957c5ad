package models

import "time"

// Scheduling defaults for a freshly created card.
const (
	InitialEaseFactor = 2.5
	MinEaseFactor     = 1.3
)

type Card struct {
	ID           int64     `json:"id"`
	GroupID      int64     `json:"group_id"`
	Front        string    `json:"front"`
	Back         string    `json:"back"`
	MediaRef     string    `json:"media_ref,omitempty"`
	NextReviewAt time.Time `json:"next_review_at"`
	IntervalDays int       `json:"interval_days"`
	EaseFactor   float64   `json:"ease_factor"`
	Repetitions  int       `json:"repetitions"`
	CreatedAt    time.Time `json:"created_at"`
}

// Due reports whether the card is scheduled at or before now.
func (c Card) Due(now time.Time) bool {
	return !c.NextReviewAt.After(now)
}
