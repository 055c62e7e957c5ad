package models

import "time"

// Response is a review outcome.
type Response string

const (
	ResponseAgain Response = "again"
	ResponseHard  Response = "hard"
	ResponseEasy  Response = "easy"
)

// Valid reports whether r is one of the three review outcomes.
func (r Response) Valid() bool {
	switch r {
	case ResponseAgain, ResponseHard, ResponseEasy:
		return true
	}
	return false
}

// Review is an immutable record of a single review outcome. Rows are
// append-only and removed only by a group progress reset.
type Review struct {
	ID         int64     `json:"id"`
	CardID     int64     `json:"card_id"`
	Response   Response  `json:"response"`
	ReviewedAt time.Time `json:"reviewed_at"`
}
