package models

import "time"

// MatureIntervalDays is the interval at which a card counts as mature.
const MatureIntervalDays = 21

// CardStats combines a card's full review-history tallies with its current
// scheduling fields.
type CardStats struct {
	CardID       int64     `json:"card_id"`
	TotalReviews int       `json:"total_reviews"`
	EasyCount    int       `json:"easy_count"`
	HardCount    int       `json:"hard_count"`
	AgainCount   int       `json:"again_count"`
	IntervalDays int       `json:"interval_days"`
	EaseFactor   float64   `json:"ease_factor"`
	Repetitions  int       `json:"repetitions"`
	NextReviewAt time.Time `json:"next_review_at"`
}

// GroupStats classifies the cards of a group (optionally its subtree) at
// query time. A card lands in exactly one of new/learning/mature and,
// independently, may count as due.
type GroupStats struct {
	GroupID       int64 `json:"group_id"`
	TotalCards    int   `json:"total_cards"`
	DueCards      int   `json:"due_cards"`
	NewCards      int   `json:"new_cards"`
	LearningCards int   `json:"learning_cards"`
	MatureCards   int   `json:"mature_cards"`
}
