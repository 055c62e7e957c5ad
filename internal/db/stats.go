package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/avieira/cardbox/internal/logger"
	"github.com/avieira/cardbox/internal/models"
)

// CardStats tallies a card's full review history by response and returns
// its current scheduling fields. Returns nil when the card does not exist.
func (db *DB) CardStats(ctx context.Context, cardID int64) (*models.CardStats, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("fetching card stats: card_id=%d", cardID)

	var stats models.CardStats
	err := db.QueryRowContext(ctx, `
SELECT
    c.id,
    COUNT(r.id) AS total_reviews,
    COUNT(CASE WHEN r.response = 'easy' THEN 1 END) AS easy_count,
    COUNT(CASE WHEN r.response = 'hard' THEN 1 END) AS hard_count,
    COUNT(CASE WHEN r.response = 'again' THEN 1 END) AS again_count,
    c.interval_days,
    c.ease_factor,
    c.repetitions,
    c.next_review_at
FROM cards c
LEFT JOIN reviews r ON r.card_id = c.id
WHERE c.id = ?
GROUP BY c.id
`, cardID).Scan(
		&stats.CardID,
		&stats.TotalReviews,
		&stats.EasyCount,
		&stats.HardCount,
		&stats.AgainCount,
		&stats.IntervalDays,
		&stats.EaseFactor,
		&stats.Repetitions,
		&stats.NextReviewAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("card not found for stats: id=%d", cardID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get card stats: %v", err)
		return nil, err
	}
	return &stats, nil
}

// GroupStats classifies the cards of the given groups at now. The
// new/learning/mature buckets are disjoint; due is counted independently.
func (db *DB) GroupStats(ctx context.Context, groupIDs []int64, now time.Time) (*models.GroupStats, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("fetching group stats: groups=%d", len(groupIDs))

	var stats models.GroupStats
	if len(groupIDs) == 0 {
		return &stats, nil
	}

	query := `
SELECT
    COUNT(*) AS total_cards,
    COUNT(CASE WHEN next_review_at <= ? THEN 1 END) AS due_cards,
    COUNT(CASE WHEN repetitions = 0 THEN 1 END) AS new_cards,
    COUNT(CASE WHEN repetitions > 0 AND interval_days < ? THEN 1 END) AS learning_cards,
    COUNT(CASE WHEN repetitions > 0 AND interval_days >= ? THEN 1 END) AS mature_cards
FROM cards
WHERE ` + groupInFilter(len(groupIDs))

	args := append([]any{now, models.MatureIntervalDays, models.MatureIntervalDays}, groupArgs(groupIDs)...)
	err := db.QueryRowContext(ctx, query, args...).Scan(
		&stats.TotalCards,
		&stats.DueCards,
		&stats.NewCards,
		&stats.LearningCards,
		&stats.MatureCards,
	)
	if err != nil {
		log.Error("failed to get group stats: %v", err)
		return nil, err
	}
	return &stats, nil
}
