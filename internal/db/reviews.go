package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/avieira/cardbox/internal/logger"
	"github.com/avieira/cardbox/internal/models"
)

// SaveReview persists a card's new scheduling state and appends the review
// record in one transaction. Either both rows commit or neither does; an
// updated card with no history row would violate the review invariant.
func (db *DB) SaveReview(ctx context.Context, c models.Card, response models.Response, reviewedAt time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("saving review: card_id=%d, response=%s, interval=%d, ease=%.2f",
		c.ID, response, c.IntervalDays, c.EaseFactor)

	return tx(ctx, db, func(t *sql.Tx) error {
		if _, err := t.ExecContext(ctx, `
UPDATE cards
SET next_review_at = ?, interval_days = ?, ease_factor = ?, repetitions = ?
WHERE id = ?
`, c.NextReviewAt, c.IntervalDays, c.EaseFactor, c.Repetitions, c.ID); err != nil {
			log.Error("failed to update card schedule: %v", err)
			return err
		}
		if _, err := t.ExecContext(ctx, `
INSERT INTO reviews (card_id, response, reviewed_at)
VALUES (?, ?, ?)
`, c.ID, string(response), reviewedAt); err != nil {
			log.Error("failed to insert review record: %v", err)
			return err
		}
		return nil
	})
}

// ListReviews returns a card's review history, oldest first.
func (db *DB) ListReviews(ctx context.Context, cardID int64) ([]models.Review, error) {
	log := logger.FromContext(ctx).WithPrefix("db")

	rows, err := db.QueryContext(ctx, `
SELECT id, card_id, response, reviewed_at
FROM reviews
WHERE card_id = ?
ORDER BY reviewed_at, id
`, cardID)
	if err != nil {
		log.Error("failed to query reviews: %v", err)
		return nil, err
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var r models.Review
		var resp string
		if err := rows.Scan(&r.ID, &r.CardID, &resp, &r.ReviewedAt); err != nil {
			log.Error("failed to scan review row: %v", err)
			return nil, err
		}
		r.Response = models.Response(resp)
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}
