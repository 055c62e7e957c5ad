package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/avieira/cardbox/internal/logger"
	"github.com/avieira/cardbox/internal/models"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// groupInFilter builds a "group_id IN (?, ...)" clause for n ids.
func groupInFilter(n int) string {
	return "group_id IN (" + strings.Repeat("?,", n-1) + "?)"
}

func groupArgs(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

const cardColumns = "id, group_id, front, back, media_ref, next_review_at, interval_days, ease_factor, repetitions, created_at"

func scanCard(row interface{ Scan(...any) error }) (models.Card, error) {
	var c models.Card
	err := row.Scan(&c.ID, &c.GroupID, &c.Front, &c.Back, &c.MediaRef,
		&c.NextReviewAt, &c.IntervalDays, &c.EaseFactor, &c.Repetitions, &c.CreatedAt)
	return c, err
}

func (db *DB) InsertCard(ctx context.Context, c models.Card) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("inserting card: group_id=%d", c.GroupID)

	res, err := db.ExecContext(ctx, `
INSERT INTO cards (group_id, front, back, media_ref, next_review_at, interval_days, ease_factor, repetitions)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, c.GroupID, c.Front, c.Back, c.MediaRef, c.NextReviewAt, c.IntervalDays, c.EaseFactor, c.Repetitions)
	if err != nil {
		log.Error("failed to insert card: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get card id: %v", err)
		return 0, err
	}
	log.Debug("card inserted: id=%d", id)
	return id, nil
}

// GetCard returns nil with no error when the id does not exist.
func (db *DB) GetCard(ctx context.Context, id int64) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("db")

	row := db.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = ?`, id)
	c, err := scanCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("card not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, err
	}
	return &c, nil
}

// UpdateCardContent changes the question/answer payload only; scheduling
// state is mutated exclusively through SaveReview and ResetCards.
func (db *DB) UpdateCardContent(ctx context.Context, c models.Card) error {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("updating card content: id=%d", c.ID)

	_, err := db.ExecContext(ctx, `
UPDATE cards
SET front = ?, back = ?, media_ref = ?
WHERE id = ?
`, c.Front, c.Back, c.MediaRef, c.ID)
	if err != nil {
		log.Error("failed to update card: %v", err)
	}
	return err
}

func (db *DB) DeleteCard(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("deleting card: id=%d", id)

	_, err := db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete card: %v", err)
	}
	return err
}

// DueCards returns cards in the given groups scheduled at or before now,
// oldest due first. An empty groupIDs slice means the whole store. A limit
// of 0 means no limit.
func (db *DB) DueCards(ctx context.Context, groupIDs []int64, now time.Time, limit int) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("fetching due cards: groups=%d, limit=%d", len(groupIDs), limit)

	query := sqlBuilder.
		Select(cardColumns).
		From("cards").
		Where(squirrel.LtOrEq{"next_review_at": now}).
		OrderBy("next_review_at ASC, id ASC")
	if len(groupIDs) > 0 {
		query = query.Where(squirrel.Eq{"group_id": groupIDs})
	}
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	return db.queryCards(ctx, query)
}

// AllCards returns every card in the given groups regardless of due date,
// ordered by creation time. Practice mode ignores the schedule.
func (db *DB) AllCards(ctx context.Context, groupIDs []int64, limit int) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("fetching all cards: groups=%d, limit=%d", len(groupIDs), limit)

	query := sqlBuilder.
		Select(cardColumns).
		From("cards").
		Where(squirrel.Eq{"group_id": groupIDs}).
		OrderBy("created_at ASC, id ASC")
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	return db.queryCards(ctx, query)
}

func (db *DB) queryCards(ctx context.Context, query squirrel.SelectBuilder) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("db")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build card query: %v", err)
		return nil, err
	}

	rows, err := db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			log.Error("failed to scan card row: %v", err)
			return nil, err
		}
		cards = append(cards, c)
	}
	log.Debug("found %d cards", len(cards))
	return cards, rows.Err()
}

// ResetCards reinitializes the scheduling state of every card in the given
// groups and discards their review history, in one transaction. Re-running
// it converges to the same end state.
func (db *DB) ResetCards(ctx context.Context, groupIDs []int64, now time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("resetting cards: groups=%d", len(groupIDs))

	if len(groupIDs) == 0 {
		return nil
	}

	updateSQL, updateArgs, err := sqlBuilder.
		Update("cards").
		Set("next_review_at", now).
		Set("interval_days", 0).
		Set("ease_factor", models.InitialEaseFactor).
		Set("repetitions", 0).
		Where(squirrel.Eq{"group_id": groupIDs}).
		ToSql()
	if err != nil {
		return err
	}

	deleteSQL, deleteArgs, err := sqlBuilder.
		Delete("reviews").
		Where("card_id IN (SELECT id FROM cards WHERE "+groupInFilter(len(groupIDs))+")", groupArgs(groupIDs)...).
		ToSql()
	if err != nil {
		return err
	}

	return tx(ctx, db, func(t *sql.Tx) error {
		if _, err := t.ExecContext(ctx, updateSQL, updateArgs...); err != nil {
			log.Error("failed to reset card schedules: %v", err)
			return err
		}
		if _, err := t.ExecContext(ctx, deleteSQL, deleteArgs...); err != nil {
			log.Error("failed to delete review history: %v", err)
			return err
		}
		return nil
	})
}
