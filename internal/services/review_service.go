package services

import (
	"context"
	"time"

	"github.com/avieira/cardbox/internal/db"
	"github.com/avieira/cardbox/internal/errors"
	"github.com/avieira/cardbox/internal/logger"
	"github.com/avieira/cardbox/internal/models"
	"github.com/avieira/cardbox/internal/notify"
	"github.com/avieira/cardbox/internal/scheduler"
)

// ReviewService is the transactional boundary for review submissions:
// validate, load, compute the next scheduling state, persist card state and
// history atomically. No retries happen here; storage failures surface to
// the caller.
type ReviewService interface {
	SubmitReview(ctx context.Context, cardID int64, response models.Response) (*models.Card, error)
}

type reviewService struct {
	db       *db.DB
	notifier notify.Notifier
}

// NewReviewService creates a new ReviewService
func NewReviewService(database *db.DB, notifier notify.Notifier) ReviewService {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &reviewService{db: database, notifier: notifier}
}

func (s *reviewService) SubmitReview(ctx context.Context, cardID int64, response models.Response) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("submitting review: card_id=%d, response=%s", cardID, response)

	// Reject invalid input before any state mutation.
	if !response.Valid() {
		return nil, errors.NewValidationError("response", "must be one of again, hard, easy")
	}

	card, err := s.db.GetCard(ctx, cardID)
	if err != nil {
		return nil, errors.NewStorageError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", cardID)
	}

	now := time.Now()
	updated := scheduler.Apply(*card, response, now)

	log.Debug("applied review: interval=%d days, ease=%.2f, repetitions=%d",
		updated.IntervalDays, updated.EaseFactor, updated.Repetitions)

	if err := s.db.SaveReview(ctx, updated, response, now); err != nil {
		log.Error("failed to save review: %v", err)
		return nil, errors.NewStorageError(err)
	}

	// Best-effort; a failed notification never fails the review.
	if err := s.notifier.ReviewCompleted(ctx, updated, response); err != nil {
		log.Warn("failed to deliver review notification: %v", err)
	}

	return &updated, nil
}
