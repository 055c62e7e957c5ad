package services

import (
	"context"
	"strings"
	"time"

	"github.com/avieira/cardbox/internal/db"
	"github.com/avieira/cardbox/internal/errors"
	"github.com/avieira/cardbox/internal/logger"
	"github.com/avieira/cardbox/internal/models"
)

// CardService handles card content management. Scheduling state is owned by
// the review flow; creation seeds it and content updates never touch it.
type CardService interface {
	CreateCard(ctx context.Context, groupID int64, front, back, mediaRef string) (*models.Card, error)
	GetCard(ctx context.Context, id int64) (*models.Card, error)
	UpdateCard(ctx context.Context, id int64, front, back, mediaRef *string) (*models.Card, error)
	DeleteCard(ctx context.Context, id int64) error
}

type cardService struct {
	db *db.DB
}

// NewCardService creates a new CardService
func NewCardService(database *db.DB) CardService {
	return &cardService{db: database}
}

func (s *cardService) CreateCard(ctx context.Context, groupID int64, front, back, mediaRef string) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating card: group_id=%d", groupID)

	front = strings.TrimSpace(front)
	if front == "" {
		return nil, errors.NewValidationError("front", "must not be empty")
	}

	group, err := s.db.GetGroup(ctx, groupID)
	if err != nil {
		return nil, errors.NewStorageError(err)
	}
	if group == nil {
		return nil, errors.NewNotFoundError("group", groupID)
	}

	// New cards are immediately due with the initial scheduling state.
	card := models.Card{
		GroupID:      groupID,
		Front:        front,
		Back:         back,
		MediaRef:     mediaRef,
		NextReviewAt: time.Now(),
		IntervalDays: 0,
		EaseFactor:   models.InitialEaseFactor,
		Repetitions:  0,
	}

	id, err := s.db.InsertCard(ctx, card)
	if err != nil {
		log.Error("failed to insert card: %v", err)
		return nil, errors.NewStorageError(err)
	}
	return s.GetCard(ctx, id)
}

func (s *cardService) GetCard(ctx context.Context, id int64) (*models.Card, error) {
	card, err := s.db.GetCard(ctx, id)
	if err != nil {
		return nil, errors.NewStorageError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", id)
	}
	return card, nil
}

func (s *cardService) UpdateCard(ctx context.Context, id int64, front, back, mediaRef *string) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating card: id=%d", id)

	card, err := s.GetCard(ctx, id)
	if err != nil {
		return nil, err
	}

	if front != nil {
		trimmed := strings.TrimSpace(*front)
		if trimmed == "" {
			return nil, errors.NewValidationError("front", "must not be empty")
		}
		card.Front = trimmed
	}
	if back != nil {
		card.Back = *back
	}
	if mediaRef != nil {
		card.MediaRef = *mediaRef
	}

	if err := s.db.UpdateCardContent(ctx, *card); err != nil {
		log.Error("failed to update card: %v", err)
		return nil, errors.NewStorageError(err)
	}
	return card, nil
}

func (s *cardService) DeleteCard(ctx context.Context, id int64) error {
	if _, err := s.GetCard(ctx, id); err != nil {
		return err
	}
	if err := s.db.DeleteCard(ctx, id); err != nil {
		return errors.NewStorageError(err)
	}
	return nil
}
