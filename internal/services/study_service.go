package services

import (
	"context"
	"time"

	"github.com/avieira/cardbox/internal/db"
	"github.com/avieira/cardbox/internal/errors"
	"github.com/avieira/cardbox/internal/grouptree"
	"github.com/avieira/cardbox/internal/logger"
	"github.com/avieira/cardbox/internal/models"
)

// StudyService answers the due-card and practice-mode queries. Both are
// read-only and idempotent.
type StudyService interface {
	// DueCards returns cards due at or before now, oldest due first. A nil
	// groupID spans every group in the store; otherwise the group and,
	// with includeChildren, its subtree.
	DueCards(ctx context.Context, groupID *int64, includeChildren bool, limit int) ([]models.Card, error)
	// AllCards returns every card in the group scope regardless of due
	// date, ordered by creation time. Used for practice sessions that
	// ignore the schedule.
	AllCards(ctx context.Context, groupID int64, includeChildren bool, limit int) ([]models.Card, error)
}

type studyService struct {
	db *db.DB
}

// NewStudyService creates a new StudyService
func NewStudyService(database *db.DB) StudyService {
	return &studyService{db: database}
}

func (s *studyService) DueCards(ctx context.Context, groupID *int64, includeChildren bool, limit int) ([]models.Card, error) {
	log := logger.FromContext(ctx)

	var groupIDs []int64
	if groupID != nil {
		var err error
		groupIDs, err = s.resolveScope(ctx, *groupID, includeChildren)
		if err != nil {
			return nil, err
		}
	}

	cards, err := s.db.DueCards(ctx, groupIDs, time.Now(), limit)
	if err != nil {
		log.Error("failed to query due cards: %v", err)
		return nil, errors.NewStorageError(err)
	}
	log.Debug("due cards: %d", len(cards))
	return cards, nil
}

func (s *studyService) AllCards(ctx context.Context, groupID int64, includeChildren bool, limit int) ([]models.Card, error) {
	log := logger.FromContext(ctx)

	groupIDs, err := s.resolveScope(ctx, groupID, includeChildren)
	if err != nil {
		return nil, err
	}

	cards, err := s.db.AllCards(ctx, groupIDs, limit)
	if err != nil {
		log.Error("failed to query cards: %v", err)
		return nil, errors.NewStorageError(err)
	}
	log.Debug("practice cards: %d", len(cards))
	return cards, nil
}

// resolveScope expands a group id to its subtree id set, or keeps just the
// group itself when includeChildren is false.
func (s *studyService) resolveScope(ctx context.Context, groupID int64, includeChildren bool) ([]int64, error) {
	group, err := s.db.GetGroup(ctx, groupID)
	if err != nil {
		return nil, errors.NewStorageError(err)
	}
	if group == nil {
		return nil, errors.NewNotFoundError("group", groupID)
	}

	if !includeChildren {
		return []int64{groupID}, nil
	}
	ids, err := grouptree.Descendants(ctx, s.db, groupID)
	if err != nil {
		return nil, errors.NewStorageError(err)
	}
	return ids, nil
}
