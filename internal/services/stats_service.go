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

// StatsService derives study statistics from review history and current
// card state.
type StatsService interface {
	CardStats(ctx context.Context, cardID int64) (*models.CardStats, error)
	GroupStats(ctx context.Context, groupID int64, includeChildren bool) (*models.GroupStats, error)
}

type statsService struct {
	db *db.DB
}

// NewStatsService creates a new StatsService
func NewStatsService(database *db.DB) StatsService {
	return &statsService{db: database}
}

func (s *statsService) CardStats(ctx context.Context, cardID int64) (*models.CardStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting card stats: card_id=%d", cardID)

	stats, err := s.db.CardStats(ctx, cardID)
	if err != nil {
		log.Error("failed to get card stats: %v", err)
		return nil, errors.NewStorageError(err)
	}
	if stats == nil {
		return nil, errors.NewNotFoundError("card", cardID)
	}
	return stats, nil
}

func (s *statsService) GroupStats(ctx context.Context, groupID int64, includeChildren bool) (*models.GroupStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting group stats: group_id=%d, include_children=%t", groupID, includeChildren)

	group, err := s.db.GetGroup(ctx, groupID)
	if err != nil {
		return nil, errors.NewStorageError(err)
	}
	if group == nil {
		return nil, errors.NewNotFoundError("group", groupID)
	}

	groupIDs := []int64{groupID}
	if includeChildren {
		groupIDs, err = grouptree.Descendants(ctx, s.db, groupID)
		if err != nil {
			return nil, errors.NewStorageError(err)
		}
	}

	stats, err := s.db.GroupStats(ctx, groupIDs, time.Now())
	if err != nil {
		log.Error("failed to get group stats: %v", err)
		return nil, errors.NewStorageError(err)
	}
	stats.GroupID = groupID
	return stats, nil
}
