package services

import (
	"context"
	"strings"
	"time"

	"github.com/avieira/cardbox/internal/db"
	"github.com/avieira/cardbox/internal/errors"
	"github.com/avieira/cardbox/internal/grouptree"
	"github.com/avieira/cardbox/internal/logger"
	"github.com/avieira/cardbox/internal/models"
)

// GroupService handles study-group management and bulk progress resets.
type GroupService interface {
	CreateGroup(ctx context.Context, name string, parentID *int64) (*models.Group, error)
	GetGroup(ctx context.Context, id int64) (*models.Group, error)
	ListGroups(ctx context.Context) ([]models.Group, error)
	UpdateGroup(ctx context.Context, id int64, name *string, parentID *int64) (*models.Group, error)
	DeleteGroup(ctx context.Context, id int64) error
	ResetProgress(ctx context.Context, id int64, includeChildren bool) error
}

type groupService struct {
	db *db.DB
}

// NewGroupService creates a new GroupService
func NewGroupService(database *db.DB) GroupService {
	return &groupService{db: database}
}

func (s *groupService) CreateGroup(ctx context.Context, name string, parentID *int64) (*models.Group, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating group: name=%s", name)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationError("name", "must not be empty")
	}

	if parentID != nil {
		parent, err := s.db.GetGroup(ctx, *parentID)
		if err != nil {
			return nil, errors.NewStorageError(err)
		}
		if parent == nil {
			return nil, errors.NewNotFoundError("group", *parentID)
		}
	}

	id, err := s.db.InsertGroup(ctx, models.Group{Name: name, ParentID: parentID})
	if err != nil {
		log.Error("failed to insert group: %v", err)
		return nil, errors.NewStorageError(err)
	}

	group, err := s.db.GetGroup(ctx, id)
	if err != nil {
		return nil, errors.NewStorageError(err)
	}
	return group, nil
}

func (s *groupService) GetGroup(ctx context.Context, id int64) (*models.Group, error) {
	group, err := s.db.GetGroup(ctx, id)
	if err != nil {
		return nil, errors.NewStorageError(err)
	}
	if group == nil {
		return nil, errors.NewNotFoundError("group", id)
	}
	return group, nil
}

func (s *groupService) ListGroups(ctx context.Context) ([]models.Group, error) {
	groups, err := s.db.ListGroups(ctx)
	if err != nil {
		return nil, errors.NewStorageError(err)
	}
	return groups, nil
}

func (s *groupService) UpdateGroup(ctx context.Context, id int64, name *string, parentID *int64) (*models.Group, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating group: id=%d", id)

	group, err := s.GetGroup(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, errors.NewValidationError("name", "must not be empty")
		}
		group.Name = trimmed
	}
	if parentID != nil {
		if *parentID == id {
			return nil, errors.NewValidationError("parent_id", "a group cannot be its own parent")
		}
		// Reject reparenting under the group's own subtree; it would cut a
		// cycle into the tree.
		subtree, err := grouptree.Descendants(ctx, s.db, id)
		if err != nil {
			return nil, errors.NewStorageError(err)
		}
		for _, descendant := range subtree {
			if descendant == *parentID {
				return nil, errors.NewValidationError("parent_id", "must not be a descendant of the group")
			}
		}
		parent, err := s.db.GetGroup(ctx, *parentID)
		if err != nil {
			return nil, errors.NewStorageError(err)
		}
		if parent == nil {
			return nil, errors.NewNotFoundError("group", *parentID)
		}
		group.ParentID = parentID
	}

	if err := s.db.UpdateGroup(ctx, *group); err != nil {
		log.Error("failed to update group: %v", err)
		return nil, errors.NewStorageError(err)
	}
	return group, nil
}

func (s *groupService) DeleteGroup(ctx context.Context, id int64) error {
	if _, err := s.GetGroup(ctx, id); err != nil {
		return err
	}
	if err := s.db.DeleteGroup(ctx, id); err != nil {
		return errors.NewStorageError(err)
	}
	return nil
}

// ResetProgress reinitializes the scheduling state of every card in the
// group (and its subtree when includeChildren is set) and discards their
// review history. Idempotent; safe to re-run after a partial failure.
func (s *groupService) ResetProgress(ctx context.Context, id int64, includeChildren bool) error {
	log := logger.FromContext(ctx)
	log.Debug("resetting group progress: id=%d, include_children=%t", id, includeChildren)

	if _, err := s.GetGroup(ctx, id); err != nil {
		return err
	}

	groupIDs := []int64{id}
	if includeChildren {
		var err error
		groupIDs, err = grouptree.Descendants(ctx, s.db, id)
		if err != nil {
			return errors.NewStorageError(err)
		}
	}

	if err := s.db.ResetCards(ctx, groupIDs, time.Now()); err != nil {
		log.Error("failed to reset cards: %v", err)
		return errors.NewStorageError(err)
	}
	log.Info("group progress reset: id=%d, groups=%d", id, len(groupIDs))
	return nil
}
