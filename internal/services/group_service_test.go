package services_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/avieira/cardbox/internal/db"
	"github.com/avieira/cardbox/internal/errors"
	"github.com/avieira/cardbox/internal/models"
	"github.com/avieira/cardbox/internal/services"
	"github.com/avieira/cardbox/internal/testutil"
)

type GroupServiceSuite struct {
	suite.Suite
	db      *db.DB
	groups  services.GroupService
	cards   services.CardService
	reviews services.ReviewService
}

func (s *GroupServiceSuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.groups = services.NewGroupService(s.db)
	s.cards = services.NewCardService(s.db)
	s.reviews = services.NewReviewService(s.db, nil)
}

func (s *GroupServiceSuite) TestCreateGroup_Validation() {
	ctx := context.Background()

	_, err := s.groups.CreateGroup(ctx, "   ", nil)
	var appErr *errors.AppError
	s.Require().True(stderrors.As(err, &appErr))
	s.Assert().Equal(errors.ErrCodeValidation, appErr.Code)

	missingParent := int64(42)
	_, err = s.groups.CreateGroup(ctx, "child", &missingParent)
	s.Require().True(stderrors.As(err, &appErr))
	s.Assert().Equal(errors.ErrCodeNotFound, appErr.Code)
}

func (s *GroupServiceSuite) TestUpdateGroup_RejectsCycles() {
	ctx := context.Background()

	root, err := s.groups.CreateGroup(ctx, "root", nil)
	s.Require().NoError(err)
	child, err := s.groups.CreateGroup(ctx, "child", &root.ID)
	s.Require().NoError(err)
	grandchild, err := s.groups.CreateGroup(ctx, "grandchild", &child.ID)
	s.Require().NoError(err)

	var appErr *errors.AppError

	_, err = s.groups.UpdateGroup(ctx, root.ID, nil, &root.ID)
	s.Require().True(stderrors.As(err, &appErr))
	s.Assert().Equal(errors.ErrCodeValidation, appErr.Code)

	_, err = s.groups.UpdateGroup(ctx, root.ID, nil, &grandchild.ID)
	s.Require().True(stderrors.As(err, &appErr))
	s.Assert().Equal(errors.ErrCodeValidation, appErr.Code, "reparenting under own subtree must fail")

	// A sideways move is fine.
	other, err := s.groups.CreateGroup(ctx, "other", nil)
	s.Require().NoError(err)
	moved, err := s.groups.UpdateGroup(ctx, child.ID, nil, &other.ID)
	s.Require().NoError(err)
	s.Require().NotNil(moved.ParentID)
	s.Assert().Equal(other.ID, *moved.ParentID)
}

func (s *GroupServiceSuite) TestResetProgress_SubtreeAndIdempotence() {
	ctx := context.Background()

	root, err := s.groups.CreateGroup(ctx, "root", nil)
	s.Require().NoError(err)
	child, err := s.groups.CreateGroup(ctx, "child", &root.ID)
	s.Require().NoError(err)
	sibling, err := s.groups.CreateGroup(ctx, "sibling", nil)
	s.Require().NoError(err)

	rootCard, err := s.cards.CreateCard(ctx, root.ID, "root card", "", "")
	s.Require().NoError(err)
	childCard, err := s.cards.CreateCard(ctx, child.ID, "child card", "", "")
	s.Require().NoError(err)
	siblingCard, err := s.cards.CreateCard(ctx, sibling.ID, "sibling card", "", "")
	s.Require().NoError(err)

	for _, id := range []int64{rootCard.ID, childCard.ID, siblingCard.ID} {
		_, err := s.reviews.SubmitReview(ctx, id, models.ResponseEasy)
		s.Require().NoError(err)
	}

	// Reset twice; the end state must be identical.
	for i := 0; i < 2; i++ {
		s.Require().NoError(s.groups.ResetProgress(ctx, root.ID, true))

		for _, id := range []int64{rootCard.ID, childCard.ID} {
			card, err := s.db.GetCard(ctx, id)
			s.Require().NoError(err)
			s.Assert().Equal(0, card.IntervalDays)
			s.Assert().Equal(models.InitialEaseFactor, card.EaseFactor)
			s.Assert().Equal(0, card.Repetitions)

			history, err := s.db.ListReviews(ctx, id)
			s.Require().NoError(err)
			s.Assert().Empty(history)
		}
	}

	// The unrelated group is untouched.
	untouched, err := s.db.GetCard(ctx, siblingCard.ID)
	s.Require().NoError(err)
	s.Assert().Equal(1, untouched.IntervalDays)
	history, err := s.db.ListReviews(ctx, siblingCard.ID)
	s.Require().NoError(err)
	s.Assert().Len(history, 1)
}

func (s *GroupServiceSuite) TestResetProgress_WithoutChildren() {
	ctx := context.Background()

	root, err := s.groups.CreateGroup(ctx, "root", nil)
	s.Require().NoError(err)
	child, err := s.groups.CreateGroup(ctx, "child", &root.ID)
	s.Require().NoError(err)

	childCard, err := s.cards.CreateCard(ctx, child.ID, "child card", "", "")
	s.Require().NoError(err)
	_, err = s.reviews.SubmitReview(ctx, childCard.ID, models.ResponseEasy)
	s.Require().NoError(err)

	s.Require().NoError(s.groups.ResetProgress(ctx, root.ID, false))

	card, err := s.db.GetCard(ctx, childCard.ID)
	s.Require().NoError(err)
	s.Assert().Equal(1, card.IntervalDays, "child group cards stay untouched")
}

func TestGroupServiceSuite(t *testing.T) {
	suite.Run(t, new(GroupServiceSuite))
}
