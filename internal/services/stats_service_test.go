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

type StatsServiceSuite struct {
	suite.Suite
	db      *db.DB
	groups  services.GroupService
	cards   services.CardService
	reviews services.ReviewService
	stats   services.StatsService
}

func (s *StatsServiceSuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.groups = services.NewGroupService(s.db)
	s.cards = services.NewCardService(s.db)
	s.reviews = services.NewReviewService(s.db, nil)
	s.stats = services.NewStatsService(s.db)
}

func (s *StatsServiceSuite) TestCardStats_Tallies() {
	ctx := context.Background()

	group, err := s.groups.CreateGroup(ctx, "group", nil)
	s.Require().NoError(err)
	card, err := s.cards.CreateCard(ctx, group.ID, "front", "back", "")
	s.Require().NoError(err)

	for _, r := range []models.Response{
		models.ResponseEasy, models.ResponseHard, models.ResponseEasy, models.ResponseAgain,
	} {
		_, err := s.reviews.SubmitReview(ctx, card.ID, r)
		s.Require().NoError(err)
	}

	stats, err := s.stats.CardStats(ctx, card.ID)
	s.Require().NoError(err)
	s.Assert().Equal(card.ID, stats.CardID)
	s.Assert().Equal(4, stats.TotalReviews)
	s.Assert().Equal(2, stats.EasyCount)
	s.Assert().Equal(1, stats.HardCount)
	s.Assert().Equal(1, stats.AgainCount)
	s.Assert().Equal(0, stats.Repetitions, "last response was again")
}

func (s *StatsServiceSuite) TestCardStats_NoReviews() {
	ctx := context.Background()

	group, err := s.groups.CreateGroup(ctx, "group", nil)
	s.Require().NoError(err)
	card, err := s.cards.CreateCard(ctx, group.ID, "front", "", "")
	s.Require().NoError(err)

	stats, err := s.stats.CardStats(ctx, card.ID)
	s.Require().NoError(err)
	s.Assert().Equal(0, stats.TotalReviews)
	s.Assert().Equal(models.InitialEaseFactor, stats.EaseFactor)
}

func (s *StatsServiceSuite) TestCardStats_NotFound() {
	ctx := context.Background()

	_, err := s.stats.CardStats(ctx, 999)
	var appErr *errors.AppError
	s.Require().True(stderrors.As(err, &appErr))
	s.Assert().Equal(errors.ErrCodeNotFound, appErr.Code)
}

func (s *StatsServiceSuite) TestGroupStats_Subtree() {
	ctx := context.Background()

	root, err := s.groups.CreateGroup(ctx, "root", nil)
	s.Require().NoError(err)
	child, err := s.groups.CreateGroup(ctx, "child", &root.ID)
	s.Require().NoError(err)

	_, err = s.cards.CreateCard(ctx, root.ID, "new", "", "")
	s.Require().NoError(err)
	learningCard, err := s.cards.CreateCard(ctx, child.ID, "learning", "", "")
	s.Require().NoError(err)
	_, err = s.reviews.SubmitReview(ctx, learningCard.ID, models.ResponseEasy)
	s.Require().NoError(err)

	stats, err := s.stats.GroupStats(ctx, root.ID, true)
	s.Require().NoError(err)
	s.Assert().Equal(root.ID, stats.GroupID)
	s.Assert().Equal(2, stats.TotalCards)
	s.Assert().Equal(1, stats.DueCards, "the reviewed card moved out of today")
	s.Assert().Equal(1, stats.NewCards)
	s.Assert().Equal(1, stats.LearningCards)
	s.Assert().Equal(0, stats.MatureCards)

	// Without children the subtree card disappears from the tallies.
	stats, err = s.stats.GroupStats(ctx, root.ID, false)
	s.Require().NoError(err)
	s.Assert().Equal(1, stats.TotalCards)
	s.Assert().Equal(1, stats.NewCards)
	s.Assert().Equal(0, stats.LearningCards)
}

func (s *StatsServiceSuite) TestGroupStats_NotFound() {
	ctx := context.Background()

	_, err := s.stats.GroupStats(ctx, 999, true)
	var appErr *errors.AppError
	s.Require().True(stderrors.As(err, &appErr))
	s.Assert().Equal(errors.ErrCodeNotFound, appErr.Code)
}

func TestStatsServiceSuite(t *testing.T) {
	suite.Run(t, new(StatsServiceSuite))
}
