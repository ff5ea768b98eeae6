package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/reelstack/reelstack/pkg/cache"
	apperrors "github.com/reelstack/reelstack/pkg/errors"
	"github.com/reelstack/reelstack/pkg/logger"
	"github.com/reelstack/reelstack/pkg/models"
	"github.com/reelstack/reelstack/pkg/retry"
)

type ReviewServiceTestSuite struct {
	suite.Suite
	store   *MockStore
	tx      *MockStore
	cache   *cache.Memory
	service *ReviewService
	ctx     context.Context
}

func (suite *ReviewServiceTestSuite) SetupTest() {
	suite.store = new(MockStore)
	suite.tx = new(MockStore)
	suite.cache = cache.NewMemory()
	suite.service = NewReviewService(suite.store, suite.cache, retry.Config{Attempts: 3}, logger.NewNoopLogger())
	suite.ctx = context.Background()
}

func (suite *ReviewServiceTestSuite) TearDownTest() {
	suite.cache.Close()
}

func (suite *ReviewServiceTestSuite) TestCreateReviewAppliesRatingToMovie() {
	movie := &models.Movie{ID: uuid.New(), Title: "Solaris"}

	suite.store.On("BeginTx", suite.ctx).Return(suite.tx, nil)
	suite.tx.On("CreateReview", suite.ctx, mock.AnythingOfType("*models.Review")).Return(nil)
	suite.tx.On("GetMovie", suite.ctx, movie.ID).Return(movie, nil)
	suite.tx.On("UpdateMovie", suite.ctx, movie).Return(nil)
	suite.tx.On("Commit").Return(nil)

	review, err := suite.service.CreateReview(suite.ctx, ReviewInput{
		TargetID:   movie.ID.String(),
		TargetType: "MOVIE",
		UserID:     uuid.New().String(),
		Rating:     4,
		Comment:    "slow but rewarding",
	})

	suite.NoError(err)
	suite.Equal(models.ReviewTargetMovie, review.TargetType)
	suite.Equal(1, movie.RatingCount)
	suite.InDelta(4.0, movie.AverageRating, 0.0001)
	suite.tx.AssertExpectations(suite.T())
}

func (suite *ReviewServiceTestSuite) TestCreateReviewUnknownTargetType() {
	_, err := suite.service.CreateReview(suite.ctx, ReviewInput{
		TargetID:   uuid.New().String(),
		TargetType: "mixtape",
		UserID:     uuid.New().String(),
		Rating:     3,
	})

	suite.Error(err)
	suite.True(apperrors.IsInvalidArgument(err))
	suite.store.AssertNotCalled(suite.T(), "BeginTx", mock.Anything)
}

func (suite *ReviewServiceTestSuite) TestCreateReviewTargetMissingRollsBack() {
	episodeID := uuid.New()

	suite.store.On("BeginTx", suite.ctx).Return(suite.tx, nil)
	suite.tx.On("CreateReview", suite.ctx, mock.AnythingOfType("*models.Review")).Return(nil)
	suite.tx.On("GetEpisode", suite.ctx, episodeID).
		Return(nil, apperrors.NotFound("entity not found"))
	suite.tx.On("Rollback").Return(nil)

	_, err := suite.service.CreateReview(suite.ctx, ReviewInput{
		TargetID:   episodeID.String(),
		TargetType: "episode",
		UserID:     uuid.New().String(),
		Rating:     3,
	})

	suite.Error(err)
	suite.True(apperrors.IsNotFound(err))
	suite.tx.AssertNotCalled(suite.T(), "Commit")
}

func (suite *ReviewServiceTestSuite) TestUpdateReviewReweightsTarget() {
	show := &models.TvShow{ID: uuid.New(), Title: "Deep Space"}
	show.Apply(2)
	show.Apply(4)
	review := &models.Review{
		ID:         uuid.New(),
		TargetID:   show.ID,
		TargetType: models.ReviewTargetTvShow,
		UserID:     uuid.New(),
		Rating:     2,
	}

	suite.store.On("BeginTx", suite.ctx).Return(suite.tx, nil)
	suite.tx.On("GetReview", suite.ctx, review.ID).Return(review, nil)
	suite.tx.On("GetTvShow", suite.ctx, show.ID).Return(show, nil)
	suite.tx.On("UpdateTvShow", suite.ctx, show).Return(nil)
	suite.tx.On("UpdateReview", suite.ctx, review).Return(nil)
	suite.tx.On("Commit").Return(nil)

	newRating := 4.0
	updated, err := suite.service.UpdateReview(suite.ctx, review.ID.String(), &newRating, nil)

	suite.NoError(err)
	suite.Equal(4.0, updated.Rating)
	suite.Equal(2, show.RatingCount)
	suite.InDelta(4.0, show.AverageRating, 0.0001)
}

func (suite *ReviewServiceTestSuite) TestDeleteReviewRetractsRating() {
	season := &models.Season{ID: uuid.New(), SeasonNumber: 1}
	season.Apply(5)
	season.Apply(3)
	review := &models.Review{
		ID:         uuid.New(),
		TargetID:   season.ID,
		TargetType: models.ReviewTargetSeason,
		UserID:     uuid.New(),
		Rating:     5,
	}

	suite.store.On("BeginTx", suite.ctx).Return(suite.tx, nil)
	suite.tx.On("GetReview", suite.ctx, review.ID).Return(review, nil)
	suite.tx.On("DeleteReview", suite.ctx, review.ID).Return(nil)
	suite.tx.On("GetSeason", suite.ctx, season.ID).Return(season, nil)
	suite.tx.On("UpdateSeason", suite.ctx, season).Return(nil)
	suite.tx.On("Commit").Return(nil)

	err := suite.service.DeleteReview(suite.ctx, review.ID.String())

	suite.NoError(err)
	suite.Equal(1, season.RatingCount)
	suite.InDelta(3.0, season.AverageRating, 0.0001)
}

func (suite *ReviewServiceTestSuite) TestCreateReviewRejectsOutOfRangeRating() {
	_, err := suite.service.CreateReview(suite.ctx, ReviewInput{
		TargetID:   uuid.New().String(),
		TargetType: "movie",
		UserID:     uuid.New().String(),
		Rating:     9,
	})

	suite.Error(err)
	suite.True(apperrors.IsInvalidArgument(err))
}

func (suite *ReviewServiceTestSuite) TestGetReviewRetriesTransientFailure() {
	review := &models.Review{ID: uuid.New(), TargetType: models.ReviewTargetMovie, Rating: 4}

	suite.store.On("GetReview", suite.ctx, review.ID).
		Return(nil, retry.Transient(apperrors.Internal("connection dropped"))).Once()
	suite.store.On("GetReview", suite.ctx, review.ID).Return(review, nil).Once()

	fetched, err := suite.service.GetReview(suite.ctx, review.ID.String())

	suite.NoError(err)
	suite.Equal(review.ID, fetched.ID)
	suite.store.AssertNumberOfCalls(suite.T(), "GetReview", 2)
}

func TestReviewServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReviewServiceTestSuite))
}
