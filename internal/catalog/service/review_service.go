package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/reelstack/reelstack/internal/catalog/repository"
	"github.com/reelstack/reelstack/pkg/cache"
	"github.com/reelstack/reelstack/pkg/errors"
	"github.com/reelstack/reelstack/pkg/interfaces"
	"github.com/reelstack/reelstack/pkg/models"
	"github.com/reelstack/reelstack/pkg/retry"
)

// ReviewService manages written reviews. A review's rating participates in
// its target's running mean: creating, re-rating, and deleting a review all
// adjust the target inside the same transaction as the review write. Reads
// retry transient storage failures.
type ReviewService struct {
	store  repository.Store
	cache  interfaces.Cache
	keys   cache.Keys
	retry  retry.Config
	logger interfaces.Logger
}

// NewReviewService creates a review service.
func NewReviewService(store repository.Store, c interfaces.Cache, retryCfg retry.Config, logger interfaces.Logger) *ReviewService {
	return &ReviewService{store: store, cache: c, retry: retryCfg, logger: logger}
}

// ReviewInput is a new review as supplied by the caller.
type ReviewInput struct {
	TargetID   string
	TargetType string
	UserID     string
	Rating     float64
	Comment    string
}

// adjustTarget loads the review target, applies fn to its rating summary,
// and saves it back through tx.
func (s *ReviewService) adjustTarget(ctx context.Context, tx repository.Store, targetType models.ReviewTargetType, targetID uuid.UUID, fn func(*models.RatingSummary)) error {
	switch targetType {
	case models.ReviewTargetMovie:
		movie, err := tx.GetMovie(ctx, targetID)
		if err != nil {
			return err
		}
		fn(&movie.RatingSummary)
		return tx.UpdateMovie(ctx, movie)
	case models.ReviewTargetTvShow:
		show, err := tx.GetTvShow(ctx, targetID)
		if err != nil {
			return err
		}
		fn(&show.RatingSummary)
		return tx.UpdateTvShow(ctx, show)
	case models.ReviewTargetSeason:
		season, err := tx.GetSeason(ctx, targetID)
		if err != nil {
			return err
		}
		fn(&season.RatingSummary)
		return tx.UpdateSeason(ctx, season)
	case models.ReviewTargetEpisode:
		episode, err := tx.GetEpisode(ctx, targetID)
		if err != nil {
			return err
		}
		fn(&episode.RatingSummary)
		return tx.UpdateEpisode(ctx, episode)
	default:
		return errors.InvalidArgumentf("unknown review target type: %s", targetType)
	}
}

// targetCacheKey returns the cache key of a review target.
func (s *ReviewService) targetCacheKey(targetType models.ReviewTargetType, targetID uuid.UUID) string {
	switch targetType {
	case models.ReviewTargetMovie:
		return s.keys.Movie(targetID)
	case models.ReviewTargetTvShow:
		return s.keys.TvShow(targetID)
	case models.ReviewTargetSeason:
		return s.keys.Season(targetID)
	default:
		return s.keys.Episode(targetID)
	}
}

// CreateReview stores a review and folds its rating into the target's
// running mean as one atomic unit.
func (s *ReviewService) CreateReview(ctx context.Context, input ReviewInput) (*models.Review, error) {
	targetID, err := parseID(input.TargetID, "target")
	if err != nil {
		return nil, err
	}
	userID, err := parseID(input.UserID, "user")
	if err != nil {
		return nil, err
	}
	targetType, ok := models.NormalizeReviewTargetType(input.TargetType)
	if !ok {
		return nil, errors.InvalidArgumentf("unknown review target type: %s", input.TargetType)
	}
	if err := validateRating(input.Rating); err != nil {
		return nil, err
	}

	review := &models.Review{
		ID:         uuid.New(),
		TargetID:   targetID,
		TargetType: targetType,
		UserID:     userID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return nil, classify(err, "begin transaction")
	}
	if err := tx.CreateReview(ctx, review); err != nil {
		_ = tx.Rollback()
		return nil, classify(err, "create review")
	}
	err = s.adjustTarget(ctx, tx, targetType, targetID, func(summary *models.RatingSummary) {
		summary.Apply(input.Rating)
	})
	if err != nil {
		_ = tx.Rollback()
		if errors.IsNotFound(err) {
			return nil, errors.NotFoundf("review target not found: %s %s", targetType, targetID)
		}
		return nil, classify(err, "apply rating to target")
	}
	if err := tx.Commit(); err != nil {
		return nil, classify(err, "commit review creation")
	}

	invalidate(ctx, s.cache, s.logger, []string{s.targetCacheKey(targetType, targetID)}, nil)
	s.logger.Info("review created",
		interfaces.String("review_id", review.ID.String()),
		interfaces.String("target_type", string(targetType)),
		interfaces.String("target_id", targetID.String()))
	return review, nil
}

// GetReview returns a review by id.
func (s *ReviewService) GetReview(ctx context.Context, id string) (*models.Review, error) {
	reviewID, err := parseID(id, "review")
	if err != nil {
		return nil, err
	}
	review, err := retry.DoValue(ctx, s.retry, func() (*models.Review, error) {
		return s.store.GetReview(ctx, reviewID)
	})
	if err != nil {
		return nil, classify(err, "get review")
	}
	return review, nil
}

// UpdateReview changes a review's comment and, when the rating moves,
// re-weights the target's running mean by the difference.
func (s *ReviewService) UpdateReview(ctx context.Context, id string, rating *float64, comment *string) (*models.Review, error) {
	reviewID, err := parseID(id, "review")
	if err != nil {
		return nil, err
	}
	if rating != nil {
		if err := validateRating(*rating); err != nil {
			return nil, err
		}
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return nil, classify(err, "begin transaction")
	}
	review, err := tx.GetReview(ctx, reviewID)
	if err != nil {
		_ = tx.Rollback()
		return nil, classify(err, "get review")
	}

	if comment != nil {
		review.Comment = *comment
	}
	if rating != nil && *rating != review.Rating {
		old := review.Rating
		review.Rating = *rating
		err = s.adjustTarget(ctx, tx, review.TargetType, review.TargetID, func(summary *models.RatingSummary) {
			summary.Replace(old, *rating)
		})
		if err != nil {
			_ = tx.Rollback()
			return nil, classify(err, "re-rate target")
		}
	}
	if err := tx.UpdateReview(ctx, review); err != nil {
		_ = tx.Rollback()
		return nil, classify(err, "update review")
	}
	if err := tx.Commit(); err != nil {
		return nil, classify(err, "commit review update")
	}

	invalidate(ctx, s.cache, s.logger, []string{s.targetCacheKey(review.TargetType, review.TargetID)}, nil)
	return review, nil
}

// DeleteReview removes a review and retracts its rating from the target's
// running mean as one atomic unit.
func (s *ReviewService) DeleteReview(ctx context.Context, id string) error {
	reviewID, err := parseID(id, "review")
	if err != nil {
		return err
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return classify(err, "begin transaction")
	}
	review, err := tx.GetReview(ctx, reviewID)
	if err != nil {
		_ = tx.Rollback()
		return classify(err, "get review")
	}
	if err := tx.DeleteReview(ctx, reviewID); err != nil {
		_ = tx.Rollback()
		return classify(err, "delete review")
	}
	err = s.adjustTarget(ctx, tx, review.TargetType, review.TargetID, func(summary *models.RatingSummary) {
		summary.Retract(review.Rating)
	})
	if err != nil && !errors.IsNotFound(err) {
		_ = tx.Rollback()
		return classify(err, "retract rating from target")
	}
	if err := tx.Commit(); err != nil {
		return classify(err, "commit review deletion")
	}

	invalidate(ctx, s.cache, s.logger, []string{s.targetCacheKey(review.TargetType, review.TargetID)}, nil)
	s.logger.Info("review deleted", interfaces.String("review_id", reviewID.String()))
	return nil
}

// ListReviews returns reviews matching the filter, newest first.
func (s *ReviewService) ListReviews(ctx context.Context, filter repository.ReviewFilter) ([]*models.Review, error) {
	reviews, err := retry.DoValue(ctx, s.retry, func() ([]*models.Review, error) {
		return s.store.ListReviews(ctx, filter)
	})
	if err != nil {
		return nil, classify(err, "list reviews")
	}
	return reviews, nil
}
