package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/reelstack/reelstack/pkg/errors"
	"github.com/reelstack/reelstack/pkg/interfaces"
)

const (
	// entityTTL bounds how stale a cached single-entity read may be.
	entityTTL = 5 * time.Minute

	// relatedPeopleLimit caps the shared-filmography fallback.
	relatedPeopleLimit = 10

	// trendingLimit is the default size of trending listings.
	trendingLimit = 20
)

// parseID parses a caller-supplied identifier. Malformed identifiers are a
// caller fault, never a lookup miss.
func parseID(value, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, errors.InvalidArgumentf("invalid %s id: %s", label, value)
	}
	return id, nil
}

// validateRating enforces the closed rating scale.
func validateRating(rating float64) error {
	if rating < 0 || rating > 5 {
		return errors.InvalidArgumentf("rating must be between 0 and 5, got %v", rating)
	}
	return nil
}

// classify passes already-classified errors through unchanged and wraps
// everything else as an internal failure naming the operation that failed.
func classify(err error, operation string) error {
	if err == nil {
		return nil
	}
	if errors.IsClassified(err) {
		return err
	}
	return errors.Wrap(errors.ErrorTypeInternal, "failed to "+operation, err)
}

// invalidate drops cache entries best-effort. A failing cache never fails
// the write it trails.
func invalidate(ctx context.Context, c interfaces.Cache, logger interfaces.Logger, keys []string, patterns []string) {
	for _, key := range keys {
		if err := c.Delete(ctx, key); err != nil {
			logger.Warn("cache invalidation failed",
				interfaces.String("key", key),
				interfaces.Error(err))
		}
	}
	for _, pattern := range patterns {
		if err := c.DeletePattern(ctx, pattern); err != nil {
			logger.Warn("cache pattern invalidation failed",
				interfaces.String("pattern", pattern),
				interfaces.Error(err))
		}
	}
}
