package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/reelstack/reelstack/internal/catalog/repository"
	"github.com/reelstack/reelstack/pkg/cache"
	"github.com/reelstack/reelstack/pkg/errors"
	"github.com/reelstack/reelstack/pkg/interfaces"
	"github.com/reelstack/reelstack/pkg/models"
	"github.com/reelstack/reelstack/pkg/pagination"
)

const (
	// episodeCreateBoost is added to both the owning season's and show's
	// popularity when an episode is created.
	episodeCreateBoost = 5

	// episodeViewBoost is added to an episode's popularity on every single
	// read.
	episodeViewBoost = 1
)

// EpisodeService manages the leaf level of the show hierarchy. Creating an
// episode registers it with its season and boosts both ancestors'
// popularity in the same transaction.
type EpisodeService struct {
	store  repository.Store
	cache  interfaces.Cache
	keys   cache.Keys
	logger interfaces.Logger
}

// NewEpisodeService creates an episode service.
func NewEpisodeService(store repository.Store, c interfaces.Cache, logger interfaces.Logger) *EpisodeService {
	return &EpisodeService{store: store, cache: c, logger: logger}
}

// EpisodeUpdate carries the mutable episode fields. Nil means leave
// unchanged. The owner reference and episode number are immutable after
// creation.
type EpisodeUpdate struct {
	Title       *string
	Description *string
	ReleaseDate *time.Time
	Duration    *int
}

// CreateEpisode adds an episode to a season. Inside one transaction it
// verifies the season exists, enforces per-season episode number
// uniqueness, inserts the episode, registers it in the season's episodes
// list, and boosts the season's and show's popularity.
func (s *EpisodeService) CreateEpisode(ctx context.Context, seasonID string, episode *models.Episode) (*models.Episode, error) {
	sid, err := parseID(seasonID, "season")
	if err != nil {
		return nil, err
	}
	if episode.Title == "" {
		return nil, errors.InvalidArgument("episode title is required")
	}
	if episode.EpisodeNumber <= 0 {
		return nil, errors.InvalidArgumentf("episode number must be positive, got %d", episode.EpisodeNumber)
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return nil, classify(err, "begin transaction")
	}

	season, err := tx.GetSeason(ctx, sid)
	if err != nil {
		_ = tx.Rollback()
		if errors.IsNotFound(err) {
			return nil, errors.NotFoundf("season not found: %s", sid)
		}
		return nil, classify(err, "get season")
	}

	if _, err := tx.GetEpisodeByNumber(ctx, sid, episode.EpisodeNumber); err == nil {
		_ = tx.Rollback()
		return nil, errors.Conflictf("episode %d already exists for season %s", episode.EpisodeNumber, sid)
	} else if !errors.IsNotFound(err) {
		_ = tx.Rollback()
		return nil, classify(err, "check episode uniqueness")
	}

	if episode.ID == uuid.Nil {
		episode.ID = uuid.New()
	}
	episode.SeasonID = sid
	if err := tx.CreateEpisode(ctx, episode); err != nil {
		_ = tx.Rollback()
		return nil, classify(err, "create episode")
	}

	season.Episodes.Add(episode.ID)
	season.Popularity += episodeCreateBoost
	if err := tx.UpdateSeason(ctx, season); err != nil {
		_ = tx.Rollback()
		return nil, classify(err, "register episode with season")
	}
	if err := tx.IncrementTvShowPopularity(ctx, season.TvShowID, episodeCreateBoost); err != nil {
		_ = tx.Rollback()
		return nil, classify(err, "boost tv show popularity")
	}

	if err := tx.Commit(); err != nil {
		return nil, classify(err, "commit episode creation")
	}

	keys := []string{s.keys.Season(sid), s.keys.TvShow(season.TvShowID)}
	invalidate(ctx, s.cache, s.logger, keys, nil)
	s.logger.Info("episode created",
		interfaces.String("episode_id", episode.ID.String()),
		interfaces.String("season_id", sid.String()),
		interfaces.Int("episode_number", episode.EpisodeNumber))
	return episode, nil
}

// GetEpisode returns an episode by id. Every single read bumps the
// episode's popularity, so this path is never cached.
func (s *EpisodeService) GetEpisode(ctx context.Context, id string) (*models.Episode, error) {
	episodeID, err := parseID(id, "episode")
	if err != nil {
		return nil, err
	}
	episode, err := s.store.GetEpisode(ctx, episodeID)
	if err != nil {
		return nil, classify(err, "get episode")
	}
	if err := s.store.IncrementEpisodePopularity(ctx, episodeID, episodeViewBoost); err != nil {
		s.logger.Warn("episode popularity bump failed",
			interfaces.String("episode_id", episodeID.String()),
			interfaces.Error(err))
	} else {
		episode.Popularity += episodeViewBoost
	}
	return episode, nil
}

// UpdateEpisode applies the supplied field changes.
func (s *EpisodeService) UpdateEpisode(ctx context.Context, id string, update EpisodeUpdate) (*models.Episode, error) {
	episodeID, err := parseID(id, "episode")
	if err != nil {
		return nil, err
	}
	episode, err := s.store.GetEpisode(ctx, episodeID)
	if err != nil {
		return nil, classify(err, "get episode")
	}

	if update.Title != nil {
		episode.Title = *update.Title
	}
	if update.Description != nil {
		episode.Description = *update.Description
	}
	if update.ReleaseDate != nil {
		episode.ReleaseDate = update.ReleaseDate
	}
	if update.Duration != nil {
		episode.Duration = *update.Duration
	}

	if err := s.store.UpdateEpisode(ctx, episode); err != nil {
		return nil, classify(err, "update episode")
	}
	invalidate(ctx, s.cache, s.logger, []string{s.keys.Episode(episodeID)}, nil)
	return episode, nil
}

// DeleteEpisode removes an episode and its registration in the owning
// season in one transaction.
func (s *EpisodeService) DeleteEpisode(ctx context.Context, id string) error {
	episodeID, err := parseID(id, "episode")
	if err != nil {
		return err
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return classify(err, "begin transaction")
	}

	episode, err := tx.GetEpisode(ctx, episodeID)
	if err != nil {
		_ = tx.Rollback()
		return classify(err, "get episode")
	}
	season, err := tx.GetSeason(ctx, episode.SeasonID)
	if err != nil {
		_ = tx.Rollback()
		return classify(err, "get season")
	}
	season.Episodes.Remove(episodeID)
	if err := tx.UpdateSeason(ctx, season); err != nil {
		_ = tx.Rollback()
		return classify(err, "deregister episode from season")
	}
	if err := tx.DeleteEpisode(ctx, episodeID); err != nil {
		_ = tx.Rollback()
		return classify(err, "delete episode")
	}
	if err := tx.Commit(); err != nil {
		return classify(err, "commit episode deletion")
	}

	keys := []string{s.keys.Episode(episodeID), s.keys.Season(episode.SeasonID)}
	invalidate(ctx, s.cache, s.logger, keys, nil)
	s.logger.Info("episode deleted",
		interfaces.String("episode_id", episodeID.String()),
		interfaces.String("season_id", episode.SeasonID.String()))
	return nil
}

// ListEpisodes returns one page of episodes with its result envelope.
func (s *EpisodeService) ListEpisodes(ctx context.Context, query repository.EpisodeQuery) ([]*models.Episode, pagination.Meta, error) {
	episodes, total, err := s.store.ListEpisodes(ctx, query)
	if err != nil {
		return nil, pagination.Meta{}, classify(err, "list episodes")
	}
	return episodes, pagination.NewMeta(total, len(episodes), query.Pagination), nil
}

// ListEpisodesBySeason returns a season's episodes in episode-number order.
func (s *EpisodeService) ListEpisodesBySeason(ctx context.Context, seasonID string) ([]*models.Episode, error) {
	sid, err := parseID(seasonID, "season")
	if err != nil {
		return nil, err
	}
	if _, err := s.store.GetSeason(ctx, sid); err != nil {
		return nil, classify(err, "get season")
	}
	episodes, err := s.store.ListEpisodesBySeason(ctx, sid)
	if err != nil {
		return nil, classify(err, "list episodes")
	}
	return episodes, nil
}

// RateEpisode folds one rating into the episode's running mean.
func (s *EpisodeService) RateEpisode(ctx context.Context, id string, rating float64) (*models.Episode, error) {
	episodeID, err := parseID(id, "episode")
	if err != nil {
		return nil, err
	}
	if err := validateRating(rating); err != nil {
		return nil, err
	}

	episode, err := s.store.GetEpisode(ctx, episodeID)
	if err != nil {
		return nil, classify(err, "get episode")
	}
	episode.Apply(rating)
	if err := s.store.UpdateEpisode(ctx, episode); err != nil {
		return nil, classify(err, "rate episode")
	}
	invalidate(ctx, s.cache, s.logger, []string{s.keys.Episode(episodeID)}, nil)
	return episode, nil
}

// TrendingEpisodes returns the most popular episodes.
func (s *EpisodeService) TrendingEpisodes(ctx context.Context, limit int) ([]*models.Episode, error) {
	if limit <= 0 {
		limit = trendingLimit
	}
	query := repository.EpisodeQuery{SortBy: "popularity"}
	query.Pagination.Limit = limit
	episodes, _, err := s.store.ListEpisodes(ctx, query)
	if err != nil {
		return nil, classify(err, "list trending episodes")
	}
	return episodes, nil
}

// GetRecommendations returns the most popular other episodes from the same
// show, across all of its seasons.
func (s *EpisodeService) GetRecommendations(ctx context.Context, id string, limit int) ([]*models.Episode, error) {
	episodeID, err := parseID(id, "episode")
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = trendingLimit
	}

	episode, err := s.store.GetEpisode(ctx, episodeID)
	if err != nil {
		return nil, classify(err, "get episode")
	}
	season, err := s.store.GetSeason(ctx, episode.SeasonID)
	if err != nil {
		return nil, classify(err, "get season")
	}
	seasons, err := s.store.ListSeasonsByTvShow(ctx, season.TvShowID)
	if err != nil {
		return nil, classify(err, "list seasons")
	}
	seasonIDs := make([]uuid.UUID, 0, len(seasons))
	for _, sibling := range seasons {
		seasonIDs = append(seasonIDs, sibling.ID)
	}
	episodes, err := s.store.ListEpisodesBySeasons(ctx, seasonIDs, episodeID, limit)
	if err != nil {
		return nil, classify(err, "list recommendations")
	}
	return episodes, nil
}

// IncrementPopularity raises an episode's popularity counter. Popularity
// never decreases, so the delta must be positive.
func (s *EpisodeService) IncrementPopularity(ctx context.Context, id string, delta int) error {
	episodeID, err := parseID(id, "episode")
	if err != nil {
		return err
	}
	if delta <= 0 {
		return errors.InvalidArgumentf("popularity delta must be positive, got %d", delta)
	}
	if err := s.store.IncrementEpisodePopularity(ctx, episodeID, delta); err != nil {
		return classify(err, "increment episode popularity")
	}
	return nil
}
