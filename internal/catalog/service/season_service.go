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

// seasonCreateBoost is added to the owning show's popularity when a season
// is created.
const seasonCreateBoost = 10

// SeasonService manages the middle level of the show hierarchy. Creating a
// season registers it with its show and boosts the show's popularity;
// deleting one takes its episodes with it. Both run as single transactions.
type SeasonService struct {
	store  repository.Store
	cache  interfaces.Cache
	keys   cache.Keys
	logger interfaces.Logger
}

// NewSeasonService creates a season service.
func NewSeasonService(store repository.Store, c interfaces.Cache, logger interfaces.Logger) *SeasonService {
	return &SeasonService{store: store, cache: c, logger: logger}
}

// SeasonUpdate carries the mutable season fields. Nil means leave unchanged.
// The owner reference and season number are immutable after creation.
type SeasonUpdate struct {
	Title       *string
	Description *string
	ReleaseDate *time.Time
}

// CreateSeason adds a season to a show. Inside one transaction it verifies
// the show exists, enforces per-show season number uniqueness, inserts the
// season, registers it in the show's seasons list, and boosts the show's
// popularity.
func (s *SeasonService) CreateSeason(ctx context.Context, tvShowID string, season *models.Season) (*models.Season, error) {
	showID, err := parseID(tvShowID, "tv show")
	if err != nil {
		return nil, err
	}
	if season.SeasonNumber <= 0 {
		return nil, errors.InvalidArgumentf("season number must be positive, got %d", season.SeasonNumber)
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return nil, classify(err, "begin transaction")
	}

	show, err := tx.GetTvShow(ctx, showID)
	if err != nil {
		_ = tx.Rollback()
		if errors.IsNotFound(err) {
			return nil, errors.NotFoundf("tv show not found: %s", showID)
		}
		return nil, classify(err, "get tv show")
	}

	if _, err := tx.GetSeasonByNumber(ctx, showID, season.SeasonNumber); err == nil {
		_ = tx.Rollback()
		return nil, errors.Conflictf("season %d already exists for tv show %s", season.SeasonNumber, showID)
	} else if !errors.IsNotFound(err) {
		_ = tx.Rollback()
		return nil, classify(err, "check season uniqueness")
	}

	if season.ID == uuid.Nil {
		season.ID = uuid.New()
	}
	season.TvShowID = showID
	season.Episodes = nil
	if err := tx.CreateSeason(ctx, season); err != nil {
		_ = tx.Rollback()
		return nil, classify(err, "create season")
	}

	show.Seasons.Add(season.ID)
	show.Popularity += seasonCreateBoost
	if err := tx.UpdateTvShow(ctx, show); err != nil {
		_ = tx.Rollback()
		return nil, classify(err, "register season with tv show")
	}

	if err := tx.Commit(); err != nil {
		return nil, classify(err, "commit season creation")
	}

	invalidate(ctx, s.cache, s.logger, []string{s.keys.TvShow(showID)}, nil)
	s.logger.Info("season created",
		interfaces.String("season_id", season.ID.String()),
		interfaces.String("tv_show_id", showID.String()),
		interfaces.Int("season_number", season.SeasonNumber))
	return season, nil
}

// GetSeason returns a season by id, read through the cache.
func (s *SeasonService) GetSeason(ctx context.Context, id string) (*models.Season, error) {
	seasonID, err := parseID(id, "season")
	if err != nil {
		return nil, err
	}
	season, err := cache.GetOrFetch(ctx, s.cache, s.keys.Season(seasonID), entityTTL,
		func(ctx context.Context) (*models.Season, error) {
			return s.store.GetSeason(ctx, seasonID)
		})
	if err != nil {
		return nil, classify(err, "get season")
	}
	return season, nil
}

// UpdateSeason applies the supplied field changes.
func (s *SeasonService) UpdateSeason(ctx context.Context, id string, update SeasonUpdate) (*models.Season, error) {
	seasonID, err := parseID(id, "season")
	if err != nil {
		return nil, err
	}
	season, err := s.store.GetSeason(ctx, seasonID)
	if err != nil {
		return nil, classify(err, "get season")
	}

	if update.Title != nil {
		season.Title = *update.Title
	}
	if update.Description != nil {
		season.Description = *update.Description
	}
	if update.ReleaseDate != nil {
		season.ReleaseDate = update.ReleaseDate
	}

	if err := s.store.UpdateSeason(ctx, season); err != nil {
		return nil, classify(err, "update season")
	}
	invalidate(ctx, s.cache, s.logger, []string{s.keys.Season(seasonID)}, nil)
	return season, nil
}

// DeleteSeason removes a season, its episodes, and its registration in the
// owning show, all in one transaction. Episodes go first so a mid-cascade
// failure can never leave orphans behind a missing parent.
func (s *SeasonService) DeleteSeason(ctx context.Context, id string) error {
	seasonID, err := parseID(id, "season")
	if err != nil {
		return err
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return classify(err, "begin transaction")
	}

	season, err := tx.GetSeason(ctx, seasonID)
	if err != nil {
		_ = tx.Rollback()
		return classify(err, "get season")
	}
	if err := tx.DeleteEpisodesBySeason(ctx, seasonID); err != nil {
		_ = tx.Rollback()
		return classify(err, "delete episodes")
	}

	show, err := tx.GetTvShow(ctx, season.TvShowID)
	if err != nil {
		_ = tx.Rollback()
		return classify(err, "get tv show")
	}
	show.Seasons.Remove(seasonID)
	if err := tx.UpdateTvShow(ctx, show); err != nil {
		_ = tx.Rollback()
		return classify(err, "deregister season from tv show")
	}

	if err := tx.DeleteSeason(ctx, seasonID); err != nil {
		_ = tx.Rollback()
		return classify(err, "delete season")
	}
	if err := tx.Commit(); err != nil {
		return classify(err, "commit season deletion")
	}

	keys := []string{s.keys.Season(seasonID), s.keys.TvShow(season.TvShowID)}
	invalidate(ctx, s.cache, s.logger, keys, []string{s.keys.EpisodePattern()})
	s.logger.Info("season deleted",
		interfaces.String("season_id", seasonID.String()),
		interfaces.String("tv_show_id", season.TvShowID.String()))
	return nil
}

// ListSeasons returns one page of seasons with its result envelope.
func (s *SeasonService) ListSeasons(ctx context.Context, query repository.SeasonQuery) ([]*models.Season, pagination.Meta, error) {
	seasons, total, err := s.store.ListSeasons(ctx, query)
	if err != nil {
		return nil, pagination.Meta{}, classify(err, "list seasons")
	}
	return seasons, pagination.NewMeta(total, len(seasons), query.Pagination), nil
}

// ListSeasonsByTvShow returns a show's seasons in season-number order.
func (s *SeasonService) ListSeasonsByTvShow(ctx context.Context, tvShowID string) ([]*models.Season, error) {
	showID, err := parseID(tvShowID, "tv show")
	if err != nil {
		return nil, err
	}
	if _, err := s.store.GetTvShow(ctx, showID); err != nil {
		return nil, classify(err, "get tv show")
	}
	seasons, err := s.store.ListSeasonsByTvShow(ctx, showID)
	if err != nil {
		return nil, classify(err, "list seasons")
	}
	return seasons, nil
}

// RateSeason folds one rating into the season's running mean.
func (s *SeasonService) RateSeason(ctx context.Context, id string, rating float64) (*models.Season, error) {
	seasonID, err := parseID(id, "season")
	if err != nil {
		return nil, err
	}
	if err := validateRating(rating); err != nil {
		return nil, err
	}

	season, err := s.store.GetSeason(ctx, seasonID)
	if err != nil {
		return nil, classify(err, "get season")
	}
	season.Apply(rating)
	if err := s.store.UpdateSeason(ctx, season); err != nil {
		return nil, classify(err, "rate season")
	}
	invalidate(ctx, s.cache, s.logger, []string{s.keys.Season(seasonID)}, nil)
	return season, nil
}

// AddEpisode registers an already-stored episode in the season's episodes
// list. The episode must belong to this season; registering it twice is a
// conflict.
func (s *SeasonService) AddEpisode(ctx context.Context, id, episodeID string) (*models.Season, error) {
	seasonID, err := parseID(id, "season")
	if err != nil {
		return nil, err
	}
	eid, err := parseID(episodeID, "episode")
	if err != nil {
		return nil, err
	}

	season, err := s.store.GetSeason(ctx, seasonID)
	if err != nil {
		return nil, classify(err, "get season")
	}
	episode, err := s.store.GetEpisode(ctx, eid)
	if err != nil {
		return nil, classify(err, "get episode")
	}
	if episode.SeasonID != seasonID {
		return nil, errors.InvalidArgumentf("episode %s belongs to season %s", eid, episode.SeasonID)
	}
	if !season.Episodes.Add(eid) {
		return nil, errors.Conflictf("episode %s is already registered with season %s", eid, seasonID)
	}
	if err := s.store.UpdateSeason(ctx, season); err != nil {
		return nil, classify(err, "add episode")
	}
	invalidate(ctx, s.cache, s.logger, []string{s.keys.Season(seasonID)}, nil)
	return season, nil
}

// RemoveEpisode drops an episode from the season's episodes list. The
// episode row itself is untouched.
func (s *SeasonService) RemoveEpisode(ctx context.Context, id, episodeID string) (*models.Season, error) {
	seasonID, err := parseID(id, "season")
	if err != nil {
		return nil, err
	}
	eid, err := parseID(episodeID, "episode")
	if err != nil {
		return nil, err
	}

	season, err := s.store.GetSeason(ctx, seasonID)
	if err != nil {
		return nil, classify(err, "get season")
	}
	if !season.Episodes.Remove(eid) {
		return nil, errors.NotFoundf("episode %s is not registered with season %s", eid, seasonID)
	}
	if err := s.store.UpdateSeason(ctx, season); err != nil {
		return nil, classify(err, "remove episode")
	}
	invalidate(ctx, s.cache, s.logger, []string{s.keys.Season(seasonID)}, nil)
	return season, nil
}

// TrendingSeasons returns the most popular seasons.
func (s *SeasonService) TrendingSeasons(ctx context.Context, limit int) ([]*models.Season, error) {
	if limit <= 0 {
		limit = trendingLimit
	}
	query := repository.SeasonQuery{SortBy: "popularity"}
	query.Pagination.Limit = limit
	seasons, _, err := s.store.ListSeasons(ctx, query)
	if err != nil {
		return nil, classify(err, "list trending seasons")
	}
	return seasons, nil
}

// GetRecommendations returns the most popular sibling seasons of the same
// show.
func (s *SeasonService) GetRecommendations(ctx context.Context, id string, limit int) ([]*models.Season, error) {
	seasonID, err := parseID(id, "season")
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = trendingLimit
	}

	season, err := s.store.GetSeason(ctx, seasonID)
	if err != nil {
		return nil, classify(err, "get season")
	}
	seasons, err := s.store.ListSeasonsByTvShows(ctx, []uuid.UUID{season.TvShowID}, seasonID, limit)
	if err != nil {
		return nil, classify(err, "list recommendations")
	}
	return seasons, nil
}

// IncrementPopularity raises a season's popularity counter. Popularity never
// decreases, so the delta must be positive.
func (s *SeasonService) IncrementPopularity(ctx context.Context, id string, delta int) error {
	seasonID, err := parseID(id, "season")
	if err != nil {
		return err
	}
	if delta <= 0 {
		return errors.InvalidArgumentf("popularity delta must be positive, got %d", delta)
	}
	if err := s.store.IncrementSeasonPopularity(ctx, seasonID, delta); err != nil {
		return classify(err, "increment season popularity")
	}
	invalidate(ctx, s.cache, s.logger, []string{s.keys.Season(seasonID)}, nil)
	return nil
}
