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

// TvShowService manages the show aggregate root. Deleting a show tears down
// the whole hierarchy bottom-up inside one transaction: episodes first, then
// seasons, then the show itself.
type TvShowService struct {
	store  repository.Store
	cache  interfaces.Cache
	keys   cache.Keys
	logger interfaces.Logger
}

// NewTvShowService creates a TV show service.
func NewTvShowService(store repository.Store, c interfaces.Cache, logger interfaces.Logger) *TvShowService {
	return &TvShowService{store: store, cache: c, logger: logger}
}

// TvShowUpdate carries the mutable show fields. Nil means leave unchanged.
// The seasons list is never updated directly; it moves only through season
// creation and deletion.
type TvShowUpdate struct {
	Title       *string
	Description *string
	ReleaseDate *time.Time
	EndDate     *time.Time
	Genres      []string
	Country     *string
	IsFeatured  *bool
	IsActive    *bool
}

// CreateTvShow validates and stores a new show.
func (s *TvShowService) CreateTvShow(ctx context.Context, show *models.TvShow) (*models.TvShow, error) {
	if show.Title == "" {
		return nil, errors.InvalidArgument("tv show title is required")
	}
	genres, err := normalizeGenres(show.Genres)
	if err != nil {
		return nil, err
	}
	show.Genres = genres
	if show.ID == uuid.Nil {
		show.ID = uuid.New()
	}
	show.Seasons = nil
	show.IsActive = true

	if err := s.store.CreateTvShow(ctx, show); err != nil {
		return nil, classify(err, "create tv show")
	}
	s.logger.Info("tv show created",
		interfaces.String("tv_show_id", show.ID.String()),
		interfaces.String("title", show.Title))
	return show, nil
}

// GetTvShow returns a show by id, read through the cache.
func (s *TvShowService) GetTvShow(ctx context.Context, id string) (*models.TvShow, error) {
	showID, err := parseID(id, "tv show")
	if err != nil {
		return nil, err
	}
	show, err := cache.GetOrFetch(ctx, s.cache, s.keys.TvShow(showID), entityTTL,
		func(ctx context.Context) (*models.TvShow, error) {
			return s.store.GetTvShow(ctx, showID)
		})
	if err != nil {
		return nil, classify(err, "get tv show")
	}
	return show, nil
}

// UpdateTvShow applies the supplied field changes.
func (s *TvShowService) UpdateTvShow(ctx context.Context, id string, update TvShowUpdate) (*models.TvShow, error) {
	showID, err := parseID(id, "tv show")
	if err != nil {
		return nil, err
	}
	show, err := s.store.GetTvShow(ctx, showID)
	if err != nil {
		return nil, classify(err, "get tv show")
	}

	if update.Title != nil {
		show.Title = *update.Title
	}
	if update.Description != nil {
		show.Description = *update.Description
	}
	if update.ReleaseDate != nil {
		show.ReleaseDate = update.ReleaseDate
	}
	if update.EndDate != nil {
		show.EndDate = update.EndDate
	}
	if update.Genres != nil {
		genres, err := normalizeGenres(update.Genres)
		if err != nil {
			return nil, err
		}
		show.Genres = genres
	}
	if update.Country != nil {
		show.Country = *update.Country
	}
	if update.IsFeatured != nil {
		show.IsFeatured = *update.IsFeatured
	}
	if update.IsActive != nil {
		show.IsActive = *update.IsActive
	}

	if err := s.store.UpdateTvShow(ctx, show); err != nil {
		return nil, classify(err, "update tv show")
	}
	invalidate(ctx, s.cache, s.logger, []string{s.keys.TvShow(showID)}, nil)
	return show, nil
}

// DeleteTvShow removes a show and everything under it. The cascade runs
// bottom-up in a single transaction so a failure at any level leaves the
// hierarchy untouched.
func (s *TvShowService) DeleteTvShow(ctx context.Context, id string) error {
	showID, err := parseID(id, "tv show")
	if err != nil {
		return err
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return classify(err, "begin transaction")
	}

	if _, err := tx.GetTvShow(ctx, showID); err != nil {
		_ = tx.Rollback()
		return classify(err, "get tv show")
	}
	seasons, err := tx.ListSeasonsByTvShow(ctx, showID)
	if err != nil {
		_ = tx.Rollback()
		return classify(err, "list seasons")
	}
	for _, season := range seasons {
		if err := tx.DeleteEpisodesBySeason(ctx, season.ID); err != nil {
			_ = tx.Rollback()
			return classify(err, "delete episodes")
		}
	}
	if err := tx.DeleteSeasonsByTvShow(ctx, showID); err != nil {
		_ = tx.Rollback()
		return classify(err, "delete seasons")
	}
	if err := tx.DeleteTvShow(ctx, showID); err != nil {
		_ = tx.Rollback()
		return classify(err, "delete tv show")
	}
	if err := tx.Commit(); err != nil {
		return classify(err, "commit tv show deletion")
	}

	patterns := []string{s.keys.SeasonPattern(), s.keys.EpisodePattern()}
	invalidate(ctx, s.cache, s.logger, []string{s.keys.TvShow(showID)}, patterns)
	s.logger.Info("tv show deleted",
		interfaces.String("tv_show_id", showID.String()),
		interfaces.Int("seasons", len(seasons)))
	return nil
}

// ListTvShows returns one page of shows with its result envelope.
func (s *TvShowService) ListTvShows(ctx context.Context, query repository.TvShowQuery) ([]*models.TvShow, pagination.Meta, error) {
	shows, total, err := s.store.ListTvShows(ctx, query)
	if err != nil {
		return nil, pagination.Meta{}, classify(err, "list tv shows")
	}
	return shows, pagination.NewMeta(total, len(shows), query.Pagination), nil
}

// RateTvShow folds one rating into the show's running mean.
func (s *TvShowService) RateTvShow(ctx context.Context, id string, rating float64) (*models.TvShow, error) {
	showID, err := parseID(id, "tv show")
	if err != nil {
		return nil, err
	}
	if err := validateRating(rating); err != nil {
		return nil, err
	}

	show, err := s.store.GetTvShow(ctx, showID)
	if err != nil {
		return nil, classify(err, "get tv show")
	}
	show.Apply(rating)
	if err := s.store.UpdateTvShow(ctx, show); err != nil {
		return nil, classify(err, "rate tv show")
	}
	invalidate(ctx, s.cache, s.logger, []string{s.keys.TvShow(showID)}, nil)
	return show, nil
}

// GetRecommendations returns popular shows sharing at least one genre with
// the given show.
func (s *TvShowService) GetRecommendations(ctx context.Context, id string, limit int) ([]*models.TvShow, error) {
	showID, err := parseID(id, "tv show")
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = trendingLimit
	}

	show, err := s.store.GetTvShow(ctx, showID)
	if err != nil {
		return nil, classify(err, "get tv show")
	}
	if len(show.Genres) == 0 {
		return nil, nil
	}
	shows, err := s.store.ListTvShowsByGenres(ctx, show.Genres, showID, limit)
	if err != nil {
		return nil, classify(err, "list recommendations")
	}
	return shows, nil
}

// TrendingTvShows returns the most popular shows.
func (s *TvShowService) TrendingTvShows(ctx context.Context, limit int) ([]*models.TvShow, error) {
	if limit <= 0 {
		limit = trendingLimit
	}
	query := repository.TvShowQuery{SortBy: "popularity", ActiveOnly: true}
	query.Pagination.Limit = limit
	shows, _, err := s.store.ListTvShows(ctx, query)
	if err != nil {
		return nil, classify(err, "list trending tv shows")
	}
	return shows, nil
}

// AddCast appends acting credits to a show, validating each person first.
func (s *TvShowService) AddCast(ctx context.Context, id string, entries []models.CastMember) (*models.TvShow, error) {
	showID, err := parseID(id, "tv show")
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, errors.InvalidArgument("at least one cast entry is required")
	}
	for _, entry := range entries {
		if _, err := s.store.GetPerson(ctx, entry.PersonID); err != nil {
			if errors.IsNotFound(err) {
				return nil, errors.NotFoundf("person not found: %s", entry.PersonID)
			}
			return nil, classify(err, "validate cast person")
		}
	}

	show, err := s.store.GetTvShow(ctx, showID)
	if err != nil {
		return nil, classify(err, "get tv show")
	}
	show.Cast = append(show.Cast, entries...)
	if err := s.store.UpdateTvShow(ctx, show); err != nil {
		return nil, classify(err, "add cast")
	}
	invalidate(ctx, s.cache, s.logger, []string{s.keys.TvShow(showID)}, nil)
	return show, nil
}

// AddCrew appends production credits to a show, validating each person first.
func (s *TvShowService) AddCrew(ctx context.Context, id string, entries []models.CrewMember) (*models.TvShow, error) {
	showID, err := parseID(id, "tv show")
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, errors.InvalidArgument("at least one crew entry is required")
	}
	for _, entry := range entries {
		if _, err := s.store.GetPerson(ctx, entry.PersonID); err != nil {
			if errors.IsNotFound(err) {
				return nil, errors.NotFoundf("person not found: %s", entry.PersonID)
			}
			return nil, classify(err, "validate crew person")
		}
	}

	show, err := s.store.GetTvShow(ctx, showID)
	if err != nil {
		return nil, classify(err, "get tv show")
	}
	show.Crew = append(show.Crew, entries...)
	if err := s.store.UpdateTvShow(ctx, show); err != nil {
		return nil, classify(err, "add crew")
	}
	invalidate(ctx, s.cache, s.logger, []string{s.keys.TvShow(showID)}, nil)
	return show, nil
}

// RemoveCast drops every acting credit for a person from a show.
func (s *TvShowService) RemoveCast(ctx context.Context, id, personID string) (*models.TvShow, error) {
	showID, err := parseID(id, "tv show")
	if err != nil {
		return nil, err
	}
	pid, err := parseID(personID, "person")
	if err != nil {
		return nil, err
	}

	show, err := s.store.GetTvShow(ctx, showID)
	if err != nil {
		return nil, classify(err, "get tv show")
	}
	kept, removed := models.RemoveCastMember(show.Cast, pid)
	if !removed {
		return nil, errors.NotFoundf("person %s is not in the cast of tv show %s", pid, showID)
	}
	show.Cast = kept
	if err := s.store.UpdateTvShow(ctx, show); err != nil {
		return nil, classify(err, "remove cast")
	}
	invalidate(ctx, s.cache, s.logger, []string{s.keys.TvShow(showID)}, nil)
	return show, nil
}

// RemoveCrew drops every production credit for a person from a show.
func (s *TvShowService) RemoveCrew(ctx context.Context, id, personID string) (*models.TvShow, error) {
	showID, err := parseID(id, "tv show")
	if err != nil {
		return nil, err
	}
	pid, err := parseID(personID, "person")
	if err != nil {
		return nil, err
	}

	show, err := s.store.GetTvShow(ctx, showID)
	if err != nil {
		return nil, classify(err, "get tv show")
	}
	kept, removed := models.RemoveCrewMember(show.Crew, pid)
	if !removed {
		return nil, errors.NotFoundf("person %s is not in the crew of tv show %s", pid, showID)
	}
	show.Crew = kept
	if err := s.store.UpdateTvShow(ctx, show); err != nil {
		return nil, classify(err, "remove crew")
	}
	invalidate(ctx, s.cache, s.logger, []string{s.keys.TvShow(showID)}, nil)
	return show, nil
}

// AddSeason registers an already-stored season in the show's seasons list.
// The season must belong to this show; registering it twice is a conflict.
func (s *TvShowService) AddSeason(ctx context.Context, id, seasonID string) (*models.TvShow, error) {
	showID, err := parseID(id, "tv show")
	if err != nil {
		return nil, err
	}
	sid, err := parseID(seasonID, "season")
	if err != nil {
		return nil, err
	}

	show, err := s.store.GetTvShow(ctx, showID)
	if err != nil {
		return nil, classify(err, "get tv show")
	}
	season, err := s.store.GetSeason(ctx, sid)
	if err != nil {
		return nil, classify(err, "get season")
	}
	if season.TvShowID != showID {
		return nil, errors.InvalidArgumentf("season %s belongs to tv show %s", sid, season.TvShowID)
	}
	if !show.Seasons.Add(sid) {
		return nil, errors.Conflictf("season %s is already registered with tv show %s", sid, showID)
	}
	if err := s.store.UpdateTvShow(ctx, show); err != nil {
		return nil, classify(err, "add season")
	}
	invalidate(ctx, s.cache, s.logger, []string{s.keys.TvShow(showID)}, nil)
	return show, nil
}

// RemoveSeason drops a season from the show's seasons list. The season row
// itself is untouched.
func (s *TvShowService) RemoveSeason(ctx context.Context, id, seasonID string) (*models.TvShow, error) {
	showID, err := parseID(id, "tv show")
	if err != nil {
		return nil, err
	}
	sid, err := parseID(seasonID, "season")
	if err != nil {
		return nil, err
	}

	show, err := s.store.GetTvShow(ctx, showID)
	if err != nil {
		return nil, classify(err, "get tv show")
	}
	if !show.Seasons.Remove(sid) {
		return nil, errors.NotFoundf("season %s is not registered with tv show %s", sid, showID)
	}
	if err := s.store.UpdateTvShow(ctx, show); err != nil {
		return nil, classify(err, "remove season")
	}
	invalidate(ctx, s.cache, s.logger, []string{s.keys.TvShow(showID)}, nil)
	return show, nil
}

// IncrementPopularity raises a show's popularity counter. Popularity never
// decreases, so the delta must be positive.
func (s *TvShowService) IncrementPopularity(ctx context.Context, id string, delta int) error {
	showID, err := parseID(id, "tv show")
	if err != nil {
		return err
	}
	if delta <= 0 {
		return errors.InvalidArgumentf("popularity delta must be positive, got %d", delta)
	}
	if err := s.store.IncrementTvShowPopularity(ctx, showID, delta); err != nil {
		return classify(err, "increment tv show popularity")
	}
	invalidate(ctx, s.cache, s.logger, []string{s.keys.TvShow(showID)}, nil)
	return nil
}
