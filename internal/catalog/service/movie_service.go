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

// MovieService manages the movie catalog. Movies have no owned children, so
// the only multi-row write is the filmography cleanup on delete.
type MovieService struct {
	store  repository.Store
	cache  interfaces.Cache
	keys   cache.Keys
	logger interfaces.Logger
}

// NewMovieService creates a movie service.
func NewMovieService(store repository.Store, c interfaces.Cache, logger interfaces.Logger) *MovieService {
	return &MovieService{store: store, cache: c, logger: logger}
}

// MovieUpdate carries the mutable movie fields. Nil means leave unchanged.
type MovieUpdate struct {
	Title             *string
	Description       *string
	ReleaseDate       *time.Time
	Genres            []string
	Status            *string
	ContentRating     *string
	Duration          *int
	Budget            *int64
	Revenue           *int64
	Languages         []string
	Country           *string
	ProductionCompany *string
	Directors         []string
	Writers           []string
	IsAdult           *bool
	IsActive          *bool
}

// MovieFilterInput is the raw conjunctive filter as supplied by the caller.
// Enum fields arrive as free-form strings and are normalized here; numeric
// fields are minimum thresholds.
type MovieFilterInput struct {
	ReleaseDate       *time.Time
	Genres            []string
	Status            string
	ContentRating     string
	RatingCount       *int
	Duration          *int
	Budget            *int64
	Revenue           *int64
	AverageRating     *float64
	Popularity        *int
	Person            string
	IsActive          *bool
	IsAdult           *bool
	Languages         []string
	Country           string
	ProductionCompany string
	Director          string
	Writer            string
}

func normalizeGenres(values []string) ([]string, error) {
	if len(values) == 0 {
		return nil, nil
	}
	normalized := make([]string, 0, len(values))
	for _, value := range values {
		genre, ok := models.NormalizeGenre(value)
		if !ok {
			return nil, errors.InvalidArgumentf("unknown genre: %s", value)
		}
		normalized = append(normalized, string(genre))
	}
	return normalized, nil
}

// CreateMovie validates and stores a new movie.
func (s *MovieService) CreateMovie(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	if movie.Title == "" {
		return nil, errors.InvalidArgument("movie title is required")
	}
	genres, err := normalizeGenres(movie.Genres)
	if err != nil {
		return nil, err
	}
	movie.Genres = genres
	if movie.Status != "" {
		status, ok := models.NormalizeStatus(string(movie.Status))
		if !ok {
			return nil, errors.InvalidArgumentf("unknown status: %s", movie.Status)
		}
		movie.Status = status
	}
	if movie.ContentRating != "" {
		rating, ok := models.NormalizeContentRating(string(movie.ContentRating))
		if !ok {
			return nil, errors.InvalidArgumentf("unknown content rating: %s", movie.ContentRating)
		}
		movie.ContentRating = rating
	}
	if movie.ID == uuid.Nil {
		movie.ID = uuid.New()
	}
	movie.IsActive = true

	if err := s.store.CreateMovie(ctx, movie); err != nil {
		return nil, classify(err, "create movie")
	}

	s.logger.Info("movie created",
		interfaces.String("movie_id", movie.ID.String()),
		interfaces.String("title", movie.Title))
	return movie, nil
}

// GetMovie returns a movie by id, read through the cache.
func (s *MovieService) GetMovie(ctx context.Context, id string) (*models.Movie, error) {
	movieID, err := parseID(id, "movie")
	if err != nil {
		return nil, err
	}
	movie, err := cache.GetOrFetch(ctx, s.cache, s.keys.Movie(movieID), entityTTL,
		func(ctx context.Context) (*models.Movie, error) {
			return s.store.GetMovie(ctx, movieID)
		})
	if err != nil {
		return nil, classify(err, "get movie")
	}
	return movie, nil
}

// UpdateMovie applies the supplied field changes.
func (s *MovieService) UpdateMovie(ctx context.Context, id string, update MovieUpdate) (*models.Movie, error) {
	movieID, err := parseID(id, "movie")
	if err != nil {
		return nil, err
	}
	movie, err := s.store.GetMovie(ctx, movieID)
	if err != nil {
		return nil, classify(err, "get movie")
	}

	if update.Title != nil {
		movie.Title = *update.Title
	}
	if update.Description != nil {
		movie.Description = *update.Description
	}
	if update.ReleaseDate != nil {
		movie.ReleaseDate = update.ReleaseDate
	}
	if update.Genres != nil {
		genres, err := normalizeGenres(update.Genres)
		if err != nil {
			return nil, err
		}
		movie.Genres = genres
	}
	if update.Status != nil {
		status, ok := models.NormalizeStatus(*update.Status)
		if !ok {
			return nil, errors.InvalidArgumentf("unknown status: %s", *update.Status)
		}
		movie.Status = status
	}
	if update.ContentRating != nil {
		rating, ok := models.NormalizeContentRating(*update.ContentRating)
		if !ok {
			return nil, errors.InvalidArgumentf("unknown content rating: %s", *update.ContentRating)
		}
		movie.ContentRating = rating
	}
	if update.Duration != nil {
		movie.Duration = *update.Duration
	}
	if update.Budget != nil {
		movie.Budget = *update.Budget
	}
	if update.Revenue != nil {
		movie.Revenue = *update.Revenue
	}
	if update.Languages != nil {
		movie.Languages = update.Languages
	}
	if update.Country != nil {
		movie.Country = *update.Country
	}
	if update.ProductionCompany != nil {
		movie.ProductionCompany = *update.ProductionCompany
	}
	if update.Directors != nil {
		movie.Directors = update.Directors
	}
	if update.Writers != nil {
		movie.Writers = update.Writers
	}
	if update.IsAdult != nil {
		movie.IsAdult = *update.IsAdult
	}
	if update.IsActive != nil {
		movie.IsActive = *update.IsActive
	}

	if err := s.store.UpdateMovie(ctx, movie); err != nil {
		return nil, classify(err, "update movie")
	}
	invalidate(ctx, s.cache, s.logger, []string{s.keys.Movie(movieID)}, nil)
	return movie, nil
}

// DeleteMovie removes a movie and its filmography links in one transaction.
func (s *MovieService) DeleteMovie(ctx context.Context, id string) error {
	movieID, err := parseID(id, "movie")
	if err != nil {
		return err
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return classify(err, "begin transaction")
	}
	if err := tx.DeleteFilmographyByMovie(ctx, movieID); err != nil {
		_ = tx.Rollback()
		return classify(err, "delete filmography")
	}
	if err := tx.DeleteMovie(ctx, movieID); err != nil {
		_ = tx.Rollback()
		return classify(err, "delete movie")
	}
	if err := tx.Commit(); err != nil {
		return classify(err, "commit movie deletion")
	}

	invalidate(ctx, s.cache, s.logger, []string{s.keys.Movie(movieID)}, nil)
	s.logger.Info("movie deleted", interfaces.String("movie_id", movieID.String()))
	return nil
}

// ListMovies returns one page of movies with its result envelope.
func (s *MovieService) ListMovies(ctx context.Context, query repository.MovieQuery) ([]*models.Movie, pagination.Meta, error) {
	movies, total, err := s.store.ListMovies(ctx, query)
	if err != nil {
		return nil, pagination.Meta{}, classify(err, "list movies")
	}
	return movies, pagination.NewMeta(total, len(movies), query.Pagination), nil
}

// SearchMovies matches text against titles and descriptions.
func (s *MovieService) SearchMovies(ctx context.Context, text string) ([]*models.Movie, error) {
	if text == "" {
		return nil, errors.InvalidArgument("search text is required")
	}
	movies, err := s.store.SearchMovies(ctx, text)
	if err != nil {
		return nil, classify(err, "search movies")
	}
	return movies, nil
}

// FilterMovies normalizes the enum criteria and runs the conjunctive filter.
// An unrecognized enum value rejects the whole filter rather than silently
// matching nothing.
func (s *MovieService) FilterMovies(ctx context.Context, input MovieFilterInput) ([]*models.Movie, error) {
	filter := repository.MovieFilter{
		ReleaseDate:       input.ReleaseDate,
		RatingCount:       input.RatingCount,
		Duration:          input.Duration,
		Budget:            input.Budget,
		Revenue:           input.Revenue,
		AverageRating:     input.AverageRating,
		Popularity:        input.Popularity,
		Person:            input.Person,
		IsActive:          input.IsActive,
		IsAdult:           input.IsAdult,
		Languages:         input.Languages,
		Country:           input.Country,
		ProductionCompany: input.ProductionCompany,
		Director:          input.Director,
		Writer:            input.Writer,
	}

	genres, err := normalizeGenres(input.Genres)
	if err != nil {
		return nil, err
	}
	filter.Genres = genres

	if input.Status != "" {
		status, ok := models.NormalizeStatus(input.Status)
		if !ok {
			return nil, errors.InvalidArgumentf("unknown status: %s", input.Status)
		}
		filter.Status = status
	}
	if input.ContentRating != "" {
		rating, ok := models.NormalizeContentRating(input.ContentRating)
		if !ok {
			return nil, errors.InvalidArgumentf("unknown content rating: %s", input.ContentRating)
		}
		filter.ContentRating = rating
	}

	movies, err := s.store.FilterMovies(ctx, filter)
	if err != nil {
		return nil, classify(err, "filter movies")
	}
	return movies, nil
}

// RateMovie folds one rating into the movie's running mean.
func (s *MovieService) RateMovie(ctx context.Context, id string, rating float64) (*models.Movie, error) {
	movieID, err := parseID(id, "movie")
	if err != nil {
		return nil, err
	}
	if err := validateRating(rating); err != nil {
		return nil, err
	}

	movie, err := s.store.GetMovie(ctx, movieID)
	if err != nil {
		return nil, classify(err, "get movie")
	}
	movie.Apply(rating)
	if err := s.store.UpdateMovie(ctx, movie); err != nil {
		return nil, classify(err, "rate movie")
	}
	invalidate(ctx, s.cache, s.logger, []string{s.keys.Movie(movieID)}, nil)
	return movie, nil
}

// TrendingMovies returns the most popular movies.
func (s *MovieService) TrendingMovies(ctx context.Context, limit int) ([]*models.Movie, error) {
	if limit <= 0 {
		limit = trendingLimit
	}
	query := repository.MovieQuery{SortBy: "popularity"}
	query.Pagination.Limit = limit
	movies, _, err := s.store.ListMovies(ctx, query)
	if err != nil {
		return nil, classify(err, "list trending movies")
	}
	return movies, nil
}

// AddCast appends acting credits to a movie. Every referenced person is
// validated first; one unknown person rejects the whole batch.
func (s *MovieService) AddCast(ctx context.Context, id string, entries []models.CastMember) (*models.Movie, error) {
	movieID, err := parseID(id, "movie")
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

	movie, err := s.store.GetMovie(ctx, movieID)
	if err != nil {
		return nil, classify(err, "get movie")
	}
	movie.Cast = append(movie.Cast, entries...)
	if err := s.store.UpdateMovie(ctx, movie); err != nil {
		return nil, classify(err, "add cast")
	}
	invalidate(ctx, s.cache, s.logger, []string{s.keys.Movie(movieID)}, nil)
	return movie, nil
}

// AddCrew appends production credits to a movie, validating each person.
func (s *MovieService) AddCrew(ctx context.Context, id string, entries []models.CrewMember) (*models.Movie, error) {
	movieID, err := parseID(id, "movie")
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

	movie, err := s.store.GetMovie(ctx, movieID)
	if err != nil {
		return nil, classify(err, "get movie")
	}
	movie.Crew = append(movie.Crew, entries...)
	if err := s.store.UpdateMovie(ctx, movie); err != nil {
		return nil, classify(err, "add crew")
	}
	invalidate(ctx, s.cache, s.logger, []string{s.keys.Movie(movieID)}, nil)
	return movie, nil
}

// RemoveCast drops every acting credit for a person from a movie.
func (s *MovieService) RemoveCast(ctx context.Context, id, personID string) (*models.Movie, error) {
	movieID, err := parseID(id, "movie")
	if err != nil {
		return nil, err
	}
	pid, err := parseID(personID, "person")
	if err != nil {
		return nil, err
	}

	movie, err := s.store.GetMovie(ctx, movieID)
	if err != nil {
		return nil, classify(err, "get movie")
	}
	cast, removed := models.RemoveCastMember(movie.Cast, pid)
	if !removed {
		return nil, errors.NotFoundf("cast entry not found for person %s", pid)
	}
	movie.Cast = cast
	if err := s.store.UpdateMovie(ctx, movie); err != nil {
		return nil, classify(err, "remove cast")
	}
	invalidate(ctx, s.cache, s.logger, []string{s.keys.Movie(movieID)}, nil)
	return movie, nil
}

// RemoveCrew drops every production credit for a person from a movie.
func (s *MovieService) RemoveCrew(ctx context.Context, id, personID string) (*models.Movie, error) {
	movieID, err := parseID(id, "movie")
	if err != nil {
		return nil, err
	}
	pid, err := parseID(personID, "person")
	if err != nil {
		return nil, err
	}

	movie, err := s.store.GetMovie(ctx, movieID)
	if err != nil {
		return nil, classify(err, "get movie")
	}
	crew, removed := models.RemoveCrewMember(movie.Crew, pid)
	if !removed {
		return nil, errors.NotFoundf("crew entry not found for person %s", pid)
	}
	movie.Crew = crew
	if err := s.store.UpdateMovie(ctx, movie); err != nil {
		return nil, classify(err, "remove crew")
	}
	invalidate(ctx, s.cache, s.logger, []string{s.keys.Movie(movieID)}, nil)
	return movie, nil
}
