package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reelstack/reelstack/pkg/models"
)

const searchLimit = 50

// GormStore implements Store on a GORM database handle. A transactional
// GormStore shares the same methods over the transaction handle, so service
// code is identical inside and outside a transaction.
type GormStore struct {
	db   *gorm.DB
	inTx bool
}

// NewGormStore creates a catalog store backed by db.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// BeginTx opens a storage transaction and returns a Store scoped to it.
func (s *GormStore) BeginTx(ctx context.Context) (Store, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	return &GormStore{db: tx, inTx: true}, nil
}

// Commit commits the transaction. No-op outside one.
func (s *GormStore) Commit() error {
	if !s.inTx {
		return nil
	}
	return s.db.Commit().Error
}

// Rollback aborts the transaction. No-op outside one.
func (s *GormStore) Rollback() error {
	if !s.inTx {
		return nil
	}
	return s.db.Rollback().Error
}

// Movies

func (s *GormStore) CreateMovie(ctx context.Context, movie *models.Movie) error {
	return create(ctx, s.db, movie)
}

func (s *GormStore) GetMovie(ctx context.Context, id uuid.UUID) (*models.Movie, error) {
	return findByID[models.Movie](ctx, s.db, id)
}

func (s *GormStore) UpdateMovie(ctx context.Context, movie *models.Movie) error {
	return save(ctx, s.db, movie)
}

func (s *GormStore) DeleteMovie(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.Movie](ctx, s.db, id)
}

func (s *GormStore) ListMovies(ctx context.Context, query MovieQuery) ([]*models.Movie, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Movie{})
	if query.Genre != "" {
		q = q.Where("genres LIKE ?", jsonToken(query.Genre))
	}
	if query.Search != "" {
		pattern := "%" + strings.ToLower(query.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	return countAndList[models.Movie](q, query.Pagination, query.SortBy, query.SortOrder)
}

func (s *GormStore) SearchMovies(ctx context.Context, text string) ([]*models.Movie, error) {
	pattern := "%" + strings.ToLower(text) + "%"
	var movies []*models.Movie
	err := s.db.WithContext(ctx).
		Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
		Order("popularity DESC").
		Limit(searchLimit).
		Find(&movies).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search movies: %w", err)
	}
	return movies, nil
}

func (s *GormStore) FilterMovies(ctx context.Context, filter MovieFilter) ([]*models.Movie, error) {
	q := s.db.WithContext(ctx).Model(&models.Movie{})

	if filter.ReleaseDate != nil {
		q = q.Where("release_date >= ?", *filter.ReleaseDate)
	}
	for _, genre := range filter.Genres {
		q = q.Where("genres LIKE ?", jsonToken(genre))
	}
	for _, language := range filter.Languages {
		q = q.Where("languages LIKE ?", jsonToken(language))
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.ContentRating != "" {
		q = q.Where("content_rating = ?", filter.ContentRating)
	}
	if filter.RatingCount != nil {
		q = q.Where("rating_count >= ?", *filter.RatingCount)
	}
	if filter.Duration != nil {
		q = q.Where("duration >= ?", *filter.Duration)
	}
	if filter.Budget != nil {
		q = q.Where("budget >= ?", *filter.Budget)
	}
	if filter.Revenue != nil {
		q = q.Where("revenue >= ?", *filter.Revenue)
	}
	if filter.AverageRating != nil {
		q = q.Where("average_rating >= ?", *filter.AverageRating)
	}
	if filter.Popularity != nil {
		q = q.Where("popularity >= ?", *filter.Popularity)
	}
	if filter.IsActive != nil {
		q = q.Where("is_active = ?", *filter.IsActive)
	}
	if filter.IsAdult != nil {
		q = q.Where("is_adult = ?", *filter.IsAdult)
	}
	if filter.Country != "" {
		q = q.Where("LOWER(country) = ?", strings.ToLower(filter.Country))
	}
	if filter.ProductionCompany != "" {
		q = q.Where("LOWER(production_company) = ?", strings.ToLower(filter.ProductionCompany))
	}
	if filter.Director != "" {
		q = q.Where("LOWER(directors) LIKE ?", strings.ToLower(jsonToken(filter.Director)))
	}
	if filter.Writer != "" {
		q = q.Where("LOWER(writers) LIKE ?", strings.ToLower(jsonToken(filter.Writer)))
	}
	if filter.Person != "" {
		pattern := "%" + strings.ToLower(filter.Person) + "%"
		q = q.Where(
			"LOWER(cast_members) LIKE ? OR LOWER(crew_members) LIKE ? OR LOWER(directors) LIKE ? OR LOWER(writers) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var movies []*models.Movie
	if err := q.Order("popularity DESC").Find(&movies).Error; err != nil {
		return nil, fmt.Errorf("failed to filter movies: %w", err)
	}
	return movies, nil
}

// People

func (s *GormStore) CreatePerson(ctx context.Context, person *models.Person) error {
	return create(ctx, s.db, person)
}

func (s *GormStore) GetPerson(ctx context.Context, id uuid.UUID) (*models.Person, error) {
	return findByID[models.Person](ctx, s.db, id)
}

func (s *GormStore) UpdatePerson(ctx context.Context, person *models.Person) error {
	return save(ctx, s.db, person)
}

func (s *GormStore) DeletePerson(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.Person](ctx, s.db, id)
}

func (s *GormStore) ListPersons(ctx context.Context, query PersonQuery) ([]*models.Person, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Person{})
	if query.Role != "" {
		q = q.Where("roles LIKE ?", jsonToken(query.Role))
	}
	if query.Search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query.Search)+"%")
	}
	if query.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	return countAndList[models.Person](q, query.Pagination, query.SortBy, query.SortOrder)
}

func (s *GormStore) ListPersonsByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Person, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var persons []*models.Person
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&persons).Error; err != nil {
		return nil, fmt.Errorf("failed to list persons by ids: %w", err)
	}
	return persons, nil
}

func (s *GormStore) AddFilmographyEntry(ctx context.Context, personID, movieID uuid.UUID) error {
	entry := &models.FilmographyEntry{
		ID:       uuid.New(),
		PersonID: personID,
		MovieID:  movieID,
	}
	return create(ctx, s.db, entry)
}

func (s *GormStore) RemoveFilmographyEntry(ctx context.Context, personID, movieID uuid.UUID) (bool, error) {
	result := s.db.WithContext(ctx).
		Where("person_id = ? AND movie_id = ?", personID, movieID).
		Delete(&models.FilmographyEntry{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to remove filmography entry: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *GormStore) DeleteFilmographyByPerson(ctx context.Context, personID uuid.UUID) error {
	err := s.db.WithContext(ctx).
		Where("person_id = ?", personID).
		Delete(&models.FilmographyEntry{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete filmography by person: %w", err)
	}
	return nil
}

func (s *GormStore) DeleteFilmographyByMovie(ctx context.Context, movieID uuid.UUID) error {
	err := s.db.WithContext(ctx).
		Where("movie_id = ?", movieID).
		Delete(&models.FilmographyEntry{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete filmography by movie: %w", err)
	}
	return nil
}

func (s *GormStore) ListFilmographyMovies(ctx context.Context, personID uuid.UUID) ([]*models.Movie, error) {
	var movies []*models.Movie
	err := s.db.WithContext(ctx).
		Model(&models.Movie{}).
		Joins("JOIN filmography_entries ON filmography_entries.movie_id = movies.id").
		Where("filmography_entries.person_id = ?", personID).
		Order("movies.release_date DESC").
		Find(&movies).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list filmography movies: %w", err)
	}
	return movies, nil
}

func (s *GormStore) ListPersonsSharingFilmography(ctx context.Context, personID uuid.UUID, limit int) ([]*models.Person, error) {
	movieIDs := s.db.Model(&models.FilmographyEntry{}).
		Select("movie_id").
		Where("person_id = ?", personID)

	var persons []*models.Person
	err := s.db.WithContext(ctx).
		Model(&models.Person{}).
		Joins("JOIN filmography_entries ON filmography_entries.person_id = people.id").
		Where("filmography_entries.movie_id IN (?)", movieIDs).
		Where("people.id <> ?", personID).
		Group("people.id").
		Order("people.popularity DESC").
		Limit(limit).
		Find(&persons).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list persons sharing filmography: %w", err)
	}
	return persons, nil
}

// TV shows

func (s *GormStore) CreateTvShow(ctx context.Context, show *models.TvShow) error {
	return create(ctx, s.db, show)
}

func (s *GormStore) GetTvShow(ctx context.Context, id uuid.UUID) (*models.TvShow, error) {
	return findByID[models.TvShow](ctx, s.db, id)
}

func (s *GormStore) UpdateTvShow(ctx context.Context, show *models.TvShow) error {
	return save(ctx, s.db, show)
}

func (s *GormStore) DeleteTvShow(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.TvShow](ctx, s.db, id)
}

func (s *GormStore) ListTvShows(ctx context.Context, query TvShowQuery) ([]*models.TvShow, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.TvShow{})
	if query.Genre != "" {
		q = q.Where("genres LIKE ?", jsonToken(query.Genre))
	}
	if query.Search != "" {
		pattern := "%" + strings.ToLower(query.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if query.Country != "" {
		q = q.Where("LOWER(country) = ?", strings.ToLower(query.Country))
	}
	if query.ReleaseAfter != nil {
		q = q.Where("release_date >= ?", *query.ReleaseAfter)
	}
	if query.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	return countAndList[models.TvShow](q, query.Pagination, query.SortBy, query.SortOrder)
}

func (s *GormStore) ListTvShowsByGenres(ctx context.Context, genres []string, excludeID uuid.UUID, limit int) ([]*models.TvShow, error) {
	if len(genres) == 0 {
		return nil, nil
	}
	genreMatch := s.db.Where("genres LIKE ?", jsonToken(genres[0]))
	for _, genre := range genres[1:] {
		genreMatch = genreMatch.Or("genres LIKE ?", jsonToken(genre))
	}

	var shows []*models.TvShow
	err := s.db.WithContext(ctx).
		Where("id <> ?", excludeID).
		Where(genreMatch).
		Order("popularity DESC").
		Limit(limit).
		Find(&shows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tv shows by genres: %w", err)
	}
	return shows, nil
}

func (s *GormStore) IncrementTvShowPopularity(ctx context.Context, id uuid.UUID, delta int) error {
	return incrementColumn[models.TvShow](ctx, s.db, id, "popularity", delta)
}

// Seasons

func (s *GormStore) CreateSeason(ctx context.Context, season *models.Season) error {
	return create(ctx, s.db, season)
}

func (s *GormStore) GetSeason(ctx context.Context, id uuid.UUID) (*models.Season, error) {
	return findByID[models.Season](ctx, s.db, id)
}

func (s *GormStore) GetSeasonByNumber(ctx context.Context, tvShowID uuid.UUID, seasonNumber int) (*models.Season, error) {
	return findOneBy[models.Season](ctx, s.db, "tv_show_id = ? AND season_number = ?", tvShowID, seasonNumber)
}

func (s *GormStore) UpdateSeason(ctx context.Context, season *models.Season) error {
	return save(ctx, s.db, season)
}

func (s *GormStore) DeleteSeason(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.Season](ctx, s.db, id)
}

func (s *GormStore) ListSeasons(ctx context.Context, query SeasonQuery) ([]*models.Season, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Season{})
	if query.TvShowID != nil {
		q = q.Where("tv_show_id = ?", *query.TvShowID)
	}
	if query.Search != "" {
		pattern := "%" + strings.ToLower(query.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if query.ReleaseAfter != nil {
		q = q.Where("release_date >= ?", *query.ReleaseAfter)
	}
	return countAndList[models.Season](q, query.Pagination, query.SortBy, query.SortOrder)
}

func (s *GormStore) ListSeasonsByTvShow(ctx context.Context, tvShowID uuid.UUID) ([]*models.Season, error) {
	var seasons []*models.Season
	err := s.db.WithContext(ctx).
		Where("tv_show_id = ?", tvShowID).
		Order("season_number ASC").
		Find(&seasons).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list seasons by tv show: %w", err)
	}
	return seasons, nil
}

func (s *GormStore) ListSeasonsByTvShows(ctx context.Context, tvShowIDs []uuid.UUID, excludeID uuid.UUID, limit int) ([]*models.Season, error) {
	if len(tvShowIDs) == 0 {
		return nil, nil
	}
	var seasons []*models.Season
	err := s.db.WithContext(ctx).
		Where("tv_show_id IN ?", tvShowIDs).
		Where("id <> ?", excludeID).
		Order("popularity DESC").
		Limit(limit).
		Find(&seasons).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list seasons by tv shows: %w", err)
	}
	return seasons, nil
}

func (s *GormStore) DeleteSeasonsByTvShow(ctx context.Context, tvShowID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("tv_show_id = ?", tvShowID).
		Delete(&models.Season{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete seasons by tv show: %w", result.Error)
	}
	return nil
}

func (s *GormStore) IncrementSeasonPopularity(ctx context.Context, id uuid.UUID, delta int) error {
	return incrementColumn[models.Season](ctx, s.db, id, "popularity", delta)
}

// Episodes

func (s *GormStore) CreateEpisode(ctx context.Context, episode *models.Episode) error {
	return create(ctx, s.db, episode)
}

func (s *GormStore) GetEpisode(ctx context.Context, id uuid.UUID) (*models.Episode, error) {
	return findByID[models.Episode](ctx, s.db, id)
}

func (s *GormStore) GetEpisodeByNumber(ctx context.Context, seasonID uuid.UUID, episodeNumber int) (*models.Episode, error) {
	return findOneBy[models.Episode](ctx, s.db, "season_id = ? AND episode_number = ?", seasonID, episodeNumber)
}

func (s *GormStore) UpdateEpisode(ctx context.Context, episode *models.Episode) error {
	return save(ctx, s.db, episode)
}

func (s *GormStore) DeleteEpisode(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.Episode](ctx, s.db, id)
}

func (s *GormStore) ListEpisodes(ctx context.Context, query EpisodeQuery) ([]*models.Episode, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Episode{})
	if query.SeasonID != nil {
		q = q.Where("season_id = ?", *query.SeasonID)
	}
	if query.Search != "" {
		pattern := "%" + strings.ToLower(query.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if query.ReleaseAfter != nil {
		q = q.Where("release_date >= ?", *query.ReleaseAfter)
	}
	return countAndList[models.Episode](q, query.Pagination, query.SortBy, query.SortOrder)
}

func (s *GormStore) ListEpisodesBySeason(ctx context.Context, seasonID uuid.UUID) ([]*models.Episode, error) {
	var episodes []*models.Episode
	err := s.db.WithContext(ctx).
		Where("season_id = ?", seasonID).
		Order("episode_number ASC").
		Find(&episodes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list episodes by season: %w", err)
	}
	return episodes, nil
}

func (s *GormStore) ListEpisodesBySeasons(ctx context.Context, seasonIDs []uuid.UUID, excludeID uuid.UUID, limit int) ([]*models.Episode, error) {
	if len(seasonIDs) == 0 {
		return nil, nil
	}
	var episodes []*models.Episode
	err := s.db.WithContext(ctx).
		Where("season_id IN ?", seasonIDs).
		Where("id <> ?", excludeID).
		Order("popularity DESC").
		Limit(limit).
		Find(&episodes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list episodes by seasons: %w", err)
	}
	return episodes, nil
}

func (s *GormStore) DeleteEpisodesBySeason(ctx context.Context, seasonID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("season_id = ?", seasonID).
		Delete(&models.Episode{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete episodes by season: %w", result.Error)
	}
	return nil
}

func (s *GormStore) IncrementEpisodePopularity(ctx context.Context, id uuid.UUID, delta int) error {
	return incrementColumn[models.Episode](ctx, s.db, id, "popularity", delta)
}

// Reviews

func (s *GormStore) CreateReview(ctx context.Context, review *models.Review) error {
	return create(ctx, s.db, review)
}

func (s *GormStore) GetReview(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	return findByID[models.Review](ctx, s.db, id)
}

func (s *GormStore) UpdateReview(ctx context.Context, review *models.Review) error {
	return save(ctx, s.db, review)
}

func (s *GormStore) DeleteReview(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.Review](ctx, s.db, id)
}

func (s *GormStore) ListReviews(ctx context.Context, filter ReviewFilter) ([]*models.Review, error) {
	q := s.db.WithContext(ctx)
	if filter.TargetID != nil {
		q = q.Where("target_id = ?", *filter.TargetID)
	}
	if filter.TargetType != "" {
		q = q.Where("target_type = ?", filter.TargetType)
	}
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.Rating != nil {
		q = q.Where("rating = ?", *filter.Rating)
	}

	var reviews []*models.Review
	if err := q.Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

var _ Store = (*GormStore)(nil)
