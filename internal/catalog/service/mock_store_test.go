package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/reelstack/reelstack/internal/catalog/repository"
	"github.com/reelstack/reelstack/pkg/models"
)

// MockStore is a mock implementation of repository.Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) BeginTx(ctx context.Context) (repository.Store, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.Store), args.Error(1)
}

func (m *MockStore) Commit() error {
	return m.Called().Error(0)
}

func (m *MockStore) Rollback() error {
	return m.Called().Error(0)
}

func (m *MockStore) CreateMovie(ctx context.Context, movie *models.Movie) error {
	return m.Called(ctx, movie).Error(0)
}

func (m *MockStore) GetMovie(ctx context.Context, id uuid.UUID) (*models.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}

func (m *MockStore) UpdateMovie(ctx context.Context, movie *models.Movie) error {
	return m.Called(ctx, movie).Error(0)
}

func (m *MockStore) DeleteMovie(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStore) ListMovies(ctx context.Context, query repository.MovieQuery) ([]*models.Movie, int64, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Movie), args.Get(1).(int64), args.Error(2)
}

func (m *MockStore) SearchMovies(ctx context.Context, text string) ([]*models.Movie, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Movie), args.Error(1)
}

func (m *MockStore) FilterMovies(ctx context.Context, filter repository.MovieFilter) ([]*models.Movie, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Movie), args.Error(1)
}

func (m *MockStore) CreatePerson(ctx context.Context, person *models.Person) error {
	return m.Called(ctx, person).Error(0)
}

func (m *MockStore) GetPerson(ctx context.Context, id uuid.UUID) (*models.Person, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Person), args.Error(1)
}

func (m *MockStore) UpdatePerson(ctx context.Context, person *models.Person) error {
	return m.Called(ctx, person).Error(0)
}

func (m *MockStore) DeletePerson(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStore) ListPersons(ctx context.Context, query repository.PersonQuery) ([]*models.Person, int64, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Person), args.Get(1).(int64), args.Error(2)
}

func (m *MockStore) ListPersonsByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Person, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Person), args.Error(1)
}

func (m *MockStore) AddFilmographyEntry(ctx context.Context, personID, movieID uuid.UUID) error {
	return m.Called(ctx, personID, movieID).Error(0)
}

func (m *MockStore) RemoveFilmographyEntry(ctx context.Context, personID, movieID uuid.UUID) (bool, error) {
	args := m.Called(ctx, personID, movieID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) DeleteFilmographyByPerson(ctx context.Context, personID uuid.UUID) error {
	return m.Called(ctx, personID).Error(0)
}

func (m *MockStore) DeleteFilmographyByMovie(ctx context.Context, movieID uuid.UUID) error {
	return m.Called(ctx, movieID).Error(0)
}

func (m *MockStore) ListFilmographyMovies(ctx context.Context, personID uuid.UUID) ([]*models.Movie, error) {
	args := m.Called(ctx, personID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Movie), args.Error(1)
}

func (m *MockStore) ListPersonsSharingFilmography(ctx context.Context, personID uuid.UUID, limit int) ([]*models.Person, error) {
	args := m.Called(ctx, personID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Person), args.Error(1)
}

func (m *MockStore) CreateTvShow(ctx context.Context, show *models.TvShow) error {
	return m.Called(ctx, show).Error(0)
}

func (m *MockStore) GetTvShow(ctx context.Context, id uuid.UUID) (*models.TvShow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TvShow), args.Error(1)
}

func (m *MockStore) UpdateTvShow(ctx context.Context, show *models.TvShow) error {
	return m.Called(ctx, show).Error(0)
}

func (m *MockStore) DeleteTvShow(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStore) ListTvShows(ctx context.Context, query repository.TvShowQuery) ([]*models.TvShow, int64, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.TvShow), args.Get(1).(int64), args.Error(2)
}

func (m *MockStore) ListTvShowsByGenres(ctx context.Context, genres []string, excludeID uuid.UUID, limit int) ([]*models.TvShow, error) {
	args := m.Called(ctx, genres, excludeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TvShow), args.Error(1)
}

func (m *MockStore) IncrementTvShowPopularity(ctx context.Context, id uuid.UUID, delta int) error {
	return m.Called(ctx, id, delta).Error(0)
}

func (m *MockStore) CreateSeason(ctx context.Context, season *models.Season) error {
	return m.Called(ctx, season).Error(0)
}

func (m *MockStore) GetSeason(ctx context.Context, id uuid.UUID) (*models.Season, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Season), args.Error(1)
}

func (m *MockStore) GetSeasonByNumber(ctx context.Context, tvShowID uuid.UUID, seasonNumber int) (*models.Season, error) {
	args := m.Called(ctx, tvShowID, seasonNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Season), args.Error(1)
}

func (m *MockStore) UpdateSeason(ctx context.Context, season *models.Season) error {
	return m.Called(ctx, season).Error(0)
}

func (m *MockStore) DeleteSeason(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStore) ListSeasons(ctx context.Context, query repository.SeasonQuery) ([]*models.Season, int64, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Season), args.Get(1).(int64), args.Error(2)
}

func (m *MockStore) ListSeasonsByTvShow(ctx context.Context, tvShowID uuid.UUID) ([]*models.Season, error) {
	args := m.Called(ctx, tvShowID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Season), args.Error(1)
}

func (m *MockStore) ListSeasonsByTvShows(ctx context.Context, tvShowIDs []uuid.UUID, excludeID uuid.UUID, limit int) ([]*models.Season, error) {
	args := m.Called(ctx, tvShowIDs, excludeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Season), args.Error(1)
}

func (m *MockStore) DeleteSeasonsByTvShow(ctx context.Context, tvShowID uuid.UUID) error {
	return m.Called(ctx, tvShowID).Error(0)
}

func (m *MockStore) IncrementSeasonPopularity(ctx context.Context, id uuid.UUID, delta int) error {
	return m.Called(ctx, id, delta).Error(0)
}

func (m *MockStore) CreateEpisode(ctx context.Context, episode *models.Episode) error {
	return m.Called(ctx, episode).Error(0)
}

func (m *MockStore) GetEpisode(ctx context.Context, id uuid.UUID) (*models.Episode, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Episode), args.Error(1)
}

func (m *MockStore) GetEpisodeByNumber(ctx context.Context, seasonID uuid.UUID, episodeNumber int) (*models.Episode, error) {
	args := m.Called(ctx, seasonID, episodeNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Episode), args.Error(1)
}

func (m *MockStore) UpdateEpisode(ctx context.Context, episode *models.Episode) error {
	return m.Called(ctx, episode).Error(0)
}

func (m *MockStore) DeleteEpisode(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStore) ListEpisodes(ctx context.Context, query repository.EpisodeQuery) ([]*models.Episode, int64, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Episode), args.Get(1).(int64), args.Error(2)
}

func (m *MockStore) ListEpisodesBySeason(ctx context.Context, seasonID uuid.UUID) ([]*models.Episode, error) {
	args := m.Called(ctx, seasonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Episode), args.Error(1)
}

func (m *MockStore) ListEpisodesBySeasons(ctx context.Context, seasonIDs []uuid.UUID, excludeID uuid.UUID, limit int) ([]*models.Episode, error) {
	args := m.Called(ctx, seasonIDs, excludeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Episode), args.Error(1)
}

func (m *MockStore) DeleteEpisodesBySeason(ctx context.Context, seasonID uuid.UUID) error {
	return m.Called(ctx, seasonID).Error(0)
}

func (m *MockStore) IncrementEpisodePopularity(ctx context.Context, id uuid.UUID, delta int) error {
	return m.Called(ctx, id, delta).Error(0)
}

func (m *MockStore) CreateReview(ctx context.Context, review *models.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockStore) GetReview(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockStore) UpdateReview(ctx context.Context, review *models.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockStore) DeleteReview(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStore) ListReviews(ctx context.Context, filter repository.ReviewFilter) ([]*models.Review, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Review), args.Error(1)
}

var _ repository.Store = (*MockStore)(nil)
