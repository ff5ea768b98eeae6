package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/reelstack/reelstack/pkg/database"
	apperrors "github.com/reelstack/reelstack/pkg/errors"
	"github.com/reelstack/reelstack/pkg/models"
)

type GormStoreTestSuite struct {
	suite.Suite
	db    *gorm.DB
	store *GormStore
	ctx   context.Context
}

func (suite *GormStoreTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	suite.Require().NoError(err)
	suite.Require().NoError(database.Migrate(db))

	suite.db = db
	suite.store = NewGormStore(db)
	suite.ctx = context.Background()
}

func (suite *GormStoreTestSuite) newMovie(title string) *models.Movie {
	movie := &models.Movie{
		ID:       uuid.New(),
		Title:    title,
		Genres:   []string{"Science Fiction"},
		IsActive: true,
	}
	suite.Require().NoError(suite.store.CreateMovie(suite.ctx, movie))
	return movie
}

func (suite *GormStoreTestSuite) newPerson(name string, popularity int) *models.Person {
	person := &models.Person{ID: uuid.New(), Name: name, Popularity: popularity, IsActive: true}
	suite.Require().NoError(suite.store.CreatePerson(suite.ctx, person))
	return person
}

func (suite *GormStoreTestSuite) TestGetMovieNotFound() {
	_, err := suite.store.GetMovie(suite.ctx, uuid.New())

	suite.Error(err)
	suite.True(apperrors.IsNotFound(err))
}

func (suite *GormStoreTestSuite) TestSeasonNumberUniquePerShow() {
	show := &models.TvShow{ID: uuid.New(), Title: "Deep Space", IsActive: true}
	suite.Require().NoError(suite.store.CreateTvShow(suite.ctx, show))

	first := &models.Season{ID: uuid.New(), TvShowID: show.ID, SeasonNumber: 1}
	suite.Require().NoError(suite.store.CreateSeason(suite.ctx, first))

	duplicate := &models.Season{ID: uuid.New(), TvShowID: show.ID, SeasonNumber: 1}
	err := suite.store.CreateSeason(suite.ctx, duplicate)
	suite.Error(err)
	suite.True(apperrors.IsConflict(err))

	otherShow := &models.TvShow{ID: uuid.New(), Title: "Far Horizon", IsActive: true}
	suite.Require().NoError(suite.store.CreateTvShow(suite.ctx, otherShow))
	sameNumberOtherShow := &models.Season{ID: uuid.New(), TvShowID: otherShow.ID, SeasonNumber: 1}
	suite.NoError(suite.store.CreateSeason(suite.ctx, sameNumberOtherShow))
}

func (suite *GormStoreTestSuite) TestSeasonNumberReusableAfterDelete() {
	show := &models.TvShow{ID: uuid.New(), Title: "Deep Space", IsActive: true}
	suite.Require().NoError(suite.store.CreateTvShow(suite.ctx, show))

	first := &models.Season{ID: uuid.New(), TvShowID: show.ID, SeasonNumber: 1}
	suite.Require().NoError(suite.store.CreateSeason(suite.ctx, first))
	suite.Require().NoError(suite.store.DeleteSeason(suite.ctx, first.ID))

	recreated := &models.Season{ID: uuid.New(), TvShowID: show.ID, SeasonNumber: 1}
	suite.NoError(suite.store.CreateSeason(suite.ctx, recreated))

	_, err := suite.store.GetSeason(suite.ctx, first.ID)
	suite.True(apperrors.IsNotFound(err))
}

func (suite *GormStoreTestSuite) TestEpisodeNumberReusableAfterDelete() {
	show := &models.TvShow{ID: uuid.New(), Title: "Deep Space", IsActive: true}
	suite.Require().NoError(suite.store.CreateTvShow(suite.ctx, show))
	season := &models.Season{ID: uuid.New(), TvShowID: show.ID, SeasonNumber: 1}
	suite.Require().NoError(suite.store.CreateSeason(suite.ctx, season))

	first := &models.Episode{ID: uuid.New(), SeasonID: season.ID, EpisodeNumber: 1, Title: "Pilot"}
	suite.Require().NoError(suite.store.CreateEpisode(suite.ctx, first))
	suite.Require().NoError(suite.store.DeleteEpisode(suite.ctx, first.ID))

	recreated := &models.Episode{ID: uuid.New(), SeasonID: season.ID, EpisodeNumber: 1, Title: "Pilot (recut)"}
	suite.NoError(suite.store.CreateEpisode(suite.ctx, recreated))
}

func (suite *GormStoreTestSuite) TestFilmographyEntryUnique() {
	person := suite.newPerson("Ada", 10)
	movie := suite.newMovie("Solaris")

	suite.Require().NoError(suite.store.AddFilmographyEntry(suite.ctx, person.ID, movie.ID))

	err := suite.store.AddFilmographyEntry(suite.ctx, person.ID, movie.ID)
	suite.Error(err)
	suite.True(apperrors.IsConflict(err))
}

func (suite *GormStoreTestSuite) TestRemoveFilmographyEntry() {
	person := suite.newPerson("Ada", 10)
	movie := suite.newMovie("Solaris")
	suite.Require().NoError(suite.store.AddFilmographyEntry(suite.ctx, person.ID, movie.ID))

	removed, err := suite.store.RemoveFilmographyEntry(suite.ctx, person.ID, movie.ID)
	suite.NoError(err)
	suite.True(removed)

	removed, err = suite.store.RemoveFilmographyEntry(suite.ctx, person.ID, movie.ID)
	suite.NoError(err)
	suite.False(removed)
}

func (suite *GormStoreTestSuite) TestListPersonsSharingFilmography() {
	ada := suite.newPerson("Ada", 10)
	grace := suite.newPerson("Grace", 50)
	alan := suite.newPerson("Alan", 30)
	stranger := suite.newPerson("Stranger", 99)

	shared := suite.newMovie("Solaris")
	other := suite.newMovie("Stalker")

	suite.Require().NoError(suite.store.AddFilmographyEntry(suite.ctx, ada.ID, shared.ID))
	suite.Require().NoError(suite.store.AddFilmographyEntry(suite.ctx, grace.ID, shared.ID))
	suite.Require().NoError(suite.store.AddFilmographyEntry(suite.ctx, alan.ID, shared.ID))
	suite.Require().NoError(suite.store.AddFilmographyEntry(suite.ctx, stranger.ID, other.ID))

	related, err := suite.store.ListPersonsSharingFilmography(suite.ctx, ada.ID, 10)
	suite.Require().NoError(err)

	suite.Len(related, 2)
	suite.Equal(grace.ID, related[0].ID)
	suite.Equal(alan.ID, related[1].ID)
}

func (suite *GormStoreTestSuite) TestIncrementPopularity() {
	show := &models.TvShow{ID: uuid.New(), Title: "Deep Space", Popularity: 5, IsActive: true}
	suite.Require().NoError(suite.store.CreateTvShow(suite.ctx, show))

	suite.Require().NoError(suite.store.IncrementTvShowPopularity(suite.ctx, show.ID, 10))

	reloaded, err := suite.store.GetTvShow(suite.ctx, show.ID)
	suite.Require().NoError(err)
	suite.Equal(15, reloaded.Popularity)
}

func (suite *GormStoreTestSuite) TestIncrementPopularityMissingRow() {
	err := suite.store.IncrementSeasonPopularity(suite.ctx, uuid.New(), 5)

	suite.Error(err)
	suite.True(apperrors.IsNotFound(err))
}

func (suite *GormStoreTestSuite) TestFilterMoviesConjunctive() {
	match := &models.Movie{
		ID: uuid.New(), Title: "Solaris", Genres: []string{"Science Fiction", "Drama"},
		Status: models.StatusReleased, Duration: 160, Popularity: 80, IsActive: true,
	}
	wrongGenre := &models.Movie{
		ID: uuid.New(), Title: "Dry Facts", Genres: []string{"Documentary"},
		Status: models.StatusReleased, Duration: 200, Popularity: 90, IsActive: true,
	}
	tooShort := &models.Movie{
		ID: uuid.New(), Title: "Short Circuit", Genres: []string{"Science Fiction"},
		Status: models.StatusReleased, Duration: 90, Popularity: 70, IsActive: true,
	}
	for _, movie := range []*models.Movie{match, wrongGenre, tooShort} {
		suite.Require().NoError(suite.store.CreateMovie(suite.ctx, movie))
	}

	duration := 120
	movies, err := suite.store.FilterMovies(suite.ctx, MovieFilter{
		Genres:   []string{"Science Fiction"},
		Status:   models.StatusReleased,
		Duration: &duration,
	})
	suite.Require().NoError(err)

	suite.Len(movies, 1)
	suite.Equal(match.ID, movies[0].ID)
}

func (suite *GormStoreTestSuite) TestFilterMoviesByPerson() {
	directed := &models.Movie{
		ID: uuid.New(), Title: "Solaris", Directors: []string{"Andrei Tarkovsky"}, IsActive: true,
	}
	unrelated := &models.Movie{ID: uuid.New(), Title: "Stalker", IsActive: true}
	suite.Require().NoError(suite.store.CreateMovie(suite.ctx, directed))
	suite.Require().NoError(suite.store.CreateMovie(suite.ctx, unrelated))

	movies, err := suite.store.FilterMovies(suite.ctx, MovieFilter{Person: "tarkovsky"})
	suite.Require().NoError(err)

	suite.Len(movies, 1)
	suite.Equal(directed.ID, movies[0].ID)
}

func (suite *GormStoreTestSuite) TestSearchMoviesMatchesTitleAndDescription() {
	byTitle := &models.Movie{ID: uuid.New(), Title: "Solaris", IsActive: true}
	byDescription := &models.Movie{
		ID: uuid.New(), Title: "Stalker",
		Description: "a journey through the zone near Solaris station", IsActive: true,
	}
	miss := &models.Movie{ID: uuid.New(), Title: "Dry Facts", IsActive: true}
	for _, movie := range []*models.Movie{byTitle, byDescription, miss} {
		suite.Require().NoError(suite.store.CreateMovie(suite.ctx, movie))
	}

	movies, err := suite.store.SearchMovies(suite.ctx, "solaris")
	suite.Require().NoError(err)
	suite.Len(movies, 2)
}

func (suite *GormStoreTestSuite) TestTransactionRollbackDiscardsWrites() {
	tx, err := suite.store.BeginTx(suite.ctx)
	suite.Require().NoError(err)

	movie := &models.Movie{ID: uuid.New(), Title: "Phantom", IsActive: true}
	suite.Require().NoError(tx.CreateMovie(suite.ctx, movie))
	suite.Require().NoError(tx.Rollback())

	_, err = suite.store.GetMovie(suite.ctx, movie.ID)
	suite.True(apperrors.IsNotFound(err))
}

func (suite *GormStoreTestSuite) TestTransactionCommitPersistsWrites() {
	tx, err := suite.store.BeginTx(suite.ctx)
	suite.Require().NoError(err)

	movie := &models.Movie{ID: uuid.New(), Title: "Kept", IsActive: true}
	suite.Require().NoError(tx.CreateMovie(suite.ctx, movie))
	suite.Require().NoError(tx.Commit())

	persisted, err := suite.store.GetMovie(suite.ctx, movie.ID)
	suite.Require().NoError(err)
	suite.Equal("Kept", persisted.Title)
}

func (suite *GormStoreTestSuite) TestDeleteSeasonsByTvShow() {
	show := &models.TvShow{ID: uuid.New(), Title: "Deep Space", IsActive: true}
	suite.Require().NoError(suite.store.CreateTvShow(suite.ctx, show))
	for n := 1; n <= 3; n++ {
		season := &models.Season{ID: uuid.New(), TvShowID: show.ID, SeasonNumber: n}
		suite.Require().NoError(suite.store.CreateSeason(suite.ctx, season))
	}

	suite.Require().NoError(suite.store.DeleteSeasonsByTvShow(suite.ctx, show.ID))

	seasons, err := suite.store.ListSeasonsByTvShow(suite.ctx, show.ID)
	suite.Require().NoError(err)
	suite.Empty(seasons)
}

func (suite *GormStoreTestSuite) TestListMoviesPagination() {
	for _, title := range []string{"Alpha", "Beta", "Gamma"} {
		movie := &models.Movie{ID: uuid.New(), Title: title, IsActive: true,
			ReleaseDate: ptrTime(time.Now())}
		suite.Require().NoError(suite.store.CreateMovie(suite.ctx, movie))
	}

	query := MovieQuery{SortBy: "title"}
	query.Pagination.Page = 1
	query.Pagination.Limit = 2
	movies, total, err := suite.store.ListMovies(suite.ctx, query)
	suite.Require().NoError(err)

	suite.Equal(int64(3), total)
	suite.Len(movies, 2)
}

func ptrTime(t time.Time) *time.Time { return &t }

func TestGormStoreTestSuite(t *testing.T) {
	suite.Run(t, new(GormStoreTestSuite))
}
