package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/reelstack/reelstack/pkg/models"
	"github.com/reelstack/reelstack/pkg/pagination"
)

// MovieQuery parameterizes paginated movie listings.
type MovieQuery struct {
	Genre      string
	Search     string
	SortBy     string
	SortOrder  pagination.SortOrder
	Pagination pagination.Params
}

// MovieFilter is the conjunctive predicate built by the movie filter
// operation. Enum fields arrive already normalized; numeric fields are
// lower-bound thresholds.
type MovieFilter struct {
	ReleaseDate       *time.Time
	Genres            []string
	Status            models.MovieStatus
	ContentRating     models.ContentRating
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

// PersonQuery parameterizes paginated person listings.
type PersonQuery struct {
	Role       string
	Search     string
	ActiveOnly bool
	SortBy     string
	SortOrder  pagination.SortOrder
	Pagination pagination.Params
}

// TvShowQuery parameterizes paginated TV show listings.
type TvShowQuery struct {
	Genre        string
	Search       string
	Country      string
	ReleaseAfter *time.Time
	ActiveOnly   bool
	SortBy       string
	SortOrder    pagination.SortOrder
	Pagination   pagination.Params
}

// SeasonQuery parameterizes paginated season listings.
type SeasonQuery struct {
	TvShowID     *uuid.UUID
	Search       string
	ReleaseAfter *time.Time
	SortBy       string
	SortOrder    pagination.SortOrder
	Pagination   pagination.Params
}

// EpisodeQuery parameterizes paginated episode listings.
type EpisodeQuery struct {
	SeasonID     *uuid.UUID
	Search       string
	ReleaseAfter *time.Time
	SortBy       string
	SortOrder    pagination.SortOrder
	Pagination   pagination.Params
}

// ReviewFilter selects reviews by target, author, or exact rating.
type ReviewFilter struct {
	TargetID   *uuid.UUID
	TargetType models.ReviewTargetType
	UserID     *uuid.UUID
	Rating     *float64
}

// Store is the catalog storage contract. BeginTx returns a Store scoped to a
// storage transaction; every write performed through it commits or rolls
// back as one atomic unit. Commit and Rollback are no-ops outside a
// transaction.
type Store interface {
	BeginTx(ctx context.Context) (Store, error)
	Commit() error
	Rollback() error

	// Movies
	CreateMovie(ctx context.Context, movie *models.Movie) error
	GetMovie(ctx context.Context, id uuid.UUID) (*models.Movie, error)
	UpdateMovie(ctx context.Context, movie *models.Movie) error
	DeleteMovie(ctx context.Context, id uuid.UUID) error
	ListMovies(ctx context.Context, query MovieQuery) ([]*models.Movie, int64, error)
	SearchMovies(ctx context.Context, text string) ([]*models.Movie, error)
	FilterMovies(ctx context.Context, filter MovieFilter) ([]*models.Movie, error)

	// People
	CreatePerson(ctx context.Context, person *models.Person) error
	GetPerson(ctx context.Context, id uuid.UUID) (*models.Person, error)
	UpdatePerson(ctx context.Context, person *models.Person) error
	DeletePerson(ctx context.Context, id uuid.UUID) error
	ListPersons(ctx context.Context, query PersonQuery) ([]*models.Person, int64, error)
	ListPersonsByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Person, error)
	AddFilmographyEntry(ctx context.Context, personID, movieID uuid.UUID) error
	RemoveFilmographyEntry(ctx context.Context, personID, movieID uuid.UUID) (bool, error)
	DeleteFilmographyByPerson(ctx context.Context, personID uuid.UUID) error
	DeleteFilmographyByMovie(ctx context.Context, movieID uuid.UUID) error
	ListFilmographyMovies(ctx context.Context, personID uuid.UUID) ([]*models.Movie, error)
	ListPersonsSharingFilmography(ctx context.Context, personID uuid.UUID, limit int) ([]*models.Person, error)

	// TV shows
	CreateTvShow(ctx context.Context, show *models.TvShow) error
	GetTvShow(ctx context.Context, id uuid.UUID) (*models.TvShow, error)
	UpdateTvShow(ctx context.Context, show *models.TvShow) error
	DeleteTvShow(ctx context.Context, id uuid.UUID) error
	ListTvShows(ctx context.Context, query TvShowQuery) ([]*models.TvShow, int64, error)
	ListTvShowsByGenres(ctx context.Context, genres []string, excludeID uuid.UUID, limit int) ([]*models.TvShow, error)
	IncrementTvShowPopularity(ctx context.Context, id uuid.UUID, delta int) error

	// Seasons
	CreateSeason(ctx context.Context, season *models.Season) error
	GetSeason(ctx context.Context, id uuid.UUID) (*models.Season, error)
	GetSeasonByNumber(ctx context.Context, tvShowID uuid.UUID, seasonNumber int) (*models.Season, error)
	UpdateSeason(ctx context.Context, season *models.Season) error
	DeleteSeason(ctx context.Context, id uuid.UUID) error
	ListSeasons(ctx context.Context, query SeasonQuery) ([]*models.Season, int64, error)
	ListSeasonsByTvShow(ctx context.Context, tvShowID uuid.UUID) ([]*models.Season, error)
	ListSeasonsByTvShows(ctx context.Context, tvShowIDs []uuid.UUID, excludeID uuid.UUID, limit int) ([]*models.Season, error)
	DeleteSeasonsByTvShow(ctx context.Context, tvShowID uuid.UUID) error
	IncrementSeasonPopularity(ctx context.Context, id uuid.UUID, delta int) error

	// Episodes
	CreateEpisode(ctx context.Context, episode *models.Episode) error
	GetEpisode(ctx context.Context, id uuid.UUID) (*models.Episode, error)
	GetEpisodeByNumber(ctx context.Context, seasonID uuid.UUID, episodeNumber int) (*models.Episode, error)
	UpdateEpisode(ctx context.Context, episode *models.Episode) error
	DeleteEpisode(ctx context.Context, id uuid.UUID) error
	ListEpisodes(ctx context.Context, query EpisodeQuery) ([]*models.Episode, int64, error)
	ListEpisodesBySeason(ctx context.Context, seasonID uuid.UUID) ([]*models.Episode, error)
	ListEpisodesBySeasons(ctx context.Context, seasonIDs []uuid.UUID, excludeID uuid.UUID, limit int) ([]*models.Episode, error)
	DeleteEpisodesBySeason(ctx context.Context, seasonID uuid.UUID) error
	IncrementEpisodePopularity(ctx context.Context, id uuid.UUID, delta int) error

	// Reviews
	CreateReview(ctx context.Context, review *models.Review) error
	GetReview(ctx context.Context, id uuid.UUID) (*models.Review, error)
	UpdateReview(ctx context.Context, review *models.Review) error
	DeleteReview(ctx context.Context, id uuid.UUID) error
	ListReviews(ctx context.Context, filter ReviewFilter) ([]*models.Review, error)
}
