package models

import (
	"time"

	"github.com/google/uuid"
)

// MovieGenre enumerates the recognized movie genres. Incoming filter values
// are matched case-insensitively against this set.
type MovieGenre string

const (
	GenreAction      MovieGenre = "Action"
	GenreAdventure   MovieGenre = "Adventure"
	GenreAnimation   MovieGenre = "Animation"
	GenreComedy      MovieGenre = "Comedy"
	GenreCrime       MovieGenre = "Crime"
	GenreDocumentary MovieGenre = "Documentary"
	GenreDrama       MovieGenre = "Drama"
	GenreFantasy     MovieGenre = "Fantasy"
	GenreHorror      MovieGenre = "Horror"
	GenreMystery     MovieGenre = "Mystery"
	GenreRomance     MovieGenre = "Romance"
	GenreSciFi       MovieGenre = "Science Fiction"
	GenreThriller    MovieGenre = "Thriller"
	GenreWestern     MovieGenre = "Western"
)

// MovieGenres lists every recognized genre.
var MovieGenres = []MovieGenre{
	GenreAction, GenreAdventure, GenreAnimation, GenreComedy, GenreCrime,
	GenreDocumentary, GenreDrama, GenreFantasy, GenreHorror, GenreMystery,
	GenreRomance, GenreSciFi, GenreThriller, GenreWestern,
}

// MovieStatus enumerates release lifecycle states.
type MovieStatus string

const (
	StatusRumored        MovieStatus = "Rumored"
	StatusPlanned        MovieStatus = "Planned"
	StatusInProduction   MovieStatus = "In Production"
	StatusPostProduction MovieStatus = "Post Production"
	StatusReleased       MovieStatus = "Released"
	StatusCanceled       MovieStatus = "Canceled"
)

// MovieStatuses lists every recognized status.
var MovieStatuses = []MovieStatus{
	StatusRumored, StatusPlanned, StatusInProduction,
	StatusPostProduction, StatusReleased, StatusCanceled,
}

// ContentRating enumerates audience content ratings.
type ContentRating string

const (
	RatingG    ContentRating = "G"
	RatingPG   ContentRating = "PG"
	RatingPG13 ContentRating = "PG-13"
	RatingR    ContentRating = "R"
	RatingNC17 ContentRating = "NC-17"
)

// ContentRatings lists every recognized content rating.
var ContentRatings = []ContentRating{RatingG, RatingPG, RatingPG13, RatingR, RatingNC17}

// Movie is a single-level catalog entity. Cast and crew are embedded credit
// lists referencing the people collection; there is no child hierarchy.
type Movie struct {
	ID                uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey"`
	Title             string        `json:"title" gorm:"not null;index"`
	Description       string        `json:"description,omitempty" gorm:"type:text"`
	ReleaseDate       *time.Time    `json:"release_date,omitempty"`
	Genres            []string      `json:"genres,omitempty" gorm:"serializer:json"`
	Status            MovieStatus   `json:"status,omitempty" gorm:"type:varchar(50);index"`
	ContentRating     ContentRating `json:"content_rating,omitempty" gorm:"type:varchar(10)"`
	Duration          int           `json:"duration,omitempty"` // minutes
	Budget            int64         `json:"budget,omitempty"`
	Revenue           int64         `json:"revenue,omitempty"`
	Languages         []string      `json:"languages,omitempty" gorm:"serializer:json"`
	Country           string        `json:"country,omitempty"`
	ProductionCompany string        `json:"production_company,omitempty"`
	Directors         []string      `json:"directors,omitempty" gorm:"serializer:json"`
	Writers           []string      `json:"writers,omitempty" gorm:"serializer:json"`
	Cast              []CastMember  `json:"cast,omitempty" gorm:"column:cast_members;serializer:json"`
	Crew              []CrewMember  `json:"crew,omitempty" gorm:"column:crew_members;serializer:json"`
	RatingSummary     `gorm:"embedded"`
	Popularity        int       `json:"popularity" gorm:"default:0;index"`
	IsAdult           bool      `json:"is_adult" gorm:"default:false"`
	IsActive          bool      `json:"is_active" gorm:"default:true"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
