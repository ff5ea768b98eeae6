package models

import (
	"time"

	"github.com/google/uuid"
)

// TvShow is the root of the show aggregate. Its seasons list and each
// season's back-reference are kept bidirectionally consistent inside the
// transaction that mutates either side. Deleting a show cascades through its
// seasons and their episodes.
type TvShow struct {
	ID            uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey"`
	Title         string       `json:"title" gorm:"not null;index"`
	Description   string       `json:"description,omitempty" gorm:"type:text"`
	ReleaseDate   *time.Time   `json:"release_date,omitempty"`
	EndDate       *time.Time   `json:"end_date,omitempty"`
	Genres        []string     `json:"genres,omitempty" gorm:"serializer:json"`
	Country       string       `json:"country,omitempty"`
	Seasons       RefList      `json:"seasons,omitempty" gorm:"serializer:json"`
	Cast          []CastMember `json:"cast,omitempty" gorm:"column:cast_members;serializer:json"`
	Crew          []CrewMember `json:"crew,omitempty" gorm:"column:crew_members;serializer:json"`
	RatingSummary `gorm:"embedded"`
	Popularity    int       `json:"popularity" gorm:"default:0;index"`
	IsFeatured    bool      `json:"is_featured" gorm:"default:false"`
	IsActive      bool      `json:"is_active" gorm:"default:true"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Season belongs to exactly one TV show; the owner reference is immutable
// after creation. The composite unique index backs the per-show season
// number uniqueness check, closing the check-then-insert race. Deletes are
// hard deletes, so a deleted season's number is immediately reusable.
type Season struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	TvShowID      uuid.UUID  `json:"tv_show_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_season_show_number"`
	SeasonNumber  int        `json:"season_number" gorm:"not null;uniqueIndex:idx_season_show_number"`
	Title         string     `json:"title,omitempty"`
	Description   string     `json:"description,omitempty" gorm:"type:text"`
	ReleaseDate   *time.Time `json:"release_date,omitempty"`
	Episodes      RefList    `json:"episodes,omitempty" gorm:"serializer:json"`
	RatingSummary `gorm:"embedded"`
	Popularity    int       `json:"popularity" gorm:"default:0;index"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Episode belongs to exactly one season, transitively owned by the show.
// The composite unique index backs per-season episode number uniqueness.
type Episode struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	SeasonID      uuid.UUID  `json:"season_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_episode_season_number"`
	EpisodeNumber int        `json:"episode_number" gorm:"not null;uniqueIndex:idx_episode_season_number"`
	Title         string     `json:"title" gorm:"not null"`
	Description   string     `json:"description,omitempty" gorm:"type:text"`
	ReleaseDate   *time.Time `json:"release_date,omitempty"`
	Duration      int        `json:"duration,omitempty"` // minutes
	RatingSummary `gorm:"embedded"`
	Popularity    int       `json:"popularity" gorm:"default:0;index"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
