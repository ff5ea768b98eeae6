package models

import (
	"time"

	"github.com/google/uuid"
)

// ReviewTargetType identifies what kind of entity a review points at.
type ReviewTargetType string

const (
	ReviewTargetMovie   ReviewTargetType = "movie"
	ReviewTargetTvShow  ReviewTargetType = "tvshow"
	ReviewTargetSeason  ReviewTargetType = "season"
	ReviewTargetEpisode ReviewTargetType = "episode"
)

// ReviewTargetTypes lists every recognized review target type.
var ReviewTargetTypes = []ReviewTargetType{
	ReviewTargetMovie, ReviewTargetTvShow, ReviewTargetSeason, ReviewTargetEpisode,
}

// Review is a user's rating of a catalog entity. The target reference is
// polymorphic: an id plus a target type.
type Review struct {
	ID         uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey"`
	TargetID   uuid.UUID        `json:"target_id" gorm:"type:uuid;not null;index"`
	TargetType ReviewTargetType `json:"target_type" gorm:"type:varchar(20);not null;index"`
	UserID     uuid.UUID        `json:"user_id" gorm:"type:uuid;not null;index"`
	Rating     float64          `json:"rating" gorm:"not null"`
	Comment    string           `json:"comment,omitempty" gorm:"type:text"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}
