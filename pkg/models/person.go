package models

import (
	"time"

	"github.com/google/uuid"
)

// Person is a shared catalog entity. People are referenced by movie and TV
// show credits but never owned by them: deleting a movie removes the credit,
// never the person.
type Person struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Name          string     `json:"name" gorm:"not null;index"`
	Biography     string     `json:"biography,omitempty" gorm:"type:text"`
	BirthDate     *time.Time `json:"birth_date,omitempty"`
	Roles         []string   `json:"roles,omitempty" gorm:"serializer:json"`
	ProfilePath   string     `json:"profile_path,omitempty"`
	RelatedPeople RefList    `json:"related_people,omitempty" gorm:"serializer:json"`
	Popularity    int        `json:"popularity" gorm:"default:0;index"`
	IsActive      bool       `json:"is_active" gorm:"default:true"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// FilmographyEntry links a person to a movie they worked on. The composite
// unique index gives the filmography its set semantics at the storage layer.
type FilmographyEntry struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	PersonID  uuid.UUID `json:"person_id" gorm:"type:uuid;not null;uniqueIndex:idx_filmography_person_movie;index"`
	MovieID   uuid.UUID `json:"movie_id" gorm:"type:uuid;not null;uniqueIndex:idx_filmography_person_movie;index"`
	CreatedAt time.Time `json:"created_at"`
}
