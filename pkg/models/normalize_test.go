package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeGenreIsCaseInsensitive(t *testing.T) {
	genre, ok := NormalizeGenre("sCienCE ficTION")
	assert.True(t, ok)
	assert.Equal(t, GenreSciFi, genre)

	_, ok = NormalizeGenre("Telenovela")
	assert.False(t, ok)
}

func TestNormalizeStatus(t *testing.T) {
	status, ok := NormalizeStatus("in production")
	assert.True(t, ok)
	assert.Equal(t, StatusInProduction, status)

	_, ok = NormalizeStatus("Shelved")
	assert.False(t, ok)
}

func TestNormalizeContentRating(t *testing.T) {
	rating, ok := NormalizeContentRating("pg-13")
	assert.True(t, ok)
	assert.Equal(t, RatingPG13, rating)

	_, ok = NormalizeContentRating("XXX")
	assert.False(t, ok)
}

func TestNormalizeReviewTargetType(t *testing.T) {
	target, ok := NormalizeReviewTargetType("TVSHOW")
	assert.True(t, ok)
	assert.Equal(t, ReviewTargetTvShow, target)

	_, ok = NormalizeReviewTargetType("mixtape")
	assert.False(t, ok)
}
