package models

import "strings"

// Enum lookups are case-insensitive: "sCienCE ficTION" matches
// GenreSciFi. The canonical spelling is always the one stored and queried.

// NormalizeGenre resolves value to a recognized genre, reporting failure for
// unknown values.
func NormalizeGenre(value string) (MovieGenre, bool) {
	for _, genre := range MovieGenres {
		if strings.EqualFold(string(genre), value) {
			return genre, true
		}
	}
	return "", false
}

// NormalizeStatus resolves value to a recognized movie status.
func NormalizeStatus(value string) (MovieStatus, bool) {
	for _, status := range MovieStatuses {
		if strings.EqualFold(string(status), value) {
			return status, true
		}
	}
	return "", false
}

// NormalizeContentRating resolves value to a recognized content rating.
func NormalizeContentRating(value string) (ContentRating, bool) {
	for _, rating := range ContentRatings {
		if strings.EqualFold(string(rating), value) {
			return rating, true
		}
	}
	return "", false
}

// NormalizeReviewTargetType resolves value to a recognized review target type.
func NormalizeReviewTargetType(value string) (ReviewTargetType, bool) {
	for _, target := range ReviewTargetTypes {
		if strings.EqualFold(string(target), value) {
			return target, true
		}
	}
	return "", false
}
