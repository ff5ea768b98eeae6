package models

import "github.com/google/uuid"

// RefList is an ordered-insertion set of entity references. Membership is
// deduplicated by id; insertion order is preserved.
type RefList []uuid.UUID

// Contains reports whether id is a member.
func (l RefList) Contains(id uuid.UUID) bool {
	for _, member := range l {
		if member == id {
			return true
		}
	}
	return false
}

// Add appends id and reports whether the list changed. Adding an existing
// member is a no-op.
func (l *RefList) Add(id uuid.UUID) bool {
	if l.Contains(id) {
		return false
	}
	*l = append(*l, id)
	return true
}

// Remove deletes id and reports whether the list changed.
func (l *RefList) Remove(id uuid.UUID) bool {
	for i, member := range *l {
		if member == id {
			*l = append((*l)[:i], (*l)[i+1:]...)
			return true
		}
	}
	return false
}

// RatingSummary carries the derived rating fields shared by every ratable
// entity. Average and count always move together.
type RatingSummary struct {
	AverageRating float64 `json:"average_rating" gorm:"default:0"`
	RatingCount   int     `json:"rating_count"   gorm:"default:0"`
}

// Apply folds one rating into the running mean.
func (r *RatingSummary) Apply(rating float64) {
	r.RatingCount++
	r.AverageRating = (r.AverageRating*float64(r.RatingCount-1) + rating) / float64(r.RatingCount)
}

// Replace swaps one previously applied rating for another without changing
// the count.
func (r *RatingSummary) Replace(old, new float64) {
	if r.RatingCount == 0 {
		return
	}
	r.AverageRating += (new - old) / float64(r.RatingCount)
}

// Retract removes one previously applied rating from the running mean.
func (r *RatingSummary) Retract(rating float64) {
	if r.RatingCount <= 1 {
		r.RatingCount = 0
		r.AverageRating = 0
		return
	}
	r.AverageRating = (r.AverageRating*float64(r.RatingCount) - rating) / float64(r.RatingCount-1)
	r.RatingCount--
}

// CastMember is an acting credit embedded in a movie or TV show. The person
// reference is validated against the people collection when the entry is
// added, not re-validated later.
type CastMember struct {
	PersonID  uuid.UUID `json:"person_id"`
	Character string    `json:"character"`
	Order     int       `json:"order"`
}

// CrewMember is a production credit embedded in a movie or TV show.
type CrewMember struct {
	PersonID   uuid.UUID `json:"person_id"`
	Role       string    `json:"role"`
	Department string    `json:"department"`
}

// RemoveCastMember filters every credit for personID out of cast, reporting
// whether anything was removed.
func RemoveCastMember(cast []CastMember, personID uuid.UUID) ([]CastMember, bool) {
	kept := cast[:0]
	removed := false
	for _, member := range cast {
		if member.PersonID == personID {
			removed = true
			continue
		}
		kept = append(kept, member)
	}
	return kept, removed
}

// RemoveCrewMember filters every credit for personID out of crew, reporting
// whether anything was removed.
func RemoveCrewMember(crew []CrewMember, personID uuid.UUID) ([]CrewMember, bool) {
	kept := crew[:0]
	removed := false
	for _, member := range crew {
		if member.PersonID == personID {
			removed = true
			continue
		}
		kept = append(kept, member)
	}
	return kept, removed
}
