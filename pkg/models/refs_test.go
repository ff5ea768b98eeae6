package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRefListAddIsIdempotent(t *testing.T) {
	var list RefList
	id := uuid.New()

	assert.True(t, list.Add(id))
	assert.False(t, list.Add(id))
	assert.Len(t, list, 1)
	assert.True(t, list.Contains(id))
}

func TestRefListRemove(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	list := RefList{first, second}

	assert.True(t, list.Remove(first))
	assert.False(t, list.Remove(first))
	assert.Equal(t, RefList{second}, list)
}

func TestRefListPreservesInsertionOrder(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	var list RefList
	for _, id := range ids {
		list.Add(id)
	}

	assert.Equal(t, RefList(ids), list)
}

func TestRatingSummaryApply(t *testing.T) {
	var summary RatingSummary

	summary.Apply(4)
	assert.Equal(t, 1, summary.RatingCount)
	assert.InDelta(t, 4.0, summary.AverageRating, 0.0001)

	summary.Apply(2)
	assert.Equal(t, 2, summary.RatingCount)
	assert.InDelta(t, 3.0, summary.AverageRating, 0.0001)

	summary.Apply(0)
	assert.Equal(t, 3, summary.RatingCount)
	assert.InDelta(t, 2.0, summary.AverageRating, 0.0001)
}

func TestRatingSummaryReplace(t *testing.T) {
	var summary RatingSummary
	summary.Apply(2)
	summary.Apply(4)

	summary.Replace(2, 4)
	assert.Equal(t, 2, summary.RatingCount)
	assert.InDelta(t, 4.0, summary.AverageRating, 0.0001)
}

func TestRatingSummaryRetract(t *testing.T) {
	var summary RatingSummary
	summary.Apply(5)
	summary.Apply(3)

	summary.Retract(5)
	assert.Equal(t, 1, summary.RatingCount)
	assert.InDelta(t, 3.0, summary.AverageRating, 0.0001)

	summary.Retract(3)
	assert.Equal(t, 0, summary.RatingCount)
	assert.InDelta(t, 0.0, summary.AverageRating, 0.0001)
}

func TestRemoveCastMemberFiltersEveryCredit(t *testing.T) {
	person := uuid.New()
	other := uuid.New()
	cast := []CastMember{
		{PersonID: person, Character: "Captain"},
		{PersonID: other, Character: "Navigator"},
		{PersonID: person, Character: "Captain (flashback)"},
	}

	kept, removed := RemoveCastMember(cast, person)
	assert.True(t, removed)
	assert.Len(t, kept, 1)
	assert.Equal(t, other, kept[0].PersonID)

	kept, removed = RemoveCastMember(kept, person)
	assert.False(t, removed)
	assert.Len(t, kept, 1)
}

func TestRemoveCrewMember(t *testing.T) {
	person := uuid.New()
	crew := []CrewMember{{PersonID: person, Role: "Director"}}

	kept, removed := RemoveCrewMember(crew, person)
	assert.True(t, removed)
	assert.Empty(t, kept)
}
