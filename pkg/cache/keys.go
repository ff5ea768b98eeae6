package cache

import "github.com/google/uuid"

// Key builders for every cached entity type. Invalidation targets are
// constructed here rather than assembled from raw strings at call sites, so
// a pattern always lines up with the keys it is meant to cover.

// Keys is the typed cache-key builder.
type Keys struct{}

// User returns the key for a single user record.
func (Keys) User(id uuid.UUID) string {
	return "user:" + id.String()
}

// UserList returns the key for a user list query, qualified by the query's
// canonical form.
func (Keys) UserList(qualifier string) string {
	return "users:all:" + qualifier
}

// UserListPattern matches every cached user list.
func (Keys) UserListPattern() string {
	return "users:*"
}

// Movie returns the key for a single movie record.
func (Keys) Movie(id uuid.UUID) string {
	return "movie:" + id.String()
}

// TvShow returns the key for a single TV show record.
func (Keys) TvShow(id uuid.UUID) string {
	return "tvshow:" + id.String()
}

// Season returns the key for a single season record.
func (Keys) Season(id uuid.UUID) string {
	return "season:" + id.String()
}

// SeasonPattern matches every cached season record.
func (Keys) SeasonPattern() string {
	return "season:*"
}

// Episode returns the key for a single episode record.
func (Keys) Episode(id uuid.UUID) string {
	return "episode:" + id.String()
}

// EpisodePattern matches every cached episode record.
func (Keys) EpisodePattern() string {
	return "episode:*"
}

// Person returns the key for a single person record.
func (Keys) Person(id uuid.UUID) string {
	return "person:" + id.String()
}
