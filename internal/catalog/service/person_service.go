package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/reelstack/reelstack/internal/catalog/repository"
	"github.com/reelstack/reelstack/pkg/cache"
	"github.com/reelstack/reelstack/pkg/errors"
	"github.com/reelstack/reelstack/pkg/interfaces"
	"github.com/reelstack/reelstack/pkg/models"
	"github.com/reelstack/reelstack/pkg/pagination"
)

// PersonService manages people and their filmographies. People are shared
// between movies and shows; deleting one never cascades into the catalog.
type PersonService struct {
	store  repository.Store
	cache  interfaces.Cache
	keys   cache.Keys
	logger interfaces.Logger
}

// NewPersonService creates a person service.
func NewPersonService(store repository.Store, c interfaces.Cache, logger interfaces.Logger) *PersonService {
	return &PersonService{store: store, cache: c, logger: logger}
}

// PersonUpdate carries the mutable person fields. Nil means leave unchanged.
type PersonUpdate struct {
	Name        *string
	Biography   *string
	BirthDate   *time.Time
	Roles       []string
	ProfilePath *string
	IsActive    *bool
}

// CreatePerson validates and stores a new person.
func (s *PersonService) CreatePerson(ctx context.Context, person *models.Person) (*models.Person, error) {
	if person.Name == "" {
		return nil, errors.InvalidArgument("person name is required")
	}
	if person.ID == uuid.Nil {
		person.ID = uuid.New()
	}
	person.IsActive = true

	if err := s.store.CreatePerson(ctx, person); err != nil {
		return nil, classify(err, "create person")
	}
	s.logger.Info("person created",
		interfaces.String("person_id", person.ID.String()),
		interfaces.String("name", person.Name))
	return person, nil
}

// GetPerson returns a person by id, read through the cache.
func (s *PersonService) GetPerson(ctx context.Context, id string) (*models.Person, error) {
	personID, err := parseID(id, "person")
	if err != nil {
		return nil, err
	}
	person, err := cache.GetOrFetch(ctx, s.cache, s.keys.Person(personID), entityTTL,
		func(ctx context.Context) (*models.Person, error) {
			return s.store.GetPerson(ctx, personID)
		})
	if err != nil {
		return nil, classify(err, "get person")
	}
	return person, nil
}

// UpdatePerson applies the supplied field changes.
func (s *PersonService) UpdatePerson(ctx context.Context, id string, update PersonUpdate) (*models.Person, error) {
	personID, err := parseID(id, "person")
	if err != nil {
		return nil, err
	}
	person, err := s.store.GetPerson(ctx, personID)
	if err != nil {
		return nil, classify(err, "get person")
	}

	if update.Name != nil {
		person.Name = *update.Name
	}
	if update.Biography != nil {
		person.Biography = *update.Biography
	}
	if update.BirthDate != nil {
		person.BirthDate = update.BirthDate
	}
	if update.Roles != nil {
		person.Roles = update.Roles
	}
	if update.ProfilePath != nil {
		person.ProfilePath = *update.ProfilePath
	}
	if update.IsActive != nil {
		person.IsActive = *update.IsActive
	}

	if err := s.store.UpdatePerson(ctx, person); err != nil {
		return nil, classify(err, "update person")
	}
	invalidate(ctx, s.cache, s.logger, []string{s.keys.Person(personID)}, nil)
	return person, nil
}

// DeletePerson removes a person and their filmography links in one
// transaction. Credits embedded in movies and shows are left in place.
func (s *PersonService) DeletePerson(ctx context.Context, id string) error {
	personID, err := parseID(id, "person")
	if err != nil {
		return err
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return classify(err, "begin transaction")
	}
	if err := tx.DeleteFilmographyByPerson(ctx, personID); err != nil {
		_ = tx.Rollback()
		return classify(err, "delete filmography")
	}
	if err := tx.DeletePerson(ctx, personID); err != nil {
		_ = tx.Rollback()
		return classify(err, "delete person")
	}
	if err := tx.Commit(); err != nil {
		return classify(err, "commit person deletion")
	}

	invalidate(ctx, s.cache, s.logger, []string{s.keys.Person(personID)}, nil)
	s.logger.Info("person deleted", interfaces.String("person_id", personID.String()))
	return nil
}

// ListPersons returns one page of people with its result envelope.
func (s *PersonService) ListPersons(ctx context.Context, query repository.PersonQuery) ([]*models.Person, pagination.Meta, error) {
	persons, total, err := s.store.ListPersons(ctx, query)
	if err != nil {
		return nil, pagination.Meta{}, classify(err, "list persons")
	}
	return persons, pagination.NewMeta(total, len(persons), query.Pagination), nil
}

// AddToFilmography links a person to a movie they worked on. Both sides must
// exist; linking twice is a conflict.
func (s *PersonService) AddToFilmography(ctx context.Context, personID, movieID string) error {
	pid, err := parseID(personID, "person")
	if err != nil {
		return err
	}
	mid, err := parseID(movieID, "movie")
	if err != nil {
		return err
	}

	if _, err := s.store.GetPerson(ctx, pid); err != nil {
		return classify(err, "get person")
	}
	if _, err := s.store.GetMovie(ctx, mid); err != nil {
		return classify(err, "get movie")
	}

	if err := s.store.AddFilmographyEntry(ctx, pid, mid); err != nil {
		if errors.IsConflict(err) {
			return errors.Conflictf("movie %s already in filmography of person %s", mid, pid)
		}
		return classify(err, "add filmography entry")
	}
	invalidate(ctx, s.cache, s.logger, []string{s.keys.Person(pid)}, nil)
	return nil
}

// RemoveFromFilmography unlinks a movie from a person's filmography.
func (s *PersonService) RemoveFromFilmography(ctx context.Context, personID, movieID string) error {
	pid, err := parseID(personID, "person")
	if err != nil {
		return err
	}
	mid, err := parseID(movieID, "movie")
	if err != nil {
		return err
	}

	if _, err := s.store.GetPerson(ctx, pid); err != nil {
		return classify(err, "get person")
	}

	removed, err := s.store.RemoveFilmographyEntry(ctx, pid, mid)
	if err != nil {
		return classify(err, "remove filmography entry")
	}
	if !removed {
		return errors.NotFoundf("movie %s not in filmography of person %s", mid, pid)
	}
	invalidate(ctx, s.cache, s.logger, []string{s.keys.Person(pid)}, nil)
	return nil
}

// GetFilmography returns the movies a person worked on, newest first.
func (s *PersonService) GetFilmography(ctx context.Context, personID string) ([]*models.Movie, error) {
	pid, err := parseID(personID, "person")
	if err != nil {
		return nil, err
	}
	if _, err := s.store.GetPerson(ctx, pid); err != nil {
		return nil, classify(err, "get person")
	}
	movies, err := s.store.ListFilmographyMovies(ctx, pid)
	if err != nil {
		return nil, classify(err, "list filmography")
	}
	return movies, nil
}

// GetRelatedPeople returns the person's curated related list when one
// exists, otherwise the most popular people sharing filmography credits.
func (s *PersonService) GetRelatedPeople(ctx context.Context, personID string) ([]*models.Person, error) {
	pid, err := parseID(personID, "person")
	if err != nil {
		return nil, err
	}
	person, err := s.store.GetPerson(ctx, pid)
	if err != nil {
		return nil, classify(err, "get person")
	}

	if len(person.RelatedPeople) > 0 {
		related, err := s.store.ListPersonsByIDs(ctx, person.RelatedPeople)
		if err != nil {
			return nil, classify(err, "list related people")
		}
		return related, nil
	}

	related, err := s.store.ListPersonsSharingFilmography(ctx, pid, relatedPeopleLimit)
	if err != nil {
		return nil, classify(err, "list people sharing filmography")
	}
	return related, nil
}

// TrendingPersons returns the most popular active people.
func (s *PersonService) TrendingPersons(ctx context.Context, limit int) ([]*models.Person, error) {
	if limit <= 0 {
		limit = trendingLimit
	}
	query := repository.PersonQuery{SortBy: "popularity", ActiveOnly: true}
	query.Pagination.Limit = limit
	persons, _, err := s.store.ListPersons(ctx, query)
	if err != nil {
		return nil, classify(err, "list trending people")
	}
	return persons, nil
}
