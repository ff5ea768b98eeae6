package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/reelstack/reelstack/pkg/models"
	"github.com/reelstack/reelstack/pkg/pagination"
)

// UserQuery parameterizes paginated user listings.
type UserQuery struct {
	Search     string
	ActiveOnly bool
	SortBy     string
	SortOrder  pagination.SortOrder
	Pagination pagination.Params
}

// Store is the user storage contract. BeginTx returns a Store scoped to a
// storage transaction; Commit and Rollback are no-ops outside one.
type Store interface {
	BeginTx(ctx context.Context) (Store, error)
	Commit() error
	Rollback() error

	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
	ListUsers(ctx context.Context, query UserQuery) ([]*models.User, int64, error)
	ListUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.User, error)
}
