package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/reelstack/reelstack/pkg/errors"
	"github.com/reelstack/reelstack/pkg/models"
	"github.com/reelstack/reelstack/pkg/pagination"
)

// GormStore implements Store on a GORM database handle.
type GormStore struct {
	db   *gorm.DB
	inTx bool
}

// NewGormStore creates a user store backed by db.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// BeginTx opens a storage transaction and returns a Store scoped to it.
func (s *GormStore) BeginTx(ctx context.Context) (Store, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	return &GormStore{db: tx, inTx: true}, nil
}

// Commit commits the transaction. No-op outside one.
func (s *GormStore) Commit() error {
	if !s.inTx {
		return nil
	}
	return s.db.Commit().Error
}

// Rollback aborts the transaction. No-op outside one.
func (s *GormStore) Rollback() error {
	if !s.inTx {
		return nil
	}
	return s.db.Rollback().Error
}

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.Conflict("username or email already taken")
		}
		return err
	}
	return nil
}

func (s *GormStore) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.findOne(ctx, "id = ?", id)
}

func (s *GormStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.findOne(ctx, "username = ?", username)
}

func (s *GormStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, "email = ?", email)
}

func (s *GormStore) findOne(ctx context.Context, query string, args ...interface{}) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where(query, args...).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) UpdateUser(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.Conflict("username or email already taken")
		}
		return err
	}
	return nil
}

func (s *GormStore) DeleteUser(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("user not found for deletion")
	}
	return nil
}

func (s *GormStore) ListUsers(ctx context.Context, query UserQuery) ([]*models.User, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.User{})
	if query.Search != "" {
		pattern := "%" + strings.ToLower(query.Search) + "%"
		q = q.Where("LOWER(username) LIKE ? OR LOWER(display_name) LIKE ?", pattern, pattern)
	}
	if query.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	column := "created_at"
	if query.SortBy == "username" {
		column = "username"
	}
	params := query.Pagination.Normalize()
	var users []*models.User
	err := q.Order(pagination.OrderClause(column, query.SortOrder)).
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

func (s *GormStore) ListUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []*models.User
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users by ids: %w", err)
	}
	return users, nil
}

var _ Store = (*GormStore)(nil)
