package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/reelstack/reelstack/pkg/errors"
	"github.com/reelstack/reelstack/pkg/pagination"
)

// Generic row helpers shared by every entity. Duplicate-key failures map to
// CONFLICT, missing rows to NOT_FOUND; everything else passes through for
// the service layer to classify.

func create[T any](ctx context.Context, db *gorm.DB, entity *T) error {
	if err := db.WithContext(ctx).Create(entity).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.Conflict("entity already exists")
		}
		return err
	}
	return nil
}

func findByID[T any](ctx context.Context, db *gorm.DB, id uuid.UUID) (*T, error) {
	var entity T
	if err := db.WithContext(ctx).First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("entity not found")
		}
		return nil, err
	}
	return &entity, nil
}

func findOneBy[T any](ctx context.Context, db *gorm.DB, query string, args ...interface{}) (*T, error) {
	var entity T
	if err := db.WithContext(ctx).Where(query, args...).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("entity not found")
		}
		return nil, err
	}
	return &entity, nil
}

func save[T any](ctx context.Context, db *gorm.DB, entity *T) error {
	if err := db.WithContext(ctx).Save(entity).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.Conflict("entity already exists")
		}
		return err
	}
	return nil
}

func deleteByID[T any](ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	var entity T
	result := db.WithContext(ctx).Delete(&entity, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("entity not found for deletion")
	}
	return nil
}

func incrementColumn[T any](ctx context.Context, db *gorm.DB, id uuid.UUID, column string, delta int) error {
	var entity T
	result := db.WithContext(ctx).Model(&entity).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("entity not found")
	}
	return nil
}

// jsonToken renders the LIKE pattern that matches a quoted member of a
// JSON-serialized list column. Matching the quoted token keeps genre and
// language membership checks exact.
func jsonToken(value string) string {
	return `%"` + value + `"%`
}

// sortColumns whitelists order-by targets; anything else falls back to
// popularity so a caller-supplied sort key can never reach the SQL string
// unchecked.
var sortColumns = map[string]string{
	"popularity":     "popularity",
	"title":          "title",
	"name":           "name",
	"release_date":   "release_date",
	"created_at":     "created_at",
	"average_rating": "average_rating",
	"season_number":  "season_number",
	"episode_number": "episode_number",
}

func applySort(q *gorm.DB, sortBy string, order pagination.SortOrder) *gorm.DB {
	column, ok := sortColumns[sortBy]
	if !ok {
		column = "popularity"
	}
	return q.Order(pagination.OrderClause(column, order))
}

func applyPage(q *gorm.DB, params pagination.Params) *gorm.DB {
	params = params.Normalize()
	return q.Limit(params.Limit).Offset(params.Offset())
}

// countAndList runs the count and page fetch for a prepared query.
func countAndList[T any](q *gorm.DB, params pagination.Params, sortBy string, order pagination.SortOrder) ([]*T, int64, error) {
	var total int64
	var entity T
	if err := q.Session(&gorm.Session{}).Model(&entity).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count entities: %w", err)
	}

	var items []*T
	page := applyPage(applySort(q, sortBy, order), params)
	if err := page.Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list entities: %w", err)
	}
	return items, total, nil
}
