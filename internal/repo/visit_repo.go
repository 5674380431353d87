// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Visit model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a visit is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hheidy0463/ReproCare/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateVisit inserts a fresh Visit row in status "created" with the
// creation event already on the audit trail. The visit ID is a randomly
// generated UUID (string), and CreatedAt is set to UTC.
//
// On success, it returns the persisted Visit. On failure, it returns a DB error.
func CreateVisit(ctx context.Context, db *gorm.DB) (*domain.Visit, error) {
	now := time.Now().UTC()
	v := &domain.Visit{
		ID:        uuid.NewString(),
		Status:    domain.StatusCreated,
		CreatedAt: now,
	}
	v.AppendAudit(domain.EventVisitCreated, now)
	if err := db.WithContext(ctx).Create(v).Error; err != nil {
		return nil, err
	}
	return v, nil
}

// GetVisit fetches a single visit by its ID. If the record does not exist,
// it returns ErrNotFound. On other DB errors, the raw error is returned.
func GetVisit(ctx context.Context, db *gorm.DB, id string) (*domain.Visit, error) {
	var v domain.Visit
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// SaveVisit persists the full current state of a visit (all columns).
// Stage handlers mutate the aggregate in memory and call this once; the
// last write wins when two requests race on the same visit.
func SaveVisit(ctx context.Context, db *gorm.DB, v *domain.Visit) error {
	return db.WithContext(ctx).Save(v).Error
}

// CountVisits returns the total number of visit rows.
// On DB error, it returns the error.
func CountVisits(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Visit{}).
		Count(&total).Error
	return total, err
}

// ListVisitsPage returns a paginated slice of visits ordered by creation time
// descending (most recent first). Use CountVisits to obtain the total for
// pagination metadata. On DB error, it returns the error.
//
// The caller is responsible for computing offset and limit (e.g., (page-1)*pageSize).
func ListVisitsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Visit, error) {
	var out []domain.Visit
	err := db.WithContext(ctx).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}
