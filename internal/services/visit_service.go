// Package services – VisitService
//
// This file implements VisitService, which owns the lifecycle of the visit
// record itself: creation, lookup, and paginated listing. Stage behavior
// (intake, room, summary, pharmacy) lives in the sibling services; this one
// is deliberately thin.
package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/hheidy0463/ReproCare/internal/domain"
	"github.com/hheidy0463/ReproCare/internal/repo"
)

// VisitRepo defines the repository contract required by the visit services.
// Implementations are responsible for persistence of the visit aggregate.
type VisitRepo interface {
	// CreateVisit inserts a fresh visit row in status "created".
	CreateVisit(ctx context.Context, db *gorm.DB) (*domain.Visit, error)

	// GetVisit fetches a visit by ID.
	GetVisit(ctx context.Context, db *gorm.DB, id string) (*domain.Visit, error)

	// SaveVisit persists the full current state of a visit.
	SaveVisit(ctx context.Context, db *gorm.DB, v *domain.Visit) error

	// CountVisits returns the total number of visits for pagination.
	CountVisits(ctx context.Context, db *gorm.DB) (int64, error)

	// ListVisitsPage returns a page of visits, newest first.
	ListVisitsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Visit, error)

	// VisitsStats returns aggregate metadata for conditional responses.
	VisitsStats(ctx context.Context, db *gorm.DB) (int64, *time.Time, error)
}

// VisitService provides visit-record operations: create, fetch, list.
type VisitService struct {
	DB   *gorm.DB
	Repo VisitRepo
}

// NewVisitService constructs a VisitService.
func NewVisitService(db *gorm.DB, r VisitRepo) *VisitService {
	return &VisitService{DB: db, Repo: r}
}

// Create inserts a new visit and returns it.
func (s *VisitService) Create(ctx context.Context) (*domain.Visit, error) {
	tr := otel.Tracer("services/VisitService")
	ctx, span := tr.Start(ctx, "Create")
	defer span.End()

	v, err := s.Repo.CreateVisit(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("visit.id", v.ID))
	return v, nil
}

// Get fetches a visit by ID, mapping missing rows to ErrVisitNotFound.
func (s *VisitService) Get(ctx context.Context, id string) (*domain.Visit, error) {
	tr := otel.Tracer("services/VisitService")
	ctx, span := tr.Start(ctx, "Get",
		trace.WithAttributes(attribute.String("visit.id", id)),
	)
	defer span.End()

	v, err := s.Repo.GetVisit(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrVisitNotFound
	}
	return v, err
}

// ListPage returns a page of visits (newest first) plus the total count.
// It applies defaults for invalid page/pageSize.
func (s *VisitService) ListPage(ctx context.Context, page, pageSize int) ([]domain.Visit, int64, error) {
	tr := otel.Tracer("services/VisitService")
	ctx, span := tr.Start(ctx, "ListPage",
		trace.WithAttributes(
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := s.Repo.CountVisits(ctx, s.DB)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Visit{}, 0, nil
	}

	items, err := s.Repo.ListVisitsPage(ctx, s.DB, offset, pageSize)
	return items, total, err
}

// Stats exposes aggregate metadata used for ETag generation in the HTTP layer.
func (s *VisitService) Stats(ctx context.Context) (int64, *time.Time, error) {
	return s.Repo.VisitsStats(ctx, s.DB)
}
