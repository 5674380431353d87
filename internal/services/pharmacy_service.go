// Package services – PharmacyService
//
// This file implements PharmacyService, which records the prescription
// fulfillment request. No real pharmacy integration exists; the service mints
// a deterministic demo order id derived from the visit id so repeated
// submissions for the same visit reference the same order.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hheidy0463/ReproCare/internal/domain"
	"github.com/hheidy0463/ReproCare/internal/repo"
	"github.com/hheidy0463/ReproCare/internal/sysutil"
)

// OrderStatusCreated is the only order status the demo fulfillment produces.
const OrderStatusCreated = "created"

// OrderResult is the recorded pharmacy order.
type OrderResult struct {
	OrderID string
	Status  string
}

// PharmacyService records pharmacy orders against visits.
type PharmacyService struct {
	DB   *gorm.DB
	Repo VisitRepo

	titleCaser cases.Caser
}

// NewPharmacyService constructs a PharmacyService.
func NewPharmacyService(db *gorm.DB, r VisitRepo) *PharmacyService {
	return &PharmacyService{
		DB:         db,
		Repo:       r,
		titleCaser: cases.Title(language.English),
	}
}

// Place records a pharmacy order for the visit. The order id is "stub-" plus
// the first eight characters of the visit id, so re-placing an order for the
// same visit overwrites the stored request with the same id. Sets
// pharmacy_created and appends the matching audit event.
func (s *PharmacyService) Place(ctx context.Context, visitID string, shipping map[string]any, plan string) (*OrderResult, error) {
	tr := otel.Tracer("services/PharmacyService")
	ctx, span := tr.Start(ctx, "Place",
		trace.WithAttributes(
			attribute.String("visit.id", visitID),
			attribute.String("pharmacy.plan", plan),
		),
	)
	defer span.End()

	visit, err := s.Repo.GetVisit(ctx, s.DB, visitID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrVisitNotFound
	}
	if err != nil {
		return nil, err
	}

	orderID := "stub-" + sysutil.ShortID(visit.ID, 8)
	visit.PharmacyRequest = map[string]any{
		"shipping":   shipping,
		"plan":       plan,
		"plan_label": s.planLabel(plan),
		"order_id":   orderID,
	}
	visit.Status = domain.StatusPharmacyCreated
	visit.AppendAudit(domain.EventPharmacyCreated, time.Now())
	if err := s.Repo.SaveVisit(ctx, s.DB, visit); err != nil {
		return nil, err
	}

	return &OrderResult{OrderID: orderID, Status: OrderStatusCreated}, nil
}

// planLabel renders a plan slug ("three-month-supply") as display text
// ("Three Month Supply").
func (s *PharmacyService) planLabel(plan string) string {
	return s.titleCaser.String(strings.ReplaceAll(plan, "-", " "))
}
