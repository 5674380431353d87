// Visit HTTP handlers.
//
// This file exposes REST endpoints for the visit record itself:
//   - POST /visit        (create)
//   - GET  /visit/{id}   (fetch full record)
//   - GET  /visits       (list, paginated, ETag support)
//   - GET  /             (liveness message)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses (including conditional responses).
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hheidy0463/ReproCare/internal/domain"
	"github.com/hheidy0463/ReproCare/internal/llm"
	"github.com/hheidy0463/ReproCare/internal/services"
	"github.com/hheidy0463/ReproCare/internal/utils"
	"github.com/hheidy0463/ReproCare/internal/whereby"
)

//
// Service contracts (context-aware)
//

// VisitService defines visit-record operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type VisitService interface {
	// Create starts a new visit in status "created".
	Create(ctx context.Context) (*domain.Visit, error)
	// Get fetches a visit by ID.
	Get(ctx context.Context, id string) (*domain.Visit, error)
	// ListPage returns a page of visits and the total count.
	ListPage(ctx context.Context, page, pageSize int) ([]domain.Visit, int64, error)
	// Stats returns aggregate metadata used for ETag generation.
	Stats(ctx context.Context) (int64, *time.Time, error)
}

// IntakeService converts intake Q&A into structured artifacts.
type IntakeService interface {
	Submit(ctx context.Context, visitID string, qa []domain.QA) (*services.IntakeResult, error)
}

// EncounterService provisions video rooms and fetches transcriptions.
type EncounterService interface {
	StartVisit(ctx context.Context, visitID string) (*services.RoomResult, error)
	FetchTranscription(ctx context.Context, visitID string) (*services.TranscriptionResult, error)
}

// SummaryService produces the post-visit patient explanation.
type SummaryService interface {
	Explain(ctx context.Context, visitID, providerNote string, intakeStructured map[string]any) (*services.SummaryResult, error)
}

// PharmacyService records pharmacy orders against visits.
type PharmacyService interface {
	Place(ctx context.Context, visitID string, shipping map[string]any, plan string) (*services.OrderResult, error)
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for the visit workflow. It depends on
// abstract service interfaces to keep transport concerns separate from
// business logic.
type Handlers struct {
	visitSvc     VisitService
	intakeSvc    IntakeService
	encounterSvc EncounterService
	summarySvc   SummaryService
	pharmacySvc  PharmacyService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(visitSvc VisitService, intakeSvc IntakeService, encounterSvc EncounterService, summarySvc SummaryService, pharmacySvc PharmacyService) *Handlers {
	return &Handlers{
		visitSvc:     visitSvc,
		intakeSvc:    intakeSvc,
		encounterSvc: encounterSvc,
		summarySvc:   summarySvc,
		pharmacySvc:  pharmacySvc,
	}
}

//
// DTOs
//

// CreateVisitResponse returns the id of a freshly created visit.
type CreateVisitResponse struct {
	VisitID string `json:"visit_id" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListVisitsResponse wraps a page of visits and pagination information.
type ListVisitsResponse struct {
	Visits     []domain.Visit `json:"visits"`
	Pagination Pagination     `json:"pagination"`
}

//
// Helpers
//

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.Clamp(utils.AtoiDefault(c.Query("page_size"), defaultPageSize), 1, maxPageSize)
	return
}

// sourceLabel renders completion provenance for response payloads:
// "provider" or "stub:<reason>".
func sourceLabel(outcome llm.Outcome, reason llm.Reason) string {
	if outcome == llm.OutcomeProvider {
		return string(llm.OutcomeProvider)
	}
	if reason == llm.ReasonNone {
		return string(llm.OutcomeStub)
	}
	return string(llm.OutcomeStub) + ":" + string(reason)
}

// roomSourceLabel renders room provenance the same way.
func roomSourceLabel(src whereby.Source) string {
	return string(src)
}

//
// Handlers
//

// Root godoc
// @ID          root
// @Summary     Liveness message
// @Description Returns a static identification message.
// @Tags        System
// @Produce     json
// @Success     200  {object}  map[string]string
// @Router      / [get]
func (h *Handlers) Root(c *gin.Context) {
	ok(c, http.StatusOK, gin.H{"message": "ReproCare API"})
}

// CreateVisit godoc
// @ID          createVisit
// @Summary     Create a new visit
// @Description Creates an empty visit record and returns its id.
// @Tags        Visits
// @Produce     json
// @Success     200  {object}  handlers.CreateVisitResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /visit [post]
func (h *Handlers) CreateVisit(c *gin.Context) {
	v, err := h.visitSvc.Create(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, CreateVisitResponse{VisitID: v.ID})
}

// GetVisit godoc
// @ID          getVisit
// @Summary     Fetch a visit
// @Description Returns the full visit record including all stage outputs.
// @Tags        Visits
// @Produce     json
// @Param       id  path  string  true  "Visit ID"
// @Success     200  {object}  domain.Visit
// @Failure     404  {object}  handlers.ErrorResponse  "Visit not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /visit/{id} [get]
func (h *Handlers) GetVisit(c *gin.Context) {
	// Any unknown id is a plain 404; ids are opaque strings to clients.
	v, err := h.visitSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == services.ErrVisitNotFound {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "visit not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, v)
}

// ListVisits godoc
// @ID          listVisits
// @Summary     List visits (paginated)
// @Description Returns a page of visits, newest first. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Visits
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"abc123\")
// @Param       page           query   int     false "Page number"                  minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"               minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListVisitsResponse
// @Header      200  {string} ETag  "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /visits [get]
func (h *Handlers) ListVisits(c *gin.Context) {
	ctx := c.Request.Context()
	page, pageSize := clampPagination(c)

	// ETag pre-check (best effort).
	if count, maxTS, err := h.visitSvc.Stats(ctx); err == nil {
		var ts int64
		if maxTS != nil {
			ts = maxTS.Unix()
		}
		etag := fmt.Sprintf(`W/"visits:%d:%d"`, count, ts)
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	items, total, err := h.visitSvc.ListPage(ctx, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	resp := ListVisitsResponse{
		Visits: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	}
	ok(c, http.StatusOK, resp)
}
