// Pharmacy order HTTP handler.
//
// POST /pharmacy_order records the fulfillment request for a visit. The
// endpoint honors Idempotency-Key: a retried request with the same key
// replays the originally recorded response instead of placing a second order.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hheidy0463/ReproCare/internal/repo"
	"github.com/hheidy0463/ReproCare/internal/services"
)

// PharmacyOrderRequest is the JSON payload for placing an order.
type PharmacyOrderRequest struct {
	VisitID  string         `json:"visit_id" binding:"required" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
	Shipping map[string]any `json:"shipping"`
	Plan     string         `json:"plan" example:"three-month-supply"`
}

// PharmacyOrderResponse is the recorded order.
type PharmacyOrderResponse struct {
	OrderID string `json:"order_id" example:"stub-141add05"`
	Status  string `json:"status" example:"created"`
}

// PharmacyOrder godoc
// @ID          pharmacyOrder
// @Summary     Place a pharmacy order
// @Description Records the prescription fulfillment request and mints a demo order id derived from the visit id. Safe to retry with an Idempotency-Key header.
// @Tags        Workflow
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key  header  string  false  "Replays the recorded response on retry"
// @Param       body  body  handlers.PharmacyOrderRequest  true  "Order payload"
// @Success     200  {object}  handlers.PharmacyOrderResponse
// @Header      200  {string}  Idempotency-Replayed  "true when a stored response was replayed"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Visit not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /pharmacy_order [post]
func (h *Handlers) PharmacyOrder(c *gin.Context) {
	ctx := c.Request.Context()

	var req PharmacyOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.VisitID == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "visit_id required")
		return
	}

	// Replay path (best effort): serve the recorded response body verbatim.
	idemKey := requestIdempotencyKey(c)
	scope := c.FullPath()
	if idemKey != "" {
		if svc, okSvc := h.pharmacySvc.(*services.PharmacyService); okSvc && svc.DB != nil {
			if rec, err := repo.GetIdempotency(ctx, svc.DB, requestUser(c), scope, idemKey, time.Now().UTC()); err == nil && rec != nil && len(rec.Body) > 0 {
				c.Header("Idempotency-Replayed", "true")
				c.Data(rec.Status, "application/json; charset=utf-8", rec.Body)
				return
			}
		}
	}

	out, err := h.pharmacySvc.Place(ctx, req.VisitID, req.Shipping, req.Plan)
	if err != nil {
		if err == services.ErrVisitNotFound {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "visit not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeOrderFailed, err.Error())
		return
	}

	resp := PharmacyOrderResponse{OrderID: out.OrderID, Status: out.Status}

	// Store path (best effort): record the exact body we are about to send.
	if idemKey != "" {
		if svc, okSvc := h.pharmacySvc.(*services.PharmacyService); okSvc && svc.DB != nil {
			if body, err := json.Marshal(resp); err == nil {
				ttl := 24 * time.Hour
				_, _ = repo.CreateIdempotency(ctx, svc.DB, requestUser(c), scope, idemKey, http.StatusOK, body, ttl)
			}
		}
	}

	ok(c, http.StatusOK, resp)
}

// requestIdempotencyKey extracts an idempotency key if an upstream middleware
// has already validated/stashed it; it falls back to reading the header
// directly.
func requestIdempotencyKey(c *gin.Context) string {
	if v := strings.TrimSpace(c.GetHeader("Idempotency-Key")); v != "" {
		return v
	}
	return ""
}

// requestUser extracts the caller identity set by upstream middleware, with a
// demo fallback: the API carries no authentication of its own.
func requestUser(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
		return h
	}
	return "demo-user"
}
