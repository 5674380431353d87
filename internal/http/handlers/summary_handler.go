// Post-visit summary HTTP handler.
//
// POST /post_visit_explain produces the patient-facing explanation and
// advances the visit to summary_ready.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hheidy0463/ReproCare/internal/services"
)

// PostVisitRequest is the JSON payload for the summary stage. ProviderNote
// and IntakeStructured are optional overrides; the visit's stored values are
// used when absent, and a stored meeting transcript beats both.
type PostVisitRequest struct {
	VisitID          string         `json:"visit_id" binding:"required" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
	ProviderNote     string         `json:"provider_note"`
	IntakeStructured map[string]any `json:"intake_structured"`
}

// PostVisitResponse carries the structured summary and its plain rendering.
type PostVisitResponse struct {
	PatientSummary map[string]any `json:"patient_summary"`
	PlainText      string         `json:"plain_text"`
	// SummarySource is "provider" or "stub:<reason>".
	SummarySource string `json:"summary_source" example:"provider"`
}

// PostVisitExplain godoc
// @ID          postVisitExplain
// @Summary     Generate the post-visit summary
// @Description Produces a three-part patient explanation (discussed / next steps / watch-fors) plus plain text, preferring the stored meeting transcript when present.
// @Tags        Workflow
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.PostVisitRequest  true  "Summary payload"
// @Success     200  {object}  handlers.PostVisitResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Visit not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /post_visit_explain [post]
func (h *Handlers) PostVisitExplain(c *gin.Context) {
	var req PostVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.VisitID == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "visit_id required")
		return
	}

	out, err := h.summarySvc.Explain(c.Request.Context(), req.VisitID, req.ProviderNote, req.IntakeStructured)
	if err != nil {
		if err == services.ErrVisitNotFound {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "visit not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeSummaryFailed, err.Error())
		return
	}

	ok(c, http.StatusOK, PostVisitResponse{
		PatientSummary: out.PatientSummary,
		PlainText:      out.PlainText,
		SummarySource:  sourceLabel(out.Outcome, out.Reason),
	})
}
