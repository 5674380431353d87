// Intake HTTP handler.
//
// POST /intake_to_json converts raw intake Q&A into the clinician/patient
// artifacts and advances the visit to intake_complete.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hheidy0463/ReproCare/internal/domain"
	"github.com/hheidy0463/ReproCare/internal/services"
)

// QAItem is one submitted question/answer pair.
type QAItem struct {
	Q string `json:"q" example:"Do you smoke?"`
	A string `json:"a" example:"No"`
}

// IntakeRequest is the JSON payload for the intake conversion.
type IntakeRequest struct {
	VisitID string   `json:"visit_id" binding:"required" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
	QA      []QAItem `json:"qa"`
}

// IntakeResponse carries the three intake artifacts plus provenance.
type IntakeResponse struct {
	IntakeStructured map[string]any `json:"intake_structured"`
	ProviderNote     string         `json:"provider_note"`
	PatientSummary   string         `json:"patient_summary"`
	EventsAdded      []string       `json:"events_added"`
	// SummarySource is "provider" or "stub:<reason>".
	SummarySource string `json:"summary_source" example:"stub:no_credential"`
}

// IntakeToJSON godoc
// @ID          intakeToJSON
// @Summary     Convert intake Q&A
// @Description Turns submitted Q&A into structured intake data, a provider note, and a patient summary. Re-submission overwrites previous artifacts.
// @Tags        Workflow
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.IntakeRequest  true  "Intake payload"
// @Success     200  {object}  handlers.IntakeResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Visit not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /intake_to_json [post]
func (h *Handlers) IntakeToJSON(c *gin.Context) {
	var req IntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.VisitID == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "visit_id required")
		return
	}

	qa := make([]domain.QA, 0, len(req.QA))
	for _, item := range req.QA {
		qa = append(qa, domain.QA{Q: item.Q, A: item.A})
	}

	out, err := h.intakeSvc.Submit(c.Request.Context(), req.VisitID, qa)
	if err != nil {
		if err == services.ErrVisitNotFound {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "visit not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeIntakeFailed, err.Error())
		return
	}

	ok(c, http.StatusOK, IntakeResponse{
		IntakeStructured: out.IntakeStructured,
		ProviderNote:     out.ProviderNote,
		PatientSummary:   out.PatientSummary,
		EventsAdded:      out.EventsAdded,
		SummarySource:    sourceLabel(out.Outcome, out.Reason),
	})
}
