// Video room HTTP handlers.
//
// POST /create_room provisions the consultation room for a visit;
// POST /fetch_transcription pulls the finished meeting transcript afterwards.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hheidy0463/ReproCare/internal/services"
)

// RoomRequest identifies the visit to provision a room for.
type RoomRequest struct {
	VisitID string `json:"visit_id" binding:"required" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
}

// RoomResponse is the provisioned (or demo) room.
type RoomResponse struct {
	RoomID  string `json:"room_id" example:"demo-room"`
	JoinURL string `json:"join_url" example:"https://whereby.com/your-demo"`
	// Source is "provider", "template", or "stub".
	Source string `json:"source" example:"stub"`
}

// TranscriptionRequest identifies the visit whose transcript to fetch.
type TranscriptionRequest struct {
	VisitID string `json:"visit_id" binding:"required"`
}

// TranscriptionResponse reports whether a transcript was stored.
type TranscriptionResponse struct {
	TranscriptionAvailable bool `json:"transcription_available"`
	Characters             int  `json:"characters"`
}

// CreateRoom godoc
// @ID          createRoom
// @Summary     Provision the video room
// @Description Creates a meeting room for the visit (or serves the demo room when the provider is unavailable) and marks the visit started.
// @Tags        Workflow
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.RoomRequest  true  "Room payload"
// @Success     200  {object}  handlers.RoomResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Visit not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /create_room [post]
func (h *Handlers) CreateRoom(c *gin.Context) {
	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.VisitID == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "visit_id required")
		return
	}

	out, err := h.encounterSvc.StartVisit(c.Request.Context(), req.VisitID)
	if err != nil {
		if err == services.ErrVisitNotFound {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "visit not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeRoomFailed, err.Error())
		return
	}

	ok(c, http.StatusOK, RoomResponse{
		RoomID:  out.RoomID,
		JoinURL: out.JoinURL,
		Source:  roomSourceLabel(out.Source),
	})
}

// FetchTranscription godoc
// @ID          fetchTranscription
// @Summary     Fetch the meeting transcript
// @Description Retrieves the finished transcription for the visit's room and stores it. Available=false when the provider has no ready transcript yet.
// @Tags        Workflow
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.TranscriptionRequest  true  "Transcription payload"
// @Success     200  {object}  handlers.TranscriptionResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Visit not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /fetch_transcription [post]
func (h *Handlers) FetchTranscription(c *gin.Context) {
	var req TranscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.VisitID == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "visit_id required")
		return
	}

	out, err := h.encounterSvc.FetchTranscription(c.Request.Context(), req.VisitID)
	if err != nil {
		if err == services.ErrVisitNotFound {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "visit not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeTranscriptionFailed, err.Error())
		return
	}

	ok(c, http.StatusOK, TranscriptionResponse{
		TranscriptionAvailable: out.Available,
		Characters:             out.Characters,
	})
}
