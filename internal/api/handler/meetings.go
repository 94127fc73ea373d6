package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"obnavi/backend/internal/models"
)

// GetMeeting returns the booking for a thread; a missing booking is
// {meeting: null}, not an error.
func (h *Handler) GetMeeting(c *gin.Context) {
	booking, err := h.Meetings.Get(c.Param("threadId"), callerID(c), callerIsAdmin(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"meeting": booking})
}

type scheduleMeetingRequest struct {
	BookingDateTime *time.Time `json:"bookingDateTime"`
	MeetingURL      string     `json:"meetingUrl"`
}

// ScheduleMeeting finds or creates the thread's booking and applies the
// date/URL update.
func (h *Handler) ScheduleMeeting(c *gin.Context) {
	var req scheduleMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", "")
		return
	}

	booking, err := h.Meetings.Schedule(c.Param("threadId"), callerID(c), callerIsAdmin(c),
		req.BookingDateTime, req.MeetingURL)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"meeting": booking})
}

type meetingActionRequest struct {
	Action string `json:"action" binding:"required"`
}

// UpdateMeeting applies a lifecycle action to the thread's booking.
func (h *Handler) UpdateMeeting(c *gin.Context) {
	var req meetingActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", "")
		return
	}

	threadID := c.Param("threadId")
	caller := callerID(c)
	isAdmin := callerIsAdmin(c)

	var (
		booking *models.Booking
		err     error
	)
	switch req.Action {
	case "confirm":
		booking, err = h.Meetings.Confirm(threadID, caller, isAdmin)
	case "complete":
		booking, err = h.Meetings.Complete(threadID, caller, isAdmin)
	case "mark_no_show":
		booking, err = h.Meetings.MarkNoShow(threadID, caller, isAdmin)
	case "cancel":
		booking, err = h.Meetings.Cancel(threadID, caller, isAdmin)
	case "accept_terms", "submit_evaluation", "submit_additional_question":
		// The booking row has no fields for these legacy actions; they are
		// acknowledged without effect.
		booking, err = h.Meetings.AcknowledgeOnly(threadID, caller, isAdmin)
	default:
		respondError(c, http.StatusBadRequest, "unknown action", "UNKNOWN_ACTION")
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"meeting": booking})
}
