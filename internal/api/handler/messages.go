package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"obnavi/backend/internal/messaging"
	"obnavi/backend/internal/models"
)

type sendMessageRequest struct {
	Content  string `json:"content"`
	ToUserID string `json:"toUserId"`
	ThreadID string `json:"threadId"`
}

// SendMessage runs the send flow. A 402 NO_PAYMENT_METHOD can come back
// with the message already persisted; the error still wins the response.
func (h *Handler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", "")
		return
	}

	result, err := h.Messaging.Send(c.Request.Context(), messaging.SendInput{
		SenderID: callerID(c),
		Content:  req.Content,
		ToUserID: req.ToUserID,
		ThreadID: req.ThreadID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusCreated, result)
}

// ListThreads returns the caller's inbox, or every thread (read-only) for
// an admin.
func (h *Handler) ListThreads(c *gin.Context) {
	if callerIsAdmin(c) {
		threads, err := h.Storage.ListAllThreads()
		if err != nil {
			respondServiceError(c, err)
			return
		}
		respondData(c, http.StatusOK, gin.H{"threads": threads})
		return
	}

	summaries, err := h.Storage.ListThreadsForUser(callerID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"threads": summaries})
}

// ListMessages returns a thread's messages and marks them read for the
// caller. Participants only; admins read without touching read state.
func (h *Handler) ListMessages(c *gin.Context) {
	threadID := c.Param("threadId")

	thread, err := h.Storage.GetThreadByID(threadID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if thread == nil {
		respondError(c, http.StatusNotFound, "thread not found", "THREAD_NOT_FOUND")
		return
	}

	isAdmin := callerIsAdmin(c)
	if !isAdmin && !thread.HasParticipant(callerID(c)) {
		respondError(c, http.StatusForbidden, "not a participant of this thread", "NOT_PARTICIPANT")
		return
	}

	msgs, err := h.Storage.ListMessages(threadID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !isAdmin {
		if err := h.Storage.MarkThreadRead(threadID, callerID(c)); err != nil {
			respondServiceError(c, err)
			return
		}
	}
	if msgs == nil {
		msgs = []models.Message{}
	}
	respondData(c, http.StatusOK, gin.H{"thread": thread, "messages": msgs})
}
