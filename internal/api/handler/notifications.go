package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"obnavi/backend/internal/models"
)

// ListNotifications returns the caller's notifications; ?unread=true
// filters to unread only.
func (h *Handler) ListNotifications(c *gin.Context) {
	unreadOnly := c.Query("unread") == "true"
	ns, err := h.Storage.ListNotificationsForUser(callerID(c), unreadOnly)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if ns == nil {
		ns = []models.Notification{}
	}
	respondData(c, http.StatusOK, gin.H{"notifications": ns})
}

// MarkNotificationRead flips one notification's read flag.
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	err := h.Storage.MarkNotificationRead(c.Param("id"), callerID(c))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, http.StatusNotFound, "notification not found", "")
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"read": true})
}

// MarkAllNotificationsRead flips every unread notification.
func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	if err := h.Storage.MarkAllNotificationsRead(callerID(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"read": true})
}
