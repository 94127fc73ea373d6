package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"obnavi/backend/internal/models"
)

type fileReportRequest struct {
	TargetUserID string `json:"targetUserId"`
	ThreadID     string `json:"threadId"`
	Reason       string `json:"reason" binding:"required"`
	Detail       string `json:"detail"`
}

// FileReport lets any authenticated user file a complaint.
func (h *Handler) FileReport(c *gin.Context) {
	var req fileReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", "")
		return
	}

	report, err := h.Moderation.FileReport(callerID(c), req.TargetUserID, req.ThreadID, req.Reason, req.Detail)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusCreated, gin.H{"report": report})
}

// ListReports returns all reports (optionally filtered by ?status=) for
// admins, or the caller's own filed reports otherwise.
func (h *Handler) ListReports(c *gin.Context) {
	var (
		reports []models.Report
		err     error
	)
	if callerIsAdmin(c) {
		reports, err = h.Moderation.ListReports(models.ReportStatus(c.Query("status")))
	} else {
		reports, err = h.Moderation.ListOwnReports(callerID(c))
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if reports == nil {
		reports = []models.Report{}
	}
	respondData(c, http.StatusOK, gin.H{"reports": reports})
}

type updateReportRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// UpdateReport applies an admin triage transition.
func (h *Handler) UpdateReport(c *gin.Context) {
	var req updateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", "")
		return
	}

	report, err := h.Moderation.UpdateReport(c.Param("id"), models.ReportStatus(req.Status), req.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"report": report})
}
