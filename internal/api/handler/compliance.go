package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"obnavi/backend/internal/models"
)

type complianceSubmitRequest struct {
	DocumentURLs []string `json:"documentUrls" binding:"required"`
}

// SubmitCompliance moves the calling student's gate from pending (or
// rejected) to submitted.
func (h *Handler) SubmitCompliance(c *gin.Context) {
	if callerRole(c) != models.RoleStudent {
		respondError(c, http.StatusForbidden, "only students submit compliance documents", "")
		return
	}

	var req complianceSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", "")
		return
	}

	profile, err := h.Compliance.Submit(callerID(c), req.DocumentURLs)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"profile": profile})
}

// ListAlumni returns alumni profiles, gated for students by compliance
// approval.
func (h *Handler) ListAlumni(c *gin.Context) {
	user, err := h.Storage.GetUserByID(callerID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if user == nil {
		respondError(c, http.StatusNotFound, "user not found", "")
		return
	}

	allowed, err := h.Compliance.CanViewAlumni(user)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !allowed {
		respondError(c, http.StatusForbidden, "compliance approval required", "COMPLIANCE_REQUIRED")
		return
	}

	profiles, err := h.Storage.ListOBOGProfiles()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if profiles == nil {
		profiles = []models.OBOGProfile{}
	}
	respondData(c, http.StatusOK, gin.H{"alumni": profiles})
}
