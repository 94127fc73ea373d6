package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"obnavi/backend/internal/moderation"
)

// AddStrike applies one strike; the second strike bans automatically.
func (h *Handler) AddStrike(c *gin.Context) {
	result, err := h.Moderation.AddStrike(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, result)
}

// BanUser suspends an account directly.
func (h *Handler) BanUser(c *gin.Context) {
	if err := h.Moderation.SetBanned(c.Param("id"), true); err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"userId": c.Param("id"), "banned": true})
}

// UnbanUser lifts a suspension.
func (h *Handler) UnbanUser(c *gin.Context) {
	if err := h.Moderation.SetBanned(c.Param("id"), false); err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"userId": c.Param("id"), "banned": false})
}

// ListCorporateOBs is the Corporate-OB assignment panel listing.
func (h *Handler) ListCorporateOBs(c *gin.Context) {
	users, err := h.Moderation.ListCorporateOBs()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"users": users})
}

// ListUserCharges returns a user's per-message charge history; failed rows
// are the manual-billing follow-up queue.
func (h *Handler) ListUserCharges(c *gin.Context) {
	charges, err := h.Storage.ListChargesForUser(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"charges": charges})
}

type corporateOBRequest struct {
	UserID                 string `json:"userId" binding:"required"`
	CompanyID              string `json:"companyId"`
	Verified               *bool  `json:"verified"`
	StripeCustomerID       string `json:"stripeCustomerId"`
	DefaultPaymentMethodID string `json:"defaultPaymentMethodId"`
}

// AssignCorporateOB links an alumnus to a company, toggles the verified
// flag and provisions the Stripe billing identity for per-message charges.
func (h *Handler) AssignCorporateOB(c *gin.Context) {
	var req corporateOBRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", "")
		return
	}

	profile, err := h.Moderation.AssignCorporateOB(moderation.CorporateOBAssignment{
		UserID:                 req.UserID,
		CompanyID:              req.CompanyID,
		Verified:               req.Verified,
		StripeCustomerID:       req.StripeCustomerID,
		DefaultPaymentMethodID: req.DefaultPaymentMethodID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"profile": profile})
}

type complianceReviewRequest struct {
	UserID string `json:"userId" binding:"required"`
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// ReviewCompliance applies an admin approval or rejection to a student's
// submission.
func (h *Handler) ReviewCompliance(c *gin.Context) {
	var req complianceReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", "")
		return
	}

	var approve bool
	switch req.Status {
	case "approved":
		approve = true
	case "rejected":
		approve = false
	default:
		respondError(c, http.StatusBadRequest, "status must be approved or rejected", "BAD_STATUS")
		return
	}

	profile, err := h.Compliance.Review(req.UserID, approve, req.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"profile": profile})
}
