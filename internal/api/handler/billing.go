package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"obnavi/backend/internal/config"
	"obnavi/backend/internal/logger"
)

type checkoutRequest struct {
	Pack string `json:"pack" binding:"required"`
}

// CreateCheckout opens a hosted checkout session for a credit pack and
// returns the redirect URL.
func (h *Handler) CreateCheckout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", "")
		return
	}

	pack, ok := config.CreditPacks[req.Pack]
	if !ok {
		respondError(c, http.StatusBadRequest, "unknown credit pack", "UNKNOWN_PACK")
		return
	}

	result, err := h.Billing.CreateCheckoutSession(callerID(c), req.Pack, pack.Credits, pack.PriceJPY)
	if err != nil {
		logger.Log.Errorf("checkout session for %s failed: %v", callerID(c), err)
		respondError(c, http.StatusInternalServerError, "internal server error", "")
		return
	}
	respondData(c, http.StatusOK, gin.H{"sessionId": result.SessionID, "url": result.URL})
}

type confirmCheckoutRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}

// ConfirmCheckout is polled from the success page. It verifies payment with
// the provider and credits the balance exactly once per session.
func (h *Handler) ConfirmCheckout(c *gin.Context) {
	var req confirmCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", "")
		return
	}

	state, err := h.Billing.GetCheckoutSession(req.SessionID)
	if err != nil {
		logger.Log.Errorf("checkout lookup %s failed: %v", req.SessionID, err)
		respondError(c, http.StatusInternalServerError, "internal server error", "")
		return
	}
	if !state.Paid {
		respondData(c, http.StatusOK, gin.H{"credited": false, "paid": false})
		return
	}
	if state.UserID != callerID(c) {
		respondError(c, http.StatusForbidden, "session belongs to another user", "")
		return
	}

	claimed, err := h.Storage.ClaimCheckoutSession(req.SessionID, config.CheckoutGuardTTL)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !claimed {
		// Already credited by an earlier poll or a second tab.
		respondData(c, http.StatusOK, gin.H{"credited": false, "paid": true})
		return
	}

	if err := h.Storage.AddCredits(state.UserID, state.Credits); err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"credited": true, "paid": true, "credits": state.Credits})
}
