package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"obnavi/backend/internal/models"
)

// Identity verification (passwords, OAuth) lives with the external auth
// provider; this service only mints its own session tokens once the
// account exists.

type signupRequest struct {
	Email string      `json:"email" binding:"required,email"`
	Name  string      `json:"name" binding:"required"`
	Role  models.Role `json:"role" binding:"required"`
}

// Signup creates the user row plus its role-specific profile row and
// returns a session token.
func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", "")
		return
	}
	if !models.ValidRole(req.Role) || req.Role == models.RoleAdmin {
		respondError(c, http.StatusBadRequest, "invalid role", "")
		return
	}

	existing, err := h.Storage.GetUserByEmail(req.Email)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if existing != nil {
		respondError(c, http.StatusBadRequest, "email already registered", "EMAIL_TAKEN")
		return
	}

	user := &models.User{Email: req.Email, Name: req.Name, Role: req.Role}
	if err := h.Storage.CreateUser(user); err != nil {
		respondServiceError(c, err)
		return
	}
	if err := h.createProfileFor(user); err != nil {
		respondServiceError(c, err)
		return
	}

	token, err := h.GenerateToken(user.ID, user.Role)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusCreated, gin.H{"user": user, "token": token})
}

type loginRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Login exchanges a verified identity for a session token. Banned accounts
// cannot start sessions.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", "")
		return
	}

	user, err := h.Storage.GetUserByEmail(req.Email)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if user == nil {
		respondError(c, http.StatusNotFound, "user not found", "")
		return
	}
	if user.IsBanned {
		respondError(c, http.StatusForbidden, "account is suspended", "ACCOUNT_SUSPENDED")
		return
	}

	token, err := h.GenerateToken(user.ID, user.Role)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"user": user, "token": token})
}

// Me returns the caller's own user row.
func (h *Handler) Me(c *gin.Context) {
	user, err := h.Storage.GetUserByID(callerID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if user == nil {
		respondError(c, http.StatusNotFound, "user not found", "")
		return
	}
	respondData(c, http.StatusOK, gin.H{"user": user})
}

type settingsRequest struct {
	EmailPreference string `json:"emailPreference" binding:"required"`
}

// UpdateSettings changes how the caller's notification emails are routed.
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", "")
		return
	}
	pref := models.EmailPreference(req.EmailPreference)
	switch pref {
	case models.EmailImmediate, models.EmailMorning, models.EmailWeekly, models.EmailOff:
	default:
		respondError(c, http.StatusBadRequest, "unknown email preference", "BAD_PREFERENCE")
		return
	}

	user, err := h.Storage.GetUserByID(callerID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if user == nil {
		respondError(c, http.StatusNotFound, "user not found", "")
		return
	}
	user.EmailPreference = pref
	if err := h.Storage.SaveUser(user); err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"user": user})
}

func (h *Handler) createProfileFor(user *models.User) error {
	switch user.Role {
	case models.RoleStudent:
		return h.Storage.SaveStudentProfile(&models.StudentProfile{UserID: user.ID})
	case models.RoleOBOG, models.RoleCorporateOB:
		return h.Storage.SaveOBOGProfile(&models.OBOGProfile{UserID: user.ID})
	case models.RoleCompany:
		return h.Storage.SaveCompanyProfile(&models.CompanyProfile{UserID: user.ID, CompanyName: user.Name})
	}
	return nil
}
