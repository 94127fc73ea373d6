package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"obnavi/backend/internal/models"
)

// GetProfile returns the caller's role-specific profile.
func (h *Handler) GetProfile(c *gin.Context) {
	id := callerID(c)
	var (
		profile interface{}
		err     error
	)
	switch callerRole(c) {
	case models.RoleStudent:
		profile, err = h.Storage.GetStudentProfile(id)
	case models.RoleOBOG, models.RoleCorporateOB:
		profile, err = h.Storage.GetOBOGProfile(id)
	case models.RoleCompany:
		profile, err = h.Storage.GetCompanyProfile(id)
	default:
		respondError(c, http.StatusNotFound, "no profile for this role", "")
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"profile": profile})
}

// UpdateProfile applies a self-edit to the caller's profile. The compliance
// fields and the corporate verification flag are not writable here.
func (h *Handler) UpdateProfile(c *gin.Context) {
	id := callerID(c)

	switch callerRole(c) {
	case models.RoleStudent:
		var req struct {
			University     string   `json:"university"`
			Faculty        string   `json:"faculty"`
			GraduationYear int      `json:"graduationYear"`
			Languages      []string `json:"languages"`
			Industries     []string `json:"industries"`
			ResumeURL      string   `json:"resumeUrl"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid request body", "")
			return
		}
		profile, err := h.Storage.GetStudentProfile(id)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		if profile == nil {
			profile = &models.StudentProfile{UserID: id}
		}
		profile.University = req.University
		profile.Faculty = req.Faculty
		profile.GraduationYear = req.GraduationYear
		profile.Languages = req.Languages
		profile.Industries = req.Industries
		profile.ResumeURL = req.ResumeURL
		if err := h.Storage.SaveStudentProfile(profile); err != nil {
			respondServiceError(c, err)
			return
		}
		respondData(c, http.StatusOK, gin.H{"profile": profile})

	case models.RoleOBOG, models.RoleCorporateOB:
		var req struct {
			University     string   `json:"university"`
			GraduationYear int      `json:"graduationYear"`
			Occupation     string   `json:"occupation"`
			Industry       string   `json:"industry"`
			Languages      []string `json:"languages"`
			Bio            string   `json:"bio"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid request body", "")
			return
		}
		profile, err := h.Storage.GetOBOGProfile(id)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		if profile == nil {
			profile = &models.OBOGProfile{UserID: id}
		}
		profile.University = req.University
		profile.GraduationYear = req.GraduationYear
		profile.Occupation = req.Occupation
		profile.Industry = req.Industry
		profile.Languages = req.Languages
		profile.Bio = req.Bio
		if err := h.Storage.SaveOBOGProfile(profile); err != nil {
			respondServiceError(c, err)
			return
		}
		respondData(c, http.StatusOK, gin.H{"profile": profile})

	case models.RoleCompany:
		var req struct {
			CompanyName string   `json:"companyName"`
			Industry    string   `json:"industry"`
			Website     string   `json:"website"`
			LogoURL     string   `json:"logoUrl"`
			Description string   `json:"description"`
			Locations   []string `json:"locations"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid request body", "")
			return
		}
		profile, err := h.Storage.GetCompanyProfile(id)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		if profile == nil {
			profile = &models.CompanyProfile{UserID: id}
		}
		if req.CompanyName != "" {
			profile.CompanyName = req.CompanyName
		}
		profile.Industry = req.Industry
		profile.Website = req.Website
		profile.LogoURL = req.LogoURL
		profile.Description = req.Description
		profile.Locations = req.Locations
		if err := h.Storage.SaveCompanyProfile(profile); err != nil {
			respondServiceError(c, err)
			return
		}
		respondData(c, http.StatusOK, gin.H{"profile": profile})

	default:
		respondError(c, http.StatusNotFound, "no profile for this role", "")
	}
}
