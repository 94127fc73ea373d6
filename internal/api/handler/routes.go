package handler

import (
	"github.com/gin-gonic/gin"

	"obnavi/backend/internal/models"
)

// RegisterRoutes mounts the full API surface.
func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.POST("/api/auth/signup", h.Signup)
	r.POST("/api/auth/login", h.Login)

	authed := r.Group("/", h.AuthRequired())
	{
		authed.GET("/api/me", h.Me)
		authed.PUT("/api/me/settings", h.UpdateSettings)
		authed.GET("/api/profile", h.GetProfile)
		authed.PUT("/api/profile", h.UpdateProfile)

		authed.POST("/api/messages", h.SendMessage)
		authed.GET("/api/messages", h.ListThreads)
		authed.GET("/api/messages/:threadId", h.ListMessages)

		authed.GET("/api/meetings/:threadId", h.GetMeeting)
		authed.POST("/api/meetings/:threadId", h.ScheduleMeeting)
		authed.PUT("/api/meetings/:threadId", h.UpdateMeeting)

		authed.GET("/api/alumni", h.ListAlumni)
		authed.POST("/api/compliance/submit", h.SubmitCompliance)

		authed.GET("/api/reports", h.ListReports)
		authed.POST("/api/reports", h.FileReport)

		authed.GET("/api/notifications", h.ListNotifications)
		authed.PUT("/api/notifications/:id/read", h.MarkNotificationRead)
		authed.PUT("/api/notifications", h.MarkAllNotificationsRead)

		authed.POST("/api/credits/checkout", h.CreateCheckout)
		authed.POST("/api/credits/confirm", h.ConfirmCheckout)

		authed.POST("/api/uploads", h.Upload)

		authed.GET("/ws", h.ServeWebSocket)
	}

	admin := authed.Group("/", h.RequireRole(models.RoleAdmin))
	{
		admin.POST("/api/admin/users/:id/strikes", h.AddStrike)
		admin.POST("/api/admin/users/:id/ban", h.BanUser)
		admin.POST("/api/admin/users/:id/unban", h.UnbanUser)
		admin.GET("/api/admin/users/:id/charges", h.ListUserCharges)
		admin.GET("/api/admin/corporate-ob", h.ListCorporateOBs)
		admin.POST("/api/admin/corporate-ob", h.AssignCorporateOB)
		admin.PUT("/api/admin/compliance", h.ReviewCompliance)
		admin.PUT("/api/reports/:id", h.UpdateReport)
	}
}
