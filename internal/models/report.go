package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportStatus is the triage state of a filed report. Only admins move it.
type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportReviewed  ReportStatus = "reviewed"
	ReportResolved  ReportStatus = "resolved"
	ReportDismissed ReportStatus = "dismissed"
)

// ValidReportStatus reports whether s is a known triage state.
func ValidReportStatus(s ReportStatus) bool {
	switch s {
	case ReportPending, ReportReviewed, ReportResolved, ReportDismissed:
		return true
	}
	return false
}

// Report is a user- or platform-directed complaint. TargetUserID is empty
// for platform-directed reports.
type Report struct {
	ID           string `gorm:"primaryKey" json:"id"`
	ReporterID   string `gorm:"not null;index" json:"reporterId"`
	TargetUserID string `gorm:"index" json:"targetUserId"`
	ThreadID     string `gorm:"index" json:"threadId"`

	Reason string       `gorm:"not null" json:"reason"`
	Detail string       `json:"detail"`
	Status ReportStatus `gorm:"type:text;not null;default:pending;index" json:"status"`

	// AdminNotes accumulates free-text notes across triage transitions.
	AdminNotes string `json:"adminNotes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID and the initial triage state.
func (r *Report) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.Status == "" {
		r.Status = ReportPending
	}
	return
}
