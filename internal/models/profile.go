package models

import (
	"time"

	"github.com/lib/pq"
)

// ComplianceStatus tracks a student's document-review gate. Alumni profiles
// are hidden from a student until an admin approves their submission.
type ComplianceStatus string

const (
	CompliancePending   ComplianceStatus = "pending"
	ComplianceSubmitted ComplianceStatus = "submitted"
	ComplianceApproved  ComplianceStatus = "approved"
	ComplianceRejected  ComplianceStatus = "rejected"
)

// StudentProfile holds student-specific fields, 1:1 with User by ID.
type StudentProfile struct {
	UserID         string         `gorm:"primaryKey" json:"userId"`
	University     string         `json:"university"`
	Faculty        string         `json:"faculty"`
	GraduationYear int            `json:"graduationYear"`
	Languages      pq.StringArray `gorm:"type:text[]" json:"languages"`
	Industries     pq.StringArray `gorm:"type:text[]" json:"industries"`
	ResumeURL      string         `json:"resumeUrl"`

	ComplianceAgreed  bool             `gorm:"not null;default:false" json:"complianceAgreed"`
	ComplianceStatus  ComplianceStatus `gorm:"type:text;not null;default:pending" json:"complianceStatus"`
	ComplianceDocURLs pq.StringArray   `gorm:"type:text[]" json:"complianceDocUrls"`
	ComplianceNotes   string           `json:"complianceNotes"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// OBOGProfile holds alumni-specific fields, 1:1 with User by ID. A
// corporate_ob user carries the same profile shape plus a company link.
type OBOGProfile struct {
	UserID         string         `gorm:"primaryKey" json:"userId"`
	University     string         `json:"university"`
	GraduationYear int            `json:"graduationYear"`
	Occupation     string         `json:"occupation"`
	Industry       string         `json:"industry"`
	Languages      pq.StringArray `gorm:"type:text[]" json:"languages"`
	Bio            string         `json:"bio"`

	// Corporate-OB association. Verified is toggled independently of the
	// company assignment.
	CompanyID string `gorm:"index" json:"companyId"`
	Verified  bool   `gorm:"not null;default:false" json:"verified"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// CompanyProfile holds company-account fields, 1:1 with User by ID.
type CompanyProfile struct {
	UserID      string         `gorm:"primaryKey" json:"userId"`
	CompanyName string         `gorm:"not null" json:"companyName"`
	Industry    string         `json:"industry"`
	Website     string         `json:"website"`
	LogoURL     string         `json:"logoUrl"`
	Description string         `json:"description"`
	Locations   pq.StringArray `gorm:"type:text[]" json:"locations"`

	UpdatedAt time.Time `json:"updatedAt"`
}
