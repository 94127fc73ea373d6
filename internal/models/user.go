package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role identifies what a user can do on the platform.
type Role string

const (
	RoleStudent     Role = "student"
	RoleOBOG        Role = "obog"
	RoleCompany     Role = "company"
	RoleCorporateOB Role = "corporate_ob"
	RoleAdmin       Role = "admin"
)

// EmailPreference controls how notification emails are delivered.
type EmailPreference string

const (
	EmailImmediate EmailPreference = "immediate"
	EmailMorning   EmailPreference = "morning"
	EmailWeekly    EmailPreference = "weekly"
	EmailOff       EmailPreference = "off"
)

// MaxStrikes is the strike count at which a user is banned automatically.
const MaxStrikes = 2

// User represents a platform account. Role-specific data lives in the
// profile tables (StudentProfile, OBOGProfile, CompanyProfile) keyed by the
// same ID. Users are never hard-deleted; a ban is a flag.
type User struct {
	ID       string `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Name     string `gorm:"not null" json:"name"`
	Role     Role   `gorm:"type:text;not null;index" json:"role"`
	Credits  int    `gorm:"not null;default:0" json:"credits"`
	Strikes  int    `gorm:"not null;default:0" json:"strikes"`
	IsBanned bool   `gorm:"not null;default:false" json:"isBanned"`

	// Stripe linkage. Set for corporate_ob users (through their company) and
	// for anyone who has completed a credit top-up checkout.
	StripeCustomerID       string `json:"-"`
	DefaultPaymentMethodID string `json:"-"`

	EmailPreference EmailPreference `gorm:"type:text;not null;default:immediate" json:"emailPreference"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID when the ID has not been set by the caller.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.EmailPreference == "" {
		u.EmailPreference = EmailImmediate
	}
	return
}

// IsAlumni reports whether the user holds either alumni role.
func (u *User) IsAlumni() bool {
	return u.Role == RoleOBOG || u.Role == RoleCorporateOB
}

// ValidRole reports whether r is one of the known platform roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleStudent, RoleOBOG, RoleCompany, RoleCorporateOB, RoleAdmin:
		return true
	}
	return false
}
