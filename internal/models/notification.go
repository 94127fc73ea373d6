package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NotificationType tags an in-app notification for client-side routing.
type NotificationType string

const (
	NotifyNewMessage       NotificationType = "new_message"
	NotifyMeetingScheduled NotificationType = "meeting_scheduled"
	NotifyMeetingConfirmed NotificationType = "meeting_confirmed"
	NotifyMeetingCompleted NotificationType = "meeting_completed"
	NotifyMeetingNoShow    NotificationType = "meeting_no_show"
	NotifyMeetingCancelled NotificationType = "meeting_cancelled"
	NotifyStrikeWarning    NotificationType = "strike_warning"
	NotifyCompliance       NotificationType = "compliance_update"
)

// Notification is one in-app notification row. Email fan-out is decided at
// dispatch time from the owner's preference; the row itself is always
// written.
type Notification struct {
	ID     string           `gorm:"primaryKey" json:"id"`
	UserID string           `gorm:"not null;index" json:"userId"`
	Type   NotificationType `gorm:"type:text;not null" json:"type"`
	Title  string           `gorm:"not null" json:"title"`
	Body   string           `json:"body"`
	Link   string           `json:"link"`

	// Data carries typed context for the client ({"threadId": "..."}).
	Data datatypes.JSON `json:"data,omitempty"`

	IsRead bool       `gorm:"not null;default:false;index" json:"isRead"`
	ReadAt *time.Time `json:"readAt"`

	CreatedAt time.Time `json:"createdAt"`
}

// BeforeCreate assigns a UUID when unset.
func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return
}
