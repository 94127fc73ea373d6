package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MeetingStatus is the overall lifecycle state of a booking.
//
//	unconfirmed -> confirmed -> completed | no-show
//	any non-terminal -> cancelled
type MeetingStatus string

const (
	MeetingUnconfirmed MeetingStatus = "unconfirmed"
	MeetingConfirmed   MeetingStatus = "confirmed"
	MeetingCompleted   MeetingStatus = "completed"
	MeetingNoShow      MeetingStatus = "no-show"
	MeetingCancelled   MeetingStatus = "cancelled"
)

// Terminal reports whether no further transitions are allowed from s.
func (s MeetingStatus) Terminal() bool {
	return s == MeetingCompleted || s == MeetingNoShow || s == MeetingCancelled
}

// PostStatus is one party's own report after the scheduled time.
type PostStatus string

const (
	PostNone      PostStatus = ""
	PostCompleted PostStatus = "completed"
	PostNoShow    PostStatus = "no-show"
)

// Booking is the scheduled call tied 1:1 to a message thread between a
// student and an alumnus. The unique index on ThreadID backs the
// find-or-create path.
type Booking struct {
	ID       string `gorm:"primaryKey" json:"id"`
	ThreadID string `gorm:"uniqueIndex;not null" json:"threadId"`

	StudentID string `gorm:"not null;index" json:"studentId"`
	OBOGID    string `gorm:"not null;index" json:"obogId"`

	BookingDateTime *time.Time `json:"bookingDateTime"`
	MeetingURL      string     `json:"meetingUrl"`

	Status        MeetingStatus `gorm:"type:text;not null;default:unconfirmed" json:"status"`
	MeetingStatus MeetingStatus `gorm:"type:text;not null;default:unconfirmed" json:"meetingStatus"`

	StudentPostStatus   PostStatus `gorm:"type:text;not null;default:''" json:"studentPostStatus"`
	StudentPostStatusAt *time.Time `json:"studentPostStatusAt"`
	OBOGPostStatus      PostStatus `gorm:"type:text;not null;default:''" json:"obogPostStatus"`
	OBOGPostStatusAt    *time.Time `json:"obogPostStatusAt"`

	CancelledBy string     `json:"cancelledBy"`
	CancelledAt *time.Time `json:"cancelledAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID and the initial states.
func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.Status == "" {
		b.Status = MeetingUnconfirmed
	}
	if b.MeetingStatus == "" {
		b.MeetingStatus = MeetingUnconfirmed
	}
	return
}
