package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChargeStatus mirrors the payment provider's status for a per-message
// charge. Failed charges are kept for manual billing follow-up.
type ChargeStatus string

const (
	ChargeSucceeded ChargeStatus = "succeeded"
	ChargePending   ChargeStatus = "pending"
	ChargeFailed    ChargeStatus = "failed"
)

// Charge records one Corporate-OB per-message payment.
type Charge struct {
	ID        string `gorm:"primaryKey" json:"id"`
	UserID    string `gorm:"not null;index" json:"userId"`
	MessageID string `gorm:"not null;index" json:"messageId"`

	AmountJPY        int64        `gorm:"not null" json:"amountJpy"`
	ProviderChargeID string       `json:"providerChargeId"`
	Status           ChargeStatus `gorm:"type:text;not null" json:"status"`
	FailureReason    string       `json:"failureReason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// BeforeCreate assigns a UUID when unset.
func (c *Charge) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}
