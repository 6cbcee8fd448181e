package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	PaymentTxPending   = "pending"
	PaymentTxCompleted = "completed"
	PaymentTxFailed    = "failed"
	PaymentTxRefunded  = "refunded"
)

type Payment struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	BookingID uint `gorm:"column:booking_id;not null;index" json:"booking_id"`

	Amount        float64 `gorm:"not null" json:"amount"`
	Currency      string  `gorm:"size:10;default:'VND'" json:"currency"`
	PaymentMethod string  `gorm:"column:payment_method;size:50;not null" json:"payment_method"`
	TransactionID string  `gorm:"column:transaction_id;size:255;uniqueIndex" json:"transaction_id,omitempty"`
	Status        string  `gorm:"size:50;default:'pending'" json:"status"`

	Metadata datatypes.JSON `gorm:"column:payment_metadata" json:"payment_metadata,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
