package models

import "time"

// AILog records every suggestion request and the answer given, whether or
// not a booking resulted. UserID is nullable for anonymous calls.
type AILog struct {
	ID        uint  `gorm:"primaryKey" json:"id"`
	UserID    *uint `gorm:"index" json:"user_id,omitempty"`
	BookingID *uint `json:"booking_id,omitempty"`

	Prompt     string `gorm:"type:text;not null" json:"prompt"`
	Response   string `gorm:"type:text;not null" json:"response"`
	ActionType string `gorm:"column:action_type;size:50;not null" json:"action_type"`

	CreatedAt time.Time `json:"created_at"`
}
