package models

import (
	"time"

	"gorm.io/datatypes"
)

type Review struct {
	ID        uint  `gorm:"primaryKey" json:"id"`
	UserID    uint  `gorm:"not null;index" json:"user_id"`
	HotelID   uint  `gorm:"not null;index" json:"hotel_id"`
	BookingID *uint `json:"booking_id,omitempty"`

	// Overall score on a 1-10 scale; Ratings holds the per-aspect breakdown
	// (cleanliness, location, service, ...).
	OverallRating float64        `gorm:"column:overall_rating;not null" json:"overall_rating"`
	Ratings       datatypes.JSON `json:"ratings,omitempty"`
	Comment       string         `gorm:"type:text" json:"comment,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
