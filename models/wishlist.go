package models

import "time"

type Wishlist struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	UserID  uint `gorm:"not null;index" json:"user_id"`
	HotelID uint `gorm:"not null;index" json:"hotel_id"`

	CreatedAt time.Time `json:"created_at"`

	Hotel *Hotel `gorm:"foreignKey:HotelID" json:"hotel,omitempty"`
}
