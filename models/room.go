package models

import (
	"time"

	"gorm.io/datatypes"
)

type Room struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	HotelID uint `gorm:"column:hotel_id;not null;index" json:"hotel_id"`

	Name        string   `gorm:"size:255;not null" json:"name"`
	Description string   `gorm:"type:text" json:"description,omitempty"`
	RoomType    string   `gorm:"column:room_type;size:100;not null" json:"room_type"`
	MaxGuests   int      `gorm:"column:max_guests;not null;default:2" json:"max_guests"`
	Size        *float64 `json:"size,omitempty"`
	BedType     string   `gorm:"column:bed_type;size:50" json:"bed_type,omitempty"`
	BasePrice   float64  `gorm:"column:base_price;not null" json:"base_price"`

	Images    datatypes.JSON `json:"images,omitempty"`
	Amenities datatypes.JSON `json:"amenities,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Hotel *Hotel `gorm:"foreignKey:HotelID" json:"hotel,omitempty"`
}
