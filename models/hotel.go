package models

import (
	"time"

	"gorm.io/datatypes"
)

type Hotel struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string   `gorm:"size:255;not null;index" json:"name"`
	Description string   `gorm:"type:text" json:"description,omitempty"`
	Address     string   `gorm:"size:500;not null" json:"address"`
	City        string   `gorm:"size:100;not null;index" json:"city"`
	Country     string   `gorm:"size:100;not null;index" json:"country"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	StarRating  int      `gorm:"column:star_rating;default:3" json:"star_rating"`

	Images    datatypes.JSON `json:"images,omitempty"`
	Amenities datatypes.JSON `json:"amenities,omitempty"`
	Policies  datatypes.JSON `json:"policies,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Rooms     []Room     `gorm:"foreignKey:HotelID;constraint:OnDelete:CASCADE" json:"rooms,omitempty"`
	Reviews   []Review   `gorm:"foreignKey:HotelID" json:"-"`
	Wishlists []Wishlist `gorm:"foreignKey:HotelID" json:"-"`
}
