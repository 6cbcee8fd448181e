package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Email          string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	HashedPassword string `gorm:"column:hashed_password;size:500;not null" json:"-"`
	FullName       string `gorm:"column:full_name;size:255;not null" json:"full_name"`
	Phone          string `gorm:"size:20" json:"phone,omitempty"`
	Avatar         string `gorm:"size:500" json:"avatar,omitempty"`
	Role           string `gorm:"size:50;default:'user'" json:"role"`
	EmailVerified  bool   `gorm:"column:email_verified;default:false" json:"email_verified"`

	// Language, currency and similar client-side settings.
	Preferences datatypes.JSON `json:"preferences,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Bookings  []Booking  `gorm:"foreignKey:UserID" json:"-"`
	Reviews   []Review   `gorm:"foreignKey:UserID" json:"-"`
	Wishlists []Wishlist `gorm:"foreignKey:UserID" json:"-"`
}
