package models

import "time"

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"

	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

// Booking stores a half-open stay interval [CheckInDate, CheckOutDate).
// For one room, no two rows with status pending or confirmed may overlap;
// the composite index backs the conflict scan that enforces it.
type Booking struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	UserID  uint `gorm:"not null;index" json:"user_id"`
	HotelID uint `gorm:"not null;index" json:"hotel_id"`
	RoomID  uint `gorm:"not null;index:idx_room_stay,priority:1" json:"room_id"`

	CheckInDate  time.Time `gorm:"column:check_in_date;not null;index:idx_room_stay,priority:2" json:"check_in_date"`
	CheckOutDate time.Time `gorm:"column:check_out_date;not null;index:idx_room_stay,priority:3" json:"check_out_date"`
	Guests       int       `gorm:"not null;default:1" json:"guests"`
	TotalPrice   float64   `gorm:"column:total_price;not null" json:"total_price"`

	Status        string `gorm:"size:50;default:'pending';index:idx_room_stay,priority:4" json:"status"`
	PaymentStatus string `gorm:"column:payment_status;size:50;default:'pending'" json:"payment_status"`
	PaymentMethod string `gorm:"column:payment_method;size:50" json:"payment_method,omitempty"`

	SpecialRequests    string     `gorm:"column:special_requests;type:text" json:"special_requests,omitempty"`
	CancellationDate   *time.Time `gorm:"column:cancellation_date" json:"cancellation_date,omitempty"`
	RefundAmount       float64    `gorm:"column:refund_amount;default:0" json:"refund_amount"`
	CancellationReason string     `gorm:"column:cancellation_reason;type:text" json:"cancellation_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User    *User    `gorm:"foreignKey:UserID" json:"-"`
	Room    *Room    `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Payment *Payment `gorm:"foreignKey:BookingID" json:"payment,omitempty"`
}
