package services

import (
	"errors"
	"time"

	"hotel-booking-api/models"

	"gorm.io/gorm"
)

type AdminService struct {
	DB *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{DB: db}
}

type DashboardStats struct {
	TotalUsers        int64   `json:"total_users"`
	TotalBookings     int64   `json:"total_bookings"`
	TotalHotels       int64   `json:"total_hotels"`
	TotalRevenue      float64 `json:"total_revenue"`
	PendingBookings   int64   `json:"pending_bookings"`
	ConfirmedBookings int64   `json:"confirmed_bookings"`
}

func (s *AdminService) Dashboard() (DashboardStats, error) {
	var stats DashboardStats

	if err := s.DB.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return stats, err
	}
	if err := s.DB.Model(&models.Booking{}).Count(&stats.TotalBookings).Error; err != nil {
		return stats, err
	}
	if err := s.DB.Model(&models.Hotel{}).Count(&stats.TotalHotels).Error; err != nil {
		return stats, err
	}

	var revenue *float64
	if err := s.DB.Model(&models.Booking{}).
		Where("status <> ?", models.BookingCancelled).
		Select("SUM(total_price)").
		Scan(&revenue).Error; err != nil {
		return stats, err
	}
	if revenue != nil {
		stats.TotalRevenue = *revenue
	}

	if err := s.DB.Model(&models.Booking{}).
		Where("status = ?", models.BookingPending).
		Count(&stats.PendingBookings).Error; err != nil {
		return stats, err
	}
	if err := s.DB.Model(&models.Booking{}).
		Where("status = ?", models.BookingConfirmed).
		Count(&stats.ConfirmedBookings).Error; err != nil {
		return stats, err
	}
	return stats, nil
}

func (s *AdminService) ListUsers(skip, limit int) ([]models.User, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var users []models.User
	err := s.DB.Order("created_at DESC").Offset(skip).Limit(limit).Find(&users).Error
	return users, err
}

func (s *AdminService) DeleteUser(id uint) error {
	res := s.DB.Delete(&models.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *AdminService) UpdateUserRole(id uint, role string) (models.User, error) {
	if role != models.RoleUser && role != models.RoleAdmin {
		return models.User{}, ErrInvalidRole
	}
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	if err := s.DB.Model(&user).Update("role", role).Error; err != nil {
		return models.User{}, err
	}
	user.Role = role
	return user, nil
}

// AdminBooking is the denormalized row shown in the back-office booking
// list.
type AdminBooking struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	UserEmail     string    `json:"user_email"`
	UserName      string    `json:"user_name"`
	HotelID       uint      `json:"hotel_id"`
	HotelName     string    `json:"hotel_name"`
	RoomID        uint      `json:"room_id"`
	RoomName      string    `json:"room_name"`
	CheckInDate   time.Time `json:"check_in_date"`
	CheckOutDate  time.Time `json:"check_out_date"`
	Guests        int       `json:"guests"`
	TotalPrice    float64   `json:"total_price"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	CreatedAt     time.Time `json:"created_at"`
}

func (s *AdminService) ListBookings(status string, skip, limit int) ([]AdminBooking, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	q := s.DB.Table("bookings").
		Select(`bookings.id, bookings.user_id, users.email AS user_email,
			users.full_name AS user_name, bookings.hotel_id, hotels.name AS hotel_name,
			bookings.room_id, rooms.name AS room_name, bookings.check_in_date,
			bookings.check_out_date, bookings.guests, bookings.total_price,
			bookings.status, bookings.payment_status, bookings.created_at`).
		Joins("JOIN users ON users.id = bookings.user_id").
		Joins("JOIN hotels ON hotels.id = bookings.hotel_id").
		Joins("JOIN rooms ON rooms.id = bookings.room_id").
		Order("bookings.created_at DESC")
	if status != "" {
		q = q.Where("bookings.status = ?", status)
	}

	var rows []AdminBooking
	err := q.Offset(skip).Limit(limit).Scan(&rows).Error
	return rows, err
}

func (s *AdminService) DeleteBooking(id uint) error {
	res := s.DB.Delete(&models.Booking{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}
