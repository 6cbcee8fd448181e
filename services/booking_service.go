package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-booking-api/models"
	"hotel-booking-api/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingService owns the booking lifecycle: the locked create transaction,
// cancellation, payment confirmation and the cached availability reads.
type BookingService struct {
	DB           *gorm.DB
	Locks        *RoomLocker
	Availability *utils.Cache
}

func NewBookingService(db *gorm.DB, availabilityCache *utils.Cache) *BookingService {
	return &BookingService{
		DB:           db,
		Locks:        NewRoomLocker(),
		Availability: availabilityCache,
	}
}

type CreateBookingInput struct {
	HotelID         uint
	RoomID          uint
	CheckInDate     time.Time
	CheckOutDate    time.Time
	Guests          int
	SpecialRequests string
}

// CreateBooking runs the whole creation sequence: validate, lock the room,
// re-check availability inside the lock, price, insert, commit. Exactly one
// of two concurrent overlapping requests for the same room can succeed; the
// loser gets ErrRoomUnavailable. A caller cancelled while waiting for the
// room lock leaves no partial rows behind.
func (s *BookingService) CreateBooking(ctx context.Context, userID uint, in CreateBookingInput) (models.Booking, error) {
	if !in.CheckOutDate.After(in.CheckInDate) {
		return models.Booking{}, ErrInvalidDateRange
	}
	// Dates are normalized to UTC at the API boundary, so "now" is taken in
	// UTC as well; no naive/aware branching.
	if in.CheckInDate.Before(time.Now().UTC()) {
		return models.Booking{}, ErrPastCheckIn
	}

	var hotel models.Hotel
	if err := s.DB.WithContext(ctx).First(&hotel, in.HotelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Booking{}, ErrHotelNotFound
		}
		return models.Booking{}, fmt.Errorf("checking hotel: %w", err)
	}

	unlock, err := s.Locks.Lock(ctx, in.RoomID)
	if err != nil {
		return models.Booking{}, err
	}
	defer unlock()

	var booking models.Booking
	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		room, err := s.lockRoom(tx, in.RoomID, in.HotelID)
		if err != nil {
			return err
		}

		if in.Guests > room.MaxGuests {
			return ErrGuestCountExceeded
		}

		available, err := s.roomAvailable(tx, in.RoomID, in.CheckInDate, in.CheckOutDate, 0)
		if err != nil {
			return err
		}
		if !available {
			return ErrRoomUnavailable
		}

		quote, err := Quote(room.BasePrice, in.CheckInDate, in.CheckOutDate)
		if err != nil {
			return err
		}

		booking = models.Booking{
			UserID:          userID,
			HotelID:         in.HotelID,
			RoomID:          in.RoomID,
			CheckInDate:     in.CheckInDate,
			CheckOutDate:    in.CheckOutDate,
			Guests:          in.Guests,
			TotalPrice:      float64(quote.Total),
			Status:          models.BookingConfirmed,
			PaymentStatus:   models.PaymentPending,
			SpecialRequests: in.SpecialRequests,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return fmt.Errorf("inserting booking: %w", err)
		}

		room.Hotel = &hotel
		booking.Room = &room
		return nil
	})
	if txErr != nil {
		return models.Booking{}, txErr
	}
	return booking, nil
}

// lockRoom reads the room row with an exclusive, transaction-scoped lock so
// the availability check and the insert behave as one atomic step against
// other processes sharing the database.
func (s *BookingService) lockRoom(tx *gorm.DB, roomID, hotelID uint) (models.Room, error) {
	q := tx.Where("id = ? AND hotel_id = ?", roomID, hotelID)
	// SQLite has no FOR UPDATE in its grammar; there the in-process room
	// lock held by CreateBooking provides the per-room serialization.
	if tx.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var room models.Room
	if err := q.First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Room{}, ErrRoomNotFound
		}
		return models.Room{}, fmt.Errorf("locking room: %w", err)
	}
	return room, nil
}

// roomAvailable reports whether [checkIn, checkOut) is free on the room.
// Two intervals overlap iff a_start < b_end AND a_end > b_start, which
// admits back-to-back stays. Only pending and confirmed bookings block;
// excludeBookingID omits one booking from the scan (rescheduling against
// itself). Must run on the caller's transaction to be meaningful under
// concurrency.
func (s *BookingService) roomAvailable(tx *gorm.DB, roomID uint, checkIn, checkOut time.Time, excludeBookingID uint) (bool, error) {
	q := tx.Model(&models.Booking{}).
		Where("room_id = ?", roomID).
		Where("status IN ?", []string{models.BookingPending, models.BookingConfirmed}).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn)
	if excludeBookingID != 0 {
		q = q.Where("id <> ?", excludeBookingID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("scanning conflicts: %w", err)
	}
	return count == 0, nil
}

// AvailabilityResult is the read-only availability + pricing payload served
// by the availability endpoints.
type AvailabilityResult struct {
	RoomID                uint    `json:"room_id"`
	RoomName              string  `json:"room_name,omitempty"`
	Available             bool    `json:"available"`
	BasePrice             float64 `json:"base_price"`
	Nights                int     `json:"nights"`
	TotalBeforeDiscount   float64 `json:"total_price_before_discount"`
	DiscountRate          float64 `json:"discount_rate"`
	TotalPrice            int64   `json:"total_price"`
	PerNightAfterDiscount int64   `json:"price_per_night_after_discount"`
	CheckInDate           string  `json:"check_in_date"`
	CheckOutDate          string  `json:"check_out_date"`
}

// CheckAvailability serves the public availability lookup through the TTL
// cache. It reads unlocked state: the answer is advisory and the create
// path always re-checks under the lock.
func (s *BookingService) CheckAvailability(roomID uint, checkIn, checkOut time.Time) (AvailabilityResult, error) {
	key := utils.CacheKey("availability", roomID, checkIn.Format(time.RFC3339), checkOut.Format(time.RFC3339))
	if cached, ok := s.Availability.Get(key); ok {
		if res, ok := cached.(AvailabilityResult); ok {
			return res, nil
		}
	}

	var room models.Room
	if err := s.DB.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AvailabilityResult{}, ErrRoomNotFound
		}
		return AvailabilityResult{}, fmt.Errorf("loading room: %w", err)
	}

	available, err := s.roomAvailable(s.DB, roomID, checkIn, checkOut, 0)
	if err != nil {
		return AvailabilityResult{}, err
	}

	quote, err := Quote(room.BasePrice, checkIn, checkOut)
	if err != nil {
		return AvailabilityResult{}, err
	}

	res := AvailabilityResult{
		RoomID:                roomID,
		RoomName:              room.Name,
		Available:             available,
		BasePrice:             quote.BasePrice,
		Nights:                quote.Nights,
		TotalBeforeDiscount:   quote.TotalBeforeDiscount,
		DiscountRate:          quote.DiscountRate,
		TotalPrice:            quote.Total,
		PerNightAfterDiscount: quote.PerNightAfterDiscount,
		CheckInDate:           checkIn.Format(time.RFC3339),
		CheckOutDate:          checkOut.Format(time.RFC3339),
	}
	s.Availability.Set(key, res)
	return res, nil
}

// BulkAvailability runs the single-room computation for each id. Unknown
// room ids are skipped rather than failing the whole batch.
func (s *BookingService) BulkAvailability(roomIDs []uint, checkIn, checkOut time.Time) ([]AvailabilityResult, error) {
	results := make([]AvailabilityResult, 0, len(roomIDs))
	for _, id := range roomIDs {
		res, err := s.CheckAvailability(id, checkIn, checkOut)
		if err != nil {
			if errors.Is(err, ErrRoomNotFound) {
				continue
			}
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (s *BookingService) ListForUser(userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (s *BookingService) GetForUser(bookingID, userID uint) (models.Booking, error) {
	var booking models.Booking
	err := s.DB.Preload("Room").Preload("Payment").
		Where("id = ? AND user_id = ?", bookingID, userID).
		First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Booking{}, ErrBookingNotFound
	}
	return booking, err
}

// Cancel flips an owned booking to cancelled, freeing its interval for new
// bookings. Cancellation only removes a blocker, so no room lock is needed
// beyond the row update itself. A paid booking is marked refunded in full.
func (s *BookingService) Cancel(bookingID, userID uint, reason string) (models.Booking, error) {
	var booking models.Booking
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Room").Preload("Room.Hotel").
			Where("id = ? AND user_id = ?", bookingID, userID).First(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if booking.Status == models.BookingCancelled {
			return ErrAlreadyCancelled
		}

		now := time.Now().UTC()
		booking.Status = models.BookingCancelled
		booking.CancellationDate = &now
		booking.CancellationReason = strings.TrimSpace(reason)
		if booking.PaymentStatus == models.PaymentPaid {
			booking.PaymentStatus = models.PaymentRefunded
			booking.RefundAmount = booking.TotalPrice
		}
		return tx.Save(&booking).Error
	})
	if txErr != nil {
		return models.Booking{}, txErr
	}
	return booking, nil
}

type CreatePaymentInput struct {
	BookingID     uint
	Amount        float64
	Currency      string
	PaymentMethod string
	Metadata      datatypes.JSON
}

// ConfirmPayment records a payment for an owned booking and moves it to
// paid/confirmed. Confirming a pending booking can never create an overlap
// because pending bookings already block availability.
func (s *BookingService) ConfirmPayment(userID uint, in CreatePaymentInput) (models.Payment, error) {
	var payment models.Payment
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.Where("id = ? AND user_id = ?", in.BookingID, userID).First(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		var existing models.Payment
		err := tx.Where("booking_id = ?", in.BookingID).First(&existing).Error
		if err == nil {
			return ErrPaymentExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		ref, err := transactionRef()
		if err != nil {
			return err
		}

		currency := in.Currency
		if currency == "" {
			currency = "VND"
		}
		payment = models.Payment{
			BookingID:     in.BookingID,
			Amount:        in.Amount,
			Currency:      currency,
			PaymentMethod: in.PaymentMethod,
			TransactionID: ref,
			Status:        models.PaymentTxCompleted,
			Metadata:      in.Metadata,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return fmt.Errorf("inserting payment: %w", err)
		}

		booking.PaymentStatus = models.PaymentPaid
		booking.PaymentMethod = in.PaymentMethod
		booking.Status = models.BookingConfirmed
		return tx.Save(&booking).Error
	})
	if txErr != nil {
		return models.Payment{}, txErr
	}
	return payment, nil
}

func transactionRef() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return "TXN" + strings.ToUpper(hex.EncodeToString(buf)), nil
}
