package services

import "errors"

// Sentinel errors shared across services. Controllers translate these into
// HTTP status codes: validation errors to 400, not-found to 404 and
// ErrRoomUnavailable to 409 so clients can tell "pick different dates" apart
// from "this resource doesn't exist".
var (
	ErrInvalidDateRange   = errors.New("check-out date must be after check-in date")
	ErrPastCheckIn        = errors.New("check-in date cannot be in the past")
	ErrGuestCountExceeded = errors.New("guest count exceeds room capacity")

	ErrHotelNotFound   = errors.New("hotel not found")
	ErrRoomNotFound    = errors.New("room not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrUserNotFound    = errors.New("user not found")

	ErrRoomUnavailable = errors.New("room already booked for the selected dates")

	ErrAlreadyCancelled = errors.New("booking already cancelled")
	ErrPaymentExists    = errors.New("payment already exists for this booking")
	ErrEmailTaken       = errors.New("email already registered")
	ErrBadCredentials   = errors.New("incorrect email or password")
	ErrInvalidRole      = errors.New("role must be user or admin")
)
