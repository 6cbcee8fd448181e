package controllers

import (
	"errors"
	"net/http"

	"hotel-booking-api/services"
)

// statusFromError maps the service error taxonomy onto HTTP statuses:
// validation 400, not-found 404, booking conflict 409, anything else 500.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidDateRange),
		errors.Is(err, services.ErrPastCheckIn),
		errors.Is(err, services.ErrGuestCountExceeded),
		errors.Is(err, services.ErrAlreadyCancelled),
		errors.Is(err, services.ErrPaymentExists),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrInvalidRole):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrHotelNotFound),
		errors.Is(err, services.ErrRoomNotFound),
		errors.Is(err, services.ErrBookingNotFound),
		errors.Is(err, services.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrRoomUnavailable):
		return http.StatusConflict
	case errors.Is(err, services.ErrBadCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage hides internal details behind a generic message for 500s.
func errorMessage(status int, err error) string {
	if status == http.StatusInternalServerError {
		return "Internal Server Error"
	}
	return err.Error()
}
