package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"hotel-booking-api/middleware"
	"hotel-booking-api/models"
	"hotel-booking-api/services"
	"hotel-booking-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type BookingController struct {
	Svc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{Svc: svc}
}

// parseDate accepts a date-only or an RFC 3339 timestamp and normalizes the
// result to UTC.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// GetAvailability handles GET /api/bookings/availability.
func (bc *BookingController) GetAvailability(c *gin.Context) {
	roomID, err := strconv.ParseUint(c.Query("room_id"), 10, 64)
	if err != nil || roomID == 0 {
		utils.JSONError(c, http.StatusBadRequest, "room_id is required")
		return
	}
	checkIn, err := parseDate(c.Query("check_in_date"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid check_in_date")
		return
	}
	checkOut, err := parseDate(c.Query("check_out_date"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid check_out_date")
		return
	}

	res, err := bc.Svc.CheckAvailability(uint(roomID), checkIn, checkOut)
	if err != nil {
		status := statusFromError(err)
		utils.JSONError(c, status, errorMessage(status, err))
		return
	}
	c.JSON(http.StatusOK, res)
}

type bulkAvailabilityRequest struct {
	RoomIDs      []uint `json:"room_ids" binding:"required"`
	CheckInDate  string `json:"check_in_date" binding:"required"`
	CheckOutDate string `json:"check_out_date" binding:"required"`
}

// BulkAvailability handles POST /api/bookings/availability/bulk.
func (bc *BookingController) BulkAvailability(c *gin.Context) {
	var req bulkAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	checkIn, err := parseDate(req.CheckInDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid check_in_date")
		return
	}
	checkOut, err := parseDate(req.CheckOutDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid check_out_date")
		return
	}

	results, err := bc.Svc.BulkAvailability(req.RoomIDs, checkIn, checkOut)
	if err != nil {
		status := statusFromError(err)
		utils.JSONError(c, status, errorMessage(status, err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

type createBookingRequest struct {
	HotelID         uint   `json:"hotel_id" binding:"required"`
	RoomID          uint   `json:"room_id" binding:"required"`
	CheckInDate     string `json:"check_in_date" binding:"required"`
	CheckOutDate    string `json:"check_out_date" binding:"required"`
	Guests          int    `json:"guests" binding:"required,min=1"`
	SpecialRequests string `json:"special_requests"`
}

// Create handles POST /api/bookings.
func (bc *BookingController) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	checkIn, err := parseDate(req.CheckInDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid check_in_date")
		return
	}
	checkOut, err := parseDate(req.CheckOutDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid check_out_date")
		return
	}

	booking, err := bc.Svc.CreateBooking(c.Request.Context(), user.ID, services.CreateBookingInput{
		HotelID:         req.HotelID,
		RoomID:          req.RoomID,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		Guests:          req.Guests,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		status := statusFromError(err)
		utils.JSONError(c, status, errorMessage(status, err))
		return
	}

	go bc.sendConfirmation(user, booking)
	c.JSON(http.StatusCreated, booking)
}

func (bc *BookingController) sendConfirmation(user models.User, booking models.Booking) {
	m := utils.BookingMail{
		BookingID:    booking.ID,
		GuestName:    user.FullName,
		CheckInDate:  booking.CheckInDate.Format("2006-01-02"),
		CheckOutDate: booking.CheckOutDate.Format("2006-01-02"),
		Guests:       booking.Guests,
		TotalPrice:   booking.TotalPrice,
	}
	if booking.Room != nil {
		m.RoomName = booking.Room.Name
		if booking.Room.Hotel != nil {
			m.HotelName = booking.Room.Hotel.Name
		}
	}
	_ = utils.SendBookingConfirmation(user.Email, m)
}

// List handles GET /api/bookings.
func (bc *BookingController) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	bookings, err := bc.Svc.ListForUser(user.ID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// Get handles GET /api/bookings/:id.
func (bc *BookingController) Get(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking id")
		return
	}

	booking, err := bc.Svc.GetForUser(uint(id), user.ID)
	if err != nil {
		status := statusFromError(err)
		utils.JSONError(c, status, errorMessage(status, err))
		return
	}
	c.JSON(http.StatusOK, booking)
}

type cancelBookingRequest struct {
	CancellationReason string `json:"cancellation_reason"`
}

// Cancel handles PATCH /api/bookings/:id/cancel.
func (bc *BookingController) Cancel(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking id")
		return
	}

	var req cancelBookingRequest
	_ = c.ShouldBindJSON(&req)

	booking, err := bc.Svc.Cancel(uint(id), user.ID, req.CancellationReason)
	if err != nil {
		status := statusFromError(err)
		utils.JSONError(c, status, errorMessage(status, err))
		return
	}

	go bc.sendCancellation(user, booking)
	c.JSON(http.StatusOK, booking)
}

func (bc *BookingController) sendCancellation(user models.User, booking models.Booking) {
	m := utils.BookingMail{
		BookingID:    booking.ID,
		GuestName:    user.FullName,
		CheckInDate:  booking.CheckInDate.Format("2006-01-02"),
		CheckOutDate: booking.CheckOutDate.Format("2006-01-02"),
		Guests:       booking.Guests,
		TotalPrice:   booking.TotalPrice,
		RefundAmount: booking.RefundAmount,
	}
	if booking.Room != nil {
		m.RoomName = booking.Room.Name
		if booking.Room.Hotel != nil {
			m.HotelName = booking.Room.Hotel.Name
		}
	}
	_ = utils.SendBookingCancellation(user.Email, m)
}

type createPaymentRequest struct {
	BookingID     uint           `json:"booking_id" binding:"required"`
	Amount        float64        `json:"amount" binding:"required,gt=0"`
	Currency      string         `json:"currency"`
	PaymentMethod string         `json:"payment_method" binding:"required"`
	Metadata      datatypes.JSON `json:"payment_metadata"`
}

// CreatePayment handles POST /api/bookings/payment.
func (bc *BookingController) CreatePayment(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	payment, err := bc.Svc.ConfirmPayment(user.ID, services.CreatePaymentInput{
		BookingID:     req.BookingID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		PaymentMethod: req.PaymentMethod,
		Metadata:      req.Metadata,
	})
	if err != nil {
		status := statusFromError(err)
		utils.JSONError(c, status, errorMessage(status, err))
		return
	}
	c.JSON(http.StatusCreated, payment)
}
