package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"hotel-booking-api/models"
	"hotel-booking-api/utils"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}

	// One connection so every goroutine sees the same in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("raw db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Hotel{},
		&models.Room{},
		&models.Booking{},
		&models.Payment{},
		&models.Review{},
		&models.Wishlist{},
		&models.AILog{},
	); err != nil {
		t.Fatalf("migrating test db: %v", err)
	}
	return db
}

func newTestBookingService(t *testing.T) (*BookingService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewBookingService(db, utils.NewCache(5*time.Minute)), db
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Email: email, HashedPassword: "x", FullName: "Test Guest"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	return user
}

func seedHotelWithRoom(t *testing.T, db *gorm.DB, basePrice float64, maxGuests int) (models.Hotel, models.Room) {
	t.Helper()
	hotel := models.Hotel{
		Name:    "Saigon Riverside Hotel",
		Address: "12 Ton Duc Thang",
		City:    "Ho Chi Minh City",
		Country: "Vietnam",
	}
	if err := db.Create(&hotel).Error; err != nil {
		t.Fatalf("seeding hotel: %v", err)
	}
	room := models.Room{
		HotelID:   hotel.ID,
		Name:      "Deluxe River View",
		RoomType:  "deluxe",
		MaxGuests: maxGuests,
		BasePrice: basePrice,
	}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("seeding room: %v", err)
	}
	return hotel, room
}

func futureDate(daysAhead int) time.Time {
	return time.Now().UTC().AddDate(0, 0, daysAhead).Truncate(24 * time.Hour).Add(24 * time.Hour)
}

func TestCreateBookingSevenNightStay(t *testing.T) {
	svc, db := newTestBookingService(t)
	user := seedUser(t, db, "guest@example.com")
	hotel, room := seedHotelWithRoom(t, db, 2000000, 2)

	checkIn := futureDate(30)
	booking, err := svc.CreateBooking(context.Background(), user.ID, CreateBookingInput{
		HotelID:      hotel.ID,
		RoomID:       room.ID,
		CheckInDate:  checkIn,
		CheckOutDate: checkIn.AddDate(0, 0, 7),
		Guests:       2,
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if booking.TotalPrice != 12600000 {
		t.Errorf("total = %v, want 12600000", booking.TotalPrice)
	}
	if booking.Status != models.BookingConfirmed {
		t.Errorf("status = %q, want confirmed", booking.Status)
	}
	if booking.PaymentStatus != models.PaymentPending {
		t.Errorf("payment status = %q, want pending", booking.PaymentStatus)
	}
	if booking.Room == nil || booking.Room.Hotel == nil {
		t.Error("room and hotel should be attached to the created booking")
	}
}

func TestCreateBookingRejectsOverlap(t *testing.T) {
	svc, db := newTestBookingService(t)
	user := seedUser(t, db, "guest@example.com")
	hotel, room := seedHotelWithRoom(t, db, 1000000, 2)

	base := futureDate(30)
	first := CreateBookingInput{
		HotelID:      hotel.ID,
		RoomID:       room.ID,
		CheckInDate:  base,
		CheckOutDate: base.AddDate(0, 0, 5),
		Guests:       2,
	}
	if _, err := svc.CreateBooking(context.Background(), user.ID, first); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	overlapping := first
	overlapping.CheckInDate = base.AddDate(0, 0, 2)
	overlapping.CheckOutDate = base.AddDate(0, 0, 8)
	if _, err := svc.CreateBooking(context.Background(), user.ID, overlapping); !errors.Is(err, ErrRoomUnavailable) {
		t.Errorf("overlapping booking err = %v, want ErrRoomUnavailable", err)
	}
}

func TestCreateBookingAllowsBackToBack(t *testing.T) {
	svc, db := newTestBookingService(t)
	user := seedUser(t, db, "guest@example.com")
	hotel, room := seedHotelWithRoom(t, db, 1000000, 2)

	base := futureDate(30)
	first := CreateBookingInput{
		HotelID:      hotel.ID,
		RoomID:       room.ID,
		CheckInDate:  base,
		CheckOutDate: base.AddDate(0, 0, 3),
		Guests:       1,
	}
	if _, err := svc.CreateBooking(context.Background(), user.ID, first); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	// New check-in on the previous check-out day is not a conflict.
	second := first
	second.CheckInDate = base.AddDate(0, 0, 3)
	second.CheckOutDate = base.AddDate(0, 0, 6)
	if _, err := svc.CreateBooking(context.Background(), user.ID, second); err != nil {
		t.Errorf("back-to-back booking err = %v, want nil", err)
	}
}

func TestCreateBookingConcurrentOneWinner(t *testing.T) {
	svc, db := newTestBookingService(t)
	user := seedUser(t, db, "guest@example.com")
	hotel, room := seedHotelWithRoom(t, db, 1000000, 2)

	base := futureDate(30)
	in := CreateBookingInput{
		HotelID:      hotel.ID,
		RoomID:       room.ID,
		CheckInDate:  base,
		CheckOutDate: base.AddDate(0, 0, 4),
		Guests:       2,
	}

	const attempts = 10
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		refused int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateBooking(context.Background(), user.ID, in)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, ErrRoomUnavailable):
				refused++
			default:
				t.Errorf("unexpected err: %v", err)
			}
		}()
	}
	wg.Wait()

	if created != 1 || refused != attempts-1 {
		t.Errorf("created = %d refused = %d, want 1 and %d", created, refused, attempts-1)
	}

	var count int64
	if err := db.Model(&models.Booking{}).Where("room_id = ?", room.ID).Count(&count).Error; err != nil {
		t.Fatalf("counting bookings: %v", err)
	}
	if count != 1 {
		t.Errorf("persisted bookings = %d, want 1", count)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	svc, db := newTestBookingService(t)
	user := seedUser(t, db, "guest@example.com")
	hotel, room := seedHotelWithRoom(t, db, 1000000, 2)

	base := futureDate(30)
	valid := CreateBookingInput{
		HotelID:      hotel.ID,
		RoomID:       room.ID,
		CheckInDate:  base,
		CheckOutDate: base.AddDate(0, 0, 2),
		Guests:       2,
	}

	t.Run("check-out before check-in", func(t *testing.T) {
		in := valid
		in.CheckOutDate = base.AddDate(0, 0, -1)
		if _, err := svc.CreateBooking(context.Background(), user.ID, in); !errors.Is(err, ErrInvalidDateRange) {
			t.Errorf("err = %v, want ErrInvalidDateRange", err)
		}
	})

	t.Run("past check-in", func(t *testing.T) {
		in := valid
		in.CheckInDate = time.Now().UTC().AddDate(0, 0, -2)
		in.CheckOutDate = time.Now().UTC().AddDate(0, 0, 2)
		if _, err := svc.CreateBooking(context.Background(), user.ID, in); !errors.Is(err, ErrPastCheckIn) {
			t.Errorf("err = %v, want ErrPastCheckIn", err)
		}
	})

	t.Run("too many guests", func(t *testing.T) {
		in := valid
		in.Guests = 3
		if _, err := svc.CreateBooking(context.Background(), user.ID, in); !errors.Is(err, ErrGuestCountExceeded) {
			t.Errorf("err = %v, want ErrGuestCountExceeded", err)
		}
	})

	t.Run("unknown hotel", func(t *testing.T) {
		in := valid
		in.HotelID = hotel.ID + 100
		if _, err := svc.CreateBooking(context.Background(), user.ID, in); !errors.Is(err, ErrHotelNotFound) {
			t.Errorf("err = %v, want ErrHotelNotFound", err)
		}
	})

	t.Run("room not in hotel", func(t *testing.T) {
		other := models.Hotel{Name: "Other", Address: "1 Elsewhere", City: "Hanoi", Country: "Vietnam"}
		if err := db.Create(&other).Error; err != nil {
			t.Fatalf("seeding second hotel: %v", err)
		}
		in := valid
		in.HotelID = other.ID
		if _, err := svc.CreateBooking(context.Background(), user.ID, in); !errors.Is(err, ErrRoomNotFound) {
			t.Errorf("err = %v, want ErrRoomNotFound", err)
		}
	})
}

func TestRoomAvailableExcludesOwnBooking(t *testing.T) {
	svc, db := newTestBookingService(t)
	user := seedUser(t, db, "guest@example.com")
	hotel, room := seedHotelWithRoom(t, db, 1000000, 2)

	base := futureDate(30)
	booking, err := svc.CreateBooking(context.Background(), user.ID, CreateBookingInput{
		HotelID:      hotel.ID,
		RoomID:       room.ID,
		CheckInDate:  base,
		CheckOutDate: base.AddDate(0, 0, 4),
		Guests:       2,
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	// A booking blocks its own interval unless excluded from the scan, as a
	// reschedule against itself would be.
	available, err := svc.roomAvailable(db, room.ID, base, base.AddDate(0, 0, 4), 0)
	if err != nil {
		t.Fatalf("roomAvailable: %v", err)
	}
	if available {
		t.Error("interval should be blocked by the existing booking")
	}

	available, err = svc.roomAvailable(db, room.ID, base, base.AddDate(0, 0, 4), booking.ID)
	if err != nil {
		t.Fatalf("roomAvailable with exclusion: %v", err)
	}
	if !available {
		t.Error("interval should be free when the booking itself is excluded")
	}
}

func TestBookingScenarioSameRoom(t *testing.T) {
	svc, db := newTestBookingService(t)
	user := seedUser(t, db, "guest@example.com")
	hotel, room := seedHotelWithRoom(t, db, 2000000, 2)

	base := futureDate(60)
	seven := CreateBookingInput{
		HotelID:      hotel.ID,
		RoomID:       room.ID,
		CheckInDate:  base,
		CheckOutDate: base.AddDate(0, 0, 7),
		Guests:       2,
	}
	first, err := svc.CreateBooking(context.Background(), user.ID, seven)
	if err != nil {
		t.Fatalf("seven-night booking: %v", err)
	}
	if first.TotalPrice != 12600000 {
		t.Errorf("total = %v, want 12600000", first.TotalPrice)
	}

	inside := seven
	inside.CheckInDate = base.AddDate(0, 0, 2)
	inside.CheckOutDate = base.AddDate(0, 0, 4)
	if _, err := svc.CreateBooking(context.Background(), user.ID, inside); !errors.Is(err, ErrRoomUnavailable) {
		t.Errorf("contained interval err = %v, want ErrRoomUnavailable", err)
	}

	after := seven
	after.CheckInDate = base.AddDate(0, 0, 7)
	after.CheckOutDate = base.AddDate(0, 0, 9)
	if _, err := svc.CreateBooking(context.Background(), user.ID, after); err != nil {
		t.Errorf("back-to-back follow-up err = %v, want nil", err)
	}
}

func TestCancelFreesInterval(t *testing.T) {
	svc, db := newTestBookingService(t)
	user := seedUser(t, db, "guest@example.com")
	hotel, room := seedHotelWithRoom(t, db, 1000000, 2)

	base := futureDate(30)
	in := CreateBookingInput{
		HotelID:      hotel.ID,
		RoomID:       room.ID,
		CheckInDate:  base,
		CheckOutDate: base.AddDate(0, 0, 4),
		Guests:       2,
	}
	booking, err := svc.CreateBooking(context.Background(), user.ID, in)
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	cancelled, err := svc.Cancel(booking.ID, user.ID, "change of plans")
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if cancelled.Status != models.BookingCancelled {
		t.Errorf("status = %q, want cancelled", cancelled.Status)
	}
	if cancelled.CancellationDate == nil {
		t.Error("cancellation date should be set")
	}

	if _, err := svc.Cancel(booking.ID, user.ID, ""); !errors.Is(err, ErrAlreadyCancelled) {
		t.Errorf("second cancel err = %v, want ErrAlreadyCancelled", err)
	}

	// The freed interval can be booked again.
	if _, err := svc.CreateBooking(context.Background(), user.ID, in); err != nil {
		t.Errorf("rebooking freed interval err = %v, want nil", err)
	}
}

func TestCancelRefundsPaidBooking(t *testing.T) {
	svc, db := newTestBookingService(t)
	user := seedUser(t, db, "guest@example.com")
	hotel, room := seedHotelWithRoom(t, db, 1000000, 2)

	base := futureDate(30)
	booking, err := svc.CreateBooking(context.Background(), user.ID, CreateBookingInput{
		HotelID:      hotel.ID,
		RoomID:       room.ID,
		CheckInDate:  base,
		CheckOutDate: base.AddDate(0, 0, 3),
		Guests:       2,
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if _, err := svc.ConfirmPayment(user.ID, CreatePaymentInput{
		BookingID:     booking.ID,
		Amount:        booking.TotalPrice,
		PaymentMethod: "credit_card",
	}); err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}

	cancelled, err := svc.Cancel(booking.ID, user.ID, "")
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if cancelled.PaymentStatus != models.PaymentRefunded {
		t.Errorf("payment status = %q, want refunded", cancelled.PaymentStatus)
	}
	if cancelled.RefundAmount != booking.TotalPrice {
		t.Errorf("refund = %v, want %v", cancelled.RefundAmount, booking.TotalPrice)
	}
}

func TestConfirmPayment(t *testing.T) {
	svc, db := newTestBookingService(t)
	user := seedUser(t, db, "guest@example.com")
	hotel, room := seedHotelWithRoom(t, db, 1000000, 2)

	base := futureDate(30)
	booking, err := svc.CreateBooking(context.Background(), user.ID, CreateBookingInput{
		HotelID:      hotel.ID,
		RoomID:       room.ID,
		CheckInDate:  base,
		CheckOutDate: base.AddDate(0, 0, 3),
		Guests:       2,
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	payment, err := svc.ConfirmPayment(user.ID, CreatePaymentInput{
		BookingID:     booking.ID,
		Amount:        booking.TotalPrice,
		PaymentMethod: "credit_card",
	})
	if err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}
	if payment.Status != models.PaymentTxCompleted {
		t.Errorf("payment status = %q, want completed", payment.Status)
	}
	if payment.TransactionID == "" {
		t.Error("transaction id should be generated")
	}
	if payment.Currency != "VND" {
		t.Errorf("currency = %q, want default VND", payment.Currency)
	}

	updated, err := svc.GetForUser(booking.ID, user.ID)
	if err != nil {
		t.Fatalf("GetForUser: %v", err)
	}
	if updated.PaymentStatus != models.PaymentPaid {
		t.Errorf("booking payment status = %q, want paid", updated.PaymentStatus)
	}

	if _, err := svc.ConfirmPayment(user.ID, CreatePaymentInput{
		BookingID:     booking.ID,
		Amount:        booking.TotalPrice,
		PaymentMethod: "credit_card",
	}); !errors.Is(err, ErrPaymentExists) {
		t.Errorf("second payment err = %v, want ErrPaymentExists", err)
	}
}

func TestGetForUserScopedToOwner(t *testing.T) {
	svc, db := newTestBookingService(t)
	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")
	hotel, room := seedHotelWithRoom(t, db, 1000000, 2)

	base := futureDate(30)
	booking, err := svc.CreateBooking(context.Background(), owner.ID, CreateBookingInput{
		HotelID:      hotel.ID,
		RoomID:       room.ID,
		CheckInDate:  base,
		CheckOutDate: base.AddDate(0, 0, 2),
		Guests:       1,
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if _, err := svc.GetForUser(booking.ID, other.ID); !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("foreign booking err = %v, want ErrBookingNotFound", err)
	}
	if _, err := svc.Cancel(booking.ID, other.ID, ""); !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("foreign cancel err = %v, want ErrBookingNotFound", err)
	}
}

func TestCheckAvailabilityCaches(t *testing.T) {
	svc, db := newTestBookingService(t)
	user := seedUser(t, db, "guest@example.com")
	hotel, room := seedHotelWithRoom(t, db, 1000000, 2)

	base := futureDate(30)
	end := base.AddDate(0, 0, 3)

	res, err := svc.CheckAvailability(room.ID, base, end)
	if err != nil {
		t.Fatalf("CheckAvailability: %v", err)
	}
	if !res.Available {
		t.Error("fresh room should be available")
	}
	if res.TotalPrice != 2850000 {
		t.Errorf("total = %d, want 2850000", res.TotalPrice)
	}

	if _, err := svc.CreateBooking(context.Background(), user.ID, CreateBookingInput{
		HotelID:      hotel.ID,
		RoomID:       room.ID,
		CheckInDate:  base,
		CheckOutDate: end,
		Guests:       2,
	}); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	// The cached answer survives the booking; it is advisory only.
	cached, err := svc.CheckAvailability(room.ID, base, end)
	if err != nil {
		t.Fatalf("cached CheckAvailability: %v", err)
	}
	if !cached.Available {
		t.Error("expected the stale cached answer")
	}

	svc.Availability.Clear()
	fresh, err := svc.CheckAvailability(room.ID, base, end)
	if err != nil {
		t.Fatalf("fresh CheckAvailability: %v", err)
	}
	if fresh.Available {
		t.Error("room should be unavailable after the booking")
	}
}

func TestBulkAvailabilitySkipsUnknownRooms(t *testing.T) {
	svc, db := newTestBookingService(t)
	_, room := seedHotelWithRoom(t, db, 1000000, 2)

	base := futureDate(30)
	results, err := svc.BulkAvailability([]uint{room.ID, room.ID + 99}, base, base.AddDate(0, 0, 2))
	if err != nil {
		t.Fatalf("BulkAvailability: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	if results[0].RoomID != room.ID {
		t.Errorf("room id = %d, want %d", results[0].RoomID, room.ID)
	}
}
