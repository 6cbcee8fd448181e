package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"hotel-booking-api/models"
	"hotel-booking-api/utils"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "UTC")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "hotel_booking")

	// Stored timestamps are UTC; loc=UTC keeps parseTime from shifting them.
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		user, pass, host, port, dbName,
	), nil
}

// ConnectDatabase opens the MySQL connection, runs migrations and seeds the
// initial data. The handle is stored in config.DB.
func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}
	DB = db

	if err := Migrate(DB); err != nil {
		return err
	}

	SeedDatabase(DB)
	return nil
}

// Migrate runs AutoMigrate in parent->child order.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Hotel{},
		&models.Room{},
		&models.Booking{},
		&models.Payment{},
		&models.Review{},
		&models.Wishlist{},
		&models.AILog{},
	)
}

// SeedDatabase creates the default admin account and a couple of demo hotels
// so a fresh database is immediately usable. Every step is idempotent.
func SeedDatabase(db *gorm.DB) {
	var adminCount int64
	db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&adminCount)
	if adminCount == 0 {
		password := envOrDefault("ADMIN_PASSWORD", "admin123")
		hash, err := utils.HashPassword(password)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.User{
				Email:          envOrDefault("ADMIN_EMAIL", "admin@bookingai.local"),
				HashedPassword: hash,
				FullName:       "Admin User",
				Role:           models.RoleAdmin,
				EmailVerified:  true,
			}
			if err := db.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	var hotelCount int64
	db.Model(&models.Hotel{}).Count(&hotelCount)
	if hotelCount > 0 {
		log.Println("Hotels already seeded")
		return
	}

	hotels := []models.Hotel{
		{
			Name:       "Saigon Riverside Hotel",
			Address:    "12 Ton Duc Thang",
			City:       "Ho Chi Minh City",
			Country:    "Vietnam",
			StarRating: 5,
			Rooms: []models.Room{
				{Name: "Deluxe River View", RoomType: "deluxe", MaxGuests: 2, BasePrice: 2000000},
				{Name: "Family Suite", RoomType: "suite", MaxGuests: 4, BasePrice: 3500000},
			},
		},
		{
			Name:       "Hanoi Old Quarter Inn",
			Address:    "45 Hang Bac",
			City:       "Hanoi",
			Country:    "Vietnam",
			StarRating: 4,
			Rooms: []models.Room{
				{Name: "Standard Double", RoomType: "standard", MaxGuests: 2, BasePrice: 900000},
				{Name: "Superior Twin", RoomType: "superior", MaxGuests: 3, BasePrice: 1300000},
			},
		},
		{
			Name:       "Da Nang Beach Resort",
			Address:    "88 Vo Nguyen Giap",
			City:       "Da Nang",
			Country:    "Vietnam",
			StarRating: 4,
			Rooms: []models.Room{
				{Name: "Ocean View Deluxe", RoomType: "deluxe", MaxGuests: 2, BasePrice: 1800000},
				{Name: "Garden Bungalow", RoomType: "bungalow", MaxGuests: 5, BasePrice: 2600000},
			},
		},
	}
	if err := db.Create(&hotels).Error; err != nil {
		log.Printf("warning: failed to seed hotels: %v", err)
		return
	}
	log.Println("Demo hotels seeded")
}
