package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hotel-booking-api/config"
	"hotel-booking-api/controllers"
	"hotel-booking-api/routes"
	"hotel-booking-api/services"
	"hotel-booking-api/utils"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("ERROR: JWT_SECRET environment variable is not set. Cannot sign tokens.")
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("config.DB is nil after ConnectDatabase()")
	}
	log.Println("Database connection established and migrations applied.")

	availabilityCache := utils.NewCache(5 * time.Minute)
	searchCache := utils.NewCache(10 * time.Minute)
	stopAvailabilitySweeper := availabilityCache.StartSweeper(time.Minute)
	stopSearchSweeper := searchCache.StartSweeper(time.Minute)
	defer stopAvailabilitySweeper()
	defer stopSearchSweeper()

	// Services
	userService := services.NewUserService(db)
	hotelService := services.NewHotelService(db, searchCache)
	roomService := services.NewRoomService(db)
	bookingService := services.NewBookingService(db, availabilityCache)
	suggestionService := services.NewSuggestionService(db)
	adminService := services.NewAdminService(db)

	// Controllers
	authController := controllers.NewAuthController(userService, jwtSecret)
	hotelController := controllers.NewHotelController(hotelService)
	roomController := controllers.NewRoomController(roomService)
	bookingController := controllers.NewBookingController(bookingService)
	aiController := controllers.NewAIController(suggestionService)
	adminController := controllers.NewAdminController(adminService, availabilityCache, searchCache)

	router := routes.SetupRouter(
		authController,
		hotelController,
		roomController,
		bookingController,
		aiController,
		adminController,
		jwtSecret,
		db,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
}
