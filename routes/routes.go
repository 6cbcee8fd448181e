package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hotel-booking-api/controllers"
	"hotel-booking-api/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires the controllers onto the HTTP surface.
func SetupRouter(
	ac *controllers.AuthController,
	hc *controllers.HotelController,
	rc *controllers.RoomController,
	bc *controllers.BookingController,
	aic *controllers.AIController,
	adc *controllers.AdminController,
	jwtSecret string,
	db *gorm.DB,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authRequired := middleware.RequireAuth(jwtSecret, db)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", ac.Register)
			auth.POST("/login", ac.Login)
			auth.POST("/refresh", ac.Refresh)
			auth.GET("/me", authRequired, ac.Me)
		}

		hotels := api.Group("/hotels")
		{
			hotels.GET("", hc.List)

			// Static segments must come before /:id.
			hotels.GET("/cities", hc.Cities)
			hotels.GET("/search", hc.Search)

			hotels.GET("/:id", hc.Get)
			hotels.GET("/:id/rooms", hc.Rooms)
			hotels.GET("/:id/reviews", hc.Reviews)
			hotels.GET("/:id/rating", hc.Rating)

			hotels.POST("", authRequired, middleware.RequireAdmin(), hc.Create)
			hotels.PATCH("/:id", authRequired, middleware.RequireAdmin(), hc.Update)
			hotels.DELETE("/:id", authRequired, middleware.RequireAdmin(), hc.Delete)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.List)
			rooms.GET("/:id", rc.Get)

			rooms.POST("", authRequired, middleware.RequireAdmin(), rc.Create)
			rooms.PATCH("/:id", authRequired, middleware.RequireAdmin(), rc.Update)
			rooms.DELETE("/:id", authRequired, middleware.RequireAdmin(), rc.Delete)
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("/availability", bc.GetAvailability)
			bookings.POST("/availability/bulk", bc.BulkAvailability)

			bookings.POST("", authRequired, bc.Create)
			bookings.GET("", authRequired, bc.List)
			bookings.GET("/:id", authRequired, bc.Get)
			bookings.PATCH("/:id/cancel", authRequired, bc.Cancel)
			bookings.POST("/payment", authRequired, bc.CreatePayment)
		}

		ai := api.Group("/ai")
		ai.Use(authRequired)
		{
			ai.POST("/suggest", aic.Suggest)
		}

		admin := api.Group("/admin")
		admin.Use(authRequired, middleware.RequireAdmin())
		{
			admin.GET("/dashboard", adc.Dashboard)
			admin.GET("/users", adc.ListUsers)
			admin.DELETE("/users/:id", adc.DeleteUser)
			admin.PATCH("/users/:id/role", adc.UpdateUserRole)
			admin.GET("/bookings", adc.ListBookings)
			admin.DELETE("/bookings/:id", adc.DeleteBooking)
			admin.POST("/cache/clear", adc.ClearCaches)
		}
	}

	return r
}
