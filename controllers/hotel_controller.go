package controllers

import (
	"net/http"
	"strconv"

	"hotel-booking-api/models"
	"hotel-booking-api/services"
	"hotel-booking-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type HotelController struct {
	Svc *services.HotelService
}

func NewHotelController(svc *services.HotelService) *HotelController {
	return &HotelController{Svc: svc}
}

func queryInt(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return def
	}
	return v
}

func queryFloatPtr(c *gin.Context, name string) *float64 {
	s := c.Query(name)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return uint(id), true
}

// List handles GET /api/hotels.
func (hc *HotelController) List(c *gin.Context) {
	hotels, err := hc.Svc.List(services.HotelFilter{
		Search:     c.Query("search"),
		City:       c.Query("city"),
		Country:    c.Query("country"),
		StarRating: queryInt(c, "star_rating", 0),
		MinPrice:   queryFloatPtr(c, "min_price"),
		MaxPrice:   queryFloatPtr(c, "max_price"),
		Skip:       queryInt(c, "skip", 0),
		Limit:      queryInt(c, "limit", 50),
	})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.JSON(http.StatusOK, hotels)
}

// Cities handles GET /api/hotels/cities.
func (hc *HotelController) Cities(c *gin.Context) {
	cities, err := hc.Svc.Cities()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"cities": cities})
}

// Search handles GET /api/hotels/search.
func (hc *HotelController) Search(c *gin.Context) {
	hotels, err := hc.Svc.AdvancedSearch(services.AdvancedSearchParams{
		City:       c.Query("city"),
		CheckIn:    c.Query("check_in_date"),
		CheckOut:   c.Query("check_out_date"),
		Guests:     queryInt(c, "guests", 0),
		MinPrice:   queryFloatPtr(c, "min_price"),
		MaxPrice:   queryFloatPtr(c, "max_price"),
		StarRating: queryInt(c, "star_rating", 0),
	})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.JSON(http.StatusOK, hotels)
}

// Get handles GET /api/hotels/:id.
func (hc *HotelController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	hotel, err := hc.Svc.Get(id)
	if err != nil {
		status := statusFromError(err)
		utils.JSONError(c, status, errorMessage(status, err))
		return
	}
	c.JSON(http.StatusOK, hotel)
}

// Rooms handles GET /api/hotels/:id/rooms.
func (hc *HotelController) Rooms(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	rooms, err := hc.Svc.Rooms(id)
	if err != nil {
		status := statusFromError(err)
		utils.JSONError(c, status, errorMessage(status, err))
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// Reviews handles GET /api/hotels/:id/reviews.
func (hc *HotelController) Reviews(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	reviews, err := hc.Svc.Reviews(id, queryInt(c, "skip", 0), queryInt(c, "limit", 20))
	if err != nil {
		status := statusFromError(err)
		utils.JSONError(c, status, errorMessage(status, err))
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// Rating handles GET /api/hotels/:id/rating.
func (hc *HotelController) Rating(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	rating, err := hc.Svc.AverageRating(id)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.JSON(http.StatusOK, rating)
}

type createHotelRequest struct {
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description"`
	Address     string         `json:"address" binding:"required"`
	City        string         `json:"city" binding:"required"`
	Country     string         `json:"country" binding:"required"`
	StarRating  int            `json:"star_rating" binding:"omitempty,min=1,max=5"`
	Images      datatypes.JSON `json:"images"`
	Amenities   datatypes.JSON `json:"amenities"`
	Policies    datatypes.JSON `json:"policies"`
	Latitude    *float64       `json:"latitude"`
	Longitude   *float64       `json:"longitude"`
}

// Create handles POST /api/hotels (admin).
func (hc *HotelController) Create(c *gin.Context) {
	var req createHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	hotel := models.Hotel{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		Country:     req.Country,
		StarRating:  req.StarRating,
		Images:      req.Images,
		Amenities:   req.Amenities,
		Policies:    req.Policies,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}
	if err := hc.Svc.Create(&hotel); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.JSON(http.StatusCreated, hotel)
}

// Update handles PATCH /api/hotels/:id (admin). The body is a partial
// column map so absent fields stay untouched.
func (hc *HotelController) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	delete(updates, "id")

	hotel, err := hc.Svc.Update(id, updates)
	if err != nil {
		status := statusFromError(err)
		utils.JSONError(c, status, errorMessage(status, err))
		return
	}
	c.JSON(http.StatusOK, hotel)
}

// Delete handles DELETE /api/hotels/:id (admin).
func (hc *HotelController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := hc.Svc.Delete(id); err != nil {
		status := statusFromError(err)
		utils.JSONError(c, status, errorMessage(status, err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Hotel deleted"})
}
