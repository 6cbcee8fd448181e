package controllers

import (
	"net/http"

	"hotel-booking-api/models"
	"hotel-booking-api/services"
	"hotel-booking-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type RoomController struct {
	Svc *services.RoomService
}

func NewRoomController(svc *services.RoomService) *RoomController {
	return &RoomController{Svc: svc}
}

// List handles GET /api/rooms.
func (rc *RoomController) List(c *gin.Context) {
	rooms, err := rc.Svc.List(services.RoomFilter{
		HotelID:   uint(queryInt(c, "hotel_id", 0)),
		Location:  c.Query("location"),
		RoomType:  c.Query("room_type"),
		MinPrice:  queryFloatPtr(c, "min_price"),
		MaxPrice:  queryFloatPtr(c, "max_price"),
		MaxGuests: queryInt(c, "guests", 0),
		Skip:      queryInt(c, "skip", 0),
		Limit:     queryInt(c, "limit", 50),
	})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// Get handles GET /api/rooms/:id.
func (rc *RoomController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	room, err := rc.Svc.Get(id)
	if err != nil {
		status := statusFromError(err)
		utils.JSONError(c, status, errorMessage(status, err))
		return
	}
	c.JSON(http.StatusOK, room)
}

type createRoomRequest struct {
	HotelID     uint           `json:"hotel_id" binding:"required"`
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description"`
	RoomType    string         `json:"room_type" binding:"required"`
	MaxGuests   int            `json:"max_guests" binding:"required,min=1"`
	Size        *float64       `json:"size"`
	BedType     string         `json:"bed_type"`
	BasePrice   float64        `json:"base_price" binding:"required,gt=0"`
	Images      datatypes.JSON `json:"images"`
	Amenities   datatypes.JSON `json:"amenities"`
}

// Create handles POST /api/rooms (admin).
func (rc *RoomController) Create(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	room := models.Room{
		HotelID:     req.HotelID,
		Name:        req.Name,
		Description: req.Description,
		RoomType:    req.RoomType,
		MaxGuests:   req.MaxGuests,
		Size:        req.Size,
		BedType:     req.BedType,
		BasePrice:   req.BasePrice,
		Images:      req.Images,
		Amenities:   req.Amenities,
	}
	if err := rc.Svc.Create(&room); err != nil {
		status := statusFromError(err)
		utils.JSONError(c, status, errorMessage(status, err))
		return
	}
	c.JSON(http.StatusCreated, room)
}

// Update handles PATCH /api/rooms/:id (admin).
func (rc *RoomController) Update(c *gin.Context) {
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
	delete(updates, "hotel_id")

	room, err := rc.Svc.Update(id, updates)
	if err != nil {
		status := statusFromError(err)
		utils.JSONError(c, status, errorMessage(status, err))
		return
	}
	c.JSON(http.StatusOK, room)
}

// Delete handles DELETE /api/rooms/:id (admin).
func (rc *RoomController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := rc.Svc.Delete(id); err != nil {
		status := statusFromError(err)
		utils.JSONError(c, status, errorMessage(status, err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Room deleted"})
}
