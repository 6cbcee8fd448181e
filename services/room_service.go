package services

import (
	"errors"

	"hotel-booking-api/models"

	"gorm.io/gorm"
)

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

type RoomFilter struct {
	HotelID   uint
	Location  string
	RoomType  string
	MinPrice  *float64
	MaxPrice  *float64
	MaxGuests int
	Skip      int
	Limit     int
}

func (s *RoomService) List(f RoomFilter) ([]models.Room, error) {
	q := s.DB.Model(&models.Room{}).Preload("Hotel")

	if f.Location != "" {
		p := likePattern(f.Location)
		q = q.Joins("JOIN hotels ON hotels.id = rooms.hotel_id").
			Where("LOWER(hotels.city) LIKE ? OR LOWER(hotels.country) LIKE ? OR LOWER(hotels.name) LIKE ?", p, p, p)
	}
	if f.HotelID != 0 {
		q = q.Where("rooms.hotel_id = ?", f.HotelID)
	}
	if f.RoomType != "" {
		q = q.Where("LOWER(rooms.room_type) LIKE ?", likePattern(f.RoomType))
	}
	if f.MinPrice != nil {
		q = q.Where("rooms.base_price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("rooms.base_price <= ?", *f.MaxPrice)
	}
	if f.MaxGuests != 0 {
		q = q.Where("rooms.max_guests >= ?", f.MaxGuests)
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var rooms []models.Room
	err := q.Offset(f.Skip).Limit(limit).Find(&rooms).Error
	return rooms, err
}

func (s *RoomService) Get(id uint) (models.Room, error) {
	var room models.Room
	err := s.DB.Preload("Hotel").First(&room, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Room{}, ErrRoomNotFound
	}
	return room, err
}

func (s *RoomService) Create(room *models.Room) error {
	var hotel models.Hotel
	if err := s.DB.First(&hotel, room.HotelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHotelNotFound
		}
		return err
	}
	return s.DB.Create(room).Error
}

func (s *RoomService) Update(id uint, updates map[string]interface{}) (models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Room{}, ErrRoomNotFound
		}
		return models.Room{}, err
	}
	if len(updates) > 0 {
		if err := s.DB.Model(&room).Updates(updates).Error; err != nil {
			return models.Room{}, err
		}
	}
	return s.Get(id)
}

func (s *RoomService) Delete(id uint) error {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		return err
	}
	return s.DB.Delete(&room).Error
}
