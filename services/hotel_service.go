package services

import (
	"errors"
	"fmt"
	"strings"

	"hotel-booking-api/models"
	"hotel-booking-api/utils"

	"gorm.io/gorm"
)

type HotelService struct {
	DB     *gorm.DB
	Search *utils.Cache
}

func NewHotelService(db *gorm.DB, searchCache *utils.Cache) *HotelService {
	return &HotelService{DB: db, Search: searchCache}
}

// HotelFilter collects the optional list filters. Zero values mean "no
// filter".
type HotelFilter struct {
	Search     string
	City       string
	Country    string
	StarRating int
	MinPrice   *float64
	MaxPrice   *float64
	Skip       int
	Limit      int
}

func likePattern(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}

func (s *HotelService) List(f HotelFilter) ([]models.Hotel, error) {
	q := s.DB.Model(&models.Hotel{})

	if f.Search != "" {
		p := likePattern(f.Search)
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(address) LIKE ? OR LOWER(city) LIKE ?",
			p, p, p,
		)
	}
	if f.City != "" {
		q = q.Where("LOWER(city) LIKE ?", likePattern(f.City))
	}
	if f.Country != "" {
		q = q.Where("LOWER(country) LIKE ?", likePattern(f.Country))
	}
	if f.StarRating != 0 {
		q = q.Where("star_rating = ?", f.StarRating)
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		q = q.Joins("JOIN rooms ON rooms.hotel_id = hotels.id")
		if f.MinPrice != nil {
			q = q.Where("rooms.base_price >= ?", *f.MinPrice)
		}
		if f.MaxPrice != nil {
			q = q.Where("rooms.base_price <= ?", *f.MaxPrice)
		}
		q = q.Distinct("hotels.*")
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var hotels []models.Hotel
	err := q.Offset(f.Skip).Limit(limit).Find(&hotels).Error
	return hotels, err
}

func (s *HotelService) Cities() ([]string, error) {
	var cities []string
	err := s.DB.Model(&models.Hotel{}).
		Where("city <> ''").
		Distinct("city").
		Order("city").
		Pluck("city", &cities).Error
	return cities, err
}

func (s *HotelService) Get(id uint) (models.Hotel, error) {
	var hotel models.Hotel
	err := s.DB.First(&hotel, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Hotel{}, ErrHotelNotFound
	}
	return hotel, err
}

// AdvancedSearchParams drive the cached hotel search used by the search
// page. CheckIn/CheckOut are accepted for cache-key symmetry with the
// client even though only guest capacity and price constrain the query.
type AdvancedSearchParams struct {
	City       string
	CheckIn    string
	CheckOut   string
	Guests     int
	MinPrice   *float64
	MaxPrice   *float64
	StarRating int
}

// AdvancedSearch caches whole result sets; entries age out on the search
// cache's TTL or when an admin clears the caches.
func (s *HotelService) AdvancedSearch(p AdvancedSearchParams) ([]models.Hotel, error) {
	key := utils.CacheKey("search", p.City, p.CheckIn, p.CheckOut, p.Guests,
		fmtPricePtr(p.MinPrice), fmtPricePtr(p.MaxPrice), p.StarRating)
	if cached, ok := s.Search.Get(key); ok {
		if hotels, ok := cached.([]models.Hotel); ok {
			return hotels, nil
		}
	}

	q := s.DB.Model(&models.Hotel{})
	if p.City != "" {
		q = q.Where("LOWER(city) LIKE ?", likePattern(p.City))
	}
	if p.StarRating != 0 {
		q = q.Where("star_rating >= ?", p.StarRating)
	}

	needsRooms := p.MinPrice != nil || p.MaxPrice != nil || p.Guests > 0
	if needsRooms {
		q = q.Joins("JOIN rooms ON rooms.hotel_id = hotels.id")
		if p.MinPrice != nil {
			q = q.Where("rooms.base_price >= ?", *p.MinPrice)
		}
		if p.MaxPrice != nil {
			q = q.Where("rooms.base_price <= ?", *p.MaxPrice)
		}
		if p.Guests > 0 {
			q = q.Where("rooms.max_guests >= ?", p.Guests)
		}
		q = q.Distinct("hotels.*")
	}

	var hotels []models.Hotel
	if err := q.Limit(100).Find(&hotels).Error; err != nil {
		return nil, err
	}

	s.Search.Set(key, hotels)
	return hotels, nil
}

func fmtPricePtr(p *float64) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *p)
}

func (s *HotelService) Rooms(hotelID uint) ([]models.Room, error) {
	if _, err := s.Get(hotelID); err != nil {
		return nil, err
	}
	var rooms []models.Room
	err := s.DB.Where("hotel_id = ?", hotelID).Find(&rooms).Error
	return rooms, err
}

func (s *HotelService) Reviews(hotelID uint, skip, limit int) ([]models.Review, error) {
	if _, err := s.Get(hotelID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var reviews []models.Review
	err := s.DB.Preload("User").
		Where("hotel_id = ?", hotelID).
		Order("created_at DESC").
		Offset(skip).Limit(limit).
		Find(&reviews).Error
	return reviews, err
}

type HotelRating struct {
	HotelID       uint     `json:"hotel_id"`
	AverageRating *float64 `json:"average_rating"`
	TotalReviews  int64    `json:"total_reviews"`
}

func (s *HotelService) AverageRating(hotelID uint) (HotelRating, error) {
	rating := HotelRating{HotelID: hotelID}
	row := s.DB.Model(&models.Review{}).
		Select("AVG(overall_rating) AS avg_rating, COUNT(id) AS total").
		Where("hotel_id = ?", hotelID).
		Row()

	var avg *float64
	if err := row.Scan(&avg, &rating.TotalReviews); err != nil {
		return rating, err
	}
	if avg != nil {
		rounded := float64(int(*avg*10+0.5)) / 10
		rating.AverageRating = &rounded
	}
	return rating, nil
}

func (s *HotelService) Create(hotel *models.Hotel) error {
	return s.DB.Create(hotel).Error
}

func (s *HotelService) Update(id uint, updates map[string]interface{}) (models.Hotel, error) {
	hotel, err := s.Get(id)
	if err != nil {
		return models.Hotel{}, err
	}
	if len(updates) > 0 {
		if err := s.DB.Model(&hotel).Updates(updates).Error; err != nil {
			return models.Hotel{}, err
		}
	}
	return s.Get(id)
}

func (s *HotelService) Delete(id uint) error {
	hotel, err := s.Get(id)
	if err != nil {
		return err
	}
	return s.DB.Select("Rooms").Delete(&hotel).Error
}
