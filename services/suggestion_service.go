package services

import (
	"encoding/json"
	"fmt"
	"log"

	"hotel-booking-api/models"

	"gorm.io/gorm"
)

// SuggestionService implements the rule-based room suggester: filter hotels
// by location, then rooms by capacity and budget, and keep an audit trail in
// ai_logs.
type SuggestionService struct {
	DB *gorm.DB
}

func NewSuggestionService(db *gorm.DB) *SuggestionService {
	return &SuggestionService{DB: db}
}

type SuggestRequest struct {
	Location       string   `json:"location" binding:"required"`
	CheckInDate    string   `json:"check_in_date" binding:"required"`
	CheckOutDate   string   `json:"check_out_date" binding:"required"`
	Guests         int      `json:"guests" binding:"required,min=1"`
	BudgetPerNight *float64 `json:"budget_per_night,omitempty"`
	Preferences    string   `json:"preferences,omitempty"`
}

type SuggestResponse struct {
	Suggestion       string `json:"suggestion"`
	RecommendedRooms []uint `json:"recommended_rooms"`
}

func (s *SuggestionService) Suggest(userID uint, req SuggestRequest) (SuggestResponse, error) {
	var hotelIDs []uint
	if err := s.DB.Model(&models.Hotel{}).
		Where("LOWER(city) LIKE ?", likePattern(req.Location)).
		Pluck("id", &hotelIDs).Error; err != nil {
		return SuggestResponse{}, err
	}

	roomIDs := make([]uint, 0, 3)
	var suggestion string
	if len(hotelIDs) == 0 {
		suggestion = fmt.Sprintf("Sorry, I could not find any hotels in %s.", req.Location)
	} else {
		q := s.DB.Model(&models.Room{}).
			Where("hotel_id IN ?", hotelIDs).
			Where("max_guests >= ?", req.Guests)
		if req.BudgetPerNight != nil {
			q = q.Where("base_price <= ?", *req.BudgetPerNight)
		}
		if err := q.Limit(3).Pluck("id", &roomIDs).Error; err != nil {
			return SuggestResponse{}, err
		}

		if len(roomIDs) > 0 {
			suggestion = fmt.Sprintf("I found %d matching rooms in %s within your budget.", len(roomIDs), req.Location)
		} else {
			suggestion = fmt.Sprintf("There are hotels in %s, but no rooms fit this guest count or budget.", req.Location)
		}
	}

	prompt, _ := json.Marshal(req)
	aiLog := models.AILog{
		UserID:     &userID,
		Prompt:     string(prompt),
		Response:   suggestion,
		ActionType: "suggest",
	}
	if err := s.DB.Create(&aiLog).Error; err != nil {
		// The suggestion itself is still valid; losing the audit row is not
		// a user-facing failure.
		log.Printf("warning: failed to persist ai log: %v", err)
	}

	return SuggestResponse{Suggestion: suggestion, RecommendedRooms: roomIDs}, nil
}
