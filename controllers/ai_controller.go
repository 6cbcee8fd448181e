package controllers

import (
	"net/http"

	"hotel-booking-api/middleware"
	"hotel-booking-api/services"
	"hotel-booking-api/utils"

	"github.com/gin-gonic/gin"
)

type AIController struct {
	Svc *services.SuggestionService
}

func NewAIController(svc *services.SuggestionService) *AIController {
	return &AIController{Svc: svc}
}

// Suggest handles POST /api/ai/suggest.
func (a *AIController) Suggest(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	var req services.SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	res, err := a.Svc.Suggest(user.ID, req)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.JSON(http.StatusOK, res)
}
