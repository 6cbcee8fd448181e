package controllers

import (
	"net/http"

	"hotel-booking-api/middleware"
	"hotel-booking-api/services"
	"hotel-booking-api/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Users     *services.UserService
	JWTSecret string
}

func NewAuthController(users *services.UserService, jwtSecret string) *AuthController {
	return &AuthController{Users: users, JWTSecret: jwtSecret}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone"`
}

// Register handles POST /api/auth/register.
func (ac *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := ac.Users.Register(services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
	})
	if err != nil {
		status := statusFromError(err)
		utils.JSONError(c, status, errorMessage(status, err))
		return
	}
	c.JSON(http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/auth/login and returns an access/refresh pair.
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := ac.Users.Authenticate(req.Email, req.Password)
	if err != nil {
		status := statusFromError(err)
		utils.JSONError(c, status, errorMessage(status, err))
		return
	}

	access, err := utils.NewAccessToken(ac.JWTSecret, user.ID, user.Role)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	refresh, err := utils.NewRefreshToken(ac.JWTSecret, user.ID, user.Role)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  access,
		"refresh_token": refresh,
		"token_type":    "bearer",
		"user":          user,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh handles POST /api/auth/refresh: a valid refresh token mints a new
// access/refresh pair.
func (ac *AuthController) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	claims, err := utils.ParseToken(ac.JWTSecret, req.RefreshToken)
	if err != nil || claims.TokenType != utils.TokenTypeRefresh {
		utils.JSONError(c, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	user, err := ac.Users.GetByID(claims.UserID)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	access, err := utils.NewAccessToken(ac.JWTSecret, user.ID, user.Role)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	refresh, err := utils.NewRefreshToken(ac.JWTSecret, user.ID, user.Role)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  access,
		"refresh_token": refresh,
		"token_type":    "bearer",
	})
}

// Me handles GET /api/auth/me.
func (ac *AuthController) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}
	c.JSON(http.StatusOK, user)
}
