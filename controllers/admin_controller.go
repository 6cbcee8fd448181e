package controllers

import (
	"net/http"

	"hotel-booking-api/services"
	"hotel-booking-api/utils"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	Svc    *services.AdminService
	Caches []*utils.Cache
}

func NewAdminController(svc *services.AdminService, caches ...*utils.Cache) *AdminController {
	return &AdminController{Svc: svc, Caches: caches}
}

// Dashboard handles GET /api/admin/dashboard.
func (a *AdminController) Dashboard(c *gin.Context) {
	stats, err := a.Svc.Dashboard()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ListUsers handles GET /api/admin/users.
func (a *AdminController) ListUsers(c *gin.Context) {
	users, err := a.Svc.ListUsers(queryInt(c, "skip", 0), queryInt(c, "limit", 50))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.JSON(http.StatusOK, users)
}

// DeleteUser handles DELETE /api/admin/users/:id.
func (a *AdminController) DeleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := a.Svc.DeleteUser(id); err != nil {
		status := statusFromError(err)
		utils.JSONError(c, status, errorMessage(status, err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

type updateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UpdateUserRole handles PATCH /api/admin/users/:id/role.
func (a *AdminController) UpdateUserRole(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := a.Svc.UpdateUserRole(id, req.Role)
	if err != nil {
		status := statusFromError(err)
		utils.JSONError(c, status, errorMessage(status, err))
		return
	}
	c.JSON(http.StatusOK, user)
}

// ListBookings handles GET /api/admin/bookings.
func (a *AdminController) ListBookings(c *gin.Context) {
	rows, err := a.Svc.ListBookings(c.Query("status"), queryInt(c, "skip", 0), queryInt(c, "limit", 50))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// DeleteBooking handles DELETE /api/admin/bookings/:id.
func (a *AdminController) DeleteBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := a.Svc.DeleteBooking(id); err != nil {
		status := statusFromError(err)
		utils.JSONError(c, status, errorMessage(status, err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted"})
}

// ClearCaches handles POST /api/admin/cache/clear. Stale availability and
// search entries disappear immediately instead of aging out.
func (a *AdminController) ClearCaches(c *gin.Context) {
	for _, cache := range a.Caches {
		cache.Clear()
	}
	c.JSON(http.StatusOK, gin.H{"message": "Caches cleared"})
}
