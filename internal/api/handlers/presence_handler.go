package handlers

import (
	"net/http"

	"teamup-service/internal/api/middleware"
	"teamup-service/internal/models"
	"teamup-service/internal/services"

	"github.com/gin-gonic/gin"
)

type PresenceHandler struct {
	presenceService *services.PresenceService
}

func NewPresenceHandler(presenceService *services.PresenceService) *PresenceHandler {
	return &PresenceHandler{presenceService: presenceService}
}

// SetAvailability godoc
// @Summary Update availability
// @Description Toggle the "available now" flag and notify the user's matches over WebSocket
// @Tags presence
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UpdateAvailabilityRequest true "Availability flag"
// @Success 200 {object} map[string]bool "Updated availability"
// @Failure 400 {object} models.ErrorResponse "Bad request - invalid input data"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /presence/availability [put]
func (h *PresenceHandler) SetAvailability(c *gin.Context) {
	userID := middleware.UserID(c)

	var req models.UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid input data",
			Details: err.Error(),
		})
		return
	}

	if err := h.presenceService.SetAvailability(c.Request.Context(), userID, req.IsAvailableNow); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to update availability",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"isAvailableNow": req.IsAvailableNow})
}

// OnlineUsers godoc
// @Summary List online users
// @Description Return the ids of all users currently online
// @Tags presence
// @Produce json
// @Security BearerAuth
// @Success 200 {array} string "Online user ids"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /presence/online [get]
func (h *PresenceHandler) OnlineUsers(c *gin.Context) {
	users, err := h.presenceService.OnlineUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to load online users",
		})
		return
	}
	if users == nil {
		users = []string{}
	}
	c.JSON(http.StatusOK, users)
}
