package handlers

import (
	"net/http"

	"teamup-service/internal/api/middleware"
	"teamup-service/internal/models"
	"teamup-service/internal/services"

	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matchService *services.MatchService
}

func NewMatchHandler(matchService *services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

// List godoc
// @Summary List matches
// @Description Return the authenticated user's matches with the other participant, last message and unread count
// @Tags matches
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.MatchResponse "Matches ordered by most recent activity"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /matches [get]
func (h *MatchHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)

	matches, err := h.matchService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to load matches",
		})
		return
	}

	c.JSON(http.StatusOK, matches)
}
