package handlers

import (
	"errors"
	"net/http"

	"teamup-service/internal/api/middleware"
	"teamup-service/internal/models"
	"teamup-service/internal/services"

	"github.com/gin-gonic/gin"
)

type SwipeHandler struct {
	swipeService *services.SwipeService
}

func NewSwipeHandler(swipeService *services.SwipeService) *SwipeHandler {
	return &SwipeHandler{swipeService: swipeService}
}

// Swipe godoc
// @Summary Swipe on another user
// @Description Record a like, pass or super like on another user. Returns the new match when the like is mutual.
// @Tags swipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.SwipeRequest true "Swipe data"
// @Success 201 {object} models.SwipeResponse "Swipe recorded"
// @Failure 400 {object} models.ErrorResponse "Bad request - invalid input data"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 429 {object} models.SwipeStatusResponse "Daily swipe limit reached"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /swipes [post]
func (h *SwipeHandler) Swipe(c *gin.Context) {
	userID := middleware.UserID(c)

	var req models.SwipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid input data",
			Details: err.Error(),
		})
		return
	}
	if req.ToUserID == userID {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Cannot swipe on yourself",
		})
		return
	}

	resp, err := h.swipeService.Swipe(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrSwipeLimitReached) {
			status, statusErr := h.swipeService.Status(c.Request.Context(), userID)
			if statusErr != nil {
				status = &models.SwipeStatusResponse{}
			}
			c.JSON(http.StatusTooManyRequests, status)
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Swipe failed",
		})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Status godoc
// @Summary Daily swipe allowance
// @Description Return how many swipes the user has used today and how many remain
// @Tags swipes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.SwipeStatusResponse "Swipe allowance"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /swipes/status [get]
func (h *SwipeHandler) Status(c *gin.Context) {
	userID := middleware.UserID(c)

	status, err := h.swipeService.Status(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to load swipe status",
		})
		return
	}

	c.JSON(http.StatusOK, status)
}
