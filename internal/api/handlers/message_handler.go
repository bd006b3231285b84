package handlers

import (
	"errors"
	"net/http"

	"teamup-service/internal/api/middleware"
	"teamup-service/internal/models"
	"teamup-service/internal/services"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	messageService *services.MessageService
}

func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// Send godoc
// @Summary Send a message
// @Description Persist a chat message and fan it out to the match's live connections
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateMessageRequest true "Message data"
// @Success 201 {object} models.MessageResponse "Message created"
// @Failure 400 {object} models.ErrorResponse "Bad request - invalid input data"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 403 {object} models.ErrorResponse "Forbidden - not a participant of the match"
// @Failure 404 {object} models.ErrorResponse "Match not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /messages [post]
func (h *MessageHandler) Send(c *gin.Context) {
	userID := middleware.UserID(c)

	var req models.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid input data",
			Details: err.Error(),
		})
		return
	}

	msg, err := h.messageService.Send(c.Request.Context(), userID, &req)
	if err != nil {
		h.renderServiceError(c, err, "Failed to send message")
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// History godoc
// @Summary Message history
// @Description Return a match's messages oldest first and mark the other side's messages as read
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param matchId path string true "Match ID"
// @Success 200 {array} models.MessageResponse "Messages in chronological order"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 403 {object} models.ErrorResponse "Forbidden - not a participant of the match"
// @Failure 404 {object} models.ErrorResponse "Match not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /matches/{matchId}/messages [get]
func (h *MessageHandler) History(c *gin.Context) {
	userID := middleware.UserID(c)
	matchID := c.Param("matchId")

	messages, err := h.messageService.History(c.Request.Context(), userID, matchID)
	if err != nil {
		h.renderServiceError(c, err, "Failed to load messages")
		return
	}

	responses := make([]*models.MessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, messages[i].ToResponse())
	}
	c.JSON(http.StatusOK, responses)
}

func (h *MessageHandler) renderServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrMatchNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Code:    http.StatusNotFound,
			Message: "Match not found",
		})
	case errors.Is(err, services.ErrNotParticipant):
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Code:    http.StatusForbidden,
			Message: "You are not a participant of this match",
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: fallback,
		})
	}
}
