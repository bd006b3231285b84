package handlers

import (
	"net/http"

	"teamup-service/internal/adapters/storage"
	"teamup-service/internal/api/middleware"
	"teamup-service/internal/models"
	"teamup-service/internal/repositories/postgres"

	"github.com/gin-gonic/gin"
)

// maxAvatarSize caps avatar uploads at 5 MB.
const maxAvatarSize = 5 << 20

type UserHandler struct {
	users   *postgres.UserRepository
	storage *storage.MinIOClient
}

func NewUserHandler(users *postgres.UserRepository, storage *storage.MinIOClient) *UserHandler {
	return &UserHandler{users: users, storage: storage}
}

// UploadAvatar godoc
// @Summary Upload avatar
// @Description Upload an avatar image to object storage and attach its URL to the user profile
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "Avatar image (max 5MB)"
// @Success 200 {object} map[string]string "Avatar URL"
// @Failure 400 {object} models.ErrorResponse "Bad request - missing or oversized file"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /users/avatar [post]
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	userID := middleware.UserID(c)

	file, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "avatar file is required",
		})
		return
	}
	if file.Size > maxAvatarSize {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "avatar must be at most 5MB",
		})
		return
	}

	url, err := h.storage.UploadAvatar(c.Request.Context(), userID, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to upload avatar",
		})
		return
	}

	if err := h.users.UpdateAvatarURL(c.Request.Context(), userID, url); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to save avatar",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatarUrl": url})
}
