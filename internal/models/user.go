package models

import (
	"time"

	"gorm.io/gorm"
)

/** --------------------ENTITIES-------------------- */
// User represents a player account with the profile basics the
// matchmaking flows need. The full editable profile (bio, playstyle,
// game library) lives in its own feature area and is not modeled here.
type User struct {
	ID        string         `gorm:"primaryKey;type:uuid" json:"id"`
	Username  string         `gorm:"uniqueIndex;not null" json:"username"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Password  string         `json:"-"` // bcrypt hash, never serialized
	Region    string         `json:"region,omitempty"`
	Language  string         `json:"language,omitempty"`
	AvatarURL string         `json:"avatarUrl,omitempty"`
	// AvailableNow is the "looking to play right now" toggle surfaced
	// to match partners through presence_change events.
	AvailableNow bool           `gorm:"default:false" json:"isAvailableNow"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"-"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

/** -------------------- DTOs -------------------- */
// Request
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Region   string `json:"region"`
	Language string `json:"language"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateAvailabilityRequest struct {
	IsAvailableNow bool `json:"isAvailableNow"`
}

// Response
type UserResponse struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Region         string    `json:"region,omitempty"`
	Language       string    `json:"language,omitempty"`
	AvatarURL      string    `json:"avatarUrl,omitempty"`
	IsAvailableNow bool      `json:"isAvailableNow"`
	CreatedAt      time.Time `json:"createdAt"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		Region:         u.Region,
		Language:       u.Language,
		AvatarURL:      u.AvatarURL,
		IsAvailableNow: u.AvailableNow,
		CreatedAt:      u.CreatedAt,
	}
}
