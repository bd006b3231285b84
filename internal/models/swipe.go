package models

import "time"

// Swipe types mirror the client's three actions.
const (
	SwipeTypeLike  = "like"
	SwipeTypePass  = "pass"
	SwipeTypeSuper = "super"
)

/** --------------------ENTITIES-------------------- */
type Swipe struct {
	ID         string    `gorm:"primaryKey;type:uuid" json:"id"`
	FromUserID string    `gorm:"not null;type:uuid;index:idx_swipes_from_to" json:"fromUserId"`
	ToUserID   string    `gorm:"not null;type:uuid;index:idx_swipes_from_to" json:"toUserId"`
	SwipeType  string    `gorm:"not null" json:"swipeType"`
	CreatedAt  time.Time `json:"createdAt"`
}

/** -------------------- DTOs -------------------- */
// Request
type SwipeRequest struct {
	ToUserID  string `json:"toUserId" binding:"required,uuid"`
	SwipeType string `json:"swipeType" binding:"required,oneof=like pass super"`
}

// Response
type SwipeResponse struct {
	Swipe      *Swipe         `json:"swipe"`
	Match      *MatchResponse `json:"match,omitempty"`
	DailyCount int64          `json:"dailyCount"`
	Limit      int64          `json:"limit"`
	Remaining  int64          `json:"remaining"`
}

type SwipeStatusResponse struct {
	DailyCount int64 `json:"dailyCount"`
	Limit      int64 `json:"limit"`
	Remaining  int64 `json:"remaining"`
}
