package models

import "time"

/** --------------------ENTITIES-------------------- */
type Message struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	MatchID   string    `gorm:"not null;type:uuid;index" json:"matchId"`
	SenderID  string    `gorm:"not null;type:uuid" json:"senderId"`
	Content   string    `gorm:"not null" json:"content"`
	IsRead    bool      `gorm:"default:false" json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

/** -------------------- DTOs -------------------- */
// Request
type CreateMessageRequest struct {
	MatchID string `json:"matchId" binding:"required,uuid"`
	Content string `json:"content" binding:"required,max=2000"`
}

// Response
type MessageResponse struct {
	ID        string    `json:"id"`
	MatchID   string    `json:"matchId"`
	SenderID  string    `json:"senderId"`
	Content   string    `json:"content"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

func (m *Message) ToResponse() *MessageResponse {
	return &MessageResponse{
		ID:        m.ID,
		MatchID:   m.MatchID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt,
	}
}
