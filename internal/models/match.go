package models

import "time"

/** --------------------ENTITIES-------------------- */
// Match is a 1:1 chat channel created when two users like each other.
// Exactly two participants, user1 being the earlier swiper.
type Match struct {
	ID            string     `gorm:"primaryKey;type:uuid" json:"id"`
	User1ID       string     `gorm:"not null;type:uuid;index" json:"user1Id"`
	User2ID       string     `gorm:"not null;type:uuid;index" json:"user2Id"`
	CreatedAt     time.Time  `json:"createdAt"`
	LastMessageAt *time.Time `json:"lastMessageAt,omitempty"`
}

// HasParticipant reports whether userID is one of the two members.
func (m *Match) HasParticipant(userID string) bool {
	return m.User1ID == userID || m.User2ID == userID
}

// OtherParticipant returns the member that is not userID. The caller
// must have verified membership first.
func (m *Match) OtherParticipant(userID string) string {
	if m.User1ID == userID {
		return m.User2ID
	}
	return m.User1ID
}

/** -------------------- DTOs -------------------- */
// Response
type MatchResponse struct {
	ID            string           `json:"id"`
	User1ID       string           `json:"user1Id"`
	User2ID       string           `json:"user2Id"`
	CreatedAt     time.Time        `json:"createdAt"`
	LastMessageAt *time.Time       `json:"lastMessageAt,omitempty"`
	OtherUser     *UserResponse    `json:"otherUser,omitempty"`
	LastMessage   *MessageResponse `json:"lastMessage,omitempty"`
	UnreadCount   int64            `json:"unreadCount"`
}

func (m *Match) ToResponse() *MatchResponse {
	return &MatchResponse{
		ID:            m.ID,
		User1ID:       m.User1ID,
		User2ID:       m.User2ID,
		CreatedAt:     m.CreatedAt,
		LastMessageAt: m.LastMessageAt,
	}
}
