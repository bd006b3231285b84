package postgres

import (
	"context"

	"teamup-service/internal/models"

	"gorm.io/gorm"
)

// ChatStore bundles the match and message lookups the websocket hub
// needs behind one value; it satisfies the hub's MatchStore interface.
type ChatStore struct {
	matches  *MatchRepository
	messages *MessageRepository
}

func NewChatStore(db *gorm.DB) *ChatStore {
	return &ChatStore{
		matches:  NewMatchRepository(db),
		messages: NewMessageRepository(db),
	}
}

func (s *ChatStore) MatchesForUser(ctx context.Context, userID string) ([]models.Match, error) {
	return s.matches.MatchesForUser(ctx, userID)
}

func (s *ChatStore) MatchByID(ctx context.Context, matchID string) (*models.Match, error) {
	return s.matches.MatchByID(ctx, matchID)
}

func (s *ChatStore) MarkMessagesRead(ctx context.Context, matchID, readerID string) error {
	return s.messages.MarkMessagesRead(ctx, matchID, readerID)
}
