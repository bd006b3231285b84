package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"teamup-service/internal/models"
	"teamup-service/internal/repositories/postgres"
	"teamup-service/internal/websocket"

	"github.com/google/uuid"
)

var (
	ErrMatchNotFound  = errors.New("match not found")
	ErrNotParticipant = errors.New("not a participant of this match")
)

type MessageService struct {
	matches  *postgres.MatchRepository
	messages *postgres.MessageRepository
	hub      *websocket.Hub
	push     *PushService
}

func NewMessageService(
	matches *postgres.MatchRepository,
	messages *postgres.MessageRepository,
	hub *websocket.Hub,
	push *PushService,
) *MessageService {
	return &MessageService{
		matches:  matches,
		messages: messages,
		hub:      hub,
		push:     push,
	}
}

// Send persists the message, fans it out to both live sockets and
// falls back to a push notification when the recipient is offline.
func (s *MessageService) Send(ctx context.Context, senderID string, req *models.CreateMessageRequest) (*models.MessageResponse, error) {
	match, err := s.matches.MatchByID(ctx, req.MatchID)
	if err != nil {
		return nil, fmt.Errorf("lookup match: %w", err)
	}
	if match == nil {
		return nil, ErrMatchNotFound
	}
	if !match.HasParticipant(senderID) {
		return nil, ErrNotParticipant
	}

	message := &models.Message{
		ID:       uuid.New().String(),
		MatchID:  req.MatchID,
		SenderID: senderID,
		Content:  req.Content,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	if err := s.matches.TouchLastMessageAt(ctx, req.MatchID); err != nil {
		slog.Error("failed to touch last_message_at", "matchID", req.MatchID, "error", err)
	}

	resp := message.ToResponse()
	s.hub.BroadcastNewMessage(req.MatchID, resp)

	recipient := match.OtherParticipant(senderID)
	if !s.hub.IsUserConnected(recipient) {
		s.push.NotifyNewMessage(recipient, senderID, req.MatchID, req.Content)
	}
	return resp, nil
}

// History returns the conversation and marks everything the caller
// hadn't read yet as read, matching what a chat screen open does.
func (s *MessageService) History(ctx context.Context, userID, matchID string) ([]models.Message, error) {
	match, err := s.matches.MatchByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("lookup match: %w", err)
	}
	if match == nil {
		return nil, ErrMatchNotFound
	}
	if !match.HasParticipant(userID) {
		return nil, ErrNotParticipant
	}

	messages, err := s.messages.MessagesForMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if err := s.messages.MarkMessagesRead(ctx, matchID, userID); err != nil {
		slog.Error("failed to mark messages read", "matchID", matchID, "userID", userID, "error", err)
	}
	return messages, nil
}
