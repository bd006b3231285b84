package services

import (
	"context"
	"log/slog"

	"teamup-service/internal/models"
	"teamup-service/internal/repositories/postgres"
)

type MatchService struct {
	matches  *postgres.MatchRepository
	messages *postgres.MessageRepository
	users    *postgres.UserRepository
}

func NewMatchService(
	matches *postgres.MatchRepository,
	messages *postgres.MessageRepository,
	users *postgres.UserRepository,
) *MatchService {
	return &MatchService{
		matches:  matches,
		messages: messages,
		users:    users,
	}
}

// ListForUser returns the user's matches enriched with the partner's
// profile, the latest message and the unread count, newest first.
func (s *MatchService) ListForUser(ctx context.Context, userID string) ([]models.MatchResponse, error) {
	matches, err := s.matches.MatchesForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]models.MatchResponse, 0, len(matches))
	for _, m := range matches {
		resp := m.ToResponse()

		otherID := m.OtherParticipant(userID)
		other, err := s.users.GetByID(ctx, otherID)
		if err != nil {
			slog.Error("failed to load match partner", "matchID", m.ID, "userID", otherID, "error", err)
		} else if other != nil {
			u := other.ToResponse()
			resp.OtherUser = &u
		}

		last, err := s.messages.LastMessage(ctx, m.ID)
		if err != nil {
			slog.Error("failed to load last message", "matchID", m.ID, "error", err)
		} else if last != nil {
			resp.LastMessage = last.ToResponse()
		}

		unread, err := s.messages.UnreadCount(ctx, m.ID, userID)
		if err != nil {
			slog.Error("failed to count unread messages", "matchID", m.ID, "error", err)
		} else {
			resp.UnreadCount = unread
		}

		out = append(out, *resp)
	}
	return out, nil
}
