package services

import (
	"context"
	"fmt"

	"teamup-service/internal/repositories/postgres"
	"teamup-service/internal/websocket"
)

// PresenceService keeps the persisted availability flag and the redis
// online set in step and pushes presence_change events to the user's
// match partners through the hub.
type PresenceService struct {
	users *postgres.UserRepository
	redis *RedisService
	hub   *websocket.Hub
}

func NewPresenceService(users *postgres.UserRepository, redis *RedisService, hub *websocket.Hub) *PresenceService {
	return &PresenceService{users: users, redis: redis, hub: hub}
}

// SetAvailability flips the "looking to play right now" toggle and
// tells the user's live match partners.
func (s *PresenceService) SetAvailability(ctx context.Context, userID string, available bool) error {
	if err := s.users.UpdateAvailability(ctx, userID, available); err != nil {
		return fmt.Errorf("update availability: %w", err)
	}
	s.hub.BroadcastPresence(userID, &available, nil)
	return nil
}

func (s *PresenceService) IsOnline(ctx context.Context, userID string) (bool, error) {
	return s.redis.IsUserOnline(ctx, userID)
}

func (s *PresenceService) OnlineUsers(ctx context.Context) ([]string, error) {
	return s.redis.GetOnlineUsers(ctx)
}
