package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"teamup-service/internal/models"
	"teamup-service/internal/repositories/postgres"
	"teamup-service/internal/websocket"

	"github.com/google/uuid"
)

var ErrSwipeLimitReached = errors.New("daily swipe limit reached")

type SwipeService struct {
	swipes     *postgres.SwipeRepository
	matches    *postgres.MatchRepository
	redis      *RedisService
	hub        *websocket.Hub
	push       *PushService
	dailyLimit int64
}

func NewSwipeService(
	swipes *postgres.SwipeRepository,
	matches *postgres.MatchRepository,
	redis *RedisService,
	hub *websocket.Hub,
	push *PushService,
	dailyLimit int64,
) *SwipeService {
	return &SwipeService{
		swipes:     swipes,
		matches:    matches,
		redis:      redis,
		hub:        hub,
		push:       push,
		dailyLimit: dailyLimit,
	}
}

// Swipe records the action, enforces the daily limit and creates a
// match when the like is mutual. Subscriptions for a fresh match are
// installed on the hub before this returns, so a message sent right
// after the response reaches both live sockets.
func (s *SwipeService) Swipe(ctx context.Context, fromUserID string, req *models.SwipeRequest) (*models.SwipeResponse, error) {
	count, err := s.redis.DailySwipeCount(ctx, fromUserID)
	if err != nil {
		return nil, fmt.Errorf("read swipe count: %w", err)
	}
	if count >= s.dailyLimit {
		return nil, ErrSwipeLimitReached
	}

	swipe := &models.Swipe{
		ID:         uuid.New().String(),
		FromUserID: fromUserID,
		ToUserID:   req.ToUserID,
		SwipeType:  req.SwipeType,
	}
	if err := s.swipes.Create(ctx, swipe); err != nil {
		return nil, fmt.Errorf("record swipe: %w", err)
	}
	newCount, err := s.redis.IncrementDailySwipeCount(ctx, fromUserID)
	if err != nil {
		slog.Error("failed to increment swipe count", "userID", fromUserID, "error", err)
		newCount = count + 1
	}

	resp := &models.SwipeResponse{
		Swipe:      swipe,
		DailyCount: newCount,
		Limit:      s.dailyLimit,
		Remaining:  s.dailyLimit - newCount,
	}

	if req.SwipeType == models.SwipeTypePass {
		return resp, nil
	}

	if req.SwipeType == models.SwipeTypeSuper {
		s.hub.NotifySuperLike(req.ToUserID, fromUserID)
		s.push.NotifySuperLike(req.ToUserID, fromUserID)
	}

	mutual, err := s.swipes.HasLiked(ctx, req.ToUserID, fromUserID)
	if err != nil {
		return nil, fmt.Errorf("check mutual like: %w", err)
	}
	if !mutual {
		return resp, nil
	}

	existing, err := s.matches.MatchBetween(ctx, fromUserID, req.ToUserID)
	if err != nil {
		return nil, fmt.Errorf("lookup existing match: %w", err)
	}
	if existing != nil {
		return resp, nil
	}

	match := &models.Match{
		ID:        uuid.New().String(),
		User1ID:   fromUserID,
		User2ID:   req.ToUserID,
		CreatedAt: time.Now(),
	}
	if err := s.matches.Create(ctx, match); err != nil {
		return nil, fmt.Errorf("create match: %w", err)
	}
	slog.Info("match created", "matchID", match.ID, "user1", match.User1ID, "user2", match.User2ID)

	s.hub.AddMatchSubscriptions(match)
	s.push.NotifyNewMatch(match.User1ID, match.User2ID, match.ID)
	s.push.NotifyNewMatch(match.User2ID, match.User1ID, match.ID)

	resp.Match = match.ToResponse()
	return resp, nil
}

func (s *SwipeService) Status(ctx context.Context, userID string) (*models.SwipeStatusResponse, error) {
	count, err := s.redis.DailySwipeCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.SwipeStatusResponse{
		DailyCount: count,
		Limit:      s.dailyLimit,
		Remaining:  s.dailyLimit - count,
	}, nil
}
