package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"teamup-service/internal/database"

	"github.com/redis/go-redis/v9"
)

type RedisService struct {
	client *database.RedisClient
}

func NewRedisService(client *database.RedisClient) *RedisService {
	return &RedisService{client: client}
}

// =============================================================================
// User Status Management
// =============================================================================

func (r *RedisService) SetOnline(ctx context.Context, userID string) error {
	pipe := r.client.GetClient().Pipeline()

	pipe.SAdd(ctx, "online_users", userID)
	pipe.HSet(ctx, fmt.Sprintf("user:%s:status", userID), map[string]interface{}{
		"status":     "online",
		"updated_at": time.Now().Unix(),
	})
	pipe.Expire(ctx, fmt.Sprintf("user:%s:status", userID), 5*time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	slog.Debug("user set to online", "userID", userID)
	return nil
}

func (r *RedisService) SetOffline(ctx context.Context, userID string) error {
	pipe := r.client.GetClient().Pipeline()

	pipe.SRem(ctx, "online_users", userID)
	pipe.HSet(ctx, fmt.Sprintf("user:%s:status", userID), map[string]interface{}{
		"status":     "offline",
		"last_seen":  time.Now().Unix(),
		"updated_at": time.Now().Unix(),
	})
	pipe.Expire(ctx, fmt.Sprintf("user:%s:status", userID), 24*time.Hour)

	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	slog.Debug("user set to offline", "userID", userID)
	return nil
}

func (r *RedisService) IsUserOnline(ctx context.Context, userID string) (bool, error) {
	return r.client.GetClient().SIsMember(ctx, "online_users", userID).Result()
}

func (r *RedisService) GetOnlineUsers(ctx context.Context) ([]string, error) {
	return r.client.GetClient().SMembers(ctx, "online_users").Result()
}

// =============================================================================
// Daily Swipe Counters
// =============================================================================

// swipeCountKey buckets counters by UTC day so the limit resets at
// midnight without a cleanup job.
func swipeCountKey(userID string, now time.Time) string {
	return fmt.Sprintf("swipes:%s:%s", userID, now.UTC().Format("2006-01-02"))
}

func (r *RedisService) DailySwipeCount(ctx context.Context, userID string) (int64, error) {
	count, err := r.client.GetClient().Get(ctx, swipeCountKey(userID, time.Now())).Int64()
	if errors.Is(err, redis.Nil) {
		// Missing key means no swipes today.
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *RedisService) IncrementDailySwipeCount(ctx context.Context, userID string) (int64, error) {
	key := swipeCountKey(userID, time.Now())
	pipe := r.client.GetClient().Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, 48*time.Hour)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// =============================================================================
// Rate Limiting
// =============================================================================

// CheckRateLimit implements a fixed-window counter. The first request in a
// window creates the key with an expiry; subsequent requests increment it.
func (r *RedisService) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	pipe := r.client.GetClient().Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return incr.Val() <= int64(limit), nil
}
