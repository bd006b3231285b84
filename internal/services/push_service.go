package services

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/IBM/sarama"
)

// Push notification kinds consumed by the delivery worker downstream
// of the Kafka topic.
const (
	PushKindNewMessage = "new_message"
	PushKindNewMatch   = "new_match"
	PushKindSuperLike  = "super_like"
)

type pushPayload struct {
	Kind       string `json:"kind"`
	UserID     string `json:"userId"`
	FromUserID string `json:"fromUserId,omitempty"`
	MatchID    string `json:"matchId,omitempty"`
	Title      string `json:"title"`
	Body       string `json:"body,omitempty"`
	SentAt     int64  `json:"sentAt"`
}

// PushService hands notification events to Kafka for the external
// delivery worker. Publishing is fire-and-forget from the caller's
// perspective: each publish runs on its own goroutine and a broker
// failure is logged, never propagated, so broadcast and registry state
// stay untouched.
type PushService struct {
	producer sarama.SyncProducer
	topic    string
}

func NewPushService(producer sarama.SyncProducer, topic string) *PushService {
	return &PushService{producer: producer, topic: topic}
}

func (s *PushService) NotifyNewMessage(toUserID, fromUserID, matchID, preview string) {
	s.publish(pushPayload{
		Kind:       PushKindNewMessage,
		UserID:     toUserID,
		FromUserID: fromUserID,
		MatchID:    matchID,
		Title:      "New message",
		Body:       preview,
	})
}

func (s *PushService) NotifyNewMatch(toUserID, otherUserID, matchID string) {
	s.publish(pushPayload{
		Kind:       PushKindNewMatch,
		UserID:     toUserID,
		FromUserID: otherUserID,
		MatchID:    matchID,
		Title:      "It's a match!",
	})
}

func (s *PushService) NotifySuperLike(toUserID, fromUserID string) {
	s.publish(pushPayload{
		Kind:       PushKindSuperLike,
		UserID:     toUserID,
		FromUserID: fromUserID,
		Title:      "Someone super liked you",
	})
}

func (s *PushService) publish(p pushPayload) {
	if s == nil || s.producer == nil {
		return
	}
	p.SentAt = time.Now().Unix()

	go func() {
		data, err := json.Marshal(p)
		if err != nil {
			slog.Error("failed to marshal push payload", "kind", p.Kind, "error", err)
			return
		}
		// Keyed by recipient so one user's notifications stay ordered.
		_, _, err = s.producer.SendMessage(&sarama.ProducerMessage{
			Topic: s.topic,
			Key:   sarama.StringEncoder(p.UserID),
			Value: sarama.ByteEncoder(data),
		})
		if err != nil {
			slog.Error("failed to publish push notification", "kind", p.Kind, "userID", p.UserID, "error", err)
			return
		}
		slog.Debug("push notification queued", "kind", p.Kind, "userID", p.UserID)
	}()
}
