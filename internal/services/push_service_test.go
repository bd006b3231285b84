package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
)

func TestPushServicePublishesKeyedByRecipient(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	defer producer.Close()

	published := make(chan *sarama.ProducerMessage, 1)
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		published <- msg
		return nil
	})

	svc := NewPushService(producer, "push-notifications")
	svc.NotifyNewMessage("user-2", "user-1", "match-1", "see you at 8")

	select {
	case msg := <-published:
		if msg.Topic != "push-notifications" {
			t.Errorf("topic = %q, want push-notifications", msg.Topic)
		}
		key, err := msg.Key.Encode()
		if err != nil {
			t.Fatalf("encode key: %v", err)
		}
		if string(key) != "user-2" {
			t.Errorf("key = %q, want recipient id user-2", key)
		}
		value, err := msg.Value.Encode()
		if err != nil {
			t.Fatalf("encode value: %v", err)
		}
		var payload map[string]any
		if err := json.Unmarshal(value, &payload); err != nil {
			t.Fatalf("payload is not valid JSON: %v", err)
		}
		if payload["kind"] != PushKindNewMessage {
			t.Errorf("kind = %v, want %q", payload["kind"], PushKindNewMessage)
		}
		if payload["userId"] != "user-2" || payload["fromUserId"] != "user-1" {
			t.Errorf("unexpected recipient fields: %v", payload)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no message published within 2s")
	}
}

func TestPushServiceNilProducerIsNoOp(t *testing.T) {
	svc := NewPushService(nil, "push-notifications")

	// Must not panic or block when Kafka is not configured.
	svc.NotifyNewMessage("user-2", "user-1", "match-1", "hi")
	svc.NotifyNewMatch("user-2", "user-1", "match-1")
	svc.NotifySuperLike("user-2", "user-1")
}
