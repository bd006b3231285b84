package websocket

import (
	"encoding/json"
	"testing"
)

func TestFrameValidate(t *testing.T) {
	cases := []struct {
		name    string
		frame   Frame
		wantErr bool
	}{
		{"typing frame", Frame{Type: FrameTyping, MatchID: "m1"}, false},
		{"stop typing frame", Frame{Type: FrameStopTyping, MatchID: "m1"}, false},
		{"read frame", Frame{Type: FrameRead, MatchID: "m1"}, false},
		{"unknown type", Frame{Type: "dance", MatchID: "m1"}, true},
		{"missing type", Frame{MatchID: "m1"}, true},
		{"missing match id", Frame{Type: FrameTyping}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.frame.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

// The client ignores unknown JSON keys, so an inbound frame with extra
// fields still parses; senderId is carried but never trusted.
func TestFrameUnmarshalIgnoresExtraFields(t *testing.T) {
	var f Frame
	raw := `{"type":"typing","matchId":"m1","senderId":"spoofed","color":"red"}`
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if f.SenderID != "spoofed" {
		t.Errorf("SenderID = %q, want carried verbatim", f.SenderID)
	}
}

func TestTypingEventDiscriminator(t *testing.T) {
	start := NewTypingEvent("m1", "u1", true)
	stop := NewTypingEvent("m1", "u1", false)

	if start.eventType() != EventTyping {
		t.Errorf("start event type = %v, want %v", start.eventType(), EventTyping)
	}
	if stop.eventType() != EventStopTyping {
		t.Errorf("stop event type = %v, want %v", stop.eventType(), EventStopTyping)
	}
}

// error events carry a string message while new_message events carry an
// object under the same key name on different event types; each must
// marshal with its own shape.
func TestErrorAndNewMessagePayloadShapes(t *testing.T) {
	errData, err := json.Marshal(NewErrorEvent("Invalid message format"))
	if err != nil {
		t.Fatalf("marshal error event: %v", err)
	}
	var errPayload struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(errData, &errPayload); err != nil {
		t.Fatalf("unmarshal error event: %v", err)
	}
	if errPayload.Type != "error" || errPayload.Message != "Invalid message format" {
		t.Errorf("unexpected error payload: %s", errData)
	}

	msgData, err := json.Marshal(NewNewMessageEvent("m1", map[string]string{"id": "msg-1"}))
	if err != nil {
		t.Fatalf("marshal new_message event: %v", err)
	}
	var msgPayload struct {
		Type    string            `json:"type"`
		MatchID string            `json:"matchId"`
		Message map[string]string `json:"message"`
	}
	if err := json.Unmarshal(msgData, &msgPayload); err != nil {
		t.Fatalf("unmarshal new_message event: %v", err)
	}
	if msgPayload.Type != "new_message" || msgPayload.MatchID != "m1" || msgPayload.Message["id"] != "msg-1" {
		t.Errorf("unexpected new_message payload: %s", msgData)
	}
}
