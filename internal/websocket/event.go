package websocket

import "fmt"

// EventType represents the type of an outbound WebSocket event using a
// custom enum type for better type safety
type EventType string

const (
	EventConnected      EventType = "connected"
	EventNewMessage     EventType = "new_message"
	EventTyping         EventType = "typing"
	EventStopTyping     EventType = "stop_typing"
	EventMessagesRead   EventType = "messages_read"
	EventNewMatch       EventType = "new_match"
	EventPresenceChange EventType = "presence_change"
	EventSuperLike      EventType = "super_like"
	EventError          EventType = "error"
)

func (et EventType) String() string {
	return string(et)
}

// Event is the closed set of frames the server pushes to clients.
// Every event carries its type discriminator in the wire payload;
// construction goes through the New*Event functions only.
type Event interface {
	eventType() EventType
}

type ConnectedEvent struct {
	Type     EventType `json:"type"`
	UserID   string    `json:"userId"`
	MatchIDs []string  `json:"matchIds"`
}

func (ConnectedEvent) eventType() EventType { return EventConnected }

func NewConnectedEvent(userID string, matchIDs []string) *ConnectedEvent {
	if matchIDs == nil {
		matchIDs = []string{}
	}
	return &ConnectedEvent{Type: EventConnected, UserID: userID, MatchIDs: matchIDs}
}

type NewMessageEvent struct {
	Type    EventType `json:"type"`
	MatchID string    `json:"matchId"`
	Message any       `json:"message"`
}

func (NewMessageEvent) eventType() EventType { return EventNewMessage }

func NewNewMessageEvent(matchID string, message any) *NewMessageEvent {
	return &NewMessageEvent{Type: EventNewMessage, MatchID: matchID, Message: message}
}

// TypingEvent doubles as the stop_typing frame; the two differ only in
// the discriminator.
type TypingEvent struct {
	Type    EventType `json:"type"`
	MatchID string    `json:"matchId"`
	UserID  string    `json:"userId"`
}

func (e TypingEvent) eventType() EventType { return e.Type }

func NewTypingEvent(matchID, userID string, typing bool) *TypingEvent {
	t := EventTyping
	if !typing {
		t = EventStopTyping
	}
	return &TypingEvent{Type: t, MatchID: matchID, UserID: userID}
}

type MessagesReadEvent struct {
	Type    EventType `json:"type"`
	MatchID string    `json:"matchId"`
	ReadBy  string    `json:"readBy"`
}

func (MessagesReadEvent) eventType() EventType { return EventMessagesRead }

func NewMessagesReadEvent(matchID, readBy string) *MessagesReadEvent {
	return &MessagesReadEvent{Type: EventMessagesRead, MatchID: matchID, ReadBy: readBy}
}

type NewMatchEvent struct {
	Type    EventType `json:"type"`
	MatchID string    `json:"matchId"`
	User1ID string    `json:"user1Id"`
	User2ID string    `json:"user2Id"`
}

func (NewMatchEvent) eventType() EventType { return EventNewMatch }

func NewNewMatchEvent(matchID, user1ID, user2ID string) *NewMatchEvent {
	return &NewMatchEvent{Type: EventNewMatch, MatchID: matchID, User1ID: user1ID, User2ID: user2ID}
}

type PresenceChangeEvent struct {
	Type           EventType `json:"type"`
	UserID         string    `json:"userId"`
	IsAvailableNow *bool     `json:"isAvailableNow,omitempty"`
	IsOnline       *bool     `json:"isOnline,omitempty"`
}

func (PresenceChangeEvent) eventType() EventType { return EventPresenceChange }

func NewPresenceChangeEvent(userID string, availableNow, online *bool) *PresenceChangeEvent {
	return &PresenceChangeEvent{Type: EventPresenceChange, UserID: userID, IsAvailableNow: availableNow, IsOnline: online}
}

type SuperLikeEvent struct {
	Type       EventType `json:"type"`
	FromUserID string    `json:"fromUserId"`
}

func (SuperLikeEvent) eventType() EventType { return EventSuperLike }

func NewSuperLikeEvent(fromUserID string) *SuperLikeEvent {
	return &SuperLikeEvent{Type: EventSuperLike, FromUserID: fromUserID}
}

type ErrorEvent struct {
	Type    EventType `json:"type"`
	Message string    `json:"message"`
}

func (ErrorEvent) eventType() EventType { return EventError }

func NewErrorEvent(message string) *ErrorEvent {
	return &ErrorEvent{Type: EventError, Message: message}
}

// FrameType represents the type of an inbound client frame.
type FrameType string

const (
	FrameTyping     FrameType = "typing"
	FrameStopTyping FrameType = "stop_typing"
	FrameRead       FrameType = "read"
)

func (ft FrameType) IsValid() bool {
	switch ft {
	case FrameTyping, FrameStopTyping, FrameRead:
		return true
	default:
		return false
	}
}

// Frame is an inbound client frame. SenderID is informational only;
// the authenticated connection's user id is authoritative everywhere.
type Frame struct {
	Type     FrameType `json:"type"`
	MatchID  string    `json:"matchId"`
	SenderID string    `json:"senderId"`
}

func (f *Frame) Validate() error {
	if !f.Type.IsValid() {
		return fmt.Errorf("invalid frame type: %q", f.Type)
	}
	if f.MatchID == "" {
		return fmt.Errorf("matchId is required")
	}
	return nil
}
