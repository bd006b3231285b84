package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"teamup-service/internal/models"
)

var (
	ErrClientDisconnected = fmt.Errorf("client disconnected")
)

// MatchStore is the persistence collaborator the hub consumes.
// MatchByID returns (nil, nil) when the match does not exist.
type MatchStore interface {
	MatchesForUser(ctx context.Context, userID string) ([]models.Match, error)
	MatchByID(ctx context.Context, matchID string) (*models.Match, error)
	MarkMessagesRead(ctx context.Context, matchID, readerID string) error
}

// Presence receives online/offline transitions on admit and teardown.
// Failures there are logged and never affect registry state.
type Presence interface {
	SetOnline(ctx context.Context, userID string) error
	SetOffline(ctx context.Context, userID string) error
}

// Hub owns the connection registry and subscription index and is the
// only place that mutates them. REST handlers reach the socket layer
// exclusively through its exported methods.
type Hub struct {
	registry *Registry
	store    MatchStore
	presence Presence
	metrics  *Metrics
}

func NewHub(store MatchStore, presence Presence) *Hub {
	return &Hub{
		registry: NewRegistry(),
		store:    store,
		presence: presence,
		metrics:  &Metrics{},
	}
}

func (h *Hub) Metrics() *Metrics { return h.metrics }

func (h *Hub) IsUserConnected(userID string) bool { return h.registry.IsConnected(userID) }

func (h *Hub) ConnectedUserIDs() []string { return h.registry.ConnectedUserIDs() }

// Admit takes an authenticated, already-upgraded socket through the
// admission path: load the user's matches, install the connection and
// its subscriptions in a single registry mutation, start the pumps and
// send the welcome frame. The match load happens before any registry
// mutation, so a failure there leaves no state behind.
func (h *Hub) Admit(ctx context.Context, userID string, conn Socket) error {
	matches, err := h.store.MatchesForUser(ctx, userID)
	if err != nil {
		conn.Close()
		return fmt.Errorf("load matches for %s: %w", userID, err)
	}
	matchIDs := make([]string, 0, len(matches))
	for _, m := range matches {
		matchIDs = append(matchIDs, m.ID)
	}

	c := newClient(userID, conn)
	if displaced := h.registry.register(c, matchIDs); displaced != nil {
		slog.Info("replacing existing connection", "userID", userID, "oldClientID", displaced.id)
		displaced.shutdown()
	}

	go c.writePump()
	go c.readPump(h)

	h.sendEvent(c, NewConnectedEvent(userID, matchIDs))
	slog.Info("client admitted", "clientID", c.id, "userID", userID, "matches", len(matchIDs))

	h.setOnline(c, matchIDs)
	return nil
}

// drop is the teardown path. Safe to run twice for the same client,
// and a no-op for a client that was already displaced by a newer
// connection for the same user.
func (h *Hub) drop(c *client) {
	c.shutdown()
	matchIDs, removed := h.registry.remove(c)
	if !removed {
		return
	}
	slog.Info("client disconnected", "clientID", c.id, "userID", c.userID)
	h.setOffline(c, matchIDs)
}

// handleFrame routes one inbound frame. Malformed payloads answer with
// an error event and keep the connection open; frames referencing a
// match the sender cannot see are dropped without any outward signal.
func (h *Hub) handleFrame(c *client, data []byte) {
	ctx := context.Background()

	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		h.metrics.MalformedFrames.Add(1)
		slog.Debug("malformed frame", "clientID", c.id, "userID", c.userID, "error", err)
		h.sendEvent(c, NewErrorEvent("Invalid message format"))
		return
	}
	if err := f.Validate(); err != nil {
		h.metrics.MalformedFrames.Add(1)
		h.sendEvent(c, NewErrorEvent("Invalid message format"))
		return
	}

	match, err := h.store.MatchByID(ctx, f.MatchID)
	if err != nil {
		slog.Error("match lookup failed", "matchID", f.MatchID, "error", err)
		return
	}
	if match == nil {
		h.metrics.UnknownMatchDrops.Add(1)
		return
	}
	if !match.HasParticipant(c.userID) {
		h.metrics.NotParticipantDrops.Add(1)
		return
	}

	switch f.Type {
	case FrameTyping:
		h.Broadcast(f.MatchID, NewTypingEvent(f.MatchID, c.userID, true), c.userID)

	case FrameStopTyping:
		h.Broadcast(f.MatchID, NewTypingEvent(f.MatchID, c.userID, false), c.userID)

	case FrameRead:
		// No broadcast if the write fails: partners must not be told
		// a read happened when it didn't.
		if err := h.store.MarkMessagesRead(ctx, f.MatchID, c.userID); err != nil {
			slog.Error("mark messages read failed", "matchID", f.MatchID, "userID", c.userID, "error", err)
			return
		}
		h.Broadcast(f.MatchID, NewMessagesReadEvent(f.MatchID, c.userID), c.userID)
	}
	h.metrics.FramesRouted.Add(1)
}

// Broadcast serializes ev once and delivers it to every currently
// connected subscriber of matchID except excludeUserID. Offline
// subscribers are skipped; that path belongs to push notifications.
func (h *Hub) Broadcast(matchID string, ev Event, excludeUserID string) {
	payload, err := json.Marshal(ev)
	if err != nil {
		slog.Error("failed to marshal event", "type", ev.eventType(), "error", err)
		return
	}
	for _, userID := range h.registry.SubscribersOf(matchID) {
		if userID == excludeUserID {
			continue
		}
		c, ok := h.registry.get(userID)
		if !ok {
			continue
		}
		if c.enqueue(payload) {
			h.metrics.EventsDelivered.Add(1)
		} else {
			h.metrics.SendDrops.Add(1)
		}
	}
}

// AddMatchSubscriptions subscribes both participants of a fresh match
// and tells each live one about it. Called synchronously with match
// creation so a message sent right after reaches both sockets.
func (h *Hub) AddMatchSubscriptions(match *models.Match) {
	for _, userID := range []string{match.User1ID, match.User2ID} {
		if !h.registry.subscribe(match.ID, userID) {
			continue
		}
		if c, ok := h.registry.get(userID); ok {
			h.sendEvent(c, NewNewMatchEvent(match.ID, match.User1ID, match.User2ID))
		}
	}
}

// BroadcastNewMessage fans a freshly persisted message out to every
// live subscriber of the match, the sender included.
func (h *Hub) BroadcastNewMessage(matchID string, message *models.MessageResponse) {
	h.Broadcast(matchID, NewNewMessageEvent(matchID, message), "")
}

// BroadcastPresence tells userID's match partners about an
// availability or online-state change. Nothing is sent when the user
// has no live connection.
func (h *Hub) BroadcastPresence(userID string, availableNow, online *bool) {
	matchIDs := h.registry.matchesOf(userID)
	if matchIDs == nil {
		return
	}
	ev := NewPresenceChangeEvent(userID, availableNow, online)
	for _, matchID := range matchIDs {
		h.Broadcast(matchID, ev, userID)
	}
}

// NotifySuperLike pings the recipient directly if they are live.
func (h *Hub) NotifySuperLike(toUserID, fromUserID string) {
	if c, ok := h.registry.get(toUserID); ok {
		h.sendEvent(c, NewSuperLikeEvent(fromUserID))
	}
}

// Shutdown closes every live connection. Used on server stop; presence
// state is left to its redis TTL rather than hammering redis with one
// write per connection.
func (h *Hub) Shutdown() {
	clients := h.registry.drain()
	for _, c := range clients {
		c.shutdown()
	}
	slog.Info("hub shut down", "connectionsClosed", len(clients))
}

func (h *Hub) sendEvent(c *client, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		slog.Error("failed to marshal event", "type", ev.eventType(), "error", err)
		return
	}
	if c.enqueue(payload) {
		h.metrics.EventsDelivered.Add(1)
	} else {
		h.metrics.SendDrops.Add(1)
	}
}

func (h *Hub) setOnline(c *client, matchIDs []string) {
	if h.presence != nil {
		if err := h.presence.SetOnline(context.Background(), c.userID); err != nil {
			slog.Error("failed to set user online", "userID", c.userID, "error", err)
		}
	}
	online := true
	ev := NewPresenceChangeEvent(c.userID, nil, &online)
	for _, matchID := range matchIDs {
		h.Broadcast(matchID, ev, c.userID)
	}
}

func (h *Hub) setOffline(c *client, matchIDs []string) {
	if h.presence != nil {
		if err := h.presence.SetOffline(context.Background(), c.userID); err != nil {
			slog.Error("failed to set user offline", "userID", c.userID, "error", err)
		}
	}
	online := false
	ev := NewPresenceChangeEvent(c.userID, nil, &online)
	for _, matchID := range matchIDs {
		h.Broadcast(matchID, ev, c.userID)
	}
}
