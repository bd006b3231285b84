package websocket

import (
	"context"
	"testing"
	"time"

	"teamup-service/internal/models"
)

const eventWait = 2 * time.Second

func admit(t *testing.T, h *Hub, userID string) *mockSocket {
	t.Helper()
	sock := newMockSocket()
	if err := h.Admit(context.Background(), userID, sock); err != nil {
		t.Fatalf("admit %s: %v", userID, err)
	}
	t.Cleanup(func() { sock.Close() })
	if sock.waitForEvent(EventConnected, eventWait) == nil {
		t.Fatalf("no connected event for %s", userID)
	}
	return sock
}

func match(id, u1, u2 string) models.Match {
	return models.Match{ID: id, User1ID: u1, User2ID: u2}
}

func TestAdmissionSendsConnectedEventWithMatchIDs(t *testing.T) {
	store := newFakeMatchStore(match("m1", "user-a", "user-b"))
	h := NewHub(store, nil)

	sock := admit(t, h, "user-a")

	ev := sock.waitForEvent(EventConnected, eventWait)
	if ev["userId"] != "user-a" {
		t.Errorf("connected event userId = %v", ev["userId"])
	}
	ids, ok := ev["matchIds"].([]any)
	if !ok || len(ids) != 1 || ids[0] != "m1" {
		t.Errorf("connected event matchIds = %v", ev["matchIds"])
	}
	if !h.IsUserConnected("user-a") {
		t.Error("user-a should be connected after admission")
	}
}

func TestTypingRoundTrip(t *testing.T) {
	store := newFakeMatchStore(match("m1", "user-a", "user-b"))
	h := NewHub(store, nil)
	sockA := admit(t, h, "user-a")
	sockB := admit(t, h, "user-b")

	sockA.pushFrame([]byte(`{"type":"typing","matchId":"m1","senderId":"user-a"}`))

	ev := sockB.waitForEvent(EventTyping, eventWait)
	if ev == nil {
		t.Fatal("B never received the typing event")
	}
	if ev["userId"] != "user-a" || ev["matchId"] != "m1" {
		t.Errorf("unexpected typing event: %v", ev)
	}
	if got := len(sockB.eventsOfType(EventTyping)); got != 1 {
		t.Errorf("B should receive exactly one typing event, got %d", got)
	}
	if got := len(sockA.eventsOfType(EventTyping)); got != 0 {
		t.Errorf("sender must be excluded, but A received %d typing events", got)
	}
}

func TestReadReceipt(t *testing.T) {
	store := newFakeMatchStore(match("m1", "user-a", "user-b"))
	h := NewHub(store, nil)
	sockA := admit(t, h, "user-a")
	sockB := admit(t, h, "user-b")

	sockA.pushFrame([]byte(`{"type":"read","matchId":"m1","senderId":"user-a"}`))

	ev := sockB.waitForEvent(EventMessagesRead, eventWait)
	if ev == nil {
		t.Fatal("B never received messages_read")
	}
	if ev["readBy"] != "user-a" {
		t.Errorf("messages_read readBy = %v", ev["readBy"])
	}
	calls := store.readCalls()
	if len(calls) != 1 || calls[0] != [2]string{"m1", "user-a"} {
		t.Errorf("unexpected markRead calls: %v", calls)
	}
	if got := len(sockA.eventsOfType(EventMessagesRead)); got != 0 {
		t.Errorf("reader must not be echoed messages_read, got %d", got)
	}
}

func TestReadReceiptNotBroadcastWhenWriteFails(t *testing.T) {
	store := newFakeMatchStore(match("m1", "user-a", "user-b"))
	store.failMarkRead = true
	h := NewHub(store, nil)
	sockA := admit(t, h, "user-a")
	sockB := admit(t, h, "user-b")

	sockA.pushFrame([]byte(`{"type":"read","matchId":"m1","senderId":"user-a"}`))

	time.Sleep(150 * time.Millisecond)
	if got := len(sockB.eventsOfType(EventMessagesRead)); got != 0 {
		t.Errorf("messages_read broadcast despite failed write, got %d events", got)
	}
}

func TestNonParticipantFrameSilentlyDropped(t *testing.T) {
	store := newFakeMatchStore(match("m1", "user-a", "user-b"))
	h := NewHub(store, nil)
	sockA := admit(t, h, "user-a")
	sockB := admit(t, h, "user-b")
	sockC := admit(t, h, "user-c")

	sockC.pushFrame([]byte(`{"type":"typing","matchId":"m1","senderId":"user-c"}`))

	time.Sleep(150 * time.Millisecond)
	if got := len(sockA.eventsOfType(EventTyping)) + len(sockB.eventsOfType(EventTyping)); got != 0 {
		t.Errorf("participants received %d events from an outsider frame", got)
	}
	if got := len(sockC.eventsOfType(EventError)); got != 0 {
		t.Errorf("outsider must get silence, not errors; got %d", got)
	}
	if got := h.Metrics().NotParticipantDrops.Load(); got != 1 {
		t.Errorf("NotParticipantDrops = %d, want 1", got)
	}
}

func TestUnknownMatchFrameSilentlyDropped(t *testing.T) {
	store := newFakeMatchStore(match("m1", "user-a", "user-b"))
	h := NewHub(store, nil)
	sockA := admit(t, h, "user-a")

	sockA.pushFrame([]byte(`{"type":"typing","matchId":"no-such-match","senderId":"user-a"}`))

	time.Sleep(150 * time.Millisecond)
	if got := len(sockA.eventsOfType(EventError)); got != 0 {
		t.Errorf("unknown match must not surface an error, got %d", got)
	}
	if got := h.Metrics().UnknownMatchDrops.Load(); got != 1 {
		t.Errorf("UnknownMatchDrops = %d, want 1", got)
	}
}

func TestMalformedFrameAnswersErrorAndKeepsConnection(t *testing.T) {
	store := newFakeMatchStore(match("m1", "user-a", "user-b"))
	h := NewHub(store, nil)
	sockA := admit(t, h, "user-a")
	sockB := admit(t, h, "user-b")

	sockA.pushFrame([]byte(`{not json`))

	if sockA.waitForEvent(EventError, eventWait) == nil {
		t.Fatal("sender should get an error event for malformed payload")
	}
	if !h.IsUserConnected("user-a") {
		t.Error("connection must survive a malformed frame")
	}

	// Subsequent frames on the same connection still work.
	sockA.pushFrame([]byte(`{"type":"typing","matchId":"m1","senderId":"user-a"}`))
	if sockB.waitForEvent(EventTyping, eventWait) == nil {
		t.Error("frames after a malformed one should still be routed")
	}
}

func TestBroadcastExclusion(t *testing.T) {
	store := newFakeMatchStore(match("m1", "user-a", "user-b"))
	h := NewHub(store, nil)
	sockA := admit(t, h, "user-a")
	sockB := admit(t, h, "user-b")

	h.Broadcast("m1", NewTypingEvent("m1", "user-a", true), "user-a")

	if sockB.waitForEvent(EventTyping, eventWait) == nil {
		t.Fatal("B should receive the broadcast")
	}
	time.Sleep(50 * time.Millisecond)
	if got := len(sockA.eventsOfType(EventTyping)); got != 0 {
		t.Errorf("excluded user received %d events", got)
	}
}

func TestOfflineSubscriberSkipped(t *testing.T) {
	store := newFakeMatchStore(match("m1", "user-a", "user-b"))
	h := NewHub(store, nil)
	sockA := admit(t, h, "user-a")
	// user-b never connects.

	h.BroadcastNewMessage("m1", &models.MessageResponse{ID: "msg1", MatchID: "m1", SenderID: "user-b", Content: "hi"})

	ev := sockA.waitForEvent(EventNewMessage, eventWait)
	if ev == nil {
		t.Fatal("online participant should receive the message")
	}
	if ev["matchId"] != "m1" {
		t.Errorf("new_message matchId = %v", ev["matchId"])
	}
}

func TestMutualMatchFanOut(t *testing.T) {
	store := newFakeMatchStore()
	h := NewHub(store, nil)
	sockA := admit(t, h, "user-a")
	sockB := admit(t, h, "user-b")

	// Match created by the REST layer; subscriptions must be installed
	// before new_match goes out so an immediate message reaches both.
	m := match("m-new", "user-a", "user-b")
	store.addMatch(m)
	h.AddMatchSubscriptions(&m)
	h.BroadcastNewMessage("m-new", &models.MessageResponse{ID: "msg1", MatchID: "m-new", SenderID: "user-a", Content: "gg"})

	for name, sock := range map[string]*mockSocket{"A": sockA, "B": sockB} {
		if sock.waitForEvent(EventNewMatch, eventWait) == nil {
			t.Errorf("%s never received new_match", name)
		}
		if sock.waitForEvent(EventNewMessage, eventWait) == nil {
			t.Errorf("%s never received the follow-up message", name)
		}
	}
}

func TestReconnectReplacesConnection(t *testing.T) {
	store := newFakeMatchStore(match("m1", "user-a", "user-b"))
	h := NewHub(store, nil)
	oldSock := admit(t, h, "user-a")
	newSock := admit(t, h, "user-a")

	oldCount := len(oldSock.eventsOfType(EventTyping))

	h.Broadcast("m1", NewTypingEvent("m1", "user-b", true), "user-b")

	if newSock.waitForEvent(EventTyping, eventWait) == nil {
		t.Fatal("replacement socket should receive broadcasts")
	}
	time.Sleep(50 * time.Millisecond)
	if got := len(oldSock.eventsOfType(EventTyping)); got != oldCount {
		t.Error("stale socket received a broadcast after replacement")
	}
}

func TestSuperLikeDirectDelivery(t *testing.T) {
	store := newFakeMatchStore()
	h := NewHub(store, nil)
	sockB := admit(t, h, "user-b")

	h.NotifySuperLike("user-b", "user-a")
	h.NotifySuperLike("user-offline", "user-a") // must not panic

	ev := sockB.waitForEvent(EventSuperLike, eventWait)
	if ev == nil {
		t.Fatal("recipient never received super_like")
	}
	if ev["fromUserId"] != "user-a" {
		t.Errorf("super_like fromUserId = %v", ev["fromUserId"])
	}
}

func TestPresenceChangeReachesPartnersOnly(t *testing.T) {
	store := newFakeMatchStore(match("m1", "user-a", "user-b"))
	h := NewHub(store, nil)
	sockA := admit(t, h, "user-a")
	sockB := admit(t, h, "user-b")

	before := len(sockA.eventsOfType(EventPresenceChange))
	available := true
	h.BroadcastPresence("user-a", &available, nil)

	ev := sockB.waitForEvent(EventPresenceChange, eventWait)
	if ev == nil {
		t.Fatal("partner never received presence_change")
	}
	time.Sleep(50 * time.Millisecond)
	if got := len(sockA.eventsOfType(EventPresenceChange)); got != before {
		t.Error("presence_change echoed back to its subject")
	}
}

func TestDisconnectPurgesSubscriptions(t *testing.T) {
	store := newFakeMatchStore(match("m1", "user-a", "user-b"))
	h := NewHub(store, nil)
	sockA := admit(t, h, "user-a")

	sockA.Close()

	deadline := time.Now().Add(eventWait)
	for h.IsUserConnected("user-a") && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if h.IsUserConnected("user-a") {
		t.Fatal("user-a still registered after socket close")
	}
	if got := len(h.registry.SubscribersOf("m1")); got != 0 {
		t.Errorf("stale subscriptions left behind: %d", got)
	}
}
