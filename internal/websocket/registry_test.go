package websocket

import (
	"sort"
	"testing"
)

func testClient(userID string) *client {
	return newClient(userID, newMockSocket())
}

// checkConsistent verifies the bidirectional invariant: every match id
// in a connection's subscription set appears in the index under that
// user, and every index entry points back to a live connection that
// carries the match id.
func checkConsistent(t *testing.T, r *Registry) {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()

	for userID, c := range r.conns {
		for matchID := range c.matches {
			if _, ok := r.subs[matchID][userID]; !ok {
				t.Errorf("user %s subscribed to %s but missing from index", userID, matchID)
			}
		}
	}
	for matchID, set := range r.subs {
		if len(set) == 0 {
			t.Errorf("index entry %s left empty instead of pruned", matchID)
		}
		for userID := range set {
			c, ok := r.conns[userID]
			if !ok {
				t.Errorf("index lists %s for match %s but user has no connection", userID, matchID)
				continue
			}
			if _, ok := c.matches[matchID]; !ok {
				t.Errorf("index lists %s for match %s but connection does not carry it", userID, matchID)
			}
		}
	}
}

func TestRegisterInstallsSubscriptions(t *testing.T) {
	r := NewRegistry()
	a := testClient("user-a")

	if displaced := r.register(a, []string{"m1", "m2"}); displaced != nil {
		t.Fatalf("unexpected displaced client: %v", displaced.id)
	}

	if !r.IsConnected("user-a") {
		t.Error("user-a should be connected")
	}
	subs := r.SubscribersOf("m1")
	if len(subs) != 1 || subs[0] != "user-a" {
		t.Errorf("expected [user-a] subscribed to m1, got %v", subs)
	}
	checkConsistent(t, r)
}

func TestRegisterReplacesExistingConnection(t *testing.T) {
	r := NewRegistry()
	first := testClient("user-a")
	second := testClient("user-a")

	r.register(first, []string{"m1"})
	displaced := r.register(second, []string{"m1", "m2"})

	if displaced != first {
		t.Fatal("expected the first connection to be displaced")
	}
	cur, ok := r.get("user-a")
	if !ok || cur != second {
		t.Fatal("expected the second connection to be current")
	}
	// The stale connection must hold no index memberships.
	if len(first.matches) != 0 {
		t.Errorf("displaced connection still carries %d subscriptions", len(first.matches))
	}
	if got := len(r.SubscribersOf("m1")); got != 1 {
		t.Errorf("expected a single m1 subscriber after replacement, got %d", got)
	}
	checkConsistent(t, r)
}

func TestRemoveIsIdempotent(t *testing.T) {
	r := NewRegistry()
	a := testClient("user-a")
	b := testClient("user-b")
	r.register(a, []string{"m1"})
	r.register(b, []string{"m1", "m2"})

	matchIDs, removed := r.remove(a)
	if !removed {
		t.Fatal("first remove should report removal")
	}
	if len(matchIDs) != 1 || matchIDs[0] != "m1" {
		t.Errorf("expected [m1] from remove, got %v", matchIDs)
	}
	if _, removed := r.remove(a); removed {
		t.Error("second remove should be a no-op")
	}

	// user-b untouched.
	subs := r.SubscribersOf("m1")
	if len(subs) != 1 || subs[0] != "user-b" {
		t.Errorf("expected user-b to survive user-a teardown, got %v", subs)
	}
	checkConsistent(t, r)
}

func TestRemoveIgnoresDisplacedConnection(t *testing.T) {
	r := NewRegistry()
	first := testClient("user-a")
	second := testClient("user-a")
	r.register(first, []string{"m1"})
	r.register(second, []string{"m1"})

	// The displaced connection's late teardown must not evict the
	// replacement.
	if _, removed := r.remove(first); removed {
		t.Error("removing a displaced connection should be a no-op")
	}
	if !r.IsConnected("user-a") {
		t.Error("user-a should still be connected through the second socket")
	}
	checkConsistent(t, r)
}

func TestSubscribeUnsubscribe(t *testing.T) {
	r := NewRegistry()
	a := testClient("user-a")
	r.register(a, nil)

	if !r.subscribe("m1", "user-a") {
		t.Fatal("subscribe for a connected user should succeed")
	}
	r.subscribe("m1", "user-a") // idempotent
	if got := len(r.SubscribersOf("m1")); got != 1 {
		t.Errorf("expected one subscriber after duplicate subscribe, got %d", got)
	}

	if r.subscribe("m1", "user-offline") {
		t.Error("subscribe for an offline user should be a no-op")
	}

	r.unsubscribe("m1", "user-a")
	r.unsubscribe("m1", "user-a") // idempotent
	if got := len(r.SubscribersOf("m1")); got != 0 {
		t.Errorf("expected no subscribers after unsubscribe, got %d", got)
	}
	checkConsistent(t, r)
}

func TestConnectedUserIDs(t *testing.T) {
	r := NewRegistry()
	r.register(testClient("user-a"), nil)
	r.register(testClient("user-b"), []string{"m1"})

	ids := r.ConnectedUserIDs()
	sort.Strings(ids)
	if len(ids) != 2 || ids[0] != "user-a" || ids[1] != "user-b" {
		t.Errorf("expected [user-a user-b], got %v", ids)
	}
}

// Invariant holds across an arbitrary interleaving of operations.
func TestInvariantAcrossOperationSequence(t *testing.T) {
	r := NewRegistry()
	a := testClient("user-a")
	b := testClient("user-b")
	c := testClient("user-c")

	r.register(a, []string{"m1", "m2"})
	checkConsistent(t, r)
	r.register(b, []string{"m1"})
	checkConsistent(t, r)
	r.subscribe("m3", "user-a")
	checkConsistent(t, r)
	r.register(c, []string{"m2", "m3"})
	checkConsistent(t, r)
	r.unsubscribe("m2", "user-a")
	checkConsistent(t, r)
	r.remove(b)
	checkConsistent(t, r)
	a2 := testClient("user-a")
	r.register(a2, []string{"m3"})
	checkConsistent(t, r)
	r.remove(c)
	checkConsistent(t, r)
	r.remove(a2)
	checkConsistent(t, r)

	if got := len(r.ConnectedUserIDs()); got != 0 {
		t.Errorf("expected empty registry, got %d connections", got)
	}
}
