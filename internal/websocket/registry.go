package websocket

import "sync"

// Registry maps user ids to their single live connection and keeps the
// reverse index from match id to subscribed user ids. Both structures
// are updated together, so one mutex guards both; no method suspends
// while holding it.
type Registry struct {
	mu    sync.Mutex
	conns map[string]*client
	subs  map[string]map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[string]*client),
		subs:  make(map[string]map[string]struct{}),
	}
}

// register installs c as the live connection for its user and
// subscribes it to matchIDs in the same mutation. If the user already
// had a connection it is detached from the index first and returned so
// the caller can close it; its socket never sees another event.
func (r *Registry) register(c *client, matchIDs []string) (displaced *client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.conns[c.userID]; ok {
		r.detachLocked(old)
		displaced = old
	}
	r.conns[c.userID] = c
	for _, matchID := range matchIDs {
		c.matches[matchID] = struct{}{}
		r.addSubLocked(matchID, c.userID)
	}
	return displaced
}

// remove tears down c's registry state. It is a no-op when c is not
// the current connection for its user (double close, or the user
// reconnected and c was already displaced), which makes teardown
// idempotent. The returned ids are the matches c was subscribed to.
func (r *Registry) remove(c *client) (matchIDs []string, removed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.conns[c.userID]
	if !ok || cur != c {
		return nil, false
	}
	matchIDs = make([]string, 0, len(c.matches))
	for matchID := range c.matches {
		matchIDs = append(matchIDs, matchID)
	}
	r.detachLocked(c)
	delete(r.conns, c.userID)
	return matchIDs, true
}

func (r *Registry) get(userID string) (*client, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.conns[userID]
	return c, ok
}

func (r *Registry) IsConnected(userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.conns[userID]
	return ok
}

func (r *Registry) ConnectedUserIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.conns))
	for userID := range r.conns {
		ids = append(ids, userID)
	}
	return ids
}

// subscribe adds userID to matchID's subscriber set. Idempotent;
// a no-op for users without a live connection, keeping the connection
// set and the index mutually consistent.
func (r *Registry) subscribe(matchID, userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.conns[userID]
	if !ok {
		return false
	}
	c.matches[matchID] = struct{}{}
	r.addSubLocked(matchID, userID)
	return true
}

// unsubscribe is the idempotent inverse of subscribe.
func (r *Registry) unsubscribe(matchID, userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.conns[userID]; ok {
		delete(c.matches, matchID)
	}
	r.delSubLocked(matchID, userID)
}

// SubscribersOf returns a snapshot of the user ids subscribed to
// matchID. An unknown match id yields an empty slice.
func (r *Registry) SubscribersOf(matchID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	set := r.subs[matchID]
	ids := make([]string, 0, len(set))
	for userID := range set {
		ids = append(ids, userID)
	}
	return ids
}

// matchesOf returns a snapshot of the match ids userID is subscribed
// to, or nil if the user is not connected.
func (r *Registry) matchesOf(userID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.conns[userID]
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(c.matches))
	for matchID := range c.matches {
		ids = append(ids, matchID)
	}
	return ids
}

// drain detaches every connection and returns them for closing.
func (r *Registry) drain() []*client {
	r.mu.Lock()
	defer r.mu.Unlock()

	clients := make([]*client, 0, len(r.conns))
	for userID, c := range r.conns {
		r.detachLocked(c)
		delete(r.conns, userID)
		clients = append(clients, c)
	}
	return clients
}

// detachLocked removes every index membership of c. Callers hold r.mu.
func (r *Registry) detachLocked(c *client) {
	for matchID := range c.matches {
		r.delSubLocked(matchID, c.userID)
	}
	c.matches = make(map[string]struct{})
}

func (r *Registry) addSubLocked(matchID, userID string) {
	set, ok := r.subs[matchID]
	if !ok {
		set = make(map[string]struct{})
		r.subs[matchID] = set
	}
	set[userID] = struct{}{}
}

func (r *Registry) delSubLocked(matchID, userID string) {
	set, ok := r.subs[matchID]
	if !ok {
		return
	}
	delete(set, userID)
	if len(set) == 0 {
		delete(r.subs, matchID)
	}
}
