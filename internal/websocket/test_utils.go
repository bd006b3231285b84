package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"teamup-service/internal/models"
)

// ErrClosedConnection is returned when attempting to use a closed
// mock connection
var ErrClosedConnection = errors.New("connection closed")

// mockSocket implements the Socket interface for testing
type mockSocket struct {
	mu     sync.Mutex
	writes [][]byte
	closed bool

	inbound  chan []byte
	closedCh chan struct{}
	once     sync.Once
}

func newMockSocket() *mockSocket {
	return &mockSocket{
		inbound:  make(chan []byte, 16),
		closedCh: make(chan struct{}),
	}
}

func (m *mockSocket) ReadMessage() (int, []byte, error) {
	select {
	case data, ok := <-m.inbound:
		if !ok {
			return 0, nil, ErrClosedConnection
		}
		return 1, data, nil
	case <-m.closedCh:
		return 0, nil, ErrClosedConnection
	}
}

func (m *mockSocket) WriteMessage(messageType int, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosedConnection
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	m.writes = append(m.writes, buf)
	return nil
}

func (m *mockSocket) Close() error {
	m.once.Do(func() {
		m.mu.Lock()
		m.closed = true
		m.mu.Unlock()
		close(m.closedCh)
	})
	return nil
}

func (m *mockSocket) SetReadLimit(int64) {}

func (m *mockSocket) SetReadDeadline(time.Time) error { return nil }

func (m *mockSocket) SetWriteDeadline(time.Time) error { return nil }

func (m *mockSocket) SetPongHandler(func(string) error) {}

// pushFrame feeds an inbound client frame to the read pump.
func (m *mockSocket) pushFrame(data []byte) {
	m.inbound <- data
}

// eventsOfType decodes everything written so far and returns the
// payloads whose discriminator matches t.
func (m *mockSocket) eventsOfType(t EventType) []map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []map[string]any
	for _, raw := range m.writes {
		var decoded map[string]any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			continue
		}
		if decoded["type"] == string(t) {
			out = append(out, decoded)
		}
	}
	return out
}

// waitForEvent polls until at least one event of type t has been
// written, returning it, or nil after the timeout.
func (m *mockSocket) waitForEvent(t EventType, timeout time.Duration) map[string]any {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if evs := m.eventsOfType(t); len(evs) > 0 {
			return evs[0]
		}
		time.Sleep(5 * time.Millisecond)
	}
	return nil
}

// fakeMatchStore implements MatchStore in memory
type fakeMatchStore struct {
	mu            sync.Mutex
	matches       map[string]models.Match
	markReadCalls [][2]string // (matchID, readerID)
	failMarkRead  bool
}

func newFakeMatchStore(matches ...models.Match) *fakeMatchStore {
	s := &fakeMatchStore{matches: make(map[string]models.Match)}
	for _, m := range matches {
		s.matches[m.ID] = m
	}
	return s
}

func (s *fakeMatchStore) MatchesForUser(ctx context.Context, userID string) ([]models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Match
	for _, m := range s.matches {
		if m.HasParticipant(userID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *fakeMatchStore) MatchByID(ctx context.Context, matchID string) (*models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.matches[matchID]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (s *fakeMatchStore) MarkMessagesRead(ctx context.Context, matchID, readerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failMarkRead {
		return errors.New("write failed")
	}
	s.markReadCalls = append(s.markReadCalls, [2]string{matchID, readerID})
	return nil
}

func (s *fakeMatchStore) addMatch(m models.Match) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches[m.ID] = m
}

func (s *fakeMatchStore) readCalls() [][2]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][2]string, len(s.markReadCalls))
	copy(out, s.markReadCalls)
	return out
}
