package websocket

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum frame size allowed from peer
	maxFrameSize = 512

	// Per-connection outbound buffer; FIFO per socket
	sendBufferSize = 64
)

// Socket is the subset of *websocket.Conn the client pumps need.
// Tests plug in an in-memory implementation.
type Socket interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(string) error)
	Close() error
}

// client is one live connection plus its per-user runtime state.
// The matches set is owned by the Registry and only touched under the
// Registry mutex.
type client struct {
	id      string
	userID  string
	conn    Socket
	send    chan []byte
	matches map[string]struct{}

	done      chan struct{}
	closeOnce sync.Once
}

func newClient(userID string, conn Socket) *client {
	return &client{
		id:      uuid.New().String(),
		userID:  userID,
		conn:    conn,
		send:    make(chan []byte, sendBufferSize),
		matches: make(map[string]struct{}),
		done:    make(chan struct{}),
	}
}

// shutdown marks the client as closed and closes the socket. Safe to
// call multiple times and from any goroutine.
func (c *client) shutdown() {
	c.closeOnce.Do(func() {
		close(c.done)
		if err := c.conn.Close(); err != nil {
			slog.Debug("error closing connection", "clientID", c.id, "userID", c.userID, "error", err)
		}
	})
}

func (c *client) closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// enqueue hands a serialized event to the write pump without blocking.
// A full buffer means the peer stopped draining; the connection is
// closed and false returned.
func (c *client) enqueue(payload []byte) bool {
	if c.closed() {
		return false
	}
	select {
	case c.send <- payload:
		return true
	default:
		slog.Warn("send buffer full, closing client", "clientID", c.id, "userID", c.userID)
		c.shutdown()
		return false
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case payload := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				slog.Debug("error writing message", "clientID", c.id, "userID", c.userID, "error", err)
				c.shutdown()
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				slog.Debug("error sending ping", "clientID", c.id, "userID", c.userID, "error", err)
				c.shutdown()
				return
			}

		case <-c.done:
			return
		}
	}
}

// readPump reads frames until the socket errors or closes, then runs
// the hub's teardown path exactly once.
func (c *client) readPump(h *Hub) {
	defer h.drop(c)

	c.conn.SetReadLimit(maxFrameSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				slog.Error("websocket read error", "clientID", c.id, "userID", c.userID, "error", err)
			} else {
				slog.Debug("websocket connection closed", "clientID", c.id, "userID", c.userID)
			}
			return
		}
		h.handleFrame(c, data)
	}
}
