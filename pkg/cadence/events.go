package cadence

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/cadencehq/cadence/pkg/models"
)

// Event types pushed to connected review consoles.
const (
	EventSubmissionCreated = "submission.created"
	EventSubmissionUpdated = "submission.updated"
)

const (
	// writeWait bounds how long a single websocket write may take before the
	// client is considered dead.
	writeWait = 10 * time.Second

	// sendBuffer is how many events a client may fall behind before it is
	// dropped.
	sendBuffer = 64
)

// Event is one lifecycle notification: a submission arrived or changed state.
// The full submission rides along so consoles can update their list without a
// follow-up fetch.
type Event struct {
	Type       string             `json:"type"`
	Submission *models.Submission `json:"submission"`
	At         time.Time          `json:"at"`
}

// eventClient is one connected console: its connection plus the buffered
// queue its writer goroutine drains.
type eventClient struct {
	conn *websocket.Conn
	send chan Event
}

// eventHub fans submission lifecycle events out to connected websocket
// clients. Delivery is best effort and never blocks the sender: each client
// has its own writer goroutine and bounded queue, and a client that stalls
// past its queue or a write deadline is dropped.
type eventHub struct {
	mu       sync.Mutex
	clients  map[*eventClient]struct{}
	upgrader websocket.Upgrader
	log      zerolog.Logger
	closed   bool
}

func newEventHub(log zerolog.Logger) *eventHub {
	return &eventHub{
		clients: make(map[*eventClient]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Tokens already gate this route; cross-origin consoles are fine.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log: log,
	}
}

// handleEvents upgrades the connection, starts the client's writer, and holds
// the read loop open until the client goes away. Clients are not expected to
// send anything; the read loop exists only to notice disconnects.
func (h *eventHub) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := &eventClient{
		conn: conn,
		send: make(chan Event, sendBuffer),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[client] = struct{}{}
	h.mu.Unlock()

	go h.writePump(client)

	h.log.Debug().Str("remote", conn.RemoteAddr().String()).Msg("events client connected")

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.drop(client)
	conn.Close()
	h.log.Debug().Str("remote", conn.RemoteAddr().String()).Msg("events client disconnected")
}

// writePump drains one client's queue onto its connection. Each write carries
// a deadline; a client that cannot keep up is dropped rather than waited on.
func (h *eventHub) writePump(client *eventClient) {
	defer client.conn.Close()
	for event := range client.send {
		client.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.conn.WriteJSON(event); err != nil {
			h.log.Warn().Err(err).Msg("dropping events client")
			h.drop(client)
			return
		}
	}
}

// drop unregisters a client and closes its queue, once. Safe to call from the
// read loop, the writer, and broadcast.
func (h *eventHub) drop(client *eventClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
}

// broadcast queues an event for every connected client. Queueing is
// non-blocking; a client whose queue is already full is dropped so one
// stalled console can never back up intake or review traffic.
func (h *eventHub) broadcast(eventType string, submission *models.Submission) {
	event := Event{
		Type:       eventType,
		Submission: submission,
		At:         time.Now().UTC(),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		select {
		case client.send <- event:
		default:
			h.log.Warn().Msg("events client too far behind, dropping")
			delete(h.clients, client)
			close(client.send)
			client.conn.Close()
		}
	}
}

// close disconnects every client and refuses new ones.
func (h *eventHub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
		client.conn.Close()
	}
}
