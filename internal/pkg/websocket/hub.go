package websocket

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
)

// Event names used on the wire.
const (
	EventSendMessage    = "sendMessage"
	EventReceiveMessage = "receiveMessage"
	EventMessageSent    = "messageSent"
	EventErrorMessage   = "errorMessage"
)

// Envelope is the frame exchanged over a chat connection.
type Envelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Hub tracks connected clients by user ID and delivers frames to
// their personal connections. A user may hold several connections at
// once (multiple tabs or devices).
type Hub struct {
	clients map[int64]map[*Client]bool

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

// Run starts the hub, handling client registrations and departures.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true

	h.logger.Info().
		Int64("userId", client.userID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Chat client connected")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.clients[client.userID]; ok {
		if _, ok := conns[client]; ok {
			delete(conns, client)
			close(client.send)
			if len(conns) == 0 {
				delete(h.clients, client.userID)
			}

			h.logger.Info().
				Int64("userId", client.userID).
				Msg("Chat client disconnected")
		}
	}
}

// SendToUser delivers a frame to every live connection of a user.
// Returns false when the user has no connection; the message is
// already persisted, so nothing is lost.
func (h *Hub) SendToUser(userID int64, event string, payload interface{}) bool {
	data, err := marshalEnvelope(event, payload)
	if err != nil {
		h.logger.Error().Err(err).Str("event", event).Msg("Failed to marshal frame")
		return false
	}

	h.mu.RLock()
	conns, ok := h.clients[userID]
	if !ok || len(conns) == 0 {
		h.mu.RUnlock()
		return false
	}

	stale := []*Client{}
	for client := range conns {
		select {
		case client.send <- data:
		default:
			stale = append(stale, client)
		}
	}
	h.mu.RUnlock()

	// Slow consumers get dropped rather than blocking the hub.
	for _, client := range stale {
		h.unregister <- client
	}

	return true
}

// IsOnline reports whether the user has at least one live connection.
func (h *Hub) IsOnline(userID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients[userID]) > 0
}

func marshalEnvelope(event string, payload interface{}) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Payload: raw})
}
