package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Hub maintains the set of active feed clients keyed by user and pushes
// change-feed events to them
type Hub struct {
	// Registered clients organized by user ID
	clients map[int64]map[*Client]bool

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Outbound events routed to one user or everyone
	outbound chan *routedMessage

	mu sync.RWMutex

	logger zerolog.Logger
}

// FeedMessage is one change-feed event as delivered over the socket
type FeedMessage struct {
	// Table the row belongs to ("job_listings", "applications",
	// "messages", "notifications", ...)
	Table string `json:"table"`

	// Action: INSERT, UPDATE or DELETE
	Action string `json:"action"`

	// Row ID within the table; for notifications this is the target user
	RowID int64 `json:"rowId"`

	// Row payload after the change, absent for deletes
	Row interface{} `json:"row,omitempty"`

	// Timestamp when the event was routed
	Timestamp time.Time `json:"timestamp"`
}

type routedMessage struct {
	// userID 0 broadcasts to every connected client
	userID  int64
	message *FeedMessage
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		outbound:   make(chan *routedMessage, 256),
		logger:     logger,
	}
}

// Run starts the hub, handling client registrations and event delivery
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case routed := <-h.outbound:
			h.deliver(routed)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	userID := client.userID
	if _, ok := h.clients[userID]; !ok {
		h.clients[userID] = make(map[*Client]bool)
	}
	h.clients[userID][client] = true

	h.logger.Info().
		Int64("userID", userID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Feed client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	userID := client.userID
	if _, ok := h.clients[userID]; ok {
		if _, ok := h.clients[userID][client]; ok {
			delete(h.clients[userID], client)
			close(client.send)

			if len(h.clients[userID]) == 0 {
				delete(h.clients, userID)
			}

			h.logger.Info().
				Int64("userID", userID).
				Msg("Feed client unregistered")
		}
	}
}

func (h *Hub) deliver(routed *routedMessage) {
	data, err := json.Marshal(routed.message)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("table", routed.message.Table).
			Msg("Failed to marshal feed message")
		return
	}

	h.mu.RLock()
	var targets []*Client
	if routed.userID == 0 {
		for _, clients := range h.clients {
			for client := range clients {
				targets = append(targets, client)
			}
		}
	} else {
		for client := range h.clients[routed.userID] {
			targets = append(targets, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range targets {
		select {
		case client.send <- data:
		default:
			// Slow or gone; drop the connection rather than block delivery
			h.unregister <- client
		}
	}
}

// SendToUser queues an event for one user's connections
func (h *Hub) SendToUser(userID int64, message *FeedMessage) {
	h.outbound <- &routedMessage{userID: userID, message: message}
}

// Broadcast queues an event for every connected client
func (h *Hub) Broadcast(message *FeedMessage) {
	h.outbound <- &routedMessage{message: message}
}

// GetClientsCount returns the number of open connections for a user
func (h *Hub) GetClientsCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.clients[userID]; ok {
		return len(clients)
	}
	return 0
}
