package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Event types.
const (
	EventChange   = "change"
	EventPresence = "presence"
)

// Event is one message of the live feed. It reaches every client whose brand
// set contains BrandID.
type Event struct {
	Type     string     `json:"type"`
	Resource string     `json:"resource,omitempty"`
	Action   string     `json:"action,omitempty"`
	ID       uuid.UUID  `json:"id"`
	BrandID  uuid.UUID  `json:"brand_id"`
	OutletID *uuid.UUID `json:"outlet_id,omitempty"`
	StaffID  uuid.UUID  `json:"staff_id"`
}

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type client struct {
	staffID uuid.UUID
	brands  map[uuid.UUID]struct{}
}

type registration struct {
	conn   Conn
	client *client
}

type Hub struct {
	clients    map[Conn]*client
	register   chan registration
	unregister chan Conn
	broadcast  chan Event
	done       chan struct{}
	mutex      sync.Mutex
	log        zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[Conn]*client),
		register:   make(chan registration),
		unregister: make(chan Conn),
		broadcast:  make(chan Event, 256),
		done:       make(chan struct{}),
		log:        log.With().Str("component", "ws").Logger(),
	}
}

// Register adds a connection for a staff member scoped to brandIDs.
func (h *Hub) Register(conn Conn, staffID uuid.UUID, brandIDs []uuid.UUID) {
	c := &client{staffID: staffID, brands: make(map[uuid.UUID]struct{}, len(brandIDs))}
	for _, id := range brandIDs {
		c.brands[id] = struct{}{}
	}
	select {
	case h.register <- registration{conn: conn, client: c}:
	case <-h.done:
		conn.Close()
	}
}

// Unregister removes and closes conn. It returns at once after Run stopped.
func (h *Hub) Unregister(conn Conn) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Publish queues an event without blocking the caller. Events are dropped
// when the queue is full.
func (h *Hub) Publish(e Event) {
	select {
	case h.broadcast <- e:
	default:
		h.log.Warn().Str("resource", e.Resource).Str("action", e.Action).Msg("event queue full, dropping event")
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Run serves registrations and broadcasts until ctx is done, then closes
// every connection.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mutex.Lock()
			for conn := range h.clients {
				conn.Close()
				delete(h.clients, conn)
			}
			h.mutex.Unlock()
			return

		case r := <-h.register:
			h.mutex.Lock()
			h.clients[r.conn] = r.client
			h.mutex.Unlock()
			h.log.Debug().Str("staff_id", r.client.staffID.String()).Msg("client connected")

		case conn := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case e := <-h.broadcast:
			message, err := json.Marshal(e)
			if err != nil {
				h.log.Error().Err(err).Msg("marshal event")
				continue
			}
			h.mutex.Lock()
			for conn, c := range h.clients {
				if _, ok := c.brands[e.BrandID]; !ok {
					continue
				}
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}
