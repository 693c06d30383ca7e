package notifications

import (
	"context"
	"errors"
	"sync"

	"khabri/internal/observability"

	"github.com/gofiber/websocket/v2"
)

const maxTotalConns = 256

// Hub tracks the connected admin event feed clients and fans published
// events out to all of them.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*Client]struct{}
	shutdown chan struct{}
	once     sync.Once
}

// NewHub creates a new Hub instance.
func NewHub() *Hub {
	return &Hub{
		clients:  make(map[*Client]struct{}),
		shutdown: make(chan struct{}),
	}
}

// Register adds a connection for an authenticated admin and returns its Client.
func (h *Hub) Register(userID uint, conn *websocket.Conn) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	select {
	case <-h.shutdown:
		return nil, errors.New("hub is shut down")
	default:
	}

	if len(h.clients) >= maxTotalConns {
		return nil, errors.New("server connection limit reached")
	}

	client := &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, 64),
		UserID: userID,
	}
	h.clients[client] = struct{}{}
	observability.AdminEventSubscribers.Set(float64(len(h.clients)))
	return client, nil
}

// Unregister removes a client and closes its send channel.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		observability.AdminEventSubscribers.Set(float64(len(h.clients)))
	}
}

// Broadcast queues a payload on every connected client.
func (h *Hub) Broadcast(payload string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	data := []byte(payload)
	for c := range h.clients {
		c.TrySend(data)
	}
}

// StartWiring subscribes the hub to the notifier's event channel.
func (h *Hub) StartWiring(ctx context.Context, n *Notifier) error {
	return n.StartSubscriber(ctx, func(payload string) {
		h.Broadcast(payload)
	})
}

// Shutdown disconnects every client. Safe to call more than once.
func (h *Hub) Shutdown(_ context.Context) error {
	h.once.Do(func() {
		close(h.shutdown)
		h.mu.Lock()
		defer h.mu.Unlock()
		for c := range h.clients {
			delete(h.clients, c)
			close(c.send)
			if c.conn != nil {
				_ = c.conn.Close()
			}
		}
		observability.AdminEventSubscribers.Set(0)
	})
	return nil
}
