// Package hub owns the live WebSocket connections. Room semantics live in
// the registry and service; the hub only knows how to track clients and
// push bytes to them.
package hub

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/viru0909-dev/nyay-setu-working-sub001/internal/config"
	"github.com/viru0909-dev/nyay-setu-working-sub001/internal/domain"
	pkglog "github.com/viru0909-dev/nyay-setu-working-sub001/pkg/log"
)

// DisconnectHandler is called when a client disconnects, before the client
// is removed from the hub.
type DisconnectHandler func(*Client)

// Client represents a connected WebSocket client. Send is never closed;
// both pumps unwind when the underlying connection closes.
type Client struct {
	ID                string
	Hub               *Hub
	Conn              *websocket.Conn
	Send              chan []byte
	Session           *domain.Session
	ctx               context.Context
	disconnectHandler DisconnectHandler
}

// SetDisconnectHandler sets the handler to be called on disconnect.
func (c *Client) SetDisconnectHandler(handler DisconnectHandler) {
	c.disconnectHandler = handler
}

// SetContext attaches a connection-scoped context, typically carrying the
// logger from the upgrade request.
func (c *Client) SetContext(ctx context.Context) {
	c.ctx = ctx
}

// Context returns the connection-scoped context.
func (c *Client) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// Hub manages all WebSocket connections.
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	config     config.WebSocketConfig
}

// NewHub creates a new Hub.
func NewHub(cfg config.WebSocketConfig) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		config:     cfg,
	}
}

// Run starts the hub's main loop.
func (h *Hub) Run() {
	l := pkglog.L()
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			l.Info().Str(pkglog.FieldConnID, client.ID).Msg("client registered")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				// Closing the connection, not the Send channel, stops
				// the pumps; a concurrent SendToClient must never hit a
				// closed channel.
				client.Conn.Close()
			}
			h.mu.Unlock()
			l.Info().Str(pkglog.FieldConnID, client.ID).Msg("client unregistered")
		}
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// SendToClient sends a message to a specific client. Unknown connection IDs
// are a silent no-op; a full send buffer evicts the slow client.
func (h *Hub) SendToClient(connID string, message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	h.mu.RLock()
	client, ok := h.clients[connID]
	h.mu.RUnlock()

	if !ok {
		return nil
	}

	select {
	case client.Send <- data:
	default:
		go h.removeClient(client)
	}
	return nil
}

func (h *Hub) removeClient(client *Client) {
	h.unregister <- client
}

// ReadPump pumps messages from the WebSocket connection into the handler.
// It runs in a per-connection goroutine; all reads happen here, so one
// connection's messages are processed in arrival order.
func (c *Client) ReadPump(handler func(*Client, []byte)) {
	defer func() {
		if c.disconnectHandler != nil {
			c.disconnectHandler(c)
		}
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(c.Hub.config.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(c.Hub.config.PongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(c.Hub.config.PongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				l := pkglog.L()
				l.Error().Err(err).Str(pkglog.FieldConnID, c.ID).Msg("websocket error")
			}
			break
		}

		c.Session.UpdateActivity()
		handler(c, message)
	}
}

// WritePump pumps messages from the send channel to the WebSocket
// connection. All writes happen in this goroutine, including pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(c.Hub.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(c.Hub.config.WriteWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(c.Hub.config.WriteWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendMessage marshals and queues a message for this client.
func (c *Client) SendMessage(message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	select {
	case c.Send <- data:
	default:
	}
	return nil
}
