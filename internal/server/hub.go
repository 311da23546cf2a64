package server

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/conneroisu/branddna/internal/errors"
	"github.com/conneroisu/branddna/internal/logging"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Send pings to peer with this period. A failed ping drops the client.
	pingPeriod = 54 * time.Second

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	sendBuffer = 16
)

// Message types sent to preview clients.
const (
	MessageCSS    = "css"
	MessageRemove = "remove"
	MessageError  = "error"
)

// Message is one update pushed to the browser.
type Message struct {
	Type      string             `json:"type"`
	CSS       string             `json:"css,omitempty"`
	Errors    errors.FieldErrors `json:"errors,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
}

var (
	// ErrHubClosed is returned when a message is sent after the hub stopped.
	ErrHubClosed = fmt.Errorf("websocket hub is closed")
	// ErrHubBusy is returned when the broadcast queue is full.
	ErrHubBusy = fmt.Errorf("websocket hub is busy")
)

// Client is one connected preview page.
type Client struct {
	conn *websocket.Conn
	send chan []byte
	hub  *Hub
}

// Hub fans style updates out to every connected preview page. It
// implements stylesink.StyleSink: Apply broadcasts a css message and
// Remove broadcasts a remove message. The last style message is replayed
// to clients that connect later.
type Hub struct {
	clients    map[*Client]struct{}
	mu         sync.RWMutex
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	doneOnce   sync.Once
	last       []byte
	logger     logging.Logger
	now        func() time.Time
}

// NewHub creates a hub. Call Run to start delivering messages.
func NewHub(logger logging.Logger) *Hub {
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan []byte, sendBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger.WithComponent("websocket"),
		now:        time.Now,
	}
}

// Apply broadcasts a stylesheet to every client.
func (h *Hub) Apply(css string) error {
	return h.Send(Message{Type: MessageCSS, CSS: css})
}

// Remove tells every client to drop the injected stylesheet.
func (h *Hub) Remove() error {
	return h.Send(Message{Type: MessageRemove})
}

// Send broadcasts msg. It stamps the message when Timestamp is zero.
func (h *Hub) Send(msg Message) error {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = h.now().UTC()
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	select {
	case <-h.done:
		return ErrHubClosed
	default:
	}

	select {
	case h.broadcast <- data:
		return nil
	default:
		return ErrHubBusy
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}

// Run delivers messages until ctx is canceled. All clients are closed on
// return.
func (h *Hub) Run(ctx context.Context) {
	defer h.close()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			count := len(h.clients)
			h.mu.Unlock()
			if h.last != nil {
				select {
				case client.send <- h.last:
				default:
				}
			}
			h.logger.Debug(ctx, "Client connected", "clients", count)

		case client := <-h.unregister:
			h.drop(client)
			h.logger.Debug(ctx, "Client disconnected", "clients", h.ClientCount())

		case message := <-h.broadcast:
			if isStyleMessage(message) {
				h.last = message
			}

			h.mu.RLock()
			var slow []*Client
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					slow = append(slow, client)
				}
			}
			h.mu.RUnlock()

			for _, client := range slow {
				h.logger.Warn(ctx, nil, "Dropping slow client")
				h.drop(client)
			}
		}
	}
}

func isStyleMessage(data []byte) bool {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return false
	}

	return head.Type == MessageCSS || head.Type == MessageRemove
}

func (h *Hub) drop(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
}

func (h *Hub) close() {
	h.doneOnce.Do(func() { close(h.done) })

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		close(client.send)
		client.conn.Close(websocket.StatusGoingAway, "server shutting down")
	}
	h.clients = make(map[*Client]struct{})
}

// serve registers conn and pumps messages until the peer goes away.
func (h *Hub) serve(ctx context.Context, conn *websocket.Conn) {
	client := &Client{
		conn: conn,
		send: make(chan []byte, sendBuffer),
		hub:  h,
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close(websocket.StatusGoingAway, "server shutting down")

		return
	}

	go client.writePump(ctx)
	client.readPump(ctx)
}

// readPump drains the connection so control frames, including the pongs
// awaited by writePump, are processed. Preview pages never send data.
func (c *Client) readPump(ctx context.Context) {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	c.conn.SetReadLimit(maxMessageSize)

	for {
		if _, _, err := c.conn.Read(ctx); err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway {
				c.hub.logger.Debug(ctx, "WebSocket read ended", "error", err.Error())
			}

			return
		}
	}
}

// writePump writes queued messages and keeps the connection alive.
func (c *Client) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}
			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Write(writeCtx, websocket.MessageText, message)
			cancel()
			if err != nil {
				c.hub.logger.Debug(ctx, "WebSocket write failed", "error", err.Error())

				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}
		}
	}
}
