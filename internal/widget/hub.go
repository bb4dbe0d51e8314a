package widget

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"github.com/omarshaarawi/livescore/internal/models"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Widgets never send anything larger than a close frame.
	maxMessageSize = 1024
)

const (
	MsgTypeStatus    = "status"
	MsgTypeRender    = "render"
	MsgTypeError     = "error"
	MsgTypeCountdown = "countdown"
)

type Message struct {
	Type      string            `json:"type"`
	Status    models.Status     `json:"status,omitempty"`
	ViewModel *models.ViewModel `json:"viewModel,omitempty"`
	Error     string            `json:"error,omitempty"`
	Remaining int               `json:"remaining,omitempty"`
}

// Hub fans refresh-loop output out to every connected widget. The run loop
// owns the client set and the last-known state replayed to new clients.
type Hub struct {
	clients    map[*wsClient]bool
	register   chan *wsClient
	unregister chan *wsClient
	broadcast  chan Message
	done       chan struct{}

	lastStatus    *Message
	lastRender    *Message
	lastError     *Message
	lastCountdown *Message

	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func NewHub(allowedOrigins []string, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients:    make(map[*wsClient]bool),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
		broadcast:  make(chan Message, 64),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return u.Host == r.Host
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			return
		case client := <-h.register:
			h.clients[client] = true
			h.replay(client)
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case msg := <-h.broadcast:
			h.remember(msg)
			for client := range h.clients {
				select {
				case client.send <- msg:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

func (h *Hub) remember(msg Message) {
	m := msg
	switch msg.Type {
	case MsgTypeStatus:
		h.lastStatus = &m
	case MsgTypeRender:
		h.lastRender = &m
		h.lastError = nil
	case MsgTypeError:
		h.lastError = &m
		h.lastCountdown = nil
	case MsgTypeCountdown:
		h.lastCountdown = &m
	}
}

func (h *Hub) replay(client *wsClient) {
	for _, m := range []*Message{h.lastStatus, h.lastRender, h.lastError, h.lastCountdown} {
		if m == nil {
			continue
		}
		select {
		case client.send <- *m:
		default:
		}
	}
}

func (h *Hub) publish(msg Message) {
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn("Widget hub backlog full, dropping message", "type", msg.Type)
	}
}

func (h *Hub) SetStatus(status models.Status) {
	h.publish(Message{Type: MsgTypeStatus, Status: status})
}

func (h *Hub) Render(vm models.ViewModel) {
	h.publish(Message{Type: MsgTypeRender, ViewModel: &vm})
}

func (h *Hub) RenderError(err error) {
	h.publish(Message{Type: MsgTypeError, Error: "Error loading scores"})
}

func (h *Hub) Countdown(remaining int) {
	h.publish(Message{Type: MsgTypeCountdown, Remaining: remaining})
}

// ServeWS upgrades the request and attaches the connection to the hub.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("Websocket upgrade failed", "error", err)
		return
	}

	client := &wsClient{hub: h, conn: conn, send: make(chan Message, 16)}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	case <-r.Context().Done():
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// wsClient is a middleman between the websocket connection and the hub.
type wsClient struct {
	hub  *Hub
	conn *websocket.Conn
	send chan Message
}

// readPump only exists to process pongs and notice the peer going away.
func (c *wsClient) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Debug("Websocket closed", "error", err)
			}
			return
		}
	}
}

func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
