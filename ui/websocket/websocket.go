package websocket

import (
	"context"
	"encoding/json"
	"sync"

	domain "github.com/TrueSelph/ultramsg-action/domains/ultramsg"
	"github.com/TrueSelph/ultramsg-action/infrastructure/valkey"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
	valkeylib "github.com/valkey-io/valkey-go"
)

const broadcastChannel = "ws_inbound"

type BroadcastMessage struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Result   any    `json:"result"`
	SenderID string `json:"sender_id,omitempty"`
}

// Hub fans inbound messages out to connected websocket clients. With a valkey
// client it also relays them to the other action servers sharing the store.
type Hub struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]struct{}
	vk       *valkey.Client
	serverID string

	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	broadcast  chan BroadcastMessage
	done       chan struct{}
	stopOnce   sync.Once
}

// NewHub returns a hub; vk may be nil for a single server deployment.
func NewHub(vk *valkey.Client, serverID string) *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]struct{}),
		vk:         vk,
		serverID:   serverID,
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		broadcast:  make(chan BroadcastMessage, 64),
		done:       make(chan struct{}),
	}
}

// hand passes conn to the Run loop. It reports false once the hub stopped.
func (h *Hub) hand(ch chan *websocket.Conn, conn *websocket.Conn) bool {
	select {
	case ch <- conn:
		return true
	case <-h.done:
		return false
	}
}

// BroadcastInbound implements domain.IBroadcaster. It never blocks the
// webhook path: when the queue is full the message is dropped.
func (h *Hub) BroadcastInbound(msg *domain.InboundMessage) {
	if msg == nil {
		return
	}
	select {
	case h.broadcast <- BroadcastMessage{Code: "INBOUND_MESSAGE", Message: msg.EventType, Result: msg.ToMap()}:
	default:
		logrus.Warn("[WS] broadcast queue full, dropping inbound message")
	}
}

// Clients returns the number of connected websocket clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) broadcastToLocal(message BroadcastMessage) {
	data, err := json.Marshal(message)
	if err != nil {
		logrus.Errorf("[WS] Marshal error: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			logrus.Errorf("[WS] Write error: %v", err)
			_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
			_ = conn.Close()
			delete(h.clients, conn)
		}
	}
}

func (h *Hub) publish(ctx context.Context, message BroadcastMessage) {
	message.SenderID = h.serverID
	data, err := json.Marshal(message)
	if err != nil {
		return
	}
	inner := h.vk.Inner()
	cmd := inner.B().Publish().Channel(h.vk.Key(broadcastChannel)).Message(string(data)).Build()
	if err := inner.Do(ctx, cmd).Error(); err != nil {
		logrus.Errorf("[WS] Failed to publish to Valkey: %v", err)
	}
}

func (h *Hub) subscribe(ctx context.Context) {
	logrus.Info("[WS] Starting Valkey Pub/Sub subscriber for inbound events")
	inner := h.vk.Inner()
	err := inner.Receive(ctx, inner.B().Subscribe().Channel(h.vk.Key(broadcastChannel)).Build(), func(msg valkeylib.PubSubMessage) {
		var message BroadcastMessage
		if err := json.Unmarshal([]byte(msg.Message), &message); err != nil {
			return
		}
		if message.SenderID == h.serverID {
			return
		}
		h.broadcastToLocal(message)
	})
	if err != nil && ctx.Err() == nil {
		logrus.Errorf("[WS] Valkey subscriber failed: %v", err)
	}
}

// Run processes registrations and broadcasts until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	if h.vk != nil {
		go h.subscribe(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			h.stopOnce.Do(func() { close(h.done) })
			h.mu.Lock()
			for conn := range h.clients {
				_ = conn.Close()
				delete(h.clients, conn)
			}
			h.mu.Unlock()
			return

		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = struct{}{}
			h.mu.Unlock()
			logrus.Debug("[WS] Connection registered")

		case conn := <-h.unregister:
			h.mu.Lock()
			delete(h.clients, conn)
			h.mu.Unlock()
			logrus.Debug("[WS] Connection unregistered")

		case message := <-h.broadcast:
			h.broadcastToLocal(message)
			if h.vk != nil {
				h.publish(ctx, message)
			}
		}
	}
}

// RegisterRoutes mounts GET /ws. Clients only listen; a text frame with code
// PING is answered with PONG.
func (h *Hub) RegisterRoutes(app fiber.Router) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})

	app.Get("/ws", websocket.New(func(conn *websocket.Conn) {
		defer func() {
			h.hand(h.unregister, conn)
			_ = conn.Close()
		}()

		if !h.hand(h.register, conn) {
			return
		}

		for {
			messageType, message, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					logrus.Debugf("[WS] read error: %v", err)
				}
				return
			}
			if messageType != websocket.TextMessage {
				continue
			}

			var request BroadcastMessage
			if err := json.Unmarshal(message, &request); err != nil {
				logrus.Debugf("[WS] unmarshal error: %v", err)
				continue
			}
			if request.Code == "PING" {
				h.mu.Lock()
				_ = conn.WriteJSON(BroadcastMessage{Code: "PONG"})
				h.mu.Unlock()
			}
		}
	}))
}
