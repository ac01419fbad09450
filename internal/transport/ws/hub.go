package ws

import (
	"encoding/json"
	"sync"

	"formsmith/internal/logger"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgPublishStatus MessageType = "publish_status"
	MsgError         MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Connection is one owner's socket subscribed to a form
type Connection struct {
	FormID string
	UserID string
	Send   chan []byte
	Hub    *Hub
}

// BroadcastMessage is a message for every connection of a form
type BroadcastMessage struct {
	FormID  string
	Message *Message
}

// Hub fans publish events out to the sockets watching each form. A form
// may be open in several tabs, so connections are kept per form as a set.
type Hub struct {
	conns map[string]map[*Connection]struct{}
	mu    sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
	done       chan struct{}
	closeOnce  sync.Once

	log *logger.Logger
}

// NewHub creates a new WebSocket hub and starts its loop
func NewHub(log *logger.Logger) *Hub {
	h := &Hub{
		conns:      make(map[string]map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
		done:       make(chan struct{}),
		log:        log.With("component", "ws"),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for formID, set := range h.conns {
				for conn := range set {
					close(conn.Send)
				}
				delete(h.conns, formID)
			}
			h.mu.Unlock()
			return

		case conn := <-h.register:
			h.mu.Lock()
			if h.conns[conn.FormID] == nil {
				h.conns[conn.FormID] = make(map[*Connection]struct{})
			}
			h.conns[conn.FormID][conn] = struct{}{}
			h.mu.Unlock()
			h.log.Debug("connection registered", "formId", conn.FormID, "userId", conn.UserID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if set, ok := h.conns[conn.FormID]; ok {
				if _, ok := set[conn]; ok {
					delete(set, conn)
					close(conn.Send)
					if len(set) == 0 {
						delete(h.conns, conn.FormID)
					}
				}
			}
			h.mu.Unlock()
			h.log.Debug("connection unregistered", "formId", conn.FormID)

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg.Message)
			if err != nil {
				h.log.Error("failed to encode message", "error", err)
				continue
			}
			h.mu.RLock()
			for conn := range h.conns[msg.FormID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.done:
		close(conn.Send)
	}
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Connections counts the sockets watching a form
func (h *Hub) Connections(formID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[formID])
}

// BroadcastToForm sends a message to every socket of a form
// (implements service.Broadcaster). It never blocks the caller.
func (h *Hub) BroadcastToForm(formID string, msgType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.log.Error("failed to encode payload", "type", msgType, "error", err)
		return
	}
	msg := &BroadcastMessage{
		FormID:  formID,
		Message: &Message{Type: MessageType(msgType), Payload: data},
	}
	select {
	case h.broadcast <- msg:
	case <-h.done:
	default:
		h.log.Warn("broadcast queue full, dropping message", "formId", formID, "type", msgType)
	}
}

// Close stops the hub and closes every connection's send channel
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}
