package httpapi

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/websocket/v2"
)

// MessageType names a websocket message.
type MessageType string

const (
	MessageTypeMove   MessageType = "move"
	MessageTypeUndo   MessageType = "undo"
	MessageTypeOracle MessageType = "oracle"
	MessageTypeState  MessageType = "state"
	MessageTypeError  MessageType = "error"
)

// Message is the websocket envelope in both directions.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// movePayload is the payload of a move message and the body of a move
// request.
type movePayload struct {
	Move string `json:"move"`
}

func newMessage(typ MessageType, v interface{}) Message {
	payload, err := json.Marshal(v)
	if err != nil {
		payload, _ = json.Marshal(newErrorBody(err))
		typ = MessageTypeError
	}
	return Message{Type: typ, Payload: payload}
}

// client serializes writes to one connection.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(msg)
}

// hub tracks the websocket clients watching each session.
type hub struct {
	mu      sync.RWMutex
	clients map[string]map[*client]struct{}
}

func newHub() *hub {
	return &hub{clients: make(map[string]map[*client]struct{})}
}

func (h *hub) join(id string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[id] == nil {
		h.clients[id] = make(map[*client]struct{})
	}
	h.clients[id][c] = struct{}{}
}

func (h *hub) leave(id string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients[id], c)
	if len(h.clients[id]) == 0 {
		delete(h.clients, id)
	}
}

// watchers returns the clients of a session.
func (h *hub) watchers(id string) []*client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*client, 0, len(h.clients[id]))
	for c := range h.clients[id] {
		out = append(out, c)
	}
	return out
}

// broadcast sends msg to every client of the session and returns how many
// sends failed.
func (h *hub) broadcast(id string, msg Message) int {
	failed := 0
	for _, c := range h.watchers(id) {
		if err := c.send(msg); err != nil {
			failed++
		}
	}
	return failed
}
