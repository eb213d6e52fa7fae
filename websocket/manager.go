package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"gymlink/metrics"
)

// Event is the wire frame pushed to clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// TokenValidator resolves a raw token to the user's chat identity.
type TokenValidator func(token string) (userID string, err error)

type Manager struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	outbound   chan envelope
	validate   TokenValidator
	mu         sync.RWMutex
}

// envelope targets an event at a set of user identities. Nil targets means
// broadcast to everyone.
type envelope struct {
	targets map[string]bool
	data    []byte
}

type Client struct {
	conn    *websocket.Conn
	userID  string
	send    chan []byte
	manager *Manager
}

func NewManager(validate TokenValidator) *Manager {
	return &Manager{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		outbound:   make(chan envelope),
		validate:   validate,
	}
}

func (m *Manager) Start() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			m.clients[client] = true
			m.mu.Unlock()
			metrics.ConnectedClients.Inc()
			log.Printf("ws client registered for %s, total %d", client.userID, m.GetConnectedUsers())

		case client := <-m.unregister:
			m.mu.Lock()
			if _, ok := m.clients[client]; ok {
				delete(m.clients, client)
				close(client.send)
				metrics.ConnectedClients.Dec()
			}
			m.mu.Unlock()

		case env := <-m.outbound:
			m.mu.Lock()
			for client := range m.clients {
				if env.targets != nil && !env.targets[client.userID] {
					continue
				}
				select {
				case client.send <- env.data:
				default:
					close(client.send)
					delete(m.clients, client)
					metrics.ConnectedClients.Dec()
				}
			}
			m.mu.Unlock()
		}
	}
}

// NotifyUsers pushes an event to the given user identities only. Change
// events are scoped to a conversation's participants; other users never
// receive them.
func (m *Manager) NotifyUsers(userIDs []string, eventType string, payload interface{}) {
	targets := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		targets[id] = true
	}
	m.push(envelope{targets: targets, data: marshal(eventType, payload)})
}

// Broadcast pushes an event to every connected client.
func (m *Manager) Broadcast(eventType string, payload interface{}) {
	m.push(envelope{data: marshal(eventType, payload)})
}

func (m *Manager) push(env envelope) {
	if env.data == nil {
		return
	}
	m.outbound <- env
}

func marshal(eventType string, payload interface{}) []byte {
	data, err := json.Marshal(Event{Type: eventType, Payload: payload})
	if err != nil {
		log.Printf("ws marshal error: %v", err)
		return nil
	}
	return data
}

func (m *Manager) GetConnectedUsers() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func Handler(manager *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "Token required", http.StatusUnauthorized)
			return
		}

		userID, err := manager.validate(token)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("ws upgrade failed: %v", err)
			return
		}

		client := &Client{
			conn:    conn,
			userID:  userID,
			send:    make(chan []byte, 256),
			manager: manager,
		}

		manager.register <- client

		client.send <- marshal("connected", map[string]interface{}{
			"userId": userID,
			"time":   time.Now().Unix(),
		})

		go client.writePump()
		go client.readPump()
	}
}

func (c *Client) readPump() {
	defer func() {
		c.manager.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("ws read error: %v", err)
			}
			break
		}

		var data map[string]interface{}
		if err := json.Unmarshal(message, &data); err != nil {
			continue
		}

		switch data["type"] {
		case "typing_start", "typing_end":
			c.relayTyping(data)
		case "ping":
			c.send <- marshal("pong", map[string]interface{}{"time": time.Now().Unix()})
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)
			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// relayTyping forwards a typing indicator to the named recipients. The
// sender decides who should see it; the hub only stamps identity and time.
func (c *Client) relayTyping(data map[string]interface{}) {
	payload, ok := data["payload"].(map[string]interface{})
	if !ok {
		return
	}
	var targets []string
	if raw, ok := payload["to"].([]interface{}); ok {
		for _, t := range raw {
			if s, ok := t.(string); ok {
				targets = append(targets, s)
			}
		}
	}
	if len(targets) == 0 {
		return
	}
	eventType, _ := data["type"].(string)
	c.manager.NotifyUsers(targets, eventType, map[string]interface{}{
		"conversationId": payload["conversationId"],
		"userId":         c.userID,
		"timestamp":      time.Now().Unix(),
	})
}
