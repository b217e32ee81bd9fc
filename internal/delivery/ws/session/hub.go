package ws_session

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mkrogh/reelmatch/internal/model"
)

type Notifier interface {
	Subscribe(ctx context.Context, sessionID uuid.UUID) (<-chan model.SessionEvent, func(), error)
}

type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID uuid.UUID
	userID    string
}

// Hub mirrors the notifier stream onto websocket clients, one subscription
// per session shared by all of its clients. The notifier stays the source of
// truth for event transport; the hub never publishes.
type Hub struct {
	notifier Notifier
	logger   *slog.Logger

	mu       sync.RWMutex
	sessions map[uuid.UUID]map[*Client]bool
	cancels  map[uuid.UUID]func()

	register   chan *Client
	unregister chan *Client
}

func NewHub(notifier Notifier) *Hub {
	return &Hub{
		notifier:   notifier,
		logger:     slog.Default(),
		sessions:   make(map[uuid.UUID]map[*Client]bool),
		cancels:    make(map[uuid.UUID]func()),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.handleRegister(client)

		case client := <-h.unregister:
			h.handleUnregister(client)
		}
	}
}

func (h *Hub) handleRegister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.sessions[client.sessionID]; !exists {
		h.sessions[client.sessionID] = make(map[*Client]bool)
		h.startSessionPump(client.sessionID)
	}
	h.sessions[client.sessionID][client] = true

	h.logger.Info("ws client registered",
		"session_id", client.sessionID.String(),
		"user_id", client.userID)
}

func (h *Hub) handleUnregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, exists := h.sessions[client.sessionID]
	if !exists {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}

	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.sessions, client.sessionID)
		if cancel, ok := h.cancels[client.sessionID]; ok {
			cancel()
			delete(h.cancels, client.sessionID)
		}
	}

	h.logger.Info("ws client unregistered",
		"session_id", client.sessionID.String(),
		"user_id", client.userID)
}

// startSessionPump opens the shared subscription for a session. Caller holds
// the lock.
func (h *Hub) startSessionPump(sessionID uuid.UUID) {
	events, cancel, err := h.notifier.Subscribe(context.Background(), sessionID)
	if err != nil {
		h.logger.Error("failed to subscribe to session events",
			"session_id", sessionID.String(), "error", err)
		return
	}
	h.cancels[sessionID] = cancel

	go func() {
		for event := range events {
			h.broadcastToSession(sessionID, event)
		}
	}()
}

func (h *Hub) broadcastToSession(sessionID uuid.UUID, event model.SessionEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to marshal session event", "error", err)
		return
	}

	if clients, exists := h.sessions[sessionID]; exists {
		for client := range clients {
			select {
			case client.send <- payload:
			default:
				close(client.send)
				delete(clients, client)
			}
		}
	}
}

func (h *Hub) startClientReading(client *Client) {
	defer func() {
		h.unregister <- client
		client.conn.Close()
	}()

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) startClientWriting(client *Client) {
	defer client.conn.Close()

	for message := range client.send {
		if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			break
		}
	}
}
