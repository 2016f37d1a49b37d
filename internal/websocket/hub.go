package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/thereayou/colabnow/internal/logger"
)

// MessageType определяет типы сообщений
type MessageType string

const (
	// Системные типы
	TypePing  MessageType = "ping"
	TypePong  MessageType = "pong"
	TypeError MessageType = "error"

	// Уведомления
	TypeNotification MessageType = "notification"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

type Client struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Conn   *websocket.Conn
	Send   chan []byte
	Hub    *Hub
}

type Hub struct {
	clients map[uuid.UUID]*Client

	// Клиенты по UserID (один пользователь может иметь несколько соединений)
	userClients map[uuid.UUID]map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:     make(map[uuid.UUID]*Client),
		userClients: make(map[uuid.UUID]map[uuid.UUID]*Client),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Run запускает hub
func (h *Hub) Run() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case <-ticker.C:
			h.ping()
		}
	}
}

// Stop останавливает hub и закрывает все соединения.
// Канал Send не закрывается: ReadPump клиента ещё может в него писать,
// WritePump выходит по отмене контекста hub
func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for id, client := range h.clients {
		if client.Conn != nil {
			client.Conn.Close()
		}
		delete(h.clients, id)
	}
	h.userClients = make(map[uuid.UUID]map[uuid.UUID]*Client)
}

func (h *Hub) Register(client *Client) error {
	select {
	case h.register <- client:
		return nil
	case <-h.ctx.Done():
		return ErrHubStopped
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.ctx.Done():
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client

	if _, ok := h.userClients[client.UserID]; !ok {
		h.userClients[client.UserID] = make(map[uuid.UUID]*Client)
	}
	h.userClients[client.UserID][client.ID] = client

	logger.Debug("ws client registered", "client_id", client.ID, "user_id", client.UserID)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}

	if userClients, ok := h.userClients[client.UserID]; ok {
		delete(userClients, client.ID)
		if len(userClients) == 0 {
			delete(h.userClients, client.UserID)
		}
	}

	delete(h.clients, client.ID)
	close(client.Send)

	logger.Debug("ws client unregistered", "client_id", client.ID, "user_id", client.UserID)
}

// Publish отправляет событие всем соединениям пользователя.
// Пользователь без соединений - не ошибка.
func (h *Hub) Publish(userID uuid.UUID, msgType MessageType, data interface{}) error {
	raw, err := encode(msgType, data)
	if err != nil {
		return err
	}
	h.SendToUser(userID, raw)
	return nil
}

func encode(msgType MessageType, data interface{}) ([]byte, error) {
	msg := Message{Type: msgType, Timestamp: time.Now().UTC()}
	if data != nil {
		payload, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		msg.Data = payload
	}
	return json.Marshal(msg)
}

// SendToUser отправляет сообщение пользователю
func (h *Hub) SendToUser(userID uuid.UUID, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.userClients[userID] {
		select {
		case client.Send <- message:
		default:
			logger.Warn("ws send channel full", "client_id", client.ID)
		}
	}
}

func (h *Hub) ping() {
	data, err := encode(TypePing, nil)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		select {
		case client.Send <- data:
		default:
		}
	}
}

// IsOnline сообщает, есть ли у пользователя активные соединения
func (h *Hub) IsOnline(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.userClients[userID]) > 0
}
