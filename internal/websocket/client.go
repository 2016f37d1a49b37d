package websocket

import (
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/thereayou/colabnow/internal/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// клиент присылает только pong, большие кадры не ожидаются
	maxMessageSize = 4 * 1024

	sendQueueSize = 64
)

var newline = []byte{'\n'}

func NewClient(hub *Hub, conn *websocket.Conn, userID uuid.UUID) *Client {
	return &Client{
		ID:     uuid.New(),
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, sendQueueSize),
		Hub:    hub,
	}
}

// ReadPump держит соединение живым и снимает клиента с hub при закрытии
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg Message
		if err := c.Conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("ws read error", "client_id", c.ID, "user_id", c.UserID, "error", err)
			}
			return
		}

		if msg.Type == TypePong {
			c.Conn.SetReadDeadline(time.Now().Add(pongWait))
			continue
		}
		c.SendError(ErrInvalidMessage.Error())
	}
}

// WritePump пишет очередь Send в сокет. Накопившиеся события уходят одним
// кадром, разделённые переводом строки.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.writeBatch(message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.Hub.ctx.Done():
			return
		}
	}
}

func (c *Client) writeBatch(first []byte) error {
	w, err := c.Conn.NextWriter(websocket.TextMessage)
	if err != nil {
		return err
	}
	w.Write(first)

	for n := len(c.Send); n > 0; n-- {
		w.Write(newline)
		w.Write(<-c.Send)
	}
	return w.Close()
}

// SendMessage ставит событие в очередь клиента, не блокируясь
func (c *Client) SendMessage(msgType MessageType, data interface{}) error {
	raw, err := encode(msgType, data)
	if err != nil {
		return err
	}
	select {
	case c.Send <- raw:
		return nil
	default:
		return ErrClientQueueFull
	}
}

func (c *Client) SendError(errorMsg string) {
	if err := c.SendMessage(TypeError, map[string]string{"error": errorMsg}); err != nil {
		logger.Debug("ws error not delivered", "client_id", c.ID, "error", err)
	}
}
