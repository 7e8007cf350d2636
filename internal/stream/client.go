package stream

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
)

// Client is one websocket connection watching a single controller slot.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	slot atomic.Int32
}

func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
}

// Slot returns the controller slot the client listens to; 0 by default.
func (c *Client) Slot() int {
	return int(c.slot.Load())
}

func (c *Client) SetSlot(slot int) {
	c.slot.Store(int32(slot))
}

func (c *Client) RemoteAddr() string {
	if c.conn == nil {
		return ""
	}
	return c.conn.RemoteAddr().String()
}

// WritePump sends queued messages until the hub closes the queue.
func (c *Client) WritePump() {
	defer c.conn.Close()
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// ReadPump decodes client messages and passes them to handle until the
// connection drops.
func (c *Client) ReadPump(handle func(*Client, ClientMessage)) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.hub.logger.Debug("Invalid stream client message", "remote", c.RemoteAddr(), "error", err)
			continue
		}
		handle(c, msg)
	}
}
