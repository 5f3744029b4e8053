// Package ws is the websocket rendition of the transport: one Conn
// per client, a Hub implementing core.Gateway, and a Controller
// wiring handshake, inbound events and disconnects to the presence
// layer.
package ws

import (
	"errors"
	"sync"

	"github.com/gorilla/websocket"
)

var ErrBackpressure = errors.New("backpressure")

// Conn pairs a websocket with a buffered outbound queue.
// TrySend never blocks: a full queue drops the frame.
type Conn struct {
	ws   *websocket.Conn
	send chan []byte

	mu     sync.RWMutex
	closed bool
}

func NewConn(ws *websocket.Conn, sendBuf int) *Conn {
	return &Conn{ws: ws, send: make(chan []byte, sendBuf)}
}

func (c *Conn) TrySend(data []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- data:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *Conn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	if c.ws != nil {
		_ = c.ws.Close()
	}
	c.mu.Unlock()
}
