package wsrouter

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// Conn wraps a websocket connection with a write mutex. Broadcasts originate
// from the reader goroutines of other connections, so writes to one peer must
// be serialized.
type Conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func NewConn(ws *websocket.Conn) *Conn {
	return &Conn{ws: ws}
}

func (c *Conn) ReadMessage() (json.RawMessage, error) {
	_, raw, err := c.ws.ReadMessage()
	return raw, err
}

func (c *Conn) WriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.ws.WriteJSON(v)
}

func (c *Conn) Close() error {
	return c.ws.Close()
}
