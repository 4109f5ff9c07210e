// pkg/network/safe_writer.go
package network

import (
	"sync"

	"github.com/gorilla/websocket"
)

// SafeWriter serializes writes to one websocket connection. gorilla/websocket
// allows only a single concurrent writer; the broadcast loop and any direct
// replies share the connection through this wrapper.
type SafeWriter struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// NewSafeWriter wraps a connection.
func NewSafeWriter(conn *websocket.Conn) *SafeWriter {
	return &SafeWriter{conn: conn}
}

// WriteJSON sends one JSON message.
func (w *SafeWriter) WriteJSON(v interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteJSON(v)
}

// Close closes the underlying connection.
func (w *SafeWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.Close()
}
