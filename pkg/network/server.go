// pkg/network/server.go
package network

import (
	ctxpkg "context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/dock108/mini-golf-break-sub004/pkg/logging"
)

// Command is one player input received over the wire.
type Command struct {
	Type      string     `json:"type"`
	Direction [3]float64 `json:"direction,omitempty"`
	Power     float64    `json:"power,omitempty"`
}

// Command types accepted from clients.
const (
	CommandHit = "hit"
)

const commandBuffer = 64

// GameServer streams game state to browser clients over websockets and
// collects their commands. Commands are queued and drained by the game loop,
// so all game mutation stays on the single frame goroutine; the server never
// touches game state itself.
type GameServer struct {
	logger   *logging.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*SafeWriter]bool

	commands chan Command
}

// NewGameServer creates a server with an empty client set.
func NewGameServer(logger *logging.Logger) *GameServer {
	return &GameServer{
		logger: logging.OrDefault(logger),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// The game client is served from the same origin in production;
			// development runs the frontend on a separate port.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients:  make(map[*SafeWriter]bool),
		commands: make(chan Command, commandBuffer),
	}
}

// HandleWS upgrades the request and runs the connection's read loop until
// the client disconnects.
func (s *GameServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn(r.Context(), "websocket upgrade failed",
			"remote", r.RemoteAddr,
			"error", err.Error(),
		)
		return
	}

	client := NewSafeWriter(conn)
	s.addClient(client)
	s.logger.Info(r.Context(), "client connected", "remote", r.RemoteAddr)

	defer func() {
		s.removeClient(client)
		client.Close()
		s.logger.Info(ctxpkg.Background(), "client disconnected", "remote", r.RemoteAddr)
	}()

	for {
		var cmd Command
		if err := conn.ReadJSON(&cmd); err != nil {
			return
		}
		if cmd.Type == "" {
			continue
		}
		s.Submit(cmd)
	}
}

// Submit queues a command for the game loop. A full queue drops the command;
// stale input is worse than lost input for a real-time game.
func (s *GameServer) Submit(cmd Command) {
	select {
	case s.commands <- cmd:
	default:
		s.logger.Warn(ctxpkg.Background(), "command queue full, dropping",
			"command_type", cmd.Type,
		)
	}
}

// DrainCommands returns every queued command without blocking. Called once
// per frame by the game loop.
func (s *GameServer) DrainCommands() []Command {
	var out []Command
	for {
		select {
		case cmd := <-s.commands:
			out = append(out, cmd)
		default:
			return out
		}
	}
}

// Broadcast sends a state snapshot to every connected client. Clients whose
// writes fail are dropped.
func (s *GameServer) Broadcast(state interface{}) {
	s.mu.Lock()
	clients := make([]*SafeWriter, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	for _, c := range clients {
		if err := c.WriteJSON(state); err != nil {
			s.removeClient(c)
			c.Close()
		}
	}
}

// ClientCount returns the number of connected clients.
func (s *GameServer) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// CloseAll disconnects every client; used at shutdown.
func (s *GameServer) CloseAll() {
	s.mu.Lock()
	clients := make([]*SafeWriter, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.clients = make(map[*SafeWriter]bool)
	s.mu.Unlock()

	for _, c := range clients {
		c.Close()
	}
}

func (s *GameServer) addClient(c *SafeWriter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c] = true
}

func (s *GameServer) removeClient(c *SafeWriter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, c)
}
