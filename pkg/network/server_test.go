// pkg/network/server_test.go
package network

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestGameServer_SubmitAndDrain(t *testing.T) {
	s := NewGameServer(nil)

	s.Submit(Command{Type: CommandHit, Direction: [3]float64{0, 0, -1}, Power: 5})
	s.Submit(Command{Type: CommandHit, Power: 2})

	cmds := s.DrainCommands()
	if len(cmds) != 2 {
		t.Fatalf("drained %d commands, want 2", len(cmds))
	}
	if cmds[0].Power != 5 || cmds[0].Direction[2] != -1 {
		t.Errorf("first command = %+v", cmds[0])
	}

	if got := s.DrainCommands(); got != nil {
		t.Errorf("second drain returned %d commands, want none", len(got))
	}
}

func TestGameServer_Submit_FullQueue_Drops(t *testing.T) {
	s := NewGameServer(nil)

	for i := 0; i < commandBuffer+10; i++ {
		s.Submit(Command{Type: CommandHit})
	}

	if got := len(s.DrainCommands()); got != commandBuffer {
		t.Errorf("drained %d commands, want queue capacity %d", got, commandBuffer)
	}
}

func TestGameServer_Broadcast_NoClients_NoPanic(t *testing.T) {
	s := NewGameServer(nil)

	s.Broadcast(map[string]int{"tick": 1})
}

func TestGameServer_WebsocketRoundTrip(t *testing.T) {
	s := NewGameServer(nil)
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.HandleWS)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	waitFor(t, "client registration", func() bool { return s.ClientCount() == 1 })

	// Client to server: a hit command lands in the queue.
	if err := conn.WriteJSON(Command{Type: CommandHit, Power: 3}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	var cmds []Command
	waitFor(t, "command arrival", func() bool {
		cmds = append(cmds, s.DrainCommands()...)
		return len(cmds) > 0
	})
	if len(cmds) != 1 || cmds[0].Power != 3 {
		t.Fatalf("commands = %+v, want one hit with power 3", cmds)
	}

	// Server to client: a broadcast snapshot arrives.
	s.Broadcast(map[string]uint64{"tick": 7})
	var state map[string]uint64
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&state); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if state["tick"] != 7 {
		t.Errorf("tick = %d, want 7", state["tick"])
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}
