package tracehttp

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestBroadcastReachesConnectedClient(t *testing.T) {
	srv := NewServer()
	defer srv.Close()

	ts := httptest.NewServer(srv)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Give the server a moment to register the client before broadcasting.
	deadline := time.Now().Add(2 * time.Second)
	for {
		srv.mu.RLock()
		n := len(srv.clients)
		srv.mu.RUnlock()
		if n > 0 || time.Now().After(deadline) {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	srv.Broadcast(Event{RunID: "r1", PC: 4, Op: "add", StackDepth: 2})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, body, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		t.Fatalf("unmarshal event: %v", err)
	}
	if ev.RunID != "r1" || ev.PC != 4 || ev.Op != "add" || ev.StackDepth != 2 {
		t.Errorf("unexpected event: %+v", ev)
	}
}

func TestHookBroadcastsOnStep(t *testing.T) {
	srv := NewServer()
	defer srv.Close()
	h := Hook{Server: srv, RunID: "r2"}
	// OnStep with no connected clients must not panic or block.
	h.OnStep(0, 0, 0)
}
