// Package tracehttp broadcasts a run's per-instruction trace over
// WebSocket so a debugger or visualizer can watch a constraint system
// grow in real time. It is optional instrumentation driven by vm.Hook;
// it never participates in constraint emission itself. The broadcast
// shape — a mutex-guarded client map, written to under lock, read into a
// local slice before fan-out so a slow client can't hold the lock during
// its write — is adapted from the teacher's
// internal/network.NetworkModule WebSocket broadcast.
package tracehttp

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/Epiisteme/zinc/internal/bytecode"
)

// Event is one instruction step, broadcast to every connected client.
type Event struct {
	RunID      string `json:"run_id"`
	PC         int    `json:"pc"`
	Op         string `json:"op"`
	StackDepth int    `json:"stack_depth"`
}

// Server is a small WebSocket hub: clients subscribe and receive every
// Event broadcast until they disconnect or the server is closed.
type Server struct {
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]*client
	nextID  int
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewServer returns a Server ready to be mounted at an http.Handler path.
// CheckOrigin is left permissive (true) since this is meant for a local
// developer-facing debug endpoint, not a public service.
func NewServer() *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[string]*client),
	}
}

// ServeHTTP upgrades the connection and registers it as a trace
// subscriber until the client disconnects.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("tracehttp: upgrade failed: %v", err)
		return
	}
	c := &client{conn: conn, send: make(chan []byte, 256)}

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.clients[clientKey(id)] = c
	s.mu.Unlock()

	go s.writePump(clientKey(id), c)
	go s.readPump(clientKey(id), c)
}

func clientKey(id int) string {
	return "client-" + strconv.Itoa(id)
}

// readPump drains and discards inbound frames; its only job is to notice
// when the client goes away (a trace subscriber never sends commands).
func (s *Server) readPump(key string, c *client) {
	defer s.removeClient(key, c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) writePump(key string, c *client) {
	defer s.removeClient(key, c)
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

func (s *Server) removeClient(key string, c *client) {
	s.mu.Lock()
	if existing, ok := s.clients[key]; ok && existing == c {
		delete(s.clients, key)
	}
	s.mu.Unlock()
	c.conn.Close()
}

// Broadcast sends an event to every currently connected client. When a
// client's send buffer is full, this event is skipped for that client
// rather than allowed to stall the broadcaster; the client stays
// connected.
func (s *Server) Broadcast(ev Event) {
	body, err := json.Marshal(ev)
	if err != nil {
		log.Printf("tracehttp: marshal event: %v", err)
		return
	}
	s.mu.RLock()
	targets := make([]*client, 0, len(s.clients))
	for _, c := range s.clients {
		targets = append(targets, c)
	}
	s.mu.RUnlock()

	for _, c := range targets {
		select {
		case c.send <- body:
		default:
			log.Printf("tracehttp: dropping event for slow client")
		}
	}
}

// Close disconnects every client.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, c := range s.clients {
		close(c.send)
		c.conn.Close()
		delete(s.clients, key)
	}
	return nil
}

// Hook adapts a Server into a vm.Hook, broadcasting one Event per
// instruction step.
type Hook struct {
	Server *Server
	RunID  string
}

// OnStep implements vm.Hook.
func (h Hook) OnStep(pc int, op bytecode.OpCode, stackDepth int) {
	h.Server.Broadcast(Event{RunID: h.RunID, PC: pc, Op: op.String(), StackDepth: stackDepth})
}
