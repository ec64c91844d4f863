// Package observer streams periodic world snapshots to websocket
// viewers. Viewers are read-only; nothing they send reaches the game,
// and a viewer that stops reading is dropped rather than allowed to
// stall the publisher.
package observer

import (
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/gorilla/websocket"
)

// Frame is one world snapshot, published every few ticks.
type Frame struct {
	Tick     uint64     `json:"tick"`
	Phase    string     `json:"phase"`
	Statics  int        `json:"statics"`
	Loose    int        `json:"loose"`
	Sleeping int        `json:"sleeping"`
	Player   rl.Vector3 `json:"player"`
	Coins    int        `json:"coins"`
}

// sendBuffer is the per-viewer queue depth before the drop kicks in.
const sendBuffer = 8

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Server fans frames out to any number of viewers. The game goroutine
// only ever calls Publish; connections live on the server's own
// goroutines and share nothing with the game but marshaled bytes.
type Server struct {
	addr     string
	mux      *http.ServeMux
	upgrader websocket.Upgrader

	ln  net.Listener
	srv *http.Server

	mu      sync.Mutex
	clients map[*client]struct{}
	frames  uint64
}

func NewServer(addr string) *Server {
	s := &Server{
		addr:    addr,
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			// Local observation tool; any origin may watch.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	s.mux = http.NewServeMux()
	s.mux.HandleFunc("/", s.handleStatus)
	s.mux.HandleFunc("/ws", s.handleWS)
	return s
}

// Handler exposes the routes for serving over a listener the caller
// owns.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start binds the address and serves in the background. The error
// covers the bind only; a serve failure after a clean start logs and
// ends the server.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("observer: %w", err)
	}
	s.ln = ln
	s.srv = &http.Server{Handler: s.mux}
	go func() {
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Printf("observer: %v", err)
		}
	}()
	log.Printf("observer: listening on %s", ln.Addr())
	return nil
}

// Addr is the bound address, resolved when Start was given ":0".
func (s *Server) Addr() string {
	if s.ln == nil {
		return s.addr
	}
	return s.ln.Addr().String()
}

// ClientCount reports connected viewers.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Publish marshals the frame and queues it to every viewer. Viewers
// with a full queue are dropped on the spot; Publish never blocks.
func (s *Server) Publish(f Frame) {
	raw, err := json.Marshal(f)
	if err != nil {
		log.Printf("observer: frame: %v", err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames++
	var slow []*client
	for c := range s.clients {
		select {
		case c.send <- raw:
		default:
			slow = append(slow, c)
		}
	}
	for _, c := range slow {
		delete(s.clients, c)
		close(c.send)
		c.conn.Close()
	}
}

// Close drops every viewer and stops the listener.
func (s *Server) Close() {
	if s.srv != nil {
		s.srv.Close()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		delete(s.clients, c)
		close(c.send)
		c.conn.Close()
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.mu.Lock()
	st := struct {
		Clients int    `json:"clients"`
		Frames  uint64 `json:"frames"`
	}{len(s.clients), s.frames}
	s.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(st)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("observer: upgrade: %v", err)
		return
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()

	go s.writeLoop(c)
	s.readLoop(c) // holds the handler open until the viewer hangs up
}

// readLoop discards anything the viewer sends and notices hangups.
func (s *Server) readLoop(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
	s.drop(c)
}

func (s *Server) writeLoop(c *client) {
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			s.drop(c)
			return
		}
	}
}

// drop unregisters a viewer once; the send channel closes only under
// the lock, so Publish can never race a close.
func (s *Server) drop(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c]; !ok {
		return
	}
	delete(s.clients, c)
	close(c.send)
	c.conn.Close()
}
