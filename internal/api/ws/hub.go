package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"flipboard/internal/config"
	"flipboard/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const maxFrameBytes = 4 * 1024

type client struct {
	id   string
	send chan shared.Frame

	mu    sync.Mutex
	rooms []string
}

func (c *client) addRoom(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range c.rooms {
		if r == code {
			return
		}
	}
	c.rooms = append(c.rooms, code)
}

func (c *client) joinedRooms() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.rooms...)
}

// Hub owns every live connection and the room groups used for broadcast.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client
	rooms   map[string]map[string]struct{}

	roomManager RoomManager
	cfg         config.WebSocket
	upgrader    websocket.Upgrader
}

func NewHub(roomManager RoomManager, cfg config.Config) *Hub {
	return &Hub{
		clients:     make(map[string]*client),
		rooms:       make(map[string]map[string]struct{}),
		roomManager: roomManager,
		cfg:         cfg.WS,
		upgrader: websocket.Upgrader{
			CheckOrigin: originChecker(cfg.AllowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}

func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws: upgrade failed: %v", err)
		return
	}

	cl := &client{
		id:   uuid.NewString(),
		send: make(chan shared.Frame, h.cfg.SendBuffer),
	}
	h.register(cl)
	log.Printf("ws: %s connected from %s", cl.id, c.Request.RemoteAddr)

	go h.writePump(cl, conn)
	h.readPump(cl, conn)
}

func (h *Hub) register(cl *client) {
	h.mu.Lock()
	h.clients[cl.id] = cl
	h.mu.Unlock()
}

// disconnect runs once per connection, after its read loop ends.
func (h *Hub) disconnect(cl *client) {
	for _, code := range cl.joinedRooms() {
		h.roomManager.Leave(code, cl.id)
	}

	h.mu.Lock()
	delete(h.clients, cl.id)
	for code, members := range h.rooms {
		delete(members, cl.id)
		if len(members) == 0 {
			delete(h.rooms, code)
		}
	}
	close(cl.send)
	h.mu.Unlock()

	log.Printf("ws: %s disconnected", cl.id)
}

func (h *Hub) readPump(cl *client, conn *websocket.Conn) {
	defer func() {
		h.disconnect(cl)
		_ = conn.Close()
	}()

	conn.SetReadLimit(maxFrameBytes)
	_ = conn.SetReadDeadline(time.Now().Add(h.cfg.ReadTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.cfg.ReadTimeout))
	})

	for {
		// Only transport and close errors end the session; a bad body is
		// rejected and the connection keeps its rooms.
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws: %s read: %v", cl.id, err)
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(h.cfg.ReadTimeout))

		var frame inboundFrame
		if err := json.Unmarshal(msg, &frame); err != nil {
			h.emitError(cl.id, codeInvalidArgument, "invalid frame payload")
			continue
		}
		h.dispatch(cl.id, frame)
	}
}

func (h *Hub) writePump(cl *client, conn *websocket.Conn) {
	ticker := time.NewTicker(h.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case frame, ok := <-cl.send:
			_ = conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(frame); err != nil {
				log.Printf("ws: %s write: %v", cl.id, err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Emit queues an event for one connection. A full queue drops the event.
func (h *Hub) Emit(connID string, event string, data interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if cl, ok := h.clients[connID]; ok {
		h.enqueue(cl, shared.Frame{Event: event, Data: data})
	}
}

func (h *Hub) Broadcast(roomCode string, event string, data interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	frame := shared.Frame{Event: event, Data: data}
	for id := range h.rooms[roomCode] {
		if cl, ok := h.clients[id]; ok {
			h.enqueue(cl, frame)
		}
	}
}

// enqueue must be called with h.mu held.
func (h *Hub) enqueue(cl *client, frame shared.Frame) {
	select {
	case cl.send <- frame:
	default:
		log.Printf("ws: %s send queue full, dropping %s", cl.id, frame.Event)
	}
}

func (h *Hub) Join(connID string, roomCode string) {
	h.mu.Lock()
	cl, ok := h.clients[connID]
	if ok {
		if _, exists := h.rooms[roomCode]; !exists {
			h.rooms[roomCode] = make(map[string]struct{})
		}
		h.rooms[roomCode][connID] = struct{}{}
	}
	h.mu.Unlock()

	if ok {
		cl.addRoom(roomCode)
	}
}

func (h *Hub) Close(roomCode string) {
	h.mu.Lock()
	delete(h.rooms, roomCode)
	h.mu.Unlock()
}

// Connections reports the number of live connections.
func (h *Hub) Connections() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
