package ws

import (
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// writeWait bounds how long a single slow subscriber can hold the
// broadcast loop before its connection is dropped.
const writeWait = 10 * time.Second

// Event tells subscribers that something in a table changed and they
// should re-fetch. The changed data itself is never delivered, only the
// signal; delivery is at-least-once for connected clients.
type Event struct {
	Table string `json:"table"`
	ID    string `json:"id"`
	Op    string `json:"op"` // insert | update | delete
}

// Publisher is what the repositories see. The hub implements it; tests
// plug in their own.
type Publisher interface {
	Publish(table, id, op string)
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(table, id, op string) {}

// ChangeHub fans change events out to WebSocket subscribers, each
// scoped to the set of tables it asked for.
type ChangeHub struct {
	clients    map[*websocket.Conn]map[string]bool // conn -> subscribed tables
	broadcast  chan Event
	register   chan subscription
	unregister chan *websocket.Conn
	mu         sync.Mutex
}

type subscription struct {
	conn   *websocket.Conn
	tables []string
}

func NewChangeHub() *ChangeHub {
	return &ChangeHub{
		clients:    make(map[*websocket.Conn]map[string]bool),
		broadcast:  make(chan Event, 256),
		register:   make(chan subscription),
		unregister: make(chan *websocket.Conn),
	}
}

// Publish never blocks the caller: the feed is a best-effort
// "something changed" signal, and a mutation must not wait on it. When
// the buffer is full the event is dropped; subscribers that care about
// completeness re-fetch on reconnect anyway.
func (h *ChangeHub) Publish(table, id, op string) {
	select {
	case h.broadcast <- Event{Table: table, ID: id, Op: op}:
	default:
		log.Printf("ws: broadcast buffer full, dropping %s/%s %s", table, id, op)
	}
}

func (h *ChangeHub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			scope := make(map[string]bool, len(sub.tables))
			for _, t := range sub.tables {
				scope[t] = true
			}
			h.clients[sub.conn] = scope
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

		case ev := <-h.broadcast:
			h.mu.Lock()
			for conn, scope := range h.clients {
				if len(scope) > 0 && !scope[ev.Table] {
					continue
				}
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(ev); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/changes?tables=vehicles,vehicle_photos
// An empty tables list subscribes to every table.
func (h *ChangeHub) HandleWebSocket(c *gin.Context) {
	tables := c.QueryArray("tables")
	if len(tables) == 1 {
		tables = splitCSV(tables[0])
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	h.register <- subscription{conn: conn, tables: tables}
	go h.drain(conn)
}

// drain keeps reading until the client goes away, then unregisters it.
// Subscribers never send application data on this channel.
func (h *ChangeHub) drain(conn *websocket.Conn) {
	defer func() { h.unregister <- conn }()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
