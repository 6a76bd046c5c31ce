package middleware

import (
	"net/http"
	"sync"

	"fleetmon/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // dashboard origin varies per deployment
	},
}

// Hub fans accepted-report events out to connected dashboard sockets. Polling
// the query API stays the authoritative path; these events are advisory
// nudges so a dashboard can refresh early.
type Hub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mutex      sync.RWMutex
	logger     *utils.Logger
}

func NewHub(logger *utils.Logger) *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.mutex.Lock()
			h.clients[conn] = true
			h.mutex.Unlock()
			h.logger.Write("websocket client connected")

		case conn := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()
			h.logger.Write("websocket client disconnected")

		case message := <-h.broadcast:
			var dead []*websocket.Conn
			h.mutex.RLock()
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					h.logger.Writef("websocket write error: %v", err)
					dead = append(dead, conn)
				}
			}
			h.mutex.RUnlock()
			for _, conn := range dead {
				h.mutex.Lock()
				delete(h.clients, conn)
				h.mutex.Unlock()
				conn.Close()
			}
		}
	}
}

// Broadcast queues a message for delivery; it drops the message rather than
// blocking an ingestion handler when the hub is saturated.
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
	}
}

func (h *Hub) GetClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (h *Hub) HandleWebSocket() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			h.logger.Writef("websocket upgrade error: %v", err)
			return
		}

		h.register <- conn

		defer func() {
			h.unregister <- conn
		}()

		for {
			_, _, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					h.logger.Writef("websocket error: %v", err)
				}
				break
			}
		}
	}
}
