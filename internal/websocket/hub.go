package websocket

import (
	"log"
	"net/http"
	"slices"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Client represents a single connected WebSocket client watching one filing
type Client struct {
	Hub      *Hub
	Conn     *websocket.Conn
	Send     chan []byte
	FilingID string
}

type message struct {
	filingID string
	payload  []byte
}

// Hub maintains the subscribers of each filing and fans filing events out to them
type Hub struct {
	clients    map[string]map[*Client]bool
	publish    chan message
	register   chan *Client
	unregister chan *Client
	upgrader   websocket.Upgrader
	mu         sync.Mutex
}

// NewHub initializes a new WS Hub instance. An empty origin list accepts any origin.
func NewHub(allowedOrigins []string) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		publish:    make(chan message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(allowedOrigins) == 0 || origin == "" || slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

// Run starts the core dispatch loop for WebSocket events
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.FilingID] == nil {
				h.clients[client.FilingID] = make(map[*Client]bool)
			}
			h.clients[client.FilingID][client] = true
			h.mu.Unlock()
			log.Printf("WebSocket client subscribed to filing %s", client.FilingID)
		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()
		case msg := <-h.publish:
			h.mu.Lock()
			for client := range h.clients[msg.filingID] {
				select {
				case client.Send <- msg.payload:
				default:
					h.remove(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// remove must be called with mu held.
func (h *Hub) remove(client *Client) {
	subs := h.clients[client.FilingID]
	if _, ok := subs[client]; !ok {
		return
	}
	delete(subs, client)
	close(client.Send)
	if len(subs) == 0 {
		delete(h.clients, client.FilingID)
	}
	log.Printf("WebSocket client unsubscribed from filing %s", client.FilingID)
}

// Publish queues payload for every subscriber of filingID
func (h *Hub) Publish(filingID string, payload []byte) {
	select {
	case h.publish <- message{filingID: filingID, payload: payload}:
	default:
		log.Printf("WebSocket publish queue full, dropping event for filing %s", filingID)
	}
}

// Subscribers reports how many clients watch filingID
func (h *Hub) Subscribers(filingID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[filingID])
}

// writePump handles writing messages from the Hub to the WebSocket connection
func (c *Client) writePump() {
	defer func() {
		_ = c.Conn.Close()
	}()
	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump pumps messages from the WebSocket connection to the hub
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		_ = c.Conn.Close()
	}()
	for {
		// Clients only listen; reads keep the connection alive and notice the close
		_, _, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error: %v", err)
			}
			break
		}
	}
}

// ServeWs subscribes the peer to the filing named by the filing_id query param
func ServeWs(hub *Hub, c *gin.Context) {
	filingID, err := uuid.Parse(c.Query("filing_id"))
	if err != nil {
		log.Println("WebSocket connection rejected: invalid filing_id")
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	conn, err := hub.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("WebSocket upgrade failed:", err)
		return
	}
	client := &Client{Hub: hub, Conn: conn, Send: make(chan []byte, 256), FilingID: filingID.String()}
	client.Hub.register <- client

	// Allow collection of memory referenced by the caller by doing all work in new goroutines
	go client.writePump()
	go client.readPump()
}
