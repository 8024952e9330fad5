package websocket

import (
	"log"
	"sync"

	"debatematch/models"

	"github.com/gorilla/websocket"
)

// Client represents a connection subscribed to match and debate events
type Client struct {
	Conn    *websocket.Conn
	ID      string
	UserID  string
	writeMu sync.Mutex
}

// SafeWriteJSON safely writes JSON data to the client's WebSocket connection
func (c *Client) SafeWriteJSON(v interface{}) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteJSON(v)
}

// Global hub for broadcasting events to all connected clients
var (
	clients = make(map[*Client]bool)
	hubMu   sync.RWMutex
)

// RegisterClient registers a client for event updates
func RegisterClient(client *Client) {
	hubMu.Lock()
	defer hubMu.Unlock()
	clients[client] = true
	log.Printf("Event client registered. Total clients: %d", len(clients))
}

// UnregisterClient removes a client and closes its connection
func UnregisterClient(client *Client) {
	hubMu.Lock()
	defer hubMu.Unlock()
	delete(clients, client)
	client.Conn.Close()
	log.Printf("Event client unregistered. Total clients: %d", len(clients))
}

// BroadcastEvent broadcasts a match or debate event to all connected clients
func BroadcastEvent(event models.MatchEvent) {
	hubMu.RLock()
	defer hubMu.RUnlock()

	for client := range clients {
		if err := client.SafeWriteJSON(event); err != nil {
			log.Printf("Error broadcasting event to client: %v", err)
			// Remove client if write fails
			go UnregisterClient(client)
		}
	}
}

// ClientCount returns the number of connected clients
func ClientCount() int {
	hubMu.RLock()
	defer hubMu.RUnlock()
	return len(clients)
}
