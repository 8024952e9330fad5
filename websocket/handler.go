package websocket

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// EventsHandler upgrades the connection and keeps the client registered for
// match and debate event broadcasts until it disconnects.
func EventsHandler(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade websocket connection: %v", err)
		return
	}

	client := &Client{
		Conn:   conn,
		ID:     uuid.NewString(),
		UserID: userID,
	}
	RegisterClient(client)
	defer UnregisterClient(client)

	// Drain control frames; the connection is broadcast-only.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
