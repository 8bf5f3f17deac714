package websocket

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// Client is one authenticated websocket connection. The hub is a process-wide
// registry with an explicit lifecycle: registered on connect, purged on
// disconnect or write failure.
type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)

func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Client registered: %s", client.UserID)
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			log.Printf("Client unregistered: %s", client.UserID)
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
		}
	}
}

// Push writes a JSON payload to the user's connection if they are online.
// Offline users simply miss the push; they still have the persisted
// notification row.
func Push(userID uuid.UUID, payload interface{}) {
	clientsMu.RLock()
	conn, ok := clients[userID]
	clientsMu.RUnlock()
	if !ok {
		return
	}

	if err := conn.WriteJSON(payload); err != nil {
		log.Printf("Error pushing to client %s: %v", userID, err)
		conn.Close()
		clientsMu.Lock()
		if cur, ok := clients[userID]; ok && cur == conn {
			delete(clients, userID)
		}
		clientsMu.Unlock()
	}
}
