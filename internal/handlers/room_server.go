// internal/handlers/room_server.go
package handlers

import (
	"log"

	"github.com/halfsuit/fish/internal/game"
)

// RoomServer is a high-level struct that holds the live-room store shared by
// all transport handlers.
type RoomServer struct {
	Rooms game.RoomStore
	Logf  func(f string, v ...interface{})
}

// NewRoomServer wires a RoomServer around an in-memory room store.
func NewRoomServer() *RoomServer {
	return &RoomServer{
		Rooms: game.NewRoomStore(),
		Logf:  log.Printf,
	}
}
