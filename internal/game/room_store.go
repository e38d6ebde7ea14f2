// internal/game/room_store.go
package game

import (
	"math/rand"
	"strings"
	"sync"
)

// RoomStore abstracts the live-room table so the transport layer can be wired
// against an interface rather than ambient process state.
type RoomStore interface {
	// CreateRoom allocates a room under a fresh collision-checked code.
	CreateRoom() *Room
	// GetRoom resolves a code (case-insensitively) to a live room.
	GetRoom(code string) (*Room, bool)
	// DeleteRoom drops a room; used when a room empties before its game starts.
	DeleteRoom(code string)
}

// Room codes avoid ambiguous characters (0/O, 1/I).
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
const codeLength = 4

// MemoryRoomStore keeps all live rooms keyed by code in process memory.
type MemoryRoomStore struct {
	mu    sync.Mutex
	rooms map[string]*Room
}

// NewRoomStore returns an empty in-memory store.
func NewRoomStore() *MemoryRoomStore {
	return &MemoryRoomStore{
		rooms: make(map[string]*Room),
	}
}

func (s *MemoryRoomStore) CreateRoom() *Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	var code string
	for {
		code = generateRoomCode()
		if _, taken := s.rooms[code]; !taken {
			break
		}
	}
	room := NewRoom(code)
	s.rooms[code] = room
	return room
}

func (s *MemoryRoomStore) GetRoom(code string) (*Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[strings.ToUpper(code)]
	return r, ok
}

func (s *MemoryRoomStore) DeleteRoom(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, strings.ToUpper(code))
}

func generateRoomCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(b)
}
