// internal/models/player.go
package models

import (
	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// Player is one seat in a room. The ID is stable across reconnects; Conn and
// Connected track the current transport attachment only.
type Player struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Hand      []Card          `json:"hand"`
	Connected bool            `json:"connected"`
	Conn      *websocket.Conn `json:"-"`
}

// NewPlayer creates a connected player with an empty hand.
func NewPlayer(name string) (*Player, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	return &Player{
		ID:        id,
		Name:      name,
		Hand:      []Card{},
		Connected: true,
	}, nil
}

// HoldsCard reports whether the player's hand contains the given card id.
func (p *Player) HoldsCard(cardID string) bool {
	for _, c := range p.Hand {
		if c.ID == cardID {
			return true
		}
	}
	return false
}
