// internal/game/room.go
package game

import (
	"fmt"
	"sync"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/halfsuit/fish/internal/models"
)

// MaxPlayers and MinPlayers bound the seat count. Teams are derived from seat
// parity, so play needs at least two seats per side.
const (
	MaxPlayers = 8
	MinPlayers = 4
)

// Room holds the entire state for one game instance in memory. It is the
// single source of truth for membership, hands, turn order, and score.
//
// Every externally triggered action (join, leave, start, ask, pass, claim,
// disconnect, rejoin) acquires Mu for its full read-validate-mutate sequence,
// so two concurrent actions on the same room never interleave. Rooms are
// fully independent of one another.
type Room struct {
	Code string

	// Players is insertion-ordered; the order fixes both the turn cycle and
	// team assignment (seat index mod 2) for the whole game.
	Players []*models.Player

	GameStarted  bool
	CurrentTurn  int
	Scores       [2]int
	ClaimedSuits []string
	MiddleSuits  []string
	Log          []LogEntry

	Mu sync.Mutex

	// PushStateFn delivers a freshly computed per-player view to one player.
	// It is invoked with the room lock held, once per member after every
	// state-changing action; implementations must not call back into the
	// room. If nil, no state is pushed.
	PushStateFn func(p *models.Player, view PlayerStateView)
}

// NewRoom builds an empty, not-yet-started room with the given code.
func NewRoom(code string) *Room {
	return &Room{
		Code:         code,
		Players:      []*models.Player{},
		ClaimedSuits: []string{},
		MiddleSuits:  []string{},
		Log:          []LogEntry{},
	}
}

// Team returns the team (0 or 1) for a seat index.
func Team(playerIndex int) int {
	return playerIndex % 2
}

// playerIndex returns the seat of a player id, or -1. Assumes lock is held.
func (r *Room) playerIndex(id uuid.UUID) int {
	for i, p := range r.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// AddPlayer appends a new player with an empty hand and attaches their
// connection. Fails once the game has started or the room is full.
func (r *Room) AddPlayer(name string, conn *websocket.Conn) (*models.Player, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if r.GameStarted {
		return nil, ErrGameInProgress
	}
	if len(r.Players) >= MaxPlayers {
		return nil, ErrRoomFull
	}

	p, err := models.NewPlayer(name)
	if err != nil {
		return nil, err
	}
	p.Conn = conn
	r.Players = append(r.Players, p)

	r.BroadcastState()
	return p, nil
}

// RemovePlayer deletes a player from the room. Only permitted before the game
// starts; mid-game departures go through HandleDisconnect instead. Returns
// true when the room has become empty and should be destroyed.
func (r *Room) RemovePlayer(id uuid.UUID) (empty bool, err error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if r.GameStarted {
		return false, ErrRemoveAfterStart
	}
	idx := r.playerIndex(id)
	if idx == -1 {
		return false, ErrUnknownPlayer
	}

	name := r.Players[idx].Name
	r.Players = append(r.Players[:idx], r.Players[idx+1:]...)
	r.addLog(fmt.Sprintf("%s disconnected", name), LogSystem)

	if len(r.Players) == 0 {
		return true, nil
	}
	r.BroadcastState()
	return false, nil
}

// HandleDisconnect marks a player as disconnected without removing them or
// touching their hand, preserving hand and turn integrity. If it was their
// turn, the turn indicator is advanced past them.
func (r *Room) HandleDisconnect(id uuid.UUID) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	idx := r.playerIndex(id)
	if idx == -1 {
		return
	}
	p := r.Players[idx]
	if !p.Connected {
		return
	}
	p.Connected = false
	p.Conn = nil
	r.addLog(fmt.Sprintf("%s disconnected", p.Name), LogSystem)

	if r.GameStarted && r.CurrentTurn == idx {
		r.advanceTurn()
	}
	r.BroadcastState()
}

// HandleReconnect reattaches a known player id to a fresh connection. The
// seat index, hand, and team are untouched; only the connection flag changes.
func (r *Room) HandleReconnect(id uuid.UUID, conn *websocket.Conn) (*models.Player, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	idx := r.playerIndex(id)
	if idx == -1 {
		return nil, ErrUnknownPlayer
	}
	p := r.Players[idx]
	p.Connected = true
	p.Conn = conn
	r.addLog(fmt.Sprintf("%s reconnected", p.Name), LogSystem)

	r.BroadcastState()
	return p, nil
}

// advanceTurn scans forward from the current seat (wrapping) for the nearest
// player who has cards and is connected, stopping after one full cycle. Logs
// a turn entry when the indicator moves. Assumes lock is held.
//
// Landing on nobody is expected only once all 8 half-suits are resolved;
// before that it signals a stuck room and is logged loudly rather than
// silently ignored.
func (r *Room) advanceTurn() {
	start := r.CurrentTurn
	for attempts := 0; attempts < len(r.Players); attempts++ {
		p := r.Players[r.CurrentTurn]
		if len(p.Hand) > 0 && p.Connected {
			if r.CurrentTurn != start {
				r.addLog(fmt.Sprintf("%s's turn", p.Name), LogTurn)
			}
			return
		}
		r.CurrentTurn = (r.CurrentTurn + 1) % len(r.Players)
	}

	r.addLog("No players have cards remaining", LogSystem)
	if len(r.ClaimedSuits)+len(r.MiddleSuits) < len(HalfSuits) {
		// Unreachable by the card-conservation invariant: hands only empty
		// out once every half-suit has been resolved.
		r.addLog("invariant violation: no eligible seat before all half-suits resolved", LogSystem)
	}
}

// gameOver reports whether all 8 half-suits have been resolved.
// Assumes lock is held.
func (r *Room) gameOver() bool {
	return len(r.ClaimedSuits)+len(r.MiddleSuits) == len(HalfSuits)
}

// BroadcastState pushes a freshly computed view to every room member.
// Assumes lock is held.
func (r *Room) BroadcastState() {
	if r.PushStateFn == nil {
		return
	}
	for _, p := range r.Players {
		if p.Connected {
			r.PushStateFn(p, r.stateFor(p.ID))
		}
	}
}
