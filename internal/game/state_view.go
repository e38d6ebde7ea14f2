// internal/game/state_view.go
package game

import (
	"github.com/google/uuid"

	"github.com/halfsuit/fish/internal/models"
)

// PlayerSummary is the public view of one seat: identity and card count, never
// the hand itself.
type PlayerSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Team      int       `json:"team"`
	CardCount int       `json:"cardCount"`
	Index     int       `json:"index"`
	Connected bool      `json:"connected"`
}

// PlayerStateView is the per-player projection of room state, sent on initial
// fetch/rejoin and pushed after every state-changing action. Only the
// requesting player's own hand is included.
type PlayerStateView struct {
	RoomCode     string          `json:"roomCode"`
	Players      []PlayerSummary `json:"players"`
	MyIndex      int             `json:"myIndex"`
	MyTeam       int             `json:"myTeam"`
	Hand         []models.Card   `json:"hand"`
	CurrentTurn  int             `json:"currentTurn"`
	Scores       [2]int          `json:"scores"`
	ClaimedSuits []string        `json:"claimedSuits"`
	MiddleSuits  []string        `json:"middleSuits"`
	Log          []LogEntry      `json:"log"`
	GameStarted  bool            `json:"gameStarted"`
	ValidAsks    []models.Card   `json:"validAsks"`
	Opponents    []PlayerSummary `json:"opponents"`
	HalfSuits    []HalfSuitInfo  `json:"halfSuits"`
}

// StateFor computes the projection for one player.
func (r *Room) StateFor(playerID uuid.UUID) PlayerStateView {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	return r.stateFor(playerID)
}

// stateFor is the lock-free projection used internally by broadcasts.
// Assumes lock is held.
func (r *Room) stateFor(playerID uuid.UUID) PlayerStateView {
	idx := r.playerIndex(playerID)

	view := PlayerStateView{
		RoomCode:     r.Code,
		MyIndex:      idx,
		CurrentTurn:  r.CurrentTurn,
		Scores:       r.Scores,
		ClaimedSuits: append([]string{}, r.ClaimedSuits...),
		MiddleSuits:  append([]string{}, r.MiddleSuits...),
		Log:          append([]LogEntry{}, r.Log...),
		GameStarted:  r.GameStarted,
		Hand:         []models.Card{},
		ValidAsks:    []models.Card{},
		Opponents:    []PlayerSummary{},
		HalfSuits:    HalfSuits,
	}

	for i, p := range r.Players {
		view.Players = append(view.Players, PlayerSummary{
			ID:        p.ID,
			Name:      p.Name,
			Team:      Team(i),
			CardCount: len(p.Hand),
			Index:     i,
			Connected: p.Connected,
		})
	}

	if idx == -1 {
		return view
	}
	me := r.Players[idx]
	view.MyTeam = Team(idx)
	view.Hand = append([]models.Card{}, me.Hand...)

	if r.GameStarted {
		view.ValidAsks = r.validAsks(me)
		view.Opponents = r.opponents(idx)
	}
	return view
}

// validAsks returns every card the player may legally request: any card of a
// half-suit they hold at least one card of, excluding cards in their own hand
// and half-suits already resolved. Assumes lock is held.
func (r *Room) validAsks(p *models.Player) []models.Card {
	myHalfSuits := make(map[string]bool)
	for _, c := range p.Hand {
		myHalfSuits[HalfSuitOf(c)] = true
	}

	valid := []models.Card{}
	for _, info := range HalfSuits {
		if !myHalfSuits[info.Name] || r.suitResolved(info.Name) {
			continue
		}
		for _, card := range CardsOf(info.Name) {
			if !p.HoldsCard(card.ID) {
				valid = append(valid, card)
			}
		}
	}
	return valid
}

// opponents lists opposing-team players who still hold cards.
// Assumes lock is held.
func (r *Room) opponents(playerIdx int) []PlayerSummary {
	myTeam := Team(playerIdx)
	opps := []PlayerSummary{}
	for i, p := range r.Players {
		if Team(i) != myTeam && len(p.Hand) > 0 {
			opps = append(opps, PlayerSummary{
				ID:        p.ID,
				Name:      p.Name,
				Team:      Team(i),
				CardCount: len(p.Hand),
				Index:     i,
				Connected: p.Connected,
			})
		}
	}
	return opps
}
