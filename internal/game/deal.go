// internal/game/deal.go
package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/halfsuit/fish/internal/models"
)

// Start deals the shuffled deck and opens play. Runs once per room: a second
// call fails with ErrAlreadyStarted and fewer than 4 seated players fail with
// ErrInsufficientPlayers. Seat 0 takes the first turn.
func (r *Room) Start() error {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if r.GameStarted {
		return ErrAlreadyStarted
	}
	if len(r.Players) < MinPlayers {
		return ErrInsufficientPlayers
	}

	r.GameStarted = true
	r.CurrentTurn = 0
	r.dealCards()

	r.addLog("Game started!", LogSystem)
	r.addLog(fmt.Sprintf("%s's turn", r.Players[0].Name), LogTurn)

	r.BroadcastState()
	return nil
}

// dealCards shuffles a fresh deck and distributes it round-robin-evenly: with
// n players the first 48%n seats receive one extra card. Each hand is sorted
// afterwards. Assumes lock is held.
func (r *Room) dealCards() {
	deck := NewDeck()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	numPlayers := len(r.Players)
	base := len(deck) / numPlayers
	extra := len(deck) % numPlayers

	cardIndex := 0
	for idx, p := range r.Players {
		count := base
		if idx < extra {
			count++
		}
		p.Hand = make([]models.Card, count)
		copy(p.Hand, deck[cardIndex:cardIndex+count])
		cardIndex += count
		SortHand(p.Hand)
	}
}
