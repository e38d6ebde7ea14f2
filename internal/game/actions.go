// internal/game/actions.go
package game

import (
	"fmt"

	"github.com/google/uuid"
)

// Ask requests a specific card from an opponent. If the target holds it, the
// card transfers to the asker and the turn stays with the asker; otherwise the
// turn passes to the target. Any validation failure leaves all state
// unchanged: no card moves, no log entry, no broadcast.
func (r *Room) Ask(askerID, targetID uuid.UUID, cardID string) (got bool, err error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if !r.GameStarted {
		return false, ErrGameNotStarted
	}

	askerIdx := r.playerIndex(askerID)
	targetIdx := r.playerIndex(targetID)
	if askerIdx == -1 || targetIdx == -1 {
		return false, ErrUnknownPlayer
	}
	asker := r.Players[askerIdx]
	target := r.Players[targetIdx]

	if r.CurrentTurn != askerIdx {
		return false, ErrNotYourTurn
	}
	if len(asker.Hand) == 0 {
		return false, ErrEmptyHand
	}
	if Team(askerIdx) == Team(targetIdx) {
		return false, ErrNotOpponent
	}
	if len(target.Hand) == 0 {
		return false, ErrTargetEmptyHand
	}

	card, ok := CardByID(cardID)
	if !ok {
		return false, ErrUnknownCard
	}
	halfSuit := HalfSuitOf(card)

	hasHalfSuit := false
	for _, c := range asker.Hand {
		if HalfSuitOf(c) == halfSuit {
			hasHalfSuit = true
			break
		}
	}
	if !hasHalfSuit {
		return false, ErrMissingHalfSuit
	}
	if asker.HoldsCard(cardID) {
		return false, ErrAlreadyHoldCard
	}

	cardDisplay := fmt.Sprintf("%s%s", card.Rank, suitSymbol(card.Suit))

	targetCardIdx := -1
	for i, c := range target.Hand {
		if c.ID == cardID {
			targetCardIdx = i
			break
		}
	}

	if targetCardIdx != -1 {
		// Transfer; asker keeps the turn and may act again.
		target.Hand = append(target.Hand[:targetCardIdx], target.Hand[targetCardIdx+1:]...)
		asker.Hand = append(asker.Hand, card)
		SortHand(asker.Hand)
		r.addLog(fmt.Sprintf("%s asked %s for %s ✓ Got it!", asker.Name, target.Name, cardDisplay), LogSuccess)
		got = true
	} else {
		r.addLog(fmt.Sprintf("%s asked %s for %s ✗ Don't have it", asker.Name, target.Name, cardDisplay), LogFail)
		r.CurrentTurn = targetIdx
		r.addLog(fmt.Sprintf("%s's turn", target.Name), LogTurn)
	}

	r.BroadcastState()
	return got, nil
}

// Pass hands the turn to a teammate. Legal only when it is the passer's turn
// and their hand is empty, and the chosen teammate still has cards.
func (r *Room) Pass(passerID, targetID uuid.UUID) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if !r.GameStarted {
		return ErrGameNotStarted
	}

	passerIdx := r.playerIndex(passerID)
	targetIdx := r.playerIndex(targetID)
	if passerIdx == -1 || targetIdx == -1 {
		return ErrUnknownPlayer
	}
	passer := r.Players[passerIdx]
	target := r.Players[targetIdx]

	if r.CurrentTurn != passerIdx {
		return ErrNotYourTurn
	}
	if len(passer.Hand) > 0 {
		return ErrHandNotEmpty
	}
	if Team(passerIdx) != Team(targetIdx) {
		return ErrNotTeammate
	}
	if len(target.Hand) == 0 {
		return ErrTargetEmptyHand
	}

	r.CurrentTurn = targetIdx
	r.addLog(fmt.Sprintf("%s passed turn to %s", passer.Name, target.Name), LogTurn)

	r.BroadcastState()
	return nil
}
