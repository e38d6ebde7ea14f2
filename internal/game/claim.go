// internal/game/claim.go
package game

import (
	"fmt"

	"github.com/google/uuid"
)

// ClaimAssignment names the claimed holder of one card in a half-suit.
type ClaimAssignment struct {
	CardID   string    `json:"card"`
	PlayerID uuid.UUID `json:"player"`
}

// Claim declares the exact holder of all 6 cards in an unresolved half-suit
// and resolves it into one of three outcomes:
//
//   - every assignment matches the true holder exactly: the claiming team
//     scores a point and the half-suit is claimed;
//   - every assignment names the right team but at least one names the wrong
//     seat: no score, the half-suit retires to the middle;
//   - at least one assignment names the wrong team: the opposing team scores
//     and the half-suit is claimed.
//
// Claiming is a team privilege: any member of the team whose turn it is may
// claim, not just the seated player. Regardless of outcome the 6 cards leave
// every hand permanently. Returns a human-readable result for the caller.
func (r *Room) Claim(claimerID uuid.UUID, halfSuitName string, assignments []ClaimAssignment) (string, error) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if !r.GameStarted {
		return "", ErrGameNotStarted
	}

	claimerIdx := r.playerIndex(claimerID)
	if claimerIdx == -1 {
		return "", ErrUnknownPlayer
	}
	claimer := r.Players[claimerIdx]
	claimerTeam := Team(claimerIdx)

	if claimerTeam != Team(r.CurrentTurn) {
		return "", ErrNotTeamTurn
	}

	info, ok := HalfSuitByName(halfSuitName)
	if !ok {
		return "", ErrUnknownHalfSuit
	}
	if r.suitResolved(halfSuitName) {
		return "", ErrSuitResolved
	}

	// Validate completeness before touching anything: exactly the 6 cards of
	// this half-suit, no duplicates, every claimed holder seated in the room.
	if len(assignments) != 6 {
		return "", ErrIncompleteClaim
	}
	claimed := make(map[string]int, 6)
	for _, a := range assignments {
		card, ok := CardByID(a.CardID)
		if !ok || HalfSuitOf(card) != halfSuitName {
			return "", ErrIncompleteClaim
		}
		if _, dup := claimed[a.CardID]; dup {
			return "", ErrIncompleteClaim
		}
		holderIdx := r.playerIndex(a.PlayerID)
		if holderIdx == -1 {
			return "", ErrUnknownPlayer
		}
		claimed[a.CardID] = holderIdx
	}

	// Ground truth: scan all hands for the true holder of each card. A card
	// with no holder has already left circulation and breaks the claim.
	allCorrectTeam := true
	allCorrectPlayer := true
	for _, card := range CardsOf(halfSuitName) {
		actualIdx := -1
		for i, p := range r.Players {
			if p.HoldsCard(card.ID) {
				actualIdx = i
				break
			}
		}
		claimedIdx := claimed[card.ID]
		if actualIdx == -1 {
			allCorrectTeam = false
			allCorrectPlayer = false
			break
		}
		if Team(claimedIdx) != Team(actualIdx) {
			allCorrectTeam = false
			allCorrectPlayer = false
		} else if claimedIdx != actualIdx {
			allCorrectPlayer = false
		}
	}

	// The half-suit leaves circulation whatever the outcome.
	for _, p := range r.Players {
		kept := p.Hand[:0]
		for _, c := range p.Hand {
			if HalfSuitOf(c) != halfSuitName {
				kept = append(kept, c)
			}
		}
		p.Hand = kept
	}

	var result string
	switch {
	case allCorrectTeam && allCorrectPlayer:
		r.Scores[claimerTeam]++
		r.ClaimedSuits = append(r.ClaimedSuits, halfSuitName)
		result = fmt.Sprintf("%s correctly claimed %s! Team %d +1 point", claimer.Name, info.Display, claimerTeam+1)
		r.addLog(result, LogClaimSuccess)
	case allCorrectTeam:
		r.MiddleSuits = append(r.MiddleSuits, halfSuitName)
		result = fmt.Sprintf("%s claimed %s - correct team but wrong player assignments. Suit goes to middle.", claimer.Name, info.Display)
		r.addLog(result, LogClaimPartial)
	default:
		opponentTeam := 1 - claimerTeam
		r.Scores[opponentTeam]++
		r.ClaimedSuits = append(r.ClaimedSuits, halfSuitName)
		result = fmt.Sprintf("%s incorrectly claimed %s! Opponent had cards. Team %d +1 point", claimer.Name, info.Display, opponentTeam+1)
		r.addLog(result, LogClaimFail)
	}

	if r.gameOver() {
		r.addLog(r.gameOverMessage(), LogSystem)
	} else {
		r.advanceTurn()
	}

	r.BroadcastState()
	return result, nil
}

// suitResolved reports whether a half-suit has already been claimed or
// middled. Assumes lock is held.
func (r *Room) suitResolved(name string) bool {
	for _, s := range r.ClaimedSuits {
		if s == name {
			return true
		}
	}
	for _, s := range r.MiddleSuits {
		if s == name {
			return true
		}
	}
	return false
}

// gameOverMessage names the winning team or declares a tie.
// Assumes lock is held.
func (r *Room) gameOverMessage() string {
	winner := "Tie"
	if r.Scores[0] > r.Scores[1] {
		winner = "Team 1"
	} else if r.Scores[1] > r.Scores[0] {
		winner = "Team 2"
	}
	if winner == "Tie" {
		return fmt.Sprintf("Game Over! Tie! Final score: %d - %d", r.Scores[0], r.Scores[1])
	}
	return fmt.Sprintf("Game Over! %s wins! Final score: %d - %d", winner, r.Scores[0], r.Scores[1])
}
