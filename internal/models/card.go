// internal/models/card.go
package models

import "fmt"

// Card is one of the 48 cards in a Fish deck (no 8s, no jokers).
// Cards are immutable; ID is the canonical "rank_suit" form, e.g. "10_hearts".
type Card struct {
	ID   string `json:"id"`
	Suit string `json:"suit"`
	Rank string `json:"rank"`
}

// NewCard builds a Card with its canonical ID.
func NewCard(rank, suit string) Card {
	return Card{ID: CardID(rank, suit), Suit: suit, Rank: rank}
}

// CardID returns the canonical card identifier for a rank/suit pair.
func CardID(rank, suit string) string {
	return fmt.Sprintf("%s_%s", rank, suit)
}
