// internal/game/halfsuits.go
package game

import (
	"fmt"
	"sort"
	"strings"

	"github.com/halfsuit/fish/internal/models"
)

// Deck structure: 12 ranks x 4 suits = 48 cards, partitioned into 8 fixed
// half-suits of 6 cards each (low ranks 2-7, high ranks 9-A; no 8s).
var (
	Suits     = []string{"hearts", "diamonds", "clubs", "spades"}
	LowRanks  = []string{"2", "3", "4", "5", "6", "7"}
	HighRanks = []string{"9", "10", "J", "Q", "K", "A"}
)

// HalfSuitInfo is static reference data describing one half-suit. It is
// identical across all rooms and never changes during a game.
type HalfSuitInfo struct {
	Name    string   `json:"name"`
	Suit    string   `json:"suit"`
	Ranks   []string `json:"ranks"`
	Display string   `json:"display"`
}

// HalfSuits enumerates all 8 half-suits in a fixed order.
var HalfSuits []HalfSuitInfo

var (
	halfSuitByName map[string]HalfSuitInfo
	lowRankSet     map[string]bool
	rankOrder      map[string]int
	cardByID       map[string]models.Card
)

func init() {
	lowRankSet = make(map[string]bool, len(LowRanks))
	for _, r := range LowRanks {
		lowRankSet[r] = true
	}

	rankOrder = make(map[string]int, len(LowRanks)+len(HighRanks))
	for i, r := range append(append([]string{}, LowRanks...), HighRanks...) {
		rankOrder[r] = i
	}

	halfSuitByName = make(map[string]HalfSuitInfo, 8)
	for _, suit := range Suits {
		low := HalfSuitInfo{
			Name:    fmt.Sprintf("low_%s", suit),
			Suit:    suit,
			Ranks:   LowRanks,
			Display: fmt.Sprintf("Low %s", capitalize(suit)),
		}
		high := HalfSuitInfo{
			Name:    fmt.Sprintf("high_%s", suit),
			Suit:    suit,
			Ranks:   HighRanks,
			Display: fmt.Sprintf("High %s", capitalize(suit)),
		}
		HalfSuits = append(HalfSuits, low, high)
		halfSuitByName[low.Name] = low
		halfSuitByName[high.Name] = high
	}

	cardByID = make(map[string]models.Card, 48)
	for _, c := range NewDeck() {
		cardByID[c.ID] = c
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// NewDeck returns all 48 cards in suit-then-rank order, unshuffled.
func NewDeck() []models.Card {
	deck := make([]models.Card, 0, 48)
	for _, suit := range Suits {
		for _, rank := range append(append([]string{}, LowRanks...), HighRanks...) {
			deck = append(deck, models.NewCard(rank, suit))
		}
	}
	return deck
}

// CardByID resolves a card id to its card, reporting whether it is one of the
// 48 cards in play.
func CardByID(id string) (models.Card, bool) {
	c, ok := cardByID[id]
	return c, ok
}

// HalfSuitOf maps a card to its half-suit name ("low_hearts", "high_spades", ...),
// derived solely from whether the rank is in the low set.
func HalfSuitOf(c models.Card) string {
	level := "high"
	if lowRankSet[c.Rank] {
		level = "low"
	}
	return fmt.Sprintf("%s_%s", level, c.Suit)
}

// HalfSuitByName looks up static half-suit metadata.
func HalfSuitByName(name string) (HalfSuitInfo, bool) {
	info, ok := halfSuitByName[name]
	return info, ok
}

// CardsOf returns the 6 cards belonging to a half-suit, independent of who
// holds them. It is the exact inverse of HalfSuitOf. Returns nil for an
// unknown half-suit name.
func CardsOf(halfSuitName string) []models.Card {
	info, ok := halfSuitByName[halfSuitName]
	if !ok {
		return nil
	}
	cards := make([]models.Card, 0, len(info.Ranks))
	for _, rank := range info.Ranks {
		cards = append(cards, models.NewCard(rank, info.Suit))
	}
	return cards
}

// SortHand orders a hand by half-suit name, then by the fixed rank order
// (low ranks ascending, then high ranks ascending). Reapplied after every
// hand mutation so the ordering stays stable for display and determinism.
func SortHand(hand []models.Card) {
	sort.SliceStable(hand, func(i, j int) bool {
		hsI, hsJ := HalfSuitOf(hand[i]), HalfSuitOf(hand[j])
		if hsI != hsJ {
			return hsI < hsJ
		}
		return rankOrder[hand[i].Rank] < rankOrder[hand[j].Rank]
	})
}

var suitSymbols = map[string]string{
	"hearts":   "♥",
	"diamonds": "♦",
	"clubs":    "♣",
	"spades":   "♠",
}

// suitSymbol returns the display glyph for a suit, falling back to the name.
func suitSymbol(suit string) string {
	if sym, ok := suitSymbols[suit]; ok {
		return sym
	}
	return suit
}
