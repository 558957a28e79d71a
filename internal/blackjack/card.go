// Package blackjack implements a single-player blackjack round against a
// dealer who stands on 17.
package blackjack

import "strconv"

// Suit is one of the four card suits.
type Suit string

const (
	Spades   Suit = "♠"
	Hearts   Suit = "♥"
	Diamonds Suit = "♦"
	Clubs    Suit = "♣"
)

var suits = []Suit{Spades, Hearts, Diamonds, Clubs}

var ranks = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

// Card is a playing card.
type Card struct {
	Suit Suit
	Rank string
}

// Value is the card's blackjack value with aces counted high.
func (c Card) Value() int {
	switch c.Rank {
	case "A":
		return 11
	case "J", "Q", "K":
		return 10
	}
	v, _ := strconv.Atoi(c.Rank)
	return v
}

func (c Card) String() string {
	return c.Rank + string(c.Suit)
}

// Red reports whether the card is a heart or diamond.
func (c Card) Red() bool {
	return c.Suit == Hearts || c.Suit == Diamonds
}

// Rand is the randomness a deck is shuffled with.
type Rand interface {
	IntN(n int) int
}

// NewDeck returns the 52 cards in suit then rank order.
func NewDeck() []Card {
	deck := make([]Card, 0, len(suits)*len(ranks))
	for _, s := range suits {
		for _, r := range ranks {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// Shuffle permutes deck in place (Fisher-Yates).
func Shuffle(deck []Card, rng Rand) {
	for i := len(deck) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
}

// Score totals a hand, demoting aces from 11 to 1 while the hand would
// otherwise bust.
func Score(hand []Card) int {
	score, aces := 0, 0
	for _, c := range hand {
		score += c.Value()
		if c.Rank == "A" {
			aces++
		}
	}
	for score > 21 && aces > 0 {
		score -= 10
		aces--
	}
	return score
}
