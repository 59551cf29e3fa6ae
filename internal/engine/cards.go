package engine

import "math/rand"

type Suit string

const (
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
	Spades   Suit = "spades"
)

var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

type Rank string

const (
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
	Ace   Rank = "A"
)

var Ranks = []Rank{Nine, Ten, Jack, Queen, King, Ace}

// Card is an immutable value; the full deck is the 24 rank/suit combinations.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// NewDeck returns the 24-card deck in a fixed order.
func NewDeck() []Card {
	deck := make([]Card, 0, 24)
	for _, s := range Suits {
		for _, r := range Ranks {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// ShuffleDeck returns a shuffled copy of the given deck.
func ShuffleDeck(deck []Card) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Trump hierarchy: 10 < Q < K < A < 9 < J.
var trumpOrder = map[Rank]int{
	Ten:   1,
	Queen: 2,
	King:  3,
	Ace:   4,
	Nine:  5,
	Jack:  6,
}

// Non-trump hierarchy: 9 < 10 < J < Q < K < A.
var plainOrder = map[Rank]int{
	Nine:  1,
	Ten:   2,
	Jack:  3,
	Queen: 4,
	King:  5,
	Ace:   6,
}

var trumpPoints = map[Rank]int{
	Nine:  14,
	Ten:   10,
	Jack:  20,
	Queen: 2,
	King:  3,
	Ace:   11,
}

var plainPoints = map[Rank]int{
	Nine:  0,
	Ten:   10,
	Jack:  1,
	Queen: 2,
	King:  3,
	Ace:   11,
}

// CardPoints returns the scoring value of c given the current trump suit.
func CardPoints(c Card, trump Suit) int {
	if c.Suit == trump {
		return trumpPoints[c.Rank]
	}
	return plainPoints[c.Rank]
}
