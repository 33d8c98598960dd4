package warzone

import (
	"fmt"
	"strings"
)

// CardKind is the kind of a card, which determines the order it unlocks.
type CardKind int

const (
	CardBomb CardKind = iota
	CardReinforcement
	CardBlockade
	CardAirlift
	CardDiplomacy
)

// AllCardKinds lists every card kind in deck-fill order.
var AllCardKinds = []CardKind{CardBomb, CardReinforcement, CardBlockade, CardAirlift, CardDiplomacy}

// ReinforcementCardArmies is the pool bonus granted by playing a reinforcement card.
const ReinforcementCardArmies = 5

func (k CardKind) String() string {
	switch k {
	case CardBomb:
		return "bomb"
	case CardReinforcement:
		return "reinforcement"
	case CardBlockade:
		return "blockade"
	case CardAirlift:
		return "airlift"
	case CardDiplomacy:
		return "diplomacy"
	default:
		return "unknown"
	}
}

// Card is a single card in a deck or hand.
type Card struct {
	Kind CardKind
}

func (c Card) String() string {
	return c.Kind.String()
}

// Deck is the shared draw pile.
type Deck struct {
	cards []Card
}

// NewDeck creates a deck of size cards, cycling through every kind.
func NewDeck(size int) *Deck {
	d := &Deck{cards: make([]Card, 0, size)}
	for i := 0; i < size; i++ {
		d.cards = append(d.cards, Card{Kind: AllCardKinds[i%len(AllCardKinds)]})
	}
	return d
}

// Draw removes and returns a random card. ok is false when the deck is empty.
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	i := Intn(len(d.cards))
	c := d.cards[i]
	last := len(d.cards) - 1
	d.cards[i] = d.cards[last]
	d.cards = d.cards[:last]
	return c, true
}

// Return puts a played card back into the deck.
func (d *Deck) Return(c Card) {
	d.cards = append(d.cards, c)
}

// Len returns the number of cards left.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Hand holds the cards a player has drawn.
type Hand struct {
	cards []Card
}

// NewHand returns an empty hand.
func NewHand() *Hand {
	return &Hand{}
}

// Add puts a card in the hand.
func (h *Hand) Add(c Card) {
	h.cards = append(h.cards, c)
}

// Take removes one card of the given kind. It reports false if the hand holds none.
func (h *Hand) Take(kind CardKind) bool {
	for i, c := range h.cards {
		if c.Kind == kind {
			h.cards = append(h.cards[:i], h.cards[i+1:]...)
			return true
		}
	}
	return false
}

// Count returns how many cards of kind the hand holds.
func (h *Hand) Count(kind CardKind) int {
	n := 0
	for _, c := range h.cards {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// Cards returns a copy of the hand's cards.
func (h *Hand) Cards() []Card {
	out := make([]Card, len(h.cards))
	copy(out, h.cards)
	return out
}

// Len returns the number of cards in the hand.
func (h *Hand) Len() int {
	return len(h.cards)
}

func (h *Hand) String() string {
	names := make([]string, len(h.cards))
	for i, c := range h.cards {
		names[i] = c.String()
	}
	return fmt.Sprintf("[%s]", strings.Join(names, ", "))
}

// ParseCardKind maps a card name to its kind.
func ParseCardKind(s string) (CardKind, bool) {
	for _, k := range AllCardKinds {
		if k.String() == strings.ToLower(s) {
			return k, true
		}
	}
	return 0, false
}
