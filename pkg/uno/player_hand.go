package uno

import (
	"uno-server/pkg/deck"
)

// PlayerHand is a player in the game
// The name and score live for the whole game, the cards are reset every round
type PlayerHand struct {
	PlayerName string
	cards      []deck.Card
	score      int
}

// NewPlayerHand returns a new player hand with no cards and a score of zero
func NewPlayerHand(name string) *PlayerHand {
	return &PlayerHand{
		PlayerName: name,
		cards:      make([]deck.Card, 0),
	}
}

// TakeCards adds the cards to the end of the hand
func (p *PlayerHand) TakeCards(cards []deck.Card) {
	p.cards = append(p.cards, cards...)
}

// PlayCard removes the card at index from the hand and returns it
func (p *PlayerHand) PlayCard(index int) (deck.Card, error) {
	if index < 0 || index >= len(p.cards) {
		return deck.Card{}, ErrInvalidCardIndex
	}

	card := p.cards[index]
	p.cards = append(p.cards[:index], p.cards[index+1:]...)

	return card, nil
}

// PutCardBack inserts the card at index
// The index is clamped to [0, len(cards)], so an out of range index never fails
func (p *PlayerHand) PutCardBack(card deck.Card, index int) {
	if index < 0 {
		index = 0
	}

	if index > len(p.cards) {
		index = len(p.cards)
	}

	p.cards = append(p.cards, deck.Card{})
	copy(p.cards[index+1:], p.cards[index:])
	p.cards[index] = card
}

// AddToScore adds points to the score
// Negative points are ignored, the score never decreases
func (p *PlayerHand) AddToScore(points int) {
	if points <= 0 {
		return
	}

	p.score += points
}

// ResetCards empties the hand, the score is kept
func (p *PlayerHand) ResetCards() {
	p.cards = make([]deck.Card, 0)
}

// Cards returns a shallow clone of the player's hand
func (p *PlayerHand) Cards() []deck.Card {
	return append([]deck.Card{}, p.cards...)
}

// CardCount returns the number of cards in the hand
func (p *PlayerHand) CardCount() int {
	return len(p.cards)
}

// Score returns the cumulative score
func (p *PlayerHand) Score() int {
	return p.score
}

// IndexOf returns the index of the first card equal to card, or -1
func (p *PlayerHand) IndexOf(card deck.Card) int {
	for i, c := range p.cards {
		if c == card {
			return i
		}
	}

	return -1
}

func (p *PlayerHand) String() string {
	return p.PlayerName + ":" + deck.CardsToString(p.cards)
}
