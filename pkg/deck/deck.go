package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"errors"

	"uno-server/internal/rng"
)

// ErrEndOfDeck is an error when Draw() is attempted and there are no more cards
var ErrEndOfDeck = errors.New("end of deck reached")

// Size is the number of cards in a full deck
const Size = 108

// Deck represents the draw pile
// The front of Cards is the next card drawn
type Deck struct {
	Cards []Card `json:"cards"`
	rng   rng.Generator
}

// New returns a new deck of cards.
// Important! this deck is unshuffled. You must call the Shuffle() method to shuffle the cards
// If gen is nil, the default crypto generator is used
func New(gen rng.Generator) *Deck {
	if gen == nil {
		gen = rng.Default()
	}

	d := &Deck{
		rng: gen,
	}

	d.buildDeck()
	return d
}

// buildDeck creates the standard 108 card composition:
// per color one 0, two of each 1-9, two each of skip, reverse and draw two,
// followed by four wilds and four draw fours
func (d *Deck) buildDeck() {
	cards := make([]Card, 0, Size)
	for _, color := range Colors {
		cards = append(cards, Numbered(color, 0))
		for i := 0; i < 2; i++ {
			for digit := 1; digit <= 9; digit++ {
				cards = append(cards, Numbered(color, digit))
			}
		}
	}

	for _, kind := range []Kind{KindSkip, KindReverse, KindDraw2} {
		for _, color := range Colors {
			cards = append(cards, Action(kind, color), Action(kind, color))
		}
	}

	for _, kind := range []Kind{KindWild, KindDraw4} {
		for i := 0; i < 4; i++ {
			cards = append(cards, Wild(kind))
		}
	}

	d.Cards = cards
}

// Shuffle will shuffle the remaining cards in place
// Every index i from the front swaps with a random index j in [i, len-1]
func (d *Deck) Shuffle() {
	n := len(d.Cards)
	for i := 0; i < n-1; i++ {
		j := i + d.rng.Intn(n-i)

		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
}

// HashCode returns a SHA1 hash code of the deck.
func (d *Deck) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range d.Cards {
		_, _ = hash.Write([]byte(card.String()))
	}

	return hex.EncodeToString(hash.Sum(nil)[:])
}

// Draw will draw the next card
// If there are no more cards, an ErrEndOfDeck is returned
func (d *Deck) Draw() (Card, error) {
	if len(d.Cards) <= 0 {
		return Card{}, ErrEndOfDeck
	}

	card := d.Cards[0]
	d.Cards = d.Cards[1:]

	return card, nil
}

// DrawCards removes up to n cards from the front of the deck
// If the deck is short, the remaining cards are returned. This never fails.
func (d *Deck) DrawCards(n int) []Card {
	if n > len(d.Cards) {
		n = len(d.Cards)
	}

	if n <= 0 {
		return []Card{}
	}

	cards := make([]Card, n)
	copy(cards, d.Cards[:n])
	d.Cards = d.Cards[n:]

	return cards
}

// CanDraw returns true if there are {want} cards left in the deck
func (d *Deck) CanDraw(want int) bool {
	return len(d.Cards) >= want
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	return len(d.Cards)
}
