package deck

// DiscardPile is the stack of played cards
// The last card added is the visible top card
type DiscardPile struct {
	pile []Card
}

// NewDiscardPile returns an empty discard pile
func NewDiscardPile() *DiscardPile {
	return &DiscardPile{
		pile: make([]Card, 0),
	}
}

// AddCard puts a card on top of the pile
func (d *DiscardPile) AddCard(card Card) {
	d.pile = append(d.pile, card)
}

// AddCards puts the cards on the pile in order, the last card ends up on top
func (d *DiscardPile) AddCards(cards []Card) {
	d.pile = append(d.pile, cards...)
}

// TopCard returns the top card
// The second value is false if the pile is empty
func (d *DiscardPile) TopCard() (Card, bool) {
	n := len(d.pile)
	if n == 0 {
		return Card{}, false
	}

	return d.pile[n-1], true
}

// Reset empties the pile
func (d *DiscardPile) Reset() {
	d.pile = make([]Card, 0)
}

// Len returns the number of cards in the pile
func (d *DiscardPile) Len() int {
	return len(d.pile)
}

// Cards returns a copy of the pile, bottom card first
func (d *DiscardPile) Cards() []Card {
	return append([]Card{}, d.pile...)
}

func (d *DiscardPile) String() string {
	return CardsToString(d.pile)
}
