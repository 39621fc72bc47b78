package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscardPile(t *testing.T) {
	a := assert.New(t)
	d := NewDiscardPile()

	_, ok := d.TopCard()
	a.False(ok)
	a.Equal(0, d.Len())

	d.AddCard(CardFromString("r7"))
	top, ok := d.TopCard()
	a.True(ok)
	a.Equal(Numbered(Red, 7), top)

	d.AddCards(CardsFromString("b7,bskip"))
	top, _ = d.TopCard()
	a.Equal(Action(KindSkip, Blue), top)
	a.Equal("r7,b7,bskip", d.String())
	a.Equal(3, d.Len())

	cards := d.Cards()
	cards[0] = Wild(KindWild)
	a.Equal("r7,b7,bskip", CardsToString(d.Cards()), "Cards() returns a copy")

	d.Reset()
	_, ok = d.TopCard()
	a.False(ok)
	a.Equal(0, d.Len())
}
