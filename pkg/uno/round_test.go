package uno

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"uno-server/internal/rng"
	"uno-server/pkg/deck"
)

// setupRound returns a seated round with top on the discard pile
// Players are named p0, p1, ...
func setupRound(top string, hands ...string) (*Round, []*PlayerHand) {
	players := make([]*PlayerHand, len(hands))
	for i, hand := range hands {
		players[i] = handWith(fmt.Sprintf("p%d", i), hand)
	}

	round := NewRound(players)
	if top != "" {
		round.DiscardPile().AddCard(deck.CardFromString(top))
	}

	if err := round.FindDealer(); err != nil {
		panic(err)
	}

	return round, players
}

// play plays the card at index for the current player, putting it back if it's rejected
func play(r *Round, index int) bool {
	player := r.CurrentPlayer()
	card, err := player.PlayCard(index)
	if err != nil {
		panic(err)
	}

	if !r.PutCard(card) {
		player.PutCardBack(card, index)
		return false
	}

	return true
}

func currentIndex(r *Round) int {
	idx, ok := r.CurrentPlayerIndex()
	if !ok {
		return -1
	}

	return idx
}

func TestRound_FindDealer(t *testing.T) {
	r := NewRound([]*PlayerHand{})
	assert.Equal(t, ErrNoPlayers, r.FindDealer())
	assert.Nil(t, r.CurrentPlayer())

	r = NewRound([]*PlayerHand{NewPlayerHand("a"), NewPlayerHand("b")})
	_, ok := r.CurrentPlayerIndex()
	assert.False(t, ok)

	assert.NoError(t, r.FindDealer())
	assert.Equal(t, 0, currentIndex(r))
	assert.Equal(t, "a", r.CurrentPlayer().PlayerName)
}

func TestRound_NextPlayer(t *testing.T) {
	r := NewRound([]*PlayerHand{NewPlayerHand("a"), NewPlayerHand("b"), NewPlayerHand("c")})

	// seats the dealer first
	assert.NoError(t, r.NextPlayer())
	assert.Equal(t, 0, currentIndex(r))

	assert.NoError(t, r.NextPlayer())
	assert.Equal(t, 1, currentIndex(r))
	assert.NoError(t, r.NextPlayer())
	assert.Equal(t, 2, currentIndex(r))
	assert.NoError(t, r.NextPlayer())
	assert.Equal(t, 0, currentIndex(r))

	assert.Equal(t, ErrNoPlayers, NewRound(nil).NextPlayer())
}

func TestRound_PutCard_unseated(t *testing.T) {
	r := NewRound([]*PlayerHand{handWith("a", "r1"), handWith("b", "r2")})
	assert.False(t, r.PutCard(deck.CardFromString("r3")))
	assert.Equal(t, 0, r.DiscardPile().Len())
}

func TestRound_PutCard_emptyDiscardPile(t *testing.T) {
	r, _ := setupRound("", "r1,b2", "g3,y4")
	assert.True(t, play(r, 1))

	top, ok := r.DiscardPile().TopCard()
	assert.True(t, ok)
	assert.Equal(t, deck.Numbered(deck.Blue, 2), top)
	assert.Equal(t, 1, currentIndex(r))
}

func TestRound_PutCard_illegal(t *testing.T) {
	r, players := setupRound("r7", "b3,g4", "y1,y2")
	r.Deck = deck.New(rng.NewSeeded(1))
	deckHash := r.Deck.HashCode()

	assert.False(t, play(r, 0))
	assert.False(t, play(r, 1))

	assert.Equal(t, "r7", r.DiscardPile().String())
	assert.Equal(t, deckHash, r.Deck.HashCode())
	assert.Equal(t, 0, currentIndex(r))
	assert.Equal(t, "b3,g4", deck.CardsToString(players[0].Cards()))
	assert.False(t, r.IsFinished())
}

func TestRound_PutCard_numbered(t *testing.T) {
	r, _ := setupRound("r7", "b7,g4", "r1,y2", "y7,y3")

	assert.True(t, play(r, 0))
	assert.Equal(t, 1, currentIndex(r))
	assert.Equal(t, "r7,b7", r.DiscardPile().String())

	assert.False(t, play(r, 0)) // r1 on b7
	assert.False(t, play(r, 1)) // y2 on b7
	assert.Equal(t, 1, currentIndex(r))
}

func TestRound_PutCard_wild(t *testing.T) {
	r, _ := setupRound("r7", "wild,g4", "b1,y2")

	assert.True(t, play(r, 0))
	assert.Equal(t, 1, currentIndex(r))

	// the color after a wild is not tracked
	assert.True(t, play(r, 1))
	assert.Equal(t, 0, currentIndex(r))
}

func TestRound_PutCard_skip(t *testing.T) {
	r, _ := setupRound("r7", "rskip,g4", "b1,y2", "y7,y3")

	assert.True(t, play(r, 0))
	assert.Equal(t, 2, currentIndex(r))
}

func TestRound_PutCard_skip_twoPlayers(t *testing.T) {
	r, _ := setupRound("r7", "rskip,g4", "b1,y2")

	assert.True(t, play(r, 0))
	assert.Equal(t, 0, currentIndex(r), "skipping the only opponent returns the turn")
}

func TestRound_PutCard_reverse_twoPlayers(t *testing.T) {
	r, players := setupRound("r7", "rrev,g4", "b1,y2")
	p0, p1 := players[0], players[1]

	assert.True(t, play(r, 0))

	assert.Equal(t, []*PlayerHand{p1, p0}, r.Players())
	assert.Equal(t, p1, r.CurrentPlayer())
	assert.Equal(t, 0, currentIndex(r))
}

func TestRound_PutCard_reverse(t *testing.T) {
	r, players := setupRound("r7", "g4", "rrev,y2", "y7,y3", "b1,b2")
	p0, p1, p2, p3 := players[0], players[1], players[2], players[3]

	require.NoError(t, r.NextPlayer())
	assert.Equal(t, p1, r.CurrentPlayer())

	assert.True(t, play(r, 0))
	assert.Equal(t, []*PlayerHand{p3, p2, p1, p0}, r.Players())
	assert.Equal(t, p0, r.CurrentPlayer(), "play continues in the other direction")

	require.NoError(t, r.NextPlayer())
	assert.Equal(t, p3, r.CurrentPlayer())
}

func TestRound_PutCard_draw2(t *testing.T) {
	r, players := setupRound("r7", "rd2,g4", "b1,y2", "y7,y3")
	r.Deck = deck.New(nil)
	r.Deck.Cards = deck.CardsFromString("g1,g2,g3")

	assert.True(t, play(r, 0))
	assert.Equal(t, 1, currentIndex(r))
	assert.Equal(t, "b1,y2,g1,g2", deck.CardsToString(players[1].Cards()))
	assert.Equal(t, 1, r.Deck.CardsLeft())

	// cross-color draw two cannot be stacked
	players[1].TakeCards(deck.CardsFromString("bd2"))
	assert.False(t, play(r, 4))
	assert.Equal(t, 1, currentIndex(r))
}

func TestRound_PutCard_draw4(t *testing.T) {
	r, players := setupRound("r7", "wd4,g4", "b1", "y7")
	r.Deck = deck.New(nil)
	r.Deck.Cards = deck.CardsFromString("g1,g2")

	assert.True(t, play(r, 0))
	assert.Equal(t, 1, currentIndex(r))
	assert.Equal(t, "b1,g1,g2", deck.CardsToString(players[1].Cards()), "deck ran short")
	assert.Equal(t, 0, r.Deck.CardsLeft())
}

func TestRound_PutCard_drawWithoutDeck(t *testing.T) {
	r, players := setupRound("r7", "wd4,rd2,g4", "b1", "y7")

	assert.True(t, play(r, 0))
	assert.Equal(t, 1, currentIndex(r))
	assert.Equal(t, 1, players[1].CardCount())

	require.NoError(t, r.NextPlayer())
	require.NoError(t, r.NextPlayer())
	assert.True(t, play(r, 0))
	assert.Equal(t, 1, currentIndex(r))
	assert.Equal(t, 1, players[1].CardCount())
}

func TestRound_PutCard_lastCard(t *testing.T) {
	r, players := setupRound("r7", "rskip", "b1,y2", "wild,gd2")

	assert.True(t, play(r, 0))
	assert.True(t, r.IsFinished())
	assert.Equal(t, 0, currentIndex(r), "the turn does not move")
	assert.Equal(t, 3+70, players[0].Score())
	assert.Equal(t, 0, players[1].Score())

	// the round is over
	r.currentPlayerIndex = 1
	assert.False(t, play(r, 0))
	assert.Equal(t, "r7,rskip", r.DiscardPile().String())
}

func TestRound_Deal(t *testing.T) {
	a := assert.New(t)
	players := []*PlayerHand{NewPlayerHand("a"), NewPlayerHand("b"), NewPlayerHand("c")}
	r := NewRound(players)

	a.Equal(ErrNoDeck, r.Deal(CardsPerPlayer))

	r.Deck = deck.New(rng.NewSeeded(10))
	r.Deck.Shuffle()
	front := append([]deck.Card{}, r.Deck.Cards[:22]...)

	a.NoError(r.Deal(CardsPerPlayer))
	a.Equal(0, currentIndex(r))
	a.Equal(108-22, r.Deck.CardsLeft())

	// dealt one at a time
	a.Equal([]deck.Card{front[0], front[3], front[6], front[9], front[12], front[15], front[18]}, players[0].Cards())
	a.Equal(front[19], players[1].Cards()[6])
	top, ok := r.DiscardPile().TopCard()
	a.True(ok)
	a.Equal(front[21], top)

	a.Equal(ErrAlreadyDealt, r.Deal(CardsPerPlayer))
	a.Equal(ErrNoPlayers, (&Round{Deck: deck.New(nil), discardPile: deck.NewDiscardPile()}).Deal(1))
}

func TestRound_Deal_shortDeck(t *testing.T) {
	players := []*PlayerHand{NewPlayerHand("a"), NewPlayerHand("b")}
	r := NewRound(players)
	r.Deck = deck.New(nil)
	r.Deck.Cards = deck.CardsFromString("r1,r2,r3")

	assert.NoError(t, r.Deal(CardsPerPlayer))
	assert.Equal(t, "r1,r3", deck.CardsToString(players[0].Cards()))
	assert.Equal(t, "r2", deck.CardsToString(players[1].Cards()))
	assert.Equal(t, 0, r.DiscardPile().Len())
	assert.Equal(t, 0, currentIndex(r))
}

// the multiset of cards in deck, discard pile and hands never changes
func TestRound_cardsAreConserved(t *testing.T) {
	players := []*PlayerHand{NewPlayerHand("a"), NewPlayerHand("b"), NewPlayerHand("c"), NewPlayerHand("d")}
	r := NewRound(players)
	r.Deck = deck.New(rng.NewSeeded(99))
	r.Deck.Shuffle()
	require.NoError(t, r.Deal(CardsPerPlayer))

	count := func() int {
		n := r.Deck.CardsLeft() + r.DiscardPile().Len()
		for _, p := range players {
			n += p.CardCount()
		}
		return n
	}

	for turn := 0; turn < 200 && !r.IsFinished(); turn++ {
		played := false
		for i := 0; i < r.CurrentPlayer().CardCount(); i++ {
			if play(r, i) {
				played = true
				break
			}
		}

		if !played {
			r.CurrentPlayer().TakeCards(r.Deck.DrawCards(1))
			require.NoError(t, r.NextPlayer())
		}

		require.Equal(t, deck.Size, count())
	}
}
