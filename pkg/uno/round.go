package uno

import (
	"github.com/sirupsen/logrus"
	"uno-server/pkg/deck"
)

// CardsPerPlayer is the number of cards each player is dealt at the start of a round
const CardsPerPlayer = 7

// Round is one hand of play, from the deal until a player empties their hand
//
// A round starts unseated (no current player). FindDealer, or the first call to
// NextPlayer, seats the dealer at index 0. Once finished, no more cards are accepted.
type Round struct {
	// players is shared with the game, a reverse reorders the game's players as well
	players []*PlayerHand

	// Deck is the draw pile. It may be nil, in which case draw cards are not drawn.
	Deck *deck.Deck

	discardPile        *deck.DiscardPile
	currentPlayerIndex int
	seated             bool
	isFinished         bool

	logger logrus.FieldLogger
}

// NewRound returns an unseated round over the players
func NewRound(players []*PlayerHand) *Round {
	return &Round{
		players:     players,
		discardPile: deck.NewDiscardPile(),
		logger:      logrus.StandardLogger(),
	}
}

// SetLogger sets the logger
func (r *Round) SetLogger(logger logrus.FieldLogger) {
	r.logger = logger
}

// FindDealer seats the first player
func (r *Round) FindDealer() error {
	if len(r.players) == 0 {
		return ErrNoPlayers
	}

	r.currentPlayerIndex = 0
	r.seated = true
	return nil
}

// NextPlayer moves the turn to the next player in list order
// If nobody is seated yet, the dealer is seated instead
func (r *Round) NextPlayer() error {
	if !r.seated {
		return r.FindDealer()
	}

	r.currentPlayerIndex = (r.currentPlayerIndex + 1) % len(r.players)
	return nil
}

// Deal gives each player cardsPerPlayer cards, one at a time, then flips the next card onto
// the discard pile and seats the dealer
func (r *Round) Deal(cardsPerPlayer int) error {
	if r.seated || r.isFinished {
		return ErrAlreadyDealt
	}

	if r.Deck == nil {
		return ErrNoDeck
	}

	if len(r.players) == 0 {
		return ErrNoPlayers
	}

	for i := 0; i < cardsPerPlayer; i++ {
		for _, player := range r.players {
			player.TakeCards(r.Deck.DrawCards(1))
		}
	}

	if card, err := r.Deck.Draw(); err == nil {
		r.discardPile.AddCard(card)
	}

	return r.FindDealer()
}

// PutCard tries to put the card on the discard pile for the current player
// The card must already have been removed from the player's hand.
// Returns false if nobody is seated, the round is over, or the card cannot be played on the top card.
// Nothing is changed when false is returned.
func (r *Round) PutCard(card deck.Card) bool {
	if !r.seated || r.isFinished {
		return false
	}

	var top *deck.Card
	if t, ok := r.discardPile.TopCard(); ok {
		top = &t
	}

	if !CanBePutOnTop(top, card) {
		r.logger.WithFields(logrus.Fields{
			"card": card.String(),
			"top":  top.String(),
		}).Debug("illegal card")
		return false
	}

	r.discardPile.AddCard(card)

	player := r.players[r.currentPlayerIndex]
	log := r.logger.WithFields(logrus.Fields{
		"player": player.PlayerName,
		"card":   card.String(),
	})

	if len(player.cards) == 0 {
		r.isFinished = true
		score := CalculateScore(r.players)
		player.AddToScore(score)

		log.WithField("score", score).Debug("player won the round")
		return true
	}

	log.Debug("card played")

	switch card.Kind {
	case deck.KindReverse:
		n := len(r.players)
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			r.players[i], r.players[j] = r.players[j], r.players[i]
		}

		// keep the turn with the same player
		r.currentPlayerIndex = n - 1 - r.currentPlayerIndex
		_ = r.NextPlayer()
	case deck.KindSkip:
		_ = r.NextPlayer()
		_ = r.NextPlayer()
	case deck.KindDraw2:
		_ = r.NextPlayer()
		r.drawFor(r.players[r.currentPlayerIndex], 2)
	case deck.KindDraw4:
		_ = r.NextPlayer()
		r.drawFor(r.players[r.currentPlayerIndex], 4)
	default:
		_ = r.NextPlayer()
	}

	return true
}

func (r *Round) drawFor(player *PlayerHand, n int) {
	if r.Deck == nil {
		return
	}

	if !r.Deck.CanDraw(n) {
		r.logger.WithFields(logrus.Fields{
			"player": player.PlayerName,
			"want":   n,
			"got":    r.Deck.CardsLeft(),
		}).Warn("deck exhausted")
	}

	player.TakeCards(r.Deck.DrawCards(n))
}

// Finish marks the round as finished
func (r *Round) Finish() {
	r.isFinished = true
}

// IsFinished returns true after a player emptied their hand or the round was finished
func (r *Round) IsFinished() bool {
	return r.isFinished
}

// CurrentPlayerIndex returns the index of the current player
// The second value is false if nobody is seated yet
func (r *Round) CurrentPlayerIndex() (int, bool) {
	return r.currentPlayerIndex, r.seated
}

// CurrentPlayer returns the player whose turn it is, or nil if nobody is seated
func (r *Round) CurrentPlayer() *PlayerHand {
	if !r.seated {
		return nil
	}

	return r.players[r.currentPlayerIndex]
}

// DiscardPile returns the discard pile
func (r *Round) DiscardPile() *deck.DiscardPile {
	return r.discardPile
}

// Players returns the players in the round's current order
func (r *Round) Players() []*PlayerHand {
	return append([]*PlayerHand{}, r.players...)
}
