package room

import (
	"context"

	"github.com/sirupsen/logrus"
	"uno-server/pkg/deck"
	"uno-server/pkg/uno"
)

// Snapshot returns the full state of the game
func (d *Dealer) Snapshot(ctx context.Context) (*uno.Snapshot, error) {
	var snapshot *uno.Snapshot
	err := d.exec(ctx, func() error {
		snapshot = d.game.Snapshot()
		return nil
	})

	return snapshot, err
}

// PublicSnapshot returns the state of the game without the cards in hand
func (d *Dealer) PublicSnapshot(ctx context.Context) (*uno.PublicSnapshot, error) {
	var snapshot *uno.PublicSnapshot
	err := d.exec(ctx, func() error {
		snapshot = d.game.PublicSnapshot()
		return nil
	})

	return snapshot, err
}

// PlayerHand returns the hand of a single player
func (d *Dealer) PlayerHand(ctx context.Context, playerName string) (*uno.PlayerSnapshot, error) {
	var snapshot *uno.PlayerSnapshot
	err := d.exec(ctx, func() error {
		player := d.game.Player(playerName)
		if player == nil {
			return uno.ErrPlayerNotFound
		}

		snapshot = player.Snapshot()
		return nil
	})

	return snapshot, err
}

// JoinGame adds a new player to the game
func (d *Dealer) JoinGame(ctx context.Context, playerName string) (*uno.PlayerSnapshot, error) {
	if err := validateName(playerName); err != nil {
		return nil, err
	}

	var snapshot *uno.PlayerSnapshot
	err := d.exec(ctx, func() error {
		hand := uno.NewPlayerHand(playerName)
		if err := d.game.JoinGame(hand); err != nil {
			return err
		}

		snapshot = hand.Snapshot()
		d.stateChanged(newLogMessage(playerName, nil, "{} joined the game"))
		return nil
	})

	return snapshot, err
}

// StartGame starts the game with a freshly shuffled deck and deals the first round
func (d *Dealer) StartGame(ctx context.Context) (*uno.Snapshot, error) {
	var snapshot *uno.Snapshot
	err := d.exec(ctx, func() error {
		if err := d.game.StartGame(d.newDeck()); err != nil {
			return err
		}

		if err := d.deal(); err != nil {
			return err
		}

		snapshot = d.game.Snapshot()
		d.stateChanged(newLogMessage("", nil, "The game starts"))
		return nil
	})

	return snapshot, err
}

// DrawCards draws up to n cards from the deck into the player's hand
// If the deck runs short, fewer cards are returned
func (d *Dealer) DrawCards(ctx context.Context, playerName string, n int) ([]deck.Card, error) {
	var cards []deck.Card
	err := d.exec(ctx, func() error {
		round, player, err := d.roundAndPlayer(playerName)
		if err != nil {
			return err
		}

		// the hands are about to be collected
		if round.IsFinished() {
			return uno.ErrRoundFinished
		}

		if round.Deck == nil || !round.Deck.CanDraw(n) {
			d.logger.WithFields(logrus.Fields{
				"player": playerName,
				"want":   n,
			}).Warn("deck exhausted")
		}

		cards = []deck.Card{}
		if round.Deck != nil {
			cards = round.Deck.DrawCards(n)
		}

		player.TakeCards(cards)
		d.stateChanged(newLogMessage(playerName, nil, "{} drew %d", len(cards)))
		return nil
	})

	return cards, err
}

// PlayCard plays the card at cardIndex in the player's hand
// Returns false, with nothing changed, if the card can't be played on the top card
func (d *Dealer) PlayCard(ctx context.Context, playerName string, cardIndex int) (bool, error) {
	var accepted bool
	err := d.exec(ctx, func() error {
		var err error
		accepted, err = d.play(playerName, func(*uno.PlayerHand) (int, error) {
			return cardIndex, nil
		})
		return err
	})

	return accepted, err
}

// PlayMatchingCard plays the first card in the player's hand equal to card
func (d *Dealer) PlayMatchingCard(ctx context.Context, playerName string, card deck.Card) (bool, error) {
	var accepted bool
	err := d.exec(ctx, func() error {
		var err error
		accepted, err = d.play(playerName, func(player *uno.PlayerHand) (int, error) {
			index := player.IndexOf(card)
			if index < 0 {
				return 0, uno.ErrCardNotInHand
			}

			return index, nil
		})
		return err
	})

	return accepted, err
}

// play resolves the card with cardIndex once it is the player's turn and puts it on the discard pile
// NOTE: must only be called from the run loop
func (d *Dealer) play(playerName string, cardIndex func(player *uno.PlayerHand) (int, error)) (bool, error) {
	round, player, err := d.roundAndPlayer(playerName)
	if err != nil {
		return false, err
	}

	// a finished round accepts no more cards
	if round.IsFinished() {
		return false, nil
	}

	if round.CurrentPlayer() != player {
		return false, ErrNotPlayersTurn
	}

	index, err := cardIndex(player)
	if err != nil {
		return false, err
	}

	card, err := player.PlayCard(index)
	if err != nil {
		return false, err
	}

	log := d.logger.WithFields(logrus.Fields{
		"player": playerName,
		"card":   card.String(),
	})

	if !round.PutCard(card) {
		player.PutCardBack(card, index)
		log.Debug("card rejected")
		return false, nil
	}

	messages := []*LogMessage{newLogMessage(playerName, &card, "{} played %s", card)}
	if round.IsFinished() {
		messages = append(messages, newLogMessage(playerName, nil, "{} won the round"))
	} else if uno.CanSayUno(player) {
		messages = append(messages, newLogMessage(playerName, nil, "{} has one card left"))
	}

	d.stateChanged(messages...)
	return true, nil
}

// PassTurn moves the turn to the next player
func (d *Dealer) PassTurn(ctx context.Context, playerName string) error {
	return d.exec(ctx, func() error {
		round, player, err := d.roundAndPlayer(playerName)
		if err != nil {
			return err
		}

		if round.IsFinished() || round.CurrentPlayer() != player {
			return ErrNotPlayersTurn
		}

		if err := round.NextPlayer(); err != nil {
			return err
		}

		d.stateChanged(newLogMessage(playerName, nil, "{} passed"))
		return nil
	})
}

// AdvanceRoundIfFinished moves the game along once a round is over
// If a player reached the winning score, the game ends and the winner is returned.
// If the round is over, a new round is dealt. Otherwise nothing happens.
func (d *Dealer) AdvanceRoundIfFinished(ctx context.Context) (*uno.PlayerSnapshot, error) {
	var winner *uno.PlayerSnapshot
	err := d.exec(ctx, func() error {
		round := d.game.CurrentRound()
		if round == nil {
			return uno.ErrNotStarted
		}

		// scores only change when a round ends
		if !round.IsFinished() {
			return nil
		}

		roundsBefore := len(d.game.Rounds())

		hand, err := d.game.NextRound(d.newDeck())
		if err != nil {
			return err
		}

		if hand != nil {
			if err := d.game.Finish(); err != nil {
				return err
			}

			winner = hand.Snapshot()
			d.stateChanged(newLogMessage(hand.PlayerName, nil, "{} won the game with %d points", hand.Score()))
			d.pitBoss.archive(d.game.Snapshot())
			d.pitBoss.retire(d)
			return nil
		}

		if len(d.game.Rounds()) > roundsBefore {
			if err := d.deal(); err != nil {
				return err
			}

			d.stateChanged(newLogMessage("", nil, "Round %d starts", len(d.game.Rounds())))
		}

		return nil
	})

	return winner, err
}

// NOTE: must only be called from the run loop
func (d *Dealer) newDeck() *deck.Deck {
	dk := deck.New(d.pitBoss.generator)
	dk.Shuffle()
	d.logger.WithField("hash", dk.HashCode()).Debug("deck shuffled")
	return dk
}

// NOTE: must only be called from the run loop
func (d *Dealer) deal() error {
	return d.game.CurrentRound().Deal(d.pitBoss.cardsPerPlayer)
}

// NOTE: must only be called from the run loop
func (d *Dealer) roundAndPlayer(playerName string) (*uno.Round, *uno.PlayerHand, error) {
	round := d.game.CurrentRound()
	if round == nil {
		return nil, nil, uno.ErrNotStarted
	}

	player := d.game.Player(playerName)
	if player == nil {
		return nil, nil, uno.ErrPlayerNotFound
	}

	return round, player, nil
}
