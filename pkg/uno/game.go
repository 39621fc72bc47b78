package uno

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"uno-server/pkg/deck"
)

// player limits
const (
	MinPlayers = 2
	MaxPlayers = 4
)

// State is the lifecycle state of a game
type State string

// State constants
const (
	StatePending  State = "PENDING"
	StateStarted  State = "STARTED"
	StateFinished State = "FINISHED"
)

// Game is a match of UNO: every round played between the joined players until someone reaches WinningScore
// A Game is not safe for concurrent use, callers must serialize access per game.
type Game struct {
	ID   string
	Name string

	players           []*PlayerHand
	rounds            []*Round
	state             State
	currentRoundIndex int

	logger logrus.FieldLogger
}

// NewGame returns a new pending game
func NewGame(name string) *Game {
	id := uuid.New().String()
	return &Game{
		ID:                id,
		Name:              name,
		players:           make([]*PlayerHand, 0, MaxPlayers),
		rounds:            make([]*Round, 0),
		state:             StatePending,
		currentRoundIndex: -1,
		logger: logrus.WithFields(logrus.Fields{
			"game": name,
			"uuid": id,
		}),
	}
}

// SetLogger sets the logger used by the game and its rounds
func (g *Game) SetLogger(logger logrus.FieldLogger) {
	g.logger = logger
	for _, round := range g.rounds {
		round.SetLogger(logger)
	}
}

// JoinGame adds the player to the game
func (g *Game) JoinGame(hand *PlayerHand) error {
	if g.state != StatePending {
		return ErrAlreadyStarted
	}

	if len(g.players) >= MaxPlayers {
		return ErrTooManyPlayers
	}

	if g.Player(hand.PlayerName) != nil {
		return ErrDuplicatePlayer
	}

	g.players = append(g.players, hand)
	g.logger.WithField("player", hand.PlayerName).Debug("player joined")
	return nil
}

// StartGame starts the first round with the deck
func (g *Game) StartGame(d *deck.Deck) error {
	if g.state != StatePending {
		return ErrAlreadyStarted
	}

	if len(g.players) < MinPlayers {
		return ErrTooFewPlayers
	}

	g.addRound(d)
	g.state = StateStarted

	g.logger.WithField("players", len(g.players)).Info("game started")
	return nil
}

// NextRound checks the current round and moves the game along
//
// If a player reached WinningScore, the current round is marked as finished and the winner is returned.
// Ending the game is left to the caller (see Finish).
// If the current round is finished, the cards are collected and a new round is started with the deck.
// Otherwise nothing happens.
func (g *Game) NextRound(d *deck.Deck) (*PlayerHand, error) {
	if g.state != StateStarted {
		return nil, ErrNotStarted
	}

	current := g.rounds[g.currentRoundIndex]
	if winner := CheckIfAnyoneHasScore500(current); winner != nil {
		current.Finish()
		g.logger.WithFields(logrus.Fields{
			"player": winner.PlayerName,
			"score":  winner.score,
		}).Info("game won")
		return winner, nil
	}

	if !current.IsFinished() {
		return nil, nil
	}

	for _, player := range g.players {
		player.ResetCards()
	}

	g.addRound(d)
	g.logger.WithField("round", g.currentRoundIndex+1).Info("next round")
	return nil, nil
}

func (g *Game) addRound(d *deck.Deck) {
	round := NewRound(g.players)
	round.Deck = d
	round.SetLogger(g.logger)

	g.rounds = append(g.rounds, round)
	g.currentRoundIndex = len(g.rounds) - 1
}

// Finish ends a started game
func (g *Game) Finish() error {
	if g.state != StateStarted {
		return ErrNotStarted
	}

	g.state = StateFinished
	g.currentRoundIndex = -1
	g.logger.Info("game finished")
	return nil
}

// State returns the lifecycle state
func (g *Game) State() State {
	return g.state
}

// CurrentRound returns the round being played, or nil if the game is not started
func (g *Game) CurrentRound() *Round {
	if g.state != StateStarted {
		return nil
	}

	return g.rounds[g.currentRoundIndex]
}

// CurrentRoundIndex returns the index of the current round in Rounds()
// The second value is false unless the game is started
func (g *Game) CurrentRoundIndex() (int, bool) {
	if g.state != StateStarted {
		return 0, false
	}

	return g.currentRoundIndex, true
}

// Rounds returns every round played, oldest first
func (g *Game) Rounds() []*Round {
	return append([]*Round{}, g.rounds...)
}

// Players returns the players in the current play order
func (g *Game) Players() []*PlayerHand {
	return append([]*PlayerHand{}, g.players...)
}

// Player returns the player with the name, or nil
func (g *Game) Player(name string) *PlayerHand {
	for _, player := range g.players {
		if player.PlayerName == name {
			return player
		}
	}

	return nil
}
