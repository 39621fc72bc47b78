package uno

import "errors"

// ErrNotStarted is an error when a started-only action is attempted on a game that is not started
var ErrNotStarted = errors.New("game is not started")

// ErrAlreadyStarted is an error when a pending-only action is attempted after the game started
var ErrAlreadyStarted = errors.New("game has already started")

// ErrTooFewPlayers happens when a game is started with fewer than MinPlayers
var ErrTooFewPlayers = errors.New("too few players")

// ErrTooManyPlayers happens when a player tries to join a full game
var ErrTooManyPlayers = errors.New("game is full")

// ErrDuplicatePlayer happens when a player name is already in the game
var ErrDuplicatePlayer = errors.New("player is already in the game")

// ErrPlayerNotFound is returned when the player is not part of the game
var ErrPlayerNotFound = errors.New("player not found")

// ErrInvalidCardIndex is returned when a card index is outside of the player's hand
var ErrInvalidCardIndex = errors.New("invalid card index")

// ErrCardNotInHand is returned when a player plays a card they do not hold
var ErrCardNotInHand = errors.New("card is not in the player's hand")

// ErrRoundFinished is returned when cards are drawn from a round that is over
var ErrRoundFinished = errors.New("round is finished")

// ErrNoPlayers is an error when a dealer is requested for a round without players
var ErrNoPlayers = errors.New("round has no players")

// ErrNoDeck is an error when cards are dealt for a round without a deck
var ErrNoDeck = errors.New("round has no deck")

// ErrAlreadyDealt is an error when a round that already has a current player is dealt again
var ErrAlreadyDealt = errors.New("round has already been dealt")
