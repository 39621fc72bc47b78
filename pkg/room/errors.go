package room

import "errors"

// ErrGameNotFound is returned when there is no game with the name
var ErrGameNotFound = errors.New("game not found")

// ErrNameTaken is returned when a game with the name already exists
var ErrNameTaken = errors.New("game name is taken")

// ErrInvalidName is returned for an empty or overly long game or player name
var ErrInvalidName = errors.New("name must be 1-40 characters")

// ErrTooManyGames is returned when the pit boss can't take on another game
var ErrTooManyGames = errors.New("too many games")

// ErrNotPlayersTurn is returned when it's not the player's turn
var ErrNotPlayersTurn = errors.New("not player's turn")

// ErrDealerClosed is returned when a command is sent after the dealer ended its shift
var ErrDealerClosed = errors.New("dealer is closed")
