package engine

import "errors"

// Action failures. The engine reports these and stays in the current phase.
var (
	ErrNoMap             = errors.New("no map loaded")
	ErrMapNotValidated   = errors.New("map has not been validated")
	ErrDuplicatePlayer   = errors.New("player already added")
	ErrReservedName      = errors.New("player name is reserved")
	ErrBadPlayerSpec     = errors.New("expected: addplayer <name> [strategy]")
	ErrTooManyPlayers    = errors.New("too many players")
	ErrNotEnoughPlayers  = errors.New("not enough players")
	ErrIllegalTransition = errors.New("transition not allowed from current phase")
)
