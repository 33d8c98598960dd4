// Package command turns raw console or file lines into validated commands
// that are legal in the engine's current phase.
package command

import (
	"fmt"

	"github.com/lucasadilla/COMP345---RISK/pkg/warzone"
)

// Kind is the type of a startup or post-game command.
type Kind int

const (
	LoadMap Kind = iota
	ValidateMap
	AddPlayer
	GameStart
	Replay
	Quit
)

// Kinds lists every command kind.
var Kinds = []Kind{LoadMap, ValidateMap, AddPlayer, GameStart, Replay, Quit}

// Word returns the command-line keyword for the kind.
func (k Kind) Word() string {
	switch k {
	case LoadMap:
		return "loadmap"
	case ValidateMap:
		return "validatemap"
	case AddPlayer:
		return "addplayer"
	case GameStart:
		return "gamestart"
	case Replay:
		return "replay"
	case Quit:
		return "quit"
	default:
		return "unknown"
	}
}

func (k Kind) String() string {
	switch k {
	case LoadMap:
		return "LoadMap"
	case ValidateMap:
		return "ValidateMap"
	case AddPlayer:
		return "AddPlayer"
	case GameStart:
		return "GameStart"
	case Replay:
		return "Replay"
	case Quit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Transition returns the engine keyword the kind drives through the phase
// machine.
func (k Kind) Transition() string {
	switch k {
	case LoadMap:
		return warzone.KeywordLoadMap
	case ValidateMap:
		return warzone.KeywordValidateMap
	case AddPlayer:
		return warzone.KeywordAddPlayer
	case GameStart:
		return warzone.KeywordAssignCountries
	case Replay:
		return warzone.KeywordPlay
	case Quit:
		return warzone.KeywordEnd
	default:
		return ""
	}
}

// NeedsParameter reports whether the kind requires a parameter.
func (k Kind) NeedsParameter() bool {
	return k == LoadMap || k == AddPlayer
}

// ParseKind maps a lower-case command word to its kind.
func ParseKind(word string) (Kind, bool) {
	for _, k := range Kinds {
		if k.Word() == word {
			return k, true
		}
	}
	return 0, false
}

// Command is an accepted instruction. It is only built by a Processor after
// the lexical and phase checks pass, and never changes afterwards.
type Command struct {
	kind      Kind
	parameter string
	effect    warzone.Phase
}

// Kind returns the command kind.
func (c Command) Kind() Kind { return c.kind }

// Parameter returns the command parameter, possibly empty.
func (c Command) Parameter() string { return c.parameter }

// Effect returns the phase the command moves the engine to.
func (c Command) Effect() warzone.Phase { return c.effect }

func (c Command) String() string {
	if c.parameter == "" {
		return fmt.Sprintf("%s -> %s", c.kind.Word(), c.effect)
	}
	return fmt.Sprintf("%s %s -> %s", c.kind.Word(), c.parameter, c.effect)
}
