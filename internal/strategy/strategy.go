// Package strategy implements the player strategies: an interactive human
// player and three computer players.
package strategy

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/lucasadilla/COMP345---RISK/internal/player"
	"github.com/lucasadilla/COMP345---RISK/pkg/warzone"
)

// Strategy names accepted by ForName.
const (
	Human      = "human"
	Aggressive = "aggressive"
	Benevolent = "benevolent"
	Neutral    = "neutral"
)

// Names lists every strategy name.
var Names = []string{Human, Aggressive, Benevolent, Neutral}

var ErrUnknownStrategy = errors.New("unknown strategy")

// Console is the terminal a human strategy talks to. In must be the same
// reader the command pipeline uses so buffered input is not lost.
type Console struct {
	In  *bufio.Reader
	Out io.Writer
}

// ForName returns a new strategy instance for name. Instances keep
// per-player state, so each player needs its own.
func ForName(name string, console *Console) (player.Strategy, error) {
	switch strings.ToLower(name) {
	case Human:
		if console == nil || console.In == nil {
			return nil, errors.New("human strategy needs a console")
		}
		return NewHumanStrategy(console.In, console.Out), nil
	case Aggressive:
		return &AggressiveStrategy{}, nil
	case Benevolent:
		return &BenevolentStrategy{}, nil
	case Neutral:
		return &NeutralStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknownStrategy, name, strings.Join(Names, ", "))
	}
}

// enemyNeighbors returns the territories bordering t that player does not own.
func enemyNeighbors(m *warzone.Map, t *warzone.Territory, player string) []*warzone.Territory {
	var out []*warzone.Territory
	for _, n := range m.Neighbors(t.Name) {
		if n.Owner != player {
			out = append(out, n)
		}
	}
	return out
}

// ownNeighbors returns the territories bordering t that player owns.
func ownNeighbors(m *warzone.Map, t *warzone.Territory, player string) []*warzone.Territory {
	var out []*warzone.Territory
	for _, n := range m.Neighbors(t.Name) {
		if n.Owner == player {
			out = append(out, n)
		}
	}
	return out
}

// attackable returns every enemy territory bordering one of player's, each
// once, in map order.
func attackable(m *warzone.Map, player string) []*warzone.Territory {
	seen := make(map[string]bool)
	var out []*warzone.Territory
	for _, t := range m.OwnedBy(player) {
		for _, n := range enemyNeighbors(m, t, player) {
			if !seen[n.Name] {
				seen[n.Name] = true
				out = append(out, n)
			}
		}
	}
	return out
}

func byArmiesAsc(ts []*warzone.Territory) []*warzone.Territory {
	sort.SliceStable(ts, func(i, j int) bool { return ts[i].Armies < ts[j].Armies })
	return ts
}

func byArmiesDesc(ts []*warzone.Territory) []*warzone.Territory {
	sort.SliceStable(ts, func(i, j int) bool { return ts[i].Armies > ts[j].Armies })
	return ts
}
