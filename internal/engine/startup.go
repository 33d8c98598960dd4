package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/lucasadilla/COMP345---RISK/internal/command"
	"github.com/lucasadilla/COMP345---RISK/internal/journal"
	"github.com/lucasadilla/COMP345---RISK/internal/player"
	"github.com/lucasadilla/COMP345---RISK/pkg/warzone"
)

// StartupPhase reads commands from src until the game has started. Failed
// actions are reported and leave the phase unchanged. Errors from src, such
// as command.ErrStreamExhausted, end the loop and are returned.
func (e *Engine) StartupPhase(ctx context.Context, src Source) error {
	for e.phase != warzone.PhaseAssignReinforcement {
		cmd, err := src.Next(ctx)
		if err != nil {
			return fmt.Errorf("startup: %w", err)
		}
		e.journal.Record(ctx, journal.KindCommand, e.phase.String(), "", cmd.String())

		var actionErr error
		switch cmd.Kind() {
		case command.LoadMap:
			actionErr = e.loadMapFile(cmd.Parameter())
		case command.ValidateMap:
			actionErr = e.validateMap()
		case command.AddPlayer:
			actionErr = e.addPlayer(cmd.Parameter())
		case command.GameStart:
			actionErr = e.gameStart()
		default:
			actionErr = fmt.Errorf("%s is not a startup command", cmd.Kind().Word())
		}
		if actionErr != nil {
			e.fail(ctx, "", actionErr)
			continue
		}
		if err := e.transition(ctx, cmd.Kind().Transition()); err != nil {
			return err
		}
	}
	return nil
}

// resolveMapPath tries path as given, then relative to the configured map
// directory.
func (e *Engine) resolveMapPath(path string) string {
	if _, err := os.Stat(path); err == nil || filepath.IsAbs(path) || e.cfg.MapDir == "" {
		return path
	}
	alt := filepath.Join(e.cfg.MapDir, path)
	if _, err := os.Stat(alt); err == nil {
		return alt
	}
	return path
}

func (e *Engine) loadMapFile(path string) error {
	m, err := e.loadMap(e.resolveMapPath(path))
	if err != nil {
		return fmt.Errorf("load map: %w", err)
	}
	e.gameMap = m
	e.validated = false
	e.say("Loaded map %s with %d territories.", m.Name, len(m.Territories()))
	log.Info().Str("map", m.Name).Int("territories", len(m.Territories())).Msg("Map loaded")
	return nil
}

func (e *Engine) validateMap() error {
	if e.gameMap == nil {
		return ErrNoMap
	}
	if err := e.gameMap.Validate(); err != nil {
		return fmt.Errorf("validate map %s: %w", e.gameMap.Name, err)
	}
	e.validated = true
	e.say("Map %s is valid.", e.gameMap.Name)
	return nil
}

// addPlayer registers a player from "<name> [strategy]".
func (e *Engine) addPlayer(spec string) error {
	fields := strings.Fields(spec)
	if len(fields) == 0 || len(fields) > 2 {
		return fmt.Errorf("%w, got %q", ErrBadPlayerSpec, spec)
	}
	name := fields[0]
	strategyName := e.cfg.DefaultStrategy
	if len(fields) == 2 {
		strategyName = fields[1]
	}

	if strings.EqualFold(name, warzone.Neutral) {
		return fmt.Errorf("%w: %s", ErrReservedName, name)
	}
	for _, p := range e.players {
		if strings.EqualFold(p.Name, name) {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayer, name)
		}
	}
	if len(e.players) >= e.cfg.MaxPlayers {
		return fmt.Errorf("%w: at most %d", ErrTooManyPlayers, e.cfg.MaxPlayers)
	}
	s, err := e.strategies(strategyName)
	if err != nil {
		return fmt.Errorf("add player %s: %w", name, err)
	}

	e.players = append(e.players, player.New(name, s))
	e.say("Added player %s (%s).", name, s.Name())
	log.Info().Str("player", name).Str("strategy", s.Name()).Int("players", len(e.players)).Msg("Player added")
	return nil
}

// gameStart distributes territories, shuffles the play order and hands out
// starting armies and cards.
func (e *Engine) gameStart() error {
	if e.gameMap == nil {
		return ErrNoMap
	}
	if !e.validated {
		return ErrMapNotValidated
	}
	n := len(e.players)
	if n < e.cfg.MinPlayers {
		return fmt.Errorf("%w: have %d, need %d", ErrNotEnoughPlayers, n, e.cfg.MinPlayers)
	}
	if n > e.cfg.MaxPlayers {
		return fmt.Errorf("%w: have %d, at most %d", ErrTooManyPlayers, n, e.cfg.MaxPlayers)
	}

	m := e.gameMap
	m.ResetOwnership()
	territories := m.Territories()
	warzone.Shuffle(len(territories), func(i, j int) { territories[i], territories[j] = territories[j], territories[i] })
	for i, t := range territories {
		t.Owner = e.players[i%n].Name
	}
	warzone.Shuffle(n, func(i, j int) { e.players[i], e.players[j] = e.players[j], e.players[i] })

	e.state = warzone.NewState(m)
	e.state.ContinentBonus = e.cfg.ContinentBonus
	e.deck = warzone.NewDeck(e.cfg.DeckSize)
	e.round = 0
	e.winner = ""
	for _, p := range e.players {
		p.Reset()
		p.Reinforcements = e.cfg.InitialArmies
		for range e.cfg.StartingCards {
			if c, ok := e.deck.Draw(); ok {
				p.Hand.Add(c)
			}
		}
	}

	names := playerNames(e.players)
	for _, p := range e.players {
		e.say("%s receives %d territories, %d armies and cards %s.", p.Name, m.OwnerCount(p.Name), p.Reinforcements, p.Hand)
	}
	e.say("Play order: %s.", strings.Join(names, ", "))
	log.Info().Strs("order", names).Str("map", m.Name).Msg("Game started")
	return nil
}
