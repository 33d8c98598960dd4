package engine

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/lucasadilla/COMP345---RISK/internal/command"
	"github.com/lucasadilla/COMP345---RISK/internal/journal"
	"github.com/lucasadilla/COMP345---RISK/pkg/warzone"
)

// Run plays games from src until a quit command reaches PhaseFinished. After
// each win it reads one command: replay starts over from PhaseStart with a
// fresh game and journal session, quit ends the run.
func (e *Engine) Run(ctx context.Context, src Source) error {
	for e.phase != warzone.PhaseFinished {
		switch e.phase {
		case warzone.PhaseWin:
			if err := e.afterWin(ctx, src); err != nil {
				return err
			}
		case warzone.PhaseAssignReinforcement, warzone.PhaseIssueOrders, warzone.PhaseExecuteOrders:
			if err := e.MainGameLoop(ctx); err != nil {
				return err
			}
		default:
			if err := e.StartupPhase(ctx, src); err != nil {
				return err
			}
		}
	}
	log.Info().Msg("Game finished")
	return nil
}

// afterWin consumes the command that follows a win. Only replay and quit are
// legal in PhaseWin, so src never yields anything else.
func (e *Engine) afterWin(ctx context.Context, src Source) error {
	e.say("Type replay to play again or quit to exit.")
	cmd, err := src.Next(ctx)
	if err != nil {
		return fmt.Errorf("after win: %w", err)
	}
	e.journal.Record(ctx, journal.KindCommand, e.phase.String(), "", cmd.String())

	if cmd.Kind() == command.Replay {
		e.reset()
		session := e.journal.NewSession()
		log.Info().Str("session", session).Msg("Replaying")
	}
	return e.transition(ctx, cmd.Kind().Transition())
}
