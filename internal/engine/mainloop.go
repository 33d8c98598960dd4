package engine

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/lucasadilla/COMP345---RISK/internal/journal"
	"github.com/lucasadilla/COMP345---RISK/internal/player"
	"github.com/lucasadilla/COMP345---RISK/pkg/warzone"
)

// MainGameLoop runs reinforcement, issuing and execution rounds until the
// game reaches PhaseWin. It must be called after StartupPhase.
func (e *Engine) MainGameLoop(ctx context.Context) error {
	if e.state == nil {
		return fmt.Errorf("main loop: %w", ErrNoMap)
	}
	for e.phase != warzone.PhaseWin && e.phase != warzone.PhaseFinished {
		if err := ctx.Err(); err != nil {
			return err
		}
		var err error
		switch e.phase {
		case warzone.PhaseAssignReinforcement:
			err = e.reinforcementPhase(ctx)
		case warzone.PhaseIssueOrders:
			err = e.issueOrdersPhase(ctx)
		case warzone.PhaseExecuteOrders:
			err = e.executeOrdersPhase(ctx)
		default:
			err = fmt.Errorf("main loop: %w: game not started (phase %s)", ErrIllegalTransition, e.phase)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// reinforcementPhase grants every active player its reinforcements.
func (e *Engine) reinforcementPhase(ctx context.Context) error {
	e.round++
	e.say("\n--- Round %d ---", e.round)
	for _, p := range e.players {
		grant := e.state.Reinforcement(p.Name)
		p.Reinforcements += grant
		e.say("%s receives %d reinforcements (pool %d).", p.Name, grant, p.Reinforcements)
		log.Debug().Int("round", e.round).Str("player", p.Name).Int("grant", grant).Int("pool", p.Reinforcements).Msg("Reinforcements assigned")
	}
	return e.transition(ctx, warzone.KeywordIssueOrder)
}

// issueOrdersPhase asks each player's strategy for orders, then waits for
// the end-of-issuing signal.
func (e *Engine) issueOrdersPhase(ctx context.Context) error {
	for _, p := range e.players {
		pruned := p.Orders.RemoveExecuted()
		before := p.Orders.Len()
		if err := p.IssueOrders(ctx, e.state); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			e.fail(ctx, p.Name, fmt.Errorf("%s could not issue orders: %w", p.Name, err))
		}
		for _, c := range p.TakePlayed() {
			e.deck.Return(c)
		}
		issued := p.Orders.Len() - before
		for _, o := range p.Orders.Orders()[before:] {
			e.journal.Record(ctx, journal.KindOrder, e.phase.String(), p.Name, "issued "+o.Describe())
		}
		log.Debug().Int("round", e.round).Str("player", p.Name).Str("strategy", p.StrategyName()).
			Int("pruned", pruned).Int("issued", issued).Msg("Orders issued")
		if err := e.transition(ctx, warzone.KeywordIssueOrder); err != nil {
			return err
		}
	}
	if err := e.signals.EndIssuing(ctx, e.roundSummary()); err != nil {
		return fmt.Errorf("end issuing: %w", err)
	}
	return e.transition(ctx, warzone.KeywordEndIssueOrders)
}

// executeOrdersPhase executes every pending order in play order, then
// settles the round and asks whether the game is won.
func (e *Engine) executeOrdersPhase(ctx context.Context) error {
	for _, p := range e.players {
		var pending []*warzone.Order
		for _, o := range p.Orders.Orders() {
			if !o.Executed() {
				pending = append(pending, o)
			}
		}
		n := p.Orders.ExecuteAll(e.state)
		for _, o := range pending {
			e.say("%s: %s", p.Name, o)
			e.journal.Record(ctx, journal.KindOrder, e.phase.String(), p.Name, o.String())
		}
		e.refundRejectedDeploys(ctx, p, pending)
		log.Debug().Int("round", e.round).Str("player", p.Name).Int("executed", n).Msg("Orders executed")
		if err := e.transition(ctx, warzone.KeywordExecOrder); err != nil {
			return err
		}
	}

	e.rewardConquerors(ctx)
	e.state.EndRound()
	e.eliminate(ctx)

	r := e.roundSummary()
	win, err := e.signals.EndExecution(ctx, r)
	if err != nil {
		return fmt.Errorf("end execution: %w", err)
	}
	if win {
		e.winner = r.Leader()
		if e.winner == "" {
			e.say("Game over after %d rounds: draw.", e.round)
		} else {
			e.say("Game over after %d rounds: %s wins!", e.round, e.winner)
		}
		log.Info().Int("round", e.round).Str("winner", e.winner).Msg("Game won")
		return e.transition(ctx, warzone.KeywordWin)
	}
	return e.transition(ctx, warzone.KeywordEndExecOrders)
}

// refundRejectedDeploys returns the armies of deploys the board refused,
// such as a deploy to a territory lost earlier in the round, to p's pool.
func (e *Engine) refundRejectedDeploys(ctx context.Context, p *player.Player, orders []*warzone.Order) {
	for _, o := range orders {
		if o.Type != warzone.OrderDeploy || !o.Rejected() {
			continue
		}
		p.Reinforcements += o.Armies
		e.say("%s gets %d armies back from a rejected deploy (pool %d).", p.Name, o.Armies, p.Reinforcements)
		e.journal.Record(ctx, journal.KindAction, e.phase.String(), p.Name, fmt.Sprintf("refunded %d armies", o.Armies))
	}
}

// rewardConquerors gives one card to each player that captured a territory
// this round.
func (e *Engine) rewardConquerors(ctx context.Context) {
	for _, name := range e.state.Conquerors() {
		p := e.Player(name)
		if p == nil {
			continue
		}
		c, ok := e.deck.Draw()
		if !ok {
			log.Debug().Str("player", name).Msg("Deck empty, no card awarded")
			continue
		}
		p.Hand.Add(c)
		e.say("%s conquered a territory and draws a %s card.", name, c)
		e.journal.Record(ctx, journal.KindAction, e.phase.String(), name, "drew "+c.String())
	}
}

// eliminate removes players that own no territory.
func (e *Engine) eliminate(ctx context.Context) {
	active := e.players[:0]
	for _, p := range e.players {
		if e.gameMap.OwnerCount(p.Name) > 0 {
			active = append(active, p)
			continue
		}
		for _, c := range p.Hand.Cards() {
			e.deck.Return(c)
		}
		e.say("%s has been eliminated.", p.Name)
		log.Info().Int("round", e.round).Str("player", p.Name).Msg("Player eliminated")
		e.journal.Record(ctx, journal.KindAction, e.phase.String(), p.Name, "eliminated")
	}
	clear(e.players[len(active):])
	e.players = active
}

func (e *Engine) roundSummary() Round {
	r := Round{Number: e.round, Owned: make(map[string]int, len(e.players))}
	for _, p := range e.players {
		r.Players = append(r.Players, p.Name)
		r.Owned[p.Name] = e.gameMap.OwnerCount(p.Name)
	}
	return r
}

func playerNames(ps []*player.Player) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}
