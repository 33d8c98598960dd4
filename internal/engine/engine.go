// Package engine drives a game through its phases: the startup command loop
// (map, players, game start) and the main loop of reinforcement, order
// issuing and order execution rounds.
package engine

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/lucasadilla/COMP345---RISK/internal/command"
	"github.com/lucasadilla/COMP345---RISK/internal/config"
	"github.com/lucasadilla/COMP345---RISK/internal/journal"
	"github.com/lucasadilla/COMP345---RISK/internal/player"
	"github.com/lucasadilla/COMP345---RISK/internal/strategy"
	"github.com/lucasadilla/COMP345---RISK/pkg/warzone"
)

// Source yields validated commands. *command.Processor implements it.
type Source interface {
	Next(ctx context.Context) (command.Command, error)
}

// StrategyFactory builds a fresh strategy for a player.
type StrategyFactory func(name string) (player.Strategy, error)

// MapLoader reads a map file.
type MapLoader func(path string) (*warzone.Map, error)

// Engine owns the current phase and the game it is progressing. It is not
// safe for concurrent use.
type Engine struct {
	cfg   *config.Config
	table *warzone.TransitionTable
	phase warzone.Phase

	gameMap   *warzone.Map
	validated bool
	state     *warzone.State
	deck      *warzone.Deck
	players   []*player.Player
	round     int
	winner    string

	signals    Signals
	journal    *journal.Recorder
	out        io.Writer
	strategies StrategyFactory
	loadMap    MapLoader
}

// Option configures an Engine.
type Option func(*Engine)

// WithSignals sets how the end of issuing and execution rounds is decided.
func WithSignals(s Signals) Option {
	return func(e *Engine) { e.signals = s }
}

// WithJournal records commands, transitions and order effects to r.
func WithJournal(r *journal.Recorder) Option {
	return func(e *Engine) { e.journal = r }
}

// WithOutput sets where user-facing messages go.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) { e.out = w }
}

// WithStrategies sets how strategy names given to addplayer are resolved.
func WithStrategies(f StrategyFactory) Option {
	return func(e *Engine) { e.strategies = f }
}

// WithMapLoader replaces the map file loader.
func WithMapLoader(l MapLoader) Option {
	return func(e *Engine) { e.loadMap = l }
}

// New creates an engine in PhaseStart. A nil cfg uses config.Default().
func New(cfg *config.Config, opts ...Option) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	e := &Engine{
		cfg:     cfg,
		table:   warzone.DefaultTransitionTable(),
		phase:   warzone.PhaseStart,
		signals: AutoSignals{MaxRounds: cfg.MaxRounds},
		out:     io.Discard,
		strategies: func(name string) (player.Strategy, error) {
			return strategy.ForName(name, nil)
		},
		loadMap: warzone.LoadMap,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.journal == nil {
		e.journal = journal.NewRecorder(nil)
	}
	return e
}

// Phase returns the current phase.
func (e *Engine) Phase() warzone.Phase { return e.phase }

// Apply moves to the phase mapped from (current, keyword). It returns false
// and leaves the phase unchanged when no such transition exists.
func (e *Engine) Apply(keyword string) bool {
	next, ok := e.table.Next(e.phase, keyword)
	if !ok {
		return false
	}
	e.phase = next
	return true
}

// CanApply reports whether keyword is legal in the current phase.
func (e *Engine) CanApply(keyword string) bool {
	_, ok := e.table.Next(e.phase, keyword)
	return ok
}

// Destination returns the phase keyword leads to from the current phase.
func (e *Engine) Destination(keyword string) (warzone.Phase, bool) {
	return e.table.Next(e.phase, keyword)
}

// Keywords returns the keywords legal in the current phase, sorted.
func (e *Engine) Keywords() []string { return e.table.Keywords(e.phase) }

// Map returns the loaded map, or nil.
func (e *Engine) Map() *warzone.Map { return e.gameMap }

// State returns the board of the running game, or nil before gamestart.
func (e *Engine) State() *warzone.State { return e.state }

// Deck returns the draw pile of the running game, or nil before gamestart.
func (e *Engine) Deck() *warzone.Deck { return e.deck }

// Round returns the number of reinforcement rounds started so far.
func (e *Engine) Round() int { return e.round }

// Winner returns the winning player once the game reached PhaseWin. It is
// empty when the game ended in a draw.
func (e *Engine) Winner() string { return e.winner }

// Players returns the active players in play order.
func (e *Engine) Players() []*player.Player {
	out := make([]*player.Player, len(e.players))
	copy(out, e.players)
	return out
}

// Player returns the named active player, or nil.
func (e *Engine) Player(name string) *player.Player {
	for _, p := range e.players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// transition applies keyword and journals the phase change. Callers treat a
// false return as a programming error in the loop that drives the engine.
func (e *Engine) transition(ctx context.Context, keyword string) error {
	from := e.phase
	if !e.Apply(keyword) {
		return fmt.Errorf("%w: %q from %s", ErrIllegalTransition, keyword, from)
	}
	log.Debug().Str("from", from.String()).Str("keyword", keyword).Str("phase", e.phase.String()).Msg("Phase transition")
	e.journal.Record(ctx, journal.KindTransition, e.phase.String(), "", fmt.Sprintf("%s -> %s (%s)", from, e.phase, keyword))
	return nil
}

// fail reports an action failure to the user, the log and the journal.
func (e *Engine) fail(ctx context.Context, playerName string, err error) {
	fmt.Fprintf(e.out, "Error: %v\n", err)
	log.Warn().Err(err).Str("phase", e.phase.String()).Str("player", playerName).Msg("Action failed")
	e.journal.Record(ctx, journal.KindAction, e.phase.String(), playerName, err.Error())
}

// say writes a user-facing message.
func (e *Engine) say(format string, args ...any) {
	fmt.Fprintf(e.out, format+"\n", args...)
}

// reset clears the game so a new one can be set up from PhaseStart.
func (e *Engine) reset() {
	e.gameMap = nil
	e.validated = false
	e.state = nil
	e.deck = nil
	e.players = nil
	e.round = 0
	e.winner = ""
}
