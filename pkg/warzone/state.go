package warzone

import (
	"errors"
	"fmt"
	"slices"
)

// Board errors returned by State.Apply.
var (
	ErrUnknownTerritory = errors.New("unknown territory")
	ErrNotOwner         = errors.New("territory not owned by player")
	ErrOwnTerritory     = errors.New("cannot target own territory")
	ErrNotAdjacent      = errors.New("territories are not adjacent")
	ErrNoArmies         = errors.New("no armies available")
	ErrTruce            = errors.New("players are under a truce")
)

// MinReinforcement is the smallest per-round reinforcement grant.
const MinReinforcement = 3

// BattleFunc resolves an attack and returns the survivors on each side.
type BattleFunc func(attackers, defenders int) (attackersLeft, defendersLeft int)

// DefaultBattle is a deterministic expected-value battle: the attacking
// armies destroy 60% of their number in defenders, and the defenders
// destroy 70% of theirs in attackers.
func DefaultBattle(attackers, defenders int) (int, int) {
	defLeft := max(defenders-attackers*6/10, 0)
	attLeft := max(attackers-defenders*7/10, 0)
	return attLeft, defLeft
}

type truce struct{ a, b string }

func newTruce(a, b string) truce {
	if a > b {
		a, b = b, a
	}
	return truce{a, b}
}

// State is the shared board that orders mutate during execution.
type State struct {
	Map    *Map
	Battle BattleFunc

	// ContinentBonus adds the bonus of every fully held continent to the
	// reinforcement grant. Off by default.
	ContinentBonus bool

	truces     map[truce]bool
	conquerors map[string]bool
}

// NewState wraps a map with empty round bookkeeping and the default battle rule.
func NewState(m *Map) *State {
	return &State{
		Map:        m,
		Battle:     DefaultBattle,
		truces:     make(map[truce]bool),
		conquerors: make(map[string]bool),
	}
}

// Reinforcement returns the per-round grant for player: one army per three
// owned territories, never less than MinReinforcement. With ContinentBonus
// set, the bonus of every continent the player controls is added.
func (s *State) Reinforcement(player string) int {
	n := max(MinReinforcement, s.Map.OwnerCount(player)/3)
	if !s.ContinentBonus {
		return n
	}
	for name, c := range s.Map.Continents {
		if s.Map.ControlsContinent(player, name) {
			n += c.Bonus
		}
	}
	return n
}

// InTruce reports whether a and b negotiated a truce this round.
func (s *State) InTruce(a, b string) bool {
	return s.truces[newTruce(a, b)]
}

// Conquerors returns the players that captured at least one territory this
// round, sorted.
func (s *State) Conquerors() []string {
	out := make([]string, 0, len(s.conquerors))
	for p := range s.conquerors {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}

// EndRound clears truces and conquest bookkeeping.
func (s *State) EndRound() {
	clear(s.truces)
	clear(s.conquerors)
}

// Apply mutates the board for an order that passed validation.
func (s *State) Apply(o *Order) (string, error) {
	switch o.Type {
	case OrderDeploy:
		t, err := s.owned(o.Player, o.Target)
		if err != nil {
			return "", err
		}
		t.Armies += o.Armies
		return "", nil
	case OrderAdvance:
		return s.advance(o)
	case OrderBomb:
		return s.bomb(o)
	case OrderBlockade:
		t, err := s.owned(o.Player, o.Target)
		if err != nil {
			return "", err
		}
		t.Armies *= 2
		t.Owner = Neutral
		return fmt.Sprintf("%s now holds %d armies", Neutral, t.Armies), nil
	case OrderAirlift:
		src, err := s.owned(o.Player, o.Source)
		if err != nil {
			return "", err
		}
		dst, err := s.owned(o.Player, o.Target)
		if err != nil {
			return "", err
		}
		n := min(o.Armies, src.Armies)
		if n == 0 {
			return "", fmt.Errorf("%w on %s", ErrNoArmies, src.Name)
		}
		src.Armies -= n
		dst.Armies += n
		if n < o.Armies {
			return fmt.Sprintf("only %d available", n), nil
		}
		return "", nil
	case OrderNegotiate:
		s.truces[newTruce(o.Player, o.TargetPlayer)] = true
		return "", nil
	default:
		return "", fmt.Errorf("unknown order type %d", o.Type)
	}
}

func (s *State) advance(o *Order) (string, error) {
	src, err := s.owned(o.Player, o.Source)
	if err != nil {
		return "", err
	}
	dst := s.Map.Territory(o.Target)
	if dst == nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownTerritory, o.Target)
	}
	if !s.Map.Adjacent(src.Name, dst.Name) {
		return "", fmt.Errorf("%w: %s and %s", ErrNotAdjacent, src.Name, dst.Name)
	}
	n := min(o.Armies, src.Armies)
	if n == 0 {
		return "", fmt.Errorf("%w on %s", ErrNoArmies, src.Name)
	}

	if dst.Owner == o.Player {
		src.Armies -= n
		dst.Armies += n
		return "", nil
	}
	if dst.Owner != "" && s.InTruce(o.Player, dst.Owner) {
		return "", fmt.Errorf("%w: %s and %s", ErrTruce, o.Player, dst.Owner)
	}

	src.Armies -= n
	attLeft, defLeft := s.Battle(n, dst.Armies)
	if defLeft == 0 && attLeft > 0 {
		dst.Owner = o.Player
		dst.Armies = attLeft
		s.conquerors[o.Player] = true
		return fmt.Sprintf("conquered %s with %d armies left", dst.Name, attLeft), nil
	}
	dst.Armies = defLeft
	src.Armies += attLeft
	return fmt.Sprintf("attack repelled, %d defenders left, %d attackers returned", defLeft, attLeft), nil
}

func (s *State) bomb(o *Order) (string, error) {
	t := s.Map.Territory(o.Target)
	if t == nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownTerritory, o.Target)
	}
	if t.Owner == o.Player {
		return "", fmt.Errorf("%w: %s", ErrOwnTerritory, t.Name)
	}
	if t.Owner != "" && s.InTruce(o.Player, t.Owner) {
		return "", fmt.Errorf("%w: %s and %s", ErrTruce, o.Player, t.Owner)
	}
	bordering := false
	for _, n := range s.Map.Neighbors(t.Name) {
		if n.Owner == o.Player {
			bordering = true
			break
		}
	}
	if !bordering {
		return "", fmt.Errorf("%w: %s borders no territory of %s", ErrNotAdjacent, t.Name, o.Player)
	}
	t.Armies /= 2
	return fmt.Sprintf("%d armies left", t.Armies), nil
}

func (s *State) owned(player, name string) (*Territory, error) {
	t := s.Map.Territory(name)
	if t == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTerritory, name)
	}
	if t.Owner != player {
		return nil, fmt.Errorf("%w: %s belongs to %q", ErrNotOwner, name, t.Owner)
	}
	return t, nil
}
