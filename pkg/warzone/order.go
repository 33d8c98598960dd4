package warzone

import "fmt"

// OrderType represents the kind of action an order carries out.
type OrderType int

const (
	OrderDeploy    OrderType = iota // Place reinforcements on an owned territory
	OrderAdvance                    // Move or attack with armies from one territory to another
	OrderBomb                       // Destroy half the armies on a target territory
	OrderBlockade                   // Double the armies and hand the territory to neutral
	OrderAirlift                    // Move armies between any two owned territories
	OrderNegotiate                  // Truce with another player until end of round
)

func (o OrderType) String() string {
	switch o {
	case OrderDeploy:
		return "deploy"
	case OrderAdvance:
		return "advance"
	case OrderBomb:
		return "bomb"
	case OrderBlockade:
		return "blockade"
	case OrderAirlift:
		return "airlift"
	case OrderNegotiate:
		return "negotiate"
	default:
		return "unknown"
	}
}

// Board receives the state mutation of an order being executed. Apply
// returns an optional detail appended to the order's effect, or an error if
// the board refuses the order.
type Board interface {
	Apply(o *Order) (string, error)
}

// Order is a single queued action a player carries out during the
// execute-orders phase.
type Order struct {
	Type OrderType

	// Player is the issuing player's name. Set by the player when the order
	// is queued.
	Player string

	Armies int
	Source string
	// Target territory for every type except Negotiate.
	Target string
	// TargetPlayer is the other party of a Negotiate order.
	TargetPlayer string

	executed bool
	rejected bool
	effect   string
}

// NewDeploy creates a Deploy order.
func NewDeploy(armies int, target string) *Order {
	return &Order{Type: OrderDeploy, Armies: armies, Target: target}
}

// NewAdvance creates an Advance order.
func NewAdvance(armies int, source, target string) *Order {
	return &Order{Type: OrderAdvance, Armies: armies, Source: source, Target: target}
}

// NewBomb creates a Bomb order.
func NewBomb(target string) *Order {
	return &Order{Type: OrderBomb, Target: target}
}

// NewBlockade creates a Blockade order.
func NewBlockade(target string) *Order {
	return &Order{Type: OrderBlockade, Target: target}
}

// NewAirlift creates an Airlift order.
func NewAirlift(armies int, source, target string) *Order {
	return &Order{Type: OrderAirlift, Armies: armies, Source: source, Target: target}
}

// NewNegotiate creates a Negotiate order against another player.
func NewNegotiate(targetPlayer string) *Order {
	return &Order{Type: OrderNegotiate, TargetPlayer: targetPlayer}
}

// ValidationError describes why an order is structurally invalid.
type ValidationError struct {
	Order   *Order
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid order %s: %s", e.Order.Describe(), e.Message)
}

// Validate runs the structural checks for the order's type. It does not look
// at adjacency, ownership or army counts on the board; those belong to the
// Board the order is executed against.
func (o *Order) Validate() error {
	switch o.Type {
	case OrderDeploy:
		if o.Armies <= 0 {
			return &ValidationError{o, "army count must be positive"}
		}
		if o.Target == "" {
			return &ValidationError{o, "missing target territory"}
		}
	case OrderAdvance, OrderAirlift:
		if o.Armies <= 0 {
			return &ValidationError{o, "army count must be positive"}
		}
		if o.Source == "" || o.Target == "" {
			return &ValidationError{o, "missing source or target territory"}
		}
		if o.Source == o.Target {
			return &ValidationError{o, "source and target are the same territory"}
		}
	case OrderBomb, OrderBlockade:
		if o.Target == "" {
			return &ValidationError{o, "missing target territory"}
		}
	case OrderNegotiate:
		if o.TargetPlayer == "" {
			return &ValidationError{o, "missing target player"}
		}
		if o.TargetPlayer == o.Player {
			return &ValidationError{o, "cannot negotiate with yourself"}
		}
	default:
		return &ValidationError{o, "unknown order type"}
	}
	return nil
}

// Execute carries out the order once. An invalid order is consumed with an
// "invalid" effect rather than retried. Calling Execute on an order that has
// already executed does nothing. b may be nil, in which case only the effect
// is recorded.
func (o *Order) Execute(b Board) {
	if o.executed {
		return
	}
	o.executed = true

	if err := o.Validate(); err != nil {
		o.effect = fmt.Sprintf("%s order is invalid and was not executed", o.Type)
		return
	}

	effect := o.successEffect()
	if b != nil {
		detail, err := b.Apply(o)
		if err != nil {
			o.rejected = true
			o.effect = fmt.Sprintf("%s order was rejected: %v", o.Type, err)
			return
		}
		if detail != "" {
			effect += " (" + detail + ")"
		}
	}
	o.effect = effect
}

func (o *Order) successEffect() string {
	switch o.Type {
	case OrderDeploy:
		return fmt.Sprintf("deployed %d armies to %s", o.Armies, o.Target)
	case OrderAdvance:
		return fmt.Sprintf("advanced %d armies from %s to %s", o.Armies, o.Source, o.Target)
	case OrderBomb:
		return fmt.Sprintf("bombed %s, destroying half of its armies", o.Target)
	case OrderBlockade:
		return fmt.Sprintf("blockaded %s, doubling its armies and handing it to the neutral player", o.Target)
	case OrderAirlift:
		return fmt.Sprintf("airlifted %d armies from %s to %s", o.Armies, o.Source, o.Target)
	case OrderNegotiate:
		return fmt.Sprintf("negotiated a truce with %s until end of round", o.TargetPlayer)
	default:
		return ""
	}
}

// Executed reports whether Execute has been called.
func (o *Order) Executed() bool {
	return o.executed
}

// Rejected reports whether the board refused the order when it executed.
func (o *Order) Rejected() bool {
	return o.rejected
}

// Effect returns the outcome text, empty until the order has executed.
func (o *Order) Effect() string {
	return o.effect
}

// Clone returns an independent copy with the same parameters and a fresh,
// unexecuted state.
func (o *Order) Clone() *Order {
	cp := *o
	cp.executed = false
	cp.rejected = false
	cp.effect = ""
	return &cp
}

// Describe returns a human-readable description of the order.
func (o *Order) Describe() string {
	switch o.Type {
	case OrderDeploy:
		return fmt.Sprintf("Deploy %d -> %s", o.Armies, o.Target)
	case OrderAdvance:
		return fmt.Sprintf("Advance %d %s -> %s", o.Armies, o.Source, o.Target)
	case OrderBomb:
		return fmt.Sprintf("Bomb %s", o.Target)
	case OrderBlockade:
		return fmt.Sprintf("Blockade %s", o.Target)
	case OrderAirlift:
		return fmt.Sprintf("Airlift %d %s -> %s", o.Armies, o.Source, o.Target)
	case OrderNegotiate:
		return fmt.Sprintf("Negotiate with %s", o.TargetPlayer)
	default:
		return "???"
	}
}

func (o *Order) String() string {
	if o.executed && o.effect != "" {
		return o.Describe() + ": " + o.effect
	}
	return o.Describe()
}
