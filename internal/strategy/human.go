package strategy

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lucasadilla/COMP345---RISK/internal/player"
	"github.com/lucasadilla/COMP345---RISK/pkg/warzone"
)

// ErrInputClosed is returned when the console closes while a human player is
// issuing orders.
var ErrInputClosed = errors.New("console input closed")

const humanHelp = `Orders:
  deploy <armies> <territory>
  advance <armies> <from> <to>
  bomb <territory>                  (bomb card)
  blockade <territory>              (blockade card)
  airlift <armies> <from> <to>      (airlift card)
  negotiate <player>                (diplomacy card)
  reinforce <armies> <territory>    (reinforcement card)
  play <card> <arguments>           (same as the card's order above)
  list | orders | help | done
Use '_' for spaces in territory names.`

// HumanStrategy reads orders typed at the console.
type HumanStrategy struct {
	in  *bufio.Reader
	out io.Writer
}

// NewHumanStrategy creates a human strategy that prompts on out and reads
// from in.
func NewHumanStrategy(in *bufio.Reader, out io.Writer) *HumanStrategy {
	if out == nil {
		out = io.Discard
	}
	return &HumanStrategy{in: in, out: out}
}

func (*HumanStrategy) Name() string { return Human }

// ToAttack returns enemy territories bordering the player, in map order.
func (*HumanStrategy) ToAttack(p *player.Player, m *warzone.Map) []*warzone.Territory {
	return attackable(m, p.Name)
}

func (*HumanStrategy) ToDefend(p *player.Player, m *warzone.Map) []*warzone.Territory {
	return p.Territories(m)
}

// IssueOrders prompts until the player types done.
func (h *HumanStrategy) IssueOrders(ctx context.Context, p *player.Player, s *warzone.State) error {
	fmt.Fprintf(h.out, "\n=== %s issues orders: %d reinforcements, cards %s ===\n", p.Name, p.Reinforcements, p.Hand)
	fmt.Fprintln(h.out, humanHelp)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintf(h.out, "%s> ", p.Name)
		line, err := h.in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%s: %w", p.Name, ErrInputClosed)
			}
			return fmt.Errorf("read orders for %s: %w", p.Name, err)
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		done, perr := h.handle(p, s.Map, strings.ToLower(fields[0]), fields[1:])
		if done {
			return nil
		}
		if perr != nil {
			fmt.Fprintf(h.out, "Order not issued: %v\n", perr)
		}
	}
}

func (h *HumanStrategy) handle(p *player.Player, m *warzone.Map, word string, args []string) (bool, error) {
	switch word {
	case "done":
		return true, nil
	case "help":
		fmt.Fprintln(h.out, humanHelp)
		return false, nil
	case "list":
		for _, t := range p.Territories(m) {
			var enemies []string
			for _, n := range enemyNeighbors(m, t, p.Name) {
				enemies = append(enemies, fmt.Sprintf("%s(%s:%d)", n.Name, n.Owner, n.Armies))
			}
			fmt.Fprintf(h.out, "  %-20s %3d  borders %s\n", t.Name, t.Armies, strings.Join(enemies, " "))
		}
		return false, nil
	case "orders":
		fmt.Fprintln(h.out, p.Orders)
		return false, nil
	}

	if word == "play" {
		if len(args) == 0 {
			return false, fmt.Errorf("play takes a card name")
		}
		kind, ok := warzone.ParseCardKind(args[0])
		if !ok {
			return false, fmt.Errorf("unknown card %q", args[0])
		}
		word, args = cardWord(kind), args[1:]
	}

	o, card, err := parseHumanOrder(m, word, args)
	if err != nil {
		return false, err
	}
	if card != nil {
		err = p.PlayCard(*card, o)
	} else {
		err = p.IssueOrder(o)
	}
	if err != nil {
		return false, err
	}
	fmt.Fprintf(h.out, "Queued: %s\n", o.Describe())
	return false, nil
}

// parseHumanOrder builds the order for a typed command. card is set for
// orders that spend a card.
func parseHumanOrder(m *warzone.Map, word string, args []string) (*warzone.Order, *warzone.CardKind, error) {
	need := func(n int) error {
		if len(args) != n {
			return fmt.Errorf("%s takes %d arguments, got %d", word, n, len(args))
		}
		return nil
	}
	withCard := func(k warzone.CardKind) *warzone.CardKind { return &k }

	switch word {
	case "deploy", "reinforce":
		if err := need(2); err != nil {
			return nil, nil, err
		}
		n, err := armies(args[0])
		if err != nil {
			return nil, nil, err
		}
		t, err := territory(m, args[1])
		if err != nil {
			return nil, nil, err
		}
		if word == "reinforce" {
			return warzone.NewDeploy(n, t), withCard(warzone.CardReinforcement), nil
		}
		return warzone.NewDeploy(n, t), nil, nil
	case "advance", "airlift":
		if err := need(3); err != nil {
			return nil, nil, err
		}
		n, err := armies(args[0])
		if err != nil {
			return nil, nil, err
		}
		src, err := territory(m, args[1])
		if err != nil {
			return nil, nil, err
		}
		dst, err := territory(m, args[2])
		if err != nil {
			return nil, nil, err
		}
		if word == "airlift" {
			return warzone.NewAirlift(n, src, dst), withCard(warzone.CardAirlift), nil
		}
		return warzone.NewAdvance(n, src, dst), nil, nil
	case "bomb", "blockade":
		if err := need(1); err != nil {
			return nil, nil, err
		}
		t, err := territory(m, args[0])
		if err != nil {
			return nil, nil, err
		}
		if word == "bomb" {
			return warzone.NewBomb(t), withCard(warzone.CardBomb), nil
		}
		return warzone.NewBlockade(t), withCard(warzone.CardBlockade), nil
	case "negotiate":
		if err := need(1); err != nil {
			return nil, nil, err
		}
		return warzone.NewNegotiate(args[0]), withCard(warzone.CardDiplomacy), nil
	default:
		return nil, nil, fmt.Errorf("unknown order %q", word)
	}
}

// cardWord returns the typed order that plays a card of kind.
func cardWord(kind warzone.CardKind) string {
	switch kind {
	case warzone.CardBomb:
		return "bomb"
	case warzone.CardBlockade:
		return "blockade"
	case warzone.CardAirlift:
		return "airlift"
	case warzone.CardDiplomacy:
		return "negotiate"
	default:
		return "reinforce"
	}
}

func armies(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("army count must be a positive number, got %q", s)
	}
	return n, nil
}

// territory resolves a typed name, accepting '_' for spaces and any case.
func territory(m *warzone.Map, typed string) (string, error) {
	if t := m.Territory(typed); t != nil {
		return t.Name, nil
	}
	want := strings.ReplaceAll(typed, "_", " ")
	for _, t := range m.Territories() {
		if strings.EqualFold(t.Name, want) {
			return t.Name, nil
		}
	}
	return "", fmt.Errorf("%w: %s", warzone.ErrUnknownTerritory, typed)
}
