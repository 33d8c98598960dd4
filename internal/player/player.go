// Package player holds a game participant: its queued orders, its card hand,
// its reinforcement pool and the strategy that decides what it does.
package player

import (
	"context"
	"errors"
	"fmt"

	"github.com/lucasadilla/COMP345---RISK/pkg/warzone"
)

// Strategy decides which orders a player issues each round.
type Strategy interface {
	Name() string
	// IssueOrders queues this round's orders through p.IssueOrder and p.PlayCard.
	IssueOrders(ctx context.Context, p *Player, s *warzone.State) error
	ToAttack(p *Player, m *warzone.Map) []*warzone.Territory
	ToDefend(p *Player, m *warzone.Map) []*warzone.Territory
}

var (
	ErrNotEnoughReinforcements = errors.New("not enough reinforcements")
	ErrNoCard                  = errors.New("card not in hand")
	ErrCardMismatch            = errors.New("order does not match card")
)

// Player is one participant in a game.
type Player struct {
	Name           string
	Strategy       Strategy
	Orders         *warzone.OrderList
	Hand           *warzone.Hand
	Reinforcements int

	played []warzone.Card
}

// New creates a player with an empty order list and hand.
func New(name string, s Strategy) *Player {
	return &Player{
		Name:     name,
		Strategy: s,
		Orders:   warzone.NewOrderList(),
		Hand:     warzone.NewHand(),
	}
}

// StrategyName returns the name of the current strategy, or "none".
func (p *Player) StrategyName() string {
	if p.Strategy == nil {
		return "none"
	}
	return p.Strategy.Name()
}

// SetStrategy swaps the player's strategy. It takes effect on the next call
// to IssueOrders.
func (p *Player) SetStrategy(s Strategy) {
	p.Strategy = s
}

// Territories returns the territories of m owned by the player.
func (p *Player) Territories(m *warzone.Map) []*warzone.Territory {
	return m.OwnedBy(p.Name)
}

// IssueOrders delegates to the player's strategy.
func (p *Player) IssueOrders(ctx context.Context, s *warzone.State) error {
	if p.Strategy == nil {
		return nil
	}
	return p.Strategy.IssueOrders(ctx, p, s)
}

// ToAttack delegates to the player's strategy.
func (p *Player) ToAttack(m *warzone.Map) []*warzone.Territory {
	if p.Strategy == nil {
		return nil
	}
	return p.Strategy.ToAttack(p, m)
}

// ToDefend delegates to the player's strategy.
func (p *Player) ToDefend(m *warzone.Map) []*warzone.Territory {
	if p.Strategy == nil {
		return nil
	}
	return p.Strategy.ToDefend(p, m)
}

// IssueOrder stamps o with the player's name and queues it. Deploys draw on
// the reinforcement pool and are refused when the pool is too small.
func (p *Player) IssueOrder(o *warzone.Order) error {
	if o == nil {
		return errors.New("nil order")
	}
	o.Player = p.Name
	if err := o.Validate(); err != nil {
		return err
	}
	if o.Type == warzone.OrderDeploy {
		if o.Armies > p.Reinforcements {
			return fmt.Errorf("%w: %d requested, %d in pool", ErrNotEnoughReinforcements, o.Armies, p.Reinforcements)
		}
		p.Reinforcements -= o.Armies
	}
	p.Orders.Add(o)
	return nil
}

// cardOrder maps a card to the order type it produces when played.
func cardOrder(kind warzone.CardKind) warzone.OrderType {
	switch kind {
	case warzone.CardBomb:
		return warzone.OrderBomb
	case warzone.CardBlockade:
		return warzone.OrderBlockade
	case warzone.CardAirlift:
		return warzone.OrderAirlift
	case warzone.CardDiplomacy:
		return warzone.OrderNegotiate
	default:
		return warzone.OrderDeploy
	}
}

// PlayCard spends a card from the hand to issue o. A reinforcement card adds
// ReinforcementCardArmies to the pool before o, which must be a deploy, is
// issued. The card is only spent if the order is accepted.
func (p *Player) PlayCard(kind warzone.CardKind, o *warzone.Order) error {
	if p.Hand.Count(kind) == 0 {
		return fmt.Errorf("%w: %s", ErrNoCard, kind)
	}
	if o == nil || o.Type != cardOrder(kind) {
		return fmt.Errorf("%w: %s", ErrCardMismatch, kind)
	}

	bonus := 0
	if kind == warzone.CardReinforcement {
		bonus = warzone.ReinforcementCardArmies
	}
	p.Reinforcements += bonus
	if err := p.IssueOrder(o); err != nil {
		p.Reinforcements -= bonus
		return err
	}
	p.Hand.Take(kind)
	p.played = append(p.played, warzone.Card{Kind: kind})
	return nil
}

// TakePlayed returns the cards played since the last call so they can go
// back to the deck.
func (p *Player) TakePlayed() []warzone.Card {
	out := p.played
	p.played = nil
	return out
}

// Reset clears orders, cards and reinforcements for a new game.
func (p *Player) Reset() {
	p.Orders = warzone.NewOrderList()
	p.Hand = warzone.NewHand()
	p.Reinforcements = 0
	p.played = nil
}

func (p *Player) String() string {
	return fmt.Sprintf("%s (%s, %d reinforcements, %d orders, cards %s)",
		p.Name, p.StrategyName(), p.Reinforcements, p.Orders.Len(), p.Hand)
}
