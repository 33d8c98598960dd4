package player

import (
	"context"
	"errors"
	"testing"

	"github.com/lucasadilla/COMP345---RISK/pkg/warzone"
)

type stubStrategy struct {
	calls int
}

func (s *stubStrategy) Name() string { return "stub" }

func (s *stubStrategy) IssueOrders(_ context.Context, p *Player, _ *warzone.State) error {
	s.calls++
	return p.IssueOrder(warzone.NewNegotiate("Bob"))
}

func (s *stubStrategy) ToAttack(*Player, *warzone.Map) []*warzone.Territory { return nil }
func (s *stubStrategy) ToDefend(p *Player, m *warzone.Map) []*warzone.Territory {
	return p.Territories(m)
}

func TestIssueOrderStampsPlayer(t *testing.T) {
	p := New("Alice", nil)
	p.Reinforcements = 5
	o := warzone.NewDeploy(3, "Alpha")
	if err := p.IssueOrder(o); err != nil {
		t.Fatalf("issue: %v", err)
	}
	if o.Player != "Alice" {
		t.Errorf("player: got %q, want Alice", o.Player)
	}
	if p.Reinforcements != 2 {
		t.Errorf("pool: got %d, want 2", p.Reinforcements)
	}
	if p.Orders.Len() != 1 {
		t.Errorf("orders: got %d, want 1", p.Orders.Len())
	}
}

func TestIssueOrderRejects(t *testing.T) {
	p := New("Alice", nil)
	p.Reinforcements = 2

	if err := p.IssueOrder(warzone.NewDeploy(3, "Alpha")); !errors.Is(err, ErrNotEnoughReinforcements) {
		t.Errorf("over-deploy: got %v, want ErrNotEnoughReinforcements", err)
	}
	var verr *warzone.ValidationError
	if err := p.IssueOrder(warzone.NewNegotiate("Alice")); !errors.As(err, &verr) {
		t.Errorf("self-negotiate: got %v, want ValidationError", err)
	}
	if err := p.IssueOrder(nil); err == nil {
		t.Error("nil order: expected error")
	}
	if p.Orders.Len() != 0 || p.Reinforcements != 2 {
		t.Errorf("rejected orders changed state: %s", p)
	}
}

func TestPlayCard(t *testing.T) {
	p := New("Alice", nil)
	p.Hand.Add(warzone.Card{Kind: warzone.CardBomb})
	p.Hand.Add(warzone.Card{Kind: warzone.CardReinforcement})

	if err := p.PlayCard(warzone.CardAirlift, warzone.NewAirlift(1, "A", "B")); !errors.Is(err, ErrNoCard) {
		t.Errorf("missing card: got %v, want ErrNoCard", err)
	}
	if err := p.PlayCard(warzone.CardBomb, warzone.NewBlockade("Delta")); !errors.Is(err, ErrCardMismatch) {
		t.Errorf("mismatch: got %v, want ErrCardMismatch", err)
	}
	if err := p.PlayCard(warzone.CardBomb, warzone.NewBomb("Delta")); err != nil {
		t.Fatalf("bomb: %v", err)
	}
	if err := p.PlayCard(warzone.CardReinforcement, warzone.NewDeploy(5, "Alpha")); err != nil {
		t.Fatalf("reinforcement: %v", err)
	}
	if p.Hand.Len() != 0 {
		t.Errorf("hand: got %d cards, want 0", p.Hand.Len())
	}
	if p.Reinforcements != 0 {
		t.Errorf("pool: got %d, want 0", p.Reinforcements)
	}
	if p.Orders.Len() != 2 {
		t.Errorf("orders: got %d, want 2", p.Orders.Len())
	}

	played := p.TakePlayed()
	if len(played) != 2 {
		t.Errorf("played: got %v", played)
	}
	if len(p.TakePlayed()) != 0 {
		t.Error("TakePlayed should drain")
	}
}

func TestPlayCardKeepsCardOnRejection(t *testing.T) {
	p := New("Alice", nil)
	p.Hand.Add(warzone.Card{Kind: warzone.CardReinforcement})
	if err := p.PlayCard(warzone.CardReinforcement, warzone.NewDeploy(6, "Alpha")); !errors.Is(err, ErrNotEnoughReinforcements) {
		t.Errorf("got %v, want ErrNotEnoughReinforcements", err)
	}
	if p.Hand.Len() != 1 || p.Reinforcements != 0 {
		t.Errorf("rejected card play changed state: %s", p)
	}
}

func TestDelegatesToStrategy(t *testing.T) {
	s := &stubStrategy{}
	p := New("Alice", s)
	if err := p.IssueOrders(context.Background(), nil); err != nil {
		t.Fatalf("issue: %v", err)
	}
	if s.calls != 1 || p.Orders.Len() != 1 {
		t.Errorf("calls %d, orders %d", s.calls, p.Orders.Len())
	}
	if p.StrategyName() != "stub" {
		t.Errorf("name: got %q", p.StrategyName())
	}

	p.SetStrategy(nil)
	if err := p.IssueOrders(context.Background(), nil); err != nil {
		t.Errorf("nil strategy: %v", err)
	}
	if p.StrategyName() != "none" {
		t.Errorf("name: got %q", p.StrategyName())
	}
}

func TestReset(t *testing.T) {
	p := New("Alice", nil)
	p.Reinforcements = 5
	p.IssueOrder(warzone.NewDeploy(1, "Alpha"))
	p.Hand.Add(warzone.Card{Kind: warzone.CardBomb})
	p.Reset()
	if p.Orders.Len() != 0 || p.Hand.Len() != 0 || p.Reinforcements != 0 {
		t.Errorf("reset left state: %s", p)
	}
}
