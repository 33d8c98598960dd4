package strategy

import (
	"context"

	"github.com/lucasadilla/COMP345---RISK/internal/player"
	"github.com/lucasadilla/COMP345---RISK/pkg/warzone"
)

// BenevolentStrategy never attacks. It reinforces its weakest territories
// and shifts armies from strong territories to weak neighbors.
type BenevolentStrategy struct{}

func (BenevolentStrategy) Name() string { return Benevolent }

func (BenevolentStrategy) ToAttack(*player.Player, *warzone.Map) []*warzone.Territory { return nil }

// ToDefend returns the player's territories, weakest first.
func (BenevolentStrategy) ToDefend(p *player.Player, m *warzone.Map) []*warzone.Territory {
	return byArmiesAsc(p.Territories(m))
}

func (b BenevolentStrategy) IssueOrders(_ context.Context, p *player.Player, s *warzone.State) error {
	m := s.Map
	owned := b.ToDefend(p, m)
	if len(owned) == 0 {
		return nil
	}

	if p.Hand.Count(warzone.CardReinforcement) > 0 {
		if err := p.PlayCard(warzone.CardReinforcement, warzone.NewDeploy(warzone.ReinforcementCardArmies, owned[0].Name)); err != nil {
			return err
		}
	}

	// Hand out the pool one army at a time to whichever territory is weakest
	// once earlier deploys are counted.
	planned := make(map[string]int, len(owned))
	var order []string
	for range p.Reinforcements {
		weakest := owned[0]
		for _, t := range owned[1:] {
			if t.Armies+planned[t.Name] < weakest.Armies+planned[weakest.Name] {
				weakest = t
			}
		}
		if planned[weakest.Name] == 0 {
			order = append(order, weakest.Name)
		}
		planned[weakest.Name]++
	}
	for _, name := range order {
		if err := p.IssueOrder(warzone.NewDeploy(planned[name], name)); err != nil {
			return err
		}
	}

	if p.Hand.Count(warzone.CardDiplomacy) > 0 {
		if threat := strongestEnemy(m, p.Name); threat != "" {
			if err := p.PlayCard(warzone.CardDiplomacy, warzone.NewNegotiate(threat)); err != nil {
				return err
			}
		}
	}

	strongest := owned[len(owned)-1]
	have := strongest.Armies + planned[strongest.Name]
	for _, n := range byArmiesAsc(ownNeighbors(m, strongest, p.Name)) {
		gap := have - (n.Armies + planned[n.Name])
		if gap >= 2 {
			return p.IssueOrder(warzone.NewAdvance(gap/2, strongest.Name, n.Name))
		}
	}
	return nil
}

// strongestEnemy returns the owner of the largest army bordering player, or
// "" when no other player borders it.
func strongestEnemy(m *warzone.Map, player string) string {
	best := ""
	armies := -1
	for _, t := range attackable(m, player) {
		if t.Owner == "" || t.Owner == warzone.Neutral {
			continue
		}
		if t.Armies > armies {
			best, armies = t.Owner, t.Armies
		}
	}
	return best
}
