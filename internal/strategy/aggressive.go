package strategy

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/lucasadilla/COMP345---RISK/internal/player"
	"github.com/lucasadilla/COMP345---RISK/pkg/warzone"
)

// AggressiveStrategy masses every army on its strongest front-line
// territory and attacks from there, weakest neighbor first.
type AggressiveStrategy struct{}

func (AggressiveStrategy) Name() string { return Aggressive }

// ToAttack returns enemy territories bordering the player, weakest first.
func (AggressiveStrategy) ToAttack(p *player.Player, m *warzone.Map) []*warzone.Territory {
	return byArmiesAsc(attackable(m, p.Name))
}

// ToDefend returns the player's territories, strongest first.
func (AggressiveStrategy) ToDefend(p *player.Player, m *warzone.Map) []*warzone.Territory {
	return byArmiesDesc(p.Territories(m))
}

// base picks the territory to reinforce and attack from: the strongest one
// with an enemy neighbor, or the strongest overall when there is no front.
func (a AggressiveStrategy) base(p *player.Player, m *warzone.Map) *warzone.Territory {
	owned := a.ToDefend(p, m)
	if len(owned) == 0 {
		return nil
	}
	for _, t := range owned {
		if len(enemyNeighbors(m, t, p.Name)) > 0 {
			return t
		}
	}
	return owned[0]
}

func (a AggressiveStrategy) IssueOrders(_ context.Context, p *player.Player, s *warzone.State) error {
	m := s.Map
	base := a.base(p, m)
	if base == nil {
		return nil
	}

	deployed := 0
	if p.Hand.Count(warzone.CardReinforcement) > 0 {
		if err := p.PlayCard(warzone.CardReinforcement, warzone.NewDeploy(warzone.ReinforcementCardArmies, base.Name)); err != nil {
			return err
		}
		deployed += warzone.ReinforcementCardArmies
	}
	if n := p.Reinforcements; n > 0 {
		if err := p.IssueOrder(warzone.NewDeploy(n, base.Name)); err != nil {
			return err
		}
		deployed += n
	}

	armies := base.Armies + deployed
	targets := byArmiesAsc(enemyNeighbors(m, base, p.Name))
	if len(targets) == 0 {
		// No front here; march toward the nearest owned territory that has one.
		for _, n := range ownNeighbors(m, base, p.Name) {
			if len(enemyNeighbors(m, n, p.Name)) > 0 && armies > 0 {
				return p.IssueOrder(warzone.NewAdvance(armies, base.Name, n.Name))
			}
		}
		log.Debug().Str("player", p.Name).Str("base", base.Name).Msg("Aggressive player has no target")
		return nil
	}

	if len(targets) > 1 && p.Hand.Count(warzone.CardBomb) > 0 {
		strongest := targets[len(targets)-1]
		if err := p.PlayCard(warzone.CardBomb, warzone.NewBomb(strongest.Name)); err != nil {
			return err
		}
	}
	if armies > 0 {
		return p.IssueOrder(warzone.NewAdvance(armies, base.Name, targets[0].Name))
	}
	return nil
}
