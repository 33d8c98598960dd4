package strategy

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/lucasadilla/COMP345---RISK/internal/player"
	"github.com/lucasadilla/COMP345---RISK/pkg/warzone"
)

// NeutralStrategy issues no orders. Once the player loses a territory it
// replaces itself with an AggressiveStrategy for the rest of the game.
type NeutralStrategy struct {
	owned int
	seen  bool
}

func (*NeutralStrategy) Name() string { return Neutral }

func (*NeutralStrategy) ToAttack(*player.Player, *warzone.Map) []*warzone.Territory { return nil }

func (*NeutralStrategy) ToDefend(p *player.Player, m *warzone.Map) []*warzone.Territory {
	return p.Territories(m)
}

func (n *NeutralStrategy) IssueOrders(ctx context.Context, p *player.Player, s *warzone.State) error {
	owned := s.Map.OwnerCount(p.Name)
	if n.seen && owned < n.owned {
		log.Info().Str("player", p.Name).Int("lost", n.owned-owned).Msg("Neutral player was attacked, turning aggressive")
		p.SetStrategy(&AggressiveStrategy{})
		return p.IssueOrders(ctx, s)
	}
	n.owned, n.seen = owned, true
	return nil
}
