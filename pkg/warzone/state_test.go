package warzone

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

// setupState returns the small map with Alice holding North and Bob holding South.
func setupState(t *testing.T) *State {
	t.Helper()
	m := loadTestMap(t)
	for _, tr := range m.Territories() {
		tr.Armies = 4
		if tr.Continent == "North" {
			tr.Owner = "Alice"
		} else {
			tr.Owner = "Bob"
		}
	}
	return NewState(m)
}

func issued(o *Order, player string) *Order {
	o.Player = player
	return o
}

func TestStateDeploy(t *testing.T) {
	s := setupState(t)
	o := issued(NewDeploy(3, "Alpha"), "Alice")
	o.Execute(s)
	if got := s.Map.Territory("Alpha").Armies; got != 7 {
		t.Errorf("Alpha armies: got %d, want 7", got)
	}

	bad := issued(NewDeploy(3, "Delta"), "Alice")
	if _, err := s.Apply(bad); !errors.Is(err, ErrNotOwner) {
		t.Errorf("deploy to enemy territory: got %v, want ErrNotOwner", err)
	}
}

func TestStateAdvanceMove(t *testing.T) {
	s := setupState(t)
	o := issued(NewAdvance(3, "Alpha", "Bravo"), "Alice")
	o.Execute(s)
	if s.Map.Territory("Alpha").Armies != 1 || s.Map.Territory("Bravo").Armies != 7 {
		t.Errorf("after move: Alpha=%d Bravo=%d", s.Map.Territory("Alpha").Armies, s.Map.Territory("Bravo").Armies)
	}
}

func TestStateAdvanceNotAdjacent(t *testing.T) {
	s := setupState(t)
	_, err := s.Apply(issued(NewAdvance(2, "Alpha", "Echo"), "Alice"))
	if !errors.Is(err, ErrNotAdjacent) {
		t.Errorf("got %v, want ErrNotAdjacent", err)
	}
}

func TestStateAdvanceConquer(t *testing.T) {
	s := setupState(t)
	s.Map.Territory("Bravo").Armies = 10
	s.Map.Territory("Delta").Armies = 2

	o := issued(NewAdvance(8, "Bravo", "Delta"), "Alice")
	o.Execute(s)

	delta := s.Map.Territory("Delta")
	if delta.Owner != "Alice" {
		t.Fatalf("Delta owner: got %q, want Alice (effect %q)", delta.Owner, o.Effect())
	}
	// 8 attackers vs 2 defenders: defenders lose 4 (all), attackers lose 1.
	if delta.Armies != 7 {
		t.Errorf("Delta armies: got %d, want 7", delta.Armies)
	}
	if s.Map.Territory("Bravo").Armies != 2 {
		t.Errorf("Bravo armies: got %d, want 2", s.Map.Territory("Bravo").Armies)
	}
	if !slices.Equal(s.Conquerors(), []string{"Alice"}) {
		t.Errorf("conquerors: %v", s.Conquerors())
	}
	if !strings.Contains(o.Effect(), "conquered Delta") {
		t.Errorf("effect: %q", o.Effect())
	}
}

func TestStateAdvanceRepelled(t *testing.T) {
	s := setupState(t)
	s.Map.Territory("Delta").Armies = 10

	o := issued(NewAdvance(2, "Bravo", "Delta"), "Alice")
	o.Execute(s)
	if s.Map.Territory("Delta").Owner != "Bob" {
		t.Fatal("Delta should stay with Bob")
	}
	// 2 attackers kill 1 defender and are all destroyed.
	if got := s.Map.Territory("Delta").Armies; got != 9 {
		t.Errorf("Delta armies: got %d, want 9", got)
	}
	if got := s.Map.Territory("Bravo").Armies; got != 2 {
		t.Errorf("Bravo armies: got %d, want 2", got)
	}
	if len(s.Conquerors()) != 0 {
		t.Errorf("no conquest expected, got %v", s.Conquerors())
	}
}

func TestStateTruceBlocksAttack(t *testing.T) {
	s := setupState(t)
	issued(NewNegotiate("Bob"), "Alice").Execute(s)
	if !s.InTruce("Bob", "Alice") {
		t.Fatal("truce should be symmetric")
	}
	_, err := s.Apply(issued(NewAdvance(2, "Bravo", "Delta"), "Alice"))
	if !errors.Is(err, ErrTruce) {
		t.Errorf("advance under truce: got %v, want ErrTruce", err)
	}
	_, err = s.Apply(issued(NewBomb("Delta"), "Alice"))
	if !errors.Is(err, ErrTruce) {
		t.Errorf("bomb under truce: got %v, want ErrTruce", err)
	}

	s.EndRound()
	if s.InTruce("Alice", "Bob") {
		t.Error("EndRound should clear truces")
	}
}

func TestStateBomb(t *testing.T) {
	s := setupState(t)
	s.Map.Territory("Delta").Armies = 9
	issued(NewBomb("Delta"), "Alice").Execute(s)
	if got := s.Map.Territory("Delta").Armies; got != 4 {
		t.Errorf("Delta armies: got %d, want 4", got)
	}

	if _, err := s.Apply(issued(NewBomb("Foxtrot"), "Alice")); !errors.Is(err, ErrNotAdjacent) {
		t.Errorf("bomb far territory: got %v, want ErrNotAdjacent", err)
	}
	if _, err := s.Apply(issued(NewBomb("Alpha"), "Alice")); !errors.Is(err, ErrOwnTerritory) {
		t.Errorf("bomb own territory: got %v, want ErrOwnTerritory", err)
	}
}

func TestStateBlockade(t *testing.T) {
	s := setupState(t)
	issued(NewBlockade("Charlie"), "Alice").Execute(s)
	c := s.Map.Territory("Charlie")
	if c.Owner != Neutral || c.Armies != 8 {
		t.Errorf("Charlie: owner=%q armies=%d", c.Owner, c.Armies)
	}
}

func TestStateAirlift(t *testing.T) {
	s := setupState(t)
	o := issued(NewAirlift(10, "Alpha", "Charlie"), "Alice")
	o.Execute(s)
	if s.Map.Territory("Alpha").Armies != 0 || s.Map.Territory("Charlie").Armies != 8 {
		t.Errorf("after airlift: Alpha=%d Charlie=%d", s.Map.Territory("Alpha").Armies, s.Map.Territory("Charlie").Armies)
	}
	if !strings.Contains(o.Effect(), "only 4 available") {
		t.Errorf("effect: %q", o.Effect())
	}
	if _, err := s.Apply(issued(NewAirlift(1, "Alpha", "Echo"), "Alice")); !errors.Is(err, ErrNotOwner) {
		t.Errorf("airlift to enemy: got %v, want ErrNotOwner", err)
	}
}

func TestStateReinforcement(t *testing.T) {
	s := setupState(t)
	// Alice holds all of North, which carries no bonus by default.
	if got := s.Reinforcement("Alice"); got != MinReinforcement {
		t.Errorf("3 territories: got %d, want %d", got, MinReinforcement)
	}

	m := NewMap("big")
	m.AddContinent("C", 1)
	for i := 0; i < 14; i++ {
		m.AddTerritory(&Territory{Name: string(rune('a' + i)), Continent: "C", Owner: "Alice"})
	}
	big := NewState(m)
	for _, tt := range []struct{ owned, want int }{{14, 4}, {11, 3}, {9, 3}, {2, 3}} {
		for i, tr := range m.Territories() {
			tr.Owner = "Bob"
			if i < tt.owned {
				tr.Owner = "Alice"
			}
		}
		if got := big.Reinforcement("Alice"); got != tt.want || got != max(MinReinforcement, tt.owned/3) {
			t.Errorf("%d territories: got %d, want %d", tt.owned, got, tt.want)
		}
	}
}

func TestStateReinforcementContinentBonus(t *testing.T) {
	s := setupState(t)
	s.ContinentBonus = true
	if got := s.Reinforcement("Alice"); got != MinReinforcement+3 {
		t.Errorf("North: got %d, want %d", got, MinReinforcement+3)
	}
	s.Map.Territory("Alpha").Owner = "Bob"
	if got := s.Reinforcement("Alice"); got != MinReinforcement {
		t.Errorf("North broken: got %d, want %d", got, MinReinforcement)
	}
}

func TestDefaultBattle(t *testing.T) {
	tests := []struct {
		att, def         int
		wantAtt, wantDef int
	}{
		{10, 0, 10, 0},
		{8, 2, 7, 0},
		{2, 10, 0, 9},
		{0, 5, 0, 5},
	}
	for _, tt := range tests {
		a, d := DefaultBattle(tt.att, tt.def)
		if a != tt.wantAtt || d != tt.wantDef {
			t.Errorf("DefaultBattle(%d, %d): got (%d, %d), want (%d, %d)", tt.att, tt.def, a, d, tt.wantAtt, tt.wantDef)
		}
	}
}
