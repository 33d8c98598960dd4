package warzone

import (
	"errors"
	"strings"
	"testing"
)

func loadTestMap(t *testing.T) *Map {
	t.Helper()
	m, err := LoadMap("testdata/small.map")
	if err != nil {
		t.Fatalf("load map: %v", err)
	}
	return m
}

func TestLoadMap(t *testing.T) {
	m := loadTestMap(t)
	if m.Name != "small" {
		t.Errorf("name: got %q, want %q", m.Name, "small")
	}
	if len(m.Continents) != 2 {
		t.Errorf("continents: got %d, want 2", len(m.Continents))
	}
	if m.Continents["North"].Bonus != 3 {
		t.Errorf("North bonus: got %d, want 3", m.Continents["North"].Bonus)
	}
	ts := m.Territories()
	if len(ts) != 6 {
		t.Fatalf("territories: got %d, want 6", len(ts))
	}
	if ts[0].Name != "Alpha" || ts[5].Name != "Foxtrot" {
		t.Errorf("file order not kept: first=%s last=%s", ts[0].Name, ts[5].Name)
	}
	if !m.Adjacent("Bravo", "Delta") {
		t.Error("Bravo should border Delta")
	}
	if m.Adjacent("Alpha", "Foxtrot") {
		t.Error("Alpha should not border Foxtrot")
	}
	if err := m.Validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestLoadMapMissingFile(t *testing.T) {
	if _, err := LoadMap("testdata/nope.map"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidateDisconnected(t *testing.T) {
	m, err := LoadMap("testdata/disconnected.map")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := m.Validate(); err == nil || !strings.Contains(err.Error(), "not connected") {
		t.Errorf("expected connectivity error, got %v", err)
	}
}

func TestValidateDisconnectedContinent(t *testing.T) {
	src := `[Continents]
North=1
South=1
[Territories]
A,0,0,North,B
B,0,0,South,A,C
C,0,0,North,B
`
	m, err := ParseMap("split", strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	err = m.Validate()
	if err == nil || !strings.Contains(err.Error(), "continent North is not connected") {
		t.Errorf("expected continent connectivity error, got %v", err)
	}
}

func TestValidateUnknownContinentAndNeighbor(t *testing.T) {
	m, _ := ParseMap("bad", strings.NewReader("[Continents]\nNorth=1\n[Territories]\nA,0,0,Nowhere\n"))
	if err := m.Validate(); err == nil || !strings.Contains(err.Error(), "unknown continent") {
		t.Errorf("expected unknown continent error, got %v", err)
	}

	m, _ = ParseMap("bad", strings.NewReader("[Continents]\nNorth=1\n[Territories]\nA,0,0,North,Ghost\n"))
	if err := m.Validate(); err == nil || !strings.Contains(err.Error(), "unknown neighbor") {
		t.Errorf("expected unknown neighbor error, got %v", err)
	}
}

func TestParseMapErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", "[Continents]\nNorth=1\n"},
		{"bad bonus", "[Continents]\nNorth=x\n[Territories]\nA,0,0,North\n"},
		{"no equals", "[Continents]\nNorth\n"},
		{"short territory", "[Continents]\nNorth=1\n[Territories]\nA,0,0\n"},
	}
	for _, tt := range tests {
		if _, err := ParseMap(tt.name, strings.NewReader(tt.src)); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
	if _, err := ParseMap("empty", strings.NewReader("")); !errors.Is(err, ErrEmptyMap) {
		t.Errorf("expected ErrEmptyMap, got %v", err)
	}
}

func TestOwnership(t *testing.T) {
	m := loadTestMap(t)
	m.Territory("Alpha").Owner = "Alice"
	m.Territory("Bravo").Owner = "Alice"
	m.Territory("Charlie").Owner = "Alice"
	m.Territory("Delta").Owner = "Bob"

	if n := m.OwnerCount("Alice"); n != 3 {
		t.Errorf("Alice owns %d, want 3", n)
	}
	if !m.ControlsContinent("Alice", "North") {
		t.Error("Alice should control North")
	}
	if m.ControlsContinent("Bob", "South") {
		t.Error("Bob should not control South")
	}
	owned := m.OwnedBy("Alice")
	if len(owned) != 3 || owned[0].Name != "Alpha" {
		t.Errorf("OwnedBy: %v", owned)
	}

	m.ResetOwnership()
	if m.OwnerCount("Alice") != 0 {
		t.Error("reset should clear owners")
	}
}
