package warzone

import (
	"errors"
	"fmt"
)

// Neutral owns territories handed over by a Blockade order.
const Neutral = "Neutral"

// Territory is a node of the map graph.
type Territory struct {
	Name      string
	Continent string
	Adjacent  []string

	Owner  string
	Armies int
}

// Continent groups territories and grants a bonus to whoever controls all of them.
type Continent struct {
	Name  string
	Bonus int
}

// Map is the territory graph loaded from a map file.
type Map struct {
	Name       string
	Continents map[string]*Continent

	territories map[string]*Territory
	order       []string // file order, for deterministic iteration
}

// NewMap creates an empty map.
func NewMap(name string) *Map {
	return &Map{
		Name:        name,
		Continents:  make(map[string]*Continent),
		territories: make(map[string]*Territory),
	}
}

// AddContinent registers a continent.
func (m *Map) AddContinent(name string, bonus int) {
	m.Continents[name] = &Continent{Name: name, Bonus: bonus}
}

// AddTerritory registers a territory. A second territory with the same name
// replaces the first.
func (m *Map) AddTerritory(t *Territory) {
	if _, ok := m.territories[t.Name]; !ok {
		m.order = append(m.order, t.Name)
	}
	m.territories[t.Name] = t
}

// Territory returns the named territory or nil.
func (m *Map) Territory(name string) *Territory {
	return m.territories[name]
}

// Territories returns every territory in file order.
func (m *Map) Territories() []*Territory {
	out := make([]*Territory, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.territories[name])
	}
	return out
}

// Adjacent reports whether b is listed as a neighbor of a.
func (m *Map) Adjacent(a, b string) bool {
	t := m.territories[a]
	if t == nil {
		return false
	}
	for _, adj := range t.Adjacent {
		if adj == b {
			return true
		}
	}
	return false
}

// Neighbors returns the territories adjacent to name.
func (m *Map) Neighbors(name string) []*Territory {
	t := m.territories[name]
	if t == nil {
		return nil
	}
	out := make([]*Territory, 0, len(t.Adjacent))
	for _, adj := range t.Adjacent {
		if n := m.territories[adj]; n != nil {
			out = append(out, n)
		}
	}
	return out
}

// OwnedBy returns the territories owned by player, in file order.
func (m *Map) OwnedBy(player string) []*Territory {
	var out []*Territory
	for _, name := range m.order {
		if t := m.territories[name]; t.Owner == player {
			out = append(out, t)
		}
	}
	return out
}

// OwnerCount returns how many territories player owns.
func (m *Map) OwnerCount(player string) int {
	n := 0
	for _, t := range m.territories {
		if t.Owner == player {
			n++
		}
	}
	return n
}

// ControlsContinent reports whether player owns every territory of continent.
func (m *Map) ControlsContinent(player, continent string) bool {
	found := false
	for _, t := range m.territories {
		if t.Continent != continent {
			continue
		}
		found = true
		if t.Owner != player {
			return false
		}
	}
	return found
}

// ResetOwnership clears owners and armies, returning the map to its loaded state.
func (m *Map) ResetOwnership() {
	for _, t := range m.territories {
		t.Owner = ""
		t.Armies = 0
	}
}

// ErrEmptyMap is returned by Validate for a map without territories.
var ErrEmptyMap = errors.New("map has no territories")

// Validate checks that the map is a connected graph, that every continent
// is a connected subgraph, and that each territory belongs to exactly one
// declared continent.
func (m *Map) Validate() error {
	if len(m.territories) == 0 {
		return ErrEmptyMap
	}
	for _, name := range m.order {
		t := m.territories[name]
		if _, ok := m.Continents[t.Continent]; !ok {
			return fmt.Errorf("territory %s belongs to unknown continent %q", t.Name, t.Continent)
		}
		for _, adj := range t.Adjacent {
			if _, ok := m.territories[adj]; !ok {
				return fmt.Errorf("territory %s lists unknown neighbor %q", t.Name, adj)
			}
		}
	}

	if reached := m.reachable(m.order[0], ""); reached != len(m.territories) {
		return fmt.Errorf("map is not connected: %d of %d territories reachable from %s", reached, len(m.territories), m.order[0])
	}

	for name := range m.Continents {
		var members []string
		for _, tn := range m.order {
			if m.territories[tn].Continent == name {
				members = append(members, tn)
			}
		}
		if len(members) == 0 {
			return fmt.Errorf("continent %s has no territories", name)
		}
		if reached := m.reachable(members[0], name); reached != len(members) {
			return fmt.Errorf("continent %s is not connected: %d of %d territories reachable", name, reached, len(members))
		}
	}
	return nil
}

// reachable counts territories reachable from start. When continent is set,
// the walk stays inside that continent.
func (m *Map) reachable(start, continent string) int {
	seen := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, adj := range m.territories[cur].Adjacent {
			n := m.territories[adj]
			if n == nil || seen[adj] {
				continue
			}
			if continent != "" && n.Continent != continent {
				continue
			}
			seen[adj] = true
			queue = append(queue, adj)
		}
	}
	return len(seen)
}
