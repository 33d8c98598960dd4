package warzone

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// LoadMap reads a Conquest-format .map file.
func LoadMap(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open map: %w", err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	m, err := ParseMap(name, f)
	if err != nil {
		return nil, fmt.Errorf("parse map %s: %w", path, err)
	}
	return m, nil
}

// ParseMap reads the [Continents] and [Territories] sections of a
// Conquest-format map. Continent lines are "Name=bonus"; territory lines are
// "Name,x,y,Continent,Neighbor1,Neighbor2,...". Other sections are skipped.
func ParseMap(name string, r io.Reader) (*Map, error) {
	m := NewMap(name)
	section := ""
	lineNo := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.ToLower(line[1 : len(line)-1])
			continue
		}

		switch section {
		case "continents":
			key, val, ok := strings.Cut(line, "=")
			if !ok {
				return nil, fmt.Errorf("line %d: continent entry missing '='", lineNo)
			}
			bonus, err := strconv.Atoi(strings.TrimSpace(val))
			if err != nil {
				return nil, fmt.Errorf("line %d: continent bonus: %w", lineNo, err)
			}
			m.AddContinent(strings.TrimSpace(key), bonus)
		case "territories":
			fields := strings.Split(line, ",")
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: territory entry needs name, x, y and continent", lineNo)
			}
			t := &Territory{
				Name:      strings.TrimSpace(fields[0]),
				Continent: strings.TrimSpace(fields[3]),
			}
			for _, adj := range fields[4:] {
				if adj = strings.TrimSpace(adj); adj != "" {
					t.Adjacent = append(t.Adjacent, adj)
				}
			}
			m.AddTerritory(t)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(m.territories) == 0 {
		return nil, ErrEmptyMap
	}
	return m, nil
}
