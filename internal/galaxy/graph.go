package galaxy

import (
	"fmt"
)

// Validate checks that every connection points at another system in g,
// appears once, and is mirrored by the target.
func (g *Galaxy) Validate() error {
	for i, s := range g.Systems {
		if s == nil {
			return fmt.Errorf("system %d is missing", i)
		}
		seen := make(map[int]struct{}, len(s.Connections))
		for _, j := range s.Connections {
			if !g.InRange(j) {
				return fmt.Errorf("system %d connects to unknown system %d", i, j)
			}
			if j == i {
				return fmt.Errorf("system %d connects to itself", i)
			}
			if _, dup := seen[j]; dup {
				return fmt.Errorf("system %d lists system %d twice", i, j)
			}
			seen[j] = struct{}{}
		}
	}

	for i, s := range g.Systems {
		for _, j := range s.Connections {
			if !connected(g.Systems[j], i) {
				return fmt.Errorf("system %d connects to %d but not the reverse", i, j)
			}
		}
	}
	return nil
}

func connected(s *StarSystem, j int) bool {
	for _, c := range s.Connections {
		if c == j {
			return true
		}
	}
	return false
}

// Neighbours returns the systems directly connected to system i
func (g *Galaxy) Neighbours(i int) []*StarSystem {
	if !g.InRange(i) {
		return nil
	}
	out := make([]*StarSystem, 0, len(g.Systems[i].Connections))
	for _, j := range g.Systems[i].Connections {
		out = append(out, g.Systems[j])
	}
	return out
}
