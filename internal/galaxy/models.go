package galaxy

import (
	"starmap/internal/system"
	"starmap/internal/vmath"
)

// StarSystem is one node of the galaxy graph.
// Connections holds indices into the owning Galaxy's Systems and is kept symmetric.
type StarSystem struct {
	Position       vmath.Vec3   `json:"position"`
	Origin         vmath.Vec3   `json:"origin"`
	DriftDirection vmath.Vec3   `json:"drift_direction"`
	Connections    []int        `json:"connections"`
	Name           uint64       `json:"name"`
	Data           *system.Data `json:"system_data"`
	Explored       bool         `json:"explored"`
}

// Scanned reports whether the system's contents have been generated
func (s *StarSystem) Scanned() bool {
	return s.Data != nil
}

// Describe renders the hover summary for the system
func (s *StarSystem) Describe() string {
	if s.Data == nil {
		return system.DescribeUnscanned(s.Name)
	}
	return s.Data.Describe(s.Name)
}

// Galaxy owns every star system; connections refer to systems by index.
type Galaxy struct {
	Systems []*StarSystem `json:"systems"`
}

func (g *Galaxy) Len() int {
	return len(g.Systems)
}

// InRange reports whether i indexes a system of g
func (g *Galaxy) InRange(i int) bool {
	return i >= 0 && i < len(g.Systems)
}

// ScannedCount returns how many systems have generated contents
func (g *Galaxy) ScannedCount() int {
	count := 0
	for _, s := range g.Systems {
		if s.Scanned() {
			count++
		}
	}
	return count
}
