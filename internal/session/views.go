package session

import (
	"fmt"

	"starmap/internal/galaxy"
	"starmap/internal/system"
	"starmap/internal/vmath"
)

type SystemSummary struct {
	Index       int        `json:"index"`
	Name        string     `json:"name"`
	Position    vmath.Vec3 `json:"position"`
	Connections []int      `json:"connections"`
	Explored    bool       `json:"explored"`
	Scanned     bool       `json:"scanned"`
}

type GalaxyView struct {
	Systems []SystemSummary `json:"systems"`
	Focused int             `json:"focused"`
	Hovered int             `json:"hovered"`
	Scanned int             `json:"scanned"`
}

// SystemView is a copy of one system that stays valid after the lock is released
type SystemView struct {
	SystemSummary
	Data *system.Data `json:"system_data"`
}

func newSystemSummary(i int, s *galaxy.StarSystem) SystemSummary {
	return SystemSummary{
		Index:       i,
		Name:        fmt.Sprintf("%X", s.Name),
		Position:    s.Position,
		Connections: append([]int{}, s.Connections...),
		Explored:    s.Explored,
		Scanned:     s.Scanned(),
	}
}

func newSystemView(i int, s *galaxy.StarSystem) SystemView {
	return SystemView{
		SystemSummary: newSystemSummary(i, s),
		Data:          s.Data.Clone(),
	}
}
