package system

import (
	"math"

	"starmap/internal/orbit"
	"starmap/internal/vmath"
)

// PhaseStep is the per-tick phase advance of a body orbiting at radius 1.
// Bodies advance by PhaseStep/radius, so closer orbits move faster.
const PhaseStep = 0.0002

// Tick advances every planet and moon of d by one simulation step
func Tick(d *Data) {
	for i := range d.Planets {
		p := &d.Planets[i]
		p.OrbitCompletion = Advance(p.OrbitCompletion, PhaseStep/p.OrbitRadius)

		for j := range p.Moons {
			m := &p.Moons[j]
			m.OrbitCompletion = Advance(m.OrbitCompletion, PhaseStep/m.OrbitalRadius)
		}
	}
}

// Advance adds delta to a phase and wraps the result back into [0,1)
func Advance(completion, delta float64) float64 {
	completion += delta
	if completion >= 1 || completion < 0 {
		completion -= math.Floor(completion)
		if completion >= 1 {
			completion = 0
		}
	}
	return completion
}

// BodyPosition is the current location of a planet or moon.
// Moon positions are relative to their planet.
type BodyPosition struct {
	Planet   int        `json:"planet"`
	Moon     int        `json:"moon"`
	Position vmath.Vec3 `json:"position"`
}

// Positions returns the current location of every planet (Moon = -1) and moon in d
func Positions(d *Data) []BodyPosition {
	out := make([]BodyPosition, 0, len(d.Planets)+d.MoonCount())
	for i, p := range d.Planets {
		out = append(out, BodyPosition{
			Planet:   i,
			Moon:     -1,
			Position: orbit.PositionAt(p.OrbitNormal, p.OrbitRadius, p.OrbitCompletion),
		})
		for j, m := range p.Moons {
			out = append(out, BodyPosition{
				Planet:   i,
				Moon:     j,
				Position: orbit.PositionAt(m.OrbitNormal, m.OrbitalRadius, m.OrbitCompletion),
			})
		}
	}
	return out
}
