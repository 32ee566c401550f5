package galaxy

import (
	"math/rand/v2"

	"starmap/internal/orbit"
)

const (
	driftKick      = 0.003
	springStrength = 0.001
	driftDamping   = 0.95
	// framesPerSecond scales dt so drift speed matches a 60 fps step
	framesPerSecond = 60.0
)

// Drift wobbles every system around its rest position with a damped spring
func (g *Galaxy) Drift(dt float64, rng *rand.Rand) {
	for _, s := range g.Systems {
		s.drift(dt, rng)
	}
}

func (s *StarSystem) drift(dt float64, rng *rand.Rand) {
	s.DriftDirection = s.DriftDirection.
		Add(orbit.RandomAxis(rng).Scale(driftKick)).
		Add(s.Origin.Sub(s.Position).Scale(springStrength)).
		Scale(driftDamping)

	s.Position = s.Position.Add(s.DriftDirection.Scale(dt * framesPerSecond))
}
