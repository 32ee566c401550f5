package system

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"starmap/internal/orbit"
)

// ErrUnsatisfiable is returned when a rejection sampler exhausts its draw budget
// without finding an orbit that keeps the required spacing.
var ErrUnsatisfiable = errors.New("orbit constraints unsatisfiable")

const (
	DefaultMaxDraws = 10000

	// cancellation is polled once per this many rejection draws
	cancelCheckInterval = 64
)

// Generator builds star system contents under class and orbit-spacing constraints.
// A zero MaxDraws lets the rejection samplers run until ctx is cancelled.
type Generator struct {
	Classes       []ClassSpec
	MinPlanets    int
	MaxPlanets    int
	PlanetSpacing float64
	MoonSpacing   float64
	MaxDraws      int
}

func NewGenerator() *Generator {
	return &Generator{
		Classes:       DefaultClasses(),
		MinPlanets:    0,
		MaxPlanets:    10,
		PlanetSpacing: PlanetSpacing,
		MoonSpacing:   MoonSpacing,
		MaxDraws:      DefaultMaxDraws,
	}
}

// Generate draws a star mass, a planet list and each planet's moons from rng.
// The same seed yields the same Data as long as every draw completes.
func (g *Generator) Generate(ctx context.Context, rng *rand.Rand) (*Data, error) {
	if len(g.Classes) == 0 {
		return nil, fmt.Errorf("generator has no planet classes")
	}
	if g.MinPlanets < 0 || g.MaxPlanets < g.MinPlanets {
		return nil, fmt.Errorf("invalid planet count range [%d, %d]", g.MinPlanets, g.MaxPlanets)
	}

	starMass := uniform(rng, MinStarMass, MaxStarMass)
	count := g.MinPlanets + rng.IntN(g.MaxPlanets-g.MinPlanets+1)

	planets, err := g.generatePlanets(ctx, rng, count)
	if err != nil {
		return nil, err
	}

	return &Data{
		StarMass: starMass,
		Planets:  planets,
	}, nil
}

func (g *Generator) generatePlanets(ctx context.Context, rng *rand.Rand, count int) ([]Planet, error) {
	planets := make([]Planet, 0, count)
	usedOrbits := make([]float64, 0, count)

	for i := 0; i < count; i++ {
		spec := g.Classes[g.classIndex(rng, i, count)]

		mass := uniform(rng, spec.MinMass, spec.MaxMass)

		radius, err := g.sampleUnique(ctx, rng, spec.MinOrbit, spec.MaxOrbit, g.PlanetSpacing, usedOrbits)
		if err != nil {
			return nil, fmt.Errorf("planet %d (%s): %w", i, spec.Class, err)
		}
		usedOrbits = append(usedOrbits, radius)

		moonCount := spec.MinMoons + rng.IntN(spec.MaxMoons-spec.MinMoons+1)
		moons, err := g.generateMoons(ctx, rng, moonCount)
		if err != nil {
			return nil, fmt.Errorf("planet %d (%s) moons: %w", i, spec.Class, err)
		}

		planets = append(planets, Planet{
			Mass:            mass,
			OrbitCompletion: rng.Float64(),
			OrbitRadius:     radius,
			OrbitNormal:     orbit.RandomNormal(rng, orbit.PlanetTiltDegrees, orbit.ReferenceAxis),
			Class:           spec.Class,
			Moons:           moons,
		})
	}

	slices.SortStableFunc(planets, func(a, b Planet) int {
		switch {
		case a.OrbitRadius < b.OrbitRadius:
			return -1
		case a.OrbitRadius > b.OrbitRadius:
			return 1
		}
		return 0
	})

	return planets, nil
}

func (g *Generator) generateMoons(ctx context.Context, rng *rand.Rand, count int) ([]Moon, error) {
	moons := make([]Moon, 0, count)
	usedOrbits := make([]float64, 0, count)

	for i := 0; i < count; i++ {
		moonType := moonTypes[rng.IntN(len(moonTypes))]
		mr := moonMassRanges[moonType]
		mass := uniform(rng, mr.min, mr.max)

		radius, err := g.sampleUnique(ctx, rng, MinMoonOrbit, MaxMoonOrbit, g.MoonSpacing, usedOrbits)
		if err != nil {
			return nil, fmt.Errorf("moon %d: %w", i, err)
		}
		usedOrbits = append(usedOrbits, radius)

		moons = append(moons, Moon{
			Type:            moonType,
			Mass:            mass,
			OrbitalRadius:   radius,
			OrbitCompletion: float64(rng.IntN(10000)) / 10000,
			OrbitNormal:     orbit.RandomNormal(rng, orbit.MoonTiltDegrees, orbit.ReferenceAxis),
		})
	}

	return moons, nil
}

// classIndex maps position i of n onto the class list and nudges it outward by 0 or 1,
// so inner planets lean towards inner classes without a rigid order.
func (g *Generator) classIndex(rng *rand.Rand, i, n int) int {
	last := len(g.Classes) - 1
	base := int(math.Round(float64(i) / float64(n) * float64(len(g.Classes))))
	base = max(0, min(base, last))
	return min(base+rng.IntN(2), last)
}

// sampleUnique draws from [lo, hi) until a value keeps at least spacing from every used value
func (g *Generator) sampleUnique(ctx context.Context, rng *rand.Rand, lo, hi, spacing float64, used []float64) (float64, error) {
	for draws := 0; g.MaxDraws <= 0 || draws < g.MaxDraws; draws++ {
		if draws%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}

		v := uniform(rng, lo, hi)
		if !tooClose(v, used, spacing) {
			return v, nil
		}
	}

	return 0, fmt.Errorf("%w: no orbit in [%g, %g) keeps %g from %d taken after %d draws",
		ErrUnsatisfiable, lo, hi, spacing, len(used), g.MaxDraws)
}

func tooClose(v float64, used []float64, spacing float64) bool {
	for _, u := range used {
		if math.Abs(u-v) < spacing {
			return true
		}
	}
	return false
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
