package system

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"reflect"
	"testing"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestGenerateConstraints(t *testing.T) {
	g := NewGenerator()
	ctx := context.Background()

	generated := 0
	for seed := uint64(0); seed < 300; seed++ {
		data, err := g.Generate(ctx, seeded(seed))
		if errors.Is(err, ErrUnsatisfiable) {
			continue
		}
		if err != nil {
			t.Fatalf("seed %d: unexpected error: %v", seed, err)
		}
		generated++

		if data.StarMass < MinStarMass || data.StarMass >= MaxStarMass {
			t.Errorf("seed %d: star mass %g out of range", seed, data.StarMass)
		}
		if len(data.Planets) > g.MaxPlanets {
			t.Errorf("seed %d: expected at most %d planets, got %d", seed, g.MaxPlanets, len(data.Planets))
		}

		for i, p := range data.Planets {
			if i > 0 && data.Planets[i-1].OrbitRadius > p.OrbitRadius {
				t.Errorf("seed %d: planets not sorted at %d", seed, i)
			}
			for j := i + 1; j < len(data.Planets); j++ {
				if d := math.Abs(p.OrbitRadius - data.Planets[j].OrbitRadius); d < PlanetSpacing {
					t.Errorf("seed %d: planets %d and %d only %g apart", seed, i, j, d)
				}
			}
			if p.OrbitRadius <= 0 {
				t.Errorf("seed %d: planet %d has non-positive radius", seed, i)
			}
			if p.OrbitCompletion < 0 || p.OrbitCompletion >= 1 {
				t.Errorf("seed %d: planet %d phase %g out of [0,1)", seed, i, p.OrbitCompletion)
			}
			if math.Abs(p.OrbitNormal.Length()-1) > 1e-9 {
				t.Errorf("seed %d: planet %d normal not unit", seed, i)
			}

			spec := specFor(t, g, p.Class)
			if p.Mass < spec.MinMass || p.Mass >= spec.MaxMass {
				t.Errorf("seed %d: %s mass %g outside [%g,%g)", seed, p.Class, p.Mass, spec.MinMass, spec.MaxMass)
			}
			if p.OrbitRadius < spec.MinOrbit || p.OrbitRadius >= spec.MaxOrbit {
				t.Errorf("seed %d: %s orbit %g outside [%g,%g)", seed, p.Class, p.OrbitRadius, spec.MinOrbit, spec.MaxOrbit)
			}
			if len(p.Moons) < spec.MinMoons || len(p.Moons) > spec.MaxMoons {
				t.Errorf("seed %d: %s has %d moons, want %d..%d", seed, p.Class, len(p.Moons), spec.MinMoons, spec.MaxMoons)
			}

			for a, m := range p.Moons {
				if m.OrbitalRadius < MinMoonOrbit || m.OrbitalRadius >= MaxMoonOrbit {
					t.Errorf("seed %d: moon orbit %g out of range", seed, m.OrbitalRadius)
				}
				for b := a + 1; b < len(p.Moons); b++ {
					if d := math.Abs(m.OrbitalRadius - p.Moons[b].OrbitalRadius); d < MoonSpacing {
						t.Errorf("seed %d: moons %d and %d of planet %d only %g apart", seed, a, b, i, d)
					}
				}
				mr := moonMassRanges[m.Type]
				if m.Mass < mr.min || m.Mass >= mr.max {
					t.Errorf("seed %d: %s moon mass %g out of range", seed, m.Type, m.Mass)
				}
			}
		}
	}

	if generated < 100 {
		t.Errorf("Expected most seeds to generate, only %d of 300 did", generated)
	}
}

func specFor(t *testing.T, g *Generator, class PlanetClass) ClassSpec {
	t.Helper()
	for _, s := range g.Classes {
		if s.Class == class {
			return s
		}
	}
	t.Fatalf("no spec for class %s", class)
	return ClassSpec{}
}

func TestGenerateDeterministic(t *testing.T) {
	g := NewGenerator()
	ctx := context.Background()

	a, errA := g.Generate(ctx, seeded(42))
	b, errB := g.Generate(ctx, seeded(42))
	if (errA == nil) != (errB == nil) {
		t.Fatalf("Expected identical outcomes, got %v and %v", errA, errB)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Expected same seed to produce identical systems")
	}
}

func TestGenerateUnsatisfiable(t *testing.T) {
	g := NewGenerator()
	g.Classes = []ClassSpec{
		{Class: Volcanic, MinMass: 0.1, MaxMass: 0.5, MinOrbit: 0.1, MaxOrbit: 0.2},
	}
	g.MinPlanets, g.MaxPlanets = 10, 10
	g.MaxDraws = 500

	_, err := g.Generate(context.Background(), seeded(1))
	if !errors.Is(err, ErrUnsatisfiable) {
		t.Fatalf("Expected ErrUnsatisfiable, got %v", err)
	}
}

func TestGenerateCancelled(t *testing.T) {
	g := NewGenerator()
	g.Classes = []ClassSpec{
		{Class: Volcanic, MinMass: 0.1, MaxMass: 0.5, MinOrbit: 0.1, MaxOrbit: 0.2},
	}
	g.MinPlanets, g.MaxPlanets = 10, 10
	g.MaxDraws = 0

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Generate(ctx, seeded(1))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
}

func TestGenerateInvalidRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max int
		classes  []ClassSpec
	}{
		{"Negative minimum", -1, 3, DefaultClasses()},
		{"Inverted range", 5, 2, DefaultClasses()},
		{"No classes", 0, 3, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGenerator()
			g.MinPlanets, g.MaxPlanets = tt.min, tt.max
			g.Classes = tt.classes
			if _, err := g.Generate(context.Background(), seeded(3)); err == nil {
				t.Errorf("Expected error")
			}
		})
	}
}

func TestClassIndex(t *testing.T) {
	g := NewGenerator()
	rng := seeded(9)

	for k := 0; k < 100; k++ {
		if idx := g.classIndex(rng, 0, 10); idx != 0 && idx != 1 {
			t.Fatalf("Expected first planet to use class 0 or 1, got %d", idx)
		}
		if idx := g.classIndex(rng, 9, 10); idx != len(g.Classes)-1 {
			t.Fatalf("Expected last planet to use outermost class, got %d", idx)
		}
	}
}
