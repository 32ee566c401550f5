package system

const (
	MinStarMass = 3.28875e29
	MaxStarMass = 8.77e31

	MinMoonOrbit = 0.01
	MaxMoonOrbit = 0.05

	// PlanetSpacing is the minimum distance in AU between two planet orbits in one system
	PlanetSpacing = 0.05
	// MoonSpacing is the minimum distance in AU between two moon orbits around one planet
	MoonSpacing = 0.001
)

// ClassSpec holds the generation ranges for one planet class.
// Masses are in Earth masses, orbits in AU, moon counts inclusive.
type ClassSpec struct {
	Class    PlanetClass
	MinMass  float64
	MaxMass  float64
	MinOrbit float64
	MaxOrbit float64
	MinMoons int
	MaxMoons int
}

// DefaultClasses lists the planet classes from the innermost to the outermost preferred orbit
func DefaultClasses() []ClassSpec {
	return []ClassSpec{
		{Class: Volcanic, MinMass: 0.1, MaxMass: 0.5, MinOrbit: 0.1, MaxOrbit: 0.2, MinMoons: 0, MaxMoons: 1},
		{Class: MetalWorld, MinMass: 0.1, MaxMass: 1.0, MinOrbit: 0.2, MaxOrbit: 0.4, MinMoons: 0, MaxMoons: 1},
		{Class: Terran, MinMass: 0.5, MaxMass: 5.0, MinOrbit: 0.3, MaxOrbit: 0.5, MinMoons: 0, MaxMoons: 2},
		{Class: Desert, MinMass: 0.5, MaxMass: 3.0, MinOrbit: 0.2, MaxOrbit: 0.5, MinMoons: 0, MaxMoons: 1},
		{Class: OceanWorld, MinMass: 0.8, MaxMass: 6.0, MinOrbit: 0.4, MaxOrbit: 0.6, MinMoons: 0, MaxMoons: 2},
		{Class: GasGiant, MinMass: 50, MaxMass: 300, MinOrbit: 1.0, MaxOrbit: 1.7, MinMoons: 5, MaxMoons: 14},
		{Class: IceGiant, MinMass: 10, MaxMass: 50, MinOrbit: 1.4, MaxOrbit: 2.0, MinMoons: 3, MaxMoons: 9},
	}
}

type massRange struct {
	min, max float64
}

var moonMassRanges = map[MoonType]massRange{
	Asteroid:        {0.00001, 0.0001},
	RoundDusty:      {0.0001, 0.01},
	SubsurfaceOcean: {0.005, 0.05},
}

var moonTypes = []MoonType{Asteroid, RoundDusty, SubsurfaceOcean}
