package system

import (
	"fmt"

	"starmap/internal/vmath"
)

type PlanetClass int

const (
	Terran PlanetClass = iota
	GasGiant
	IceGiant
	Volcanic
	Desert
	OceanWorld
	MetalWorld
)

var planetClassNames = map[PlanetClass]string{
	Terran:     "Terran",
	GasGiant:   "GasGiant",
	IceGiant:   "IceGiant",
	Volcanic:   "Volcanic",
	Desert:     "Desert",
	OceanWorld: "OceanWorld",
	MetalWorld: "MetalWorld",
}

func (c PlanetClass) String() string {
	if name, ok := planetClassNames[c]; ok {
		return name
	}
	return fmt.Sprintf("PlanetClass(%d)", int(c))
}

func (c PlanetClass) MarshalText() ([]byte, error) {
	if _, ok := planetClassNames[c]; !ok {
		return nil, fmt.Errorf("unknown planet class %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *PlanetClass) UnmarshalText(text []byte) error {
	parsed, err := ParsePlanetClass(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func ParsePlanetClass(name string) (PlanetClass, error) {
	for class, n := range planetClassNames {
		if n == name {
			return class, nil
		}
	}
	return 0, fmt.Errorf("unknown planet class %q", name)
}

type MoonType int

const (
	Asteroid MoonType = iota
	RoundDusty
	SubsurfaceOcean
)

var moonTypeNames = map[MoonType]string{
	Asteroid:        "Asteroid",
	RoundDusty:      "RoundDusty",
	SubsurfaceOcean: "SubsurfaceOcean",
}

func (m MoonType) String() string {
	if name, ok := moonTypeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("MoonType(%d)", int(m))
}

func (m MoonType) MarshalText() ([]byte, error) {
	if _, ok := moonTypeNames[m]; !ok {
		return nil, fmt.Errorf("unknown moon type %d", int(m))
	}
	return []byte(m.String()), nil
}

func (m *MoonType) UnmarshalText(text []byte) error {
	parsed, err := ParseMoonType(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func ParseMoonType(name string) (MoonType, error) {
	for mt, n := range moonTypeNames {
		if n == name {
			return mt, nil
		}
	}
	return 0, fmt.Errorf("unknown moon type %q", name)
}

// Data is the generated content of one star system.
// Planets are ordered by ascending OrbitRadius. Only the phase fields change after generation.
type Data struct {
	StarMass float64  `json:"star_mass"`
	Planets  []Planet `json:"planets"`
}

type Planet struct {
	Mass float64 `json:"mass"`
	// OrbitCompletion is the phase along the orbit, kept in [0,1)
	OrbitCompletion float64     `json:"orbit_completion"`
	OrbitRadius     float64     `json:"orbit_radius"`
	OrbitNormal     vmath.Vec3  `json:"orbit_normal"`
	Class           PlanetClass `json:"class"`
	Moons           []Moon      `json:"moons"`
}

type Moon struct {
	Type            MoonType   `json:"moon_type"`
	Mass            float64    `json:"mass"`
	OrbitalRadius   float64    `json:"orbital_radius"`
	OrbitNormal     vmath.Vec3 `json:"orbit_normal"`
	OrbitCompletion float64    `json:"orbit_completion"`
}

// MoonCount returns the number of moons across all planets
func (d *Data) MoonCount() int {
	count := 0
	for _, p := range d.Planets {
		count += len(p.Moons)
	}
	return count
}

// Clone returns a deep copy of d
func (d *Data) Clone() *Data {
	if d == nil {
		return nil
	}
	out := &Data{StarMass: d.StarMass, Planets: make([]Planet, len(d.Planets))}
	for i, p := range d.Planets {
		p.Moons = append([]Moon(nil), p.Moons...)
		out.Planets[i] = p
	}
	return out
}
