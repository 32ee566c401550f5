package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"starmap/internal/galaxy"
	"starmap/internal/system"
)

// ErrCorrupt reports a payload that exists but cannot be turned back into a galaxy
var ErrCorrupt = errors.New("corrupt galaxy payload")

type galaxyRecord struct {
	Systems []systemRecord `json:"systems"`
}

type systemRecord struct {
	Position       Triple      `json:"position"`
	Origin         Triple      `json:"origin"`
	DriftDirection Triple      `json:"drift_direction"`
	Connections    []int       `json:"connections"`
	Name           uint64      `json:"name"`
	SystemData     *dataRecord `json:"system_data"`
	Explored       bool        `json:"explored"`
}

type dataRecord struct {
	StarMass float64        `json:"star_mass"`
	Planets  []planetRecord `json:"planets"`
}

type planetRecord struct {
	Mass            float64            `json:"mass"`
	OrbitCompletion float64            `json:"orbit_completion"`
	OrbitRadius     float64            `json:"orbit_radius"`
	OrbitNormal     Triple             `json:"orbit_normal"`
	Class           system.PlanetClass `json:"class"`
	Moons           []moonRecord       `json:"moons"`
}

type moonRecord struct {
	MoonType        system.MoonType `json:"moon_type"`
	Mass            float64         `json:"mass"`
	OrbitalRadius   float64         `json:"orbital_radius"`
	OrbitNormal     Triple          `json:"orbit_normal"`
	OrbitCompletion float64         `json:"orbit_completion"`
}

// Encode serializes g. Vectors lose precision to float32; everything else is exact.
func Encode(g *galaxy.Galaxy) ([]byte, error) {
	record := galaxyRecord{Systems: make([]systemRecord, 0, g.Len())}
	for i, s := range g.Systems {
		if s == nil {
			return nil, fmt.Errorf("system %d is missing", i)
		}
		record.Systems = append(record.Systems, toSystemRecord(s))
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to encode galaxy: %w", err)
	}
	return payload, nil
}

// Decode rebuilds a galaxy from payload. Every failure wraps ErrCorrupt.
func Decode(payload []byte) (*galaxy.Galaxy, error) {
	var record galaxyRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	g := &galaxy.Galaxy{Systems: make([]*galaxy.StarSystem, 0, len(record.Systems))}
	for i, r := range record.Systems {
		s, err := r.toStarSystem()
		if err != nil {
			return nil, fmt.Errorf("%w: system %d: %w", ErrCorrupt, i, err)
		}
		g.Systems = append(g.Systems, s)
	}

	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return g, nil
}

func toSystemRecord(s *galaxy.StarSystem) systemRecord {
	connections := s.Connections
	if connections == nil {
		connections = []int{}
	}

	record := systemRecord{
		Position:       EncodeVec(s.Position),
		Origin:         EncodeVec(s.Origin),
		DriftDirection: EncodeVec(s.DriftDirection),
		Connections:    connections,
		Name:           s.Name,
		Explored:       s.Explored,
	}
	if s.Data != nil {
		record.SystemData = toDataRecord(s.Data)
	}
	return record
}

func toDataRecord(d *system.Data) *dataRecord {
	record := &dataRecord{
		StarMass: d.StarMass,
		Planets:  make([]planetRecord, 0, len(d.Planets)),
	}
	for _, p := range d.Planets {
		planet := planetRecord{
			Mass:            p.Mass,
			OrbitCompletion: p.OrbitCompletion,
			OrbitRadius:     p.OrbitRadius,
			OrbitNormal:     EncodeVec(p.OrbitNormal),
			Class:           p.Class,
			Moons:           make([]moonRecord, 0, len(p.Moons)),
		}
		for _, m := range p.Moons {
			planet.Moons = append(planet.Moons, moonRecord{
				MoonType:        m.Type,
				Mass:            m.Mass,
				OrbitalRadius:   m.OrbitalRadius,
				OrbitNormal:     EncodeVec(m.OrbitNormal),
				OrbitCompletion: m.OrbitCompletion,
			})
		}
		record.Planets = append(record.Planets, planet)
	}
	return record
}

func (r systemRecord) toStarSystem() (*galaxy.StarSystem, error) {
	connections := r.Connections
	if connections == nil {
		connections = []int{}
	}

	s := &galaxy.StarSystem{
		Position:       DecodeVec(r.Position),
		Origin:         DecodeVec(r.Origin),
		DriftDirection: DecodeVec(r.DriftDirection),
		Connections:    connections,
		Name:           r.Name,
		Explored:       r.Explored,
	}

	if r.SystemData != nil {
		data, err := r.SystemData.toData()
		if err != nil {
			return nil, err
		}
		s.Data = data
	} else if r.Explored {
		return nil, fmt.Errorf("explored without system data")
	}
	return s, nil
}

func (r *dataRecord) toData() (*system.Data, error) {
	d := &system.Data{
		StarMass: r.StarMass,
		Planets:  make([]system.Planet, 0, len(r.Planets)),
	}
	for i, p := range r.Planets {
		if !validPhase(p.OrbitCompletion) {
			return nil, fmt.Errorf("planet %d orbit completion %g outside [0,1)", i, p.OrbitCompletion)
		}
		if !validRadius(p.OrbitRadius) {
			return nil, fmt.Errorf("planet %d orbit radius %g must be positive", i, p.OrbitRadius)
		}
		planet := system.Planet{
			Mass:            p.Mass,
			OrbitCompletion: p.OrbitCompletion,
			OrbitRadius:     p.OrbitRadius,
			OrbitNormal:     DecodeVec(p.OrbitNormal),
			Class:           p.Class,
			Moons:           make([]system.Moon, 0, len(p.Moons)),
		}
		for j, m := range p.Moons {
			if !validPhase(m.OrbitCompletion) {
				return nil, fmt.Errorf("planet %d moon %d orbit completion %g outside [0,1)", i, j, m.OrbitCompletion)
			}
			if !validRadius(m.OrbitalRadius) {
				return nil, fmt.Errorf("planet %d moon %d orbital radius %g must be positive", i, j, m.OrbitalRadius)
			}
			planet.Moons = append(planet.Moons, system.Moon{
				Type:            m.MoonType,
				Mass:            m.Mass,
				OrbitalRadius:   m.OrbitalRadius,
				OrbitNormal:     DecodeVec(m.OrbitNormal),
				OrbitCompletion: m.OrbitCompletion,
			})
		}
		d.Planets = append(d.Planets, planet)
	}
	return d, nil
}

func validPhase(completion float64) bool {
	return !math.IsNaN(completion) && completion >= 0 && completion < 1
}

// validRadius rejects radii that Tick could not divide by
func validRadius(radius float64) bool {
	return radius > 0 && !math.IsInf(radius, 1)
}
