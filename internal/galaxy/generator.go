package galaxy

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"slices"
	"sort"

	"github.com/cespare/xxhash/v2"

	"starmap/internal/shared/errors"
	"starmap/internal/system"
	"starmap/internal/vmath"
)

// Scanner produces the contents of one star system
type Scanner interface {
	Generate(ctx context.Context) (*system.Data, error)
}

type Params struct {
	Count                int
	ConnectionsPerSystem int
	Jitter               float64
	Radius               float64
}

func (p Params) validate() error {
	if p.Count < 0 {
		return errors.Validationf("system count must not be negative, got %d", p.Count)
	}
	if p.ConnectionsPerSystem < 0 {
		return errors.Validationf("connections per system must not be negative, got %d", p.ConnectionsPerSystem)
	}
	if p.Jitter < 0 {
		return errors.Validationf("jitter must not be negative, got %g", p.Jitter)
	}
	if p.Radius <= 0 {
		return errors.Validationf("radius must be positive, got %g", p.Radius)
	}
	return nil
}

type Generator struct {
	scanner   Scanner
	rng       *rand.Rand
	eagerScan bool
	logger    *slog.Logger
}

// NewGenerator returns a galaxy generator. With eagerScan every system is
// scanned during generation; otherwise systems are scanned on first selection.
func NewGenerator(scanner Scanner, rng *rand.Rand, eagerScan bool, logger *slog.Logger) *Generator {
	logger.Debug("Initializing galaxy generator", "eager_scan", eagerScan)

	return &Generator{
		scanner:   scanner,
		rng:       rng,
		eagerScan: eagerScan,
		logger:    logger,
	}
}

// Generate places p.Count systems on a jittered Fibonacci sphere of radius
// p.Radius and links each to its p.ConnectionsPerSystem nearest neighbours.
func (g *Generator) Generate(ctx context.Context, p Params) (*Galaxy, error) {
	logger := g.logger.With(
		"component", "galaxy_generator",
		"operation", "generate",
		"count", p.Count,
		"connections_per_system", p.ConnectionsPerSystem,
	)
	logger.Debug("Generating galaxy")

	if err := p.validate(); err != nil {
		return nil, err
	}

	galaxy := &Galaxy{Systems: make([]*StarSystem, 0, p.Count)}
	for i, pos := range g.place(p) {
		galaxy.Systems = append(galaxy.Systems, &StarSystem{
			Position:    pos,
			Origin:      pos,
			Connections: []int{},
			Name:        SystemName(i),
		})
	}

	connect(galaxy, p.ConnectionsPerSystem)

	if g.eagerScan {
		for i, s := range galaxy.Systems {
			data, err := g.scanner.Generate(ctx)
			if err != nil {
				logger.Error("Failed to scan system", "index", i, "error", err)
				return nil, fmt.Errorf("failed to scan system %d: %w", i, err)
			}
			s.Data = data
			s.Explored = false
		}
	}

	logger.Info("Galaxy generated",
		"systems", galaxy.Len(),
		"scanned", galaxy.ScannedCount(),
	)
	return galaxy, nil
}

// place returns the jittered sphere positions in generation order
func (g *Generator) place(p Params) []vmath.Vec3 {
	positions := make([]vmath.Vec3, 0, p.Count)
	if p.Count == 0 {
		return positions
	}

	offset := 2.0 / float64(p.Count)
	increment := math.Pi * (3 - math.Sqrt(5))

	for i := 0; i < p.Count; i++ {
		y := float64(i)*offset - 1 + offset/2
		r := math.Sqrt(1 - y*y)
		phi := float64(i) * increment

		base := vmath.Vec3{X: math.Cos(phi) * r, Y: y, Z: math.Sin(phi) * r}
		jittered := base.Add(vmath.Vec3{
			X: g.jitter(p.Jitter),
			Y: g.jitter(p.Jitter),
			Z: g.jitter(p.Jitter),
		})
		if jittered.LengthSq() == 0 {
			jittered = base
		}

		positions = append(positions, jittered.Normalize().Scale(p.Radius))
	}
	return positions
}

func (g *Generator) jitter(amplitude float64) float64 {
	if amplitude == 0 {
		return 0
	}
	return (g.rng.Float64()*2 - 1) * amplitude
}

type neighbour struct {
	index    int
	distance float64
}

// connect links every system to its k nearest others. Edges are symmetric and
// never duplicated, so a system may end up with more than k connections.
func connect(galaxy *Galaxy, k int) {
	systems := galaxy.Systems
	for i, s := range systems {
		neighbours := make([]neighbour, 0, len(systems)-1)
		for j, other := range systems {
			if j == i {
				continue
			}
			neighbours = append(neighbours, neighbour{index: j, distance: vmath.Distance(s.Position, other.Position)})
		}

		sort.SliceStable(neighbours, func(a, b int) bool {
			return neighbours[a].distance < neighbours[b].distance
		})

		for _, n := range neighbours[:min(k, len(neighbours))] {
			link(systems, i, n.index)
		}
	}
}

func link(systems []*StarSystem, a, b int) {
	if !slices.Contains(systems[a].Connections, b) {
		systems[a].Connections = append(systems[a].Connections, b)
	}
	if !slices.Contains(systems[b].Connections, a) {
		systems[b].Connections = append(systems[b].Connections, a)
	}
}

// SystemName derives the display identifier of the i-th generated system
func SystemName(i int) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(i))
	return xxhash.Sum64(buf[:]) & 0xFFFFFFFF
}
