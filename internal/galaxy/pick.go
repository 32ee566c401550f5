package galaxy

import (
	"math"

	"starmap/internal/vmath"
)

// PickRadius is the hit radius of a system when picking with a ray
const PickRadius = 2.0

// Pick returns the index of the system nearest to origin whose sphere of the
// given radius the ray from origin along dir passes through.
func (g *Galaxy) Pick(origin, dir vmath.Vec3, radius float64) (int, bool) {
	dir = dir.Normalize()
	closest, best := -1, math.MaxFloat64

	for i, s := range g.Systems {
		if !raySphere(origin, dir, s.Position, radius) {
			continue
		}
		if d := vmath.Distance(origin, s.Position); d < best {
			closest, best = i, d
		}
	}
	return closest, closest >= 0
}

func raySphere(origin, dir, centre vmath.Vec3, radius float64) bool {
	l := centre.Sub(origin)
	tca := l.Dot(dir)
	if tca < 0 {
		return false
	}
	d2 := l.LengthSq() - tca*tca
	return d2 <= radius*radius
}
