// Package orbit converts orbital planes into positions and draws random orbit normals.
//
// An orbit here is a circle centred on its parent body. The plane of the
// circle is given by a unit normal, and a body's place on it by a phase
// angle in radians.
package orbit

import (
	"math"
	"math/rand/v2"

	"starmap/internal/vmath"
)

const (
	// PlanetTiltDegrees bounds how far a planet's orbit normal deviates from ReferenceAxis
	PlanetTiltDegrees = 20.0
	// MoonTiltDegrees bounds how far a moon's orbit normal deviates from ReferenceAxis
	MoonTiltDegrees = 20.0
)

// ReferenceAxis is the normal every generated orbit is tilted away from
var ReferenceAxis = vmath.Vec3{X: -1, Y: 0, Z: 0}

// Elements derives inclination and longitude of the ascending node from an orbit normal
func Elements(normal vmath.Vec3) (inclination, node float64) {
	n := normal.Normalize()
	z := math.Max(-1, math.Min(1, n.Z))
	inclination = math.Acos(z)
	node = math.Atan2(n.X, -n.Y)
	return inclination, node
}

// Position returns the point at phase radians along a circle of the given
// radius, oriented by the inclination and node derived from normal.
func Position(normal vmath.Vec3, radius, phase float64) vmath.Vec3 {
	inc, node := Elements(normal)
	w := node - 3*math.Pi/2

	cosP, sinP := math.Cos(phase), math.Sin(phase)
	cosW, sinW := math.Cos(w), math.Sin(w)
	cosI := math.Cos(inc)

	return vmath.Vec3{
		X: radius * (cosP*cosW - cosI*sinP*sinW),
		Y: radius * (cosP*sinW + cosI*sinP*cosW),
		Z: radius * sinP * math.Sin(inc),
	}
}

// PlaneNormal returns the normal of the plane Position actually traces for normal.
// The node shift in Position turns the plane a quarter turn about the z axis,
// so the two agree only for normals along z.
func PlaneNormal(normal vmath.Vec3) vmath.Vec3 {
	n := normal.Normalize()
	return vmath.Vec3{X: -n.Y, Y: n.X, Z: n.Z}
}

// PositionAt is Position with the phase given as orbit completion in [0,1)
func PositionAt(normal vmath.Vec3, radius, completion float64) vmath.Vec3 {
	return Position(normal, radius, completion*2*math.Pi)
}

// Rotate turns v about a unit axis by angle radians (Rodrigues' formula)
func Rotate(v, axis vmath.Vec3, angle float64) vmath.Vec3 {
	cosA, sinA := math.Cos(angle), math.Sin(angle)
	return v.Scale(cosA).
		Add(axis.Cross(v).Scale(sinA)).
		Add(axis.Scale(axis.Dot(v) * (1 - cosA)))
}

// RandomAxis draws a unit vector uniformly distributed over the sphere
func RandomAxis(rng *rand.Rand) vmath.Vec3 {
	v := vmath.Vec3{X: rng.NormFloat64(), Y: rng.NormFloat64(), Z: rng.NormFloat64()}
	if v.LengthSq() == 0 {
		return vmath.Vec3{Z: 1}
	}
	return v.Normalize()
}

// RandomNormal tilts reference about a random axis by up to maxDegrees either way
func RandomNormal(rng *rand.Rand, maxDegrees float64, reference vmath.Vec3) vmath.Vec3 {
	maxRadians := maxDegrees * math.Pi / 180
	axis := RandomAxis(rng)
	tilt := (rng.Float64()*2 - 1) * maxRadians
	return Rotate(reference, axis, tilt).Normalize()
}
