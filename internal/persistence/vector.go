package persistence

import (
	"starmap/internal/vmath"
)

// Triple is the on-disk form of a vector: three single-precision components
type Triple [3]float32

func EncodeVec(v vmath.Vec3) Triple {
	return Triple{float32(v.X), float32(v.Y), float32(v.Z)}
}

func DecodeVec(t Triple) vmath.Vec3 {
	return vmath.Vec3{X: float64(t[0]), Y: float64(t[1]), Z: float64(t[2])}
}
