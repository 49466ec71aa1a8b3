package geom

import "math"

// WrapAngle maps an angle in radians into (-π, π].
func WrapAngle(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return a
	}
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// SignedAngle returns the angle from ref to v, measured counter-clockwise
// about normal, in (-π, π]. Zero-length inputs yield 0.
func SignedAngle(v, ref, normal Vec3) float64 {
	if v.Len() == 0 || ref.Len() == 0 {
		return 0
	}
	cross := ref.Cross(v)
	sin := cross.Len()
	if cross.Dot(normal) < 0 {
		sin = -sin
	}
	return WrapAngle(math.Atan2(sin, ref.Dot(v)))
}
