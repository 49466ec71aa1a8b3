package geom

import "math"

const (
	// ClampEpsilons is how many machine epsilons an out-of-domain acos
	// argument is pulled back inside [-1, 1]. Empirically chosen and tunable.
	ClampEpsilons = 4

	// DegenerateEpsilon is the edge length (and relative collinearity) below
	// which a triangle is treated as degenerate.
	DegenerateEpsilon = 1e-12
)

// clampMargin is the distance from ±1 an out-of-domain argument is moved to.
const clampMargin = ClampEpsilons * 2.220446049250313e-16

// ClampedAcos returns acos(x). Arguments outside [-1, 1] are clamped to a few
// machine epsilons inside the boundary instead of producing NaN; clamped
// reports whether that happened.
func ClampedAcos(x float64) (angle float64, clamped bool) {
	switch {
	case x > 1:
		x = 1 - clampMargin
		clamped = true
	case x < -1:
		x = -1 + clampMargin
		clamped = true
	}
	return math.Acos(x), clamped
}

// CosineAngle returns the angle between the sides adj1 and adj2 of a triangle
// whose third side is opp.
func CosineAngle(adj1, adj2, opp float64) (angle float64, clamped bool) {
	return ClampedAcos((adj1*adj1 + adj2*adj2 - opp*opp) / (2 * adj1 * adj2))
}

// CosineSide returns the side opposite the angle gamma enclosed by sides a and b.
func CosineSide(a, b, gamma float64) float64 {
	return math.Sqrt(math.Max(0, a*a+b*b-2*a*b*math.Cos(gamma)))
}

// Known is the geodesic state of an already reached edge endpoint: distance
// to the source and polar angle around it.
type Known struct {
	Dist  float64
	Angle float64
}

// Unfolding is the estimate for the third vertex of a triangle.
type Unfolding struct {
	Distance   float64
	Angle      float64
	Clamps     int  // out-of-domain acos arguments clamped
	Fallback   bool // straight endpoint+edge estimate was used
	Degenerate bool // zero-length edge or zero-area triangle
}

// Unfold estimates the geodesic distance at C of the triangle ABC, given the
// distances already known at A and B. ab, ac and bc are the triangle's edge
// lengths. The virtual source is reconstructed in the plane from the known
// distances and the triangle is unfolded onto the opposite side of AB.
//
// When the unfolded source does not see C through the segment AB (the angle
// sum at A or B exceeds a straight angle) or the triangle is degenerate, the
// straight estimate min(dA+|AC|, dB+|BC|) is returned instead.
func Unfold(a, b Known, ab, ac, bc float64) Unfolding {
	straight := math.Min(a.Dist+ac, b.Dist+bc)
	u := Unfolding{Angle: unfoldAngle(a, b, ab, ac, bc)}

	if ab <= DegenerateEpsilon || ac <= DegenerateEpsilon || bc <= DegenerateEpsilon ||
		ac+bc-ab <= DegenerateEpsilon*ab {
		u.Distance = straight
		u.Fallback = true
		u.Degenerate = true
		return u
	}

	// A or B is the source itself.
	if a.Dist <= DegenerateEpsilon {
		u.Distance = math.Min(ac, straight)
		return u
	}
	if b.Dist <= DegenerateEpsilon {
		u.Distance = math.Min(bc, straight)
		return u
	}

	alphaS, c1 := CosineAngle(a.Dist, ab, b.Dist)
	alphaC, c2 := CosineAngle(ac, ab, bc)
	betaS, c3 := CosineAngle(b.Dist, ab, a.Dist)
	betaC, c4 := CosineAngle(bc, ab, ac)
	for _, c := range [...]bool{c1, c2, c3, c4} {
		if c {
			u.Clamps++
		}
	}

	if alphaS+alphaC > math.Pi || betaS+betaC > math.Pi {
		u.Distance = straight
		u.Fallback = true
		return u
	}

	u.Distance = math.Min(CosineSide(a.Dist, ac, alphaS+alphaC), straight)
	return u
}

// unfoldAngle places A and B at their polar coordinates around the source,
// lays the triangle onto the far side of AB and returns C's polar angle.
func unfoldAngle(a, b Known, ab, ac, bc float64) float64 {
	ax, ay := a.Dist*math.Cos(a.Angle), a.Dist*math.Sin(a.Angle)
	bx, by := b.Dist*math.Cos(b.Angle), b.Dist*math.Sin(b.Angle)
	ux, uy := bx-ax, by-ay
	l := math.Hypot(ux, uy)
	if l <= DegenerateEpsilon || ab <= DegenerateEpsilon {
		if a.Dist <= b.Dist {
			return WrapAngle(a.Angle)
		}
		return WrapAngle(b.Angle)
	}
	ux, uy = ux/l, uy/l

	x := (ac*ac - bc*bc + ab*ab) / (2 * ab)
	h := math.Sqrt(math.Max(0, ac*ac-x*x))
	s := l / ab

	// The source sits at the origin; C goes on the other side of AB.
	side := ux*(-ay) - uy*(-ax)
	if side > 0 {
		h = -h
	}
	cx := ax + ux*x*s - uy*h*s
	cy := ay + uy*x*s + ux*h*s
	return WrapAngle(math.Atan2(cy, cx))
}
