package assembly

import (
	"fmt"
	"math"
)

// HangerExtension is how far EB and FD are drawn past the diamond, as a
// fraction of the diamond half-height, when their length is not given.
const HangerExtension = 0.25

// Geometry holds the diamond dimensions and the force fractions they imply
type Geometry struct {
	HalfLength float64 // half of AC (in)
	Side       float64 // one side of the diamond, ABCD/4 (in)
	Height     float64 // half the diamond height (in)

	FractionABCD float64 // Q per unit F_AB
	FractionAC   float64 // Q per unit F_AC
}

// checkGeometry rejects lengths for which the diamond cannot close.
// The height sqrt(side² - half²) must be real and non-zero, so AC < ABCD/2.
func checkGeometry(abcdLength, acLength float64) error {
	if !(abcdLength > 0) || math.IsInf(abcdLength, 0) {
		return &ConfigError{Field: "ABCD.length", msg: fmt.Sprintf("ABCD length must be positive, got %v", abcdLength)}
	}
	if !(acLength > 0) || math.IsInf(acLength, 0) {
		return &ConfigError{Field: "AC.length", msg: fmt.Sprintf("AC length must be positive, got %v", acLength)}
	}

	half := acLength / 2
	side := abcdLength / 4
	if half >= side || side*side-half*half <= 0 {
		return &ConfigError{
			Field: "AC.length",
			msg: fmt.Sprintf("AC length %g in must be less than half of ABCD length %g in (limit %g in): the diamond cannot close",
				acLength, abcdLength, abcdLength/2),
		}
	}
	return nil
}

// ResolveGeometry computes the diamond dimensions and force fractions from the
// ABCD and AC lengths.
//
// Each side of the diamond carries F_AB. Vertical equilibrium at B gives
// Q = 2·F_AB·(H/side) and horizontal equilibrium at A gives F_AC = 2·F_AB·(h/side),
// so Q = (2H/side)·F_AB = (H/h)·F_AC. The fractions are these multipliers.
func ResolveGeometry(abcdLength, acLength float64) (Geometry, error) {
	if err := checkGeometry(abcdLength, acLength); err != nil {
		return Geometry{}, err
	}

	g := Geometry{
		HalfLength: acLength / 2,
		Side:       abcdLength / 4,
	}
	g.Height = math.Sqrt(g.Side*g.Side - g.HalfLength*g.HalfLength)
	g.FractionABCD = 2 * g.Height / g.Side
	g.FractionAC = g.Height / g.HalfLength
	return g, nil
}

// Fraction returns the force fraction of member m. The hangers carry Q directly.
func (g Geometry) Fraction(m Member) float64 {
	switch m {
	case ABCD:
		return g.FractionABCD
	case AC:
		return g.FractionAC
	default:
		return 1
	}
}

// Points returns the plot polyline of member m. length is the configured
// member length; for the hangers it sets the far end of the line, falling back
// to HangerExtension past the diamond when zero.
func (g Geometry) Points(m Member, length float64) []Point {
	h, H := g.HalfLength, g.Height
	top := H * (1 + HangerExtension)
	if length > 0 {
		top = length
	}

	switch m {
	case ABCD:
		return []Point{{0, 0}, {h, H}, {2 * h, 0}, {h, -H}, {0, 0}}
	case AC:
		return []Point{{0, 0}, {2 * h, 0}}
	case EB:
		return []Point{{h, H}, {h, top}}
	case FD:
		return []Point{{h, -H}, {h, -top}}
	}
	return nil
}
