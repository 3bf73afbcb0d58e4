package assembly

import (
	"fmt"
	"math"
)

// Perturbation scales the allowable load to probe how fast safety factors
// move around the design point
type Perturbation struct {
	ID          string
	Description string
	Factor      float64 // multiplier on the allowable load
}

// Perturbation IDs of the reported sensitivity
const (
	PerturbationUp   = "up"
	PerturbationDown = "down"
)

var perturbations = []Perturbation{
	{
		ID:          PerturbationUp,
		Description: "allowable load +1%",
		Factor:      1.01,
	},
	{
		ID:          PerturbationDown,
		Description: "allowable load -1%",
		Factor:      0.99,
	},
}

// Perturbations returns a copy of the load steps used for the reported
// sensitivity
func Perturbations() []Perturbation {
	return append([]Perturbation(nil), perturbations...)
}

func perturbation(id string) Perturbation {
	for _, p := range perturbations {
		if p.ID == id {
			return p
		}
	}
	panic("assembly: no perturbation " + id)
}

// SensitivityDecimals is the rounding applied to sensitivity percentages
const SensitivityDecimals = 4

// SafetyFactorAt returns the safety factor of a member with capacity maxLoad
// under the given load
func SafetyFactorAt(maxLoad, load float64) float64 {
	return maxLoad / load
}

// Change returns the percentage drop in safety factor when the allowable load
// is multiplied by p.Factor
func (p Perturbation) Change(maxLoad, allowable float64) float64 {
	nominal := SafetyFactorAt(maxLoad, allowable)
	perturbed := SafetyFactorAt(maxLoad, allowable*p.Factor)
	return round((nominal-perturbed)/nominal*100, SensitivityDecimals)
}

func sensitivity(maxLoad, allowable float64) Sensitivity {
	return Sensitivity{
		Up:   perturbation(PerturbationUp).Change(maxLoad, allowable),
		Down: perturbation(PerturbationDown).Change(maxLoad, allowable),
	}
}

func round(x float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(x*p) / p
}

// SweepPoint is the state of the assembly at one load scale
type SweepPoint struct {
	Scale         float64 // multiplier on the allowable load
	Load          float64 // kips
	SafetyFactors [4]float64
	Governing     float64 // lowest safety factor
}

// Sweep evaluates every member's safety factor at each scale of the allowable
// load. Scales must be positive.
func Sweep(res *Result, scales []float64) ([]SweepPoint, error) {
	out := make([]SweepPoint, 0, len(scales))
	for _, s := range scales {
		if !(s > 0) || math.IsInf(s, 0) {
			return nil, fmt.Errorf("load scale must be positive, got %v", s)
		}
		pt := SweepPoint{Scale: s, Load: res.AllowableLoad * s, Governing: math.Inf(1)}
		for _, m := range Members {
			sf := SafetyFactorAt(res.Members[m].MaxLoad, pt.Load)
			pt.SafetyFactors[m] = sf
			pt.Governing = math.Min(pt.Governing, sf)
		}
		out = append(out, pt)
	}
	return out, nil
}

// LinearScales returns n evenly spaced scales from lo to hi inclusive
func LinearScales(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	step := (hi - lo) / float64(n-1)
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}
