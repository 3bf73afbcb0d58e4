package assembly

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gotruss/internal/materials"
)

// TieTolerance is the relative difference below which two max loads are
// treated as tied for first failure
const TieTolerance = 1e-9

// MaterialLookup resolves a material name. *materials.Catalog implements it.
type MaterialLookup interface {
	Lookup(name string) (materials.Material, error)
}

// Evaluate runs the full calculation: geometry, member capacities, governing
// members, allowable load, safety factors and sensitivities.
func Evaluate(cfg Config, lookup MaterialLookup) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g, err := ResolveGeometry(cfg.Members[ABCD].Length, cfg.Members[AC].Length)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Config:       cfg,
		Geometry:     g,
		SafetyFactor: cfg.SafetyFactor,
	}

	// Member capacities
	for _, m := range Members {
		spec := cfg.Members[m]
		mat, err := lookup.Lookup(spec.Material)
		if err != nil {
			return nil, fmt.Errorf("member %s: %w", m, err)
		}
		res.Members[m] = capacity(m, spec, mat, g)
		res.TotalWeight += res.Members[m].Weight
		res.TotalCost += res.Members[m].Cost
	}

	// First failure
	res.GoverningMaxLoad = math.Inf(1)
	for _, m := range Members {
		res.GoverningMaxLoad = math.Min(res.GoverningMaxLoad, res.Members[m].MaxLoad)
	}
	for _, m := range Members {
		if tied(res.Members[m].MaxLoad, res.GoverningMaxLoad) {
			res.Members[m].Governs = true
			res.Governing = append(res.Governing, m)
		}
	}
	res.AllowableLoad = res.GoverningMaxLoad / cfg.SafetyFactor

	// Safety factors at the allowable load
	for _, m := range Members {
		mr := &res.Members[m]
		mr.SafetyFactor = SafetyFactorAt(mr.MaxLoad, res.AllowableLoad)
		mr.Sensitivity = sensitivity(mr.MaxLoad, res.AllowableLoad)
	}

	if err := res.checkFinite(); err != nil {
		return nil, err
	}
	return res, nil
}

func capacity(m Member, spec MemberSpec, mat materials.Material, g Geometry) MemberResult {
	mr := MemberResult{
		Member:       m,
		Length:       spec.Length,
		Diameter:     spec.Diameter,
		Material:     mat.Name,
		Strength:     mat.Strength,
		StrengthKind: string(mat.Basis),
		Fraction:     g.Fraction(m),
		Area:         materials.CrossSectionArea(spec.Diameter),
	}
	mr.MaxForce = mr.Strength * mr.Area
	mr.MaxLoad = mr.Fraction * mr.MaxForce
	mr.Weight = mr.Length * mr.Area * mat.Density
	mr.Cost = mr.Weight * mat.CostPerPound
	mr.Points = g.Points(m, spec.Length)
	return mr
}

func tied(a, lowest float64) bool {
	return a == lowest || math.Abs(a-lowest) <= TieTolerance*math.Abs(lowest)
}

func (r *Result) checkFinite() error {
	check := func(name string, v float64) error {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("calculation produced a non-numeric %s (%v)", name, v)
		}
		return nil
	}
	if err := check("allowable load", r.AllowableLoad); err != nil {
		return err
	}
	if !(r.AllowableLoad > 0) {
		return fmt.Errorf("calculation produced a non-positive allowable load (%v)", r.AllowableLoad)
	}
	for _, m := range Members {
		mr := r.Members[m]
		for _, f := range []struct {
			name string
			v    float64
		}{
			{"max load", mr.MaxLoad},
			{"safety factor", mr.SafetyFactor},
			{"sensitivity", mr.Sensitivity.Up},
			{"sensitivity", mr.Sensitivity.Down},
		} {
			if err := check(m.String()+" "+f.name, f.v); err != nil {
				return err
			}
		}
	}
	return nil
}
