package assembly

import (
	"fmt"
	"math"
	"strings"
)

// Member identifies one of the four members of the assembly.
//
// ABCD is the cable wrapped in a diamond around the strut AC. EB and FD are
// the hangers pulling the diamond at B and D.
type Member int

const (
	ABCD Member = iota
	AC
	EB
	FD
)

// Members lists every member in declared order
var Members = []Member{ABCD, AC, EB, FD}

var memberNames = [...]string{"ABCD", "AC", "EB", "FD"}

func (m Member) String() string {
	if m < ABCD || m > FD {
		return fmt.Sprintf("Member(%d)", int(m))
	}
	return memberNames[m]
}

// ParseMember maps a member name (case-insensitive) to a Member
func ParseMember(name string) (Member, error) {
	for _, m := range Members {
		if strings.EqualFold(strings.TrimSpace(name), m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown member %q (want ABCD, AC, EB or FD)", name)
}

// MemberSpec is the user input for a single member
type MemberSpec struct {
	Length   float64 `json:"length" yaml:"length"`     // in
	Diameter float64 `json:"diameter" yaml:"diameter"` // in
	Material string  `json:"material" yaml:"material"`
}

// Config is the full input of a calculation. Build it once and pass it by
// value; Evaluate never mutates it.
type Config struct {
	SafetyFactor float64
	Members      [4]MemberSpec
}

// Spec returns the input of member m
func (c Config) Spec(m Member) MemberSpec {
	return c.Members[m]
}

// With returns a copy of c with the input of member m replaced
func (c Config) With(m Member, s MemberSpec) Config {
	c.Members[m] = s
	return c
}

// Validate checks the configuration before any geometry is computed
func (c Config) Validate() error {
	if !(c.SafetyFactor > 0) || math.IsInf(c.SafetyFactor, 0) {
		return &ConfigError{Field: "safety_factor", msg: fmt.Sprintf("safety factor must be positive, got %v", c.SafetyFactor)}
	}
	for _, m := range Members {
		s := c.Members[m]
		if !(s.Diameter > 0) || math.IsInf(s.Diameter, 0) {
			return &ConfigError{Field: m.String() + ".diameter", msg: fmt.Sprintf("%s diameter must be positive, got %v", m, s.Diameter)}
		}
		if s.Length < 0 || math.IsNaN(s.Length) || math.IsInf(s.Length, 0) {
			return &ConfigError{Field: m.String() + ".length", msg: fmt.Sprintf("%s length must not be negative, got %v", m, s.Length)}
		}
		if strings.TrimSpace(s.Material) == "" {
			return &ConfigError{Field: m.String() + ".material", msg: fmt.Sprintf("%s material is not set", m)}
		}
	}
	return checkGeometry(c.Members[ABCD].Length, c.Members[AC].Length)
}

// ConfigError represents an invalid or physically unrealizable configuration
type ConfigError struct {
	Field string
	msg   string
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.msg
}

// Point is a plot coordinate (in)
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sensitivity is the percentage drop in safety factor when the allowable load
// is raised (Up) or lowered (Down) by the perturbation step
type Sensitivity struct {
	Up   float64 `json:"up"`
	Down float64 `json:"down"`
}

// MemberResult holds every computed property of one member
type MemberResult struct {
	Member   Member  `json:"member"`
	Length   float64 `json:"length"`   // in
	Diameter float64 `json:"diameter"` // in
	Material string  `json:"material"`

	Strength     float64 `json:"strength"` // ksi
	StrengthKind string  `json:"strength_kind"`
	Fraction     float64 `json:"fraction"`  // Q per unit member force
	Area         float64 `json:"area"`      // in²
	MaxForce     float64 `json:"max_force"` // kips
	Weight       float64 `json:"weight"`    // lb
	Cost         float64 `json:"cost"`      // $

	MaxLoad      float64     `json:"max_load"` // kips of Q
	SafetyFactor float64     `json:"safety_factor"`
	Sensitivity  Sensitivity `json:"sensitivity"`
	Governs      bool        `json:"governs"`

	Points []Point `json:"points"`
}

// Result is the outcome of a calculation
type Result struct {
	Config   Config
	Geometry Geometry

	Members [4]MemberResult

	GoverningMaxLoad float64  // kips
	Governing        []Member // members tied at the lowest max load, declared order
	AllowableLoad    float64  // kips
	SafetyFactor     float64  // target

	TotalWeight float64 // lb
	TotalCost   float64 // $
}

// Member returns the result for member m
func (r *Result) Member(m Member) MemberResult {
	return r.Members[m]
}

// GoverningNames returns the governing member names
func (r *Result) GoverningNames() []string {
	names := make([]string, len(r.Governing))
	for i, m := range r.Governing {
		names[i] = m.String()
	}
	return names
}
