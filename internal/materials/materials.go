package materials

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Builtin material constants from the hand calculation

const (
	// Ultimate tensile strengths (ksi)
	SteelUltimate    = 70.0
	AluminumUltimate = 38.0

	// Nominal densities (lb/in³)
	SteelDensity    = 0.284
	AluminumDensity = 0.0975

	// Nominal stock prices ($/lb)
	SteelCostPerPound    = 0.45
	AluminumCostPerPound = 1.60
)

// Basis tells which strength a catalog value represents
type Basis string

const (
	Ultimate Basis = "ultimate"
	Yield    Basis = "yield"
)

// Material holds the properties needed to size a round member
type Material struct {
	Name         string  `json:"name" yaml:"name"`
	Density      float64 `json:"density" yaml:"density"`               // lb/in³
	CostPerPound float64 `json:"cost_per_pound" yaml:"cost_per_pound"` // $/lb
	Strength     float64 `json:"strength" yaml:"strength"`             // ksi
	Basis        Basis   `json:"basis" yaml:"basis"`
}

// Validate checks that a material can be used in a calculation
func (m Material) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("material name is empty")
	}
	if !(m.Strength > 0) || math.IsInf(m.Strength, 0) {
		return fmt.Errorf("material %q: strength must be positive, got %v", m.Name, m.Strength)
	}
	if m.Density < 0 || math.IsNaN(m.Density) {
		return fmt.Errorf("material %q: density must not be negative, got %v", m.Name, m.Density)
	}
	if m.CostPerPound < 0 || math.IsNaN(m.CostPerPound) {
		return fmt.Errorf("material %q: cost per pound must not be negative, got %v", m.Name, m.CostPerPound)
	}
	return nil
}

// UnknownMaterialError is returned when a member names a material that is not
// in the catalog
type UnknownMaterialError struct {
	Name string
}

func (e *UnknownMaterialError) Error() string {
	return fmt.Sprintf("unknown material %q", e.Name)
}

// Catalog is a lookup table of materials keyed by name
type Catalog struct {
	byName map[string]Material
	order  []string
}

// NewCatalog builds a catalog, rejecting invalid or duplicate entries
func NewCatalog(list ...Material) (*Catalog, error) {
	c := &Catalog{byName: make(map[string]Material, len(list))}
	for _, m := range list {
		if err := c.add(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) add(m Material) error {
	m.Name = strings.TrimSpace(m.Name)
	if err := m.Validate(); err != nil {
		return err
	}
	if _, ok := c.byName[m.Name]; ok {
		return fmt.Errorf("duplicate material %q", m.Name)
	}
	c.byName[m.Name] = m
	c.order = append(c.order, m.Name)
	return nil
}

// Merge returns a new catalog holding c's entries followed by the entries of
// other that c does not already define.
func (c *Catalog) Merge(other *Catalog) *Catalog {
	out := &Catalog{byName: make(map[string]Material, c.Len()+other.Len())}
	for _, name := range c.order {
		out.byName[name] = c.byName[name]
		out.order = append(out.order, name)
	}
	for _, name := range other.order {
		if _, ok := out.byName[name]; ok {
			continue
		}
		out.byName[name] = other.byName[name]
		out.order = append(out.order, name)
	}
	return out
}

// Lookup resolves a material by name. An exact match wins; otherwise the
// first entry in catalog order that matches case-insensitively. Merged
// catalogs list the overriding table first, so its entries take precedence.
func (c *Catalog) Lookup(name string) (Material, error) {
	key := strings.TrimSpace(name)
	if m, ok := c.byName[key]; ok {
		return m, nil
	}

	for _, n := range c.order {
		if strings.EqualFold(n, key) {
			return c.byName[n], nil
		}
	}
	return Material{}, &UnknownMaterialError{Name: name}
}

// Len returns the number of materials in the catalog
func (c *Catalog) Len() int {
	return len(c.order)
}

// All returns the materials in insertion order
func (c *Catalog) All() []Material {
	out := make([]Material, 0, len(c.order))
	for _, n := range c.order {
		out = append(out, c.byName[n])
	}
	return out
}

// Names returns the material names sorted alphabetically
func (c *Catalog) Names() []string {
	names := append([]string(nil), c.order...)
	sort.Strings(names)
	return names
}

// Builtin returns the two-material catalog used by the basic hand calculation:
// steel and aluminum at their ultimate strengths.
func Builtin() *Catalog {
	c, err := NewCatalog(
		Material{Name: "steel", Density: SteelDensity, CostPerPound: SteelCostPerPound, Strength: SteelUltimate, Basis: Ultimate},
		Material{Name: "aluminum", Density: AluminumDensity, CostPerPound: AluminumCostPerPound, Strength: AluminumUltimate, Basis: Ultimate},
	)
	if err != nil {
		panic(err)
	}
	return c
}

// CrossSectionArea returns the area of a solid round section (in²)
func CrossSectionArea(diameter float64) float64 {
	return math.Pi * diameter * diameter / 4
}
