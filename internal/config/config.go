package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/alexiusacademia/gotruss/internal/assembly"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPreset    = "basic"
	DefaultOutputDir = "save_data"
)

// File is the on-disk configuration of a run
type File struct {
	SafetyFactor float64                        `yaml:"safety_factor"`
	Materials    string                         `yaml:"materials,omitempty"`
	OutputDir    string                         `yaml:"output_dir,omitempty"`
	Members      map[string]assembly.MemberSpec `yaml:"members"`
}

var presets = map[string]func() *File{
	// Hand-calculation variant: all steel, ultimate strengths
	"basic": func() *File {
		return &File{
			SafetyFactor: 2.5,
			OutputDir:    DefaultOutputDir,
			Members: map[string]assembly.MemberSpec{
				"ABCD": {Length: 60, Diameter: 3.0 / 8, Material: "steel"},
				"AC":   {Length: 15, Diameter: 3.0 / 8, Material: "steel"},
				"EB":   {Diameter: 0.5, Material: "steel"},
				"FD":   {Diameter: 0.5, Material: "steel"},
			},
		}
	},
	// Materials-table variant: yield strengths, weights and costs
	"catalog": func() *File {
		return &File{
			SafetyFactor: 3,
			OutputDir:    DefaultOutputDir,
			Members: map[string]assembly.MemberSpec{
				"ABCD": {Length: 60, Diameter: 3.0 / 8, Material: "Stainless 304"},
				"AC":   {Length: 24, Diameter: 1, Material: "6061-T6"},
				"EB":   {Length: 36, Diameter: 0.5, Material: "Stainless 304"},
				"FD":   {Length: 36, Diameter: 0.5, Material: "Stainless 304"},
			},
		}
	},
}

// Default returns the basic preset
func Default() *File {
	return presets[DefaultPreset]()
}

// Preset returns a fresh copy of the named preset, or nil if there is none
func Preset(name string) *File {
	fn, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil
	}
	return fn()
}

// ListPresets returns the preset names in alphabetical order
func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type memberOverlay struct {
	Length   *float64 `yaml:"length"`
	Diameter *float64 `yaml:"diameter"`
	Material *string  `yaml:"material"`
}

type fileOverlay struct {
	Preset       *string                  `yaml:"preset"`
	SafetyFactor *float64                 `yaml:"safety_factor"`
	Materials    *string                  `yaml:"materials"`
	OutputDir    *string                  `yaml:"output_dir"`
	Members      map[string]memberOverlay `yaml:"members"`
}

// Decode reads YAML from r and applies it on top of base. Only the keys
// present in the document change; a "preset" key replaces base first.
// Unknown keys are an error.
func Decode(r io.Reader, base *File) (*File, error) {
	var ov fileOverlay
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&ov); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	out := base.Clone()
	if ov.Preset != nil {
		p := Preset(*ov.Preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q (have %s)", *ov.Preset, strings.Join(ListPresets(), ", "))
		}
		p.Materials, p.OutputDir = out.Materials, out.OutputDir
		out = p
	}
	if ov.SafetyFactor != nil {
		out.SafetyFactor = *ov.SafetyFactor
	}
	if ov.Materials != nil {
		out.Materials = *ov.Materials
	}
	if ov.OutputDir != nil {
		out.OutputDir = *ov.OutputDir
	}
	seen := make(map[assembly.Member]bool, len(ov.Members))
	for name, m := range ov.Members {
		member, err := assembly.ParseMember(name)
		if err != nil {
			return nil, fmt.Errorf("config members: %w", err)
		}
		if seen[member] {
			return nil, fmt.Errorf("config members: member %s is defined twice", member)
		}
		seen[member] = true
		key := member.String()
		spec := out.Members[key]
		if m.Length != nil {
			spec.Length = *m.Length
		}
		if m.Diameter != nil {
			spec.Diameter = *m.Diameter
		}
		if m.Material != nil {
			spec.Material = *m.Material
		}
		out.Members[key] = spec
	}
	return out, nil
}

// Load reads a YAML config file on top of base
func Load(path string, base *File) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Decode(bytes.NewReader(data), base)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Save writes the config as YAML
func Save(path string, f *File) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy of f
func (f *File) Clone() *File {
	out := *f
	out.Members = make(map[string]assembly.MemberSpec, len(f.Members))
	for k, v := range f.Members {
		out.Members[k] = v
	}
	return &out
}

// SetMember updates one field of a member. field is length, diameter or material.
func (f *File) SetMember(m assembly.Member, field string, value any) error {
	spec := f.Members[m.String()]
	switch field {
	case "length":
		v, ok := value.(float64)
		if !ok {
			return fmt.Errorf("%s length must be a number", m)
		}
		spec.Length = v
	case "diameter":
		v, ok := value.(float64)
		if !ok {
			return fmt.Errorf("%s diameter must be a number", m)
		}
		spec.Diameter = v
	case "material":
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("%s material must be a string", m)
		}
		spec.Material = v
	default:
		return fmt.Errorf("unknown member field %q", field)
	}
	f.Members[m.String()] = spec
	return nil
}

// Build turns the file into the immutable calculation input. Every member
// must be present.
func (f *File) Build() (assembly.Config, error) {
	cfg := assembly.Config{SafetyFactor: f.SafetyFactor}
	seen := make(map[assembly.Member]bool, len(assembly.Members))
	for name, spec := range f.Members {
		m, err := assembly.ParseMember(name)
		if err != nil {
			return assembly.Config{}, err
		}
		if seen[m] {
			return assembly.Config{}, fmt.Errorf("member %s is defined twice", m)
		}
		seen[m] = true
		cfg.Members[m] = spec
	}

	var missing []string
	for _, m := range assembly.Members {
		if !seen[m] {
			missing = append(missing, m.String())
		}
	}
	if len(missing) > 0 {
		return assembly.Config{}, fmt.Errorf("config is missing members: %s", strings.Join(missing, ", "))
	}
	return cfg, cfg.Validate()
}
