package cmd

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/gotruss/internal/assembly"
	"github.com/alexiusacademia/gotruss/internal/config"
	"github.com/alexiusacademia/gotruss/internal/materials"
	"github.com/spf13/cobra"
)

var memberFields = []string{"length", "diameter", "material"}

func memberFlag(m assembly.Member, field string) string {
	return strings.ToLower(m.String()) + "-" + field
}

// addInputFlags registers the flags shared by every command that runs the
// calculation
func addInputFlags(c *cobra.Command) {
	f := c.Flags()
	f.StringP("config", "f", "", "YAML config file")
	f.String("preset", config.DefaultPreset, "Starting preset ("+strings.Join(config.ListPresets(), "|")+")")
	f.Float64("safety-factor", 0, "Target safety factor")
	f.String("materials", "", "Materials table (.csv or .xlsx) merged over the built-in one")
	f.StringP("output-dir", "o", "", "Directory for output files (default "+config.DefaultOutputDir+")")

	for _, m := range assembly.Members {
		f.Float64(memberFlag(m, "length"), 0, fmt.Sprintf("%s length (in)", m))
		f.Float64(memberFlag(m, "diameter"), 0, fmt.Sprintf("%s diameter (in)", m))
		f.String(memberFlag(m, "material"), "", fmt.Sprintf("%s material", m))
	}
}

// runInput is a resolved calculation input
type runInput struct {
	file    *config.File
	cfg     assembly.Config
	catalog *materials.Catalog
}

// loadInput resolves the configuration of a run. Later sources win:
// .env and environment, preset flag, config file, then individual flags.
func loadInput(c *cobra.Command) (*runInput, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	f, err := config.FromEnv()
	if err != nil {
		return nil, err
	}

	flags := c.Flags()
	if flags.Changed("preset") {
		name, _ := flags.GetString("preset")
		p := config.Preset(name)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q (available: %s)", name, strings.Join(config.ListPresets(), ", "))
		}
		p.OutputDir, p.Materials = f.OutputDir, f.Materials
		f = p
	}

	if path, _ := flags.GetString("config"); path != "" {
		if f, err = config.Load(path, f); err != nil {
			return nil, err
		}
	}

	if flags.Changed("safety-factor") {
		f.SafetyFactor, _ = flags.GetFloat64("safety-factor")
	}
	if flags.Changed("materials") {
		f.Materials, _ = flags.GetString("materials")
	}
	if flags.Changed("output-dir") {
		f.OutputDir, _ = flags.GetString("output-dir")
	}
	if f.OutputDir == "" {
		f.OutputDir = config.DefaultOutputDir
	}

	for _, m := range assembly.Members {
		for _, field := range memberFields {
			name := memberFlag(m, field)
			if !flags.Changed(name) {
				continue
			}
			var v any
			if field == "material" {
				v, _ = flags.GetString(name)
			} else {
				v, _ = flags.GetFloat64(name)
			}
			if err := f.SetMember(m, field, v); err != nil {
				return nil, err
			}
		}
	}

	cfg, err := f.Build()
	if err != nil {
		return nil, err
	}

	catalog, err := loadCatalog(f.Materials)
	if err != nil {
		return nil, err
	}
	return &runInput{file: f, cfg: cfg, catalog: catalog}, nil
}

// loadCatalog returns the default catalog, with the entries of path taking
// precedence when given
func loadCatalog(path string) (*materials.Catalog, error) {
	catalog := materials.Default()
	if path == "" {
		return catalog, nil
	}
	loaded, err := materials.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading materials: %w", err)
	}
	return loaded.Merge(catalog), nil
}
