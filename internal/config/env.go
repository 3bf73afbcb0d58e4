package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that provide defaults below the config file
const (
	EnvOutputDir    = "GOTRUSS_OUTPUT_DIR"
	EnvMaterials    = "GOTRUSS_MATERIALS"
	EnvSafetyFactor = "GOTRUSS_SAFETY_FACTOR"
	EnvPreset       = "GOTRUSS_PRESET"
)

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding variables that are already set. Missing
// files are skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, name := range files {
		if err := godotenv.Load(name); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", name, err)
		}
	}
	return nil
}

// FromEnv returns the preset named by GOTRUSS_PRESET (default basic) with the
// other environment defaults applied
func FromEnv() (*File, error) {
	name := DefaultPreset
	if v := os.Getenv(EnvPreset); v != "" {
		name = v
	}
	f := Preset(name)
	if f == nil {
		return nil, fmt.Errorf("%s: unknown preset %q", EnvPreset, name)
	}

	if v := os.Getenv(EnvOutputDir); v != "" {
		f.OutputDir = v
	}
	if v := os.Getenv(EnvMaterials); v != "" {
		f.Materials = v
	}
	if v := os.Getenv(EnvSafetyFactor); v != "" {
		sf, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvSafetyFactor, err)
		}
		f.SafetyFactor = sf
	}
	return f, nil
}
