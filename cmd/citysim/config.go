package main

import (
	"fmt"
	"os"

	"github.com/lixenwraith/citygrid/parameter"
	"github.com/lixenwraith/citygrid/toml"
)

// profile is the set of run options that can either come from flags or be
// overridden by a TOML file, so a saved scenario doesn't need to be
// re-typed on the command line every run.
type profile struct {
	Dimension   int  `toml:"dimension"`
	TargetCount int  `toml:"target_count"`
	RushHour    bool `toml:"rush_hour"`
}

func defaultProfile() profile {
	return profile{
		Dimension:   5,
		TargetCount: 0,
		RushHour:    false,
	}
}

// loadProfile reads a TOML profile from path, starting from
// defaultProfile() so a partial file only overrides what it names.
func loadProfile(path string) (profile, error) {
	p := defaultProfile()
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("citysim: reading config: %w", err)
	}
	if err := toml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("citysim: parsing config: %w", err)
	}
	if p.Dimension < parameter.MinDimension || p.Dimension > parameter.MaxDimension {
		return p, fmt.Errorf("citysim: config dimension %d out of range [%d, %d]",
			p.Dimension, parameter.MinDimension, parameter.MaxDimension)
	}
	return p, nil
}
