// Package config loads a JSON simulation configuration file into a
// species.ModelParams, the external loader contract of spec.md §4.2/§6.
package config

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"image/color"
	"os"

	"wator/geom"
	"wator/species"
)

type specieDoc struct {
	Color             string   `json:"color"`
	InitialPopulation float64  `json:"initial_population"`
	BirthRate         float64  `json:"birth_rate"`
	DeathRate         float64  `json:"death_rate"`
	EnergySources     []string `json:"energy_sources"`
}

type sizeDoc struct {
	W int `json:"w"`
	H int `json:"h"`
}

type doc struct {
	Model       string               `json:"model"`
	GridSize    sizeDoc              `json:"grid_size"`
	RandomSeed  *uint64              `json:"random_seed"`
	SenseRadius int                  `json:"sense_radius"`
	Species     map[string]specieDoc `json:"species"`
}

// Load reads path, parses it as the JSON shape of spec.md §6, and
// returns a validated species.ModelParams. Validation failures are
// species.ConfigError; file and parse failures are plain wrapped errors.
func Load(path string) (species.ModelParams, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return species.ModelParams{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var d doc
	if err := json.Unmarshal(raw, &d); err != nil {
		return species.ModelParams{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	modelType, err := species.ParseModelType(d.Model)
	if err != nil {
		return species.ModelParams{}, err
	}

	sp := make(map[string]species.SpecieParams, len(d.Species))
	for name, s := range d.Species {
		rgba, err := parseColor(s.Color)
		if err != nil {
			return species.ModelParams{}, fmt.Errorf("config: specie %q: %w", name, err)
		}
		sp[name] = species.SpecieParams{
			Color:             rgba,
			InitialPopulation: s.InitialPopulation,
			BirthRate:         s.BirthRate,
			DeathRate:         s.DeathRate,
			EnergySources:     s.EnergySources,
		}
	}

	mp := species.ModelParams{
		Model:       modelType,
		Species:     sp,
		GridSize:    geom.Size{W: d.GridSize.W, H: d.GridSize.H},
		RandomSeed:  d.RandomSeed,
		SenseRadius: d.SenseRadius,
	}

	if err := mp.Validate(); err != nil {
		return species.ModelParams{}, err
	}

	return mp, nil
}

// parseColor decodes a "RRGGBB" hex string into an opaque color.RGBA.
// An empty string is not an error: color is render-only (spec.md §3).
func parseColor(s string) (*color.RGBA, error) {
	if s == "" {
		return nil, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 3 {
		return nil, fmt.Errorf("invalid color %q: must be 6 hex digits", s)
	}
	return &color.RGBA{R: b[0], G: b[1], B: b[2], A: 0xff}, nil
}
