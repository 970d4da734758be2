package species

import (
	"fmt"
	"image/color"
	"sort"

	"wator/geom"
)

// ModelType names a tick-update rule set. Only Simple and PPPE are
// implemented; DSAM and Custom are accepted by config but dispatch to
// model.NotImplemented (see SPEC_FULL.md §3), matching the full enum the
// original Rust source carried (models/params.rs).
type ModelType int

const (
	Simple ModelType = iota
	PPPE
	DSAM
	Custom
)

func (m ModelType) String() string {
	switch m {
	case Simple:
		return "Simple"
	case PPPE:
		return "PPPE"
	case DSAM:
		return "DSAM"
	case Custom:
		return "Custom"
	default:
		return fmt.Sprintf("ModelType(%d)", int(m))
	}
}

// ParseModelType maps a config "model" string onto a ModelType.
func ParseModelType(s string) (ModelType, error) {
	switch s {
	case "Simple":
		return Simple, nil
	case "PPPE":
		return PPPE, nil
	case "DSAM":
		return DSAM, nil
	case "Custom":
		return Custom, nil
	default:
		return 0, &ConfigError{Reason: fmt.Sprintf("unknown model type %q", s)}
	}
}

// SpecieParams are the per-species attributes of spec.md §3.
type SpecieParams struct {
	Color             *color.RGBA
	InitialPopulation float64
	BirthRate         float64
	DeathRate         float64
	EnergySources     []string
}

// IsHerbivore reports whether this specie has no energy sources.
func (s SpecieParams) IsHerbivore() bool {
	return len(s.EnergySources) == 0
}

// ModelParams is the raw, validated-but-not-yet-registered configuration
// of a simulation: which rule set, the species table, grid dimensions,
// seed, and (for PPPE) the sensing radius.
type ModelParams struct {
	Model       ModelType
	Species     map[string]SpecieParams
	GridSize    geom.Size
	RandomSeed  *uint64
	SenseRadius int // PPPE only; 0 means "use the default of 1"
}

// Validate checks grid dimensions, per-specie rates, and cross-references
// in EnergySources, and fills in SenseRadius's default. It does not build
// the id bijection; call NewParams for that.
func (mp *ModelParams) Validate() error {
	if !mp.GridSize.Valid() {
		return &ConfigError{Reason: fmt.Sprintf("grid_size must be positive, got %dx%d", mp.GridSize.W, mp.GridSize.H)}
	}

	for name, sp := range mp.Species {
		if sp.InitialPopulation < 0 || sp.InitialPopulation > 1 {
			return badRate(name, "initial_population")
		}
		if sp.BirthRate < 0 || sp.BirthRate > 1 {
			return badRate(name, "birth_rate")
		}
		if sp.DeathRate < 0 || sp.DeathRate > 1 {
			return badRate(name, "death_rate")
		}
		for _, src := range sp.EnergySources {
			if _, ok := mp.Species[src]; !ok {
				return unknownEnergySource(name, src)
			}
		}
	}

	if mp.Model == PPPE {
		if mp.SenseRadius == 0 {
			mp.SenseRadius = 1
		}
		if mp.SenseRadius < 1 {
			return &ConfigError{Reason: fmt.Sprintf("sense_radius must be >= 1, got %d", mp.SenseRadius)}
		}
	}

	return nil
}

// sortedNames returns the species map's keys in sorted order, the
// deterministic iteration order pinned by spec.md §3/§5.
func sortedNames(species map[string]SpecieParams) []string {
	names := make([]string, 0, len(species))
	for name := range species {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
