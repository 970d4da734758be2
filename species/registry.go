package species

import "wator/geom"

// Params is the engine-facing view of a validated ModelParams: the raw
// config plus the stable name<->id bijection built from it (spec.md §3,
// §4.2). Id 0 is reserved and never assigned to a specie.
type Params struct {
	raw   ModelParams
	names []string          // index i (0-based) holds the name of id i+1
	ids   map[string]uint32 // name -> id
}

// NewParams validates mp and builds its id bijection, ordered by specie
// name (spec.md §3: "stable enumeration order ... ordered by name to
// guarantee determinism").
func NewParams(mp ModelParams) (*Params, error) {
	if err := mp.Validate(); err != nil {
		return nil, err
	}

	names := sortedNames(mp.Species)
	ids := make(map[string]uint32, len(names))
	for i, name := range names {
		ids[name] = uint32(i + 1)
	}

	return &Params{raw: mp, names: names, ids: ids}, nil
}

// Model returns the configured rule set.
func (p *Params) Model() ModelType { return p.raw.Model }

// GridSize returns the configured grid dimensions.
func (p *Params) GridSize() geom.Size { return p.raw.GridSize }

// RandomSeed returns the configured seed, if any.
func (p *Params) RandomSeed() (uint64, bool) {
	if p.raw.RandomSeed == nil {
		return 0, false
	}
	return *p.raw.RandomSeed, true
}

// SenseRadius returns the PPPE movement-sensing radius (already defaulted
// to 1 by Validate for PPPE models).
func (p *Params) SenseRadius() int { return p.raw.SenseRadius }

// SpecieIDs returns the registered ids 1..N, in the same name-sorted order
// as Names; together the two slices form the name<->id bijection.
func (p *Params) SpecieIDs() []uint32 {
	ids := make([]uint32, len(p.names))
	for i := range p.names {
		ids[i] = uint32(i + 1)
	}
	return ids
}

// Names returns the specie names in the same sorted order as SpecieIDs,
// the order used by the stats CSV header (spec.md §6).
func (p *Params) Names() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

// IDByName returns the id assigned to name, if any.
func (p *Params) IDByName(name string) (uint32, bool) {
	id, ok := p.ids[name]
	return id, ok
}

// NameByID returns the name assigned to id, if any.
func (p *Params) NameByID(id uint32) (string, bool) {
	if id == 0 || int(id) > len(p.names) {
		return "", false
	}
	return p.names[id-1], true
}

// ByID returns the attributes of the specie with the given id. Panics if
// id is not a registered id: an unregistered id reaching here is an
// invariant violation, not a recoverable error (spec.md §7).
func (p *Params) ByID(id uint32) SpecieParams {
	name, ok := p.NameByID(id)
	if !ok {
		panic("species: unregistered specie id")
	}
	return p.raw.Species[name]
}

// IsHerbivore reports whether id has no energy sources.
func (p *Params) IsHerbivore(id uint32) bool {
	return p.ByID(id).IsHerbivore()
}

// IsPredatorFor reports whether predID's energy sources list preyID's
// name.
func (p *Params) IsPredatorFor(predID, preyID uint32) bool {
	preyName, ok := p.NameByID(preyID)
	if !ok {
		return false
	}
	for _, src := range p.ByID(predID).EnergySources {
		if src == preyName {
			return true
		}
	}
	return false
}

// Count returns the number of registered species.
func (p *Params) Count() int { return len(p.names) }
