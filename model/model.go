// Package model implements the rule-set dispatch and the two concrete
// update rules of spec.md §4.4-§4.6: a single-phase Simple model and a
// three-phase PPPE model, behind a uniform Model façade.
package model

import (
	"fmt"
	"math/rand"
	"time"

	"wator/grid"
	"wator/species"
)

// Model is the uniform façade spec.md §4.6/§6 exposes to collaborators.
// Implementations own their Grid, Params, and PRNG exclusively; no method
// here leaks the PRNG.
type Model interface {
	Populate() error
	Tick()
	Grid() *grid.Grid
	Params() *species.Params
}

// NotImplemented is returned by Create for a ModelType with no rule-set
// implementation (spec.md §4.6, §7).
type NotImplemented struct {
	Type species.ModelType
}

func (e *NotImplemented) Error() string {
	return fmt.Sprintf("model: %s is not implemented", e.Type)
}

// Create validates mp, builds its specie registry, and dispatches on
// mp.Model to construct the corresponding Model. DSAM and Custom are
// recognized ModelType values but fail deterministically with
// NotImplemented (spec.md §3, §4.6).
func Create(mp species.ModelParams) (Model, error) {
	params, err := species.NewParams(mp)
	if err != nil {
		return nil, err
	}

	switch params.Model() {
	case species.Simple:
		return newSimple(params), nil
	case species.PPPE:
		return newPPPE(params), nil
	default:
		return nil, &NotImplemented{Type: params.Model()}
	}
}

func seedRNG(params *species.Params) *rand.Rand {
	seed, ok := params.RandomSeed()
	if !ok {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(int64(seed)))
}
