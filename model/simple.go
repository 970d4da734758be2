package model

import (
	"math"
	"math/rand"

	"wator/analytics"
	"wator/grid"
	"wator/species"
)

// simpleModel implements spec.md §4.4: a single-phase synchronous update
// rule over a clamp-edge grid.
type simpleModel struct {
	g   *grid.Grid
	p   *species.Params
	rng *rand.Rand
}

func newSimple(p *species.Params) *simpleModel {
	return &simpleModel{
		g:   grid.New(p.GridSize(), false), // Simple uses clamp edges (spec.md §9)
		p:   p,
		rng: seedRNG(p),
	}
}

func (m *simpleModel) Populate() error        { return m.g.Populate(m.p, m.rng) }
func (m *simpleModel) Grid() *grid.Grid       { return m.g }
func (m *simpleModel) Params() *species.Params { return m.p }

// Tick scans the previous grid in row-major order, builds a fresh grid
// from it, then swaps (spec.md §4.4: reads only ever touch the previous
// snapshot).
func (m *simpleModel) Tick() {
	size := m.g.Size()
	next := grid.New(size, m.g.WrapEdges())

	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			cell := m.g.Get(x, y)
			neighbors := m.g.Moore(x, y, 1, nil)
			next.Set(x, y, m.nextCellState(cell, neighbors))
		}
	}

	m.g = next
}

func (m *simpleModel) nextCellState(cell grid.Cell, neighbors []grid.Cell) grid.Cell {
	nPred, domPred := analytics.PredatorsOf(cell, neighbors, m.p, m.rng)

	if cell.IsEmpty() {
		nHrb, domHrb := analytics.HerbivoreNeighbors(neighbors, m.p, m.rng)
		if nHrb == 0 || nPred > 0 {
			return grid.Empty
		}

		birthRate := m.p.ByID(domHrb).BirthRate
		r := m.rng.Float64()
		if r >= math.Pow(1-birthRate, float64(nHrb)) {
			return grid.Animal(domHrb)
		}
		return grid.Empty
	}

	id := cell.SpecieID()
	sp := m.p.ByID(id)

	if sp.IsHerbivore() || nPred > 0 {
		// Prey: a hunt trial scaled by the number of predator neighbors.
		r1 := m.rng.Float64()
		huntSucceeds := r1 >= math.Pow(1-sp.DeathRate, float64(nPred))
		if huntSucceeds {
			r2 := m.rng.Float64()
			if r2 < m.p.ByID(domPred).BirthRate {
				return grid.Animal(domPred)
			}
			return grid.Empty
		}

		// Hunt failed; the cell survives the predation check, but a
		// non-herbivore still faces its own mortality roll.
		if !sp.IsHerbivore() {
			if m.rng.Float64() < sp.DeathRate {
				return grid.Empty
			}
		}
		return cell
	}

	// Non-herbivore predator with no predator neighbors of its own.
	if m.rng.Float64() < sp.DeathRate {
		return grid.Empty
	}
	return cell
}
