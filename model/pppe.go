package model

import (
	"math"
	"math/rand"
	"sort"

	"wator/analytics"
	"wator/grid"
	"wator/species"
)

// pppeModel implements spec.md §4.5: the three-phase Feeding ->
// Reproduction -> Movement update over a wrap-edge grid.
type pppeModel struct {
	g           *grid.Grid
	p           *species.Params
	rng         *rand.Rand
	senseRadius int
}

func newPPPE(p *species.Params) *pppeModel {
	return &pppeModel{
		g:           grid.New(p.GridSize(), true), // PPPE uses toroidal wrap (spec.md §9)
		p:           p,
		rng:         seedRNG(p),
		senseRadius: p.SenseRadius(),
	}
}

func (m *pppeModel) Populate() error         { return m.g.Populate(m.p, m.rng) }
func (m *pppeModel) Grid() *grid.Grid        { return m.g }
func (m *pppeModel) Params() *species.Params { return m.p }

// Tick runs Feeding, Reproduction, then Movement in order, each phase
// writing a fresh grid and reading the previous phase's output; Phase R
// additionally classifies occupied cells against the pre-tick grid
// (spec.md §4.5, §9).
func (m *pppeModel) Tick() {
	pre := m.g
	gf, k := m.feed(pre)
	gr := m.reproduce(pre, gf, k)
	gm := m.move(gr)
	m.g = gm
}

// feed is Phase F: classifies every cell against Von Neumann r=1
// neighbors of the pre-tick grid, producing G_F and the fed-or-killed
// bitmap K.
func (m *pppeModel) feed(pre *grid.Grid) (*grid.Grid, []bool) {
	size := pre.Size()
	gf := grid.New(size, pre.WrapEdges())
	k := make([]bool, size.Area())

	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			cell := pre.Get(x, y)
			idx := x + y*size.W

			if cell.IsEmpty() {
				gf.Set(x, y, grid.Empty)
				continue
			}

			neighbors := pre.VonNeumannR1(x, y)
			id := cell.SpecieID()
			sp := m.p.ByID(id)
			nPred, _ := analytics.PredatorsOf(cell, neighbors, m.p, m.rng)

			if sp.IsHerbivore() || nPred > 0 {
				r := m.rng.Float64()
				killed := r < 1-math.Pow(1-sp.DeathRate, float64(nPred))
				if killed {
					gf.Set(x, y, grid.Empty)
					k[idx] = true
				} else {
					gf.Set(x, y, cell)
				}
				continue
			}

			// Predator with no predator neighbors: hunt trial.
			nPrey, domPrey := analytics.PreyOf(cell, neighbors, m.p, m.rng)
			preyDeath := 0.0
			if nPrey > 0 {
				preyDeath = m.p.ByID(domPrey).DeathRate
			}
			r := m.rng.Float64()
			gf.Set(x, y, cell)
			k[idx] = r >= math.Pow(1-preyDeath, float64(nPrey))
		}
	}

	return gf, k
}

// reproduce is Phase R: reads G_F and K, classifying the neighborhoods of
// occupied cells against the pre-tick grid (spec.md §4.5's pinned Open
// Question (a)), and writes G_R. Empty cells read their neighbors from G_F.
func (m *pppeModel) reproduce(pre, gf *grid.Grid, k []bool) *grid.Grid {
	size := gf.Size()
	gr := grid.New(size, gf.WrapEdges())

	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			cell := gf.Get(x, y)
			idx := x + y*size.W

			if !cell.IsEmpty() {
				id := cell.SpecieID()
				sp := m.p.ByID(id)
				preNeighbors := pre.VonNeumannR1(x, y)
				nPred, _ := analytics.PredatorsOf(cell, preNeighbors, m.p, m.rng)

				if sp.IsHerbivore() || nPred > 0 {
					gr.Set(x, y, cell)
					continue
				}

				if m.rng.Float64() < sp.DeathRate {
					gr.Set(x, y, grid.Empty)
				} else {
					gr.Set(x, y, cell)
				}
				continue
			}

			if !k[idx] {
				// Was already empty: prey-breeding trial against G_F,
				// identical to the Simple model's Empty rule (spec.md
				// §4.4/§4.5) — suppressed when predators are nearby.
				gfNeighbors := gf.VonNeumannR1(x, y)
				nPred, _ := analytics.PredatorsOf(grid.Empty, gfNeighbors, m.p, m.rng)
				nHrb, domHrb := analytics.HerbivoreNeighbors(gfNeighbors, m.p, m.rng)
				if nHrb == 0 || nPred > 0 {
					gr.Set(x, y, grid.Empty)
					continue
				}
				birthRate := m.p.ByID(domHrb).BirthRate
				if m.rng.Float64() >= math.Pow(1-birthRate, float64(nHrb)) {
					gr.Set(x, y, grid.Animal(domHrb))
				} else {
					gr.Set(x, y, grid.Empty)
				}
				continue
			}

			// Emptied by a kill: only Von Neumann neighbors whose K bit
			// is set are candidates for the fed-predator breeding roll.
			nFedPred, domFedPred := m.fedPredatorNeighbors(gf, k, x, y)
			if nFedPred == 0 {
				gr.Set(x, y, grid.Empty)
				continue
			}
			pb := m.p.ByID(domFedPred).BirthRate
			if m.rng.Float64() >= math.Pow(1-pb, float64(nFedPred)) {
				gr.Set(x, y, grid.Animal(domFedPred))
			} else {
				gr.Set(x, y, grid.Empty)
			}
		}
	}

	return gr
}

func (m *pppeModel) fedPredatorNeighbors(gf *grid.Grid, k []bool, x, y int) (int, uint32) {
	size := gf.Size()
	cells, points := gf.VonNeumannR1Points(x, y)

	candidates := make([]grid.Cell, 0, len(cells))
	for i, pt := range points {
		idx := pt[0] + pt[1]*size.W
		if k[idx] {
			candidates = append(candidates, cells[i])
		}
	}

	return analytics.MostOccurring(candidates, m.rng)
}

var movementQuadrants = [4]grid.Quadrant{grid.East, grid.North, grid.West, grid.South}

func quadrantStep(q grid.Quadrant) (int, int) {
	switch q {
	case grid.East:
		return 1, 0
	case grid.North:
		return 0, -1
	case grid.West:
		return -1, 0
	case grid.South:
		return 0, 1
	default:
		return 0, 0
	}
}

// move is Phase M: every animal in G_R picks an intent quadrant from its
// sense_radius Moore neighborhood, intents are collected into a
// competition map keyed by destination, and destinations are resolved in
// sorted-(y,x) order (spec.md §4.5).
func (m *pppeModel) move(gr *grid.Grid) *grid.Grid {
	size := gr.Size()
	gm := grid.New(size, gr.WrapEdges())
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			gm.Set(x, y, gr.Get(x, y))
		}
	}

	competition := make(map[[2]int][][2]int)

	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			cell := gr.Get(x, y)
			if cell.IsEmpty() {
				continue
			}
			to, ok := m.intentTarget(gr, x, y, cell)
			if !ok {
				continue
			}
			competition[to] = append(competition[to], [2]int{x, y})
		}
	}

	targets := make([][2]int, 0, len(competition))
	for to := range competition {
		targets = append(targets, to)
	}
	sort.Slice(targets, func(i, j int) bool {
		a, b := targets[i], targets[j]
		if a[1] != b[1] {
			return a[1] < b[1]
		}
		return a[0] < b[0]
	})

	for _, to := range targets {
		if !gm.Get(to[0], to[1]).IsEmpty() {
			continue
		}
		candidates := competition[to]
		winner := candidates[0]
		if len(candidates) > 1 {
			winner = candidates[m.rng.Intn(len(candidates))]
		}
		gm.Set(to[0], to[1], gr.Get(winner[0], winner[1]))
		gm.Set(winner[0], winner[1], grid.Empty)
	}

	return gm
}

// intentTarget decides the destination cell a mover at (x, y) intends to
// step into, or false if it has no intent and stays put.
func (m *pppeModel) intentTarget(gr *grid.Grid, x, y int, cell grid.Cell) ([2]int, bool) {
	full := gr.Moore(x, y, m.senseRadius, nil)
	nPred, _ := analytics.PredatorsOf(cell, full, m.p, m.rng)
	sp := m.p.ByID(cell.SpecieID())

	type candidate struct {
		q         grid.Quadrant
		neighbors []grid.Cell
	}
	avail := make([]candidate, 0, 4)
	for _, q := range movementQuadrants {
		qq := q
		neighbors := gr.Moore(x, y, m.senseRadius, &qq)
		if len(neighbors) == 0 {
			continue
		}
		avail = append(avail, candidate{q: q, neighbors: neighbors})
	}
	if len(avail) == 0 {
		return [2]int{}, false
	}

	var chosen grid.Quadrant
	chosenSet := false

	switch {
	case nPred > 0:
		best := -1
		for _, c := range avail {
			cnt, _ := analytics.PredatorsOf(cell, c.neighbors, m.p, m.rng)
			if best == -1 || cnt < best {
				best = cnt
				chosen = c.q
				chosenSet = true
			}
		}
	case !sp.IsHerbivore():
		bestPrey := 0
		for _, c := range avail {
			cnt, _ := analytics.PreyOf(cell, c.neighbors, m.p, m.rng)
			if cnt > bestPrey {
				bestPrey = cnt
				chosen = c.q
				chosenSet = true
			}
		}
		if !chosenSet {
			chosen = avail[m.rng.Intn(len(avail))].q
			chosenSet = true
		}
	default:
		return [2]int{}, false
	}

	if !chosenSet {
		return [2]int{}, false
	}

	dx, dy := quadrantStep(chosen)
	tx, ty, ok := gr.Step(x, y, dx, dy)
	if !ok {
		return [2]int{}, false
	}
	return [2]int{tx, ty}, true
}
