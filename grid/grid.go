// Package grid implements the dense flat cell storage of spec.md §4.1:
// construction, point access, Moore/Von Neumann neighborhood queries
// under a configurable edge policy, and initial seeding.
package grid

import (
	"fmt"
	"math/rand"

	"wator/geom"
	"wator/species"
)

// Quadrant is a directional wedge of a Moore neighborhood (spec.md §3).
// Diagonal rays are intentionally shared between adjacent quadrants.
type Quadrant int

const (
	East Quadrant = iota
	North
	West
	South
)

func (q Quadrant) String() string {
	switch q {
	case East:
		return "East"
	case North:
		return "North"
	case West:
		return "West"
	case South:
		return "South"
	default:
		return fmt.Sprintf("Quadrant(%d)", int(q))
	}
}

func inQuadrant(q Quadrant, i, j int) bool {
	switch q {
	case East:
		return i > 0 && j >= -i && j <= i
	case North:
		return j < 0 && i >= j && i <= -j
	case West:
		return i < 0 && j >= i && j <= -i
	case South:
		return j > 0 && i >= -j && i <= j
	default:
		return false
	}
}

// Grid owns the w*h flat cell array. Its length never changes after
// construction (spec.md §3, invariant i).
type Grid struct {
	size  geom.Size
	cells []Cell
	wrap  bool // true = toroidal wrap, false = clamp (omit out-of-bounds)
}

// New builds an all-Empty grid of the given size and edge policy.
func New(size geom.Size, wrapEdges bool) *Grid {
	return &Grid{
		size:  size,
		cells: make([]Cell, size.Area()),
		wrap:  wrapEdges,
	}
}

// Size returns the grid's dimensions.
func (g *Grid) Size() geom.Size { return g.size }

// WrapEdges reports the grid's configured edge policy.
func (g *Grid) WrapEdges() bool { return g.wrap }

func (g *Grid) index(x, y int) int {
	return x + y*g.size.W
}

// Get reads the cell at (x, y). x and y must be in bounds.
func (g *Grid) Get(x, y int) Cell {
	return g.cells[g.index(x, y)]
}

// Set writes the cell at (x, y). x and y must be in bounds.
func (g *Grid) Set(x, y int, c Cell) {
	g.cells[g.index(x, y)] = c
}

func wrapMod(v, n int) int {
	return ((v % n) + n) % n
}

// InBounds reports whether (x, y) lies within the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.size.W && y >= 0 && y < g.size.H
}

// Moore returns the neighbor cells within Chebyshev distance r of (x, y),
// excluding the center, optionally filtered down to a single Quadrant
// (spec.md §4.1). Out-of-bounds offsets are omitted under the clamp
// policy, or wrapped with mathematical (non-negative) modulo under the
// wrap policy.
func (g *Grid) Moore(x, y, r int, quadrant *Quadrant) []Cell {
	neighbors := make([]Cell, 0, (2*r+1)*(2*r+1)-1)

	for i := -r; i <= r; i++ {
		for j := -r; j <= r; j++ {
			if i == 0 && j == 0 {
				continue
			}
			if quadrant != nil && !inQuadrant(*quadrant, i, j) {
				continue
			}

			nx, ny := x+i, y+j
			if g.wrap {
				nx = wrapMod(nx, g.size.W)
				ny = wrapMod(ny, g.size.H)
			} else if !g.InBounds(nx, ny) {
				continue
			}

			neighbors = append(neighbors, g.Get(nx, ny))
		}
	}

	return neighbors
}

// VonNeumannR1 returns up to 4 orthogonal neighbors of (x, y), in
// West, North, East, South order, under the grid's edge policy.
func (g *Grid) VonNeumannR1(x, y int) []Cell {
	cells, _ := g.VonNeumannR1Points(x, y)
	return cells
}

// VonNeumannR1Points behaves like VonNeumannR1 but also returns the
// (possibly wrapped) coordinates of each returned neighbor, in the same
// order. PPPE's Phase R fed-predator check needs to cross-reference the
// per-cell "fed-or-killed" bitmap at each neighbor's location.
func (g *Grid) VonNeumannR1Points(x, y int) ([]Cell, [][2]int) {
	cells := make([]Cell, 0, 4)
	points := make([][2]int, 0, 4)
	offsets := [4][2]int{{-1, 0}, {0, -1}, {1, 0}, {0, 1}}

	for _, off := range offsets {
		nx, ny := x+off[0], y+off[1]
		if g.wrap {
			nx = wrapMod(nx, g.size.W)
			ny = wrapMod(ny, g.size.H)
		} else if !g.InBounds(nx, ny) {
			continue
		}
		cells = append(cells, g.Get(nx, ny))
		points = append(points, [2]int{nx, ny})
	}

	return cells, points
}

// Step applies a single-cell offset (dx, dy) from (x, y) under the
// grid's edge policy: wrapped coordinates under the wrap policy (always
// valid), or the offset coordinates under the clamp policy if in bounds.
// ok is false when the clamp policy steps off the grid.
func (g *Grid) Step(x, y, dx, dy int) (nx, ny int, ok bool) {
	nx, ny = x+dx, y+dy
	if g.wrap {
		return wrapMod(nx, g.size.W), wrapMod(ny, g.size.H), true
	}
	if !g.InBounds(nx, ny) {
		return 0, 0, false
	}
	return nx, ny, true
}

// SeedingError reports that Populate could not place a specie's target
// population within its retry budget (spec.md §4.1, §7).
type SeedingError struct {
	Specie string
	Target int
	Placed int
	Budget int
}

func (e *SeedingError) Error() string {
	return fmt.Sprintf("grid: could not seed %q: placed %d/%d animals within %d attempts",
		e.Specie, e.Placed, e.Target, e.Budget)
}

// Populate seeds the grid per spec.md §4.1: for each specie in
// deterministic (sorted-by-name) order, repeatedly sample a uniform
// random cell and place an animal there if it is Empty, until the
// specie's target population is reached or a bounded retry budget
// (16*target) is exhausted.
func (g *Grid) Populate(p *species.Params, rng *rand.Rand) error {
	total := g.size.Area()

	for _, name := range p.Names() {
		id, _ := p.IDByName(name)
		sp := p.ByID(id)

		target := int(sp.InitialPopulation * float64(total))
		if target <= 0 {
			continue
		}

		budget := 16 * target
		placed := 0
		for attempts := 0; placed < target; attempts++ {
			if attempts >= budget {
				return &SeedingError{Specie: name, Target: target, Placed: placed, Budget: budget}
			}
			x := rng.Intn(g.size.W)
			y := rng.Intn(g.size.H)
			if g.Get(x, y).IsEmpty() {
				g.Set(x, y, Animal(id))
				placed++
			}
		}
	}

	return nil
}

// SpecieIDsSnapshot returns a copy of every cell's specie id in row-major
// order (0 = Empty), for stats collaborators (spec.md §6).
func (g *Grid) SpecieIDsSnapshot() []uint32 {
	out := make([]uint32, len(g.cells))
	for i, c := range g.cells {
		out[i] = c.SpecieID()
	}
	return out
}
