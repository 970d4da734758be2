// Package analytics provides the pure neighborhood-counting helpers of
// spec.md §4.3: given a snapshot of neighbor cells and the species
// parameters, report how many of a given kind are present and which
// specie dominates, breaking count ties with a single PRNG draw.
package analytics

import (
	"math/rand"
	"sort"

	"wator/grid"
	"wator/species"
)

// MostOccurring returns the count and specie id of the most frequently
// occurring animal in cells. Ties are broken by a single uniform draw
// from rng among the tied ids; counting (and therefore tie detection)
// iterates ids in sorted order so the tie set itself is deterministic
// (spec.md §4.3, §5). Returns (0, 0) if cells has no animals.
func MostOccurring(cells []grid.Cell, rng *rand.Rand) (int, uint32) {
	counts := make(map[uint32]int, len(cells))
	for _, c := range cells {
		if c.IsEmpty() {
			continue
		}
		counts[c.SpecieID()]++
	}
	if len(counts) == 0 {
		return 0, 0
	}

	ids := make([]uint32, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	best := 0
	for _, id := range ids {
		if counts[id] > best {
			best = counts[id]
		}
	}

	tied := make([]uint32, 0, len(ids))
	for _, id := range ids {
		if counts[id] == best {
			tied = append(tied, id)
		}
	}
	if len(tied) == 1 {
		return best, tied[0]
	}
	return best, tied[rng.Intn(len(tied))]
}

// PredatorsOf filters neighbors to the animals that predate on cell (or,
// if cell is Empty, to any non-herbivore), and returns the count and
// dominant id via MostOccurring (spec.md §4.3).
func PredatorsOf(cell grid.Cell, neighbors []grid.Cell, p *species.Params, rng *rand.Rand) (int, uint32) {
	predating := make([]grid.Cell, 0, len(neighbors))

	if cell.IsEmpty() {
		for _, n := range neighbors {
			if !n.IsEmpty() && !p.IsHerbivore(n.SpecieID()) {
				predating = append(predating, n)
			}
		}
	} else {
		preyID := cell.SpecieID()
		for _, n := range neighbors {
			if !n.IsEmpty() && p.IsPredatorFor(n.SpecieID(), preyID) {
				predating = append(predating, n)
			}
		}
	}

	return MostOccurring(predating, rng)
}

// PreyOf filters neighbors to the animals cell predates on (cell must be
// an animal; returns (0, 0) for Empty), and returns the count and
// dominant id via MostOccurring (spec.md §4.3).
func PreyOf(cell grid.Cell, neighbors []grid.Cell, p *species.Params, rng *rand.Rand) (int, uint32) {
	if cell.IsEmpty() {
		return 0, 0
	}

	predID := cell.SpecieID()
	prey := make([]grid.Cell, 0, len(neighbors))
	for _, n := range neighbors {
		if !n.IsEmpty() && p.IsPredatorFor(predID, n.SpecieID()) {
			prey = append(prey, n)
		}
	}

	return MostOccurring(prey, rng)
}

// HerbivoreNeighbors filters neighbors to herbivores and returns the
// count and dominant id via MostOccurring (spec.md §4.3).
func HerbivoreNeighbors(neighbors []grid.Cell, p *species.Params, rng *rand.Rand) (int, uint32) {
	herbivores := make([]grid.Cell, 0, len(neighbors))
	for _, n := range neighbors {
		if !n.IsEmpty() && p.IsHerbivore(n.SpecieID()) {
			herbivores = append(herbivores, n)
		}
	}

	return MostOccurring(herbivores, rng)
}
