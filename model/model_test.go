package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wator/geom"
	"wator/grid"
	"wator/model"
	"wator/species"
)

func TestCreate_NotImplementedForDSAMAndCustom(t *testing.T) {
	for _, mt := range []species.ModelType{species.DSAM, species.Custom} {
		mp := species.ModelParams{
			Model:    mt,
			Species:  map[string]species.SpecieParams{},
			GridSize: geom.Size{W: 3, H: 3},
		}
		_, err := model.Create(mp)
		require.Error(t, err)

		var notImpl *model.NotImplemented
		require.ErrorAs(t, err, &notImpl)
	}
}

func TestCreate_InvalidConfigPropagates(t *testing.T) {
	mp := species.ModelParams{
		Model:    species.Simple,
		Species:  map[string]species.SpecieParams{},
		GridSize: geom.Size{W: 0, H: 3},
	}
	_, err := model.Create(mp)
	require.Error(t, err)

	var cfgErr *species.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

// Scenario 1: empty grid, one tick.
func TestSimple_EmptyGridStasis(t *testing.T) {
	mp := species.ModelParams{
		Model:    species.Simple,
		Species:  map[string]species.SpecieParams{},
		GridSize: geom.Size{W: 4, H: 4},
	}
	m, err := model.Create(mp)
	require.NoError(t, err)
	require.NoError(t, m.Populate())

	m.Tick()

	for _, id := range m.Grid().SpecieIDsSnapshot() {
		assert.Equal(t, uint32(0), id)
	}
}

// Scenario 2: lone herbivore survives unchanged for 10 ticks.
func TestSimple_LoneHerbivoreSurvives(t *testing.T) {
	mp := species.ModelParams{
		Model: species.Simple,
		Species: map[string]species.SpecieParams{
			"h": {BirthRate: 0, DeathRate: 0},
		},
		GridSize: geom.Size{W: 3, H: 3},
	}
	m, err := model.Create(mp)
	require.NoError(t, err)
	require.NoError(t, m.Populate())

	hID, _ := m.Params().IDByName("h")
	m.Grid().Set(1, 1, grid.Animal(hID))

	for i := 0; i < 10; i++ {
		m.Tick()
	}

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			c := m.Grid().Get(x, y)
			if x == 1 && y == 1 {
				assert.Equal(t, grid.Animal(hID), c)
			} else {
				assert.True(t, c.IsEmpty(), "cell (%d,%d) should remain empty", x, y)
			}
		}
	}
}

// Scenario 3: deterministic reseed — same params+seed produce identical grids.
func TestSimple_DeterministicReseed(t *testing.T) {
	newParams := func() species.ModelParams {
		seed := uint64(42)
		return species.ModelParams{
			Model: species.Simple,
			Species: map[string]species.SpecieParams{
				"a": {InitialPopulation: 0.2},
			},
			GridSize:   geom.Size{W: 10, H: 10},
			RandomSeed: &seed,
		}
	}

	m1, err := model.Create(newParams())
	require.NoError(t, err)
	require.NoError(t, m1.Populate())

	m2, err := model.Create(newParams())
	require.NoError(t, err)
	require.NoError(t, m2.Populate())

	assert.Equal(t, m1.Grid().SpecieIDsSnapshot(), m2.Grid().SpecieIDsSnapshot())
}

// Scenario 4: Simple predation certainty.
func TestSimple_PredationCertainty(t *testing.T) {
	mp := species.ModelParams{
		Model: species.Simple,
		Species: map[string]species.SpecieParams{
			"h": {BirthRate: 0, DeathRate: 1},
			"c": {BirthRate: 0, DeathRate: 0, EnergySources: []string{"h"}},
		},
		GridSize: geom.Size{W: 3, H: 3},
	}
	m, err := model.Create(mp)
	require.NoError(t, err)
	require.NoError(t, m.Populate())

	hID, _ := m.Params().IDByName("h")
	cID, _ := m.Params().IDByName("c")
	m.Grid().Set(1, 1, grid.Animal(cID))
	m.Grid().Set(0, 1, grid.Animal(hID))

	m.Tick()

	assert.True(t, m.Grid().Get(0, 1).IsEmpty())
	assert.Equal(t, grid.Animal(cID), m.Grid().Get(1, 1))
}
