package species_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wator/geom"
	"wator/species"
)

func validParams() species.ModelParams {
	return species.ModelParams{
		Model: species.Simple,
		Species: map[string]species.SpecieParams{
			"cod":   {InitialPopulation: 0.3, BirthRate: 0.3, DeathRate: 0.1},
			"shark": {InitialPopulation: 0.05, BirthRate: 0.2, DeathRate: 0.3, EnergySources: []string{"cod"}},
		},
		GridSize: geom.Size{W: 10, H: 10},
	}
}

func TestValidate_OK(t *testing.T) {
	mp := validParams()
	require.NoError(t, mp.Validate())
}

func TestValidate_ZeroGridDimension(t *testing.T) {
	mp := validParams()
	mp.GridSize = geom.Size{W: 0, H: 10}

	err := mp.Validate()
	require.Error(t, err)

	var cfgErr *species.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestValidate_OutOfRangeRate(t *testing.T) {
	mp := validParams()
	cod := mp.Species["cod"]
	cod.BirthRate = 1.5
	mp.Species["cod"] = cod

	err := mp.Validate()
	require.Error(t, err)

	var cfgErr *species.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "cod", cfgErr.Referrer)
}

func TestValidate_UnknownEnergySource(t *testing.T) {
	mp := validParams()
	shark := mp.Species["shark"]
	shark.EnergySources = []string{"tuna"}
	mp.Species["shark"] = shark

	err := mp.Validate()
	require.Error(t, err)

	var cfgErr *species.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "shark", cfgErr.Referrer)
	assert.Equal(t, "tuna", cfgErr.Missing)
}

func TestValidate_PPPESenseRadiusDefault(t *testing.T) {
	mp := validParams()
	mp.Model = species.PPPE

	require.NoError(t, mp.Validate())
	assert.Equal(t, 1, mp.SenseRadius)
}

func TestValidate_PPPESenseRadiusRejectsNegative(t *testing.T) {
	mp := validParams()
	mp.Model = species.PPPE
	mp.SenseRadius = -1

	err := mp.Validate()
	require.Error(t, err)
}

func TestParseModelType(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want species.ModelType
	}{
		{"Simple", species.Simple},
		{"PPPE", species.PPPE},
		{"DSAM", species.DSAM},
		{"Custom", species.Custom},
	} {
		got, err := species.ParseModelType(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	_, err := species.ParseModelType("Unknown")
	require.Error(t, err)
}

func TestIsHerbivore(t *testing.T) {
	herbivore := species.SpecieParams{}
	predator := species.SpecieParams{EnergySources: []string{"cod"}}

	assert.True(t, herbivore.IsHerbivore())
	assert.False(t, predator.IsHerbivore())
}
