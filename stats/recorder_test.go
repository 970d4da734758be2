package stats_test

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wator/geom"
	"wator/species"
	"wator/stats"
)

func twoSpecieParams(t *testing.T) *species.Params {
	t.Helper()
	mp := species.ModelParams{
		Model: species.Simple,
		Species: map[string]species.SpecieParams{
			"cod":   {},
			"shark": {EnergySources: []string{"cod"}},
		},
		GridSize: geom.Size{W: 4, H: 4},
	}
	p, err := species.NewParams(mp)
	require.NoError(t, err)
	return p
}

func TestRecorder_HeaderAndRowShape(t *testing.T) {
	p := twoSpecieParams(t)
	codID, _ := p.IDByName("cod")
	sharkID, _ := p.IDByName("shark")

	var buf bytes.Buffer
	rec, err := stats.NewRecorder(&buf, p)
	require.NoError(t, err)

	snapshot := []uint32{codID, codID, sharkID, 0}
	require.NoError(t, rec.Write(0, snapshot))
	require.NoError(t, rec.Flush())

	reader := csv.NewReader(&buf)
	rows, err := reader.ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Time", "cod", "shark"}, rows[0])
	assert.Equal(t, []string{"0", "2", "1"}, rows[1])
}

func TestRecorder_Summary(t *testing.T) {
	p := twoSpecieParams(t)
	codID, _ := p.IDByName("cod")

	var buf bytes.Buffer
	rec, err := stats.NewRecorder(&buf, p)
	require.NoError(t, err)

	require.NoError(t, rec.Write(0, []uint32{codID, codID}))
	require.NoError(t, rec.Write(1, []uint32{codID, 0}))
	require.NoError(t, rec.Flush())

	summary := rec.Summary()
	require.Len(t, summary, 2)

	var codSummary *stats.SpecieSummary
	for i := range summary {
		if summary[i].Name == "cod" {
			codSummary = &summary[i]
		}
	}
	require.NotNil(t, codSummary)
	assert.InDelta(t, 1.5, codSummary.Mean, 1e-9)
}
