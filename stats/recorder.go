// Package stats writes the per-tick population CSV contract of
// spec.md §6 and builds a population summary report on top of it.
package stats

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"wator/species"
)

// Recorder tallies per-specie population counts from a grid snapshot and
// appends one CSV row per tick: "Time" followed by one column per
// specie, in species.Params' sorted-name order.
type Recorder struct {
	w       *csv.Writer
	names   []string
	ids     []uint32
	history map[string][]float64
}

// NewRecorder wraps w, writes the header row once, and prepares to
// collect history for Summary.
func NewRecorder(w io.Writer, p *species.Params) (*Recorder, error) {
	names := p.Names()
	ids := p.SpecieIDs()

	header := make([]string, 0, len(names)+1)
	header = append(header, "Time")
	header = append(header, names...)

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return nil, fmt.Errorf("stats: writing header: %w", err)
	}

	history := make(map[string][]float64, len(names))
	for _, n := range names {
		history[n] = nil
	}

	return &Recorder{w: cw, names: names, ids: ids, history: history}, nil
}

// Write tallies snapshot (as returned by grid.Grid.SpecieIDsSnapshot) into
// per-specie counts and appends one row for tick.
func (r *Recorder) Write(tick int, snapshot []uint32) error {
	counts := make(map[uint32]int, len(r.ids))
	for _, id := range snapshot {
		if id != 0 {
			counts[id]++
		}
	}

	row := make([]string, 0, len(r.names)+1)
	row = append(row, strconv.Itoa(tick))
	for i, name := range r.names {
		c := counts[r.ids[i]]
		row = append(row, strconv.Itoa(c))
		r.history[name] = append(r.history[name], float64(c))
	}

	if err := r.w.Write(row); err != nil {
		return fmt.Errorf("stats: writing row %d: %w", tick, err)
	}
	return nil
}

// Flush flushes any buffered CSV output and reports the first write
// error encountered, if any.
func (r *Recorder) Flush() error {
	r.w.Flush()
	return r.w.Error()
}

// SpecieSummary is one row of Recorder.Summary: a specie's population
// mean and standard deviation across every recorded tick.
type SpecieSummary struct {
	Name   string
	Mean   float64
	StdDev float64
}

// Summary computes, per specie, the mean and the sample (unbiased, n-1)
// standard deviation of its recorded counts using gonum's stat.MeanStdDev. This
// enriches spec.md's bare CSV contract with an aggregate report.
func (r *Recorder) Summary() []SpecieSummary {
	out := make([]SpecieSummary, 0, len(r.names))
	for _, name := range r.names {
		counts := r.history[name]
		if len(counts) == 0 {
			out = append(out, SpecieSummary{Name: name})
			continue
		}
		mean, std := stat.MeanStdDev(counts, nil)
		out = append(out, SpecieSummary{Name: name, Mean: mean, StdDev: std})
	}
	return out
}
