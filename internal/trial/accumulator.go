package trial

import (
	"maps"
	"slices"

	"github.com/cory-johannsen/bayesdice/internal/source"
	"github.com/cory-johannsen/bayesdice/internal/table"
)

// Cell identifies one (outcome, source name) pair.
type Cell struct {
	Outcome source.Key
	Name    source.Key
}

// Accumulator counts observations per (outcome, source name).
//
// Invariant: every count is positive and Total() equals the number of Add calls.
type Accumulator struct {
	counts map[Cell]int
	total  int
}

// NewAccumulator returns an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{counts: make(map[Cell]int)}
}

// Add records one observation of outcome drawn from a source named name.
func (a *Accumulator) Add(outcome, name source.Key) {
	a.counts[Cell{Outcome: outcome, Name: name}]++
	a.total++
}

// Count returns the number of observations for the pair; zero if never seen.
func (a *Accumulator) Count(outcome, name source.Key) int {
	return a.counts[Cell{Outcome: outcome, Name: name}]
}

// Total returns the number of observations recorded.
func (a *Accumulator) Total() int { return a.total }

// Outcomes returns every observed outcome in ascending order.
func (a *Accumulator) Outcomes() []source.Key {
	set := make(map[source.Key]struct{})
	for c := range a.counts {
		set[c.Outcome] = struct{}{}
	}
	return slices.SortedFunc(maps.Keys(set), source.Compare)
}

// Names returns every observed source name in ascending order.
func (a *Accumulator) Names() []source.Key {
	set := make(map[source.Key]struct{})
	for c := range a.counts {
		set[c.Name] = struct{}{}
	}
	return slices.SortedFunc(maps.Keys(set), source.Compare)
}

// Nested returns a fresh outcome -> name -> count mapping.
func (a *Accumulator) Nested() map[source.Key]map[source.Key]int {
	out := make(map[source.Key]map[source.Key]int)
	for c, n := range a.counts {
		row, ok := out[c.Outcome]
		if !ok {
			row = make(map[source.Key]int)
			out[c.Outcome] = row
		}
		row[c.Name] = n
	}
	return out
}

// Table pivots the accumulator into a dense table with outcome rows and
// source-name columns, both sorted by Key order.
func (a *Accumulator) Table() *table.Table[source.Key, source.Key] {
	return table.Pivot(a.Nested(), source.Compare, source.Compare)
}
