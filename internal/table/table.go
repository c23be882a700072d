// Package table converts sparse nested counts into dense, labelled matrices
// and renders them as conditional-frequency percentages.
package table

import (
	"maps"
	"slices"
)

// Table is a dense count matrix with sorted row and column labels.
//
// Invariant: len(Counts) == len(Rows) and len(Counts[i]) == len(Cols) for every i.
type Table[R, C comparable] struct {
	Rows   []R
	Cols   []C
	Counts [][]int
}

// Pivot converts nested (row -> column -> count) into a Table. Rows are sorted
// with rowCmp and columns with colCmp; cells absent from nested read as zero.
//
// Precondition: rowCmp and colCmp must each define a total order.
// Postcondition: Total() equals the sum of every count in nested.
func Pivot[R, C comparable](nested map[R]map[C]int, rowCmp func(a, b R) int, colCmp func(a, b C) int) *Table[R, C] {
	colSet := make(map[C]struct{})
	for _, cols := range nested {
		for c := range cols {
			colSet[c] = struct{}{}
		}
	}

	rows := slices.SortedFunc(maps.Keys(nested), rowCmp)
	cols := slices.SortedFunc(maps.Keys(colSet), colCmp)

	colIdx := make(map[C]int, len(cols))
	for i, c := range cols {
		colIdx[c] = i
	}

	counts := make([][]int, len(rows))
	for i, r := range rows {
		counts[i] = make([]int, len(cols))
		for c, n := range nested[r] {
			counts[i][colIdx[c]] = n
		}
	}
	return &Table[R, C]{Rows: rows, Cols: cols, Counts: counts}
}

// RowSums returns the total count of each row.
func (t *Table[R, C]) RowSums() []int {
	sums := make([]int, len(t.Rows))
	for i, row := range t.Counts {
		for _, n := range row {
			sums[i] += n
		}
	}
	return sums
}

// ColSums returns the total count of each column.
func (t *Table[R, C]) ColSums() []int {
	sums := make([]int, len(t.Cols))
	for _, row := range t.Counts {
		for j, n := range row {
			sums[j] += n
		}
	}
	return sums
}

// Total returns the sum of every cell.
func (t *Table[R, C]) Total() int {
	total := 0
	for _, s := range t.RowSums() {
		total += s
	}
	return total
}

// Normalize divides every cell by its row total.
//
// A row whose total is zero is returned as all zeros.
//
// Postcondition: every row with a nonzero total sums to 1 within floating-point
// tolerance.
func (t *Table[R, C]) Normalize() [][]float64 {
	sums := t.RowSums()
	out := make([][]float64, len(t.Counts))
	for i, row := range t.Counts {
		out[i] = make([]float64, len(row))
		if sums[i] == 0 {
			continue
		}
		for j, n := range row {
			out[i][j] = float64(n) / float64(sums[i])
		}
	}
	return out
}
