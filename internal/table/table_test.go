package table_test

import (
	"bytes"
	"cmp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/bayesdice/internal/table"
)

func sample() map[int]map[string]int {
	return map[int]map[string]int{
		6: {"d6": 3, "d8": 1},
		1: {"d4": 2, "d6": 2, "d8": 4},
		8: {"d8": 5},
	}
}

func TestPivot_SortsAndZeroFills(t *testing.T) {
	tbl := table.Pivot(sample(), cmp.Compare[int], cmp.Compare[string])

	assert.Equal(t, []int{1, 6, 8}, tbl.Rows)
	assert.Equal(t, []string{"d4", "d6", "d8"}, tbl.Cols)
	assert.Equal(t, [][]int{
		{2, 2, 4},
		{0, 3, 1},
		{0, 0, 5},
	}, tbl.Counts)
}

func TestPivot_Empty(t *testing.T) {
	tbl := table.Pivot(map[int]map[string]int{}, cmp.Compare[int], cmp.Compare[string])
	assert.Empty(t, tbl.Rows)
	assert.Empty(t, tbl.Cols)
	assert.Empty(t, tbl.Counts)
	assert.Equal(t, 0, tbl.Total())
}

func TestTable_Sums(t *testing.T) {
	tbl := table.Pivot(sample(), cmp.Compare[int], cmp.Compare[string])
	assert.Equal(t, []int{8, 4, 5}, tbl.RowSums())
	assert.Equal(t, []int{2, 5, 10}, tbl.ColSums())
	assert.Equal(t, 17, tbl.Total())
}

func TestTable_NormalizeZeroRow(t *testing.T) {
	tbl := &table.Table[int, string]{
		Rows:   []int{1, 2},
		Cols:   []string{"a", "b"},
		Counts: [][]int{{0, 0}, {1, 3}},
	}
	n := tbl.Normalize()
	assert.Equal(t, []float64{0, 0}, n[0])
	assert.Equal(t, []float64{0.25, 0.75}, n[1])
}

func TestPivot_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		nested := rapid.MapOf(
			rapid.IntRange(0, 20),
			rapid.MapOfN(rapid.StringMatching(`[a-e]`), rapid.IntRange(1, 100), 1, 5),
		).Draw(t, "nested")

		want := 0
		for _, cols := range nested {
			for _, n := range cols {
				want += n
			}
		}

		tbl := table.Pivot(nested, cmp.Compare[int], cmp.Compare[string])
		require.Equal(t, want, tbl.Total())

		sums := tbl.RowSums()
		for i, r := range tbl.Rows {
			rowWant := 0
			for _, n := range nested[r] {
				rowWant += n
			}
			require.Equal(t, rowWant, sums[i])
		}

		for i, row := range tbl.Normalize() {
			if sums[i] == 0 {
				continue
			}
			s := 0.0
			for _, v := range row {
				s += v
			}
			require.InDelta(t, 1.0, s, 1e-9)
		}
	})
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 50.0, table.Percent(0.5))
	assert.Equal(t, 33.33, table.Percent(1.0/3))
	assert.Equal(t, 66.66, table.Percent(2.0/3))
	assert.Equal(t, 29.0, table.Percent(0.29))
	assert.Equal(t, 100.0, table.Percent(1))
	assert.Equal(t, 0.0, table.Percent(0))
}

func TestRender(t *testing.T) {
	tbl := table.Pivot(sample(), cmp.Compare[int], cmp.Compare[string])
	var buf bytes.Buffer
	require.NoError(t, table.Render(&buf, tbl))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "columns: [d4 d6 d8]", lines[0])
	assert.Equal(t, "rows: [1 6 8]", lines[1])
	assert.Equal(t, []string{"[", "25.00", "25.00", "50.00", "]"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"[", "0.00", "75.00", "25.00", "]"}, strings.Fields(lines[3]))
	assert.Equal(t, []string{"[", "0.00", "0.00", "100.00", "]"}, strings.Fields(lines[4]))
}
