package trial_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/bayesdice/internal/source"
	"github.com/cory-johannsen/bayesdice/internal/trial"
)

func TestAccumulator_Empty(t *testing.T) {
	acc := trial.NewAccumulator()
	assert.Equal(t, 0, acc.Total())
	assert.Empty(t, acc.Outcomes())
	assert.Empty(t, acc.Names())
	assert.Empty(t, acc.Nested())
	assert.Equal(t, 0, acc.Count(source.Int(1), source.Int(6)))
}

func TestAccumulator_AddAndQuery(t *testing.T) {
	acc := trial.NewAccumulator()
	acc.Add(source.Int(6), source.Int(8))
	acc.Add(source.Int(6), source.Int(8))
	acc.Add(source.Int(2), source.Int(6))
	acc.Add(source.Int(6), source.Int(6))

	assert.Equal(t, 4, acc.Total())
	assert.Equal(t, 2, acc.Count(source.Int(6), source.Int(8)))
	assert.Equal(t, 0, acc.Count(source.Int(2), source.Int(8)))
	assert.Equal(t, []source.Key{source.Int(2), source.Int(6)}, acc.Outcomes())
	assert.Equal(t, []source.Key{source.Int(6), source.Int(8)}, acc.Names())
	assert.Equal(t, map[source.Key]map[source.Key]int{
		source.Int(2): {source.Int(6): 1},
		source.Int(6): {source.Int(6): 1, source.Int(8): 2},
	}, acc.Nested())

	tbl := acc.Table()
	assert.Equal(t, [][]int{{1, 0}, {1, 2}}, tbl.Counts)
}

func TestAccumulator_TotalMatchesAdds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 200).Draw(t, "n")
		acc := trial.NewAccumulator()
		for i := 0; i < n; i++ {
			o := rapid.IntRange(0, 5).Draw(t, "outcome")
			name := rapid.SampledFrom([]string{"a", "b", "c"}).Draw(t, "name")
			acc.Add(source.Int(o), source.Str(name))
		}
		if acc.Total() != n || acc.Table().Total() != n {
			t.Fatalf("totals %d/%d, want %d", acc.Total(), acc.Table().Total(), n)
		}
	})
}
