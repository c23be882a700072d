package source_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/bayesdice/internal/source"
)

func genKey() *rapid.Generator[source.Key] {
	return rapid.OneOf(
		rapid.Map(rapid.Bool(), source.Bool),
		rapid.Map(rapid.IntRange(-1000, 1000), source.Int),
		rapid.Map(rapid.StringMatching(`[a-z0-9]{0,6}`), source.Str),
	)
}

func TestKey_KindOrder(t *testing.T) {
	keys := []source.Key{source.Str(""), source.Int(-5), source.Bool(true), source.Int(3), source.Bool(false), source.Str("a")}
	slices.SortFunc(keys, source.Compare)
	assert.Equal(t, []source.Key{
		source.Bool(false), source.Bool(true),
		source.Int(-5), source.Int(3),
		source.Str(""), source.Str("a"),
	}, keys)
}

func TestKey_IntsSortNumerically(t *testing.T) {
	keys := []source.Key{source.Int(20), source.Int(4), source.Int(12), source.Int(6), source.Int(8)}
	slices.SortFunc(keys, source.Compare)
	assert.Equal(t, []source.Key{source.Int(4), source.Int(6), source.Int(8), source.Int(12), source.Int(20)}, keys)
}

func TestKey_Accessors(t *testing.T) {
	v, ok := source.Int(7).IntValue()
	assert.True(t, ok)
	assert.Equal(t, 7, v)

	_, ok = source.Str("7").IntValue()
	assert.False(t, ok)

	s, ok := source.Str("heads").StrValue()
	assert.True(t, ok)
	assert.Equal(t, "heads", s)

	b, ok := source.Bool(true).BoolValue()
	assert.True(t, ok)
	assert.True(t, b)

	assert.Equal(t, source.KindBool, source.Key{}.Kind())
	assert.Equal(t, "int", source.KindInt.String())
}

func TestKey_String(t *testing.T) {
	assert.Equal(t, "12", source.Int(12).String())
	assert.Equal(t, "heads", source.Str("heads").String())
	assert.Equal(t, "true", source.Bool(true).String())
}

func TestKey_EqualityMatchesCompare(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := genKey().Draw(t, "a")
		b := genKey().Draw(t, "b")
		if (a == b) != (a.Compare(b) == 0) {
			t.Fatalf("== and Compare disagree for %v, %v", a, b)
		}
	})
}

func TestKey_CompareIsAntisymmetric(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := genKey().Draw(t, "a")
		b := genKey().Draw(t, "b")
		if a.Compare(b) != -b.Compare(a) {
			t.Fatalf("Compare not antisymmetric for %v, %v", a, b)
		}
	})
}

func TestKey_CompareIsTransitive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ks := []source.Key{genKey().Draw(t, "a"), genKey().Draw(t, "b"), genKey().Draw(t, "c")}
		slices.SortFunc(ks, source.Compare)
		if ks[0].Compare(ks[1]) > 0 || ks[1].Compare(ks[2]) > 0 || ks[0].Compare(ks[2]) > 0 {
			t.Fatalf("sorted keys out of order: %v", ks)
		}
	})
}
