package source

import (
	"cmp"
	"strconv"
)

// Kind discriminates the variants of a Key.
type Kind uint8

const (
	// KindBool orders before every other kind.
	KindBool Kind = iota
	// KindInt orders after KindBool and before KindString.
	KindInt
	// KindString orders last.
	KindString
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Key is an outcome or source name: exactly one of a bool, an int or a string.
//
// Key is comparable and may be used as a map key. The zero Key is Bool(false).
//
// Invariant: Compare defines a total order; keys of different kinds order by
// kind (bool < int < string), keys of the same kind order by value.
type Key struct {
	kind Kind
	i    int64
	s    string
}

// Int returns an integer Key.
func Int(v int) Key { return Key{kind: KindInt, i: int64(v)} }

// Str returns a string Key.
func Str(v string) Key { return Key{kind: KindString, s: v} }

// Bool returns a boolean Key.
func Bool(v bool) Key {
	k := Key{kind: KindBool}
	if v {
		k.i = 1
	}
	return k
}

// Kind reports which variant k holds.
func (k Key) Kind() Kind { return k.kind }

// IntValue returns the integer held by k and whether k is an int Key.
func (k Key) IntValue() (int, bool) {
	return int(k.i), k.kind == KindInt
}

// StrValue returns the string held by k and whether k is a string Key.
func (k Key) StrValue() (string, bool) {
	return k.s, k.kind == KindString
}

// BoolValue returns the boolean held by k and whether k is a bool Key.
func (k Key) BoolValue() (bool, bool) {
	return k.i != 0, k.kind == KindBool
}

// String renders the held value without quoting.
func (k Key) String() string {
	switch k.kind {
	case KindInt:
		return strconv.FormatInt(k.i, 10)
	case KindString:
		return k.s
	default:
		return strconv.FormatBool(k.i != 0)
	}
}

// Compare returns -1, 0 or +1 as k orders before, equal to or after o.
func (k Key) Compare(o Key) int {
	if c := cmp.Compare(k.kind, o.kind); c != 0 {
		return c
	}
	if k.kind == KindString {
		return cmp.Compare(k.s, o.s)
	}
	return cmp.Compare(k.i, o.i)
}

// Compare is the function form of Key.Compare, suitable for slices.SortFunc.
func Compare(a, b Key) int { return a.Compare(b) }
