package models

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Key is the comparable identity of a cell value. Integer and float
// values with the same magnitude map to the same key. Integers are kept
// exactly so that large ids stay distinct.
type Key struct {
	// Numeric is true when the key was built from an int64 or float64.
	Numeric bool
	// Integral is true when the numeric value is held in Int.
	Integral bool
	// Int holds integral numeric values.
	Int int64
	// Num holds non-integral numeric values and floats outside the int64
	// range.
	Num float64
	// Str holds the string value when Numeric is not set.
	Str string
}

// 2^63 as a float64; the first float above every int64.
const twoTo63 = float64(1 << 63)

// KeyOf returns the key for a cell value.
func KeyOf(v interface{}) Key {
	switch x := v.(type) {
	case int64:
		return Key{Numeric: true, Integral: true, Int: x}
	case int:
		return Key{Numeric: true, Integral: true, Int: int64(x)}
	case float64:
		return floatKey(x)
	case string:
		return Key{Str: x}
	case nil:
		return Key{Numeric: true, Integral: true}
	default:
		return Key{Str: fmt.Sprint(x)}
	}
}

func floatKey(f float64) Key {
	if f == math.Trunc(f) && f >= -twoTo63 && f < twoTo63 {
		return Key{Numeric: true, Integral: true, Int: int64(f)}
	}
	return Key{Numeric: true, Num: f}
}

// Less orders numeric keys ascending before string keys, which are
// ordered lexicographically.
func (k Key) Less(o Key) bool {
	if k.Numeric != o.Numeric {
		return k.Numeric
	}
	if !k.Numeric {
		return k.Str < o.Str
	}
	switch {
	case k.Integral && o.Integral:
		return k.Int < o.Int
	case !k.Integral && !o.Integral:
		return k.Num < o.Num
	case k.Integral:
		return intLessFloat(k.Int, o.Num)
	default:
		return floatLessInt(k.Num, o.Int)
	}
}

// intLessFloat compares i < f for an f that is non-integral or outside
// the int64 range, so the two are never equal.
func intLessFloat(i int64, f float64) bool {
	if f >= twoTo63 {
		return true
	}
	if f < -twoTo63 {
		return false
	}
	// |f| < 2^52 here, so float64(i) keeps its order against f.
	return float64(i) < f
}

func floatLessInt(f float64, i int64) bool {
	if math.IsNaN(f) {
		return false
	}
	return !intLessFloat(i, f)
}

func (k Key) String() string {
	switch {
	case !k.Numeric:
		return k.Str
	case k.Integral:
		return strconv.FormatInt(k.Int, 10)
	case math.Abs(k.Num) < 1e16:
		return strconv.FormatFloat(k.Num, 'f', -1, 64)
	default:
		return strconv.FormatFloat(k.Num, 'g', -1, 64)
	}
}

// SortKeys sorts keys in place.
func SortKeys(keys []Key) {
	sort.SliceStable(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
}

// KeySet is a set of keys.
type KeySet map[Key]struct{}

// NewKeySet returns a set holding the keys of the given values.
func NewKeySet(values ...interface{}) KeySet {
	s := make(KeySet, len(values))
	for _, v := range values {
		s[KeyOf(v)] = struct{}{}
	}
	return s
}

// Has reports whether the set holds the key of v.
func (s KeySet) Has(v interface{}) bool {
	_, ok := s[KeyOf(v)]
	return ok
}

// Float converts a numeric cell value to float64.
func Float(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case int:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}
