package datatable

import (
	"bytes"
	"cmp"
	"math"
	"strings"
	"time"
)

// Compare orders two raw field values by their natural ordering: numbers
// numerically, strings lexicographically, false before true, timestamps
// chronologically, binary bytewise.
//
// Values of different families are ordered by family: numbers, strings,
// bools, timestamps, binary, then values of unknown type. Nulls and missing
// fields come last, and NaN sorts after every other number. Values within
// the unknown family, and nulls, compare equal to each other.
func Compare(a, b any) int {
	va, vb := NewValue(a), NewValue(b)
	if c := cmp.Compare(familyRank(va), familyRank(vb)); c != 0 {
		return c
	}
	if va.IsNull {
		return 0
	}
	if isNumeric(va.Type) {
		return compareNumbers(va, vb)
	}

	switch va.Type {
	case TypeString:
		return strings.Compare(va.Raw.(string), vb.Raw.(string))
	case TypeBool:
		x, y := va.Raw.(bool), vb.Raw.(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		default:
			return 1
		}
	case TypeTimestamp:
		return va.Raw.(time.Time).Compare(vb.Raw.(time.Time))
	case TypeBinary:
		return bytes.Compare(va.Raw.([]byte), vb.Raw.([]byte))
	default:
		return 0
	}
}

// familyRank places each value family relative to the others.
func familyRank(v Value) int {
	if v.IsNull {
		return 6
	}
	switch v.Type {
	case TypeInt, TypeUint, TypeFloat:
		return 0
	case TypeString:
		return 1
	case TypeBool:
		return 2
	case TypeTimestamp:
		return 3
	case TypeBinary:
		return 4
	default:
		return 5
	}
}

func isNumeric(t DataType) bool {
	return t == TypeInt || t == TypeUint || t == TypeFloat
}

// compareNumbers keeps integer comparisons exact and falls back to float64
// when either side is a float.
func compareNumbers(a, b Value) int {
	switch {
	case a.Type == TypeInt && b.Type == TypeInt:
		return cmp.Compare(a.Raw.(int64), b.Raw.(int64))
	case a.Type == TypeUint && b.Type == TypeUint:
		return cmp.Compare(a.Raw.(uint64), b.Raw.(uint64))
	case a.Type == TypeInt && b.Type == TypeUint:
		return compareIntUint(a.Raw.(int64), b.Raw.(uint64))
	case a.Type == TypeUint && b.Type == TypeInt:
		return -compareIntUint(b.Raw.(int64), a.Raw.(uint64))
	}

	// NaN sorts after every other number.
	x, y := toFloat(a), toFloat(b)
	switch xNaN, yNaN := math.IsNaN(x), math.IsNaN(y); {
	case xNaN && yNaN:
		return 0
	case xNaN:
		return 1
	case yNaN:
		return -1
	}
	return cmp.Compare(x, y)
}

func compareIntUint(i int64, u uint64) int {
	if i < 0 {
		return -1
	}
	return cmp.Compare(uint64(i), u)
}

func toFloat(v Value) float64 {
	switch n := v.Raw.(type) {
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	case float64:
		return n
	}
	return math.NaN()
}
