/*
File    : molcore/runtime/coerce.go
Package : runtime
*/
package runtime

import (
	"github.com/akashmaji946/molcore/value"
	"github.com/spf13/cast"
)

// CoerceHostValue converts an arbitrary Go value supplied by the host
// (int, float32/64, string, bool, or an already-built value.Value) into a
// value.Value. Bools and strings are converted directly; every other type
// goes through github.com/spf13/cast so WithVariable accepts whatever
// native type a host happens to have on hand.
func CoerceHostValue(v any) value.Value {
	switch n := v.(type) {
	case nil:
		return value.Null{}
	case value.Value:
		return n
	case bool:
		if n {
			return value.Number(1)
		}
		return value.Number(0)
	case string:
		return value.String(n)
	default:
		if f, err := cast.ToFloat64E(v); err == nil {
			return value.Number(f)
		}
		if s, err := cast.ToStringE(v); err == nil {
			return value.String(s)
		}
		return value.Null{}
	}
}
