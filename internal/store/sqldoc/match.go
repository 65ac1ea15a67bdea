package sqldoc

import (
	"reflect"

	"github.com/solatis/mapkeeper/internal/types"
)

/*
 * In-process filter matching.
 *
 * Filter values originate in domain code (typed Go values) while stored
 * values come back from a JSON round-trip (float64 numbers, string dates),
 * so equality needs numeric normalization across float64/int/int64,
 * applied element-wise inside sequences. Everything else compares with
 * reflect.DeepEqual; directly-mapped fields can hold slices and nested
 * records, which panic under plain == equality.
 */

// matches checks that every filter field equals the entity's field.
func matches(entity, filter types.Record) bool {
	for f, want := range filter {
		got, ok := entity[f]
		if !ok || !looseEqual(got, want) {
			return false
		}
	}
	return true
}

// looseEqual performs deep equality comparison with numeric type mixing.
func looseEqual(a, b any) bool {
	af, aNum := asFloat(a)
	bf, bNum := asFloat(b)
	if aNum && bNum {
		return af == bf
	}

	as, aList := a.([]any)
	bs, bList := b.([]any)
	if aList && bList {
		if len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !looseEqual(as[i], bs[i]) {
				return false
			}
		}
		return true
	}

	return reflect.DeepEqual(a, b)
}

// asFloat widens JSON-compatible numeric types to float64.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
