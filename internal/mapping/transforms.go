// internal/mapping/transforms.go
package mapping

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/solatis/mapkeeper/internal/types"
)

/*
 * Transform primitives.
 *
 * A transform pair is two pure functions (forward, inverse) applied to one
 * value at a time with no shared state. Forward converts a domain primitive
 * to its entity representation; inverse converts back. Pairs must be true
 * inverses for the round-trip law to hold.
 *
 * Failure policy: a transform that cannot convert its input fails with
 * ErrConversion wrapped with the offending value. Conversion failures are
 * caller or configuration bugs, not transient conditions; they propagate
 * out of Encode/Decode unchanged and are never retried.
 *
 * The prebuilt pairs below cover the identity representations used by the
 * bundled stores: decimal int64 keys (sqldoc), hex byte identities
 * (document-store object IDs), and RFC 3339 strings for dates that must
 * survive JSON storage.
 *
 * Why function-based: transform pairs are plain values constructed where
 * the description is composed. There is no process-wide registry; two
 * descriptions never share transform state.
 */

// TransformFunc converts a single value between its domain and entity
// representations. Implementations must be pure and side-effect free.
type TransformFunc func(value any) (any, error)

// Int64String returns the transform pair between a decimal string ID and
// an int64 native identity, forward parsing the string.
func Int64String() (forward, inverse TransformFunc) {
	forward = func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, conversionErr("int64 id", value)
		}
		// No trimming or normalization: anything the forward direction
		// accepts must decode back to the identical string, or the pair
		// is not a true inverse.
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, conversionErr("int64 id", value)
		}
		return n, nil
	}
	inverse = func(value any) (any, error) {
		switch v := value.(type) {
		case int64:
			return strconv.FormatInt(v, 10), nil
		case int:
			return strconv.Itoa(v), nil
		case float64:
			// JSON round-trips store numbers as float64; accept exact integers.
			if v != float64(int64(v)) {
				return nil, conversionErr("string id", value)
			}
			return strconv.FormatInt(int64(v), 10), nil
		default:
			return nil, conversionErr("string id", value)
		}
	}
	return forward, inverse
}

// HexBytes returns the transform pair between a lowercase hex string and a
// raw byte identity, the shape document stores use for object IDs.
func HexBytes() (forward, inverse TransformFunc) {
	forward = func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, conversionErr("byte id", value)
		}
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, conversionErr("byte id", value)
		}
		return b, nil
	}
	inverse = func(value any) (any, error) {
		b, ok := value.([]byte)
		if !ok {
			return nil, conversionErr("hex id", value)
		}
		return hex.EncodeToString(b), nil
	}
	return forward, inverse
}

// RFC3339 returns the transform pair between time.Time and an RFC 3339
// string with nanosecond precision. Dates stored as strings survive JSON
// marshalling without losing their type on the way back.
func RFC3339() (forward, inverse TransformFunc) {
	forward = func(value any) (any, error) {
		t, ok := value.(time.Time)
		if !ok {
			return nil, conversionErr("timestamp string", value)
		}
		return t.Format(time.RFC3339Nano), nil
	}
	inverse = func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, conversionErr("time.Time", value)
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil, conversionErr("time.Time", value)
		}
		return t, nil
	}
	return forward, inverse
}

// conversionErr wraps ErrConversion with what was expected and what arrived.
func conversionErr(want string, got any) error {
	return fmt.Errorf("cannot convert %T (%v) to %s: %w", got, got, want, types.ErrConversion)
}
