package types

import "errors"

// Sentinel errors for mapkeeper operations. Callers match with errors.Is;
// wrapping preserves field and operation context via %w.
//
// Configuration errors are raised when a mapping description is constructed,
// never at encode/decode time. Conversion errors are call-time bugs in the
// caller's data or configuration and are never retried or recovered.
var (
	// ErrMissingEntry indicates a declared domain field has no mapping entry.
	ErrMissingEntry = errors.New("domain field has no mapping entry")

	// ErrUnknownEntry indicates a mapping entry names an undeclared field.
	ErrUnknownEntry = errors.New("mapping entry names undeclared domain field")

	// ErrDuplicateTarget indicates two mapping entries share an entity key.
	ErrDuplicateTarget = errors.New("mapping entries share a target key")

	// ErrCyclicMapping indicates a description reaches itself through its
	// nested descriptions.
	ErrCyclicMapping = errors.New("cyclic nested mapping description")

	// ErrNotScalarID indicates the identity field's entry is not a scalar
	// transform between the string ID and the native identity type.
	ErrNotScalarID = errors.New("identity field entry must be a scalar transform")

	// ErrTooManyFields indicates a description declares more than MaxFields.
	ErrTooManyFields = errors.New("too many declared fields")

	// ErrTooDeep indicates nested descriptions exceed MaxNestingDepth.
	ErrTooDeep = errors.New("nested mappings exceed maximum depth")

	// ErrConversion indicates a forward or inverse transform failed on a
	// value. Propagated synchronously out of encode/decode, never swallowed.
	ErrConversion = errors.New("value conversion failed")

	// ErrUnsupportedFilter indicates a filter field is backed by a transform
	// entry; only directly-mapped fields may appear in filters.
	ErrUnsupportedFilter = errors.New("filter field is not directly mapped")

	// ErrNotFound indicates the target of a lookup, update, or delete does
	// not exist in storage. A normal outcome, distinct from ErrPersistence.
	ErrNotFound = errors.New("not found")

	// ErrPersistence indicates the storage collaborator itself failed. The
	// cause is wrapped unchanged; mapkeeper does not interpret it.
	ErrPersistence = errors.New("persistence failure")
)
