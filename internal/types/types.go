// Package types provides domain models shared across mapkeeper components.
//
// Zero-dependency design: types.go and errors.go use only the standard
// library so the mapping core stays import-light. ID utilities in ids.go
// import uuid but are isolated for selective inclusion.
package types

// Record is a plain record of named fields. Domain objects and persistence
// entities are both Records at the mapping boundary; what distinguishes them
// is which side of a mapping description they sit on, not their Go type.
//
// A field that is absent from the map is absent from the record. Nil values
// are treated as absent by the mapping engine; Records never carry null
// placeholders across the boundary.
type Record = map[string]any

// Resource limits enforced by mapping description construction to keep
// recursive encode/decode bounded.
const (
	// MaxNestingDepth limits how deep nested mapping descriptions may go.
	// 16 levels handles any realistic entity shape without risking stack
	// exhaustion during recursive transformation.
	MaxNestingDepth = 16

	// MaxFields limits the number of declared fields per description.
	// 256 fields is far beyond any sane record shape; the cap exists to
	// catch generated or corrupted configurations early.
	MaxFields = 256
)
