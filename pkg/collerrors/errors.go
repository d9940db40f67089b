// Package collerrors holds the sentinel errors shared by the change-tracking
// and reactive-subject packages. Callers compare with errors.Is, the same
// convention laura-db uses in pkg/index/errors.go and pkg/mvcc/errors.go.
package collerrors

import "errors"

var (
	// ErrNullArgument is returned when a required sequence or comparer is nil.
	ErrNullArgument = errors.New("required argument is nil")

	// ErrDuplicateKey is returned by Add when the key is already present.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrKeyNotFound is returned by a keyed lookup for a missing key.
	ErrKeyNotFound = errors.New("key not found")

	// ErrIndexOutOfRange is returned when a list index is outside its valid bounds.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidArgument is returned for a structurally invalid argument, such
	// as a RemoveRange span that runs past the end of the list.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidVariant is returned by a typed accessor on an atomic change
	// whose tag does not match the accessor (or whose tag is the zero-value
	// "None" sentinel).
	ErrInvalidVariant = errors.New("invalid change variant")
)
