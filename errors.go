package segvec

import "errors"

var (
	// ErrStructureMismatch is returned when two vectors with different
	// boundary lists are combined.
	ErrStructureMismatch = errors.New("structure mismatch")

	// ErrDimensionMismatch is returned when two flat ranges of different
	// length are combined, or a block write has the wrong length.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrIndexOutOfRange is returned when a block index is not in
	// [0, Size()).
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrCapacityExceeded is returned when an append would write past the
	// reserved storage. Callers must Reserve enough capacity first.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrIteratorMismatch is returned when two iterators over different
	// containers are compared.
	ErrIteratorMismatch = errors.New("iterators from different vectors")
)
