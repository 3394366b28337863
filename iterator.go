package segvec

import (
	"fmt"
	"iter"
)

// Iterator walks the blocks of a Vector in increasing index order. It is a
// small value type; copying an iterator yields an independent position.
//
// An iterator is positional only: it cannot insert or remove blocks.
// Structural changes go through Reserve/Append, which invalidate all
// outstanding iterators.
type Iterator struct {
	v   *Vector
	idx int
}

// Begin returns an iterator positioned at the first block.
func (v *Vector) Begin() Iterator { return Iterator{v: v} }

// End returns the past-the-end iterator.
func (v *Vector) End() Iterator { return Iterator{v: v, idx: v.Size()} }

// Valid reports whether the iterator points at a block.
func (it Iterator) Valid() bool { return it.idx >= 0 && it.idx < it.v.Size() }

// Index returns the current block index. The past-the-end position returns
// Size().
func (it Iterator) Index() int { return it.idx }

// Next moves one block forward.
func (it *Iterator) Next() { it.idx++ }

// Prev moves one block backward.
func (it *Iterator) Prev() { it.idx-- }

// Advance moves the iterator by delta blocks, which may be negative.
func (it *Iterator) Advance(delta int) { it.idx += delta }

// Block returns the view at the current position.
func (it Iterator) Block() (Block, error) {
	if !it.Valid() {
		return nil, fmt.Errorf("%w: iterator at %d, size %d", ErrIndexOutOfRange, it.idx, it.v.Size())
	}
	return it.v.at(it.idx), nil
}

// DistanceTo returns the number of blocks from it to other. Both iterators
// must walk the same Vector.
func (it Iterator) DistanceTo(other Iterator) (int, error) {
	if it.v != other.v {
		return 0, ErrIteratorMismatch
	}
	return other.idx - it.idx, nil
}

// Equal reports whether two iterators over the same Vector are at the same
// position.
func (it Iterator) Equal(other Iterator) (bool, error) {
	if it.v != other.v {
		return false, ErrIteratorMismatch
	}
	return it.idx == other.idx, nil
}

// All returns a range-over-func sequence of (index, block) pairs. The
// yielded blocks alias the vector's storage.
func (v *Vector) All() iter.Seq2[int, Block] {
	return func(yield func(int, Block) bool) {
		for i := 0; i < v.Size(); i++ {
			if !yield(i, v.at(i)) {
				return
			}
		}
	}
}
