package segvec

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// DefaultTolerance is the absolute tolerance used by Equal.
const DefaultTolerance = 1e-9

// Block is a non-owning view of one variable's scalars inside a Vector.
//
// Writes through a Block update the owning Vector in place. The view is
// capped at the block boundary, so it cannot trespass into the following
// block. A Block is invalidated by Reserve on the owning Vector.
type Block []float64

// Dim returns the number of scalars in the block.
func (b Block) Dim() int { return len(b) }

// Copy returns an owned copy of the block's values.
func (b Block) Copy() []float64 {
	out := make([]float64, len(b))
	copy(out, b)
	return out
}

// Set overwrites the block with the given values.
func (b Block) Set(values []float64) error {
	if len(values) != len(b) {
		return fmt.Errorf("%w: block has dim %d, got %d values", ErrDimensionMismatch, len(b), len(values))
	}
	copy(b, values)
	return nil
}

// Vector is a flat float64 buffer logically partitioned into contiguous
// blocks, one per variable.
//
// starts is the boundary list: starts[0] == 0, non-decreasing, and
// starts[i+1]-starts[i] is the dimension of variable i. The last entry is
// the used length Dim(), which never exceeds len(values) (DimCapacity).
// Storage beyond Dim() is slack capacity reserved for appends.
//
// The zero value is an empty vector ready for Reserve/Append.
type Vector struct {
	values []float64
	starts []int
}

// New creates a vector from per-variable dimensions, in variable order.
// Storage is allocated to the total dimensionality and zero-initialized.
// Panics if a dimension is negative.
func New(dims ...int) *Vector {
	starts := buildStarts(dims)
	return &Vector{
		values: make([]float64, starts[len(starts)-1]),
		starts: starts,
	}
}

// NewUniform creates a vector holding n variables of dim scalars each.
func NewUniform(n, dim int) *Vector {
	if n < 0 {
		panic("segvec: negative variable count")
	}
	if dim < 0 {
		panic("segvec: negative dimension")
	}
	starts := make([]int, n+1)
	for i := 1; i <= n; i++ {
		starts[i] = starts[i-1] + dim
	}
	return &Vector{
		values: make([]float64, starts[n]),
		starts: starts,
	}
}

// NewFromSlice creates a vector from per-variable dimensions and the flat
// concatenation of all block values. The values slice is copied.
func NewFromSlice(dims []int, values []float64) (*Vector, error) {
	starts := buildStarts(dims)
	if total := starts[len(starts)-1]; total != len(values) {
		return nil, fmt.Errorf("%w: dimensions sum to %d, got %d values", ErrDimensionMismatch, total, len(values))
	}
	stored := make([]float64, len(values))
	copy(stored, values)
	return &Vector{values: stored, starts: starts}, nil
}

// SameStructure creates a vector with the same boundary list as other but
// freshly allocated, zero-initialized storage. Useful for computing outputs
// without sharing state with an input.
func SameStructure(other *Vector) *Vector {
	starts := make([]int, len(other.boundaries()))
	copy(starts, other.boundaries())
	return &Vector{
		values: make([]float64, starts[len(starts)-1]),
		starts: starts,
	}
}

func buildStarts(dims []int) []int {
	starts := make([]int, len(dims)+1)
	for i, d := range dims {
		if d < 0 {
			panic("segvec: negative dimension")
		}
		starts[i+1] = starts[i] + d
	}
	return starts
}

// boundaries returns the boundary list, treating the zero value as empty.
func (v *Vector) boundaries() []int {
	if v.starts == nil {
		return []int{0}
	}
	return v.starts
}

func (v *Vector) ensureInit() {
	if v.starts == nil {
		v.starts = append(v.starts, 0)
	}
}

// Size returns the number of variables.
func (v *Vector) Size() int { return len(v.boundaries()) - 1 }

// Dim returns the total dimensionality in use, i.e. the sum of all block
// dimensions. This can be smaller than what has been reserved.
func (v *Vector) Dim() int {
	s := v.boundaries()
	return s[len(s)-1]
}

// DimCapacity returns the total storage capacity in scalars.
func (v *Vector) DimCapacity() int { return len(v.values) }

// Dims returns the per-variable dimensions in variable order.
func (v *Vector) Dims() []int {
	s := v.boundaries()
	dims := make([]int, len(s)-1)
	for i := range dims {
		dims[i] = s[i+1] - s[i]
	}
	return dims
}

// At returns the block view for variable i.
func (v *Vector) At(i int) (Block, error) {
	if i < 0 || i >= v.Size() {
		return nil, fmt.Errorf("%w: index %d, size %d", ErrIndexOutOfRange, i, v.Size())
	}
	return v.at(i), nil
}

// MustAt is the trusted-caller variant of At. It skips the error plumbing of
// the public path and panics on an invalid index. Intended for hot loops
// that already validated their indices.
func (v *Vector) MustAt(i int) Block {
	if i < 0 || i >= v.Size() {
		panic(fmt.Sprintf("segvec: index %d out of range [0,%d)", i, v.Size()))
	}
	return v.at(i)
}

// at returns the view for a validated index. The three-index slice caps the
// view at the block boundary so writes cannot reach the next block.
func (v *Vector) at(i int) Block {
	lo, hi := v.starts[i], v.starts[i+1]
	return Block(v.values[lo:hi:hi])
}

// Reserve grows storage capacity to at least totalDims scalars and reserves
// room in the boundary list for nVars variables, so that a following
// sequence of Append calls does not reallocate. It never shrinks and
// changes no logical content.
//
// Reserve invalidates all outstanding Block views and iterators.
func (v *Vector) Reserve(nVars, totalDims int) {
	v.ensureInit()
	if totalDims > len(v.values) {
		grown := make([]float64, totalDims)
		copy(grown, v.values)
		v.values = grown
	}
	if want := nVars + 1; cap(v.starts) < want {
		grown := make([]int, len(v.starts), want)
		copy(grown, v.starts)
		v.starts = grown
	}
}

// Append adds a new variable holding a copy of block and returns its index.
// Indices are assigned sequentially starting at 0. The write must fit in
// the reserved capacity; otherwise ErrCapacityExceeded is returned and the
// vector is unchanged.
func (v *Vector) Append(block []float64) (int, error) {
	v.ensureInit()
	used := v.starts[len(v.starts)-1]
	end := used + len(block)
	if end > len(v.values) {
		return 0, fmt.Errorf("%w: append of %d scalars needs %d, capacity is %d",
			ErrCapacityExceeded, len(block), end, len(v.values))
	}
	idx := len(v.starts) - 1
	copy(v.values[used:end], block)
	v.starts = append(v.starts, end)
	return idx, nil
}

// MakeZero sets the FULL capacity range to zero, including slack capacity
// beyond Dim(). After MakeZero, blocks appended into previously reserved
// space start out zeroed.
func (v *Vector) MakeZero() {
	clear(v.values)
}

// SameStructureAs reports whether v and other have identical boundary
// lists, making element-wise operations between them well-defined.
func (v *Vector) SameStructureAs(other *Vector) bool {
	a, b := v.boundaries(), other.boundaries()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of v. Slack capacity is not carried over; the
// clone's capacity equals its Dim.
func (v *Vector) Clone() *Vector {
	out := SameStructure(v)
	copy(out.values, v.values[:v.Dim()])
	return out
}

// Equals compares two vectors block by block with an absolute tolerance.
// It returns false when the variable counts differ, when any pair of blocks
// has different dimensions, or when any pair of scalars differs by more
// than tol.
func (v *Vector) Equals(other *Vector, tol float64) bool {
	if v.Size() != other.Size() {
		return false
	}
	if !v.SameStructureAs(other) {
		return false
	}
	for i := 0; i < v.Dim(); i++ {
		if math.Abs(v.values[i]-other.values[i]) > tol {
			return false
		}
	}
	return true
}

// Equal is Equals with DefaultTolerance.
func Equal(a, b *Vector) bool { return a.Equals(b, DefaultTolerance) }

// used returns the logically used range of storage as one flat vector.
func (v *Vector) used() []float64 { return v.values[:v.Dim()] }

// String renders the vector for debugging.
func (v *Vector) String() string {
	var sb strings.Builder
	v.Print(&sb, "Vector")
	return sb.String()
}

// Print writes a human-readable rendering of the vector to w, one block
// per line, prefixed by name.
func (v *Vector) Print(w io.Writer, name string) {
	fmt.Fprintf(w, "%s: %d elements\n", name, v.Size())
	for i := 0; i < v.Size(); i++ {
		fmt.Fprintf(w, "  %d %v\n", i, []float64(v.at(i)))
	}
}
