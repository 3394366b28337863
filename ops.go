package segvec

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Dot returns the inner product of the used ranges of a and b. The operands
// must be structurally compatible (identical boundary lists).
func Dot(a, b *Vector) (float64, error) {
	if !a.SameStructureAs(b) {
		return 0, fmt.Errorf("%w: dot", ErrStructureMismatch)
	}
	return floats.Dot(a.used(), b.used()), nil
}

// Scal multiplies every used entry of x by alpha, in place. Slack capacity
// beyond Dim is untouched.
func Scal(alpha float64, x *Vector) {
	floats.Scale(alpha, x.used())
}

// Axpy computes y += alpha*x over the used range, in place. It requires
// equal total dimensionality; the block structure is ignored, matching the
// flat-kernel contract solvers rely on.
func Axpy(alpha float64, x, y *Vector) error {
	if x.Dim() != y.Dim() {
		return fmt.Errorf("%w: axpy over dims %d and %d", ErrDimensionMismatch, x.Dim(), y.Dim())
	}
	floats.AddScaled(y.used(), alpha, x.used())
	return nil
}

// Add returns the element-wise sum of two structurally identical vectors as
// a new vector with the same structure.
func Add(a, b *Vector) (*Vector, error) {
	if !a.SameStructureAs(b) {
		return nil, fmt.Errorf("%w: add", ErrStructureMismatch)
	}
	out := SameStructure(a)
	floats.AddTo(out.used(), a.used(), b.used())
	return out, nil
}
