package segvec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("dimension list", func(t *testing.T) {
		v := New(2, 3, 1)
		assert.Equal(t, 3, v.Size())
		assert.Equal(t, 6, v.Dim())
		assert.Equal(t, 6, v.DimCapacity())
		assert.Equal(t, []int{2, 3, 1}, v.Dims())

		for i, want := range []int{2, 3, 1} {
			b, err := v.At(i)
			require.NoError(t, err)
			assert.Equal(t, want, b.Dim())
		}
	})

	t.Run("empty", func(t *testing.T) {
		v := New()
		assert.Equal(t, 0, v.Size())
		assert.Equal(t, 0, v.Dim())
	})

	t.Run("zero value", func(t *testing.T) {
		var v Vector
		assert.Equal(t, 0, v.Size())
		assert.Equal(t, 0, v.Dim())
		assert.Equal(t, 0, v.DimCapacity())
	})

	t.Run("negative dimension panics", func(t *testing.T) {
		assert.Panics(t, func() { New(2, -1) })
	})
}

func TestNewUniform(t *testing.T) {
	v := NewUniform(4, 3)
	assert.Equal(t, 4, v.Size())
	assert.Equal(t, 12, v.Dim())

	for i := 0; i < 4; i++ {
		b, err := v.At(i)
		require.NoError(t, err)
		assert.Equal(t, 3, b.Dim())
	}
}

func TestNewFromSlice(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		v, err := NewFromSlice([]int{2, 3}, []float64{1, 2, 3, 4, 5})
		require.NoError(t, err)

		assert.Equal(t, 2, v.Size())
		assert.Equal(t, 5, v.Dim())

		b0, err := v.At(0)
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 2}, []float64(b0))

		b1, err := v.At(1)
		require.NoError(t, err)
		assert.Equal(t, []float64{3, 4, 5}, []float64(b1))
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := NewFromSlice([]int{2, 3}, []float64{1, 2, 3})
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})

	t.Run("values are copied", func(t *testing.T) {
		src := []float64{1, 2}
		v, err := NewFromSlice([]int{2}, src)
		require.NoError(t, err)

		src[0] = 99
		b, _ := v.At(0)
		assert.Equal(t, 1.0, b[0])
	})
}

func TestSameStructure(t *testing.T) {
	v, err := NewFromSlice([]int{2, 3}, []float64{1, 2, 3, 4, 5})
	require.NoError(t, err)

	w := SameStructure(v)
	assert.True(t, v.SameStructureAs(w))
	assert.Equal(t, v.Dims(), w.Dims())

	// Fresh storage, zeroed, independent of the source.
	b, _ := w.At(1)
	assert.Equal(t, []float64{0, 0, 0}, []float64(b))
	b[0] = 42
	orig, _ := v.At(1)
	assert.Equal(t, 3.0, orig[0])
}

func TestAt(t *testing.T) {
	v := New(2, 3)

	t.Run("out of range", func(t *testing.T) {
		_, err := v.At(2)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		_, err = v.At(-1)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	})

	t.Run("write through", func(t *testing.T) {
		b, err := v.At(0)
		require.NoError(t, err)
		require.NoError(t, b.Set([]float64{7, 8}))

		again, _ := v.At(0)
		assert.Equal(t, []float64{7, 8}, []float64(again))
	})

	t.Run("set wrong length", func(t *testing.T) {
		b, _ := v.At(0)
		assert.ErrorIs(t, b.Set([]float64{1, 2, 3}), ErrDimensionMismatch)
	})

	t.Run("view cannot reach next block", func(t *testing.T) {
		b, _ := v.At(0)
		assert.Equal(t, 2, cap(b))
	})

	t.Run("must at panics", func(t *testing.T) {
		assert.Panics(t, func() { v.MustAt(5) })
		assert.NotPanics(t, func() { v.MustAt(1) })
	})
}

func TestReserveAppend(t *testing.T) {
	t.Run("preallocated appends", func(t *testing.T) {
		var v Vector
		v.Reserve(3, 10)
		assert.Equal(t, 10, v.DimCapacity())
		assert.Equal(t, 0, v.Dim())

		i0, err := v.Append([]float64{1, 2})
		require.NoError(t, err)
		i1, err := v.Append([]float64{3, 4, 5, 6})
		require.NoError(t, err)
		i2, err := v.Append([]float64{7, 8, 9, 10})
		require.NoError(t, err)

		assert.Equal(t, []int{0, 1, 2}, []int{i0, i1, i2})
		assert.Equal(t, 3, v.Size())
		assert.Equal(t, 10, v.Dim())
		assert.Equal(t, 10, v.DimCapacity()) // no reallocation

		b, err := v.At(1)
		require.NoError(t, err)
		assert.Equal(t, []float64{3, 4, 5, 6}, []float64(b))
	})

	t.Run("capacity exceeded", func(t *testing.T) {
		var v Vector
		v.Reserve(1, 2)
		_, err := v.Append([]float64{1, 2, 3})
		assert.ErrorIs(t, err, ErrCapacityExceeded)
		assert.Equal(t, 0, v.Size())
		assert.Equal(t, 0, v.Dim())
	})

	t.Run("reserve never shrinks", func(t *testing.T) {
		var v Vector
		v.Reserve(2, 10)
		v.Reserve(1, 4)
		assert.Equal(t, 10, v.DimCapacity())
	})

	t.Run("reserve keeps content", func(t *testing.T) {
		v, err := NewFromSlice([]int{2}, []float64{1, 2})
		require.NoError(t, err)

		v.Reserve(3, 8)
		b, err := v.At(0)
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 2}, []float64(b))
	})
}

func TestMakeZero(t *testing.T) {
	v, err := NewFromSlice([]int{2, 2}, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	v.Reserve(3, 6)

	v.MakeZero()

	// Full capacity range is zeroed, slack included.
	assert.Equal(t, 6, v.DimCapacity())
	idx, err := v.Append([]float64{5, 6})
	require.NoError(t, err)
	assert.Equal(t, 2, idx)
	for i, b := range v.All() {
		if i < 2 {
			assert.Equal(t, []float64{0, 0}, []float64(b))
		}
	}
}

func TestEquals(t *testing.T) {
	v, _ := NewFromSlice([]int{2, 3}, []float64{1, 2, 3, 4, 5})

	t.Run("reflexive", func(t *testing.T) {
		assert.True(t, v.Equals(v, 0))
		assert.True(t, Equal(v, v))
	})

	t.Run("within tolerance", func(t *testing.T) {
		w, _ := NewFromSlice([]int{2, 3}, []float64{1, 2, 3, 4, 5 + 1e-12})
		assert.True(t, Equal(v, w))
		assert.False(t, v.Equals(w, 0))
	})

	t.Run("different counts", func(t *testing.T) {
		w := New(2)
		assert.False(t, Equal(v, w))
	})

	t.Run("same count different block dims", func(t *testing.T) {
		// Same variable count and same total dim, but misaligned blocks.
		w, _ := NewFromSlice([]int{3, 2}, []float64{1, 2, 3, 4, 5})
		assert.False(t, Equal(v, w))
	})
}

func TestClone(t *testing.T) {
	v, _ := NewFromSlice([]int{2}, []float64{1, 2})
	w := v.Clone()
	require.True(t, Equal(v, w))

	b, _ := w.At(0)
	b[0] = 9
	assert.False(t, Equal(v, w))
}

func TestPrint(t *testing.T) {
	v, _ := NewFromSlice([]int{2, 1}, []float64{1, 2, 3})

	var sb strings.Builder
	v.Print(&sb, "x")
	out := sb.String()

	assert.Contains(t, out, "x: 2 elements")
	assert.Contains(t, out, "0 [1 2]")
	assert.Contains(t, out, "1 [3]")
	assert.Contains(t, v.String(), "2 elements")
}
