package snapshot

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/segvec"
)

func testVector(t *testing.T) *segvec.Vector {
	t.Helper()
	v, err := segvec.NewFromSlice([]int{2, 3, 1}, []float64{1, -2.5, 3, 4, 5e-10, 6})
	require.NoError(t, err)
	return v
}

func TestWriteRead(t *testing.T) {
	codecs := map[string]Compression{
		"none": CompressionNone,
		"zstd": CompressionZstd,
		"lz4":  CompressionLZ4,
	}

	for name, c := range codecs {
		t.Run(name, func(t *testing.T) {
			v := testVector(t)

			var buf bytes.Buffer
			require.NoError(t, Write(&buf, v, WithCompression(c)))

			got, err := Read(&buf)
			require.NoError(t, err)

			assert.True(t, segvec.Equal(v, got))
			assert.Equal(t, v.Dims(), got.Dims())
		})
	}
}

func TestWriteDropsSlack(t *testing.T) {
	var v segvec.Vector
	v.Reserve(2, 10)
	_, err := v.Append([]float64{1, 2})
	require.NoError(t, err)

	data, err := Encode(&v)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Dim())
	assert.Equal(t, 2, got.DimCapacity())
	assert.True(t, segvec.Equal(&v, got))
}

func TestReadRejects(t *testing.T) {
	t.Run("bad magic", func(t *testing.T) {
		data, err := Encode(testVector(t))
		require.NoError(t, err)
		data[0] ^= 0xff

		_, err = Decode(data)
		assert.ErrorIs(t, err, ErrInvalidMagic)
	})

	t.Run("bad version", func(t *testing.T) {
		data, err := Encode(testVector(t))
		require.NoError(t, err)
		binary.LittleEndian.PutUint32(data[4:], 0x00990000)

		_, err = Decode(data)
		assert.ErrorIs(t, err, ErrInvalidVersion)
	})

	t.Run("unknown compression", func(t *testing.T) {
		data, err := Encode(testVector(t))
		require.NoError(t, err)
		data[8] = 0x7f // compression byte

		_, err = Decode(data)
		assert.ErrorIs(t, err, ErrUnknownCompression)
	})

	t.Run("flipped payload bit", func(t *testing.T) {
		data, err := Encode(testVector(t))
		require.NoError(t, err)
		data[len(data)-8] ^= 0x01 // inside the payload, before the trailer

		_, err = Decode(data)
		assert.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("truncated", func(t *testing.T) {
		data, err := Encode(testVector(t))
		require.NoError(t, err)

		_, err = Decode(data[:len(data)-6])
		assert.Error(t, err)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := Decode(nil)
		assert.Error(t, err)
	})
}

func TestEmptyVector(t *testing.T) {
	var v segvec.Vector

	data, err := Encode(&v)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Size())
	assert.Equal(t, 0, got.Dim())
}

func TestZstdShrinksRedundantPayload(t *testing.T) {
	v := segvec.NewUniform(64, 16) // all zeros

	plain, err := Encode(v)
	require.NoError(t, err)
	packed, err := Encode(v, WithCompression(CompressionZstd))
	require.NoError(t, err)

	assert.Less(t, len(packed), len(plain))
}
