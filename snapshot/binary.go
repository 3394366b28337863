package snapshot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"math"

	"github.com/hupe1980/segvec"
	"github.com/hupe1980/segvec/internal/conv"
)

// Options configures snapshot encoding.
type Options struct {
	// Compression selects the payload codec. Default: CompressionNone.
	Compression Compression
}

// WithCompression sets the payload codec.
func WithCompression(c Compression) func(*Options) {
	return func(o *Options) {
		o.Compression = c
	}
}

// Write encodes v into the snapshot format. Slack capacity beyond v.Dim()
// is not persisted; reading back yields a vector whose capacity equals its
// used length.
func Write(w io.Writer, v *segvec.Vector, optFns ...func(*Options)) error {
	var opts Options
	for _, fn := range optFns {
		fn(&opts)
	}

	count, err := conv.IntToUint64(v.Size())
	if err != nil {
		return err
	}
	dim, err := conv.IntToUint64(v.Dim())
	if err != nil {
		return err
	}

	header := FileHeader{
		Magic:         MagicNumber,
		Version:       Version,
		Compression:   uint8(opts.Compression),
		VariableCount: count,
		TotalDim:      dim,
	}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	payload, err := compressPayload(opts.Compression, encodePayload(v))
	if err != nil {
		return err
	}

	size, err := conv.IntToUint64(len(payload))
	if err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, size); err != nil {
		return fmt.Errorf("write payload size: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	return binary.Write(w, binary.LittleEndian, crc32.ChecksumIEEE(payload))
}

// Read decodes a snapshot written by Write.
func Read(r io.Reader) (*segvec.Vector, error) {
	var header FileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if header.Magic != MagicNumber {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidMagic, header.Magic)
	}
	if header.Version != Version {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidVersion, header.Version)
	}

	var size uint64
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return nil, fmt.Errorf("read payload size: %w", err)
	}
	sizeInt, err := conv.Uint64ToInt(size)
	if err != nil {
		return nil, err
	}

	payload := make([]byte, sizeInt)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}

	var checksum uint32
	if err := binary.Read(r, binary.LittleEndian, &checksum); err != nil {
		return nil, fmt.Errorf("read checksum: %w", err)
	}
	if got := crc32.ChecksumIEEE(payload); got != checksum {
		return nil, fmt.Errorf("%w: stored 0x%08x, computed 0x%08x", ErrChecksum, checksum, got)
	}

	raw, err := decompressPayload(Compression(header.Compression), payload)
	if err != nil {
		return nil, err
	}

	return decodePayload(&header, raw)
}

// encodePayload renders the boundary structure and values as little-endian
// bytes: per-variable dimensions as uint64, then the used scalars as IEEE
// float64 bits.
func encodePayload(v *segvec.Vector) []byte {
	dims := v.Dims()

	buf := make([]byte, 0, 8*(len(dims)+v.Dim()))
	var scratch [8]byte
	for _, d := range dims {
		binary.LittleEndian.PutUint64(scratch[:], uint64(d))
		buf = append(buf, scratch[:]...)
	}
	for _, b := range v.All() {
		for _, x := range b {
			binary.LittleEndian.PutUint64(scratch[:], math.Float64bits(x))
			buf = append(buf, scratch[:]...)
		}
	}
	return buf
}

func decodePayload(header *FileHeader, raw []byte) (*segvec.Vector, error) {
	count, err := conv.Uint64ToInt(header.VariableCount)
	if err != nil {
		return nil, err
	}
	totalDim, err := conv.Uint64ToInt(header.TotalDim)
	if err != nil {
		return nil, err
	}
	if want := 8 * (count + totalDim); len(raw) != want {
		return nil, fmt.Errorf("%w: payload is %d bytes, header implies %d", ErrCorrupt, len(raw), want)
	}

	dims := make([]int, count)
	sum := 0
	for i := range dims {
		d, err := conv.Uint64ToInt(binary.LittleEndian.Uint64(raw[8*i:]))
		if err != nil {
			return nil, err
		}
		dims[i] = d
		sum += d
	}
	if sum != totalDim {
		return nil, fmt.Errorf("%w: dimensions sum to %d, header says %d", ErrCorrupt, sum, totalDim)
	}

	values := make([]float64, totalDim)
	off := 8 * count
	for i := range values {
		values[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[off+8*i:]))
	}

	return segvec.NewFromSlice(dims, values)
}

// Encode renders v to a byte slice, for callers targeting blob storage.
func Encode(v *segvec.Vector, optFns ...func(*Options)) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, v, optFns...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses a snapshot from a byte slice.
func Decode(data []byte) (*segvec.Vector, error) {
	return Read(bytes.NewReader(data))
}
