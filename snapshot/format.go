// Package snapshot provides binary serialization for segvec vectors.
//
// A snapshot is a fixed header followed by a single payload section holding
// the boundary list and the raw scalar values, optionally compressed, and a
// CRC32 trailer over the payload bytes as written. The compression codec is
// recorded in the header, so readers need no out-of-band configuration.
package snapshot

import "errors"

const (
	// MagicNumber identifies segvec snapshot files (ASCII: "SGV0").
	MagicNumber = 0x53475630
	// Version is the current snapshot format version (v1.0.0).
	Version = 0x00010000
)

// Compression selects the payload codec.
type Compression uint8

const (
	// CompressionNone stores the payload verbatim.
	CompressionNone Compression = iota
	// CompressionZstd compresses the payload with zstd.
	CompressionZstd
	// CompressionLZ4 compresses the payload with the lz4 frame format.
	CompressionLZ4
)

var (
	// ErrInvalidMagic is returned when the file does not start with
	// MagicNumber.
	ErrInvalidMagic = errors.New("invalid magic number")
	// ErrInvalidVersion is returned for snapshot versions this build cannot
	// read.
	ErrInvalidVersion = errors.New("unsupported version")
	// ErrUnknownCompression is returned when the header names a codec this
	// build does not know.
	ErrUnknownCompression = errors.New("unknown compression codec")
	// ErrChecksum is returned when the payload fails CRC validation.
	ErrChecksum = errors.New("checksum mismatch")
	// ErrCorrupt is returned when the payload decodes to inconsistent
	// lengths.
	ErrCorrupt = errors.New("corrupt snapshot")
)

// FileHeader is the fixed 32-byte header at the start of every snapshot.
type FileHeader struct {
	Magic         uint32
	Version       uint32
	Compression   uint8
	Padding       [3]byte
	VariableCount uint64
	TotalDim      uint64
	Reserved      [4]byte
}
